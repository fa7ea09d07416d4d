package service

import (
	"context"
	"lms_admin_backend/internal/model"
	"lms_admin_backend/internal/repository"
	"lms_admin_backend/internal/util"
	"lms_admin_backend/pkg/cache"
	"lms_admin_backend/pkg/foldertree"

	"gorm.io/gorm"
)

// MediaFolderService 媒体目录树。扁平记录一次性装入 foldertree 索引，
// 后代集合、祖先链、可移动目标都在索引上算，不做逐层全量过滤。
type MediaFolderService struct {
	FolderRepo *repository.MediaFolderRepository
	MediaRepo  *repository.MediaRepository
	Cache      *cache.Store
	DB         *gorm.DB
}

func NewMediaFolderService(
	folderRepo *repository.MediaFolderRepository,
	mediaRepo *repository.MediaRepository,
	store *cache.Store,
	db *gorm.DB,
) *MediaFolderService {
	return &MediaFolderService{
		FolderRepo: folderRepo,
		MediaRepo:  mediaRepo,
		Cache:      store,
		DB:         db,
	}
}

// buildIndex 装载全部目录并构建索引树
func (s *MediaFolderService) buildIndex() (*foldertree.Tree, []model.MediaFolder, error) {
	folders, err := s.FolderRepo.FindAll()
	if err != nil {
		return nil, nil, err
	}
	flat := make([]foldertree.FlatFolder, len(folders))
	for i, f := range folders {
		flat[i] = foldertree.FlatFolder{ID: f.ID, Name: f.Name, ParentID: f.ParentID}
	}
	return foldertree.Build(flat), folders, nil
}

// List 返回带统计的扁平目录列表
func (s *MediaFolderService) List() ([]model.FolderWithCounts, error) {
	tree, folders, err := s.buildIndex()
	if err != nil {
		return nil, err
	}
	mediaCounts, err := s.MediaRepo.CountByFolder()
	if err != nil {
		return nil, err
	}

	out := make([]model.FolderWithCounts, len(folders))
	for i, f := range folders {
		out[i] = model.FolderWithCounts{
			MediaFolder: f,
			Counts: model.FolderCounts{
				Media:    mediaCounts[f.ID],
				Children: int64(len(tree.ChildIDs(f.ID))),
			},
		}
	}
	return out, nil
}

// TreeResult 目录树响应：嵌套树 + 应展开的目录 id 集合
type TreeResult struct {
	Roots    []*model.FolderTreeNode `json:"roots"`
	Expanded []string                `json:"expanded"`
}

// Tree 构建嵌套目录树。expanded 默认全量展开；
// activeID 非空时额外保证其祖先链在展开集内，活动目录始终可见。
func (s *MediaFolderService) Tree(ctx context.Context, activeID string) (*TreeResult, error) {
	key := cache.FolderTree()
	if activeID == "" {
		var cached TreeResult
		if hit, err := s.Cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	tree, folders, err := s.buildIndex()
	if err != nil {
		return nil, err
	}
	mediaCounts, err := s.MediaRepo.CountByFolder()
	if err != nil {
		return nil, err
	}

	byID := make(map[string]model.MediaFolder, len(folders))
	for _, f := range folders {
		byID[f.ID] = f
	}

	var build func(id string) *model.FolderTreeNode
	build = func(id string) *model.FolderTreeNode {
		node := &model.FolderTreeNode{
			MediaFolder: byID[id],
			Counts: model.FolderCounts{
				Media:    mediaCounts[id],
				Children: int64(len(tree.ChildIDs(id))),
			},
			Children: []*model.FolderTreeNode{},
		}
		for _, childID := range tree.ChildIDs(id) {
			node.Children = append(node.Children, build(childID))
		}
		return node
	}

	roots := make([]*model.FolderTreeNode, 0, len(tree.RootIDs()))
	for _, rootID := range tree.RootIDs() {
		roots = append(roots, build(rootID))
	}

	nav := foldertree.NewNavigator()
	nav.ExpandAll(tree)
	if activeID != "" {
		nav.SetActive(tree, activeID)
	}

	result := &TreeResult{Roots: roots, Expanded: nav.ExpandedIDs()}
	if activeID == "" {
		s.Cache.SetJSON(ctx, key, result)
	}
	return result, nil
}

// Destinations 返回目录可移动到的目标列表（排除自身与全部子孙，防环）。
// 根目录是隐含目标，响应里不单列。
func (s *MediaFolderService) Destinations(id string) ([]model.MediaFolder, error) {
	tree, folders, err := s.buildIndex()
	if err != nil {
		return nil, err
	}
	if tree.Get(id) == nil {
		return nil, util.ErrFolderNotFound
	}

	allowed := make(map[string]bool)
	for _, candidate := range tree.AvailableDestinations(id) {
		allowed[candidate] = true
	}

	out := make([]model.MediaFolder, 0, len(allowed))
	for _, f := range folders {
		if allowed[f.ID] {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *MediaFolderService) Get(id string) (*model.MediaFolder, error) {
	folder, err := s.FolderRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrFolderNotFound
	}
	return folder, err
}

func (s *MediaFolderService) Create(ctx context.Context, name string, parentID *string, createdBy string) (*model.MediaFolder, error) {
	if parentID != nil {
		if _, err := s.Get(*parentID); err != nil {
			return nil, err
		}
	}

	folder := &model.MediaFolder{Name: name, ParentID: parentID, CreatedBy: createdBy}
	if err := s.FolderRepo.Create(folder); err != nil {
		return nil, err
	}
	return folder, s.Cache.Invalidate(ctx, cache.FolderTree())
}

func (s *MediaFolderService) Rename(ctx context.Context, id, name string) (*model.MediaFolder, error) {
	folder, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	folder.Name = name
	if err := s.FolderRepo.Update(folder); err != nil {
		return nil, err
	}
	return folder, s.Cache.Invalidate(ctx, cache.FolderTree())
}

// Move 重定父级。环校验在当前快照上重做一次，不信任客户端的候选列表
// （并发编辑可能让客户端的排除集过期）。newParentID 为 nil 表示移到根。
func (s *MediaFolderService) Move(ctx context.Context, id string, newParentID *string) (*model.MediaFolder, error) {
	folder, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if newParentID != nil {
		if _, err := s.Get(*newParentID); err != nil {
			return nil, err
		}
		tree, _, err := s.buildIndex()
		if err != nil {
			return nil, err
		}
		if tree.WouldCycle(id, *newParentID) {
			return nil, util.ErrFolderCycle
		}
	}

	folder.ParentID = newParentID
	if err := s.FolderRepo.Update(folder); err != nil {
		return nil, err
	}
	return folder, s.Cache.Invalidate(ctx, cache.FolderTree())
}

// Delete 删除目录：目录内媒体移到根（不级联删除），
// 子目录挂到被删目录的父级下，整个迁移在一个事务内完成。
func (s *MediaFolderService) Delete(ctx context.Context, id string) error {
	folder, err := s.Get(id)
	if err != nil {
		return err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Media{}).
			Where("folder_id = ?", folder.ID).
			Update("folder_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.MediaFolder{}).
			Where("parent_id = ?", folder.ID).
			Update("parent_id", folder.ParentID).Error; err != nil {
			return err
		}
		return tx.Delete(&model.MediaFolder{}, "id = ?", folder.ID).Error
	})
	if err != nil {
		return err
	}

	if err := s.Cache.Invalidate(ctx, cache.FolderTree()); err != nil {
		return err
	}
	return s.Cache.InvalidatePrefix(ctx, cache.MediaListPrefix)
}
