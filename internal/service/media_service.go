package service

import (
	"bytes"
	"context"
	"io"
	"lms_admin_backend/internal/model"
	"lms_admin_backend/internal/repository"
	"lms_admin_backend/internal/util"
	"lms_admin_backend/pkg/cache"
	"lms_admin_backend/pkg/logger"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MediaService 媒体库。上传走存储 Provider，音视频用 ffprobe 补元数据，
// 图片生成 webp 缩略图。目录的 find-or-create 与媒体落库在同一事务内，
// 消除"先建目录再传文件"的半途失败窗口。
type MediaService struct {
	MediaRepo  *repository.MediaRepository
	FolderRepo *repository.MediaFolderRepository
	Storage    *StorageService
	Cache      *cache.Store
	DB         *gorm.DB
}

func NewMediaService(
	mediaRepo *repository.MediaRepository,
	folderRepo *repository.MediaFolderRepository,
	storage *StorageService,
	store *cache.Store,
	db *gorm.DB,
) *MediaService {
	return &MediaService{
		MediaRepo:  mediaRepo,
		FolderRepo: folderRepo,
		Storage:    storage,
		Cache:      store,
		DB:         db,
	}
}

// MediaPage 媒体列表页
type MediaPage struct {
	Items []model.Media `json:"items"`
	Total int64         `json:"total"`
}

func (s *MediaService) List(ctx context.Context, filter repository.MediaFilter) (*MediaPage, error) {
	key := cache.MediaList(filter.FolderID, filter.MimeType, filter.Search, filter.Page, filter.Limit)
	var cached MediaPage
	if hit, err := s.Cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	items, total, err := s.MediaRepo.List(filter)
	if err != nil {
		return nil, err
	}
	page := &MediaPage{Items: items, Total: total}
	if err := s.Cache.SetJSON(ctx, key, page); err != nil {
		logger.Log.Warn("cache set failed", zap.String("key", string(key)), zap.Error(err))
	}
	return page, nil
}

func (s *MediaService) Get(id string) (*model.Media, error) {
	media, err := s.MediaRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrMediaNotFound
	}
	return media, err
}

// UploadInput 上传参数。FolderName 非空时在上传事务内按
// (name, parentId=FolderID) find-or-create 目录并把媒体挂进去。
type UploadInput struct {
	FolderID   *string
	FolderName string
	UploaderID string
}

func (s *MediaService) Upload(ctx context.Context, file *multipart.FileHeader, in UploadInput) (*model.Media, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	allowed := []string{util.MimeImage, util.MimeVideo, util.MimeAudio, util.MimePDF, "text/", "application/"}
	mimeType, err := util.ValidateMimeType(src, allowed)
	if err != nil {
		return nil, err
	}
	if seeker, ok := src.(io.Seeker); ok {
		seeker.Seek(0, io.SeekStart)
	}

	// 元数据探测需要本地文件，先落临时文件
	tmp, err := os.CreateTemp("", "media-upload-*"+filepath.Ext(file.Filename))
	if err != nil {
		return nil, err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return nil, err
	}
	tmp.Close()

	media := &model.Media{
		OriginalName: file.Filename,
		MimeType:     mimeType,
		Size:         file.Size,
		FolderID:     in.FolderID,
		UploaderID:   in.UploaderID,
	}

	if util.IsVideo(mimeType) {
		if info, err := util.GetVideoInfo(tmpPath); err == nil {
			media.Duration = &info.Duration
			if info.Width > 0 {
				media.Width = &info.Width
				media.Height = &info.Height
			}
		} else {
			logger.Log.Warn("video probe failed", zap.String("file", file.Filename), zap.Error(err))
		}
	}

	ext := filepath.Ext(file.Filename)
	media.Filename = "media/" + time.Now().Format("20060102150405") + "_" + util.GenerateRandomString(6) + ext

	reader, err := os.Open(tmpPath)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	url, err := s.Storage.Upload(ctx, media.Filename, reader, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}
	media.URL = url

	if util.IsImage(mimeType) && !strings.HasSuffix(strings.ToLower(ext), ".svg") {
		if thumbURL, w, h, err := s.makeThumbnail(ctx, tmpPath, media.Filename); err == nil {
			media.ThumbnailURL = thumbURL
			media.Width = &w
			media.Height = &h
		} else {
			logger.Log.Warn("thumbnail generation failed", zap.String("file", file.Filename), zap.Error(err))
		}
	}

	// 目录 find-or-create 与媒体落库同一事务
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if in.FolderName != "" {
			var folder model.MediaFolder
			query := tx.Where("name = ?", in.FolderName)
			if in.FolderID == nil {
				query = query.Where("parent_id IS NULL")
			} else {
				query = query.Where("parent_id = ?", *in.FolderID)
			}
			err := query.First(&folder).Error
			if err == gorm.ErrRecordNotFound {
				folder = model.MediaFolder{Name: in.FolderName, ParentID: in.FolderID, CreatedBy: in.UploaderID}
				if err := tx.Create(&folder).Error; err != nil {
					return err
				}
			} else if err != nil {
				return err
			}
			media.FolderID = &folder.ID
		} else if in.FolderID != nil {
			var folder model.MediaFolder
			if err := tx.First(&folder, "id = ?", *in.FolderID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return util.ErrFolderNotFound
				}
				return err
			}
		}
		return tx.Create(media).Error
	})
	if err != nil {
		// 落库失败补偿清理存储对象，避免孤儿文件
		if delErr := s.Storage.Delete(ctx, media.Filename); delErr != nil {
			logger.Log.Warn("orphan cleanup failed", zap.String("filename", media.Filename), zap.Error(delErr))
		}
		return nil, err
	}

	if err := s.invalidateLists(ctx); err != nil {
		return nil, err
	}
	return media, nil
}

// makeThumbnail 生成 320px webp 缩略图并上传，返回 URL 与原图尺寸
func (s *MediaService) makeThumbnail(ctx context.Context, localPath, filename string) (string, int, int, error) {
	img, err := imaging.Open(localPath, imaging.AutoOrientation(true))
	if err != nil {
		return "", 0, 0, err
	}

	width := img.Bounds().Dx()
	height := img.Bounds().Dy()

	thumb := imaging.Fit(img, 320, 320, imaging.Lanczos)
	var buf bytes.Buffer
	if err := webp.Encode(&buf, thumb, &webp.Options{Quality: 80}); err != nil {
		return "", 0, 0, err
	}

	thumbName := "thumbnails/" + strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)) + ".webp"
	url, err := s.Storage.Upload(ctx, thumbName, &buf, int64(buf.Len()), "image/webp")
	if err != nil {
		return "", 0, 0, err
	}
	return url, width, height, nil
}

// Rename 修改展示名
func (s *MediaService) Rename(ctx context.Context, id, originalName string) (*model.Media, error) {
	media, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	media.OriginalName = originalName
	if err := s.MediaRepo.Update(media); err != nil {
		return nil, err
	}
	return media, s.invalidateLists(ctx)
}

// Move 移动到目录，folderID 为 nil 表示根
func (s *MediaService) Move(ctx context.Context, id string, folderID *string) (*model.Media, error) {
	media, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if folderID != nil {
		if _, err := s.FolderRepo.FindByID(*folderID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, util.ErrFolderNotFound
			}
			return nil, err
		}
	}

	media.FolderID = folderID
	if err := s.MediaRepo.Update(media); err != nil {
		return nil, err
	}
	return media, s.invalidateLists(ctx)
}

// Delete 删除记录与存储对象，返回被删文件的引用计数。
// usageCount 只作删除前/后提示，不阻止删除。
func (s *MediaService) Delete(ctx context.Context, id string) (int, error) {
	media, err := s.Get(id)
	if err != nil {
		return 0, err
	}

	if err := s.MediaRepo.Delete(media.ID); err != nil {
		return 0, err
	}

	// 存储清理失败不回滚记录删除，留日志
	if err := s.Storage.Delete(ctx, media.Filename); err != nil {
		logger.Log.Warn("storage delete failed", zap.String("filename", media.Filename), zap.Error(err))
	}
	if media.ThumbnailURL != "" {
		thumbName := "thumbnails/" + strings.TrimSuffix(filepath.Base(media.Filename), filepath.Ext(media.Filename)) + ".webp"
		if err := s.Storage.Delete(ctx, thumbName); err != nil {
			logger.Log.Warn("thumbnail delete failed", zap.String("filename", thumbName), zap.Error(err))
		}
	}

	return media.UsageCount, s.invalidateLists(ctx)
}

func (s *MediaService) invalidateLists(ctx context.Context) error {
	if err := s.Cache.InvalidatePrefix(ctx, cache.MediaListPrefix); err != nil {
		return err
	}
	return s.Cache.Invalidate(ctx, cache.FolderTree())
}
