package service

import (
	"context"
	"testing"

	"lms_admin_backend/internal/model"
	"lms_admin_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFolder(t *testing.T, svc *MediaFolderService, name string, parentID *string) *model.MediaFolder {
	t.Helper()
	folder, err := svc.Create(context.Background(), name, parentID, "tester")
	require.NoError(t, err)
	return folder
}

func TestFolderTreeShape(t *testing.T) {
	svc, _ := newFolderService(t)
	ctx := context.Background()

	f := mustFolder(t, svc, "F", nil)
	c1 := mustFolder(t, svc, "C1", &f.ID)
	mustFolder(t, svc, "C2", &f.ID)
	mustFolder(t, svc, "G1", &c1.ID)
	mustFolder(t, svc, "X", nil)

	result, err := svc.Tree(ctx, "")
	require.NoError(t, err)

	require.Len(t, result.Roots, 2)
	assert.Equal(t, "F", result.Roots[0].Name)
	assert.Equal(t, "X", result.Roots[1].Name)
	require.Len(t, result.Roots[0].Children, 2)
	assert.Equal(t, "C1", result.Roots[0].Children[0].Name)
	assert.Equal(t, int64(2), result.Roots[0].Counts.Children)

	// 默认全量展开
	assert.Len(t, result.Expanded, 5)
}

func TestFolderTreeActiveExpandsAncestors(t *testing.T) {
	svc, _ := newFolderService(t)
	ctx := context.Background()

	root := mustFolder(t, svc, "Root", nil)
	a := mustFolder(t, svc, "A", &root.ID)
	b := mustFolder(t, svc, "B", &a.ID)
	c := mustFolder(t, svc, "C", &b.ID)

	result, err := svc.Tree(ctx, c.ID)
	require.NoError(t, err)

	expanded := make(map[string]bool, len(result.Expanded))
	for _, id := range result.Expanded {
		expanded[id] = true
	}
	assert.True(t, expanded[root.ID])
	assert.True(t, expanded[a.ID])
	assert.True(t, expanded[b.ID])
}

func TestFolderDestinationsExcludesSelfAndDescendants(t *testing.T) {
	svc, _ := newFolderService(t)

	f := mustFolder(t, svc, "F", nil)
	c1 := mustFolder(t, svc, "C1", &f.ID)
	mustFolder(t, svc, "C2", &f.ID)
	mustFolder(t, svc, "G1", &c1.ID)
	x := mustFolder(t, svc, "X", nil)

	dests, err := svc.Destinations(f.ID)
	require.NoError(t, err)
	require.Len(t, dests, 1)
	assert.Equal(t, x.ID, dests[0].ID)

	_, err = svc.Destinations("missing")
	assert.ErrorIs(t, err, util.ErrFolderNotFound)
}

func TestFolderMoveRejectsCycle(t *testing.T) {
	svc, _ := newFolderService(t)
	ctx := context.Background()

	f := mustFolder(t, svc, "F", nil)
	c1 := mustFolder(t, svc, "C1", &f.ID)
	g1 := mustFolder(t, svc, "G1", &c1.ID)

	_, err := svc.Move(ctx, f.ID, &g1.ID)
	assert.ErrorIs(t, err, util.ErrFolderCycle)

	_, err = svc.Move(ctx, f.ID, &f.ID)
	assert.ErrorIs(t, err, util.ErrFolderCycle)

	// 拒绝后原结构不变
	got, err := svc.Get(f.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)
}

func TestFolderMoveToRoot(t *testing.T) {
	svc, _ := newFolderService(t)
	ctx := context.Background()

	f := mustFolder(t, svc, "F", nil)
	c1 := mustFolder(t, svc, "C1", &f.ID)

	moved, err := svc.Move(ctx, c1.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, moved.ParentID)
}

func TestFolderMoveUnknownParent(t *testing.T) {
	svc, _ := newFolderService(t)
	ctx := context.Background()

	f := mustFolder(t, svc, "F", nil)
	missing := "missing"
	_, err := svc.Move(ctx, f.ID, &missing)
	assert.ErrorIs(t, err, util.ErrFolderNotFound)
}

func TestFolderDeleteRelocatesContents(t *testing.T) {
	svc, db := newFolderService(t)
	ctx := context.Background()

	parent := mustFolder(t, svc, "Parent", nil)
	victim := mustFolder(t, svc, "Victim", &parent.ID)
	child := mustFolder(t, svc, "Child", &victim.ID)

	media := &model.Media{
		Filename:     "a.png",
		OriginalName: "a.png",
		MimeType:     "image/png",
		FolderID:     &victim.ID,
		UploaderID:   "tester",
	}
	require.NoError(t, db.Create(media).Error)

	require.NoError(t, svc.Delete(ctx, victim.ID))

	_, err := svc.Get(victim.ID)
	assert.ErrorIs(t, err, util.ErrFolderNotFound)

	// 媒体回到根目录
	var gotMedia model.Media
	require.NoError(t, db.First(&gotMedia, "id = ?", media.ID).Error)
	assert.Nil(t, gotMedia.FolderID)

	// 子目录上挂到被删目录的父级
	gotChild, err := svc.Get(child.ID)
	require.NoError(t, err)
	require.NotNil(t, gotChild.ParentID)
	assert.Equal(t, parent.ID, *gotChild.ParentID)
}

func TestFolderListCounts(t *testing.T) {
	svc, db := newFolderService(t)

	f := mustFolder(t, svc, "F", nil)
	mustFolder(t, svc, "C1", &f.ID)
	require.NoError(t, db.Create(&model.Media{
		Filename:     "b.png",
		OriginalName: "b.png",
		MimeType:     "image/png",
		FolderID:     &f.ID,
		UploaderID:   "tester",
	}).Error)

	listed, err := svc.List()
	require.NoError(t, err)
	require.Len(t, listed, 2)

	byName := make(map[string]model.FolderWithCounts)
	for _, item := range listed {
		byName[item.Name] = item
	}
	assert.Equal(t, int64(1), byName["F"].Counts.Children)
	assert.Equal(t, int64(1), byName["F"].Counts.Media)
	assert.Zero(t, byName["C1"].Counts.Media)
}
