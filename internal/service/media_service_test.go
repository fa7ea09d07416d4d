package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"lms_admin_backend/internal/config"
	"lms_admin_backend/internal/model"
	"lms_admin_backend/internal/repository"
	"lms_admin_backend/internal/util"
	"lms_admin_backend/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMediaService(t *testing.T) (*MediaService, *gorm.DB) {
	db := newTestDB(t)
	cfg := &config.Config{}
	cfg.Storage.Type = util.StorageLocal
	cfg.Storage.LocalPath = t.TempDir()
	svc := NewMediaService(
		repository.NewMediaRepository(db),
		repository.NewMediaFolderRepository(db),
		NewStorageService(cfg),
		cache.NewStore(nil, 0),
		db,
	)
	return svc, db
}

// pngFileHeader 构造 multipart 表单里的一张 4x4 PNG
func pngFileHeader(t *testing.T, filename string) *multipart.FileHeader {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var imgBuf bytes.Buffer
	require.NoError(t, png.Encode(&imgBuf, img))

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(imgBuf.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestMediaUpload(t *testing.T) {
	svc, _ := newMediaService(t)
	ctx := context.Background()

	file := pngFileHeader(t, "cover.png")
	media, err := svc.Upload(ctx, file, UploadInput{UploaderID: "tester"})
	require.NoError(t, err)

	assert.Equal(t, "cover.png", media.OriginalName)
	assert.Equal(t, "image/png", media.MimeType)
	assert.NotEmpty(t, media.URL)
	assert.Equal(t, ".png", filepath.Ext(media.Filename))
	assert.Nil(t, media.FolderID)
	require.NotNil(t, media.Width)
	assert.Equal(t, 4, *media.Width)
	assert.NotEmpty(t, media.ThumbnailURL)
}

func TestMediaUploadFindOrCreatesFolder(t *testing.T) {
	svc, db := newMediaService(t)
	ctx := context.Background()

	first, err := svc.Upload(ctx, pngFileHeader(t, "a.png"), UploadInput{
		FolderName: "Covers",
		UploaderID: "tester",
	})
	require.NoError(t, err)
	require.NotNil(t, first.FolderID)

	// 同名目录复用，不产生重复
	second, err := svc.Upload(ctx, pngFileHeader(t, "b.png"), UploadInput{
		FolderName: "Covers",
		UploaderID: "tester",
	})
	require.NoError(t, err)
	require.NotNil(t, second.FolderID)
	assert.Equal(t, *first.FolderID, *second.FolderID)

	var count int64
	require.NoError(t, db.Model(&model.MediaFolder{}).Where("name = ?", "Covers").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestMediaUploadUnknownFolderRejected(t *testing.T) {
	svc, _ := newMediaService(t)
	ctx := context.Background()

	missing := "missing"
	_, err := svc.Upload(ctx, pngFileHeader(t, "a.png"), UploadInput{
		FolderID:   &missing,
		UploaderID: "tester",
	})
	assert.ErrorIs(t, err, util.ErrFolderNotFound)
}

func TestMediaListFilters(t *testing.T) {
	svc, db := newMediaService(t)
	ctx := context.Background()

	folder := &model.MediaFolder{Name: "Docs"}
	require.NoError(t, db.Create(folder).Error)

	rows := []model.Media{
		{Filename: "a.png", OriginalName: "班级合照.png", MimeType: "image/png", UploaderID: "u"},
		{Filename: "b.mp4", OriginalName: "宣传片.mp4", MimeType: "video/mp4", UploaderID: "u"},
		{Filename: "c.pdf", OriginalName: "教学大纲.pdf", MimeType: "application/pdf", FolderID: &folder.ID, UploaderID: "u"},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}

	// 仅根目录
	page, err := svc.List(ctx, repository.MediaFilter{FolderID: util.FolderRoot, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	// 指定目录
	page, err = svc.List(ctx, repository.MediaFilter{FolderID: folder.ID, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	// MIME 前缀
	page, err = svc.List(ctx, repository.MediaFilter{MimeType: "image/", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	// 文件名搜索
	page, err = svc.List(ctx, repository.MediaFilter{Search: "大纲", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, "教学大纲.pdf", page.Items[0].OriginalName)
}

func TestMediaMove(t *testing.T) {
	svc, db := newMediaService(t)
	ctx := context.Background()

	folder := &model.MediaFolder{Name: "Dest"}
	require.NoError(t, db.Create(folder).Error)
	media := &model.Media{Filename: "a.png", OriginalName: "a.png", MimeType: "image/png", UploaderID: "u"}
	require.NoError(t, db.Create(media).Error)

	moved, err := svc.Move(ctx, media.ID, &folder.ID)
	require.NoError(t, err)
	require.NotNil(t, moved.FolderID)
	assert.Equal(t, folder.ID, *moved.FolderID)

	// 移回根
	moved, err = svc.Move(ctx, media.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, moved.FolderID)

	missing := "missing"
	_, err = svc.Move(ctx, media.ID, &missing)
	assert.ErrorIs(t, err, util.ErrFolderNotFound)
}

func TestMediaDelete(t *testing.T) {
	svc, _ := newMediaService(t)
	ctx := context.Background()

	media, err := svc.Upload(ctx, pngFileHeader(t, "gone.png"), UploadInput{UploaderID: "tester"})
	require.NoError(t, err)

	usageCount, err := svc.Delete(ctx, media.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, usageCount)

	_, err = svc.Get(media.ID)
	assert.ErrorIs(t, err, util.ErrMediaNotFound)
}
