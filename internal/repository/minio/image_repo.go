package minio

import (
	"bytes"
	"context"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"

	"github.com/DRSN-tech/pharmacrawl/internal/cfg"
	"github.com/DRSN-tech/pharmacrawl/internal/usecase"
	"github.com/DRSN-tech/pharmacrawl/pkg/e"
)

// imageExtensions — расширения объектов, которые считаются изображениями каталога.
var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".bmp":  {},
	".webp": {},
}

// ImageRepo реализует хранилище изображений поверх MinIO.
type ImageRepo struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

func NewImageRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *ImageRepo {
	return &ImageRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// Save загружает изображение в бакет под указанным именем.
func (i *ImageRepo) Save(ctx context.Context, filename string, data []byte) error {
	reader := bytes.NewReader(data)

	_, err := i.mc.PutObject(ctx, i.cfg.BucketName, filename, reader, int64(len(data)), minio.PutObjectOptions{
		ContentType: http.DetectContentType(data),
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Remove удаляет объект изображения из бакета.
func (i *ImageRepo) Remove(ctx context.Context, filename string) error {
	if err := i.mc.RemoveObject(ctx, i.cfg.BucketName, filename, minio.RemoveObjectOptions{}); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// List возвращает все объекты изображений в бакете.
func (i *ImageRepo) List(ctx context.Context) ([]usecase.StoredImage, error) {
	images := make([]usecase.StoredImage, 0)

	for obj := range i.mc.ListObjects(ctx, i.cfg.BucketName, minio.ListObjectsOptions{}) {
		if obj.Err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), obj.Err)
		}

		if _, ok := imageExtensions[strings.ToLower(filepath.Ext(obj.Key))]; !ok {
			continue
		}

		images = append(images, usecase.NewStoredImage(obj.Key, obj.Size))
	}

	return images, nil
}
