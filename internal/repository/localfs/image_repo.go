package localfs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jimlawless/whereami"

	"github.com/DRSN-tech/pharmacrawl/internal/usecase"
	"github.com/DRSN-tech/pharmacrawl/pkg/e"
)

// imageExtensions — расширения файлов, которые считаются изображениями каталога.
var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".bmp":  {},
	".webp": {},
}

// ImageRepo хранит изображения каталога в локальной директории.
type ImageRepo struct {
	dir string
}

func NewImageRepo(dir string) (*ImageRepo, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &ImageRepo{dir: dir}, nil
}

// Save записывает файл через временное имя и rename,
// частично записанный файл не виден под целевым именем.
func (i *ImageRepo) Save(_ context.Context, filename string, data []byte) error {
	tmp := filepath.Join(i.dir, uuid.NewString()+".tmp")

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := os.Rename(tmp, filepath.Join(i.dir, filename)); err != nil {
		os.Remove(tmp)
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Remove удаляет файл изображения.
func (i *ImageRepo) Remove(_ context.Context, filename string) error {
	if err := os.Remove(filepath.Join(i.dir, filename)); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// List возвращает все файлы изображений в директории.
func (i *ImageRepo) List(_ context.Context) ([]usecase.StoredImage, error) {
	entries, err := os.ReadDir(i.dir)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	images := make([]usecase.StoredImage, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if _, ok := imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))]; !ok {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		images = append(images, usecase.NewStoredImage(entry.Name(), info.Size()))
	}

	return images, nil
}
