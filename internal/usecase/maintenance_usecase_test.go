package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DRSN-tech/pharmacrawl/pkg/logger"
)

type fakeImageStore struct {
	images    []StoredImage
	removed   []string
	removeErr map[string]error
	listErr   error
}

func (f *fakeImageStore) Save(context.Context, string, []byte) error {
	return nil
}

func (f *fakeImageStore) Remove(_ context.Context, filename string) error {
	if err, ok := f.removeErr[filename]; ok {
		return err
	}

	f.removed = append(f.removed, filename)

	return nil
}

func (f *fakeImageStore) List(context.Context) ([]StoredImage, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}

	return f.images, nil
}

func TestStatisticsCombinesSources(t *testing.T) {
	repo := newFakeMedicineRepo()
	repo.stats = &CatalogStatistics{TotalMedicines: 10, MedicinesWithImages: 4}

	store := &fakeImageStore{images: []StoredImage{
		NewStoredImage("1.png", 1<<20),
		NewStoredImage("2.jpg", 512<<10),
	}}

	uc := NewMaintenanceUC(repo, store, logger.NewSlogLogger())

	res, err := uc.Statistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(10), res.Catalog.TotalMedicines)
	assert.Equal(t, int64(4), res.Catalog.MedicinesWithImages)
	assert.Equal(t, 2, res.TotalImages)
	assert.Equal(t, 1.5, res.TotalSizeMB)
}

func TestStatisticsEmptyStore(t *testing.T) {
	repo := newFakeMedicineRepo()
	repo.stats = &CatalogStatistics{}

	uc := NewMaintenanceUC(repo, &fakeImageStore{}, logger.NewSlogLogger())

	res, err := uc.Statistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, res.TotalImages)
	assert.Equal(t, 0.0, res.TotalSizeMB)
}

func TestStatisticsPropagatesRepoError(t *testing.T) {
	repo := newFakeMedicineRepo()
	repo.statsErr = errors.New("connection reset")

	uc := NewMaintenanceUC(repo, &fakeImageStore{}, logger.NewSlogLogger())

	_, err := uc.Statistics(context.Background())
	assert.ErrorIs(t, err, repo.statsErr)
}

func TestCleanupRemovesOrphans(t *testing.T) {
	repo := newFakeMedicineRepo()
	repo.ids = []int64{1, 2}

	store := &fakeImageStore{images: []StoredImage{
		NewStoredImage("1.png", 10),
		NewStoredImage("2.jpg", 10),
		NewStoredImage("3.png", 10),
		NewStoredImage("abc.png", 10),
	}}

	uc := NewMaintenanceUC(repo, store, logger.NewSlogLogger())

	res, err := uc.CleanupOrphanedImages(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"3.png"}, res.Removed)
	assert.Equal(t, []string{"3.png"}, store.removed)
}

func TestCleanupKeepsNonConformingNames(t *testing.T) {
	repo := newFakeMedicineRepo()

	store := &fakeImageStore{images: []StoredImage{
		NewStoredImage("logo.png", 10),
		NewStoredImage("backup.tar.png", 10),
	}}

	uc := NewMaintenanceUC(repo, store, logger.NewSlogLogger())

	res, err := uc.CleanupOrphanedImages(context.Background())
	require.NoError(t, err)

	assert.Empty(t, res.Removed)
	assert.Empty(t, store.removed)
}

func TestCleanupToleratesRemoveFailure(t *testing.T) {
	repo := newFakeMedicineRepo()
	repo.ids = []int64{1}

	store := &fakeImageStore{
		images: []StoredImage{
			NewStoredImage("3.png", 10),
			NewStoredImage("4.jpg", 10),
		},
		removeErr: map[string]error{"3.png": errors.New("object locked")},
	}

	uc := NewMaintenanceUC(repo, store, logger.NewSlogLogger())

	res, err := uc.CleanupOrphanedImages(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"4.jpg"}, res.Removed)
}

func TestCleanupEmptyStore(t *testing.T) {
	uc := NewMaintenanceUC(newFakeMedicineRepo(), &fakeImageStore{}, logger.NewSlogLogger())

	res, err := uc.CleanupOrphanedImages(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.Removed)
}
