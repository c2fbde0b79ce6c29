package localfs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveWritesFile(t *testing.T) {
	repo, err := NewImageRepo(t.TempDir())
	require.NoError(t, err)

	err = repo.Save(context.Background(), "42.png", []byte("png-bytes"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(repo.dir, "42.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	repo, err := NewImageRepo(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), "1.jpg", []byte("x")))

	entries, err := os.ReadDir(repo.dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "1.jpg", entries[0].Name())
}

func TestSaveOverwritesExisting(t *testing.T) {
	repo, err := NewImageRepo(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), "7.jpg", []byte("old")))
	require.NoError(t, repo.Save(context.Background(), "7.jpg", []byte("new")))

	data, err := os.ReadFile(filepath.Join(repo.dir, "7.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), data)
}

func TestNewImageRepoCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "images")

	_, err := NewImageRepo(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestRemoveDeletesFile(t *testing.T) {
	repo, err := NewImageRepo(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), "3.png", []byte("x")))
	require.NoError(t, repo.Remove(context.Background(), "3.png"))

	_, err = os.Stat(filepath.Join(repo.dir, "3.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestRemoveMissingFileFails(t *testing.T) {
	repo, err := NewImageRepo(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, repo.Remove(context.Background(), "missing.png"))
}

func TestListFiltersNonImages(t *testing.T) {
	repo, err := NewImageRepo(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), "1.jpg", []byte("a")))
	require.NoError(t, repo.Save(context.Background(), "2.PNG", []byte("bb")))
	require.NoError(t, os.WriteFile(filepath.Join(repo.dir, "notes.txt"), []byte("c"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(repo.dir, "subdir"), 0o755))

	images, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, images, 2)

	names := map[string]int64{}
	for _, img := range images {
		names[img.Filename] = img.SizeBytes
	}

	assert.Equal(t, int64(1), names["1.jpg"])
	assert.Equal(t, int64(2), names["2.PNG"])
}

func TestListSeesEverySavedExtension(t *testing.T) {
	repo, err := NewImageRepo(t.TempDir())
	require.NoError(t, err)

	names := []string{"1.jpg", "2.jpeg", "3.png", "4.gif", "5.bmp", "6.webp"}
	for _, name := range names {
		require.NoError(t, repo.Save(context.Background(), name, []byte("x")))
	}

	images, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, images, len(names))

	listed := map[string]struct{}{}
	for _, img := range images {
		listed[img.Filename] = struct{}{}
	}

	for _, name := range names {
		assert.Contains(t, listed, name)
	}
}

func TestListEmptyDirectory(t *testing.T) {
	repo, err := NewImageRepo(t.TempDir())
	require.NoError(t, err)

	images, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, images)
}
