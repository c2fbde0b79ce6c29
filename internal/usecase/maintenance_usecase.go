package usecase

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/DRSN-tech/pharmacrawl/pkg/e"
	"github.com/DRSN-tech/pharmacrawl/pkg/logger"
)

// MaintenanceUseCase реализует обслуживающие операции над каталогом:
// сводную статистику и чистку осиротевших изображений.
type MaintenanceUseCase struct {
	medicineRepo MedicineRepository
	imageStore   ImageStore
	logger       logger.Logger
}

func NewMaintenanceUC(medicineRepo MedicineRepository, imageStore ImageStore, logger logger.Logger) *MaintenanceUseCase {
	return &MaintenanceUseCase{
		medicineRepo: medicineRepo,
		imageStore:   imageStore,
		logger:       logger,
	}
}

// Statistics собирает сводку по базе и хранилищу изображений.
func (m *MaintenanceUseCase) Statistics(ctx context.Context) (*StatisticsRes, error) {
	const op = "MaintenanceUseCase.Statistics"

	catalog, err := m.medicineRepo.Statistics(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	images, err := m.imageStore.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	var totalBytes int64
	for _, img := range images {
		totalBytes += img.SizeBytes
	}

	totalSizeMB := math.Round(float64(totalBytes)/(1024*1024)*100) / 100

	return NewStatisticsRes(catalog, len(images), totalSizeMB), nil
}

// CleanupOrphanedImages удаляет изображения, для которых в каталоге
// нет записи. Файлы с неканоническими именами не трогаются.
func (m *MaintenanceUseCase) CleanupOrphanedImages(ctx context.Context) (*CleanupRes, error) {
	const op = "MaintenanceUseCase.CleanupOrphanedImages"

	ids, err := m.medicineRepo.SystemIDs(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	known := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		known[id] = struct{}{}
	}

	images, err := m.imageStore.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	removed := make([]string, 0)
	for _, img := range images {
		id, ok := systemIDFromFilename(img.Filename)
		if !ok {
			continue
		}

		if _, exists := known[id]; exists {
			continue
		}

		if err := m.imageStore.Remove(ctx, img.Filename); err != nil {
			m.logger.Warnf("Failed to remove orphaned image. filename: %s, error: %v", img.Filename, e.Wrap(op, err))
			continue
		}

		removed = append(removed, img.Filename)
	}

	m.logger.Infof("Orphaned images cleanup finished. removed: %d", len(removed))

	return NewCleanupRes(removed), nil
}

// systemIDFromFilename выводит system_id из имени файла вида
// "{system_id}.{ext}".
func systemIDFromFilename(filename string) (int64, bool) {
	stem, _, _ := strings.Cut(filename, ".")

	id, err := strconv.ParseInt(stem, 10, 64)
	if err != nil {
		return 0, false
	}

	return id, true
}
