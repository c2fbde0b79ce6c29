package usecase

import (
	"context"

	"github.com/DRSN-tech/pharmacrawl/internal/domain"
)

type MedicineRepository interface {
	Upsert(ctx context.Context, record *domain.CatalogItemRecord) (*UpsertMedicineRes, error)
	SetImagePath(ctx context.Context, systemID int64, imagePath string) error
	SystemIDs(ctx context.Context) ([]int64, error)
	Statistics(ctx context.Context) (*CatalogStatistics, error)
}

type ImageStore interface {
	Save(ctx context.Context, filename string, data []byte) error
	Remove(ctx context.Context, filename string) error
	List(ctx context.Context) ([]StoredImage, error)
}
