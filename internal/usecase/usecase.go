package usecase

import (
	"context"

	"github.com/DRSN-tech/pharmacrawl/internal/domain"
)

type CrawlerUC interface {
	CrawlAll(ctx context.Context) (*domain.RunStatistics, error)
	CrawlLetter(ctx context.Context, letter string) (*domain.RunStatistics, error)
}

type MaintenanceUC interface {
	Statistics(ctx context.Context) (*StatisticsRes, error)
	CleanupOrphanedImages(ctx context.Context) (*CleanupRes, error)
}
