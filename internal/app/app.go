package app

import (
	"context"
	"time"

	"github.com/jimlawless/whereami"

	config "github.com/DRSN-tech/pharmacrawl/internal/cfg"
	"github.com/DRSN-tech/pharmacrawl/internal/infrastructure/catalog"
	"github.com/DRSN-tech/pharmacrawl/internal/infrastructure/images"
	"github.com/DRSN-tech/pharmacrawl/internal/repository/localfs"
	s3Repo "github.com/DRSN-tech/pharmacrawl/internal/repository/minio"
	"github.com/DRSN-tech/pharmacrawl/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/pharmacrawl/internal/repository/pgdb/converter/generated"
	"github.com/DRSN-tech/pharmacrawl/internal/scrape"
	"github.com/DRSN-tech/pharmacrawl/internal/usecase"
	"github.com/DRSN-tech/pharmacrawl/pkg/clients"
	"github.com/DRSN-tech/pharmacrawl/pkg/closer"
	"github.com/DRSN-tech/pharmacrawl/pkg/e"
	"github.com/DRSN-tech/pharmacrawl/pkg/logger"
	"github.com/DRSN-tech/pharmacrawl/pkg/postgres"
)

const closeTimeout = 5 * time.Second

// App собирает слои приложения и владеет их жизненным циклом.
// Команды CLI работают только с юзкейсами.
type App struct {
	Crawler     usecase.CrawlerUC
	Maintenance usecase.MaintenanceUC

	db     *postgres.PgDatabase
	closer *closer.Closer
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	cl := closer.NewCloser(0)

	db, err := initPGDB(log, cfg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	cl.Add(func(context.Context) error {
		db.Close()
		return nil
	})

	store, err := newImageStore(cfg)
	if err != nil {
		closeAll(cl)
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	medicineRepo := pgdb.NewMedicineRepo(db.Pool, pgdbConv.NewMedicineConverterImpl())

	gateway := catalog.NewClient(cfg.Gateway, log)
	acquirer := images.NewAcquirer(gateway, store, cfg.Images.MaxBytes, log)

	discovery := scrape.NewDiscovery(cfg.Catalog.BaseURL, cfg.Catalog.MinLinksPerPage)
	extractor := scrape.NewExtractor(cfg.Catalog.BaseURL)

	crawlerUC := usecase.NewCatalogUC(
		gateway,
		discovery,
		extractor,
		medicineRepo,
		acquirer,
		cfg.Catalog.BaseURL,
		cfg.Catalog.Letters,
		log,
	)
	maintenanceUC := usecase.NewMaintenanceUC(medicineRepo, store, log)

	return &App{
		Crawler:     crawlerUC,
		Maintenance: maintenanceUC,
		db:          db,
		closer:      cl,
	}, nil
}

// newImageStore выбирает хранилище изображений по конфигурации.
func newImageStore(cfg *config.Config) (usecase.ImageStore, error) {
	switch cfg.Images.Backend {
	case config.ImagesBackendFS:
		return localfs.NewImageRepo(cfg.Images.Dir)

	case config.ImagesBackendMinIO:
		mc, err := clients.NewMinIOClient(cfg.Minio)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := clients.EnsureBucket(ctx, mc, cfg.Minio.BucketName); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		return s3Repo.NewImageRepo(mc, cfg.Minio), nil

	default:
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrUnknownImageBackend)
	}
}

// Ping проверяет доступность базы данных.
func (a *App) Ping() error {
	return a.db.Ping()
}

// Close освобождает ресурсы приложения в порядке, обратном созданию.
func (a *App) Close() error {
	return closeAll(a.closer)
}

func closeAll(cl *closer.Closer) error {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	return cl.Close(ctx)
}

func initPGDB(log logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(log); err != nil {
		db.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
