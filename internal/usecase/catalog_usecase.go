package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/DRSN-tech/pharmacrawl/internal/domain"
	"github.com/DRSN-tech/pharmacrawl/internal/scrape"
	"github.com/DRSN-tech/pharmacrawl/pkg/e"
	"github.com/DRSN-tech/pharmacrawl/pkg/logger"
)

// CatalogUseCase реализует обход каталога: перечисление препаратов
// по буквам, извлечение полей и идемпотентную запись.
type CatalogUseCase struct {
	gateway      CatalogGateway
	discovery    *scrape.Discovery
	extractor    *scrape.Extractor
	medicineRepo MedicineRepository
	acquirer     ImageAcquirer
	baseURL      string
	letters      string
	logger       logger.Logger
}

func NewCatalogUC(
	gateway CatalogGateway,
	discovery *scrape.Discovery,
	extractor *scrape.Extractor,
	medicineRepo MedicineRepository,
	acquirer ImageAcquirer,
	baseURL string,
	letters string,
	logger logger.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		gateway:      gateway,
		discovery:    discovery,
		extractor:    extractor,
		medicineRepo: medicineRepo,
		acquirer:     acquirer,
		baseURL:      strings.TrimRight(baseURL, "/"),
		letters:      letters,
		logger:       logger,
	}
}

// CrawlAll обходит все сконфигурированные буквы категорий. Ошибка
// категории не прерывает прогон, прерывает только отмена контекста.
func (c *CatalogUseCase) CrawlAll(ctx context.Context) (*domain.RunStatistics, error) {
	const op = "CatalogUseCase.CrawlAll"

	stats := domain.NewRunStatistics(uuid.NewString())
	c.logger.Infof("Starting catalog crawl. run_id: %s, letters: %s", stats.RunID, c.letters)

	for _, r := range c.letters {
		letter := string(r)
		if !isCategoryLetter(letter) {
			c.logger.Warnf("Skipping unknown category letter: %q", letter)
			continue
		}

		cs := stats.StartCategory(letter)

		if err := c.crawlCategory(ctx, letter, cs); err != nil {
			cs.Aborted = true

			if ctx.Err() != nil {
				stats.Finish()
				return stats, e.Wrap(op, err)
			}

			c.logger.Errorf(e.Wrap(op, err), "Category crawl failed. letter: %s", letter)
		}
	}

	stats.Finish()
	c.logger.Infof("Catalog crawl finished. run_id: %s, duration: %s", stats.RunID, stats.Duration())

	return stats, nil
}

// CrawlLetter обходит одну категорию каталога.
func (c *CatalogUseCase) CrawlLetter(ctx context.Context, letter string) (*domain.RunStatistics, error) {
	const op = "CatalogUseCase.CrawlLetter"

	letter = strings.ToLower(strings.TrimSpace(letter))
	if !isCategoryLetter(letter) {
		return nil, e.Wrap(op, e.ErrInvalidCategoryLetter)
	}

	stats := domain.NewRunStatistics(uuid.NewString())
	c.logger.Infof("Starting category crawl. run_id: %s, letter: %s", stats.RunID, letter)

	cs := stats.StartCategory(letter)

	if err := c.crawlCategory(ctx, letter, cs); err != nil {
		cs.Aborted = true
		stats.Finish()

		return stats, e.Wrap(op, err)
	}

	stats.Finish()

	return stats, nil
}

// crawlCategory скачивает страницу категории, перечисляет препараты
// и обрабатывает их по одному. Ошибка отдельного препарата не
// прерывает категорию.
func (c *CatalogUseCase) crawlCategory(ctx context.Context, letter string, cs *domain.CategoryStats) error {
	categoryURL := fmt.Sprintf("%s/all-medicines/%s", c.baseURL, letter)

	res, err := c.gateway.Fetch(ctx, categoryURL, PurposeCategoryPage)
	if err != nil {
		return err
	}

	doc, err := scrape.ParseDocument(res.Body)
	if err != nil {
		return err
	}

	refs := c.discovery.Discover(doc)
	cs.Discovered = len(refs)
	c.logger.Infof("Category page processed. letter: %s, discovered: %d", letter, len(refs))

	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := c.processItem(ctx, ref, cs); err != nil {
			cs.Failed++
			c.logger.Warnf("Item processing failed. external_id: %s, error: %v", ref.ExternalID, err)
		}
	}

	return nil
}

// processItem собирает запись о препарате в два прохода и записывает её.
// Изображение скачивается после записи и только для строк без него,
// неудача с изображением не отменяет запись.
func (c *CatalogUseCase) processItem(ctx context.Context, ref scrape.ItemRef, cs *domain.CategoryStats) error {
	builder := scrape.NewRecordBuilder(ref.ExternalID, ref.DetailURL)

	if ref.Card != nil {
		builder.ApplyListing(c.extractor.ExtractListing(ref.Card))
	}

	res, err := c.gateway.Fetch(ctx, ref.DetailURL, PurposeItemPage)
	if err != nil {
		return err
	}

	doc, err := scrape.ParseDocument(res.Body)
	if err != nil {
		return err
	}

	builder.ApplyDetail(c.extractor.ExtractDetail(doc))

	record, err := builder.Build()
	if err != nil {
		return err
	}

	upserted, err := c.medicineRepo.Upsert(ctx, &record)
	if err != nil {
		return err
	}

	if upserted.Inserted {
		cs.Inserted++
	} else {
		cs.Updated++
	}

	if record.ImageURL != "" && upserted.Medicine.ImagePath == "" {
		if err := c.acquireImage(ctx, record.ImageURL, upserted.Medicine.SystemID); err != nil {
			cs.ImagesFailed++
			c.logger.Warnf("Image acquisition failed. system_id: %d, error: %v", upserted.Medicine.SystemID, err)
		} else {
			cs.ImagesSaved++
		}
	}

	return nil
}

// acquireImage скачивает изображение и прописывает имя файла в записи.
func (c *CatalogUseCase) acquireImage(ctx context.Context, url string, systemID int64) error {
	res, err := c.acquirer.Acquire(ctx, NewAcquireImageReq(url, systemID))
	if err != nil {
		return err
	}

	return c.medicineRepo.SetImagePath(ctx, systemID, res.Filename)
}

func isCategoryLetter(letter string) bool {
	return len(letter) == 1 && letter[0] >= 'a' && letter[0] <= 'z'
}
