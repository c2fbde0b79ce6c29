package pgdb

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"

	"github.com/DRSN-tech/pharmacrawl/internal/domain"
	"github.com/DRSN-tech/pharmacrawl/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/pharmacrawl/internal/usecase"
	"github.com/DRSN-tech/pharmacrawl/pkg/e"
)

// MedicineRepo реализует репозиторий лекарств поверх PostgreSQL.
type MedicineRepo struct {
	pool *pgxpool.Pool
	conv converter.MedicineConverter
}

func NewMedicineRepo(pool *pgxpool.Pool, conv converter.MedicineConverter) *MedicineRepo {
	return &MedicineRepo{
		pool: pool,
		conv: conv,
	}
}

// Upsert идемпотентно создаёт или обновляет лекарство по внешнему идентификатору.
// system_id, image_path и created_at при обновлении не трогаются,
// (xmax = 0) отличает вставку от обновления.
func (m *MedicineRepo) Upsert(ctx context.Context, record *domain.CatalogItemRecord) (*usecase.UpsertMedicineRes, error) {
	if record.ExternalID == "" {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrEmptyExternalID)
	}

	// VALUES ($1..$11) external_id, complete_name, brand_name, generic_name, pack_size,
	// listing_price, listing_original_price, detail_price, detail_original_price,
	// generic_ref_link, detail_link
	query := `
		INSERT INTO medicines (
			external_id, complete_name, brand_name, generic_name, pack_size,
			listing_price, listing_original_price, detail_price, detail_original_price,
			generic_ref_link, detail_link
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (external_id)
		DO UPDATE SET
			complete_name = EXCLUDED.complete_name,
			brand_name = EXCLUDED.brand_name,
			generic_name = EXCLUDED.generic_name,
			pack_size = EXCLUDED.pack_size,
			listing_price = EXCLUDED.listing_price,
			listing_original_price = EXCLUDED.listing_original_price,
			detail_price = EXCLUDED.detail_price,
			detail_original_price = EXCLUDED.detail_original_price,
			generic_ref_link = EXCLUDED.generic_ref_link,
			detail_link = EXCLUDED.detail_link,
			updated_at = NOW()
		RETURNING
			system_id, external_id, complete_name, brand_name, generic_name, pack_size,
			listing_price, listing_original_price, detail_price, detail_original_price,
			generic_ref_link, detail_link, image_path, created_at, updated_at,
			(xmax = 0) AS inserted
	`

	var model converter.MedicineModel
	var inserted bool
	err := m.pool.QueryRow(ctx, query,
		record.ExternalID, record.CompleteName, record.BrandName, record.GenericName, record.PackSize,
		record.ListingPrice, record.ListingOriginalPrice, record.DetailPrice, record.DetailOriginalPrice,
		record.GenericRefLink, record.DetailLink,
	).Scan(
		&model.SystemID, &model.ExternalID, &model.CompleteName, &model.BrandName, &model.GenericName,
		&model.PackSize, &model.ListingPrice, &model.ListingOriginalPrice, &model.DetailPrice,
		&model.DetailOriginalPrice, &model.GenericRefLink, &model.DetailLink, &model.ImagePath,
		&model.CreatedAt, &model.UpdatedAt, &inserted,
	)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return usecase.NewUpsertMedicineRes(m.conv.ToEntity(&model), inserted), nil
}

// SetImagePath записывает имя сохранённого файла изображения для лекарства.
func (m *MedicineRepo) SetImagePath(ctx context.Context, systemID int64, imagePath string) error {
	query := `UPDATE medicines SET image_path = $2, updated_at = NOW() WHERE system_id = $1`

	ct, err := m.pool.Exec(ctx, query, systemID, imagePath)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if ct.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), pgx.ErrNoRows)
	}

	return nil
}

// SystemIDs возвращает идентификаторы всех лекарств в каталоге.
func (m *MedicineRepo) SystemIDs(ctx context.Context) ([]int64, error) {
	query := `SELECT system_id FROM medicines ORDER BY system_id`

	rows, err := m.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return ids, nil
}

// Statistics возвращает сводные показатели заполненности каталога.
func (m *MedicineRepo) Statistics(ctx context.Context) (*usecase.CatalogStatistics, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE image_path <> ''),
			COUNT(*) FILTER (WHERE generic_name <> ''),
			COUNT(*) FILTER (WHERE listing_price IS NOT NULL),
			COUNT(*) FILTER (WHERE detail_price IS NOT NULL),
			MIN(created_at),
			MAX(created_at)
		FROM medicines
	`

	var stats usecase.CatalogStatistics
	var first, last *time.Time
	err := m.pool.QueryRow(ctx, query).Scan(
		&stats.TotalMedicines,
		&stats.MedicinesWithImages,
		&stats.MedicinesWithGenericNames,
		&stats.MedicinesWithListingPrices,
		&stats.MedicinesWithDetailPrices,
		&first, &last,
	)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if first != nil {
		stats.FirstRecord = *first
	}
	if last != nil {
		stats.LastRecord = *last
	}

	return &stats, nil
}
