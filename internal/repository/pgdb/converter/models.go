package converter

import (
	"time"

	"github.com/shopspring/decimal"
)

// MedicineModel представляет запись таблицы medicines в PostgreSQL.
type MedicineModel struct {
	SystemID             int64               `db:"system_id"`
	ExternalID           string              `db:"external_id"`
	CompleteName         string              `db:"complete_name"`
	BrandName            string              `db:"brand_name"`
	GenericName          string              `db:"generic_name"`
	PackSize             string              `db:"pack_size"`
	ListingPrice         decimal.NullDecimal `db:"listing_price"`
	ListingOriginalPrice decimal.NullDecimal `db:"listing_original_price"`
	DetailPrice          decimal.NullDecimal `db:"detail_price"`
	DetailOriginalPrice  decimal.NullDecimal `db:"detail_original_price"`
	GenericRefLink       string              `db:"generic_ref_link"`
	DetailLink           string              `db:"detail_link"`
	ImagePath            string              `db:"image_path"`
	CreatedAt            time.Time           `db:"created_at"`
	UpdatedAt            time.Time           `db:"updated_at"`
}
