package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medicine описывает сохранённую запись о препарате.
// SystemID присваивается базой при первой вставке и больше не меняется.
type Medicine struct {
	SystemID             int64
	ExternalID           string
	CompleteName         string
	BrandName            string
	GenericName          string
	PackSize             string
	ListingPrice         decimal.NullDecimal
	ListingOriginalPrice decimal.NullDecimal
	DetailPrice          decimal.NullDecimal
	DetailOriginalPrice  decimal.NullDecimal
	GenericRefLink       string
	DetailLink           string
	ImagePath            string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
