package domain

import "github.com/shopspring/decimal"

// CatalogItemRecord описывает нормализованную запись о препарате,
// собранную из страниц каталога до сохранения в базу.
// ImageURL транзитен: он нужен только для последующей загрузки
// изображения и в базу не пишется.
type CatalogItemRecord struct {
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
	ImageURL             string
}
