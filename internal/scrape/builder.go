package scrape

import (
	"github.com/DRSN-tech/pharmacrawl/internal/domain"
	"github.com/DRSN-tech/pharmacrawl/pkg/e"
)

// RecordBuilder собирает запись о препарате в два прохода: сначала
// поля со страницы категории, затем поля со страницы препарата.
// Четыре ценовых поля независимы, их источник зашит в имени поля,
// слияние цен между страницами не выполняется.
type RecordBuilder struct {
	rec domain.CatalogItemRecord
}

func NewRecordBuilder(externalID, detailLink string) *RecordBuilder {
	return &RecordBuilder{
		rec: domain.CatalogItemRecord{
			ExternalID: externalID,
			DetailLink: detailLink,
		},
	}
}

// ApplyListing вносит поля фазы листинга.
func (b *RecordBuilder) ApplyListing(fields ListingFields) *RecordBuilder {
	b.rec.BrandName = fields.BrandName
	b.rec.PackSize = fields.PackSize
	b.rec.ListingPrice = fields.Price
	b.rec.ListingOriginalPrice = fields.OriginalPrice

	return b
}

// ApplyDetail вносит поля фазы детальной страницы. Канонические поля
// идентичности берутся отсюда, пустое значение не перекрывает уже
// внесённое.
func (b *RecordBuilder) ApplyDetail(fields DetailFields) *RecordBuilder {
	if fields.CompleteName != "" {
		b.rec.CompleteName = fields.CompleteName
	}

	if fields.GenericName != "" {
		b.rec.GenericName = fields.GenericName
	}

	if fields.GenericRefLink != "" {
		b.rec.GenericRefLink = fields.GenericRefLink
	}

	if fields.ImageURL != "" {
		b.rec.ImageURL = fields.ImageURL
	}

	b.rec.DetailPrice = fields.Price
	b.rec.DetailOriginalPrice = fields.OriginalPrice

	return b
}

// Build завершает сборку. Запись без полного названия считается
// неизвлечённой. Фасовка, не найденная в листинге, выводится из
// хвостового количественного шаблона в полном названии.
func (b *RecordBuilder) Build() (domain.CatalogItemRecord, error) {
	if b.rec.CompleteName == "" {
		return domain.CatalogItemRecord{}, e.ErrNoCompleteName
	}

	if b.rec.PackSize == "" {
		b.rec.PackSize = ExtractPackSize(b.rec.CompleteName)
	}

	return b.rec, nil
}
