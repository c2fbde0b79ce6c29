package usecase

import (
	"time"

	"github.com/DRSN-tech/pharmacrawl/internal/domain"
)

// GATEWAY

// FetchPurpose определяет полосу вежливой паузы перед запросом:
// страницы категорий выдерживают длинную паузу, изображения короткую.
type FetchPurpose int

const (
	PurposeItemPage FetchPurpose = iota
	PurposeCategoryPage
	PurposeImage
)

func (p FetchPurpose) String() string {
	switch p {
	case PurposeCategoryPage:
		return "category-page"
	case PurposeImage:
		return "image"
	default:
		return "item-page"
	}
}

// FetchRes — ответ шлюза каталога.
type FetchRes struct {
	Body        []byte
	StatusCode  int
	ContentType string
}

// INFRASTRUCTURE

// AcquireImageReq — запрос на загрузку изображения препарата.
// SystemID задаёт основу имени файла, поэтому имя стабильно
// между прогонами.
type AcquireImageReq struct {
	URL      string
	SystemID int64
}

// AcquireImageRes — результат сохранения изображения.
type AcquireImageRes struct {
	Filename  string
	SizeBytes int64
}

// REPOSITORIES

// UpsertMedicineRes — результат идемпотентной записи препарата.
type UpsertMedicineRes struct {
	Medicine *domain.Medicine
	Inserted bool
}

// StoredImage — файл в хранилище изображений.
type StoredImage struct {
	Filename  string
	SizeBytes int64
}

// CatalogStatistics — сводка по сохранённым препаратам.
type CatalogStatistics struct {
	TotalMedicines             int64
	MedicinesWithImages        int64
	MedicinesWithGenericNames  int64
	MedicinesWithListingPrices int64
	MedicinesWithDetailPrices  int64
	FirstRecord                time.Time
	LastRecord                 time.Time
}

// StatisticsRes — ответ команды статистики: база и хранилище изображений.
type StatisticsRes struct {
	Catalog     *CatalogStatistics
	TotalImages int
	TotalSizeMB float64
}

// CleanupRes — результат чистки осиротевших изображений.
type CleanupRes struct {
	Removed []string
}

// MAPPERS

func NewFetchRes(body []byte, statusCode int, contentType string) *FetchRes {
	return &FetchRes{
		Body:        body,
		StatusCode:  statusCode,
		ContentType: contentType,
	}
}

func NewAcquireImageReq(url string, systemID int64) *AcquireImageReq {
	return &AcquireImageReq{
		URL:      url,
		SystemID: systemID,
	}
}

func NewAcquireImageRes(filename string, sizeBytes int64) *AcquireImageRes {
	return &AcquireImageRes{
		Filename:  filename,
		SizeBytes: sizeBytes,
	}
}

func NewUpsertMedicineRes(medicine *domain.Medicine, inserted bool) *UpsertMedicineRes {
	return &UpsertMedicineRes{
		Medicine: medicine,
		Inserted: inserted,
	}
}

func NewStoredImage(filename string, sizeBytes int64) StoredImage {
	return StoredImage{
		Filename:  filename,
		SizeBytes: sizeBytes,
	}
}

func NewStatisticsRes(catalog *CatalogStatistics, totalImages int, totalSizeMB float64) *StatisticsRes {
	return &StatisticsRes{
		Catalog:     catalog,
		TotalImages: totalImages,
		TotalSizeMB: totalSizeMB,
	}
}

func NewCleanupRes(removed []string) *CleanupRes {
	return &CleanupRes{
		Removed: removed,
	}
}
