package e

import "fmt"

var (
	// Ошибки извлечения данных со страниц каталога
	ErrUnparsableDocument = fmt.Errorf("document could not be parsed")
	ErrNoCompleteName     = fmt.Errorf("no complete name extracted")

	// Ошибки записи в хранилище
	ErrEmptyExternalID = fmt.Errorf("external id is empty")

	// Ошибки обхода каталога
	ErrInvalidCategoryLetter = fmt.Errorf("category letter must be a single letter a-z")

	// Ошибки исходящих запросов
	ErrResponseTooLarge = fmt.Errorf("response body exceeds size limit")

	// Ошибки загрузки изображений
	ErrNotAnImage           = fmt.Errorf("response is not an image")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")
	ErrImageTooLarge        = fmt.Errorf("image exceeds size limit")

	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
	ErrUnknownImageBackend  = fmt.Errorf("unknown image store backend")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
