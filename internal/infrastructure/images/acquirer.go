package images

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"net/http"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	// вместе со стандартными декодерами закрывают все типы из GetExtensionFromMIME
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/DRSN-tech/pharmacrawl/internal/infrastructure"
	"github.com/DRSN-tech/pharmacrawl/internal/usecase"
	"github.com/DRSN-tech/pharmacrawl/pkg/e"
	"github.com/DRSN-tech/pharmacrawl/pkg/logger"
)

// Acquirer скачивает изображение препарата через шлюз каталога,
// проверяет содержимое и кладёт файл в хранилище под именем
// {system_id}.{ext}. Битое или чужое содержимое отбрасывается
// до записи.
type Acquirer struct {
	gateway  usecase.CatalogGateway
	store    usecase.ImageStore
	maxBytes int64
	log      logger.Logger
}

func NewAcquirer(gateway usecase.CatalogGateway, store usecase.ImageStore, maxBytes int64, log logger.Logger) *Acquirer {
	return &Acquirer{
		gateway:  gateway,
		store:    store,
		maxBytes: maxBytes,
		log:      log,
	}
}

func (a *Acquirer) Acquire(ctx context.Context, req *usecase.AcquireImageReq) (*usecase.AcquireImageRes, error) {
	const op = "images.Acquirer.Acquire"

	res, err := a.gateway.Fetch(ctx, req.URL, usecase.PurposeImage)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if a.maxBytes > 0 && int64(len(res.Body)) > a.maxBytes {
		return nil, e.Wrap(op, e.ErrImageTooLarge)
	}

	mime := normalizeMIME(res.ContentType)
	if mime == "" || mime == "application/octet-stream" {
		mime = normalizeMIME(http.DetectContentType(res.Body))
	}

	if !strings.HasPrefix(mime, "image/") {
		return nil, e.Wrap(op, e.ErrNotAnImage)
	}

	// целостность проверяется декодером, заголовку сервера не доверяем
	_, format, err := image.DecodeConfig(bytes.NewReader(res.Body))
	if err != nil {
		return nil, e.Wrap(op, e.ErrNotAnImage)
	}

	// расширение определяет декодированный формат, заявленный тип остаётся запасным
	ext := extensionFromFormat(format)
	if ext == "" {
		ext, err = infrastructure.GetExtensionFromMIME(mime)
		if err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	filename := fmt.Sprintf("%d.%s", req.SystemID, ext)
	if err := a.store.Save(ctx, filename, res.Body); err != nil {
		return nil, e.Wrap(op, err)
	}

	a.log.Infof("image saved: %s (%d bytes)", filename, len(res.Body))

	return usecase.NewAcquireImageRes(filename, int64(len(res.Body))), nil
}

func extensionFromFormat(format string) string {
	switch format {
	case "jpeg":
		return "jpg"
	case "png", "gif", "bmp", "webp":
		return format
	default:
		return ""
	}
}

func normalizeMIME(contentType string) string {
	mime, _, _ := strings.Cut(contentType, ";")

	return strings.ToLower(strings.TrimSpace(mime))
}
