package images

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/DRSN-tech/pharmacrawl/internal/usecase"
	"github.com/DRSN-tech/pharmacrawl/pkg/e"
	"github.com/DRSN-tech/pharmacrawl/pkg/logger"
)

type stubGateway struct {
	res  *usecase.FetchRes
	err  error
	urls []string
}

func (s *stubGateway) Fetch(_ context.Context, url string, _ usecase.FetchPurpose) (*usecase.FetchRes, error) {
	s.urls = append(s.urls, url)

	if s.err != nil {
		return nil, s.err
	}

	return s.res, nil
}

type memStore struct {
	saved map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{saved: make(map[string][]byte)}
}

func (m *memStore) Save(_ context.Context, filename string, data []byte) error {
	m.saved[filename] = data
	return nil
}

func (m *memStore) Remove(_ context.Context, filename string) error {
	delete(m.saved, filename)
	return nil
}

func (m *memStore) List(context.Context) ([]usecase.StoredImage, error) {
	images := make([]usecase.StoredImage, 0, len(m.saved))
	for name, data := range m.saved {
		images = append(images, usecase.NewStoredImage(name, int64(len(data))))
	}

	return images, nil
}

func encodePNG(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))

	return buf.Bytes()
}

func encodeJPEG(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2)), nil))

	return buf.Bytes()
}

func encodeBMP(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))

	return buf.Bytes()
}

func TestAcquireSavesValidPNG(t *testing.T) {
	body := encodePNG(t)
	gw := &stubGateway{res: usecase.NewFetchRes(body, 200, "image/png")}
	store := newMemStore()

	a := NewAcquirer(gw, store, 10<<20, logger.NewSlogLogger())

	res, err := a.Acquire(context.Background(), usecase.NewAcquireImageReq("https://dawaai.pk/images/42.png", 42))
	require.NoError(t, err)

	assert.Equal(t, "42.png", res.Filename)
	assert.Equal(t, int64(len(body)), res.SizeBytes)
	assert.Equal(t, body, store.saved["42.png"])
}

func TestAcquireJPEGExtension(t *testing.T) {
	gw := &stubGateway{res: usecase.NewFetchRes(encodeJPEG(t), 200, "image/jpeg")}
	store := newMemStore()

	a := NewAcquirer(gw, store, 10<<20, logger.NewSlogLogger())

	res, err := a.Acquire(context.Background(), usecase.NewAcquireImageReq("https://dawaai.pk/images/7.jpeg", 7))
	require.NoError(t, err)

	assert.Equal(t, "7.jpg", res.Filename)
}

func TestAcquireSavesValidBMP(t *testing.T) {
	body := encodeBMP(t)
	gw := &stubGateway{res: usecase.NewFetchRes(body, 200, "image/bmp")}
	store := newMemStore()

	a := NewAcquirer(gw, store, 10<<20, logger.NewSlogLogger())

	res, err := a.Acquire(context.Background(), usecase.NewAcquireImageReq("https://dawaai.pk/images/5.bmp", 5))
	require.NoError(t, err)

	assert.Equal(t, "5.bmp", res.Filename)
	assert.Equal(t, body, store.saved["5.bmp"])
}

func TestAcquireExtensionFollowsDecodedFormat(t *testing.T) {
	// заголовок обещает WebP, тело на самом деле PNG
	gw := &stubGateway{res: usecase.NewFetchRes(encodePNG(t), 200, "image/webp")}
	store := newMemStore()

	a := NewAcquirer(gw, store, 10<<20, logger.NewSlogLogger())

	res, err := a.Acquire(context.Background(), usecase.NewAcquireImageReq("https://dawaai.pk/images/6", 6))
	require.NoError(t, err)

	assert.Equal(t, "6.png", res.Filename)
	assert.Contains(t, store.saved, "6.png")
}

func TestAcquireDetectsMissingContentType(t *testing.T) {
	gw := &stubGateway{res: usecase.NewFetchRes(encodePNG(t), 200, "")}
	store := newMemStore()

	a := NewAcquirer(gw, store, 10<<20, logger.NewSlogLogger())

	res, err := a.Acquire(context.Background(), usecase.NewAcquireImageReq("https://dawaai.pk/images/9", 9))
	require.NoError(t, err)

	assert.Equal(t, "9.png", res.Filename)
}

func TestAcquireRejectsNonImage(t *testing.T) {
	gw := &stubGateway{res: usecase.NewFetchRes([]byte("<html>not found</html>"), 200, "text/html")}
	store := newMemStore()

	a := NewAcquirer(gw, store, 10<<20, logger.NewSlogLogger())

	_, err := a.Acquire(context.Background(), usecase.NewAcquireImageReq("https://dawaai.pk/images/1", 1))
	require.ErrorIs(t, err, e.ErrNotAnImage)
	assert.Empty(t, store.saved)
}

func TestAcquireRejectsCorruptBody(t *testing.T) {
	// заголовок обещает PNG, тело не декодируется
	gw := &stubGateway{res: usecase.NewFetchRes([]byte("garbage-bytes"), 200, "image/png")}
	store := newMemStore()

	a := NewAcquirer(gw, store, 10<<20, logger.NewSlogLogger())

	_, err := a.Acquire(context.Background(), usecase.NewAcquireImageReq("https://dawaai.pk/images/2", 2))
	require.ErrorIs(t, err, e.ErrNotAnImage)
	assert.Empty(t, store.saved)
}

func TestAcquireRejectsOversizeBody(t *testing.T) {
	body := encodePNG(t)
	gw := &stubGateway{res: usecase.NewFetchRes(body, 200, "image/png")}
	store := newMemStore()

	a := NewAcquirer(gw, store, int64(len(body)-1), logger.NewSlogLogger())

	_, err := a.Acquire(context.Background(), usecase.NewAcquireImageReq("https://dawaai.pk/images/3", 3))
	require.ErrorIs(t, err, e.ErrImageTooLarge)
	assert.Empty(t, store.saved)
}

func TestAcquirePropagatesFetchError(t *testing.T) {
	fetchErr := e.NewNetworkError("https://dawaai.pk/images/4", 3, errors.New("refused"))
	gw := &stubGateway{err: fetchErr}
	store := newMemStore()

	a := NewAcquirer(gw, store, 10<<20, logger.NewSlogLogger())

	_, err := a.Acquire(context.Background(), usecase.NewAcquireImageReq("https://dawaai.pk/images/4", 4))
	require.Error(t, err)

	var gotFetchErr *e.FetchError
	assert.True(t, errors.As(err, &gotFetchErr))
}
