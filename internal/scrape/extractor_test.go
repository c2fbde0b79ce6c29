package scrape

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingCardHTML = `<html><body>
<div class="product-card">
  <a href="/medicine/arnil-1-34352.html">
    <span class="promo">10% Off</span>
    <span class="name">ArnilBrookes</span>
    <span class="meta">Pack Size: 1x20</span>
    <span class="price">Rs 226</span>
    <span class="original-price">Rs 252</span>
  </a>
</div>
</body></html>`

func TestExtractListingGluedCard(t *testing.T) {
	doc := mustParse(t, listingCardHTML)
	container := doc.Find(".product-card")
	require.Equal(t, 1, container.Length())

	x := NewExtractor(testBaseURL)
	fields := x.ExtractListing(container)

	assert.Equal(t, "ArnilBrookes", fields.BrandName)
	assert.Equal(t, "1x20", fields.PackSize)
	require.True(t, fields.Price.Valid)
	require.True(t, fields.OriginalPrice.Valid)
	assert.True(t, fields.Price.Decimal.Equal(decimal.NewFromInt(226)))
	assert.True(t, fields.OriginalPrice.Decimal.Equal(decimal.NewFromInt(252)))
}

func TestExtractListingSelectorFallback(t *testing.T) {
	doc := mustParse(t, `<html><body>
<div class="item">
  <a href="/medicine/panadol-2.html">Panadol</a>
  <div class="price">Rs 488</div>
</div>
</body></html>`)
	container := doc.Find(".item")

	x := NewExtractor(testBaseURL)
	fields := x.ExtractListing(container)

	assert.Equal(t, "Panadol", fields.BrandName)
	require.True(t, fields.Price.Valid)
	assert.True(t, fields.Price.Decimal.Equal(decimal.NewFromInt(488)))
	assert.False(t, fields.OriginalPrice.Valid)
}

const detailPageHTML = `<html><head><title>Arnil Tablets</title></head><body>
<h1>Arnil Tablets 50mg</h1>
<div class="generic-name">Generic: Diclofenac Sodium</div>
<a href="/generic/diclofenac-sodium">Diclofenac</a>
<span class="product-price">Rs 230</span>
<span class="old-price">Rs 260</span>
<img src="/img/product-placeholder.png">
<div class="product-image"><img src="/images/arnil-pack.jpg"></div>
</body></html>`

func TestExtractDetail(t *testing.T) {
	doc := mustParse(t, detailPageHTML)

	x := NewExtractor(testBaseURL)
	fields := x.ExtractDetail(doc)

	assert.Equal(t, "Arnil Tablets 50mg", fields.CompleteName)
	assert.Equal(t, "Diclofenac Sodium", fields.GenericName)
	assert.Equal(t, "https://dawaai.pk/generic/diclofenac-sodium", fields.GenericRefLink)
	require.True(t, fields.Price.Valid)
	require.True(t, fields.OriginalPrice.Valid)
	assert.True(t, fields.Price.Decimal.Equal(decimal.NewFromInt(230)))
	assert.True(t, fields.OriginalPrice.Decimal.Equal(decimal.NewFromInt(260)))
	// заглушка пропущена, взято настоящее изображение
	assert.Equal(t, "https://dawaai.pk/images/arnil-pack.jpg", fields.ImageURL)
}

func TestExtractDetailGenericFromTextPattern(t *testing.T) {
	doc := mustParse(t, `<html><body>
<h1>Ponstan Forte</h1>
<p>Each tablet Contains: Mefenamic Acid 500mg</p>
</body></html>`)

	x := NewExtractor(testBaseURL)
	fields := x.ExtractDetail(doc)

	assert.Equal(t, "Mefenamic Acid 500mg", fields.GenericName)
}

func TestExtractDetailToleratesEmptyDocument(t *testing.T) {
	doc := mustParse(t, `<html><body></body></html>`)

	x := NewExtractor(testBaseURL)
	fields := x.ExtractDetail(doc)

	assert.Equal(t, "", fields.CompleteName)
	assert.Equal(t, "", fields.GenericName)
	assert.Equal(t, "", fields.ImageURL)
	assert.False(t, fields.Price.Valid)
	assert.False(t, fields.OriginalPrice.Valid)
}

func TestFlattenTextGluesStrippedNodes(t *testing.T) {
	doc := mustParse(t, `<div><span> Rs 226 </span><span>
	Rs 252 </span></div>`)

	assert.Equal(t, "Rs 226Rs 252", flattenText(doc.Find("div")))
}
