package scrape

import (
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://dawaai.pk"

func mustParse(t *testing.T, html string) *goquery.Document {
	t.Helper()

	doc, err := ParseDocument([]byte(html))
	require.NoError(t, err)

	return doc
}

func TestDiscoverAnchorScan(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body><ul>")
	for i := 0; i < 11; i++ {
		fmt.Fprintf(&b, `<li><a href="/medicine/drug-%d.html">Drug %d</a></li>`, i, i)
	}
	// дубликат первой позиции, должен быть подавлен
	b.WriteString(`<li><a href="/medicine/drug-0.html">Drug 0 again</a></li>`)
	b.WriteString("</ul></body></html>")

	d := NewDiscovery(testBaseURL, 10)
	refs := d.Discover(mustParse(t, b.String()))

	require.Len(t, refs, 11)
	assert.Equal(t, "drug-0", refs[0].ExternalID)
	assert.Equal(t, "https://dawaai.pk/medicine/drug-0.html", refs[0].DetailURL)
	assert.Equal(t, "drug-10", refs[10].ExternalID)
}

func TestDiscoverFallbackWinsWhenPrimaryScarce(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 3; i++ {
		fmt.Fprintf(&b, `<a href="/medicine/plain-%d.html">plain</a>`, i)
	}
	// карточки со ссылками без канонического суффикса: якорная
	// стратегия их не видит
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&b, `<div class="product-card"><a href="/medicine/card-%d">card</a></div>`, i)
	}
	b.WriteString("</body></html>")

	d := NewDiscovery(testBaseURL, 10)
	refs := d.Discover(mustParse(t, b.String()))

	assert.Len(t, refs, 12)
}

func TestDiscoverKeepsPrimaryWhenFallbackSmaller(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 3; i++ {
		fmt.Fprintf(&b, `<a href="/medicine/plain-%d.html">plain</a>`, i)
	}
	for i := 0; i < 2; i++ {
		fmt.Fprintf(&b, `<div class="medicine-card"><a href="/medicine/card-%d">card</a></div>`, i)
	}
	b.WriteString("</body></html>")

	d := NewDiscovery(testBaseURL, 10)
	refs := d.Discover(mustParse(t, b.String()))

	assert.Len(t, refs, 3)
}

func TestDiscoverSkipsPrimaryYieldAboveThreshold(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&b, `<a href="/medicine/plain-%d.html">plain</a>`, i)
	}
	fmt.Fprintf(&b, `<div class="product-card"><a href="/medicine/extra">card</a></div>`)
	b.WriteString("</body></html>")

	d := NewDiscovery(testBaseURL, 10)
	refs := d.Discover(mustParse(t, b.String()))

	// порог достигнут первой стратегией, запасная не запускается
	assert.Len(t, refs, 10)
}

func TestDiscoverAttachesListingCard(t *testing.T) {
	html := `<html><body>
		<div class="product-card">
			<a href="/medicine/arnil-1.html">Arnil</a>
			<span class="price">Rs 226</span>
		</div>
	</body></html>`

	d := NewDiscovery(testBaseURL, 10)
	refs := d.Discover(mustParse(t, html))

	require.Len(t, refs, 1)
	require.NotNil(t, refs[0].Card)
	assert.True(t, refs[0].Card.HasClass("product-card"))
}

func TestDiscoverCardFallsBackToAnchorParent(t *testing.T) {
	html := `<html><body><li><a href="/medicine/plain-1.html">plain</a></li></body></html>`

	d := NewDiscovery(testBaseURL, 10)
	refs := d.Discover(mustParse(t, html))

	require.Len(t, refs, 1)
	require.NotNil(t, refs[0].Card)
	assert.True(t, refs[0].Card.Is("li"))
}

func TestExternalIDFromURL(t *testing.T) {
	got := ExternalIDFromURL(testBaseURL, "https://dawaai.pk/medicine/arnil-1-34352.html")
	assert.Equal(t, "arnil-1-34352", got)
}

func TestExternalIDFromURLFallbackPath(t *testing.T) {
	got := ExternalIDFromURL(testBaseURL, "https://dawaai.pk/medicine/arnil-variant")
	assert.Equal(t, "_medicine_arnil-variant", got)
}

func TestExternalIDStableAcrossRuns(t *testing.T) {
	url := "https://dawaai.pk/medicine/panadol-extra-500.html"

	first := ExternalIDFromURL(testBaseURL, url)
	second := ExternalIDFromURL(testBaseURL, url)

	assert.Equal(t, first, second)
	assert.Equal(t, "panadol-extra-500", first)
}
