package scrape

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
	"golang.org/x/net/html"
)

// Списки селекторов упорядочены от точных классов к общим шаблонам:
// разметка карточек на сайте меняется от шаблона к шаблону.
var (
	listingPriceSelectors = []string{
		".price", ".current-price", ".discounted-price", ".sale-price",
		`span[class*="price"]`, `div[class*="price"]`,
	}
	listingOriginalPriceSelectors = []string{
		".original-price", ".old-price", ".strike-price",
		`span[class*="original"]`, `div[class*="original"]`,
	}
	detailPriceSelectors = []string{
		".price", ".current-price", ".discounted-price", ".sale-price",
		".product-price", ".medicine-price",
		`span[class*="price"]`, `div[class*="price"]`,
		".cost", ".amount",
	}
	detailOriginalPriceSelectors = []string{
		".original-price", ".old-price", ".strike-price", ".crossed-price",
		`span[class*="original"]`, `div[class*="original"]`,
		`span[class*="old"]`, `div[class*="old"]`,
	}
	completeNameSelectors = []string{
		"h1", ".product-title", ".medicine-title", ".product-name", ".medicine-name", "title",
	}
	genericSelectors = []string{
		".generic-name", ".generic-info", ".active-ingredient", ".ingredient", ".drug-ingredient",
		`span:contains("Generic")`, `div:contains("Generic")`,
		`span:contains("Active")`, `div:contains("Active")`,
		`span:contains("Ingredient")`, `div:contains("Ingredient")`,
		".product-description", ".medicine-description",
	}
	genericLinkSelectors = []string{
		`a[href*="/generic/"]`, `a[href*="generic"]`, ".generic-link a", `a[href*="ingredient"]`,
	}
	imageSelectors = []string{
		`img[src*="medicine"]`, `img[src*="product"]`,
		".product-image img", ".medicine-image img",
		`img[alt*="medicine"]`, `img[alt*="drug"]`,
		`img[src*=".jpg"]`, `img[src*=".png"]`, `img[src*=".jpeg"]`,
		"img",
	}

	imagePlaceholderMarkers = []string{"placeholder", "no-image", "default"}

	genericTextPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Generic[:\s]+([^,\n\r]+)`),
		regexp.MustCompile(`(?i)Active[:\s]+([^,\n\r]+)`),
		regexp.MustCompile(`(?i)Ingredient[:\s]+([^,\n\r]+)`),
		regexp.MustCompile(`(?i)Contains[:\s]+([^,\n\r]+)`),
		regexp.MustCompile(`(?i)Composition[:\s]+([^,\n\r]+)`),
		regexp.MustCompile(`(?i)([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+\([A-Za-z\s]+\d+[a-z]*\)`),
		regexp.MustCompile(`(?i)([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+\d+[a-z]*`),
	}
)

// Extractor разбирает карточки листинга и страницы препаратов.
// Отсутствие элемента на странице даёт пустое поле, а не ошибку.
type Extractor struct {
	baseURL string
}

func NewExtractor(baseURL string) *Extractor {
	return &Extractor{baseURL: strings.TrimRight(baseURL, "/")}
}

// ListingFields — поля, доступные в карточке на странице категории.
type ListingFields struct {
	BrandName     string
	PackSize      string
	Price         decimal.NullDecimal
	OriginalPrice decimal.NullDecimal
}

// DetailFields — поля, доступные на странице препарата.
type DetailFields struct {
	CompleteName   string
	GenericName    string
	GenericRefLink string
	Price          decimal.NullDecimal
	OriginalPrice  decimal.NullDecimal
	ImageURL       string
}

// ExtractListing разбирает карточку препарата на странице категории.
func (x *Extractor) ExtractListing(container *goquery.Selection) ListingFields {
	text := flattenText(container)

	fields := ListingFields{
		BrandName: ExtractBrandName(text),
		PackSize:  ExtractPackSize(text),
	}
	fields.Price, fields.OriginalPrice = listingPrices(container, text)

	return fields
}

// ExtractDetail разбирает страницу препарата.
func (x *Extractor) ExtractDetail(doc *goquery.Document) DetailFields {
	fields := DetailFields{
		CompleteName:   extractCompleteName(doc),
		GenericName:    extractGenericName(doc),
		GenericRefLink: x.extractGenericRefLink(doc),
		ImageURL:       x.extractImageURL(doc),
	}
	fields.Price = firstAmount(doc.Selection, detailPriceSelectors)
	fields.OriginalPrice = firstAmount(doc.Selection, detailOriginalPriceSelectors)

	return fields
}

// listingPrices сначала ищет склеенную пару цен в сплошном тексте
// карточки, затем перебирает ценовые элементы по отдельности.
func listingPrices(container *goquery.Selection, text string) (decimal.NullDecimal, decimal.NullDecimal) {
	if m := rePricePair.FindStringSubmatch(text); m != nil {
		current, original := parseAmount(m[1]), parseAmount(m[2])
		if current.Valid && original.Valid {
			return current, original
		}
	}

	return firstAmount(container, listingPriceSelectors),
		firstAmount(container, listingOriginalPriceSelectors)
}

// firstAmount перебирает селекторы и возвращает первую распознанную сумму.
func firstAmount(root *goquery.Selection, selectors []string) decimal.NullDecimal {
	for _, sel := range selectors {
		el := root.Find(sel).First()
		if el.Length() == 0 {
			continue
		}

		if amount := parseMarkedAmount(flattenText(el)); amount.Valid {
			return amount
		}
	}

	return decimal.NullDecimal{}
}

func extractCompleteName(doc *goquery.Document) string {
	for _, sel := range completeNameSelectors {
		el := doc.Find(sel).First()
		if el.Length() == 0 {
			continue
		}

		if name := flattenText(el); len(name) > 3 {
			return name
		}
	}

	return ""
}

func extractGenericName(doc *goquery.Document) string {
	for _, sel := range genericSelectors {
		el := doc.Find(sel).First()
		if el.Length() == 0 {
			continue
		}

		if generic := flattenText(el); len(generic) > 3 {
			return CleanGenericName(generic)
		}
	}

	// Запасной путь: метки и характерные формы действующего
	// вещества в сплошном тексте страницы.
	text := doc.Text()
	for _, p := range genericTextPatterns {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			if cand := strings.TrimSpace(m[1]); len(cand) > 3 {
				return cand
			}
		}
	}

	return ""
}

func (x *Extractor) extractGenericRefLink(doc *goquery.Document) string {
	for _, sel := range genericLinkSelectors {
		link := doc.Find(sel).First()
		if href, ok := link.Attr("href"); ok && href != "" {
			return resolveURL(x.baseURL, href)
		}
	}

	return ""
}

func (x *Extractor) extractImageURL(doc *goquery.Document) string {
	for _, sel := range imageSelectors {
		img := doc.Find(sel).First()

		src, ok := img.Attr("src")
		if !ok || src == "" {
			continue
		}

		if isPlaceholderImage(src) {
			continue
		}

		return resolveURL(x.baseURL, src)
	}

	return ""
}

func isPlaceholderImage(src string) bool {
	lower := strings.ToLower(src)

	for _, marker := range imagePlaceholderMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}

	return false
}

// flattenText повторяет склейку текста в вёрстке карточек: каждый
// текстовый узел обрезается по краям и узлы соединяются без
// разделителя. Именно так соседние цены дают "Rs 226Rs 252".
func flattenText(sel *goquery.Selection) string {
	var b strings.Builder

	for _, node := range sel.Nodes {
		appendText(&b, node)
	}

	return b.String()
}

func appendText(b *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		b.WriteString(strings.TrimSpace(n.Data))
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		appendText(b, c)
	}
}
