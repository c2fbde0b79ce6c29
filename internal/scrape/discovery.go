package scrape

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/DRSN-tech/pharmacrawl/pkg/e"
)

var reExternalID = regexp.MustCompile(`/medicine/([^/]+)\.html`)

// cardContainerSelector описывает обёртки карточек товара в известных
// шаблонах сайта.
const cardContainerSelector = `.product-card, .medicine-card, .item, [class*="card"], [class*="product"]`

// ItemRef — ссылка на страницу препарата вместе с выведенным из неё
// стабильным идентификатором и карточкой листинга, в которой она найдена.
type ItemRef struct {
	DetailURL  string
	ExternalID string
	Card       *goquery.Selection
}

// LinkStrategy — именованный способ собрать якоря ссылок на препараты
// со страницы категории.
type LinkStrategy struct {
	Name    string
	Collect func(doc *goquery.Document) []*goquery.Selection
}

// Discovery перечисляет препараты на странице категории.
// Стратегии пробуются по порядку, пока одна из них не наберёт
// правдоподобное число ссылок. Шаблоны карточек на сайте
// неоднородны, одна стратегия молча теряет часть позиций.
type Discovery struct {
	baseURL    string
	minLinks   int
	strategies []LinkStrategy
}

func NewDiscovery(baseURL string, minLinks int) *Discovery {
	return &Discovery{
		baseURL:  strings.TrimRight(baseURL, "/"),
		minLinks: minLinks,
		strategies: []LinkStrategy{
			{Name: "anchor-scan", Collect: collectAnchors},
			{Name: "container-scan", Collect: collectFromContainers},
		},
	}
}

// Discover возвращает упорядоченный список препаратов без
// дубликатов. Повторный ExternalID на одной странице пропускается,
// побеждает первое вхождение. Если стратегия набрала меньше порога,
// пробуется следующая и остаётся больший из наборов.
func (d *Discovery) Discover(doc *goquery.Document) []ItemRef {
	var best []ItemRef

	for _, st := range d.strategies {
		refs := d.resolveRefs(st.Collect(doc))
		if len(refs) > len(best) {
			best = refs
		}

		if len(best) >= d.minLinks {
			break
		}
	}

	return best
}

// resolveRefs превращает собранные якоря в абсолютные ссылки
// с идентификаторами, отбрасывая дубликаты.
func (d *Discovery) resolveRefs(anchors []*goquery.Selection) []ItemRef {
	seen := make(map[string]struct{}, len(anchors))
	refs := make([]ItemRef, 0, len(anchors))

	for _, anchor := range anchors {
		href, ok := anchor.Attr("href")
		if !ok || href == "" || !strings.Contains(href, "/medicine/") {
			continue
		}

		detailURL := resolveURL(d.baseURL, href)

		externalID := ExternalIDFromURL(d.baseURL, detailURL)
		if _, ok := seen[externalID]; ok {
			continue
		}
		seen[externalID] = struct{}{}

		refs = append(refs, ItemRef{
			DetailURL:  detailURL,
			ExternalID: externalID,
			Card:       cardFor(anchor),
		})
	}

	return refs
}

// cardFor поднимается от якоря к обёртке карточки. Поля листинга,
// бренд, фасовка и цены, лежат в карточке рядом с якорем, не в нём самом.
func cardFor(anchor *goquery.Selection) *goquery.Selection {
	if card := anchor.Closest(cardContainerSelector); card.Length() > 0 {
		return card
	}

	if parent := anchor.Parent(); parent.Length() > 0 {
		return parent
	}

	return anchor
}

// collectAnchors отбирает все гиперссылки, путь которых имеет
// каноническую форму страницы препарата.
func collectAnchors(doc *goquery.Document) []*goquery.Selection {
	var anchors []*goquery.Selection

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if reExternalID.MatchString(href) {
			anchors = append(anchors, s)
		}
	})

	return anchors
}

var containerClassKeywords = []string{"product", "medicine", "item"}

// collectFromContainers ищет ссылку внутри каждой карточки товара.
// Стратегия шире якорной: ловит и ссылки без канонического суффикса.
func collectFromContainers(doc *goquery.Document) []*goquery.Selection {
	containers := doc.Find(cardContainerSelector)
	if containers.Length() == 0 {
		containers = doc.Find("div[class]").FilterFunction(func(_ int, s *goquery.Selection) bool {
			class, _ := s.Attr("class")
			class = strings.ToLower(class)

			for _, keyword := range containerClassKeywords {
				if strings.Contains(class, keyword) {
					return true
				}
			}

			return false
		})
	}

	var anchors []*goquery.Selection

	containers.Each(func(_ int, s *goquery.Selection) {
		link := s.Find(`a[href*="/medicine/"]`).First()
		if link.Length() > 0 {
			anchors = append(anchors, link)
		}
	})

	return anchors
}

// ExternalIDFromURL выводит стабильный идентификатор препарата из
// адреса его страницы. Для адресов, не похожих на страницу
// препарата, идентификатором становится путь с подчёркиваниями.
func ExternalIDFromURL(baseURL, detailURL string) string {
	if m := reExternalID.FindStringSubmatch(detailURL); m != nil {
		return m[1]
	}

	return strings.ReplaceAll(strings.TrimPrefix(detailURL, baseURL), "/", "_")
}

// ParseDocument разбирает HTML страницы каталога.
func ParseDocument(body []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, e.Wrap(err.Error(), e.ErrUnparsableDocument)
	}

	return doc, nil
}

func resolveURL(baseURL, href string) string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return href
	}

	ref, err := url.Parse(href)
	if err != nil {
		return href
	}

	return base.ResolveReference(ref).String()
}
