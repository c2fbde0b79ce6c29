package scrape

import (
	"regexp"
	"strings"
)

// Карточки каталога вклеивают рекламные плашки прямо в текст товара,
// поэтому перед разбором бренда текст очищается от известных фраз.
var promotionalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d+%\s*Off`),
	regexp.MustCompile(`(?i)Off\s*`),
	regexp.MustCompile(`(?i)Discount`),
	regexp.MustCompile(`(?i)Sale`),
	regexp.MustCompile(`(?i)Promotion`),
	regexp.MustCompile(`(?i)Special\s+Offer`),
	regexp.MustCompile(`(?i)Limited\s+Time`),
	regexp.MustCompile(`(?i)Free\s+Shipping`),
	regexp.MustCompile(`(?i)Buy\s+One\s+Get\s+One`),
	regexp.MustCompile(`(?i)BOGO`),
	regexp.MustCompile(`(?i)New`),
	regexp.MustCompile(`(?i)Best\s+Seller`),
	regexp.MustCompile(`(?i)Top\s+Rated`),
	regexp.MustCompile(`(?i)Featured`),
}

// Корпоративные хвосты вида "Searle Pakistan Pvt Ltd" не несут
// информации о бренде и срезаются по одному с конца строки.
var brandSuffixPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\s+(Health|Limited|Pharma|Laboratories?|Ltd|Inc|Corp|Company|International|Industries?|Group|Enterprises?)$`),
	regexp.MustCompile(`(?i)\s+(Pakistan|Pvt|Private|Public|Co|Corporation)$`),
	regexp.MustCompile(`(?i)\s+(Pharmaceuticals?|Medicines?|Drugs?|Products?)$`),
	regexp.MustCompile(`(?i)\s+(Manufacturing|Trading|Marketing|Distribution)$`),
}

var (
	reSpaces        = regexp.MustCompile(`\s+`)
	reBrandCharset  = regexp.MustCompile(`^[A-Za-z\s\-\.&]+$`)
	rePackSizeLabel = regexp.MustCompile(`(?i)Pack\s+Size`)

	// Порядок важен: от самого специфичного шаблона к самому общему.
	packSizePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Pack\s+Size:\s*([^Rs]+)`),
		regexp.MustCompile(`(?i)Pack\s+Size:\s*([^,]+)`),
		regexp.MustCompile(`(?i)(\d+x\d+'s)`),
		regexp.MustCompile(`(?i)(\d+\s*[A-Za-z]+)`),
	}

	brandCandidatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
		regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+Pack`),
		regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+Rs`),
	}

	genericLabelPrefixes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^Generic\s*:\s*`),
		regexp.MustCompile(`(?i)^Active\s*:\s*`),
		regexp.MustCompile(`(?i)^Ingredient\s*:\s*`),
	}
)

const (
	brandMinLen = 2
	brandMaxLen = 50
)

// CleanPromotionalText убирает рекламные фразы и схлопывает пробелы.
func CleanPromotionalText(text string) string {
	cleaned := text
	for _, p := range promotionalPatterns {
		cleaned = p.ReplaceAllString(cleaned, "")
	}

	return collapseWhitespace(cleaned)
}

// CleanBrandName нормализует сырой текст бренда: срезает рекламу и
// корпоративные хвосты, затем проверяет длину и набор символов.
// Непрошедший проверку кандидат отбрасывается в пустую строку,
// мусор в этом поле хуже пропуска.
func CleanBrandName(raw string) string {
	if raw == "" {
		return ""
	}

	cleaned := CleanPromotionalText(raw)
	for _, p := range brandSuffixPatterns {
		cleaned = p.ReplaceAllString(cleaned, "")
	}
	cleaned = collapseWhitespace(cleaned)

	if len(cleaned) <= brandMinLen || len(cleaned) >= brandMaxLen {
		return ""
	}

	if !reBrandCharset.MatchString(cleaned) {
		return ""
	}

	return cleaned
}

// ExtractBrandName достаёт бренд из сплошного текста карточки.
// Сначала берётся фрагмент до метки "Pack Size", затем пробуются
// шаблоны капитализированных слов.
func ExtractBrandName(text string) string {
	cleaned := CleanPromotionalText(text)

	if loc := rePackSizeLabel.FindStringIndex(cleaned); loc != nil {
		before := strings.TrimSpace(cleaned[:loc[0]])
		if before != "" {
			if brand := CleanBrandName(before); brand != "" {
				return brand
			}
		}
	}

	for _, p := range brandCandidatePatterns {
		m := p.FindStringSubmatch(cleaned)
		if m == nil {
			continue
		}

		if brand := CleanBrandName(strings.TrimSpace(m[1])); brand != "" {
			return brand
		}
	}

	return ""
}

// ExtractPackSize достаёт фасовку из сплошного текста карточки
// или из полного названия препарата.
func ExtractPackSize(text string) string {
	for _, p := range packSizePatterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		if packSize := strings.TrimSpace(m[1]); packSize != "" {
			return packSize
		}
	}

	return ""
}

// CleanGenericName срезает префиксы-метки вида "Generic: ".
func CleanGenericName(raw string) string {
	cleaned := raw
	for _, p := range genericLabelPrefixes {
		cleaned = p.ReplaceAllString(cleaned, "")
	}

	return strings.TrimSpace(cleaned)
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}
