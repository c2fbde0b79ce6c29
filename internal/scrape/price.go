package scrape

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Вёрстка каталога склеивает текущую и старую цену без разделителя,
// поэтому пара распознаётся по повторённому маркеру валюты: "Rs 226Rs 252".
var (
	rePricePair   = regexp.MustCompile(`Rs\s*(\d+(?:,\d+)*)Rs\s*(\d+(?:,\d+)*)`)
	rePriceAmount = regexp.MustCompile(`Rs\s*(\d+(?:,\d+)*)`)
)

// ParsePricePair разбирает текстовый фрагмент с ценами.
// Пара сумм трактуется как (текущая, до скидки), одиночная сумма
// становится текущей ценой, отсутствие совпадений оставляет оба
// значения пустыми.
func ParsePricePair(text string) (current, original decimal.NullDecimal) {
	if m := rePricePair.FindStringSubmatch(text); m != nil {
		current = parseAmount(m[1])
		original = parseAmount(m[2])

		if current.Valid && original.Valid {
			return current, original
		}
	}

	if m := rePriceAmount.FindStringSubmatch(text); m != nil {
		return parseAmount(m[1]), decimal.NullDecimal{}
	}

	return decimal.NullDecimal{}, decimal.NullDecimal{}
}

// parseMarkedAmount выделяет одиночную сумму с маркером валюты.
func parseMarkedAmount(text string) decimal.NullDecimal {
	if m := rePriceAmount.FindStringSubmatch(text); m != nil {
		return parseAmount(m[1])
	}

	return decimal.NullDecimal{}
}

func parseAmount(raw string) decimal.NullDecimal {
	d, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		return decimal.NullDecimal{}
	}

	return decimal.NullDecimal{Decimal: d, Valid: true}
}
