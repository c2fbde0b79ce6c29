package scrape

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePricePairGluedAmounts(t *testing.T) {
	current, original := ParsePricePair("Rs 226Rs 252")

	require.True(t, current.Valid)
	require.True(t, original.Valid)
	assert.True(t, current.Decimal.Equal(decimal.NewFromInt(226)))
	assert.True(t, original.Decimal.Equal(decimal.NewFromInt(252)))
}

func TestParsePricePairThousandsSeparators(t *testing.T) {
	current, original := ParsePricePair("Rs 2,008Rs 2,231")

	require.True(t, current.Valid)
	require.True(t, original.Valid)
	assert.True(t, current.Decimal.Equal(decimal.NewFromInt(2008)))
	assert.True(t, original.Decimal.Equal(decimal.NewFromInt(2231)))
}

func TestParsePricePairSingleAmount(t *testing.T) {
	current, original := ParsePricePair("Rs 488")

	require.True(t, current.Valid)
	assert.True(t, current.Decimal.Equal(decimal.NewFromInt(488)))
	assert.False(t, original.Valid)
}

func TestParsePricePairNoMatch(t *testing.T) {
	current, original := ParsePricePair("price on request")

	assert.False(t, current.Valid)
	assert.False(t, original.Valid)
}
