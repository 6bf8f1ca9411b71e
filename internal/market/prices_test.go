package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricesMandiData(t *testing.T) {
	quotes := Prices("Punjab", "Wheat")
	require.NotEmpty(t, quotes)

	q, ok := quotes["Ludhiana Mandi"]
	require.True(t, ok)
	assert.Equal(t, 2200, q.MinPrice)
	assert.Equal(t, 2600, q.MaxPrice)
	assert.Equal(t, 2400, q.ModalPrice)
}

func TestPricesMSPFallback(t *testing.T) {
	// no sample mandi rows for Bajra anywhere, but it has an MSP
	quotes := Prices("Punjab", "Bajra")
	require.Len(t, quotes, 1)

	q, ok := quotes["MSP (Govt. Support Price)"]
	require.True(t, ok)
	assert.Equal(t, 2625, q.MinPrice)
	assert.Equal(t, 2625, q.ModalPrice)
}

func TestPricesUnknownStateFallsBackToMSP(t *testing.T) {
	quotes := Prices("Kerala", "Wheat")
	require.Len(t, quotes, 1)
	_, ok := quotes["MSP (Govt. Support Price)"]
	assert.True(t, ok)
}

func TestPricesUnknownCrop(t *testing.T) {
	assert.Empty(t, Prices("Punjab", "Dragonfruit"))
}

func TestPricesReturnsCopy(t *testing.T) {
	quotes := Prices("Punjab", "Wheat")
	quotes["Ludhiana Mandi"] = Quote{}

	again := Prices("Punjab", "Wheat")
	assert.Equal(t, 2400, again["Ludhiana Mandi"].ModalPrice, "callers must not mutate the dataset")
}

func TestMSPTable(t *testing.T) {
	msp := MSP()
	assert.Equal(t, 2275, msp["Wheat"])
	assert.Equal(t, 7121, msp["Cotton"])
	assert.Equal(t, 340, msp["Sugarcane"])
}

func TestStates(t *testing.T) {
	states := States()
	assert.Contains(t, states, "Andhra Pradesh")
	assert.Contains(t, states, "Telangana")
	assert.Contains(t, states, "Punjab")
	assert.Contains(t, states, "Maharashtra")
}
