package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanzki/rsu-tax-calculator/internal/model"
)

func TestESPPBasis(t *testing.T) {
	tests := []struct {
		name  string
		price string
		fmv   string
		want  string
	}{
		{"purchase price above fmv less ten percent", "36.5", "40.2", "36.5"},
		{"discounted fmv above purchase price", "30", "40.2", "36.18"},
		{"purchase price well above discounted fmv", "38", "40", "38"},
		{"exactly ten percent", "36", "40", "36"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ESPPBasis(usd(tt.price), usd(tt.fmv), DefaultESPPDiscount)
			assert.True(t, usd(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestBuildESPPLots(t *testing.T) {
	late := deposit("2023-06-30", 8, "36.5", "40.2")
	early := deposit("2022-12-30", 5, "20", "21")
	early.PurchaseDate = day("2022-12-29")

	lots := BuildESPPLots([]model.EquityPlan{late, lapse("2023-01-01", 1, 0, "1"), early}, DefaultESPPDiscount)
	require.Len(t, lots, 2)
	assert.True(t, lots[0].AcquisitionDate.Equal(day("2022-12-29")))
	assert.Equal(t, "20", lots[0].AcquisitionPriceUSD.String())
	assert.Equal(t, "36.5", lots[1].AcquisitionPriceUSD.String())
}

func TestCalculateESPPCostBases(t *testing.T) {
	sale := planSale("2023-09-01", 10, "45", "0.25")
	forced := planSale("2023-09-15", 2, "44", "")
	forced.Forced = true
	equity := []model.EquityPlan{
		deposit("2023-06-30", 8, "36.5", "40.2"),
		deposit("2022-12-30", 5, "20", "21"),
		sale,
		forced,
	}

	disposals, err := CalculateESPPCostBases(equity, BuildESPPLots(equity, DefaultESPPDiscount))
	require.NoError(t, err)
	require.Len(t, disposals, 3)

	assert.Equal(t, int64(5), disposals[0].Quantity)
	assert.True(t, disposals[0].PurchaseDate.Equal(day("2022-12-30")))
	assert.Equal(t, int64(5), disposals[1].Quantity)
	assert.Equal(t, "36.5", disposals[1].PurchasePriceUSD.String())
	assert.Same(t, forced, disposals[2].Source)
	for _, d := range disposals {
		assert.True(t, d.ESPP)
	}
	assert.Equal(t, "45", disposals[0].SalePriceUSD.String())
}

func TestCalculateESPPCostBases_Oversold(t *testing.T) {
	equity := []model.EquityPlan{deposit("2023-06-30", 1, "10", "10"), planSale("2023-09-01", 2, "12", "")}
	_, err := CalculateESPPCostBases(equity, BuildESPPLots(equity, DefaultESPPDiscount))
	assert.Error(t, err)
}
