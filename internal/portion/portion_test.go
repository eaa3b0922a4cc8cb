package portion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/receiptify/backend/internal/models"
	"github.com/pageza/receiptify/backend/internal/quantity"
)

func sampleIngredients() []models.Ingredient {
	id := int64(7)
	return []models.Ingredient{
		{ID: &id, Type: "GRAINS", Name: "flour", Amount: "2", Unit: "cup"},
		{Type: "DAIRY", Name: "butter", Amount: "1/2", Unit: "cup"},
		{Type: "SWEETENERS", Name: "sugar", Amount: "1 1/2", Unit: "tbsp"},
		{Type: "HERBS", Name: "salt", Unit: "pinch"},
		{Type: "VEGETABLES", Name: "parsley", Amount: "a handful"},
		{Type: "DAIRY_EGGS"},
	}
}

func TestShouldScale(t *testing.T) {
	assert.True(t, ShouldScale(4, 8))
	assert.False(t, ShouldScale(4, 4))
	assert.False(t, ShouldScale(4, 0))
	assert.False(t, ShouldScale(4, -2))
	assert.False(t, ShouldScale(4, math.NaN()))
}

func TestScaleDoublesAmounts(t *testing.T) {
	res := Scale(4, 8, sampleIngredients())

	require.Len(t, res.Scaled, 6)
	assert.Equal(t, "4", res.Scaled[0].Amount)
	assert.Equal(t, "1", res.Scaled[1].Amount)
	assert.Equal(t, "3", res.Scaled[2].Amount)
	assert.Equal(t, "", res.Scaled[3].Amount)
	assert.Equal(t, "a handful", res.Scaled[4].Amount)
	assert.Equal(t, []string{"salt", "parsley", "DAIRY_EGGS"}, res.NonScalable)
}

func TestScalePreservesOtherFields(t *testing.T) {
	in := sampleIngredients()
	res := Scale(2, 3, in)

	for i := range in {
		assert.Equal(t, in[i].ID, res.Scaled[i].ID)
		assert.Equal(t, in[i].Name, res.Scaled[i].Name)
		assert.Equal(t, in[i].Unit, res.Scaled[i].Unit)
		assert.Equal(t, in[i].Type, res.Scaled[i].Type)
	}
	assert.Equal(t, "3", res.Scaled[0].Amount)
	assert.Equal(t, "3/4", res.Scaled[1].Amount)
	assert.Equal(t, "2 1/4", res.Scaled[2].Amount)
}

func TestScaleDoesNotMutateInput(t *testing.T) {
	in := sampleIngredients()
	before := make([]models.Ingredient, len(in))
	copy(before, in)

	_ = Scale(1, 5, in)

	assert.Equal(t, before, in)
}

func TestScaleSameServingsKeepsAmounts(t *testing.T) {
	in := []models.Ingredient{
		{Name: "milk", Amount: "0.5", Unit: "l"},
		{Name: "eggs", Amount: "3"},
		{Name: "pepper"},
	}
	res := Scale(4, 4, in)

	assert.Equal(t, "0.5", res.Scaled[0].Amount)
	assert.Equal(t, "3", res.Scaled[1].Amount)
	assert.Equal(t, []string{"pepper"}, res.NonScalable)
}

func TestScaleInverse(t *testing.T) {
	in := []models.Ingredient{
		{Name: "flour", Amount: "2 1/4", Unit: "cup"},
		{Name: "milk", Amount: "1/3", Unit: "cup"},
		{Name: "oil", Amount: "0.3", Unit: "l"},
		{Name: "eggs", Amount: "3"},
		{Name: "yeast", Amount: "1/8", Unit: "tsp"},
		{Name: "water", Amount: "1.7", Unit: "dl"},
	}

	up := Scale(3, 6, in)
	down := Scale(6, 3, up.Scaled)

	for i := range in {
		orig, ok := quantity.ParseAmount(in[i].Amount)
		require.True(t, ok)
		back, ok := quantity.ParseAmount(down.Scaled[i].Amount)
		require.True(t, ok, down.Scaled[i].Amount)
		assert.InDelta(t, orig, back, 0.05, in[i].Name)
	}
}

func TestScaleEmptyAmountNeverGetsNumber(t *testing.T) {
	in := []models.Ingredient{{Type: "HERBS", Name: "basil"}}
	for _, target := range []float64{1, 2, 10, 0.5} {
		res := Scale(2, target, in)
		assert.Equal(t, "", res.Scaled[0].Amount)
		assert.Equal(t, []string{"basil"}, res.NonScalable)
	}
}

func TestScaleZeroOriginalLeavesAmounts(t *testing.T) {
	in := []models.Ingredient{{Name: "rice", Amount: "1", Unit: "cup"}, {Name: "salt"}}
	res := Scale(0, 4, in)

	assert.Equal(t, "1", res.Scaled[0].Amount)
	assert.Equal(t, []string{"rice", "salt"}, res.NonScalable)
}
