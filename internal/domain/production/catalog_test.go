package production_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/chainplanner/internal/domain/production"
)

func TestStaticCatalog_IndexesByOutput(t *testing.T) {
	// Arrange
	smelter := recipe("Smelter", 60, quantities{"iron": 1, "slag": 1}, quantities{"iron_ore": 2})
	forge := recipe("Forge", 30, quantities{"iron": 2}, quantities{"iron_ore": 3, "coal": 1})
	mine := recipe("Mine", 60, quantities{"iron_ore": 1}, nil)

	// Act
	catalog, err := production.NewStaticCatalog(smelter, forge, mine)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3, catalog.Count())
	assert.Equal(t, []*production.Recipe{smelter, forge}, catalog.RecipesFor("iron"))
	assert.Equal(t, []*production.Recipe{smelter}, catalog.RecipesFor("slag"))
	assert.Nil(t, catalog.RecipesFor("coal"))
	assert.Equal(t, []production.Material{"iron", "iron_ore", "slag"}, catalog.Materials())
	assert.Equal(t, []*production.Recipe{smelter, forge, mine}, catalog.Recipes())
	assert.Same(t, forge, catalog.Lookup("Forge"))
	assert.Nil(t, catalog.Lookup("Kiln"))
	assert.Same(t, mine, production.FindRecipe(catalog, "Mine"))
}

func TestStaticCatalog_RecipesForReturnsCopy(t *testing.T) {
	// Arrange
	first := recipe("First", 60, quantities{"M": 1}, nil)
	second := recipe("Second", 60, quantities{"M": 1}, nil)
	catalog := production.MustStaticCatalog(first, second)

	// Act
	recipes := catalog.RecipesFor("M")
	recipes[0] = second

	// Assert
	assert.Same(t, first, catalog.RecipesFor("M")[0])
}

func TestStaticCatalog_Rejects(t *testing.T) {
	t.Run("duplicate name", func(t *testing.T) {
		_, err := production.NewStaticCatalog(
			recipe("Mill", 60, quantities{"flour": 1}, nil),
			recipe("Mill", 30, quantities{"bran": 1}, nil),
		)

		var duplicate *production.ErrDuplicateRecipe
		require.True(t, errors.As(err, &duplicate))
		assert.Equal(t, "Mill", duplicate.Name)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := production.NewStaticCatalog(recipe("", 60, quantities{"flour": 1}, nil))
		assert.ErrorContains(t, err, "name cannot be empty")
	})

	t.Run("nil recipe", func(t *testing.T) {
		_, err := production.NewStaticCatalog(nil)
		assert.ErrorContains(t, err, "recipe cannot be nil")
	})
}

func TestRecipe_Accessors(t *testing.T) {
	r := recipe("Bakery", 90, quantities{"bread": 4}, quantities{"water": 1, "flour": 2})

	assert.Equal(t, 2.0, r.InputQuantity("flour"))
	assert.Equal(t, 0.0, r.InputQuantity("salt"))
	assert.Equal(t, 4.0, r.OutputQuantity("bread"))
	assert.True(t, r.Produces("bread"))
	assert.False(t, r.Produces("flour"))
	assert.Equal(t, []production.Material{"flour", "water"}, r.InputMaterials())
	assert.Equal(t, []production.Material{"bread"}, r.OutputMaterials())
}

func TestDetectCycles(t *testing.T) {
	t.Run("acyclic catalog", func(t *testing.T) {
		a1, b1 := abChain()
		catalog := production.MustStaticCatalog(a1, b1)

		assert.NoError(t, production.DetectCycles(catalog, "A"))
		assert.NoError(t, production.ValidateAcyclic(catalog))
	})

	t.Run("shared input is not a cycle", func(t *testing.T) {
		catalog := production.MustStaticCatalog(
			recipe("R1", 60, quantities{"R": 1}, quantities{"A": 1, "C": 1}),
			recipe("A1", 60, quantities{"A": 1}, quantities{"C": 1}),
			recipe("C1", 60, quantities{"C": 1}, nil),
		)

		assert.NoError(t, production.ValidateAcyclic(catalog))
	})

	t.Run("cycle through alternative recipe", func(t *testing.T) {
		catalog := production.MustStaticCatalog(
			recipe("Fuel1", 60, quantities{"fuel": 1}, quantities{"oil": 1}),
			recipe("Oil1", 60, quantities{"oil": 1}, nil),
			recipe("Oil2", 60, quantities{"oil": 3}, quantities{"fuel": 1}),
		)

		err := production.DetectCycles(catalog, "fuel")

		var circular *production.ErrCircularDependency
		require.True(t, errors.As(err, &circular))
		assert.Equal(t, production.Material("fuel"), circular.Material)
		assert.Equal(t, []production.Material{"fuel", "oil", "fuel"}, circular.Chain)
		assert.Contains(t, err.Error(), "fuel -> oil -> fuel")
	})
}

func TestTotals_AddAndMerge(t *testing.T) {
	// Arrange
	left := production.Totals{}
	left.Add("Mine", "ore", 2)
	left.Add("Mill", "flour", 1)

	right := production.Totals{}
	right.Add("Mine", "ore", 3)
	right.Add("Well", "water", 4)

	// Act
	left.Merge(right)

	// Assert
	assert.Equal(t, []string{"Mill", "Mine", "Well"}, left.Facilities())
	assert.Equal(t, 5.0, left.Rate("Mine", "ore"))
	assert.Equal(t, 4.0, left.Rate("Well", "water"))
	assert.Equal(t, 0.0, left.Rate("Well", "ore"))
	assert.Equal(t, []production.Material{"ore"}, left.Materials("Mine"))
}
