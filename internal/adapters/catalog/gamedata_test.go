package catalog_test

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/chainplanner/internal/adapters/catalog"
	"github.com/andrescamacho/chainplanner/internal/domain/production"
)

func loadBuildings(t *testing.T) []catalog.NamedBuilding {
	t.Helper()
	f, err := os.Open("testdata/buildings.json")
	require.NoError(t, err)
	defer f.Close()

	buildings, err := catalog.ParseBuildings(f)
	require.NoError(t, err)
	return buildings
}

func loadCategories(t *testing.T) []catalog.Category {
	t.Helper()
	f, err := os.Open("testdata/categories.json")
	require.NoError(t, err)
	defer f.Close()

	categories, err := catalog.ParseCategories(f)
	require.NoError(t, err)
	return categories
}

func TestParseBuildings_KeepsFileOrder(t *testing.T) {
	buildings := loadBuildings(t)

	names := make([]string, len(buildings))
	for i, building := range buildings {
		names[i] = building.Name
	}
	assert.Equal(t, []string{"Well", "Farm", "Warehouse", "House", "Cistern"}, names)
}

func TestParseBuildings_RejectsNonObject(t *testing.T) {
	_, err := catalog.ParseBuildings(strings.NewReader(`[1, 2]`))
	assert.ErrorContains(t, err, "expected an object")
}

func TestCategoryPath(t *testing.T) {
	categories := loadCategories(t)

	assert.Equal(t, []string{"Food"}, catalog.CategoryPath(categories, "Farm"))
	assert.Equal(t, []string{"Food", "Water"}, catalog.CategoryPath(categories, "Cistern"))
	assert.Equal(t, []string{"Housing"}, catalog.CategoryPath(categories, "House"))
	assert.Nil(t, catalog.CategoryPath(categories, "Harbor"))
}

func TestNormalizeBuilding(t *testing.T) {
	buildings := loadBuildings(t)
	categories := loadCategories(t)
	byName := make(map[string]catalog.Building)
	for _, building := range buildings {
		byName[building.Name] = building.Building
	}

	t.Run("production building", func(t *testing.T) {
		farm := catalog.NormalizeBuilding("Farm", byName["Farm"], categories)

		assert.Equal(t, 120.0, farm.Duration)
		assert.Equal(t, map[production.Material]float64{"water": 1}, farm.Input)
		assert.Equal(t, map[production.Material]float64{"grain": 4}, farm.Output)
		assert.Equal(t, map[production.Material]float64{"planks": 20, "bricks": 4}, farm.BuildCost)
		assert.Equal(t, 3, farm.Workers)
		assert.Equal(t, 1.5, farm.Power)
		assert.Equal(t, []string{"Food"}, farm.CategoryPath)
	})

	t.Run("building power wins over definition power", func(t *testing.T) {
		well := catalog.NormalizeBuilding("Well", byName["Well"], categories)

		assert.Equal(t, 20.0, well.Duration)
		assert.Nil(t, well.Input)
		assert.Equal(t, 2.0, well.Power)
		assert.Equal(t, 1, well.Workers)
	})

	t.Run("inhabitants stand in for workers", func(t *testing.T) {
		cistern := catalog.NormalizeBuilding("Cistern", byName["Cistern"], categories)

		assert.Equal(t, 10.0, cistern.Duration)
		assert.Equal(t, 2, cistern.Workers)
		assert.Nil(t, cistern.BuildCost)
	})

	t.Run("storage consumables are not inputs", func(t *testing.T) {
		warehouse := catalog.NormalizeBuilding("Warehouse", byName["Warehouse"], categories)

		assert.Nil(t, warehouse.Input)
		assert.Empty(t, warehouse.Output)
	})

	t.Run("housing", func(t *testing.T) {
		house := catalog.NormalizeBuilding("House", byName["House"], categories)

		assert.Equal(t, 10, house.Workers)
		assert.Equal(t, 3.0, house.Power)
		assert.Equal(t, []string{"Housing"}, house.CategoryPath)
	})
}

func TestLoadGameData(t *testing.T) {
	// Act
	bundle, err := catalog.LoadGameData("testdata/buildings.json", "testdata/categories.json")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "testdata/buildings.json", bundle.Source)
	assert.NotEmpty(t, bundle.Digest)

	names := make([]string, 0)
	for _, recipe := range bundle.Catalog.Recipes() {
		names = append(names, recipe.Name)
	}
	assert.Equal(t, []string{"Well", "Farm", "Cistern"}, names)

	water := bundle.Catalog.RecipesFor("water")
	require.Len(t, water, 2)
	assert.Equal(t, "Well", water[0].Name)
}

func TestLoadGameData_WithoutCategories(t *testing.T) {
	bundle, err := catalog.LoadGameData("testdata/buildings.json", "")

	require.NoError(t, err)
	assert.Nil(t, bundle.Catalog.Lookup("Farm").CategoryPath)
}
