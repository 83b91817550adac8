package queries_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/chainplanner/internal/application/mediator"
	"github.com/andrescamacho/chainplanner/internal/application/planning"
	"github.com/andrescamacho/chainplanner/internal/application/planning/queries"
	"github.com/andrescamacho/chainplanner/internal/domain/production"
)

type quantities = map[production.Material]float64

func setup(t *testing.T) (mediator.Mediator, *planning.Session) {
	t.Helper()

	catalog := production.MustStaticCatalog(
		&production.Recipe{Name: "Smelter", Duration: 60, Output: quantities{"iron": 1}, Input: quantities{"ore": 2}, Power: 5},
		&production.Recipe{Name: "Bloomery", Duration: 120, Output: quantities{"iron": 1}, Input: quantities{"ore": 3, "charcoal": 1}},
		&production.Recipe{Name: "Mine", Duration: 30, Output: quantities{"ore": 1}, Workers: 4},
		&production.Recipe{Name: "Kiln", Duration: 60, Output: quantities{"charcoal": 2}},
		&production.Recipe{Name: "Forge", Duration: 90, Output: quantities{"steel": 1}, Input: quantities{"iron": 2}},
	)
	session := planning.NewSession(catalog, nil)

	med := mediator.NewMediator()
	require.NoError(t, queries.RegisterHandlers(med, session))
	return med, session
}

func TestListFacilitiesHandler(t *testing.T) {
	// Arrange
	med, session := setup(t)
	session.Registry().UpdateEfficiency(80, production.FindRecipe(session.Catalog(), "Mine"))

	// Act
	response, err := med.Send(context.Background(), &queries.ListFacilitiesQuery{})

	// Assert
	require.NoError(t, err)
	facilities := response.(*queries.ListFacilitiesResponse).Facilities
	require.Len(t, facilities, 5)

	names := make([]string, len(facilities))
	for i, facility := range facilities {
		names[i] = facility.Name
	}
	assert.Equal(t, []string{"Bloomery", "Forge", "Kiln", "Mine", "Smelter"}, names)
	assert.Equal(t, 80.0, facilities[3].Efficiency)
	assert.Equal(t, 4, facilities[3].Workers)
	assert.Equal(t, 100.0, facilities[4].Efficiency)
	assert.Equal(t, map[string]float64{"ore": 2}, facilities[4].Input)
	assert.Equal(t, 5.0, facilities[4].Power)
}

func TestListFacilitiesHandler_Filter(t *testing.T) {
	med, _ := setup(t)

	response, err := med.Send(context.Background(), &queries.ListFacilitiesQuery{Filter: "MIN"})

	require.NoError(t, err)
	facilities := response.(*queries.ListFacilitiesResponse).Facilities
	require.Len(t, facilities, 1)
	assert.Equal(t, "Mine", facilities[0].Name)
}

func TestListMaterialsHandler(t *testing.T) {
	med, _ := setup(t)

	response, err := med.Send(context.Background(), &queries.ListMaterialsQuery{})
	require.NoError(t, err)
	assert.Equal(t, []planning.MaterialView{
		{Material: "charcoal", Recipes: []string{"Kiln"}},
		{Material: "iron", Recipes: []string{"Smelter", "Bloomery"}},
		{Material: "ore", Recipes: []string{"Mine"}},
		{Material: "steel", Recipes: []string{"Forge"}},
	}, response.(*queries.ListMaterialsResponse).Materials)

	response, err = med.Send(context.Background(), &queries.ListMaterialsQuery{ChoicesOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []planning.MaterialView{
		{Material: "iron", Recipes: []string{"Smelter", "Bloomery"}},
	}, response.(*queries.ListMaterialsResponse).Materials)
}

func TestGetSelectionMaterialsHandler(t *testing.T) {
	t.Run("requires a plan", func(t *testing.T) {
		med, _ := setup(t)

		_, err := med.Send(context.Background(), &queries.GetSelectionMaterialsQuery{})

		var noPlan *planning.ErrNoPlan
		assert.True(t, errors.As(err, &noPlan))
	})

	t.Run("lists choices below the root", func(t *testing.T) {
		// Arrange: a steel plan consumes iron, which has two recipes
		med, session := setup(t)
		_, err := session.Plan("steel", nil)
		require.NoError(t, err)

		// Act
		response, err := med.Send(context.Background(), &queries.GetSelectionMaterialsQuery{})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []planning.MaterialView{
			{Material: "iron", Recipes: []string{"Smelter", "Bloomery"}},
		}, response.(*queries.GetSelectionMaterialsResponse).Materials)
	})

	t.Run("no choices below a single-recipe chain", func(t *testing.T) {
		med, session := setup(t)
		_, err := session.Plan("iron", nil)
		require.NoError(t, err)

		response, err := med.Send(context.Background(), &queries.GetSelectionMaterialsQuery{})

		require.NoError(t, err)
		assert.Empty(t, response.(*queries.GetSelectionMaterialsResponse).Materials)
	})
}
