package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/chainplanner/internal/application/mediator"
	"github.com/andrescamacho/chainplanner/internal/application/planning"
	"github.com/andrescamacho/chainplanner/internal/domain/production"
)

// ListMaterialsQuery lists producible materials and their recipes
type ListMaterialsQuery struct {
	ChoicesOnly bool // Only materials with more than one recipe
}

// ListMaterialsResponse represents the materials, sorted by name
type ListMaterialsResponse struct {
	Materials []planning.MaterialView
}

// ListMaterialsHandler handles the ListMaterials query
type ListMaterialsHandler struct {
	session *planning.Session
}

// NewListMaterialsHandler creates a new ListMaterialsHandler
func NewListMaterialsHandler(session *planning.Session) *ListMaterialsHandler {
	return &ListMaterialsHandler{
		session: session,
	}
}

// Handle executes the ListMaterials query
func (h *ListMaterialsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListMaterialsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListMaterialsQuery")
	}

	catalog := h.session.Catalog()

	var materials []production.Material
	if query.ChoicesOnly {
		materials = planning.ChoiceMaterials(catalog)
	} else {
		materials = catalog.Materials()
	}

	views := make([]planning.MaterialView, 0, len(materials))
	for _, material := range materials {
		view := planning.MaterialView{Material: string(material)}
		for _, recipe := range catalog.RecipesFor(material) {
			view.Recipes = append(view.Recipes, recipe.Name)
		}
		views = append(views, view)
	}

	return &ListMaterialsResponse{
		Materials: views,
	}, nil
}
