package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/chainplanner/internal/application/mediator"
	"github.com/andrescamacho/chainplanner/internal/application/planning"
)

// GetSelectionMaterialsQuery lists the bulk-selectable materials of the current plan
type GetSelectionMaterialsQuery struct{}

// GetSelectionMaterialsResponse pairs each selectable material with its recipe choices
type GetSelectionMaterialsResponse struct {
	Materials []planning.MaterialView
}

// GetSelectionMaterialsHandler handles the GetSelectionMaterials query
type GetSelectionMaterialsHandler struct {
	session *planning.Session
}

// NewGetSelectionMaterialsHandler creates a new GetSelectionMaterialsHandler
func NewGetSelectionMaterialsHandler(session *planning.Session) *GetSelectionMaterialsHandler {
	return &GetSelectionMaterialsHandler{
		session: session,
	}
}

// Handle executes the GetSelectionMaterials query
func (h *GetSelectionMaterialsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*GetSelectionMaterialsQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetSelectionMaterialsQuery")
	}

	root := h.session.Root()
	if root == nil {
		return nil, &planning.ErrNoPlan{}
	}

	catalog := h.session.Catalog()
	materials := planning.SelectionMaterials(root, catalog)

	views := make([]planning.MaterialView, 0, len(materials))
	for _, material := range materials {
		view := planning.MaterialView{Material: string(material)}
		for _, recipe := range catalog.RecipesFor(material) {
			view.Recipes = append(view.Recipes, recipe.Name)
		}
		views = append(views, view)
	}

	return &GetSelectionMaterialsResponse{
		Materials: views,
	}, nil
}
