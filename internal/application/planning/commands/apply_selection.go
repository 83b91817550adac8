package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/chainplanner/internal/application/logging"
	"github.com/andrescamacho/chainplanner/internal/application/mediator"
	"github.com/andrescamacho/chainplanner/internal/application/planning"
	"github.com/andrescamacho/chainplanner/internal/domain/production"
)

// ApplySelectionCommand selects a recipe on every node of the current plan whose material it produces
type ApplySelectionCommand struct {
	Recipe string
}

// ApplySelectionResponse represents the plan after the selection
type ApplySelectionResponse struct {
	Plan *planning.PlanView
}

// ApplySelectionHandler handles the ApplySelection command
type ApplySelectionHandler struct {
	session *planning.Session
}

// NewApplySelectionHandler creates a new ApplySelectionHandler
func NewApplySelectionHandler(session *planning.Session) *ApplySelectionHandler {
	return &ApplySelectionHandler{
		session: session,
	}
}

// Handle executes the ApplySelection command
func (h *ApplySelectionHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ApplySelectionCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ApplySelectionCommand")
	}

	root := h.session.Root()
	if root == nil {
		return nil, &planning.ErrNoPlan{}
	}

	if err := applySelection(ctx, h.session, root, cmd.Recipe); err != nil {
		return nil, err
	}

	return &ApplySelectionResponse{
		Plan: planning.NewPlanView(h.session, root),
	}, nil
}

func applySelection(ctx context.Context, session *planning.Session, root *production.ProductionNode, name string) error {
	recipe, err := session.ResolveRecipe(name)
	if err != nil {
		return err
	}

	if err := root.HierarchicalSelection(recipe); err != nil {
		return fmt.Errorf("failed to apply %s: %w", recipe.Name, err)
	}
	if err := root.FacilityLimitError(); err != nil {
		return fmt.Errorf("failed to apply %s: %w", recipe.Name, err)
	}

	logging.LoggerFromContext(ctx).Log(logging.LevelInfo, "recipe applied across plan", map[string]interface{}{
		"recipe":  recipe.Name,
		"outputs": len(recipe.Output),
	})
	return nil
}
