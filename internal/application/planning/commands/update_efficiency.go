package commands

import (
	"context"
	"fmt"
	"math"

	"github.com/andrescamacho/chainplanner/internal/application/logging"
	"github.com/andrescamacho/chainplanner/internal/application/mediator"
	"github.com/andrescamacho/chainplanner/internal/application/planning"
)

// UpdateEfficiencyCommand sets the efficiency percentage of a recipe for the session
type UpdateEfficiencyCommand struct {
	Recipe     string
	Percentage float64
}

// UpdateEfficiencyResponse represents the result of an efficiency update
type UpdateEfficiencyResponse struct {
	Recipe     string
	Percentage float64
	Plan       *planning.PlanView // Nil when no plan has been built yet
}

// UpdateEfficiencyHandler handles the UpdateEfficiency command
type UpdateEfficiencyHandler struct {
	session *planning.Session
}

// NewUpdateEfficiencyHandler creates a new UpdateEfficiencyHandler
func NewUpdateEfficiencyHandler(session *planning.Session) *UpdateEfficiencyHandler {
	return &UpdateEfficiencyHandler{
		session: session,
	}
}

// Handle executes the UpdateEfficiency command
func (h *UpdateEfficiencyHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*UpdateEfficiencyCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *UpdateEfficiencyCommand")
	}

	if err := updateEfficiency(ctx, h.session, cmd.Recipe, cmd.Percentage); err != nil {
		return nil, err
	}

	response := &UpdateEfficiencyResponse{
		Recipe:     cmd.Recipe,
		Percentage: cmd.Percentage,
	}
	if root := h.session.Root(); root != nil {
		response.Plan = planning.NewPlanView(h.session, root)
	}
	return response, nil
}

func updateEfficiency(ctx context.Context, session *planning.Session, name string, percentage float64) error {
	if math.IsNaN(percentage) || math.IsInf(percentage, 0) || percentage < 0 {
		return &planning.ErrInvalidEfficiency{Recipe: name, Percentage: percentage}
	}

	recipe, err := session.ResolveRecipe(name)
	if err != nil {
		return err
	}

	previous := session.Registry().Efficiency(recipe)
	session.Registry().UpdateEfficiency(percentage, recipe)

	if root := session.Root(); root != nil {
		if err := root.FacilityLimitError(); err != nil {
			session.Registry().UpdateEfficiency(previous, recipe)
			return fmt.Errorf("efficiency %g%% for %s: %w", percentage, recipe.Name, err)
		}
	}

	logging.LoggerFromContext(ctx).Log(logging.LevelInfo, "efficiency updated", map[string]interface{}{
		"recipe":     recipe.Name,
		"efficiency": percentage,
	})
	return nil
}
