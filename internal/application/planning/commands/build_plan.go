package commands

import (
	"context"
	"fmt"
	"math"

	"github.com/andrescamacho/chainplanner/internal/application/logging"
	"github.com/andrescamacho/chainplanner/internal/application/mediator"
	"github.com/andrescamacho/chainplanner/internal/application/planning"
	"github.com/andrescamacho/chainplanner/internal/domain/production"
)

// BuildPlanCommand builds a production tree for a target material
type BuildPlanCommand struct {
	Material string
	Rate     *float64 // Optional: required output per minute of the root
}

// BuildPlanResponse represents the built plan
type BuildPlanResponse struct {
	Root *production.ProductionNode
	View *planning.PlanView
}

// BuildPlanHandler handles the BuildPlan command
type BuildPlanHandler struct {
	session *planning.Session
}

// NewBuildPlanHandler creates a new BuildPlanHandler
func NewBuildPlanHandler(session *planning.Session) *BuildPlanHandler {
	return &BuildPlanHandler{
		session: session,
	}
}

// Handle executes the BuildPlan command
func (h *BuildPlanHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*BuildPlanCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *BuildPlanCommand")
	}

	if cmd.Material == "" {
		return nil, fmt.Errorf("material is required")
	}
	if cmd.Rate != nil && (math.IsNaN(*cmd.Rate) || math.IsInf(*cmd.Rate, 0)) {
		return nil, fmt.Errorf("rate must be a finite number")
	}

	root, err := h.session.Plan(production.Material(cmd.Material), cmd.Rate)
	if err != nil {
		return nil, err
	}

	view := planning.NewPlanView(h.session, root)
	logging.LoggerFromContext(ctx).Log(logging.LevelInfo, "production plan built", map[string]interface{}{
		"session_id":       h.session.ID.String(),
		"material":         cmd.Material,
		"nodes":            view.NodeCount,
		"depth":            view.Depth,
		"total_facilities": view.TotalFacilities,
	})

	return &BuildPlanResponse{
		Root: root,
		View: view,
	}, nil
}
