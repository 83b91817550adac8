package commands

import (
	"github.com/andrescamacho/chainplanner/internal/application/mediator"
	"github.com/andrescamacho/chainplanner/internal/application/planning"
)

// RegisterHandlers registers every planning command handler for session
func RegisterHandlers(med mediator.Mediator, session *planning.Session) error {
	if err := mediator.RegisterHandler[*BuildPlanCommand](med, NewBuildPlanHandler(session)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*UpdateEfficiencyCommand](med, NewUpdateEfficiencyHandler(session)); err != nil {
		return err
	}
	return mediator.RegisterHandler[*ApplySelectionCommand](med, NewApplySelectionHandler(session))
}
