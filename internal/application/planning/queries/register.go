package queries

import (
	"github.com/andrescamacho/chainplanner/internal/application/mediator"
	"github.com/andrescamacho/chainplanner/internal/application/planning"
)

// RegisterHandlers registers every planning query handler for session
func RegisterHandlers(med mediator.Mediator, session *planning.Session) error {
	if err := mediator.RegisterHandler[*ListFacilitiesQuery](med, NewListFacilitiesHandler(session)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*ListMaterialsQuery](med, NewListMaterialsHandler(session)); err != nil {
		return err
	}
	return mediator.RegisterHandler[*GetSelectionMaterialsQuery](med, NewGetSelectionMaterialsHandler(session))
}
