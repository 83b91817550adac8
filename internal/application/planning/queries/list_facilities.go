package queries

import (
	"context"
	"fmt"
	"strings"

	"github.com/andrescamacho/chainplanner/internal/application/mediator"
	"github.com/andrescamacho/chainplanner/internal/application/planning"
)

// ListFacilitiesQuery lists every recipe in the catalog with its current efficiency
type ListFacilitiesQuery struct {
	Filter string // Optional: case-insensitive substring of the recipe name
}

// ListFacilitiesResponse represents the facilities, sorted by name
type ListFacilitiesResponse struct {
	Facilities []planning.FacilityView
}

// ListFacilitiesHandler handles the ListFacilities query
type ListFacilitiesHandler struct {
	session *planning.Session
}

// NewListFacilitiesHandler creates a new ListFacilitiesHandler
func NewListFacilitiesHandler(session *planning.Session) *ListFacilitiesHandler {
	return &ListFacilitiesHandler{
		session: session,
	}
}

// Handle executes the ListFacilities query
func (h *ListFacilitiesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListFacilitiesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListFacilitiesQuery")
	}

	filter := strings.ToLower(query.Filter)
	registry := h.session.Registry()

	facilities := make([]planning.FacilityView, 0)
	for _, recipe := range registry.ListFacilities() {
		if filter != "" && !strings.Contains(strings.ToLower(recipe.Name), filter) {
			continue
		}
		facilities = append(facilities, planning.NewFacilityView(recipe, registry))
	}

	return &ListFacilitiesResponse{
		Facilities: facilities,
	}, nil
}
