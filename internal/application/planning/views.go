package planning

import (
	"github.com/google/uuid"

	"github.com/andrescamacho/chainplanner/internal/domain/production"
)

// NodeView is a read-only snapshot of a production node and its subtree
type NodeView struct {
	Material        string     `json:"material"`
	Recipe          string     `json:"recipe"`
	Alternatives    []string   `json:"alternatives,omitempty"`
	Depth           int        `json:"depth"`
	FactoryCount    int        `json:"factory_count"`
	ProductionRate  float64    `json:"production_rate"`
	RequiredRate    *float64   `json:"required_rate,omitempty"`
	Saturated       bool       `json:"saturated,omitempty"`
	Efficiency      float64    `json:"efficiency"`
	EfficiencyLabel string     `json:"-"`
	Children        []NodeView `json:"children,omitempty"`
}

// TotalView is one (facility, material) entry of a totals map
type TotalView struct {
	Recipe   string  `json:"recipe"`
	Material string  `json:"material"`
	Rate     float64 `json:"rate"`
}

// PlanView is the snapshot of a whole plan
type PlanView struct {
	SessionID          uuid.UUID   `json:"session_id"`
	Root               NodeView    `json:"root"`
	Totals             []TotalView `json:"totals"`
	NodeCount          int         `json:"node_count"`
	Depth              int         `json:"depth"`
	TotalFacilities    int         `json:"total_facilities"`
	RawMaterials       []string    `json:"raw_materials"`
	SelectionMaterials []string    `json:"selection_materials,omitempty"`
}

// FacilityView describes a recipe and its current efficiency
type FacilityView struct {
	Name         string             `json:"name"`
	Duration     float64            `json:"duration"`
	Input        map[string]float64 `json:"input,omitempty"`
	Output       map[string]float64 `json:"output"`
	Efficiency   float64            `json:"efficiency"`
	Power        float64            `json:"power,omitempty"`
	Workers      int                `json:"workers,omitempty"`
	CategoryPath []string           `json:"category_path,omitempty"`
}

// MaterialView lists the recipes producing a material
type MaterialView struct {
	Material string   `json:"material"`
	Recipes  []string `json:"recipes"`
}

// NewNodeView snapshots node and its subtree
func NewNodeView(node *production.ProductionNode) NodeView {
	view := NodeView{
		Material:        string(node.Material()),
		Recipe:          node.SelectedRecipe().Name,
		Depth:           node.Depth(),
		FactoryCount:    node.FactoryCount(),
		ProductionRate:  node.ProductionRate(),
		Efficiency:      node.Efficiency(),
		EfficiencyLabel: node.EfficiencyLabel(),
		Saturated:       node.Saturated(),
	}

	if required, ok := node.RequiredRate(); ok {
		view.RequiredRate = &required
	}

	if recipes := node.MaterialRecipes(); len(recipes) > 1 {
		for _, recipe := range recipes {
			view.Alternatives = append(view.Alternatives, recipe.Name)
		}
	}

	for _, child := range node.Children() {
		view.Children = append(view.Children, NewNodeView(child))
	}
	return view
}

// NewTotalViews flattens totals, sorted by facility then material
func NewTotalViews(totals production.Totals) []TotalView {
	views := make([]TotalView, 0)
	for _, recipe := range totals.Facilities() {
		for _, material := range totals.Materials(recipe) {
			views = append(views, TotalView{
				Recipe:   recipe,
				Material: string(material),
				Rate:     totals.Rate(recipe, material),
			})
		}
	}
	return views
}

// NewPlanView snapshots the session's plan rooted at root
func NewPlanView(session *Session, root *production.ProductionNode) *PlanView {
	view := &PlanView{
		SessionID:       session.ID,
		Root:            NewNodeView(root),
		Totals:          NewTotalViews(root.Totals()),
		NodeCount:       root.CountNodes(),
		Depth:           root.TotalDepth(),
		TotalFacilities: root.TotalFacilities(),
	}

	for _, material := range root.RawMaterials() {
		view.RawMaterials = append(view.RawMaterials, string(material))
	}
	for _, material := range SelectionMaterials(root, session.Catalog()) {
		view.SelectionMaterials = append(view.SelectionMaterials, string(material))
	}
	return view
}

// NewFacilityView describes recipe with its efficiency from registry
func NewFacilityView(recipe *production.Recipe, registry *production.EfficiencyRegistry) FacilityView {
	return FacilityView{
		Name:         recipe.Name,
		Duration:     recipe.Duration,
		Input:        quantitiesView(recipe.Input),
		Output:       quantitiesView(recipe.Output),
		Efficiency:   registry.Efficiency(recipe),
		Power:        recipe.Power,
		Workers:      recipe.Workers,
		CategoryPath: recipe.CategoryPath,
	}
}

func quantitiesView(quantities map[production.Material]float64) map[string]float64 {
	if len(quantities) == 0 {
		return nil
	}
	result := make(map[string]float64, len(quantities))
	for material, quantity := range quantities {
		result[string(material)] = quantity
	}
	return result
}
