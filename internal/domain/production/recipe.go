package production

import "sort"

// Material is a named resource that can be produced and/or consumed
type Material string

// Recipe describes a facility type: what it consumes and produces per cycle.
// Recipes are owned by the catalog and must be treated as immutable once loaded.
type Recipe struct {
	// Name is the recipe identity (unique within a catalog)
	Name string `json:"name" yaml:"name" validate:"required"`

	// Duration is the length of one production cycle in seconds
	Duration float64 `json:"duration" yaml:"duration"`

	// Input quantities consumed per cycle (empty for raw-material extractors)
	Input map[Material]float64 `json:"input,omitempty" yaml:"input,omitempty"`

	// Output quantities produced per cycle
	Output map[Material]float64 `json:"output" yaml:"output"`

	// Auxiliary attributes carried for display; not used by the rate math
	BuildCost    map[Material]float64 `json:"build_cost,omitempty" yaml:"build_cost,omitempty"`
	Power        float64              `json:"power,omitempty" yaml:"power,omitempty"`
	Workers      int                  `json:"workers,omitempty" yaml:"workers,omitempty"`
	CategoryPath []string             `json:"category_path,omitempty" yaml:"category_path,omitempty"`
}

// InputQuantity returns the amount of material consumed per cycle (0 if not an input)
func (r *Recipe) InputQuantity(material Material) float64 {
	return r.Input[material]
}

// OutputQuantity returns the amount of material produced per cycle (0 if not an output)
func (r *Recipe) OutputQuantity(material Material) float64 {
	return r.Output[material]
}

// Produces reports whether the recipe lists material among its outputs
func (r *Recipe) Produces(material Material) bool {
	_, ok := r.Output[material]
	return ok
}

// InputMaterials returns the recipe's input materials in a stable order.
// Child nodes are created in this order.
func (r *Recipe) InputMaterials() []Material {
	return sortedMaterials(r.Input)
}

// OutputMaterials returns the recipe's output materials in a stable order
func (r *Recipe) OutputMaterials() []Material {
	return sortedMaterials(r.Output)
}

func sortedMaterials(quantities map[Material]float64) []Material {
	materials := make([]Material, 0, len(quantities))
	for material := range quantities {
		materials = append(materials, material)
	}
	sort.Slice(materials, func(i, j int) bool { return materials[i] < materials[j] })
	return materials
}
