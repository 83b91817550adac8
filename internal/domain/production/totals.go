package production

import "sort"

// Totals maps recipe name -> material -> summed rate demanded of that recipe
// for that material across a subtree. It is computed on demand and never cached.
type Totals map[string]map[Material]float64

// Add accumulates rate for (recipe, material)
func (t Totals) Add(recipe string, material Material, rate float64) {
	materials, ok := t[recipe]
	if !ok {
		materials = make(map[Material]float64)
		t[recipe] = materials
	}
	materials[material] += rate
}

// Merge sums other into t, combining coinciding (recipe, material) keys
func (t Totals) Merge(other Totals) {
	for recipe, materials := range other {
		for material, rate := range materials {
			t.Add(recipe, material, rate)
		}
	}
}

// Rate returns the summed rate for (recipe, material), 0 if absent
func (t Totals) Rate(recipe string, material Material) float64 {
	return t[recipe][material]
}

// Facilities returns the recipe names present, sorted
func (t Totals) Facilities() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Materials returns the materials recorded for recipe, sorted
func (t Totals) Materials(recipe string) []Material {
	return sortedMaterials(t[recipe])
}
