package planning

import "github.com/andrescamacho/chainplanner/internal/domain/production"

// SelectionMaterials returns the materials a bulk recipe choice can be made for:
// the inputs of the root's recipe and of every facility in the root's totals,
// in first-seen order, keeping only materials with more than one recipe.
func SelectionMaterials(root *production.ProductionNode, catalog production.Catalog) []production.Material {
	if root == nil {
		return nil
	}

	recipes := []*production.Recipe{root.SelectedRecipe()}
	for _, name := range root.Totals().Facilities() {
		if recipe := production.FindRecipe(catalog, name); recipe != nil {
			recipes = append(recipes, recipe)
		}
	}

	seen := make(map[production.Material]bool)
	materials := make([]production.Material, 0)
	for _, recipe := range recipes {
		for _, input := range recipe.InputMaterials() {
			if seen[input] {
				continue
			}
			seen[input] = true
			if len(catalog.RecipesFor(input)) > 1 {
				materials = append(materials, input)
			}
		}
	}
	return materials
}

// ChoiceMaterials returns every catalog material with more than one recipe
func ChoiceMaterials(catalog production.Catalog) []production.Material {
	materials := make([]production.Material, 0)
	for _, material := range catalog.Materials() {
		if len(catalog.RecipesFor(material)) > 1 {
			materials = append(materials, material)
		}
	}
	return materials
}
