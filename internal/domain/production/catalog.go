package production

import (
	"fmt"
	"sort"
)

// Catalog is the read-only recipe lookup the production tree is built from.
// Loading and normalising game data into a Catalog happens in adapters.
type Catalog interface {
	// RecipesFor returns the recipes producing material, in catalog order.
	// The first recipe is the default selection. Empty means the material cannot be produced.
	RecipesFor(material Material) []*Recipe

	// Recipes returns every recipe in the catalog, in catalog order
	Recipes() []*Recipe

	// Materials returns every producible material, sorted by name
	Materials() []Material
}

// StaticCatalog is an immutable in-memory Catalog indexed by output material
type StaticCatalog struct {
	recipes  []*Recipe
	byName   map[string]*Recipe
	byOutput map[Material][]*Recipe
}

// NewStaticCatalog indexes recipes by every material they output.
// Recipe order is preserved: for each material, recipes appear in the order given.
func NewStaticCatalog(recipes ...*Recipe) (*StaticCatalog, error) {
	c := &StaticCatalog{
		recipes:  make([]*Recipe, 0, len(recipes)),
		byName:   make(map[string]*Recipe, len(recipes)),
		byOutput: make(map[Material][]*Recipe),
	}

	for i, recipe := range recipes {
		if recipe == nil {
			return nil, fmt.Errorf("recipe %d: recipe cannot be nil", i)
		}
		if recipe.Name == "" {
			return nil, fmt.Errorf("recipe %d: name cannot be empty", i)
		}
		if _, exists := c.byName[recipe.Name]; exists {
			return nil, &ErrDuplicateRecipe{Name: recipe.Name}
		}

		c.recipes = append(c.recipes, recipe)
		c.byName[recipe.Name] = recipe
		for _, material := range recipe.OutputMaterials() {
			c.byOutput[material] = append(c.byOutput[material], recipe)
		}
	}

	return c, nil
}

// MustStaticCatalog is NewStaticCatalog for fixtures; it panics on error
func MustStaticCatalog(recipes ...*Recipe) *StaticCatalog {
	c, err := NewStaticCatalog(recipes...)
	if err != nil {
		panic(err)
	}
	return c
}

// RecipesFor returns a copy of the recipes producing material
func (c *StaticCatalog) RecipesFor(material Material) []*Recipe {
	recipes := c.byOutput[material]
	if len(recipes) == 0 {
		return nil
	}

	result := make([]*Recipe, len(recipes))
	copy(result, recipes)
	return result
}

// Recipes returns a copy of all recipes in catalog order
func (c *StaticCatalog) Recipes() []*Recipe {
	result := make([]*Recipe, len(c.recipes))
	copy(result, c.recipes)
	return result
}

// Materials returns every producible material, sorted
func (c *StaticCatalog) Materials() []Material {
	materials := make([]Material, 0, len(c.byOutput))
	for material := range c.byOutput {
		materials = append(materials, material)
	}
	sort.Slice(materials, func(i, j int) bool { return materials[i] < materials[j] })
	return materials
}

// Lookup returns the recipe with the given name, or nil
func (c *StaticCatalog) Lookup(name string) *Recipe {
	return c.byName[name]
}

// Count returns the number of recipes in the catalog
func (c *StaticCatalog) Count() int {
	return len(c.recipes)
}

// FindRecipe resolves a recipe name against any Catalog
func FindRecipe(catalog Catalog, name string) *Recipe {
	if static, ok := catalog.(*StaticCatalog); ok {
		return static.Lookup(name)
	}
	for _, recipe := range catalog.Recipes() {
		if recipe.Name == name {
			return recipe
		}
	}
	return nil
}
