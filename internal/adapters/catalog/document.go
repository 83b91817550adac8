package catalog

import (
	"github.com/andrescamacho/chainplanner/internal/domain/production"
)

// CurrentVersion is the catalog document version written by this package
const CurrentVersion = 1

// Document is the on-disk catalog format (YAML or JSON)
type Document struct {
	Version int            `json:"version,omitempty" yaml:"version,omitempty" validate:"gte=0"`
	Recipes []RecipeRecord `json:"recipes" yaml:"recipes" validate:"required,min=1,dive"`
}

// RecipeRecord is one recipe as stored in a catalog document
type RecipeRecord struct {
	Name         string             `json:"name" yaml:"name" validate:"required"`
	Duration     float64            `json:"duration" yaml:"duration" validate:"gt=0"`
	Input        map[string]float64 `json:"input,omitempty" yaml:"input,omitempty" validate:"omitempty,dive,keys,required,endkeys,gte=0"`
	Output       map[string]float64 `json:"output" yaml:"output" validate:"required,min=1,dive,keys,required,endkeys,gte=0"`
	BuildCost    map[string]float64 `json:"build_cost,omitempty" yaml:"build_cost,omitempty" validate:"omitempty,dive,keys,required,endkeys,gte=0"`
	Power        float64            `json:"power,omitempty" yaml:"power,omitempty" validate:"gte=0"`
	Workers      int                `json:"workers,omitempty" yaml:"workers,omitempty" validate:"gte=0"`
	CategoryPath []string           `json:"category_path,omitempty" yaml:"category_path,omitempty"`
}

// ToRecipe converts the record into a domain recipe
func (r RecipeRecord) ToRecipe() *production.Recipe {
	return &production.Recipe{
		Name:         r.Name,
		Duration:     r.Duration,
		Input:        toMaterials(r.Input),
		Output:       toMaterials(r.Output),
		BuildCost:    toMaterials(r.BuildCost),
		Power:        r.Power,
		Workers:      r.Workers,
		CategoryPath: r.CategoryPath,
	}
}

// RecordFromRecipe converts a domain recipe into its document record
func RecordFromRecipe(recipe *production.Recipe) RecipeRecord {
	return RecipeRecord{
		Name:         recipe.Name,
		Duration:     recipe.Duration,
		Input:        fromMaterials(recipe.Input),
		Output:       fromMaterials(recipe.Output),
		BuildCost:    fromMaterials(recipe.BuildCost),
		Power:        recipe.Power,
		Workers:      recipe.Workers,
		CategoryPath: recipe.CategoryPath,
	}
}

// NewDocument builds a document from domain recipes in the given order
func NewDocument(recipes []*production.Recipe) *Document {
	doc := &Document{
		Version: CurrentVersion,
		Recipes: make([]RecipeRecord, 0, len(recipes)),
	}
	for _, recipe := range recipes {
		doc.Recipes = append(doc.Recipes, RecordFromRecipe(recipe))
	}
	return doc
}

func toMaterials(quantities map[string]float64) map[production.Material]float64 {
	if len(quantities) == 0 {
		return nil
	}
	result := make(map[production.Material]float64, len(quantities))
	for name, quantity := range quantities {
		result[production.Material(name)] = quantity
	}
	return result
}

func fromMaterials(quantities map[production.Material]float64) map[string]float64 {
	if len(quantities) == 0 {
		return nil
	}
	result := make(map[string]float64, len(quantities))
	for material, quantity := range quantities {
		result[string(material)] = quantity
	}
	return result
}
