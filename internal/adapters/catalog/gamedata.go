package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/andrescamacho/chainplanner/internal/domain/production"
)

// TimeStepsPerSecond converts game production time steps into seconds
const TimeStepsPerSecond = 5000.0

// Building is one entry of the game's buildings file
type Building struct {
	Costs           []ResourceAmount `json:"costs"`
	ProductionLogic *ProductionLogic `json:"productionLogic"`
}

// ProductionLogic describes what a building does once placed
type ProductionLogic struct {
	ProductionDefinition    *ProductionDefinition `json:"productionDefinition"`
	MaxInhabitants          *int                  `json:"maxInhabitants"`
	PowerNeeded             *float64              `json:"powerNeeded"`
	PowerNeededForTenPeople *float64              `json:"powerNeededForTenPeople"`
}

// ProductionDefinition is a building's production cycle
type ProductionDefinition struct {
	TimeSteps   float64           `json:"timeSteps"`
	Consumables []json.RawMessage `json:"consumables"`
	Producables []ResourceAmount  `json:"producables"`
	MaxWorkers  *int              `json:"maxWorkers"`
	PowerNeeded *float64          `json:"powerNeeded"`
}

// ResourceAmount is a quantity of a named resource
type ResourceAmount struct {
	ResourceName string  `json:"resourceName"`
	Amount       float64 `json:"amount"`
}

// Category is a node of the game's construction menu tree.
// Leaves carry ItemName, inner nodes carry CategoryName and Children.
type Category struct {
	CategoryName string     `json:"categoryName"`
	ButtonsType  string     `json:"buttonsType"`
	ItemName     string     `json:"itemName"`
	Children     []Category `json:"children"`
}

type categoriesFile struct {
	Categories []Category `json:"categories"`
}

// NamedBuilding keeps a building with its name in file order
type NamedBuilding struct {
	Name     string
	Building Building
}

// ParseBuildings decodes the buildings file, preserving the order buildings appear in.
// That order decides which recipe is a material's default.
func ParseBuildings(r io.Reader) ([]NamedBuilding, error) {
	dec := json.NewDecoder(r)

	token, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to read buildings: %w", err)
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("failed to read buildings: expected an object")
	}

	buildings := make([]NamedBuilding, 0)
	for dec.More() {
		token, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to read building name: %w", err)
		}
		name, ok := token.(string)
		if !ok {
			return nil, fmt.Errorf("failed to read building name: unexpected %v", token)
		}

		var building Building
		if err := dec.Decode(&building); err != nil {
			return nil, fmt.Errorf("failed to decode building %s: %w", name, err)
		}
		buildings = append(buildings, NamedBuilding{Name: name, Building: building})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to read buildings: %w", err)
	}
	return buildings, nil
}

// ParseCategories decodes the construction categories file
func ParseCategories(r io.Reader) ([]Category, error) {
	var file categoriesFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return file.Categories, nil
}

// CategoryPath returns the chain of category names leading to item, or nil if absent
func CategoryPath(categories []Category, item string) []string {
	for _, category := range categories {
		for _, child := range category.Children {
			if child.CategoryName == "" {
				if child.ItemName == item {
					return []string{category.CategoryName}
				}
				continue
			}

			if path := CategoryPath([]Category{child}, item); path != nil {
				return append([]string{category.CategoryName}, path...)
			}
		}
	}
	return nil
}

// NormalizeBuilding converts a game building into a recipe
func NormalizeBuilding(name string, building Building, categories []Category) *production.Recipe {
	recipe := &production.Recipe{
		Name:         name,
		BuildCost:    resourceMap(building.Costs),
		CategoryPath: CategoryPath(categories, name),
	}

	logic := building.ProductionLogic
	if logic == nil {
		return recipe
	}

	definition := logic.ProductionDefinition
	if definition != nil {
		recipe.Duration = definition.TimeSteps / TimeStepsPerSecond
		recipe.Input = consumablesMap(definition.Consumables)
		recipe.Output = resourceMap(definition.Producables)
	}

	switch {
	case definition != nil && definition.MaxWorkers != nil:
		recipe.Workers = *definition.MaxWorkers
	case logic.MaxInhabitants != nil:
		recipe.Workers = *logic.MaxInhabitants
	}

	switch {
	case logic.PowerNeeded != nil:
		recipe.Power = *logic.PowerNeeded
	case logic.PowerNeededForTenPeople != nil:
		recipe.Power = *logic.PowerNeededForTenPeople
	case definition != nil && definition.PowerNeeded != nil:
		recipe.Power = *definition.PowerNeeded
	}

	return recipe
}

// NormalizeGameData converts buildings into recipes. Buildings that produce nothing
// (housing, storage, decoration) are not facilities and are skipped.
func NormalizeGameData(buildings []NamedBuilding, categories []Category) []*production.Recipe {
	recipes := make([]*production.Recipe, 0, len(buildings))
	for _, named := range buildings {
		recipe := NormalizeBuilding(named.Name, named.Building, categories)
		if len(recipe.Output) == 0 {
			continue
		}
		recipes = append(recipes, recipe)
	}
	return recipes
}

// LoadGameData reads the buildings file (and optional categories file) into a validated catalog
func LoadGameData(buildingsPath, categoriesPath string) (*Bundle, error) {
	raw, err := os.ReadFile(buildingsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read buildings: %w", err)
	}

	buildings, err := ParseBuildings(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", buildingsPath, err)
	}

	var categories []Category
	if categoriesPath != "" {
		f, err := os.Open(categoriesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open categories: %w", err)
		}
		defer f.Close()

		categories, err = ParseCategories(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", categoriesPath, err)
		}
	}

	catalog, err := BuildCatalog(NormalizeGameData(buildings, categories))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", buildingsPath, err)
	}

	return &Bundle{
		Catalog: catalog,
		Source:  buildingsPath,
		Digest:  digest(raw),
	}, nil
}

// consumablesMap reads consumables listed as resource amounts.
// Storage buildings list bare resource names; those have no production input.
func consumablesMap(consumables []json.RawMessage) map[production.Material]float64 {
	if len(consumables) == 0 {
		return nil
	}

	var name string
	if err := json.Unmarshal(consumables[0], &name); err == nil {
		return nil
	}

	amounts := make([]ResourceAmount, 0, len(consumables))
	for _, raw := range consumables {
		var amount ResourceAmount
		if err := json.Unmarshal(raw, &amount); err != nil {
			continue
		}
		amounts = append(amounts, amount)
	}
	return resourceMap(amounts)
}

func resourceMap(amounts []ResourceAmount) map[production.Material]float64 {
	if len(amounts) == 0 {
		return nil
	}
	result := make(map[production.Material]float64, len(amounts))
	for _, amount := range amounts {
		result[production.Material(amount.ResourceName)] = amount.Amount
	}
	return result
}
