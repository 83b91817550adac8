package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/chainplanner/internal/domain/production"
	"github.com/andrescamacho/chainplanner/internal/domain/shared"
)

// ErrCatalogNotFound indicates no catalog is stored under the requested name
type ErrCatalogNotFound struct {
	Name string
}

func (e *ErrCatalogNotFound) Error() string {
	return fmt.Sprintf("catalog not found: %s", e.Name)
}

// CatalogInfo describes a stored catalog
type CatalogInfo struct {
	Name        string
	Source      string
	Digest      string
	ImportedAt  time.Time
	RecipeCount int
}

// GormCatalogRepository stores recipe catalogs using GORM
type GormCatalogRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewGormCatalogRepository creates a new GORM catalog repository
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db, clock: shared.RealClock{}}
}

// WithClock sets the clock used to stamp imports
func (r *GormCatalogRepository) WithClock(clock shared.Clock) *GormCatalogRepository {
	r.clock = clock
	return r
}

// Save replaces the catalog stored under name with recipes, keeping their order
func (r *GormCatalogRepository) Save(ctx context.Context, name, source, digest string, recipes []*production.Recipe) error {
	models := make([]RecipeModel, 0, len(recipes))
	for i, recipe := range recipes {
		model, err := r.recipeToModel(name, i, recipe)
		if err != nil {
			return fmt.Errorf("failed to convert recipe %s to model: %w", recipe.Name, err)
		}
		models = append(models, *model)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		catalog := CatalogModel{
			Name:       name,
			Source:     source,
			Digest:     digest,
			ImportedAt: r.clock.Now(),
		}
		// Upsert: create or update
		if err := tx.Save(&catalog).Error; err != nil {
			return fmt.Errorf("failed to save catalog: %w", err)
		}

		if err := tx.Where("catalog_name = ?", name).Delete(&RecipeModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear recipes: %w", err)
		}

		if len(models) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(models, 100).Error; err != nil {
			return fmt.Errorf("failed to save recipes: %w", err)
		}
		return nil
	})
}

// Load retrieves the recipes stored under name in catalog order
func (r *GormCatalogRepository) Load(ctx context.Context, name string) ([]*production.Recipe, *CatalogInfo, error) {
	info, err := r.find(ctx, name)
	if err != nil {
		return nil, nil, err
	}

	var models []RecipeModel
	result := r.db.WithContext(ctx).
		Where("catalog_name = ?", name).
		Order("position ASC").
		Find(&models)
	if result.Error != nil {
		return nil, nil, fmt.Errorf("failed to load recipes: %w", result.Error)
	}

	recipes := make([]*production.Recipe, 0, len(models))
	for i := range models {
		recipe, err := r.modelToRecipe(&models[i])
		if err != nil {
			return nil, nil, fmt.Errorf("invalid recipe %s in database: %w", models[i].Name, err)
		}
		recipes = append(recipes, recipe)
	}

	info.RecipeCount = len(recipes)
	return recipes, info, nil
}

// List retrieves every stored catalog ordered by name
func (r *GormCatalogRepository) List(ctx context.Context) ([]CatalogInfo, error) {
	var models []CatalogModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list catalogs: %w", err)
	}

	infos := make([]CatalogInfo, 0, len(models))
	for _, model := range models {
		var count int64
		if err := r.db.WithContext(ctx).Model(&RecipeModel{}).Where("catalog_name = ?", model.Name).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to count recipes: %w", err)
		}
		info := modelToInfo(&model)
		info.RecipeCount = int(count)
		infos = append(infos, *info)
	}
	return infos, nil
}

// Delete removes the catalog stored under name along with its recipes
func (r *GormCatalogRepository) Delete(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("catalog_name = ?", name).Delete(&RecipeModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete recipes: %w", err)
		}
		result := tx.Where("name = ?", name).Delete(&CatalogModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete catalog: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return &ErrCatalogNotFound{Name: name}
		}
		return nil
	})
}

func (r *GormCatalogRepository) find(ctx context.Context, name string) (*CatalogInfo, error) {
	var model CatalogModel
	result := r.db.WithContext(ctx).Where("name = ?", name).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, &ErrCatalogNotFound{Name: name}
		}
		return nil, fmt.Errorf("failed to find catalog: %w", result.Error)
	}
	return modelToInfo(&model), nil
}

func modelToInfo(model *CatalogModel) *CatalogInfo {
	return &CatalogInfo{
		Name:       model.Name,
		Source:     model.Source,
		Digest:     model.Digest,
		ImportedAt: model.ImportedAt,
	}
}

// recipeToModel converts a domain recipe to a database model
func (r *GormCatalogRepository) recipeToModel(catalogName string, position int, recipe *production.Recipe) (*RecipeModel, error) {
	input, err := encodeQuantities(recipe.Input)
	if err != nil {
		return nil, err
	}
	output, err := encodeQuantities(recipe.Output)
	if err != nil {
		return nil, err
	}
	buildCost, err := encodeQuantities(recipe.BuildCost)
	if err != nil {
		return nil, err
	}

	var categoryPath string
	if len(recipe.CategoryPath) > 0 {
		bytes, err := json.Marshal(recipe.CategoryPath)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal category path: %w", err)
		}
		categoryPath = string(bytes)
	}

	return &RecipeModel{
		CatalogName:  catalogName,
		Name:         recipe.Name,
		Position:     position,
		Duration:     recipe.Duration,
		Input:        input,
		Output:       output,
		BuildCost:    buildCost,
		Power:        recipe.Power,
		Workers:      recipe.Workers,
		CategoryPath: categoryPath,
	}, nil
}

// modelToRecipe converts a database model to a domain recipe
func (r *GormCatalogRepository) modelToRecipe(model *RecipeModel) (*production.Recipe, error) {
	input, err := decodeQuantities(model.Input)
	if err != nil {
		return nil, err
	}
	output, err := decodeQuantities(model.Output)
	if err != nil {
		return nil, err
	}
	buildCost, err := decodeQuantities(model.BuildCost)
	if err != nil {
		return nil, err
	}

	var categoryPath []string
	if model.CategoryPath != "" {
		if err := json.Unmarshal([]byte(model.CategoryPath), &categoryPath); err != nil {
			return nil, fmt.Errorf("failed to unmarshal category path: %w", err)
		}
	}

	return &production.Recipe{
		Name:         model.Name,
		Duration:     model.Duration,
		Input:        input,
		Output:       output,
		BuildCost:    buildCost,
		Power:        model.Power,
		Workers:      model.Workers,
		CategoryPath: categoryPath,
	}, nil
}

func encodeQuantities(quantities map[production.Material]float64) (string, error) {
	if len(quantities) == 0 {
		return "", nil
	}
	bytes, err := json.Marshal(quantities)
	if err != nil {
		return "", fmt.Errorf("failed to marshal quantities: %w", err)
	}
	return string(bytes), nil
}

func decodeQuantities(raw string) (map[production.Material]float64, error) {
	if raw == "" {
		return nil, nil
	}
	var quantities map[production.Material]float64
	if err := json.Unmarshal([]byte(raw), &quantities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quantities: %w", err)
	}
	return quantities, nil
}
