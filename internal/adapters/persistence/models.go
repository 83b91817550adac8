package persistence

import (
	"time"
)

// CatalogModel represents the catalogs table
type CatalogModel struct {
	Name       string    `gorm:"column:name;primaryKey"`
	Source     string    `gorm:"column:source"`
	Digest     string    `gorm:"column:digest;not null"`
	ImportedAt time.Time `gorm:"column:imported_at;not null"`
}

func (CatalogModel) TableName() string {
	return "catalogs"
}

// RecipeModel represents the recipes table
type RecipeModel struct {
	CatalogName  string        `gorm:"column:catalog_name;primaryKey;not null"`
	Catalog      *CatalogModel `gorm:"foreignKey:CatalogName;references:Name;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Name         string        `gorm:"column:name;primaryKey;not null"`
	Position     int           `gorm:"column:position;not null"` // catalog order decides default recipes
	Duration     float64       `gorm:"column:duration;not null"`
	Input        string        `gorm:"column:input;type:text"`  // JSON as text
	Output       string        `gorm:"column:output;type:text"` // JSON as text
	BuildCost    string        `gorm:"column:build_cost;type:text"`
	Power        float64       `gorm:"column:power;not null;default:0"`
	Workers      int           `gorm:"column:workers;not null;default:0"`
	CategoryPath string        `gorm:"column:category_path;type:text"` // JSON array as text
}

func (RecipeModel) TableName() string {
	return "recipes"
}

// AllModels lists every model owned by this package, in migration order
func AllModels() []interface{} {
	return []interface{}{
		&CatalogModel{},
		&RecipeModel{},
	}
}
