package config

// Catalog sources
const (
	CatalogSourceFile     = "file"
	CatalogSourceGameData = "gamedata"
	CatalogSourceDatabase = "database"
)

// CatalogConfig selects where recipes are read from
type CatalogConfig struct {
	// Source: file (YAML/JSON catalog), gamedata (buildings.json) or database
	Source string `mapstructure:"source" validate:"required,oneof=file gamedata database"`

	// Path to the catalog file or buildings.json (required unless source is database)
	Path string `mapstructure:"path" validate:"required_unless=Source database"`

	// CategoriesPath is the optional constructionCategories.json used with gamedata
	CategoriesPath string `mapstructure:"categories_path"`

	// Name of the stored catalog when source is database
	Name string `mapstructure:"name" validate:"required"`
}
