package planning

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/chainplanner/internal/domain/production"
)

// ErrUnknownMaterial indicates a requested material has no recipe in the catalog
type ErrUnknownMaterial struct {
	Material    production.Material
	Suggestions []string
}

func (e *ErrUnknownMaterial) Error() string {
	return withSuggestions(fmt.Sprintf("unknown material: %s", e.Material), e.Suggestions)
}

// ErrUnknownRecipe indicates a recipe name that is not in the catalog
type ErrUnknownRecipe struct {
	Name        string
	Suggestions []string
}

func (e *ErrUnknownRecipe) Error() string {
	return withSuggestions(fmt.Sprintf("unknown recipe: %s", e.Name), e.Suggestions)
}

// ErrNoPlan indicates an operation that needs a production tree before one was built
type ErrNoPlan struct{}

func (e *ErrNoPlan) Error() string {
	return "no production plan has been built in this session"
}

// ErrInvalidEfficiency indicates a negative or non-numeric efficiency percentage
type ErrInvalidEfficiency struct {
	Recipe     string
	Percentage float64
}

func (e *ErrInvalidEfficiency) Error() string {
	return fmt.Sprintf("invalid efficiency %g%% for %s: must be a non-negative number", e.Percentage, e.Recipe)
}

func withSuggestions(message string, suggestions []string) string {
	if len(suggestions) == 0 {
		return message
	}
	return fmt.Sprintf("%s (did you mean: %s?)", message, strings.Join(suggestions, ", "))
}
