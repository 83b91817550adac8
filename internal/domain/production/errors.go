package production

import (
	"fmt"
	"strings"
)

// Domain errors for production chain planning

// ErrNoRecipe indicates the catalog has no recipe producing a material.
// A production node cannot be constructed for such a material.
type ErrNoRecipe struct {
	Material Material
}

func (e *ErrNoRecipe) Error() string {
	return fmt.Sprintf("no recipe produces %s", e.Material)
}

// ErrInvalidDuration indicates a recipe with a non-positive cycle duration
type ErrInvalidDuration struct {
	Recipe   string
	Duration float64
}

func (e *ErrInvalidDuration) Error() string {
	if e.Recipe == "" {
		return fmt.Sprintf("invalid cycle duration %g: must be positive", e.Duration)
	}
	return fmt.Sprintf("recipe %s has invalid cycle duration %g: must be positive", e.Recipe, e.Duration)
}

// ErrRecipeNotApplicable indicates a recipe was selected for a node whose material it does not produce
type ErrRecipeNotApplicable struct {
	Recipe   string
	Material Material
}

func (e *ErrRecipeNotApplicable) Error() string {
	return fmt.Sprintf("recipe %s does not produce %s", e.Recipe, e.Material)
}

// ErrCircularDependency indicates a material requires itself, directly or transitively
type ErrCircularDependency struct {
	Material Material
	Chain    []Material
}

func (e *ErrCircularDependency) Error() string {
	parts := make([]string, len(e.Chain))
	for i, material := range e.Chain {
		parts[i] = string(material)
	}
	return fmt.Sprintf("circular dependency detected for %s: %s", e.Material, strings.Join(parts, " -> "))
}

// ErrDuplicateRecipe indicates two catalog recipes share a name
type ErrDuplicateRecipe struct {
	Name string
}

func (e *ErrDuplicateRecipe) Error() string {
	return fmt.Sprintf("duplicate recipe name: %s", e.Name)
}

// ErrFactoryCountOverflow indicates a required rate that needs more than MaxFactoryCount facilities
type ErrFactoryCountOverflow struct {
	Material     Material
	RequiredRate float64
}

func (e *ErrFactoryCountOverflow) Error() string {
	return fmt.Sprintf("required rate %g/min of %s needs more than %d facilities", e.RequiredRate, e.Material, MaxFactoryCount)
}
