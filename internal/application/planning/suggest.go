package planning

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/andrescamacho/chainplanner/internal/domain/production"
)

const maxSuggestions = 3

// SuggestMaterials returns up to limit catalog materials closest to name
func SuggestMaterials(catalog production.Catalog, name string, limit int) []string {
	materials := catalog.Materials()
	candidates := make([]string, len(materials))
	for i, material := range materials {
		candidates[i] = string(material)
	}
	return suggest(candidates, name, limit)
}

// SuggestRecipes returns up to limit recipe names closest to name
func SuggestRecipes(catalog production.Catalog, name string, limit int) []string {
	recipes := catalog.Recipes()
	candidates := make([]string, len(recipes))
	for i, recipe := range recipes {
		candidates[i] = recipe.Name
	}
	return suggest(candidates, name, limit)
}

// suggest ranks candidates by case-insensitive edit distance. Candidates further than
// half the query length (minimum 2) are dropped; substring matches always qualify.
func suggest(candidates []string, name string, limit int) []string {
	type scored struct {
		value    string
		distance int
	}

	query := strings.ToLower(name)
	threshold := len(query) / 2
	if threshold < 2 {
		threshold = 2
	}

	matches := make([]scored, 0)
	for _, candidate := range candidates {
		lower := strings.ToLower(candidate)
		distance := levenshtein.ComputeDistance(query, lower)
		if distance > threshold && !(query != "" && strings.Contains(lower, query)) {
			continue
		}
		matches = append(matches, scored{value: candidate, distance: distance})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].distance != matches[j].distance {
			return matches[i].distance < matches[j].distance
		}
		return matches[i].value < matches[j].value
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	result := make([]string, len(matches))
	for i, match := range matches {
		result[i] = match.value
	}
	return result
}
