package planning

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/andrescamacho/chainplanner/internal/domain/production"
)

// Session owns the efficiency registry and the current production tree of one planning session.
// Efficiency overrides survive rebuilding the plan; the previous tree is released on rebuild.
type Session struct {
	ID uuid.UUID

	catalog  production.Catalog
	registry *production.EfficiencyRegistry
	factory  *production.NodeFactory

	mu   sync.Mutex
	root *production.ProductionNode
}

// NewSession creates a session over catalog. observer may be nil.
func NewSession(catalog production.Catalog, observer production.Observer) *Session {
	registry := production.NewEfficiencyRegistry(catalog)
	return &Session{
		ID:       uuid.New(),
		catalog:  catalog,
		registry: registry,
		factory:  production.NewNodeFactory(catalog, registry, observer),
	}
}

// Catalog returns the session's recipe catalog
func (s *Session) Catalog() production.Catalog {
	return s.catalog
}

// Registry returns the session's shared efficiency registry
func (s *Session) Registry() *production.EfficiencyRegistry {
	return s.registry
}

// Root returns the current plan root, or nil if no plan was built
func (s *Session) Root() *production.ProductionNode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.root
}

// Plan builds a new production tree for material, replacing and releasing the current one.
// A nil rate leaves the root without a required rate (one facility).
func (s *Session) Plan(material production.Material, rate *float64) (*production.ProductionNode, error) {
	if len(s.catalog.RecipesFor(material)) == 0 {
		return nil, &ErrUnknownMaterial{
			Material:    material,
			Suggestions: SuggestMaterials(s.catalog, string(material), maxSuggestions),
		}
	}

	var root *production.ProductionNode
	var err error
	if rate != nil {
		root, err = s.factory.CreateRoot(material, *rate)
	} else {
		root, err = s.factory.Create(material, 0)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build production tree for %s: %w", material, err)
	}

	s.mu.Lock()
	previous := s.root
	s.root = root
	s.mu.Unlock()

	if previous != nil {
		previous.Release()
	}
	return root, nil
}

// ResolveRecipe looks up a recipe by name, with suggestions when it does not exist
func (s *Session) ResolveRecipe(name string) (*production.Recipe, error) {
	recipe := production.FindRecipe(s.catalog, name)
	if recipe == nil {
		return nil, &ErrUnknownRecipe{
			Name:        name,
			Suggestions: SuggestRecipes(s.catalog, name, maxSuggestions),
		}
	}
	return recipe, nil
}

// Close releases the current tree
func (s *Session) Close() {
	s.mu.Lock()
	root := s.root
	s.root = nil
	s.mu.Unlock()

	if root != nil {
		root.Release()
	}
}
