package production_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/chainplanner/internal/domain/production"
)

// recordingObserver counts tree notifications
type recordingObserver struct {
	created    []production.Material
	released   []production.Material
	selections map[production.Material]string
	recomputed int
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{selections: make(map[production.Material]string)}
}

func (o *recordingObserver) NodeCreated(material production.Material, depth int) {
	o.created = append(o.created, material)
}

func (o *recordingObserver) NodeReleased(material production.Material) {
	o.released = append(o.released, material)
}

func (o *recordingObserver) RecipeSelected(material production.Material, recipe string) {
	o.selections[material] = recipe
}

func (o *recordingObserver) FacilityCountRecomputed(recipe string, count int) {
	o.recomputed++
}

func recipe(name string, duration float64, output, input map[production.Material]float64) *production.Recipe {
	return &production.Recipe{
		Name:     name,
		Duration: duration,
		Input:    input,
		Output:   output,
	}
}

type quantities = map[production.Material]float64

// abChain: A1 makes 2 A from 3 B every 60s, B1 makes 1 B every 30s
func abChain() (*production.Recipe, *production.Recipe) {
	a1 := recipe("A1", 60, quantities{"A": 2}, quantities{"B": 3})
	b1 := recipe("B1", 30, quantities{"B": 1}, nil)
	return a1, b1
}

type harness struct {
	catalog  *production.StaticCatalog
	registry *production.EfficiencyRegistry
	factory  *production.NodeFactory
	observer *recordingObserver
}

func newHarness(t *testing.T, recipes ...*production.Recipe) *harness {
	t.Helper()

	catalog, err := production.NewStaticCatalog(recipes...)
	require.NoError(t, err)

	registry := production.NewEfficiencyRegistry(catalog)
	observer := newRecordingObserver()

	return &harness{
		catalog:  catalog,
		registry: registry,
		factory:  production.NewNodeFactory(catalog, registry, observer),
		observer: observer,
	}
}

func (h *harness) root(t *testing.T, material production.Material, rate float64) *production.ProductionNode {
	t.Helper()

	root, err := h.factory.CreateRoot(material, rate)
	require.NoError(t, err)
	return root
}

func childFor(t *testing.T, node *production.ProductionNode, material production.Material) *production.ProductionNode {
	t.Helper()

	for _, child := range node.Children() {
		if child.Material() == material {
			return child
		}
	}
	t.Fatalf("node %s has no child for %s", node.Material(), material)
	return nil
}
