package production

import (
	"fmt"
	"math"
)

// MaxFactoryCount caps a node's facility count; larger demands saturate at it
const MaxFactoryCount = math.MaxInt32

// ProductionNode is one node of a production tree: a material at a tree position,
// bound to a selectable recipe.
//
// The node keeps its derived state current at all times:
//   - production rate is recomputed whenever the facility count, recipe or efficiency changes
//   - children mirror the selected recipe's inputs and are rebuilt when the recipe changes
//   - with a required rate set, the facility count follows it (ceil against the single-facility rate)
//
// Recomputation cascades run synchronously down the tree:
// required rate -> facility count -> production rate -> children's required rate.
type ProductionNode struct {
	material Material
	depth    int

	factory  *NodeFactory
	registry *EfficiencyRegistry

	recipes  []*Recipe
	selected *Recipe

	factoryCount    int
	requiredRate    float64
	hasRequiredRate bool
	productionRate  float64
	saturated       bool

	children     []*ProductionNode
	subscription *Subscription
	released     bool
}

// Material returns the material this node produces
func (n *ProductionNode) Material() Material {
	return n.material
}

// Depth returns the node's distance from the root (informational only)
func (n *ProductionNode) Depth() int {
	return n.depth
}

// MaterialRecipes returns the valid recipe choices for this node's material
func (n *ProductionNode) MaterialRecipes() []*Recipe {
	result := make([]*Recipe, len(n.recipes))
	copy(result, n.recipes)
	return result
}

// SelectedRecipe returns the currently selected recipe
func (n *ProductionNode) SelectedRecipe() *Recipe {
	return n.selected
}

// Children returns the node's children, one per input of the selected recipe
func (n *ProductionNode) Children() []*ProductionNode {
	result := make([]*ProductionNode, len(n.children))
	copy(result, n.children)
	return result
}

// FactoryCount returns the number of facilities running the selected recipe
func (n *ProductionNode) FactoryCount() int {
	return n.factoryCount
}

// ProductionRate returns the node's current output rate of its material per minute
func (n *ProductionNode) ProductionRate() float64 {
	return n.productionRate
}

// RequiredRate returns the externally imposed demand, if any
func (n *ProductionNode) RequiredRate() (float64, bool) {
	return n.requiredRate, n.hasRequiredRate
}

// Saturated reports whether the required rate needs more than MaxFactoryCount facilities
func (n *ProductionNode) Saturated() bool {
	return n.saturated
}

// Efficiency returns the efficiency percentage currently applied to the selected recipe
func (n *ProductionNode) Efficiency() float64 {
	return n.registry.Efficiency(n.selected)
}

// EfficiencyLabel returns "" at default efficiency, otherwise "(efficiency N%) "
func (n *ProductionNode) EfficiencyLabel() string {
	efficiency := n.Efficiency()
	if efficiency == DefaultEfficiency {
		return ""
	}
	return fmt.Sprintf("(efficiency %g%%) ", efficiency)
}

// SetRequiredRate imposes a demand on the node and recomputes its facility count.
// Setting the current value again is a no-op.
func (n *ProductionNode) SetRequiredRate(rate float64) {
	if n.hasRequiredRate && n.requiredRate == rate {
		return
	}
	n.requiredRate = rate
	n.hasRequiredRate = true

	n.updateRequiredFactoryCount()
}

// ClearRequiredRate removes the demand; the facility count becomes caller-driven
func (n *ProductionNode) ClearRequiredRate() {
	if !n.hasRequiredRate {
		return
	}
	n.requiredRate = 0
	n.hasRequiredRate = false

	n.updateRequiredFactoryCount()
}

// SetFactoryCount sets the facility count (minimum 1) and cascades the new
// production rate and input demands down the tree
func (n *ProductionNode) SetFactoryCount(count int) {
	if count < 1 {
		count = 1
	}
	if n.factoryCount == count {
		return
	}
	n.factoryCount = count

	n.updateProductionRate()
}

// SelectRecipe switches the node to recipe, discards the old subtree, builds children
// for the new recipe's inputs and recomputes the facility count.
// The node is left unchanged if recipe does not produce its material or a child
// cannot be built.
func (n *ProductionNode) SelectRecipe(recipe *Recipe) error {
	canonical := n.findRecipe(recipe)
	if canonical == nil {
		return &ErrRecipeNotApplicable{Recipe: recipe.Name, Material: n.material}
	}
	if err := ValidateDuration(canonical); err != nil {
		return err
	}

	children, err := n.buildChildren(canonical)
	if err != nil {
		return fmt.Errorf("failed to build inputs of %s for %s: %w", canonical.Name, n.material, err)
	}

	previous := n.children
	n.selected = canonical
	n.children = children
	releaseAll(previous)

	n.factory.observer.RecipeSelected(n.material, canonical.Name)

	n.updateRequiredFactoryCount()
	return nil
}

// HierarchicalSelection applies recipe to every node of the subtree whose material
// it produces, including nodes created by applying it higher up.
//
// Phase one selects recipe on this node when it is a valid choice. Phase two
// recurses into the node's children as they are after phase one.
func (n *ProductionNode) HierarchicalSelection(recipe *Recipe) error {
	if n.findRecipe(recipe) != nil {
		if err := n.SelectRecipe(recipe); err != nil {
			return err
		}
	}

	for _, child := range n.children {
		if err := child.HierarchicalSelection(recipe); err != nil {
			return err
		}
	}
	return nil
}

// RequiredComponentRate returns the rate at which this node consumes component,
// using this node's recipe, facility count and efficiency
func (n *ProductionNode) RequiredComponentRate(component Material) float64 {
	return n.rate(n.selected.InputQuantity(component), n.factoryCount)
}

// Totals aggregates, per (recipe, material), the rate demanded of every facility
// in the subtree below this node. This node's own facility is not included.
func (n *ProductionNode) Totals() Totals {
	totals := make(Totals)

	for _, child := range n.children {
		totals.Add(child.selected.Name, child.material, n.RequiredComponentRate(child.material))
		totals.Merge(child.Totals())
	}

	return totals
}

// Release unsubscribes the node and its whole subtree from efficiency updates.
// Released nodes must not be used again.
func (n *ProductionNode) Release() {
	if n.released {
		return
	}
	n.released = true

	n.subscription.Unsubscribe()
	releaseAll(n.children)

	n.factory.observer.NodeReleased(n.material)
}

// Released reports whether Release has been called on this node or an ancestor
func (n *ProductionNode) Released() bool {
	return n.released
}

func (n *ProductionNode) onEfficiencyUpdate(recipe *Recipe) {
	// Compared against the recipe selected now, not at subscription time
	if n.selected == nil || recipe.Name != n.selected.Name {
		return
	}
	n.updateRequiredFactoryCount()
}

func (n *ProductionNode) updateRequiredFactoryCount() {
	if n.hasRequiredRate {
		single := n.calculateRate(1)

		// Degenerate recipes (zero output for this material) leave the count as is
		if single > 0 && !math.IsInf(single, 0) {
			n.factoryCount, n.saturated = requiredCount(n.requiredRate, single)
			n.factory.observer.FacilityCountRecomputed(n.selected.Name, n.factoryCount)
		}
	} else {
		n.saturated = false
	}

	n.updateProductionRate()
}

func (n *ProductionNode) updateProductionRate() {
	n.productionRate = n.calculateRate(n.factoryCount)

	for _, child := range n.children {
		child.SetRequiredRate(n.RequiredComponentRate(child.material))
	}
}

func (n *ProductionNode) calculateRate(factoryCount int) float64 {
	return n.rate(n.selected.OutputQuantity(n.material), factoryCount)
}

func (n *ProductionNode) rate(quantity float64, factoryCount int) float64 {
	rate, err := Rate(quantity, n.selected.Duration, factoryCount, n.Efficiency())
	if err != nil {
		// Unreachable: durations are validated before a recipe is selected
		return 0
	}
	return rate
}

func (n *ProductionNode) buildChildren(recipe *Recipe) ([]*ProductionNode, error) {
	inputs := recipe.InputMaterials()
	children := make([]*ProductionNode, 0, len(inputs))

	for _, input := range inputs {
		child, err := n.factory.Create(input, n.depth+1)
		if err != nil {
			releaseAll(children)
			return nil, err
		}
		children = append(children, child)
	}

	return children, nil
}

func (n *ProductionNode) findRecipe(recipe *Recipe) *Recipe {
	if recipe == nil {
		return nil
	}
	for _, candidate := range n.recipes {
		if candidate == recipe || candidate.Name == recipe.Name {
			return candidate
		}
	}
	return nil
}

// requiredCount returns the smallest count with count*single >= required, never
// less than 1. Counts above MaxFactoryCount saturate and report true.
func requiredCount(required, single float64) (int, bool) {
	if math.IsNaN(required) || required <= 0 {
		return 1, false
	}

	count := math.Ceil(required / single)
	if count > MaxFactoryCount {
		return MaxFactoryCount, true
	}

	// The quotient can round across an integer; settle on the products instead
	if count > 1 && (count-1)*single >= required {
		count--
	}
	if count*single < required {
		count++
	}

	if count < 1 {
		return 1, false
	}
	if count > MaxFactoryCount {
		return MaxFactoryCount, true
	}
	return int(count), false
}

func releaseAll(nodes []*ProductionNode) {
	for _, node := range nodes {
		node.Release()
	}
}
