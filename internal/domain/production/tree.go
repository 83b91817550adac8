package production

import "sort"

// IsLeaf returns true if the node's selected recipe has no inputs
func (n *ProductionNode) IsLeaf() bool {
	return len(n.children) == 0
}

// Walk visits the node and its descendants depth-first, parent before children.
// Returning false from fn skips that node's subtree.
func (n *ProductionNode) Walk(fn func(node *ProductionNode) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.children {
		child.Walk(fn)
	}
}

// CountNodes returns the total number of nodes in this subtree (including this node)
func (n *ProductionNode) CountNodes() int {
	count := 1
	for _, child := range n.children {
		count += child.CountNodes()
	}
	return count
}

// TotalDepth returns the maximum depth of the subtree (a leaf has depth 1)
func (n *ProductionNode) TotalDepth() int {
	if n.IsLeaf() {
		return 1
	}

	maxChildDepth := 0
	for _, child := range n.children {
		if depth := child.TotalDepth(); depth > maxChildDepth {
			maxChildDepth = depth
		}
	}
	return maxChildDepth + 1
}

// TotalFacilities sums the facility counts of every node in the subtree
func (n *ProductionNode) TotalFacilities() int {
	total := 0
	n.Walk(func(node *ProductionNode) bool {
		total += node.factoryCount
		return true
	})
	return total
}

// RawMaterials returns the materials produced by leaf nodes, sorted and de-duplicated
func (n *ProductionNode) RawMaterials() []Material {
	seen := make(map[Material]bool)
	n.Walk(func(node *ProductionNode) bool {
		if node.IsLeaf() {
			seen[node.material] = true
		}
		return true
	})

	materials := make([]Material, 0, len(seen))
	for material := range seen {
		materials = append(materials, material)
	}
	sort.Slice(materials, func(i, j int) bool { return materials[i] < materials[j] })
	return materials
}

// FindAll returns every node in the subtree producing material, in walk order
func (n *ProductionNode) FindAll(material Material) []*ProductionNode {
	var found []*ProductionNode
	n.Walk(func(node *ProductionNode) bool {
		if node.material == material {
			found = append(found, node)
		}
		return true
	})
	return found
}

// SaturatedNodes returns the nodes whose required rate needs more than
// MaxFactoryCount facilities, parent before children
func (n *ProductionNode) SaturatedNodes() []*ProductionNode {
	var saturated []*ProductionNode
	n.Walk(func(node *ProductionNode) bool {
		if node.saturated {
			saturated = append(saturated, node)
		}
		return true
	})
	return saturated
}

// FacilityLimitError returns *ErrFactoryCountOverflow for the first saturated node, or nil
func (n *ProductionNode) FacilityLimitError() error {
	saturated := n.SaturatedNodes()
	if len(saturated) == 0 {
		return nil
	}
	required, _ := saturated[0].RequiredRate()
	return &ErrFactoryCountOverflow{Material: saturated[0].Material(), RequiredRate: required}
}
