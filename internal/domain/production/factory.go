package production

// NodeFactory builds production nodes wired to a shared catalog and efficiency registry.
// Nodes use their factory to build children, so a whole tree shares one factory.
//
// The catalog must be acyclic; ValidateAcyclic checks this and loaders call it.
type NodeFactory struct {
	catalog  Catalog
	registry *EfficiencyRegistry
	observer Observer
}

// NewNodeFactory creates a factory. A nil observer is replaced by NoOpObserver.
func NewNodeFactory(catalog Catalog, registry *EfficiencyRegistry, observer Observer) *NodeFactory {
	if observer == nil {
		observer = NoOpObserver{}
	}
	return &NodeFactory{
		catalog:  catalog,
		registry: registry,
		observer: observer,
	}
}

// Catalog returns the catalog nodes are built from
func (f *NodeFactory) Catalog() Catalog {
	return f.catalog
}

// Registry returns the efficiency registry nodes subscribe to
func (f *NodeFactory) Registry() *EfficiencyRegistry {
	return f.registry
}

// Create builds a node for material at depth, selecting the material's first recipe
// with a single facility, and recursively builds its whole subtree.
func (f *NodeFactory) Create(material Material, depth int) (*ProductionNode, error) {
	recipes := f.catalog.RecipesFor(material)
	if len(recipes) == 0 {
		return nil, &ErrNoRecipe{Material: material}
	}

	selected := recipes[0]
	if err := ValidateDuration(selected); err != nil {
		return nil, err
	}

	node := &ProductionNode{
		material:     material,
		depth:        depth,
		factory:      f,
		registry:     f.registry,
		recipes:      recipes,
		selected:     selected,
		factoryCount: 1,
	}

	children, err := node.buildChildren(selected)
	if err != nil {
		return nil, err
	}
	node.children = children

	node.updateProductionRate()
	node.subscription = f.registry.Subscribe(node.onEfficiencyUpdate)

	f.observer.NodeCreated(material, depth)
	return node, nil
}

// CreateRoot builds a root node and imposes rate as its required rate.
// The tree is released and *ErrFactoryCountOverflow returned when any node
// would need more than MaxFactoryCount facilities.
func (f *NodeFactory) CreateRoot(material Material, rate float64) (*ProductionNode, error) {
	root, err := f.Create(material, 0)
	if err != nil {
		return nil, err
	}
	root.SetRequiredRate(rate)

	if err := root.FacilityLimitError(); err != nil {
		root.Release()
		return nil, err
	}
	return root, nil
}
