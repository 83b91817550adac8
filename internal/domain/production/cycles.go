package production

// DetectCycles checks whether producing material (via any of its recipes) eventually
// requires material itself. Returns *ErrCircularDependency with the offending chain.
//
// The production tree assumes an acyclic catalog and does not run this check;
// catalog loaders do.
func DetectCycles(catalog Catalog, material Material) error {
	visiting := make(map[Material]bool)
	done := make(map[Material]bool)
	return detectCyclesRecursive(catalog, material, visiting, done, nil)
}

// ValidateAcyclic runs DetectCycles for every producible material in the catalog
func ValidateAcyclic(catalog Catalog) error {
	visiting := make(map[Material]bool)
	done := make(map[Material]bool)
	for _, material := range catalog.Materials() {
		if err := detectCyclesRecursive(catalog, material, visiting, done, nil); err != nil {
			return err
		}
	}
	return nil
}

func detectCyclesRecursive(
	catalog Catalog,
	material Material,
	visiting map[Material]bool,
	done map[Material]bool,
	path []Material,
) error {
	if visiting[material] {
		chain := make([]Material, 0, len(path)+1)
		chain = append(chain, path...)
		chain = append(chain, material)
		return &ErrCircularDependency{Material: material, Chain: chain}
	}
	if done[material] {
		return nil
	}

	visiting[material] = true
	defer func() { visiting[material] = false }()

	currentPath := append(path, material)

	for _, recipe := range catalog.RecipesFor(material) {
		for _, input := range recipe.InputMaterials() {
			if err := detectCyclesRecursive(catalog, input, visiting, done, currentPath); err != nil {
				return err
			}
		}
	}

	done[material] = true
	return nil
}
