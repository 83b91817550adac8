package production

// Observer receives notifications about production tree activity.
// Implementations must be cheap and must not mutate the tree.
type Observer interface {
	NodeCreated(material Material, depth int)
	NodeReleased(material Material)
	RecipeSelected(material Material, recipe string)
	FacilityCountRecomputed(recipe string, count int)
}

// NoOpObserver ignores every notification
type NoOpObserver struct{}

func (NoOpObserver) NodeCreated(material Material, depth int) {}
func (NoOpObserver) NodeReleased(material Material) {}
func (NoOpObserver) RecipeSelected(material Material, recipe string) {}
func (NoOpObserver) FacilityCountRecomputed(recipe string, count int) {}
