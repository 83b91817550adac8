package production

import (
	"sort"
	"sync"
)

// EfficiencyHandler receives the recipe whose efficiency changed
type EfficiencyHandler func(recipe *Recipe)

// EfficiencyRegistry holds per-recipe efficiency overrides and broadcasts changes.
//
// One registry is shared by every node of every tree in a planning session.
// Delivery is synchronous and ordered: UpdateEfficiency returns only after every
// subscriber (in subscription order) has handled the change.
type EfficiencyRegistry struct {
	catalog Catalog

	mu          sync.RWMutex
	efficiency  map[string]float64
	subscribers []*Subscription
	nextID      uint64
}

// Subscription is a registered efficiency handler
type Subscription struct {
	id       uint64
	handler  EfficiencyHandler
	registry *EfficiencyRegistry
	active   bool
}

// NewEfficiencyRegistry creates an empty registry over catalog
func NewEfficiencyRegistry(catalog Catalog) *EfficiencyRegistry {
	return &EfficiencyRegistry{
		catalog:    catalog,
		efficiency: make(map[string]float64),
	}
}

// Efficiency returns the efficiency percentage of recipe (DefaultEfficiency if never set)
func (r *EfficiencyRegistry) Efficiency(recipe *Recipe) float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if value, ok := r.efficiency[recipe.Name]; ok {
		return value
	}
	return DefaultEfficiency
}

// UpdateEfficiency stores the override for recipe and notifies all subscribers
func (r *EfficiencyRegistry) UpdateEfficiency(percentage float64, recipe *Recipe) {
	r.mu.Lock()
	r.efficiency[recipe.Name] = percentage
	subscribers := make([]*Subscription, len(r.subscribers))
	copy(subscribers, r.subscribers)
	r.mu.Unlock()

	// Handlers run outside the lock: they read efficiencies back while recomputing
	for _, sub := range subscribers {
		if sub.isActive() {
			sub.handler(recipe)
		}
	}
}

// Overrides returns a copy of every explicitly set efficiency, keyed by recipe name
func (r *EfficiencyRegistry) Overrides() map[string]float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]float64, len(r.efficiency))
	for name, value := range r.efficiency {
		result[name] = value
	}
	return result
}

// Subscribe registers handler for every subsequent efficiency update
func (r *EfficiencyRegistry) Subscribe(handler EfficiencyHandler) *Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	sub := &Subscription{
		id:       r.nextID,
		handler:  handler,
		registry: r,
		active:   true,
	}
	r.subscribers = append(r.subscribers, sub)
	return sub
}

// SubscriberCount returns the number of active subscriptions
func (r *EfficiencyRegistry) SubscriberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subscribers)
}

// ListFacilities returns every recipe referenced by the catalog, de-duplicated
// and sorted by name
func (r *EfficiencyRegistry) ListFacilities() []*Recipe {
	seen := make(map[string]bool)
	facilities := make([]*Recipe, 0)

	for _, material := range r.catalog.Materials() {
		for _, recipe := range r.catalog.RecipesFor(material) {
			if seen[recipe.Name] {
				continue
			}
			seen[recipe.Name] = true
			facilities = append(facilities, recipe)
		}
	}

	sort.Slice(facilities, func(i, j int) bool { return facilities[i].Name < facilities[j].Name })
	return facilities
}

// Unsubscribe stops delivery to the subscription's handler. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}

	r := s.registry
	r.mu.Lock()
	defer r.mu.Unlock()

	if !s.active {
		return
	}
	s.active = false

	for i, sub := range r.subscribers {
		if sub.id == s.id {
			r.subscribers = append(r.subscribers[:i], r.subscribers[i+1:]...)
			break
		}
	}
}

func (s *Subscription) isActive() bool {
	s.registry.mu.RLock()
	defer s.registry.mu.RUnlock()
	return s.active
}
