package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/chainplanner/internal/domain/production"
)

// PlannerMetricsCollector observes production trees and exposes their activity.
// It implements production.Observer.
type PlannerMetricsCollector struct {
	nodesCreatedTotal   *prometheus.CounterVec
	nodesReleasedTotal  prometheus.Counter
	liveNodes           prometheus.Gauge
	recipeSelections    *prometheus.CounterVec
	facilityCount       *prometheus.GaugeVec
	recomputationsTotal *prometheus.CounterVec

	mu       sync.Mutex
	maxDepth int
	depth    prometheus.Gauge
}

var _ production.Observer = (*PlannerMetricsCollector)(nil)

// NewPlannerMetricsCollector creates a new planner metrics collector
func NewPlannerMetricsCollector(namespace string) *PlannerMetricsCollector {
	namespace = namespaceOrDefault(namespace)
	return &PlannerMetricsCollector{
		nodesCreatedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "nodes_created_total",
				Help:      "Production nodes created, by tree depth",
			},
			[]string{"depth"},
		),

		nodesReleasedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "nodes_released_total",
				Help:      "Production nodes released from a tree",
			},
		),

		liveNodes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "live_nodes",
				Help:      "Production nodes currently subscribed to efficiency updates",
			},
		),

		recipeSelections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "recipe_selections_total",
				Help:      "Explicit recipe selections, by recipe",
			},
			[]string{"recipe"},
		),

		facilityCount: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "facility_count",
				Help:      "Most recently computed facility count, by recipe",
			},
			[]string{"recipe"},
		),

		recomputationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "facility_recomputations_total",
				Help:      "Facility count recomputations, by recipe",
			},
			[]string{"recipe"},
		),

		depth: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "max_tree_depth",
				Help:      "Deepest node depth seen",
			},
		),
	}
}

// Register registers all planner metrics with the Prometheus registry
func (c *PlannerMetricsCollector) Register() error {
	return register(
		c.nodesCreatedTotal,
		c.nodesReleasedTotal,
		c.liveNodes,
		c.recipeSelections,
		c.facilityCount,
		c.recomputationsTotal,
		c.depth,
	)
}

// NodeCreated records a new node at depth
func (c *PlannerMetricsCollector) NodeCreated(material production.Material, depth int) {
	c.nodesCreatedTotal.WithLabelValues(depthLabel(depth)).Inc()
	c.liveNodes.Inc()

	c.mu.Lock()
	defer c.mu.Unlock()
	if depth > c.maxDepth {
		c.maxDepth = depth
		c.depth.Set(float64(depth))
	}
}

// NodeReleased records a node leaving its tree
func (c *PlannerMetricsCollector) NodeReleased(material production.Material) {
	c.nodesReleasedTotal.Inc()
	c.liveNodes.Dec()
}

// RecipeSelected records an explicit recipe selection
func (c *PlannerMetricsCollector) RecipeSelected(material production.Material, recipe string) {
	c.recipeSelections.WithLabelValues(recipe).Inc()
}

// FacilityCountRecomputed records a facility count derived for recipe
func (c *PlannerMetricsCollector) FacilityCountRecomputed(recipe string, count int) {
	c.recomputationsTotal.WithLabelValues(recipe).Inc()
	c.facilityCount.WithLabelValues(recipe).Set(float64(count))
}

// depthLabel buckets deep nodes together to bound label cardinality
func depthLabel(depth int) string {
	if depth >= 10 {
		return "10+"
	}
	return strconv.Itoa(depth)
}
