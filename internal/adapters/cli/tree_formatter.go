package cli

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/chainplanner/internal/application/planning"
)

// TreeFormatter renders production trees and totals for the terminal
type TreeFormatter struct {
	useColors bool
}

// NewTreeFormatter creates a new tree formatter
func NewTreeFormatter(useColors bool) *TreeFormatter {
	return &TreeFormatter{
		useColors: useColors,
	}
}

// FormatTree renders a production tree, one node per line
func (f *TreeFormatter) FormatTree(root *planning.NodeView) string {
	if root == nil {
		return "(empty tree)"
	}

	var builder strings.Builder
	f.formatNode(&builder, root, "", true, true)
	return builder.String()
}

// formatNode recursively formats a node and its children
func (f *TreeFormatter) formatNode(builder *strings.Builder, node *planning.NodeView, prefix string, isLast bool, isRoot bool) {
	var linePrefix string
	if isRoot {
		linePrefix = ""
	} else if isLast {
		linePrefix = prefix + "└── "
	} else {
		linePrefix = prefix + "├── "
	}

	requiredText := ""
	if node.RequiredRate != nil {
		requiredText = fmt.Sprintf(" (needs %s/min)", formatRate(*node.RequiredRate))
	}

	efficiencyText := ""
	if label := strings.TrimSpace(node.EfficiencyLabel); label != "" {
		efficiencyText = " " + label
	}

	alternativesText := ""
	if len(node.Alternatives) > 0 {
		alternativesText = fmt.Sprintf(" {%s}", strings.Join(node.Alternatives, "|"))
	}

	line := fmt.Sprintf("%s%s [%s%s%s] x%d → %s/min%s%s%s\n",
		linePrefix,
		node.Material,
		f.recipeColor(node),
		node.Recipe,
		f.colorReset(),
		node.FactoryCount,
		formatRate(node.ProductionRate),
		requiredText,
		efficiencyText,
		alternativesText,
	)
	builder.WriteString(line)

	if len(node.Children) > 0 {
		var childPrefix string
		if isRoot {
			childPrefix = ""
		} else if isLast {
			childPrefix = prefix + "    "
		} else {
			childPrefix = prefix + "│   "
		}

		for i := range node.Children {
			isLastChild := i == len(node.Children)-1
			f.formatNode(builder, &node.Children[i], childPrefix, isLastChild, false)
		}
	}
}

// recipeColor returns the ANSI color code for a node's recipe: green for raw extraction, yellow for processing
func (f *TreeFormatter) recipeColor(node *planning.NodeView) string {
	if !f.useColors {
		return ""
	}
	if len(node.Children) == 0 {
		return "\033[32m" // Green
	}
	return "\033[33m" // Yellow
}

// colorReset returns ANSI reset code
func (f *TreeFormatter) colorReset() string {
	if !f.useColors {
		return ""
	}
	return "\033[0m"
}

// FormatTreeSummary creates a compact summary of the plan
func (f *TreeFormatter) FormatTreeSummary(plan *planning.PlanView) string {
	if plan == nil {
		return "No production tree"
	}

	summary := fmt.Sprintf("Tree: %d nodes, depth=%d, facilities=%d",
		plan.NodeCount, plan.Depth, plan.TotalFacilities)
	if len(plan.RawMaterials) > 0 {
		summary += fmt.Sprintf("\nRaw materials: %s", strings.Join(plan.RawMaterials, ", "))
	}
	if len(plan.SelectionMaterials) > 0 {
		summary += fmt.Sprintf("\nAlternative recipes available for: %s", strings.Join(plan.SelectionMaterials, ", "))
	}
	return summary
}

// FormatTotals renders the per-facility throughput table
func (f *TreeFormatter) FormatTotals(totals []planning.TotalView) string {
	if len(totals) == 0 {
		return "No supplying facilities"
	}

	recipeWidth, materialWidth := len("FACILITY"), len("MATERIAL")
	for _, total := range totals {
		recipeWidth = max(recipeWidth, len(total.Recipe))
		materialWidth = max(materialWidth, len(total.Material))
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "%-*s  %-*s  %s\n", recipeWidth, "FACILITY", materialWidth, "MATERIAL", "RATE/MIN")
	for _, total := range totals {
		fmt.Fprintf(&builder, "%-*s  %-*s  %s\n", recipeWidth, total.Recipe, materialWidth, total.Material, formatRate(total.Rate))
	}
	return builder.String()
}
