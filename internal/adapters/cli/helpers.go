package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// parseEfficiencies parses RECIPE=PCT pairs; a trailing % is accepted
func parseEfficiencies(pairs []string) (map[string]float64, error) {
	efficiencies := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid efficiency %q: expected RECIPE=PERCENT", pair)
		}

		percentage, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(value), "%"), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid efficiency %q: %w", pair, err)
		}
		efficiencies[name] = percentage
	}
	return efficiencies, nil
}

// formatRate renders a per-minute rate with at most two decimals
func formatRate(rate float64) string {
	return strconv.FormatFloat(math.Round(rate*100)/100, 'f', -1, 64)
}

// formatQuantities renders quantities as "a:1, b:2" in the given key order
func formatQuantities(quantities map[string]float64, keys []string) string {
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s:%s", key, formatRate(quantities[key])))
	}
	return strings.Join(parts, ", ")
}

func writeJSON(w io.Writer, value interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
