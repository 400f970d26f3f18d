package utils

import "strings"

// CleanTerms trims each term and drops empty ones, keeping order and duplicates.
func CleanTerms(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
