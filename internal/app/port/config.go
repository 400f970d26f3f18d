package port

import "alpha_radar/internal/config"

// RulesProvider exposes the rule documents (filters, weights, sources) loaded for a run.
type RulesProvider interface {
	GetRules() *config.Rules
}
