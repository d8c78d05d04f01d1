// Package rules evaluates operator-supplied JavaScript predicates for the
// custom processing strategy. Expressions are pure functions of the injected
// variables, so evaluation stays deterministic across replays.
package rules

import (
	"fmt"
	"log/slog"

	"github.com/dop251/goja"
	"github.com/me/seasonsim/internal/config"
	"github.com/me/seasonsim/pkg/model"
)

// Evaluator evaluates the custom strategy's feature and significance rules.
type Evaluator struct {
	rules  config.CustomRules
	logger *slog.Logger
}

// New creates an evaluator over the configured rules.
func New(rules config.CustomRules, logger *slog.Logger) *Evaluator {
	return &Evaluator{
		rules:  rules,
		logger: logger.With("component", "rules"),
	}
}

// Feature evaluates the boolean expression configured for a feature name.
// Variables in scope: kind (string), stats (map), week (int). A missing rule
// defaults to enabled; a broken rule logs and defaults to enabled, so a typo
// degrades to full-progression behavior rather than silently dropping work.
func (e *Evaluator) Feature(name string, kind model.Kind, stats map[string]float64, week int) bool {
	expr, ok := e.rules.Features[name]
	if !ok || expr == "" {
		return true
	}

	vars := map[string]any{
		"kind":  kind.String(),
		"stats": stats,
		"week":  week,
	}
	enabled, err := e.evalBool(expr, vars)
	if err != nil {
		e.logger.Warn("feature rule failed; defaulting to enabled",
			"feature", name, "error", err)
		return true
	}
	return enabled
}

// HasSignificanceRule reports whether a custom significance rule is set.
func (e *Evaluator) HasSignificanceRule() bool {
	return e.rules.Significant != ""
}

// Significant evaluates the significance rule against a side-effect text.
// Variables in scope: text (string), week (int).
func (e *Evaluator) Significant(text string, week int) bool {
	if e.rules.Significant == "" {
		return false
	}

	vars := map[string]any{
		"text": text,
		"week": week,
	}
	sig, err := e.evalBool(e.rules.Significant, vars)
	if err != nil {
		e.logger.Warn("significance rule failed", "error", err)
		return false
	}
	return sig
}

// evalBool runs one expression in a fresh VM with the given variables bound.
// A fresh VM per call keeps rules from smuggling state between evaluations.
func (e *Evaluator) evalBool(expr string, vars map[string]any) (bool, error) {
	vm := goja.New()
	for name, value := range vars {
		if err := vm.Set(name, value); err != nil {
			return false, fmt.Errorf("set %s: %w", name, err)
		}
	}

	val, err := vm.RunString(fmt.Sprintf("(function() { return (%s); })()", expr))
	if err != nil {
		return false, fmt.Errorf("evaluate %q: %w", expr, err)
	}
	return val.ToBoolean(), nil
}
