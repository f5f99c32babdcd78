package preset

import (
	"fmt"
	"strings"
)

// Toggle identifies one boolean rendering option.
type Toggle string

const (
	// InputReplacement replaces visible choice options with the ppp_input column.
	InputReplacement Toggle = "input_replacement"
	// Exclusion removes survey components marked for exclusion.
	Exclusion Toggle = "exclusion"
	// HRRelevant shows human readable relevant text instead of raw logic.
	HRRelevant Toggle = "hr_relevant"
	// HRConstraint shows human readable constraint text instead of raw logic.
	HRConstraint Toggle = "hr_constraint"
	// NoConstraint removes all constraints from the rendered form.
	NoConstraint Toggle = "no_constraint"
	// TextReplacements applies the text_replacements worksheet.
	TextReplacements Toggle = "text_replacements"
)

var allToggles = []Toggle{
	InputReplacement,
	Exclusion,
	HRRelevant,
	HRConstraint,
	NoConstraint,
	TextReplacements,
}

// AllToggles returns every toggle in canonical order.
func AllToggles() []Toggle {
	out := make([]Toggle, len(allToggles))
	copy(out, allToggles)
	return out
}

// FlagName returns the command-line spelling of t, e.g. "hr-relevant".
func (t Toggle) FlagName() string {
	return strings.ReplaceAll(string(t), "_", "-")
}

// ParseToggle accepts either the canonical name ("hr_relevant") or the flag
// spelling ("hr-relevant").
func ParseToggle(name string) (Toggle, error) {
	t := Toggle(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_"))
	for _, known := range allToggles {
		if t == known {
			return t, nil
		}
	}
	return "", &ConfigurationError{
		Field:   "toggles",
		Message: fmt.Sprintf("unknown toggle %q", name),
	}
}

// Toggles is the full set of toggle values. The zero value has every
// toggle off.
type Toggles struct {
	InputReplacement bool `json:"input_replacement"`
	Exclusion        bool `json:"exclusion"`
	HRRelevant       bool `json:"hr_relevant"`
	HRConstraint     bool `json:"hr_constraint"`
	NoConstraint     bool `json:"no_constraint"`
	TextReplacements bool `json:"text_replacements"`
}

// Get returns the value of t. Unknown toggles report false.
func (ts Toggles) Get(t Toggle) bool {
	switch t {
	case InputReplacement:
		return ts.InputReplacement
	case Exclusion:
		return ts.Exclusion
	case HRRelevant:
		return ts.HRRelevant
	case HRConstraint:
		return ts.HRConstraint
	case NoConstraint:
		return ts.NoConstraint
	case TextReplacements:
		return ts.TextReplacements
	default:
		return false
	}
}

// Set returns a copy of ts with t set to v.
func (ts Toggles) Set(t Toggle, v bool) Toggles {
	switch t {
	case InputReplacement:
		ts.InputReplacement = v
	case Exclusion:
		ts.Exclusion = v
	case HRRelevant:
		ts.HRRelevant = v
	case HRConstraint:
		ts.HRConstraint = v
	case NoConstraint:
		ts.NoConstraint = v
	case TextReplacements:
		ts.TextReplacements = v
	}
	return ts
}

// Map returns the toggle values keyed by toggle.
func (ts Toggles) Map() map[Toggle]bool {
	m := make(map[Toggle]bool, len(allToggles))
	for _, t := range allToggles {
		m[t] = ts.Get(t)
	}
	return m
}

// Diff lists, in canonical order, the toggles whose values differ between ts
// and other.
func (ts Toggles) Diff(other Toggles) []Toggle {
	var changed []Toggle
	for _, t := range allToggles {
		if ts.Get(t) != other.Get(t) {
			changed = append(changed, t)
		}
	}
	return changed
}

// Overrides holds explicitly chosen toggle values. A toggle absent from the
// map is unset and keeps the preset default; present keys may force either
// true or false.
type Overrides map[Toggle]bool

// Clone returns an independent copy of o.
func (o Overrides) Clone() Overrides {
	if o == nil {
		return nil
	}
	out := make(Overrides, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

// Apply returns base with every override in o applied.
func (o Overrides) Apply(base Toggles) Toggles {
	for _, t := range allToggles {
		if v, ok := o[t]; ok {
			base = base.Set(t, v)
		}
	}
	return base
}
