package dag

import (
	"fmt"
	"sort"

	"TempeQuest/internal/stats"
)

// ConditionKind tags the variant held by a Condition.
type ConditionKind string

const (
	CondAlways      ConditionKind = "always"
	CondStatAtLeast ConditionKind = "stat_at_least"
	CondIsCharacter ConditionKind = "is_character"
	CondAnd         ConditionKind = "and"
	CondOr          ConditionKind = "or"
	CondNot         ConditionKind = "not"
)

// Condition gates an action or dialogue choice on (identity, stats).
// It is inert data so content can be loaded from JSON; a nil *Condition is
// treated as always true.
type Condition struct {
	Kind      ConditionKind  `json:"kind"`
	Stat      stats.Name     `json:"stat,omitempty"`
	Min       int            `json:"min,omitempty"`
	Character stats.Identity `json:"character,omitempty"`
	Terms     []*Condition   `json:"terms,omitempty"`
}

// Always returns a condition that always holds.
func Always() *Condition { return &Condition{Kind: CondAlways} }

// StatAtLeast holds when the named stat is at least min.
func StatAtLeast(name stats.Name, min int) *Condition {
	return &Condition{Kind: CondStatAtLeast, Stat: name, Min: min}
}

// IsCharacter holds for one identity only.
func IsCharacter(id stats.Identity) *Condition {
	return &Condition{Kind: CondIsCharacter, Character: id}
}

// And holds when every term holds.
func And(terms ...*Condition) *Condition { return &Condition{Kind: CondAnd, Terms: terms} }

// Or holds when any term holds.
func Or(terms ...*Condition) *Condition { return &Condition{Kind: CondOr, Terms: terms} }

// Not negates a single term.
func Not(term *Condition) *Condition { return &Condition{Kind: CondNot, Terms: []*Condition{term}} }

// Eval evaluates the condition for a character. It is pure and reads the
// profile without copying it, so stat changes are seen immediately.
// The hidden stat is evaluated like any other.
func (c *Condition) Eval(id stats.Identity, p *stats.Profile) bool {
	if c == nil {
		return true
	}
	switch c.Kind {
	case CondAlways:
		return true
	case CondStatAtLeast:
		if p == nil {
			return false
		}
		v, ok := p.Get(c.Stat)
		return ok && v >= c.Min
	case CondIsCharacter:
		return id == c.Character
	case CondAnd:
		for _, t := range c.Terms {
			if !t.Eval(id, p) {
				return false
			}
		}
		return true
	case CondOr:
		for _, t := range c.Terms {
			if t.Eval(id, p) {
				return true
			}
		}
		return false
	case CondNot:
		if len(c.Terms) != 1 {
			return false
		}
		return !c.Terms[0].Eval(id, p)
	}
	return false
}

// validate checks the shape of a condition tree.
func (c *Condition) validate() error {
	if c == nil {
		return nil
	}
	switch c.Kind {
	case CondAlways:
	case CondStatAtLeast:
		if !stats.Known(c.Stat) {
			return fmt.Errorf("%w: unknown stat %q", ErrInvalidCondition, c.Stat)
		}
	case CondIsCharacter:
		if !c.Character.Valid() {
			return fmt.Errorf("%w: unknown character %q", ErrInvalidCondition, c.Character)
		}
	case CondAnd, CondOr:
		if len(c.Terms) == 0 {
			return fmt.Errorf("%w: %s needs at least one term", ErrInvalidCondition, c.Kind)
		}
	case CondNot:
		if len(c.Terms) != 1 {
			return fmt.Errorf("%w: not takes exactly one term, got %d", ErrInvalidCondition, len(c.Terms))
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidCondition, c.Kind)
	}
	for _, t := range c.Terms {
		if t == nil {
			return fmt.Errorf("%w: nil term in %s", ErrInvalidCondition, c.Kind)
		}
		if err := t.validate(); err != nil {
			return err
		}
	}
	return nil
}

// collectThresholds records every stat threshold referenced by c.
func (c *Condition) collectThresholds(into map[stats.Name]map[int]bool) {
	if c == nil {
		return
	}
	if c.Kind == CondStatAtLeast {
		if into[c.Stat] == nil {
			into[c.Stat] = make(map[int]bool)
		}
		into[c.Stat][c.Min] = true
	}
	for _, t := range c.Terms {
		t.collectThresholds(into)
	}
}

// MaxReachableProfiles bounds the profiles checked per node and character.
// Each stat multiplies the count by its thresholds above baseline plus one.
const MaxReachableProfiles = 4096

// ReachableProfiles enumerates the profiles a character can reach from its
// baseline that matter to the given conditions. Stats only ever rise by one
// up to stats.Max, and conditions only compare against thresholds, so the
// baseline plus each threshold above it covers every distinct outcome.
// It fails with ErrTooManyThresholds rather than enumerate more than
// MaxReachableProfiles.
func ReachableProfiles(baseline stats.Profile, conds ...*Condition) ([]stats.Profile, error) {
	thresholds := make(map[stats.Name]map[int]bool)
	for _, c := range conds {
		c.collectThresholds(thresholds)
	}

	steps := make(map[stats.Name][]int)
	total := 1
	for _, name := range stats.Names() {
		base, _ := baseline.Get(name)
		var values []int
		for t := range thresholds[name] {
			if t > base && t <= stats.Max {
				values = append(values, t)
			}
		}
		if len(values) == 0 {
			continue
		}
		sort.Ints(values)
		steps[name] = values
		total *= len(values) + 1
		if total > MaxReachableProfiles {
			return nil, fmt.Errorf("%w: more than %d stat combinations", ErrTooManyThresholds, MaxReachableProfiles)
		}
	}

	profiles := make([]stats.Profile, 1, total)
	profiles[0] = baseline
	for _, name := range stats.Names() {
		values := steps[name]
		if len(values) == 0 {
			continue
		}
		expanded := make([]stats.Profile, 0, len(profiles)*(len(values)+1))
		for _, p := range profiles {
			expanded = append(expanded, p)
			for _, v := range values {
				next, _ := p.WithValue(name, v)
				expanded = append(expanded, next)
			}
		}
		profiles = expanded
	}
	return profiles, nil
}
