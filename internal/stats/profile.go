// Package stats holds character identities and their bounded stat profiles.
package stats

import (
	"errors"
	"fmt"
)

// Stat bounds, inclusive.
const (
	Min = 0
	Max = 10
)

// Name identifies a single stat.
type Name string

const (
	Passion       Name = "passion"
	Intelligence  Name = "intelligence"
	Charisma      Name = "charisma"
	Strength      Name = "strength"
	Life          Name = "life"
	PatrickPoints Name = "patrick_points"
)

// Hidden is tracked and usable in conditions but never shown to the player.
const Hidden = PatrickPoints

// ErrStatOutOfRange is returned when a profile holds a value outside [Min, Max].
var ErrStatOutOfRange = errors.New("stats: value out of range")

// Names returns every stat name in display order, hidden stat last.
func Names() []Name {
	return []Name{Passion, Intelligence, Charisma, Strength, Life, PatrickPoints}
}

// Known reports whether name is one of the profile's stats.
func Known(name Name) bool {
	for _, n := range Names() {
		if n == name {
			return true
		}
	}
	return false
}

// Stat is a single name/value pair used for ordered projections.
type Stat struct {
	Name  Name `json:"name"`
	Value int  `json:"value"`
}

// Profile is the fixed set of stats for one character.
type Profile struct {
	Passion       int `json:"passion"`
	Intelligence  int `json:"intelligence"`
	Charisma      int `json:"charisma"`
	Strength      int `json:"strength"`
	Life          int `json:"life"`
	PatrickPoints int `json:"patrick_points"`
}

// field maps a name to the backing struct field.
func (p *Profile) field(name Name) *int {
	switch name {
	case Passion:
		return &p.Passion
	case Intelligence:
		return &p.Intelligence
	case Charisma:
		return &p.Charisma
	case Strength:
		return &p.Strength
	case Life:
		return &p.Life
	case PatrickPoints:
		return &p.PatrickPoints
	}
	return nil
}

// Get returns the value of a stat, or false if the name is unknown.
func (p *Profile) Get(name Name) (int, bool) {
	f := p.field(name)
	if f == nil {
		return 0, false
	}
	return *f, true
}

// Increase raises a stat by one. It reports false without mutating when the
// stat does not exist or is already at Max.
func (p *Profile) Increase(name Name) bool {
	f := p.field(name)
	if f == nil || *f >= Max {
		return false
	}
	*f++
	return true
}

// set is used by reachability enumeration and test fixtures only.
func (p *Profile) set(name Name, value int) bool {
	f := p.field(name)
	if f == nil || value < Min || value > Max {
		return false
	}
	*f = value
	return true
}

// WithValue returns a copy of p with name set to value. Out-of-range values
// and unknown names leave the copy unchanged and report false.
func (p Profile) WithValue(name Name, value int) (Profile, bool) {
	ok := p.set(name, value)
	return p, ok
}

// All returns every stat in canonical order, hidden stat included.
func (p *Profile) All() []Stat {
	out := make([]Stat, 0, len(Names()))
	for _, n := range Names() {
		v, _ := p.Get(n)
		out = append(out, Stat{Name: n, Value: v})
	}
	return out
}

// Visible returns every stat except the hidden one, in canonical order.
func (p *Profile) Visible() []Stat {
	out := make([]Stat, 0, len(Names())-1)
	for _, s := range p.All() {
		if s.Name == Hidden {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Validate checks that every value lies in [Min, Max].
func (p *Profile) Validate() error {
	for _, s := range p.All() {
		if s.Value < Min || s.Value > Max {
			return fmt.Errorf("%w: %s=%d, must be in range %d..%d", ErrStatOutOfRange, s.Name, s.Value, Min, Max)
		}
	}
	return nil
}
