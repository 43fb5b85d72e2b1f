package game

import (
	"errors"
	"fmt"

	"TempeQuest/internal/dag"
	"TempeQuest/internal/stats"
)

var (
	// ErrInput is the class of every caller contract violation. Callers are
	// expected to re-prompt.
	ErrInput = errors.New("game: invalid input")
	// ErrChoiceOutOfRange is returned when an index is outside the presented list.
	ErrChoiceOutOfRange = fmt.Errorf("%w: choice out of range", ErrInput)
	// ErrUnknownCharacter is returned for an identity missing from the roster.
	ErrUnknownCharacter = fmt.Errorf("%w: unknown character", ErrInput)
	// ErrNoActiveCharacter is returned when play starts before selection.
	ErrNoActiveCharacter = fmt.Errorf("%w: no character selected", ErrInput)
	// ErrNotInDialogue is returned when a dialogue choice is made outside a dialogue.
	ErrNotInDialogue = fmt.Errorf("%w: no dialogue in progress", ErrInput)
)

// Player owns one character per roster entry and tracks the active one.
// It is the single source of truth read by condition evaluation.
type Player struct {
	characters map[stats.Identity]*stats.Character
	order      []stats.Identity
	current    *stats.Character
}

// NewPlayer creates a player with a fresh copy of every roster baseline.
func NewPlayer(roster []dag.CharacterDef) *Player {
	p := &Player{characters: make(map[stats.Identity]*stats.Character, len(roster))}
	for _, def := range roster {
		profile := def.Stats
		p.characters[def.Identity] = &stats.Character{Identity: def.Identity, Stats: &profile}
		p.order = append(p.order, def.Identity)
	}
	return p
}

// SelectCharacter makes the named character active. It reports false and
// keeps the previous selection when the name is not in the roster.
func (p *Player) SelectCharacter(name string) bool {
	id, ok := stats.ParseIdentity(name)
	if !ok {
		return false
	}
	c, ok := p.characters[id]
	if !ok {
		return false
	}
	p.current = c
	return true
}

// Active returns the selected character, if any.
func (p *Player) Active() (*stats.Character, bool) {
	return p.current, p.current != nil
}

// Character returns a roster character by identity.
func (p *Player) Character(id stats.Identity) (*stats.Character, bool) {
	c, ok := p.characters[id]
	return c, ok
}

// Roster returns every character in authored order.
func (p *Player) Roster() []*stats.Character {
	out := make([]*stats.Character, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.characters[id])
	}
	return out
}

// IncreaseStat raises a stat of the active character by one.
func (p *Player) IncreaseStat(name stats.Name) bool {
	if p.current == nil {
		return false
	}
	return p.current.Stats.Increase(name)
}

// VisibleStats returns the active character's stats without the hidden one,
// or nothing when no character is active.
func (p *Player) VisibleStats() []stats.Stat {
	if p.current == nil {
		return []stats.Stat{}
	}
	return p.current.Stats.Visible()
}
