// Package dag implements the static narrative graph: scenes, dialogue trees
// and the conditions that gate their edges.
//
// Evaluation is pure with respect to (graph, identity, profile).
// The graph is built once from content, validated at boot, and never
// mutated afterwards.
package dag

import (
	"errors"
	"fmt"

	"TempeQuest/internal/stats"
)

// SceneID uniquely identifies a scene.
type SceneID string

// DialogueID uniquely identifies a dialogue node.
type DialogueID string

// EndDialogue is the Next value of a choice that closes the dialogue.
const EndDialogue DialogueID = ""

var (
	// ErrContent is the class of every content authoring error.
	ErrContent = errors.New("dag: content error")
	// ErrNodeNotFound is returned when a referenced scene or dialogue doesn't exist.
	ErrNodeNotFound = fmt.Errorf("%w: node not found", ErrContent)
	// ErrDuplicateID is returned when two nodes share an identifier.
	ErrDuplicateID = fmt.Errorf("%w: duplicate id", ErrContent)
	// ErrDeadEnd is returned when a scene can leave a player with no action.
	ErrDeadEnd = fmt.Errorf("%w: dead-end scene", ErrContent)
	// ErrNoSelectableChoices is returned when a dialogue node can leave a player with no choice.
	ErrNoSelectableChoices = fmt.Errorf("%w: no selectable choices", ErrContent)
	// ErrInvalidCondition is returned for malformed conditions.
	ErrInvalidCondition = fmt.Errorf("%w: invalid condition", ErrContent)
	// ErrInvalidRoster is returned for a missing, duplicate or malformed character.
	ErrInvalidRoster = fmt.Errorf("%w: invalid character roster", ErrContent)
	// ErrTooManyThresholds is returned when a node gates on too many stat
	// thresholds to check exhaustively.
	ErrTooManyThresholds = fmt.Errorf("%w: too many stat thresholds", ErrContent)
)

// CharacterDef declares a playable character and its starting stats.
type CharacterDef struct {
	Identity stats.Identity `json:"identity"`
	Stats    stats.Profile  `json:"stats"`
}

// Action is a scene-level option leading to another scene.
type Action struct {
	Text      string     `json:"text"`
	Condition *Condition `json:"condition,omitempty"`
	Target    SceneID    `json:"target"`
	Grants    stats.Name `json:"grants,omitempty"` // stat raised by one when taken
}

// Scene is a node of the top-level narrative graph.
type Scene struct {
	ID              SceneID           `json:"id"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	InitialDialogue DialogueID        `json:"initial_dialogue,omitempty"` // played on every entry
	Actions         []Action          `json:"actions"`
	Payload         map[string]string `json:"payload,omitempty"` // free-form metadata, e.g. "chapter"
}

// Graph is the validated, read-only scene and dialogue graph.
type Graph struct {
	Title     string
	start     SceneID
	roster    []CharacterDef
	Scenes    map[SceneID]*Scene
	Dialogues map[DialogueID]*DialogueNode
}

// Scene returns a scene by ID, or nil if not found.
func (g *Graph) Scene(id SceneID) *Scene {
	return g.Scenes[id]
}

// Dialogue returns a dialogue node by ID, or nil if not found.
func (g *Graph) Dialogue(id DialogueID) *DialogueNode {
	return g.Dialogues[id]
}

// StartScene returns the scene a new session begins in.
func (g *Graph) StartScene() SceneID {
	return g.start
}

// Roster returns the playable characters in authored order.
func (g *Graph) Roster() []CharacterDef {
	out := make([]CharacterDef, len(g.roster))
	copy(out, g.roster)
	return out
}

// Build indexes and validates content. Any dangling reference, malformed
// condition, or node that some reachable player state cannot leave aborts
// the build.
func Build(c *Content) (*Graph, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil content", ErrContent)
	}
	g := &Graph{
		Title:     c.Title,
		start:     c.StartScene,
		Scenes:    make(map[SceneID]*Scene, len(c.Scenes)),
		Dialogues: make(map[DialogueID]*DialogueNode, len(c.Dialogues)),
	}

	if err := g.indexRoster(c.Characters); err != nil {
		return nil, err
	}

	// Index all nodes
	for _, s := range c.Scenes {
		if s == nil || s.ID == "" {
			return nil, fmt.Errorf("%w: scene without id", ErrContent)
		}
		if _, dup := g.Scenes[s.ID]; dup {
			return nil, fmt.Errorf("%w: scene %s", ErrDuplicateID, s.ID)
		}
		g.Scenes[s.ID] = s
	}
	for _, d := range c.Dialogues {
		if d == nil || d.ID == EndDialogue {
			return nil, fmt.Errorf("%w: dialogue without id", ErrContent)
		}
		if _, dup := g.Dialogues[d.ID]; dup {
			return nil, fmt.Errorf("%w: dialogue %s", ErrDuplicateID, d.ID)
		}
		g.Dialogues[d.ID] = d
	}

	if g.Scene(g.start) == nil {
		return nil, fmt.Errorf("%w: start scene %q", ErrNodeNotFound, g.start)
	}

	// Validate references in authored order so errors are deterministic
	for _, s := range c.Scenes {
		if err := g.validateScene(s); err != nil {
			return nil, err
		}
	}
	for _, d := range c.Dialogues {
		if err := g.validateDialogue(d); err != nil {
			return nil, err
		}
	}

	// Reachability: no reachable player state may be left without an option
	for _, s := range c.Scenes {
		if err := g.checkSceneExits(s); err != nil {
			return nil, err
		}
	}
	for _, d := range c.Dialogues {
		if err := g.checkDialogueExits(d); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func (g *Graph) indexRoster(defs []CharacterDef) error {
	if len(defs) == 0 {
		return fmt.Errorf("%w: no characters", ErrInvalidRoster)
	}
	seen := make(map[stats.Identity]bool, len(defs))
	for _, def := range defs {
		if !def.Identity.Valid() {
			return fmt.Errorf("%w: unknown identity %q", ErrInvalidRoster, def.Identity)
		}
		if seen[def.Identity] {
			return fmt.Errorf("%w: %s declared twice", ErrInvalidRoster, def.Identity)
		}
		if err := def.Stats.Validate(); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidRoster, def.Identity, err)
		}
		seen[def.Identity] = true
		g.roster = append(g.roster, def)
	}
	return nil
}

func validateGrant(name stats.Name) error {
	if name != "" && !stats.Known(name) {
		return fmt.Errorf("%w: grants unknown stat %q", ErrContent, name)
	}
	return nil
}

func (g *Graph) validateScene(s *Scene) error {
	if s.InitialDialogue != EndDialogue && g.Dialogue(s.InitialDialogue) == nil {
		return fmt.Errorf("%w: scene %s opens missing dialogue %s", ErrNodeNotFound, s.ID, s.InitialDialogue)
	}
	if len(s.Actions) == 0 {
		return fmt.Errorf("%w: scene %s has no actions", ErrDeadEnd, s.ID)
	}
	for i, a := range s.Actions {
		if g.Scene(a.Target) == nil {
			return fmt.Errorf("%w: scene %s action %d targets missing scene %q", ErrNodeNotFound, s.ID, i, a.Target)
		}
		if err := a.Condition.validate(); err != nil {
			return fmt.Errorf("scene %s action %d: %w", s.ID, i, err)
		}
		if err := validateGrant(a.Grants); err != nil {
			return fmt.Errorf("scene %s action %d: %w", s.ID, i, err)
		}
	}
	return nil
}

func (g *Graph) validateDialogue(d *DialogueNode) error {
	if len(d.Choices) == 0 {
		return fmt.Errorf("%w: dialogue %s has no choices", ErrNoSelectableChoices, d.ID)
	}
	for i, ch := range d.Choices {
		if ch.Next != EndDialogue && g.Dialogue(ch.Next) == nil {
			return fmt.Errorf("%w: dialogue %s choice %d continues to missing dialogue %q", ErrNodeNotFound, d.ID, i, ch.Next)
		}
		if ch.Redirect != "" && g.Scene(ch.Redirect) == nil {
			return fmt.Errorf("%w: dialogue %s choice %d redirects to missing scene %q", ErrNodeNotFound, d.ID, i, ch.Redirect)
		}
		if err := ch.Condition.validate(); err != nil {
			return fmt.Errorf("dialogue %s choice %d: %w", d.ID, i, err)
		}
		if err := validateGrant(ch.Grants); err != nil {
			return fmt.Errorf("dialogue %s choice %d: %w", d.ID, i, err)
		}
	}
	return nil
}

// firstStuck returns the first roster character and profile for which none
// of conds holds, if any.
func (g *Graph) firstStuck(conds []*Condition) (stats.Identity, stats.Profile, bool, error) {
	for _, def := range g.roster {
		profiles, err := ReachableProfiles(def.Stats, conds...)
		if err != nil {
			return "", stats.Profile{}, false, err
		}
		for _, p := range profiles {
			open := false
			for _, c := range conds {
				if c.Eval(def.Identity, &p) {
					open = true
					break
				}
			}
			if !open {
				return def.Identity, p, true, nil
			}
		}
	}
	return "", stats.Profile{}, false, nil
}

func (g *Graph) checkSceneExits(s *Scene) error {
	conds := make([]*Condition, len(s.Actions))
	for i := range s.Actions {
		conds[i] = s.Actions[i].Condition
	}
	id, p, stuck, err := g.firstStuck(conds)
	if err != nil {
		return fmt.Errorf("scene %s: %w", s.ID, err)
	}
	if stuck {
		return fmt.Errorf("%w: scene %s has no available action for %s with %+v", ErrDeadEnd, s.ID, id, p)
	}
	return nil
}

func (g *Graph) checkDialogueExits(d *DialogueNode) error {
	conds := make([]*Condition, len(d.Choices))
	for i := range d.Choices {
		conds[i] = d.Choices[i].Condition
	}
	id, p, stuck, err := g.firstStuck(conds)
	if err != nil {
		return fmt.Errorf("dialogue %s: %w", d.ID, err)
	}
	if stuck {
		return fmt.Errorf("%w: dialogue %s has no choice for %s with %+v", ErrNoSelectableChoices, d.ID, id, p)
	}
	return nil
}
