package game

import (
	"fmt"

	"TempeQuest/internal/dag"
	"TempeQuest/internal/stats"
)

// Traversal is the cursor of one dialogue node: the node, the character it
// was filtered for, and the choices that character can select.
type Traversal struct {
	Node     *dag.DialogueNode
	Identity stats.Identity
	Choices  []dag.DialogueChoice
}

// Speaker returns the node's speaker label.
func (t *Traversal) Speaker() string { return t.Node.Speaker }

// Text returns the node body as narrated to the traversal's character.
func (t *Traversal) Text() string { return t.Node.TextFor(t.Identity) }

// ChoiceTexts returns the labels of the presented choices, in order.
func (t *Traversal) ChoiceTexts() []string {
	out := make([]string, len(t.Choices))
	for i := range t.Choices {
		out[i] = t.Choices[i].TextFor(t.Identity)
	}
	return out
}

// ResolutionKind tags how a dialogue choice resolved.
type ResolutionKind int

const (
	// ResolutionContinue means the dialogue moved on to another node.
	ResolutionContinue ResolutionKind = iota
	// ResolutionEnd means the dialogue closed and the scene resumes.
	ResolutionEnd
	// ResolutionRedirect means the dialogue closed and the scene must change.
	ResolutionRedirect
)

func (k ResolutionKind) String() string {
	switch k {
	case ResolutionContinue:
		return "continue"
	case ResolutionEnd:
		return "end"
	case ResolutionRedirect:
		return "redirect"
	}
	return fmt.Sprintf("ResolutionKind(%d)", int(k))
}

// Resolution is the outcome of MakeChoice.
type Resolution struct {
	Kind    ResolutionKind
	Next    *Traversal  // set for ResolutionContinue
	Scene   dag.SceneID // set for ResolutionRedirect
	Choice  dag.DialogueChoice
	Granted bool // the choice's stat grant was applied
}

// DialogueManager runs one dialogue at a time against live player stats.
type DialogueManager struct {
	graph   *dag.Graph
	player  *Player
	current *Traversal
}

// NewDialogueManager creates an inactive manager reading stats from player.
func NewDialogueManager(graph *dag.Graph, player *Player) *DialogueManager {
	return &DialogueManager{graph: graph, player: player}
}

// Active reports whether a dialogue is in progress.
func (m *DialogueManager) Active() bool {
	return m.current != nil
}

// Current returns the traversal in progress, if any.
func (m *DialogueManager) Current() (*Traversal, bool) {
	return m.current, m.current != nil
}

// Start enters a dialogue node for the active character.
func (m *DialogueManager) Start(id dag.DialogueID) (*Traversal, error) {
	c, ok := m.player.Active()
	if !ok {
		return nil, ErrNoActiveCharacter
	}
	t, err := m.traverse(id, c)
	m.current = t
	if err != nil {
		return nil, err
	}
	return t, nil
}

// traverse filters the node's choices against the character's live stats.
// Filtering happens on every entry because stats can change between turns.
func (m *DialogueManager) traverse(id dag.DialogueID, c *stats.Character) (*Traversal, error) {
	node := m.graph.Dialogue(id)
	if node == nil {
		return nil, fmt.Errorf("%w: dialogue %q", dag.ErrNodeNotFound, id)
	}

	var choices []dag.DialogueChoice
	for _, ch := range node.Choices {
		if ch.Condition.Eval(c.Identity, c.Stats) {
			choices = append(choices, ch)
		}
	}
	if len(choices) == 0 {
		return nil, fmt.Errorf("%w: dialogue %s for %s", dag.ErrNoSelectableChoices, id, c.Identity)
	}
	return &Traversal{Node: node, Identity: c.Identity, Choices: choices}, nil
}

// MakeChoice takes the choice at index in the presented list. A redirect
// always ends the dialogue, even when the choice also names a next node.
// Any error leaves the manager and the character's stats untouched.
func (m *DialogueManager) MakeChoice(index int, id stats.Identity) (Resolution, error) {
	if m.current == nil {
		return Resolution{}, ErrNotInDialogue
	}
	c, ok := m.player.Character(id)
	if !ok {
		return Resolution{}, fmt.Errorf("%w: %q", ErrUnknownCharacter, id)
	}
	if index < 0 || index >= len(m.current.Choices) {
		return Resolution{}, fmt.Errorf("%w: choice %d of %d", ErrChoiceOutOfRange, index, len(m.current.Choices))
	}

	choice := m.current.Choices[index]
	res := Resolution{Choice: choice}
	before := *c.Stats
	if choice.Grants != "" {
		res.Granted = c.Stats.Increase(choice.Grants)
	}

	switch {
	case choice.Redirect != "":
		m.current = nil
		res.Kind = ResolutionRedirect
		res.Scene = choice.Redirect
	case choice.Next == dag.EndDialogue:
		m.current = nil
		res.Kind = ResolutionEnd
	default:
		// the next node is filtered with the grant applied
		next, err := m.traverse(choice.Next, c)
		if err != nil {
			*c.Stats = before
			return Resolution{}, err
		}
		m.current = next
		res.Kind = ResolutionContinue
		res.Next = next
	}
	return res, nil
}
