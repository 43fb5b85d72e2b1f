package game

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"TempeQuest/internal/dag"
	"TempeQuest/internal/stats"
)

// ViewKind says what the presentation layer should render.
type ViewKind string

const (
	ViewCharacterSelect ViewKind = "character_select"
	ViewDialogue        ViewKind = "dialogue"
	ViewScene           ViewKind = "scene"
)

// View is everything needed to render one turn. Options are in the exact
// order Choose indexes into.
type View struct {
	Kind      ViewKind
	Scene     dag.SceneID
	Title     string
	Speaker   string
	Text      string
	Options   []string
	Character stats.Identity
}

// Session composes one player with a scene cursor and a dialogue cursor.
// The cursors stay independent; the session only decides which one an
// input goes to. A session is not safe for concurrent use: hold Mu for
// one whole turn.
type Session struct {
	ID string
	Mu sync.Mutex

	player   *Player
	scenes   *SceneManager
	dialogue *DialogueManager
	effects  Effects

	// entryPending is set whenever the scene cursor moves so the scene's
	// entry dialogue plays on every visit.
	entryPending bool
	lastSeen     atomic.Int64
	conns        atomic.Int32
}

// NewSession creates a session at the graph's start scene with no
// character selected.
func NewSession(id string, graph *dag.Graph, effects Effects) *Session {
	if effects == nil {
		effects = NoOpEffects{}
	}
	player := NewPlayer(graph.Roster())
	s := &Session{
		ID:           id,
		player:       player,
		scenes:       NewSceneManager(graph),
		dialogue:     NewDialogueManager(graph, player),
		effects:      effects,
		entryPending: true,
	}
	s.Touch(time.Now())
	return s
}

// Accessors for the session's parts, for adapters and tests.
func (s *Session) Player() *Player            { return s.player }
func (s *Session) Scenes() *SceneManager      { return s.scenes }
func (s *Session) Dialogue() *DialogueManager { return s.dialogue }

// Touch records activity for idle cleanup.
func (s *Session) Touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

// LastSeen returns the time of the last recorded activity.
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

// Attach records an open connection. Attached sessions are never idle.
func (s *Session) Attach() {
	s.conns.Add(1)
}

// Detach records a closed connection and counts it as activity.
func (s *Session) Detach(now time.Time) {
	s.conns.Add(-1)
	s.Touch(now)
}

// Connected reports whether any connection is attached.
func (s *Session) Connected() bool {
	return s.conns.Load() > 0
}

// SelectCharacter delegates to the player registry.
func (s *Session) SelectCharacter(name string) bool {
	return s.player.SelectCharacter(name)
}

// LevelUp raises a stat of the active character. Already presented option
// lists are unaffected until the next Present.
func (s *Session) LevelUp(stat string) bool {
	name := stats.Name(strings.ToLower(strings.TrimSpace(stat)))
	if !s.player.IncreaseStat(name) {
		return false
	}
	c, _ := s.player.Active()
	v, _ := c.Stats.Get(name)
	s.effects.OnStatIncrease(s, c.Identity, name, v)
	return true
}

// VisibleStats returns the active character's player-facing stats.
func (s *Session) VisibleStats() []stats.Stat {
	return s.player.VisibleStats()
}

// Present computes the current turn: character selection, the dialogue in
// progress, the entry dialogue of a freshly entered scene, or the scene's
// available actions.
func (s *Session) Present() (*View, error) {
	c, ok := s.player.Active()
	if !ok {
		v := &View{Kind: ViewCharacterSelect, Text: "Choose your character"}
		for _, rc := range s.player.Roster() {
			v.Options = append(v.Options, rc.Identity.DisplayName())
		}
		return v, nil
	}

	if t, ok := s.dialogue.Current(); ok {
		return s.dialogueView(t), nil
	}

	scene := s.scenes.CurrentScene()
	if s.entryPending {
		s.entryPending = false
		s.effects.OnSceneEnter(s, scene)
		if scene.InitialDialogue != dag.EndDialogue {
			t, err := s.dialogue.Start(scene.InitialDialogue)
			if err != nil {
				return nil, err
			}
			s.effects.OnDialogueNode(s, t)
			return s.dialogueView(t), nil
		}
	}

	actions := s.scenes.AvailableActions(c.Identity, c.Stats)
	if len(actions) == 0 {
		return nil, fmt.Errorf("%w: scene %s for %s", dag.ErrDeadEnd, scene.ID, c.Identity)
	}
	v := &View{
		Kind:      ViewScene,
		Scene:     scene.ID,
		Title:     scene.Title,
		Text:      scene.Description,
		Character: c.Identity,
	}
	for _, a := range actions {
		v.Options = append(v.Options, a.Text)
	}
	return v, nil
}

func (s *Session) dialogueView(t *Traversal) *View {
	return &View{
		Kind:      ViewDialogue,
		Scene:     s.scenes.CurrentID(),
		Title:     s.scenes.CurrentScene().Title,
		Speaker:   t.Speaker(),
		Text:      t.Text(),
		Options:   t.ChoiceTexts(),
		Character: t.Identity,
	}
}

// Choose applies a zero-based index to the list most recently presented:
// the dialogue's choices while a dialogue is in progress, otherwise the
// scene's actions. It returns the next view.
func (s *Session) Choose(index int) (*View, error) {
	c, ok := s.player.Active()
	if !ok {
		return nil, ErrNoActiveCharacter
	}

	if t, inDialogue := s.dialogue.Current(); inDialogue {
		node := t.Node
		res, err := s.dialogue.MakeChoice(index, c.Identity)
		if err != nil {
			return nil, err
		}
		if res.Granted {
			v, _ := c.Stats.Get(res.Choice.Grants)
			s.effects.OnStatIncrease(s, c.Identity, res.Choice.Grants, v)
		}
		switch res.Kind {
		case ResolutionContinue:
			s.effects.OnDialogueNode(s, res.Next)
		case ResolutionEnd:
			s.effects.OnDialogueEnd(s, node, res)
		case ResolutionRedirect:
			s.effects.OnDialogueEnd(s, node, res)
			if !s.scenes.TransitionTo(res.Scene) {
				return nil, fmt.Errorf("%w: redirect to %q", dag.ErrNodeNotFound, res.Scene)
			}
			s.entryPending = true
		}
		return s.Present()
	}

	action, err := s.scenes.TakeAction(index)
	if err != nil {
		return nil, err
	}
	s.entryPending = true
	if action.Grants != "" && c.Stats.Increase(action.Grants) {
		v, _ := c.Stats.Get(action.Grants)
		s.effects.OnStatIncrease(s, c.Identity, action.Grants, v)
	}
	return s.Present()
}
