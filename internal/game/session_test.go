package game

import (
	"errors"
	"testing"
	"time"

	"TempeQuest/internal/dag"
	"TempeQuest/internal/stats"
)

type recordingEffects struct {
	NoOpEffects
	entered   []dag.SceneID
	nodes     []dag.DialogueID
	ends      []ResolutionKind
	increases []stats.Name
}

func (r *recordingEffects) OnSceneEnter(_ *Session, scene *dag.Scene) {
	r.entered = append(r.entered, scene.ID)
}

func (r *recordingEffects) OnDialogueNode(_ *Session, t *Traversal) {
	r.nodes = append(r.nodes, t.Node.ID)
}

func (r *recordingEffects) OnDialogueEnd(_ *Session, _ *dag.DialogueNode, res Resolution) {
	r.ends = append(r.ends, res.Kind)
}

func (r *recordingEffects) OnStatIncrease(_ *Session, _ stats.Identity, name stats.Name, _ int) {
	r.increases = append(r.increases, name)
}

func mustChoose(t *testing.T, s *Session, index int) *View {
	t.Helper()
	v, err := s.Choose(index)
	if err != nil {
		t.Fatalf("Choose(%d) failed: %v", index, err)
	}
	return v
}

func expectView(t *testing.T, v *View, kind ViewKind, scene dag.SceneID, options ...string) {
	t.Helper()
	if v.Kind != kind || v.Scene != scene {
		t.Fatalf("expected %s view at %s, got %s at %s (%v)", kind, scene, v.Kind, v.Scene, v.Options)
	}
	if !equalStrings(v.Options, options) {
		t.Fatalf("expected options %v, got %v", options, v.Options)
	}
}

func TestSessionCharacterSelect(t *testing.T) {
	s := NewSession("s1", testGraph(t), nil)

	v, err := s.Present()
	if err != nil {
		t.Fatalf("Present failed: %v", err)
	}
	if v.Kind != ViewCharacterSelect {
		t.Fatalf("expected character select, got %s", v.Kind)
	}
	if !equalStrings(v.Options, []string{"Evan", "Seanp", "Seanh", "Ryan"}) {
		t.Errorf("unexpected roster options: %v", v.Options)
	}

	if _, err := s.Choose(0); !errors.Is(err, ErrNoActiveCharacter) {
		t.Errorf("expected ErrNoActiveCharacter, got %v", err)
	}
	if s.SelectCharacter("patrick") {
		t.Error("patrick is not playable")
	}
	if !s.SelectCharacter("Evan") {
		t.Fatal("SelectCharacter(Evan) failed")
	}
	if got := s.VisibleStats(); len(got) != 5 {
		t.Errorf("expected 5 visible stats, got %d", len(got))
	}
}

// TestSessionWalkthrough drives dialogue continue, redirect, grants, end,
// and entry dialogue replay through one session
func TestSessionWalkthrough(t *testing.T) {
	fx := &recordingEffects{}
	s := NewSession("s1", testGraph(t), fx)
	s.SelectCharacter("evan")

	v, err := s.Present()
	if err != nil {
		t.Fatalf("Present failed: %v", err)
	}
	expectView(t, v, ViewDialogue, "hall", "Hello")
	if v.Speaker != "Host" || v.Text != "Welcome." || v.Character != stats.Evan {
		t.Errorf("unexpected greeting view: %+v", v)
	}

	v = mustChoose(t, s, 0)
	expectView(t, v, ViewDialogue, "hall", "Bye", "Run to the yard", "Think hard")

	// redirect wins over next
	v = mustChoose(t, s, 1)
	expectView(t, v, ViewScene, "yard", "Back")

	// coming back replays the entry dialogue
	v = mustChoose(t, s, 0)
	expectView(t, v, ViewDialogue, "hall", "Hello")

	mustChoose(t, s, 0)
	v = mustChoose(t, s, 2) // Think hard: intelligence 3 -> 4
	expectView(t, v, ViewDialogue, "hall", "Solve it", "Give up")

	v = mustChoose(t, s, 0)
	expectView(t, v, ViewScene, "hall", "Go outside", "Read a book")

	// Read a book: intelligence 4 -> 5, re-enter hall
	v = mustChoose(t, s, 1)
	expectView(t, v, ViewDialogue, "hall", "Hello")
	mustChoose(t, s, 0)
	v = mustChoose(t, s, 0)
	expectView(t, v, ViewScene, "hall", "Open the study door", "Go outside", "Read a book")

	v = mustChoose(t, s, 0)
	expectView(t, v, ViewScene, "study", "Back")

	c, _ := s.Player().Active()
	if c.Stats.Intelligence != 5 {
		t.Errorf("expected intelligence 5, got %d", c.Stats.Intelligence)
	}
	wantEntered := []dag.SceneID{"hall", "yard", "hall", "hall", "study"}
	if len(fx.entered) != len(wantEntered) {
		t.Fatalf("expected entries %v, got %v", wantEntered, fx.entered)
	}
	for i := range wantEntered {
		if fx.entered[i] != wantEntered[i] {
			t.Errorf("entry %d: expected %s, got %s", i, wantEntered[i], fx.entered[i])
		}
	}
	if len(fx.increases) != 2 {
		t.Errorf("expected 2 stat increases, got %v", fx.increases)
	}
	if len(fx.ends) == 0 || fx.ends[0] != ResolutionRedirect {
		t.Errorf("expected the first dialogue to redirect, got %v", fx.ends)
	}
}

// TestSessionLevelUpKeepsPresentedIndices tests that a level-up between
// presentation and choice resolves against the list the player saw
func TestSessionLevelUpKeepsPresentedIndices(t *testing.T) {
	s := NewSession("s1", testGraph(t), nil)
	s.SelectCharacter("evan")
	s.Present()
	mustChoose(t, s, 0)
	v := mustChoose(t, s, 0) // Bye
	expectView(t, v, ViewScene, "hall", "Go outside", "Read a book")

	if !s.LevelUp("Intelligence") || !s.LevelUp(" intelligence ") {
		t.Fatal("LevelUp failed")
	}
	if s.LevelUp("luck") {
		t.Error("LevelUp of unknown stat should fail")
	}

	v = mustChoose(t, s, 0)
	expectView(t, v, ViewScene, "yard", "Back")
}

func TestSessionChooseOutOfRange(t *testing.T) {
	s := NewSession("s1", testGraph(t), nil)
	s.SelectCharacter("evan")
	before, _ := s.Present()

	if _, err := s.Choose(5); !errors.Is(err, ErrChoiceOutOfRange) {
		t.Fatalf("expected ErrChoiceOutOfRange, got %v", err)
	}
	after, err := s.Present()
	if err != nil {
		t.Fatalf("Present failed: %v", err)
	}
	if after.Kind != before.Kind || !equalStrings(after.Options, before.Options) {
		t.Errorf("view changed after invalid choice: %+v -> %+v", before, after)
	}
}

// TestSessionCharacterSwitch tests that switching characters mid-scene
// re-filters against the new character's stats
func TestSessionCharacterSwitch(t *testing.T) {
	s := NewSession("s1", testGraph(t), nil)
	s.SelectCharacter("evan")
	s.Present()
	mustChoose(t, s, 0)
	mustChoose(t, s, 0)

	s.SelectCharacter("seanp") // intelligence 4
	s.LevelUp("intelligence")
	v, err := s.Present()
	if err != nil {
		t.Fatalf("Present failed: %v", err)
	}
	expectView(t, v, ViewScene, "hall", "Open the study door", "Go outside", "Read a book")
	if v.Character != stats.SeanP {
		t.Errorf("expected SEANP, got %s", v.Character)
	}
}

func TestSessionTouch(t *testing.T) {
	s := NewSession("s1", testGraph(t), nil)
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	s.Touch(at)
	if !s.LastSeen().Equal(at) {
		t.Errorf("expected %v, got %v", at, s.LastSeen())
	}
}

func TestSeedContentPlayable(t *testing.T) {
	g, err := dag.Build(dag.SeedContent())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	for _, id := range stats.Identities() {
		s := NewSession("seed", g, nil)
		if !s.SelectCharacter(string(id)) {
			t.Fatalf("SelectCharacter(%s) failed", id)
		}
		if _, err := s.Present(); err != nil {
			t.Fatalf("%s: Present failed: %v", id, err)
		}
		// always take the first and last options for a while
		for turn := 0; turn < 60; turn++ {
			v, err := s.Present()
			if err != nil {
				t.Fatalf("%s turn %d: %v", id, turn, err)
			}
			pick := 0
			if turn%2 == 1 {
				pick = len(v.Options) - 1
			}
			if _, err := s.Choose(pick); err != nil {
				t.Fatalf("%s turn %d: %v", id, turn, err)
			}
		}
	}
}
