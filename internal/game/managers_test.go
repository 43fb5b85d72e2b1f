package game

import (
	"errors"
	"testing"

	"TempeQuest/internal/dag"
	"TempeQuest/internal/stats"
)

// TestStatGatedActionAppears tests that raising intelligence from 3 to 6
// reveals an action gated at 5
func TestStatGatedActionAppears(t *testing.T) {
	p, scenes, _ := newPlaying(t, "EVAN")
	c, _ := p.Active()

	before := actionTexts(scenes.AvailableActions(c.Identity, c.Stats))
	if !equalStrings(before, []string{"Go outside", "Read a book"}) {
		t.Fatalf("unexpected actions at intelligence 3: %v", before)
	}

	for i := 0; i < 3; i++ {
		if !p.IncreaseStat(stats.Intelligence) {
			t.Fatalf("increase %d failed", i)
		}
	}
	if c.Stats.Intelligence != 6 {
		t.Fatalf("expected intelligence 6, got %d", c.Stats.Intelligence)
	}

	after := actionTexts(scenes.AvailableActions(c.Identity, c.Stats))
	want := []string{"Open the study door", "Go outside", "Read a book"}
	if !equalStrings(after, want) {
		t.Errorf("expected %v, got %v", want, after)
	}
}

func TestAvailableActionsDeterministic(t *testing.T) {
	p, scenes, _ := newPlaying(t, "seanp")
	c, _ := p.Active()
	first := actionTexts(scenes.AvailableActions(c.Identity, c.Stats))
	for i := 0; i < 5; i++ {
		again := actionTexts(scenes.AvailableActions(c.Identity, c.Stats))
		if !equalStrings(first, again) {
			t.Fatalf("filtering changed between calls: %v vs %v", first, again)
		}
	}
}

func TestTakeAction(t *testing.T) {
	p, scenes, _ := newPlaying(t, "evan")
	c, _ := p.Active()

	if _, err := scenes.TakeAction(0); !errors.Is(err, ErrChoiceOutOfRange) {
		t.Errorf("expected ErrChoiceOutOfRange before any presentation, got %v", err)
	}

	scenes.AvailableActions(c.Identity, c.Stats)
	for _, bad := range []int{-1, 2, 9} {
		if _, err := scenes.TakeAction(bad); !errors.Is(err, ErrChoiceOutOfRange) {
			t.Errorf("TakeAction(%d): expected ErrChoiceOutOfRange, got %v", bad, err)
		}
		if scenes.CurrentID() != "hall" {
			t.Fatalf("failed action moved the cursor to %s", scenes.CurrentID())
		}
	}

	action, err := scenes.TakeAction(0)
	if err != nil {
		t.Fatalf("TakeAction(0) failed: %v", err)
	}
	if action.Target != "yard" || scenes.CurrentID() != "yard" {
		t.Errorf("expected to move to yard, got action %+v at %s", action, scenes.CurrentID())
	}

	// moving invalidates the presented list
	if _, err := scenes.TakeAction(0); !errors.Is(err, ErrChoiceOutOfRange) {
		t.Errorf("expected stale index to be rejected after moving, got %v", err)
	}
}

// TestTakeActionUsesPresentedList tests that a stat change between
// presentation and choice does not shift indices
func TestTakeActionUsesPresentedList(t *testing.T) {
	p, scenes, _ := newPlaying(t, "evan")
	c, _ := p.Active()
	scenes.AvailableActions(c.Identity, c.Stats) // Go outside, Read a book

	p.IncreaseStat(stats.Intelligence)
	p.IncreaseStat(stats.Intelligence) // study door now unlocked

	action, err := scenes.TakeAction(0)
	if err != nil {
		t.Fatalf("TakeAction failed: %v", err)
	}
	if action.Text != "Go outside" {
		t.Errorf("expected the presented action, got %q", action.Text)
	}
}

func TestTransitionTo(t *testing.T) {
	_, scenes, _ := newPlaying(t, "evan")
	if scenes.TransitionTo("attic") {
		t.Error("transition to unknown scene should fail")
	}
	if scenes.CurrentID() != "hall" {
		t.Errorf("failed transition moved the cursor to %s", scenes.CurrentID())
	}
	if !scenes.TransitionTo("study") || scenes.CurrentScene().Title != "Study" {
		t.Errorf("transition to study failed, at %s", scenes.CurrentID())
	}
}

// TestCharacterGatedChoiceFiltered tests that a choice gated on Ryan is
// hidden from Evan and shown to Ryan
func TestCharacterGatedChoiceFiltered(t *testing.T) {
	_, _, dm := newPlaying(t, "EVAN")
	tr, err := dm.Start("greet")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if got := tr.ChoiceTexts(); !equalStrings(got, []string{"Hello"}) {
		t.Errorf("Evan should only see the ungated choice, got %v", got)
	}
	if tr.Text() != "Welcome." {
		t.Errorf("unexpected text for Evan: %q", tr.Text())
	}

	_, _, dm = newPlaying(t, "RYAN")
	tr, err = dm.Start("greet")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if got := tr.ChoiceTexts(); !equalStrings(got, []string{"Ask about the secret", "Hello"}) {
		t.Errorf("Ryan should see both choices, got %v", got)
	}
	if tr.Text() != "Welcome back, Ryan." {
		t.Errorf("unexpected text for Ryan: %q", tr.Text())
	}
}

func TestStartErrors(t *testing.T) {
	g := testGraph(t)
	p := NewPlayer(g.Roster())
	dm := NewDialogueManager(g, p)

	if _, err := dm.Start("greet"); !errors.Is(err, ErrNoActiveCharacter) {
		t.Errorf("expected ErrNoActiveCharacter, got %v", err)
	}
	p.SelectCharacter("evan")
	if _, err := dm.Start("nope"); !errors.Is(err, dag.ErrNodeNotFound) {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}
	if dm.Active() {
		t.Error("failed start should leave no dialogue active")
	}
}

// TestStartWithNoSelectableChoices forces a profile below its baseline so
// a node that passed load-time checks has nothing to offer
func TestStartWithNoSelectableChoices(t *testing.T) {
	c := testContent()
	c.Dialogues = append(c.Dialogues, &dag.DialogueNode{
		ID:      "lift",
		Speaker: "Coach",
		Text:    "Lift.",
		Choices: []dag.DialogueChoice{{Text: "Heave", Condition: dag.StatAtLeast(stats.Strength, 1)}},
	})
	g, err := dag.Build(c)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	p := NewPlayer(g.Roster())
	p.SelectCharacter("evan")
	active, _ := p.Active()
	active.Stats.Strength = 0

	dm := NewDialogueManager(g, p)
	_, err = dm.Start("lift")
	if !errors.Is(err, dag.ErrNoSelectableChoices) || !errors.Is(err, dag.ErrContent) {
		t.Errorf("expected ErrNoSelectableChoices, got %v", err)
	}
	if dm.Active() {
		t.Error("dialogue should not be active")
	}
}

// TestMakeChoiceFailedContinueRollsBack tests that a continuation that
// cannot be entered keeps the current node and undoes the choice's grant
func TestMakeChoiceFailedContinueRollsBack(t *testing.T) {
	c := testContent()
	c.Dialogues = append(c.Dialogues,
		&dag.DialogueNode{
			ID:      "coach",
			Speaker: "Coach",
			Text:    "Warm up first.",
			Choices: []dag.DialogueChoice{{Text: "Stretch", Next: "lift", Grants: stats.Passion}},
		},
		&dag.DialogueNode{
			ID:      "lift",
			Speaker: "Coach",
			Text:    "Lift.",
			Choices: []dag.DialogueChoice{{Text: "Heave", Condition: dag.StatAtLeast(stats.Strength, 1)}},
		},
	)
	g, err := dag.Build(c)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	p := NewPlayer(g.Roster())
	p.SelectCharacter("evan")
	active, _ := p.Active()
	dm := NewDialogueManager(g, p)

	tr, err := dm.Start("coach")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	active.Stats.Strength = 0
	before := *active.Stats

	if _, err := dm.MakeChoice(0, stats.Evan); !errors.Is(err, dag.ErrNoSelectableChoices) {
		t.Fatalf("expected ErrNoSelectableChoices, got %v", err)
	}
	if *active.Stats != before {
		t.Errorf("grant kept after failed continue: %+v -> %+v", before, *active.Stats)
	}
	if cur, ok := dm.Current(); !ok || cur != tr {
		t.Error("failed continue should keep the current node")
	}
}

func TestMakeChoiceContinue(t *testing.T) {
	_, _, dm := newPlaying(t, "evan")
	dm.Start("greet")

	res, err := dm.MakeChoice(0, stats.Evan)
	if err != nil {
		t.Fatalf("MakeChoice failed: %v", err)
	}
	if res.Kind != ResolutionContinue || res.Next == nil || res.Next.Node.ID != "small_talk" {
		t.Fatalf("expected continue to small_talk, got %+v", res)
	}
	if cur, ok := dm.Current(); !ok || cur != res.Next {
		t.Error("current traversal should be the continued node")
	}
}

// TestMakeChoiceRefiltersWithGrant tests that a granted stat is visible to
// the next node's filter
func TestMakeChoiceRefiltersWithGrant(t *testing.T) {
	p, _, dm := newPlaying(t, "evan") // intelligence 3
	dm.Start("small_talk")

	res, err := dm.MakeChoice(2, stats.Evan)
	if err != nil {
		t.Fatalf("MakeChoice failed: %v", err)
	}
	if !res.Granted {
		t.Error("expected the grant to apply")
	}
	c, _ := p.Active()
	if c.Stats.Intelligence != 4 {
		t.Errorf("expected intelligence 4, got %d", c.Stats.Intelligence)
	}
	if got := res.Next.ChoiceTexts(); !equalStrings(got, []string{"Solve it", "Give up"}) {
		t.Errorf("expected the gated choice after the grant, got %v", got)
	}
}

func TestMakeChoiceEndLeavesScene(t *testing.T) {
	_, scenes, dm := newPlaying(t, "evan")
	sceneBefore := scenes.CurrentID()

	dm.Start("small_talk")
	res, err := dm.MakeChoice(0, stats.Evan)
	if err != nil {
		t.Fatalf("MakeChoice failed: %v", err)
	}
	if res.Kind != ResolutionEnd {
		t.Errorf("expected end, got %s", res.Kind)
	}
	if dm.Active() {
		t.Error("dialogue should be over")
	}
	if scenes.CurrentID() != sceneBefore {
		t.Errorf("ending a dialogue moved the scene from %s to %s", sceneBefore, scenes.CurrentID())
	}
}

// TestRedirectDominatesNext tests that a choice naming both a next node
// and a redirect always leaves the dialogue
func TestRedirectDominatesNext(t *testing.T) {
	_, _, dm := newPlaying(t, "evan")
	for i := 0; i < 3; i++ {
		dm.Start("small_talk")
		res, err := dm.MakeChoice(1, stats.Evan)
		if err != nil {
			t.Fatalf("MakeChoice failed: %v", err)
		}
		if res.Kind != ResolutionRedirect || res.Scene != "yard" {
			t.Fatalf("expected redirect to yard, got %s %q", res.Kind, res.Scene)
		}
		if res.Next != nil || dm.Active() {
			t.Fatal("redirect must not continue the dialogue")
		}
	}
}

func TestRedirectDominatesInSeed(t *testing.T) {
	g, err := dag.Build(dag.SeedContent())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	p := NewPlayer(g.Roster())
	p.SelectCharacter("evan")
	dm := NewDialogueManager(g, p)

	tr, err := dm.Start("library.archives_hint")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	for i, ch := range tr.Choices {
		if ch.Redirect == "" || ch.Next == dag.EndDialogue {
			continue
		}
		res, err := dm.MakeChoice(i, stats.Evan)
		if err != nil {
			t.Fatalf("MakeChoice failed: %v", err)
		}
		if res.Kind != ResolutionRedirect || res.Scene != ch.Redirect {
			t.Errorf("expected redirect to %s, got %s %q", ch.Redirect, res.Kind, res.Scene)
		}
		return
	}
	t.Fatal("seed hint has no choice with both next and redirect")
}

// TestMakeChoiceOutOfRange tests that a bad index leaves the dialogue and
// stats untouched
func TestMakeChoiceOutOfRange(t *testing.T) {
	p, scenes, dm := newPlaying(t, "evan")
	tr, _ := dm.Start("puzzle") // Give up only
	c, _ := p.Active()
	statsBefore := *c.Stats

	for _, bad := range []int{5, 1, -1} {
		_, err := dm.MakeChoice(bad, stats.Evan)
		if !errors.Is(err, ErrChoiceOutOfRange) || !errors.Is(err, ErrInput) {
			t.Errorf("MakeChoice(%d): expected ErrChoiceOutOfRange, got %v", bad, err)
		}
	}
	if cur, _ := dm.Current(); cur != tr {
		t.Error("traversal changed after invalid choices")
	}
	if *c.Stats != statsBefore {
		t.Error("stats changed after invalid choices")
	}
	if scenes.CurrentID() != "hall" {
		t.Errorf("scene changed to %s", scenes.CurrentID())
	}
}

func TestMakeChoiceErrors(t *testing.T) {
	_, _, dm := newPlaying(t, "evan")
	if _, err := dm.MakeChoice(0, stats.Evan); !errors.Is(err, ErrNotInDialogue) {
		t.Errorf("expected ErrNotInDialogue, got %v", err)
	}
	dm.Start("greet")
	if _, err := dm.MakeChoice(0, "PATRICK"); !errors.Is(err, ErrUnknownCharacter) {
		t.Errorf("expected ErrUnknownCharacter, got %v", err)
	}
	if !dm.Active() {
		t.Error("unknown character should not end the dialogue")
	}
}

func TestResolutionKindString(t *testing.T) {
	cases := map[ResolutionKind]string{
		ResolutionContinue: "continue",
		ResolutionEnd:      "end",
		ResolutionRedirect: "redirect",
		ResolutionKind(9):  "ResolutionKind(9)",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
