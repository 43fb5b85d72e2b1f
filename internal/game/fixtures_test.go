package game

import (
	"testing"

	"TempeQuest/internal/dag"
	"TempeQuest/internal/stats"
)

// testContent is a small hall/study/yard loop exercising every gate kind.
func testContent() *dag.Content {
	return &dag.Content{
		Title:      "test",
		StartScene: "hall",
		Characters: dag.SeedCharacters(),
		Scenes: []*dag.Scene{
			{
				ID:              "hall",
				Title:           "Hall",
				Description:     "A hall.",
				InitialDialogue: "greet",
				Actions: []dag.Action{
					{Text: "Open the study door", Target: "study", Condition: dag.StatAtLeast(stats.Intelligence, 5)},
					{Text: "Go outside", Target: "yard"},
					{Text: "Read a book", Target: "hall", Grants: stats.Intelligence},
				},
			},
			{ID: "study", Title: "Study", Description: "Books.", Actions: []dag.Action{{Text: "Back", Target: "hall"}}},
			{ID: "yard", Title: "Yard", Description: "Grass.", Actions: []dag.Action{{Text: "Back", Target: "hall"}}},
		},
		Dialogues: []*dag.DialogueNode{
			{
				ID:      "greet",
				Speaker: "Host",
				Text:    "Welcome.",
				TextBy:  map[stats.Identity]string{stats.Ryan: "Welcome back, Ryan."},
				Choices: []dag.DialogueChoice{
					{Text: "Ask about the secret", Condition: dag.IsCharacter(stats.Ryan), Next: "secret"},
					{Text: "Hello", Next: "small_talk"},
				},
			},
			{
				ID:      "small_talk",
				Speaker: "Host",
				Text:    "Nice weather.",
				Choices: []dag.DialogueChoice{
					{Text: "Bye"},
					{Text: "Run to the yard", Next: "small_talk", Redirect: "yard"},
					{Text: "Think hard", Next: "puzzle", Grants: stats.Intelligence},
				},
			},
			{
				ID:      "puzzle",
				Speaker: "Host",
				Text:    "What has keys but no locks?",
				Choices: []dag.DialogueChoice{
					{Text: "Solve it", Condition: dag.StatAtLeast(stats.Intelligence, 4)},
					{Text: "Give up"},
				},
			},
			{ID: "secret", Speaker: "Host", Text: "Shh.", Choices: []dag.DialogueChoice{{Text: "Ok"}}},
		},
	}
}

func testGraph(t *testing.T) *dag.Graph {
	t.Helper()
	g, err := dag.Build(testContent())
	if err != nil {
		t.Fatalf("failed to build graph: %v", err)
	}
	return g
}

// newPlaying returns managers sharing one player with name selected.
func newPlaying(t *testing.T, name string) (*Player, *SceneManager, *DialogueManager) {
	t.Helper()
	g := testGraph(t)
	p := NewPlayer(g.Roster())
	if !p.SelectCharacter(name) {
		t.Fatalf("failed to select %s", name)
	}
	return p, NewSceneManager(g), NewDialogueManager(g, p)
}

func actionTexts(actions []dag.Action) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = a.Text
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
