package game

import (
	"fmt"

	"TempeQuest/internal/dag"
	"TempeQuest/internal/stats"
)

// SceneManager holds the scene cursor and the action list last presented
// to the player.
type SceneManager struct {
	graph     *dag.Graph
	current   dag.SceneID
	presented []dag.Action
}

// NewSceneManager starts at the graph's start scene.
func NewSceneManager(graph *dag.Graph) *SceneManager {
	return &SceneManager{graph: graph, current: graph.StartScene()}
}

// CurrentScene returns the scene the cursor is on.
func (m *SceneManager) CurrentScene() *dag.Scene {
	return m.graph.Scene(m.current)
}

// CurrentID returns the id of the current scene.
func (m *SceneManager) CurrentID() dag.SceneID {
	return m.current
}

// AvailableActions filters the current scene's actions for a character, in
// authored order. The result becomes the list TakeAction indexes into.
func (m *SceneManager) AvailableActions(id stats.Identity, profile *stats.Profile) []dag.Action {
	scene := m.CurrentScene()
	var actions []dag.Action
	if scene != nil {
		for _, a := range scene.Actions {
			if a.Condition.Eval(id, profile) {
				actions = append(actions, a)
			}
		}
	}
	m.presented = actions
	out := make([]dag.Action, len(actions))
	copy(out, actions)
	return out
}

// TakeAction resolves index against the presented list and moves to the
// action's target. The list is never re-derived here.
func (m *SceneManager) TakeAction(index int) (dag.Action, error) {
	if index < 0 || index >= len(m.presented) {
		return dag.Action{}, fmt.Errorf("%w: action %d of %d", ErrChoiceOutOfRange, index, len(m.presented))
	}
	action := m.presented[index]
	if !m.TransitionTo(action.Target) {
		return dag.Action{}, fmt.Errorf("%w: action target %q", dag.ErrNodeNotFound, action.Target)
	}
	return action, nil
}

// TransitionTo moves the cursor to id. It reports false and leaves the
// cursor unchanged when id is not in the graph.
func (m *SceneManager) TransitionTo(id dag.SceneID) bool {
	if m.graph.Scene(id) == nil {
		return false
	}
	m.current = id
	m.presented = nil
	return true
}
