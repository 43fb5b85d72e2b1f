package game

import (
	"log"

	"TempeQuest/internal/dag"
	"TempeQuest/internal/stats"
)

// Effects receives story events as a session advances. Implementations must
// not mutate the session.
type Effects interface {
	// OnSceneEnter is called each time the cursor enters a scene.
	OnSceneEnter(s *Session, scene *dag.Scene)
	// OnDialogueNode is called when a dialogue node is presented.
	OnDialogueNode(s *Session, t *Traversal)
	// OnDialogueEnd is called when a dialogue ends or redirects.
	OnDialogueEnd(s *Session, node *dag.DialogueNode, res Resolution)
	// OnStatIncrease is called after a successful stat increase.
	OnStatIncrease(s *Session, id stats.Identity, name stats.Name, value int)
}

// NoOpEffects is a default implementation that does nothing.
type NoOpEffects struct{}

func (NoOpEffects) OnSceneEnter(*Session, *dag.Scene)                        {}
func (NoOpEffects) OnDialogueNode(*Session, *Traversal)                      {}
func (NoOpEffects) OnDialogueEnd(*Session, *dag.DialogueNode, Resolution)    {}
func (NoOpEffects) OnStatIncrease(*Session, stats.Identity, stats.Name, int) {}

// LogEffects writes story events to the standard logger.
type LogEffects struct{}

func (LogEffects) OnSceneEnter(s *Session, scene *dag.Scene) {
	chapter := scene.Payload["chapter"]
	if chapter == "" {
		chapter = "default"
	}
	log.Printf("[story] session %s entered scene %s (chapter %s)", s.ID, scene.ID, chapter)
}

func (LogEffects) OnDialogueNode(s *Session, t *Traversal) {
	log.Printf("[story] session %s dialogue %s (speaker: %s, choices: %d)",
		s.ID, t.Node.ID, t.Speaker(), len(t.Choices))
}

func (LogEffects) OnDialogueEnd(s *Session, node *dag.DialogueNode, res Resolution) {
	if res.Kind == ResolutionRedirect {
		log.Printf("[story] session %s dialogue %s redirected to %s", s.ID, node.ID, res.Scene)
		return
	}
	log.Printf("[story] session %s dialogue %s ended", s.ID, node.ID)
}

func (LogEffects) OnStatIncrease(s *Session, id stats.Identity, name stats.Name, value int) {
	log.Printf("[story] session %s: %s %s -> %d", s.ID, id, name, value)
}
