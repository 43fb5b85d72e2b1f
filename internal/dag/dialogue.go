package dag

import "TempeQuest/internal/stats"

// DialogueChoice is a player response option in a dialogue node.
type DialogueChoice struct {
	Text      string                    `json:"text"`
	TextBy    map[stats.Identity]string `json:"text_by,omitempty"` // per-character flavor
	Condition *Condition                `json:"condition,omitempty"`
	Next      DialogueID                `json:"next,omitempty"`     // EndDialogue closes the conversation
	Redirect  SceneID                   `json:"redirect,omitempty"` // wins over Next when set
	Grants    stats.Name                `json:"grants,omitempty"`
}

// DialogueNode is one beat of a conversation.
type DialogueNode struct {
	ID      DialogueID                `json:"id"`
	Speaker string                    `json:"speaker"`
	Text    string                    `json:"text"`
	TextBy  map[stats.Identity]string `json:"text_by,omitempty"` // the same beat narrated per character
	Choices []DialogueChoice          `json:"choices"`
}

// TextFor returns the body text as narrated to a character.
func (n *DialogueNode) TextFor(id stats.Identity) string {
	if t, ok := n.TextBy[id]; ok {
		return t
	}
	return n.Text
}

// TextFor returns the choice label as shown to a character.
func (c *DialogueChoice) TextFor(id stats.Identity) string {
	if t, ok := c.TextBy[id]; ok {
		return t
	}
	return c.Text
}

// Ends reports whether taking the choice leaves the dialogue.
func (c *DialogueChoice) Ends() bool {
	return c.Redirect != "" || c.Next == EndDialogue
}
