package dag

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Content is the loadable narrative document: roster, scenes and dialogue.
type Content struct {
	Title      string          `json:"title"`
	StartScene SceneID         `json:"start_scene"`
	Characters []CharacterDef  `json:"characters"`
	Scenes     []*Scene        `json:"scenes"`
	Dialogues  []*DialogueNode `json:"dialogues"`
}

// LoadContent decodes content from JSON. Unknown fields are rejected so
// typos in authored files fail loudly.
func LoadContent(r io.Reader) (*Content, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var c Content
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	return &c, nil
}

// LoadContentFile reads and decodes a content file.
func LoadContentFile(path string) (*Content, error) {
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("read content %q: %w", cleanPath, err)
	}
	c, err := LoadContent(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cleanPath, err)
	}
	return c, nil
}

// Encode writes content as indented JSON, the format LoadContent reads.
func (c *Content) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
