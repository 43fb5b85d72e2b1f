package server

import (
	"encoding/json"

	"TempeQuest/internal/game"
	"TempeQuest/internal/stats"
)

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type selectCharacterDTO struct {
	Name string `json:"name"`
}

type chooseDTO struct {
	Index *int `json:"index"`
}

type levelUpDTO struct {
	Stat string `json:"stat"`
}

type viewDTO struct {
	Kind      string   `json:"kind"`
	Scene     string   `json:"scene,omitempty"`
	Title     string   `json:"title,omitempty"`
	Speaker   string   `json:"speaker,omitempty"`
	Text      string   `json:"text"`
	Options   []string `json:"options"`
	Character string   `json:"character,omitempty"`
}

type statDTO struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Value int    `json:"value"`
}

type stateMsg struct {
	Type    string    `json:"type"`
	Session string    `json:"session"`
	View    *viewDTO  `json:"view"`
	Stats   []statDTO `json:"stats"`
}

type errorMsg struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type characterDTO struct {
	Identity    string    `json:"identity"`
	DisplayName string    `json:"display_name"`
	Stats       []statDTO `json:"stats"`
}

func viewToDTO(v *game.View) *viewDTO {
	if v == nil {
		return nil
	}
	options := v.Options
	if options == nil {
		options = []string{}
	}
	return &viewDTO{
		Kind:      string(v.Kind),
		Scene:     string(v.Scene),
		Title:     v.Title,
		Speaker:   v.Speaker,
		Text:      v.Text,
		Options:   options,
		Character: string(v.Character),
	}
}

func statsToDTO(list []stats.Stat) []statDTO {
	out := make([]statDTO, 0, len(list))
	for _, s := range list {
		out = append(out, statDTO{Name: string(s.Name), Label: s.Name.Label(), Value: s.Value})
	}
	return out
}

func newStateMsg(s *game.Session, v *game.View) stateMsg {
	return stateMsg{
		Type:    "state",
		Session: s.ID,
		View:    viewToDTO(v),
		Stats:   statsToDTO(s.VisibleStats()),
	}
}
