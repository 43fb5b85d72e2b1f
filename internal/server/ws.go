package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"TempeQuest/internal/dag"
	"TempeQuest/internal/game"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	codeInput    = "input"
	codeContent  = "content"
	codeInternal = "internal"
)

func errorCode(err error) string {
	switch {
	case errors.Is(err, game.ErrInput):
		return codeInput
	case errors.Is(err, dag.ErrContent):
		return codeContent
	default:
		return codeInternal
	}
}

func newErrorMsg(err error) errorMsg {
	return errorMsg{Type: "error", Code: errorCode(err), Message: err.Error()}
}

// resolveSession resumes the session named in the query or creates one.
// It runs only after the upgrade succeeded so failed handshakes leave no
// session behind.
func resolveSession(h *game.Hub, id string) *game.Session {
	if id != "" {
		if s, ok := h.Session(id); ok {
			return s
		}
		log.Printf("[ws] session %s not found, starting a new one", id)
	}
	return h.NewSession()
}

func serveWS(h *game.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[ws] upgrade: %v", err)
			return
		}
		defer conn.Close()

		s := resolveSession(h, c.Query("session"))
		s.Attach()
		defer func() { s.Detach(time.Now()) }()
		log.Printf("[ws] session %s connected from %s", s.ID, c.ClientIP())

		if err := conn.WriteJSON(handleMessage(s, inboundMessage{Type: "state"})); err != nil {
			log.Printf("[ws] send error: %v", err)
			return
		}

		for {
			msgType, data, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("[ws] session %s read error: %v", s.ID, err)
				}
				break
			}
			if msgType != websocket.TextMessage {
				log.Printf("[ws] unsupported websocket message type %d", msgType)
				continue
			}

			var reply any
			var inbound inboundMessage
			if err := json.Unmarshal(data, &inbound); err != nil {
				reply = newErrorMsg(fmt.Errorf("%w: invalid JSON message: %v", game.ErrInput, err))
			} else {
				reply = handleMessage(s, inbound)
			}
			if err := conn.WriteJSON(reply); err != nil {
				log.Printf("[ws] send error: %v", err)
				break
			}
		}
		log.Printf("[ws] session %s disconnected", s.ID)
	}
}

// handleMessage applies one inbound message to the session under its lock
// and returns the reply frame.
func handleMessage(s *game.Session, in inboundMessage) any {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	s.Touch(time.Now())

	var (
		view *game.View
		err  error
	)
	switch in.Type {
	case "state":
		view, err = s.Present()
	case "select_character":
		var payload selectCharacterDTO
		if err := decodePayload(in, &payload); err != nil {
			return newErrorMsg(err)
		}
		if !s.SelectCharacter(payload.Name) {
			return newErrorMsg(fmt.Errorf("%w: %q", game.ErrUnknownCharacter, payload.Name))
		}
		view, err = s.Present()
	case "choose":
		var payload chooseDTO
		if err := decodePayload(in, &payload); err != nil {
			return newErrorMsg(err)
		}
		if payload.Index == nil {
			return newErrorMsg(fmt.Errorf("%w: choose requires an index", game.ErrInput))
		}
		view, err = s.Choose(*payload.Index)
	case "level_up":
		var payload levelUpDTO
		if err := decodePayload(in, &payload); err != nil {
			return newErrorMsg(err)
		}
		if !s.LevelUp(payload.Stat) {
			return newErrorMsg(fmt.Errorf("%w: cannot increase %q", game.ErrInput, payload.Stat))
		}
		view, err = s.Present()
	default:
		err = fmt.Errorf("%w: unknown message type %q", game.ErrInput, in.Type)
	}
	if err != nil {
		if errorCode(err) != codeInput {
			log.Printf("[ws] session %s %s error: %v", s.ID, in.Type, err)
		}
		return newErrorMsg(err)
	}
	return newStateMsg(s, view)
}

func decodePayload(in inboundMessage, target any) error {
	if len(in.Payload) == 0 {
		return fmt.Errorf("%w: %s requires a payload", game.ErrInput, in.Type)
	}
	dec := json.NewDecoder(bytes.NewReader(in.Payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid %s payload: %v", game.ErrInput, in.Type, err)
	}
	return nil
}
