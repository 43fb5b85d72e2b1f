package game

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"TempeQuest/internal/dag"
)

// Hub keeps in-memory sessions so a dropped connection can resume. The
// mutex guards only the map; sessions carry their own lock.
type Hub struct {
	graph    *dag.Graph
	effects  Effects
	Sessions map[string]*Session
	Mu       sync.Mutex
}

// NewHub creates an empty hub serving graph.
func NewHub(graph *dag.Graph, effects Effects) *Hub {
	return &Hub{graph: graph, effects: effects, Sessions: map[string]*Session{}}
}

// Graph returns the shared read-only graph.
func (h *Hub) Graph() *dag.Graph { return h.graph }

// NewSession creates and registers a session with a fresh id.
func (h *Hub) NewSession() *Session {
	s := NewSession(uuid.NewString(), h.graph, h.effects)
	h.Mu.Lock()
	h.Sessions[s.ID] = s
	h.Mu.Unlock()
	return s
}

// Session looks up a session by id.
func (h *Hub) Session(id string) (*Session, bool) {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	s, ok := h.Sessions[id]
	return s, ok
}

// Remove forgets a session.
func (h *Hub) Remove(id string) {
	h.Mu.Lock()
	delete(h.Sessions, id)
	h.Mu.Unlock()
}

// CleanupIdle removes unattached sessions with no activity since
// now-maxIdle and returns how many were removed.
func (h *Hub) CleanupIdle(now time.Time, maxIdle time.Duration) int {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	removed := 0
	for id, s := range h.Sessions {
		if !s.Connected() && now.Sub(s.LastSeen()) > maxIdle {
			delete(h.Sessions, id)
			removed++
		}
	}
	if removed > 0 {
		log.Printf("[hub] removed %d idle sessions (%d remaining)", removed, len(h.Sessions))
	}
	return removed
}
