package stats

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Identity is one of the playable characters.
type Identity string

const (
	Evan  Identity = "EVAN"
	SeanP Identity = "SEANP"
	SeanH Identity = "SEANH"
	Ryan  Identity = "RYAN"
)

// Identities returns the playable characters in selection order.
func Identities() []Identity {
	return []Identity{Evan, SeanP, SeanH, Ryan}
}

// ParseIdentity resolves a typed name case-insensitively.
func ParseIdentity(name string) (Identity, bool) {
	want := Identity(strings.ToUpper(strings.TrimSpace(name)))
	for _, id := range Identities() {
		if id == want {
			return id, true
		}
	}
	return "", false
}

// Valid reports whether id is a known identity.
func (id Identity) Valid() bool {
	for _, known := range Identities() {
		if known == id {
			return true
		}
	}
	return false
}

// title upper-cases the first letter of each word. A Caser is stateful, so
// each call gets its own.
func title(s string) string {
	return cases.Title(language.English).String(s)
}

// DisplayName returns the identity as shown to players, e.g. "Seanp".
func (id Identity) DisplayName() string {
	return title(strings.ToLower(string(id)))
}

// Label returns the stat name as shown to players, e.g. "Intelligence".
func (n Name) Label() string {
	return title(strings.ReplaceAll(string(n), "_", " "))
}

// Character pairs an identity with its profile.
type Character struct {
	Identity Identity
	Stats    *Profile
}
