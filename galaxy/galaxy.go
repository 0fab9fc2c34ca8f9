// Package galaxy holds the read-only galaxy data set the map renders: star
// systems with positions, owners, hyperlane connections and their nested
// stars and planets.
//
// Values are produced upstream (a file, a server snapshot, or Demo) and are
// never mutated by the renderer. A changed data set is a new *Galaxy.
package galaxy

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidGalaxy is wrapped by every validation failure.
	ErrInvalidGalaxy = errors.New("invalid galaxy")
	// ErrUnsupportedFormat is returned for files that are neither JSON nor YAML.
	ErrUnsupportedFormat = errors.New("unsupported galaxy format")
)

type Galaxy struct {
	ID          string        `json:"id" yaml:"id"`
	Name        string        `json:"name" yaml:"name"`
	StarSystems []*StarSystem `json:"starSystems" yaml:"starSystems"`
}

type StarSystem struct {
	ID               string   `json:"id" yaml:"id"`
	Name             string   `json:"name" yaml:"name"`
	OwnerID          string   `json:"ownerId,omitempty" yaml:"ownerId,omitempty"`
	LocationX        float64  `json:"locationX" yaml:"locationX"`
	LocationY        float64  `json:"locationY" yaml:"locationY"`
	ConnectedSystems []string `json:"connectedSystems" yaml:"connectedSystems"`
	Stars            []Star   `json:"stars" yaml:"stars"`
	Colonies         []Colony `json:"colonies,omitempty" yaml:"colonies,omitempty"`
}

type Star struct {
	ID      string   `json:"id" yaml:"id"`
	Name    string   `json:"name" yaml:"name"`
	Type    string   `json:"type" yaml:"type"`
	Size    float64  `json:"size" yaml:"size"`
	Planets []Planet `json:"planets" yaml:"planets"`
}

type Planet struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Type        string   `json:"type" yaml:"type"`
	Size        float64  `json:"size" yaml:"size"`
	OrbitRadius float64  `json:"orbitRadius" yaml:"orbitRadius"`
	Angle       float64  `json:"angle" yaml:"angle"`
	Colonies    []Colony `json:"colonies,omitempty" yaml:"colonies,omitempty"`
}

type Colony struct {
	ID         string             `json:"id" yaml:"id"`
	Name       string             `json:"name" yaml:"name"`
	OwnerID    string             `json:"ownerId" yaml:"ownerId"`
	Population int                `json:"population" yaml:"population"`
	PlanetID   string             `json:"planetId" yaml:"planetId"`
	Resources  map[string]float64 `json:"resources,omitempty" yaml:"resources,omitempty"`
}

// Owned reports whether a player controls the system.
func (s *StarSystem) Owned() bool {
	return s.OwnerID != ""
}

// PlanetCount returns the number of planets across all of the system's stars.
func (s *StarSystem) PlanetCount() int {
	n := 0
	for i := range s.Stars {
		n += len(s.Stars[i].Planets)
	}
	return n
}

// System returns the star system with the given id, or nil.
func (g *Galaxy) System(id string) *StarSystem {
	for _, s := range g.StarSystems {
		if s != nil && s.ID == id {
			return s
		}
	}
	return nil
}

// ValidationError lists every problem found in a galaxy.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInvalidGalaxy, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidGalaxy
}

// Validate checks the invariants the renderer relies on: every system is
// non-nil and has a unique, non-empty id. Connections to unknown systems are
// allowed; the map skips them.
func (g *Galaxy) Validate() error {
	var problems []string
	seen := make(map[string]int, len(g.StarSystems))
	for i, s := range g.StarSystems {
		switch {
		case s == nil:
			problems = append(problems, fmt.Sprintf("system %d is null", i))
		case s.ID == "":
			problems = append(problems, fmt.Sprintf("system %d (%q) has no id", i, s.Name))
		default:
			if prev, dup := seen[s.ID]; dup {
				problems = append(problems, fmt.Sprintf("system %d duplicates id %q of system %d", i, s.ID, prev))
				continue
			}
			seen[s.ID] = i
		}
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
