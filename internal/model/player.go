package model

import (
	"strings"

	"github.com/bytedance/sonic"
)

// Team identifies which side of a group a player is on
type Team int

const (
	TeamA Team = iota + 1
	TeamB
)

// Teams lists every valid team in display order
var Teams = []Team{TeamA, TeamB}

func (t Team) String() string {
	switch t {
	case TeamA:
		return "Team A"
	case TeamB:
		return "Team B"
	default:
		return "Unknown"
	}
}

// Valid reports whether t is one of the known teams
func (t Team) Valid() bool {
	return t == TeamA || t == TeamB
}

// ParseTeam accepts "Team A", "A", "team-a" (case-insensitive) and the B equivalents
func ParseTeam(s string) (Team, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.NewReplacer("-", "", "_", "", " ", "").Replace(v)
	switch v {
	case "a", "teama":
		return TeamA, nil
	case "b", "teamb":
		return TeamB, nil
	default:
		return 0, ErrInvalidTeam
	}
}

// MarshalJSON stores teams by their display name
func (t Team) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return nil, ErrInvalidTeam
	}
	return sonic.ConfigStd.Marshal(t.String())
}

func (t *Team) UnmarshalJSON(data []byte) error {
	var s string
	if err := sonic.ConfigStd.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTeam(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalText lets yaml and other text encoders reuse the display name
func (t Team) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, ErrInvalidTeam
	}
	return []byte(t.String()), nil
}

// Player is a person on one team of a group.
// The owning group is implied by the storage key, not stored here.
type Player struct {
	Name string `json:"name"`
	Team Team   `json:"team"`
}

// Normalize trims the name and checks the record can be stored
func (p Player) Normalize() (Player, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return p, ErrPlayerNameRequired
	}
	if !p.Team.Valid() {
		return p, ErrInvalidTeam
	}
	return p, nil
}
