package response

import "github.com/mcoot/teamsplit/internal/model"

// Group represents a created group
type Group struct {
	Name string `json:"name"`
}

// GroupList is the response for listing groups
type GroupList struct {
	Groups []string `json:"groups"`
}

// GroupListFromModel converts group names, always producing a non-nil list
func GroupListFromModel(groups []model.GroupName) GroupList {
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = string(g)
	}
	return GroupList{Groups: names}
}

// Player represents a player in API responses
type Player struct {
	Name string `json:"name"`
	Team string `json:"team"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p model.Player) Player {
	return Player{
		Name: p.Name,
		Team: p.Team.String(),
	}
}

// PlayerList is the response for listing players
type PlayerList struct {
	Players []Player `json:"players"`
}

// PlayerListFromModel converts players, always producing a non-nil list
func PlayerListFromModel(players []model.Player) PlayerList {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = PlayerFromModel(p)
	}
	return PlayerList{Players: out}
}

// SweepResult lists the orphaned player collection keys that were removed
type SweepResult struct {
	Removed []string `json:"removed"`
}

// Health is the response for the health check
type Health struct {
	Status  string `json:"status"`
	Storage string `json:"storage,omitempty"`
}
