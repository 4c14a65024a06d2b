package request

// CreateGroupRequest is the request body for creating a group
type CreateGroupRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// AddPlayerRequest is the request body for adding a player to a group.
// Team accepts any form model.ParseTeam understands ("Team A", "A", "team-b").
type AddPlayerRequest struct {
	Name string `json:"name" validate:"required,max=200"`
	Team string `json:"team" validate:"required"`
}
