package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/teamsplit/internal/api/apierr"
	"github.com/mcoot/teamsplit/internal/api/request"
	"github.com/mcoot/teamsplit/internal/api/response"
	"github.com/mcoot/teamsplit/internal/model"
	"github.com/mcoot/teamsplit/internal/services/group"
	"github.com/mcoot/teamsplit/internal/services/player"
)

// PlayerHandler handles player endpoints nested under a group
type PlayerHandler struct {
	groups  *group.Service
	players *player.Service
	logger  *slog.Logger
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(groups *group.Service, players *player.Service, logger *slog.Logger) *PlayerHandler {
	return &PlayerHandler{
		groups:  groups,
		players: players,
		logger:  logger,
	}
}

// List handles GET /api/v1/groups/{group}/players[?team=A]
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	groupName, ok := h.requireGroup(w, r)
	if !ok {
		return
	}

	var (
		players []model.Player
		err     error
	)
	if teamParam := r.URL.Query().Get("team"); teamParam != "" {
		team, perr := model.ParseTeam(teamParam)
		if perr != nil {
			WriteError(w, r, h.logger, perr)
			return
		}
		players, err = h.players.ListByTeam(r.Context(), groupName, team)
	} else {
		players, err = h.players.ListAll(r.Context(), groupName)
	}
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerListFromModel(players))
}

// Add handles POST /api/v1/groups/{group}/players
func (h *PlayerHandler) Add(w http.ResponseWriter, r *http.Request) {
	groupName, ok := h.requireGroup(w, r)
	if !ok {
		return
	}

	var req request.AddPlayerRequest
	if err := request.Decode(r, &req); err != nil {
		WriteError(w, r, h.logger, NewInvalidRequestError(err.Error()))
		return
	}

	team, err := model.ParseTeam(req.Team)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	added, err := h.players.Add(r.Context(), model.Player{Name: req.Name, Team: team}, groupName)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(added))
}

// Remove handles DELETE /api/v1/groups/{group}/players/{player}
func (h *PlayerHandler) Remove(w http.ResponseWriter, r *http.Request) {
	groupName, ok := h.requireGroup(w, r)
	if !ok {
		return
	}

	name, err := pathVar(r, "player")
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	if err := h.players.Remove(r.Context(), name, groupName); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	response.NoContent(w)
}

// requireGroup resolves the {group} route variable and writes a 404 if
// the group is not listed
func (h *PlayerHandler) requireGroup(w http.ResponseWriter, r *http.Request) (string, bool) {
	name, err := pathVar(r, "group")
	if err != nil {
		WriteError(w, r, h.logger, err)
		return "", false
	}

	exists, err := h.groups.Exists(r.Context(), name)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return "", false
	}
	if !exists {
		WriteError(w, r, h.logger, apierr.NewGroupNotFoundError())
		return "", false
	}

	return name, true
}
