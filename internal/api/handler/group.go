package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/teamsplit/internal/api/request"
	"github.com/mcoot/teamsplit/internal/api/response"
	"github.com/mcoot/teamsplit/internal/services/group"
)

// GroupHandler handles group endpoints
type GroupHandler struct {
	groups *group.Service
	logger *slog.Logger
}

// NewGroupHandler creates a new group handler
func NewGroupHandler(groups *group.Service, logger *slog.Logger) *GroupHandler {
	return &GroupHandler{
		groups: groups,
		logger: logger,
	}
}

// List handles GET /api/v1/groups
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groups.List(r.Context())
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GroupListFromModel(groups))
}

// Create handles POST /api/v1/groups
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGroupRequest
	if err := request.Decode(r, &req); err != nil {
		WriteError(w, r, h.logger, NewInvalidRequestError(err.Error()))
		return
	}

	name, err := h.groups.Create(r.Context(), req.Name)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.Group{Name: string(name)})
}

// Remove handles DELETE /api/v1/groups/{group}
func (h *GroupHandler) Remove(w http.ResponseWriter, r *http.Request) {
	name, err := pathVar(r, "group")
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	if err := h.groups.Remove(r.Context(), name); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	response.NoContent(w)
}

// Sweep handles POST /api/v1/sweep
func (h *GroupHandler) Sweep(w http.ResponseWriter, r *http.Request) {
	removed, err := h.groups.Sweep(r.Context())
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SweepResult{Removed: removed})
}
