package cli

import (
	"context"
	"errors"
	"net/url"

	"github.com/mcoot/teamsplit/internal/factory"
	"github.com/mcoot/teamsplit/internal/model"
)

// ErrGroupNotFound is returned by player commands naming a group that is not listed
var ErrGroupNotFound = errors.New("group not found")

// Roster is the operation surface shared by the local store and the API client
type Roster interface {
	ListGroups(ctx context.Context) (GroupList, error)
	CreateGroup(ctx context.Context, name string) (Group, error)
	RemoveGroup(ctx context.Context, name string) error
	AddPlayer(ctx context.Context, group string, p model.Player) (Player, error)
	// ListPlayers returns both teams when team is zero
	ListPlayers(ctx context.Context, group string, team model.Team) (PlayerList, error)
	RemovePlayer(ctx context.Context, group, name string) error
	Sweep(ctx context.Context) (SweepResult, error)
	Health(ctx context.Context) (HealthResult, error)
	Close() error
}

// localRoster runs operations directly against the configured store
type localRoster struct {
	app         *factory.App
	storageType string
}

func newLocalRoster(app *factory.App, storageType string) *localRoster {
	return &localRoster{app: app, storageType: storageType}
}

func (l *localRoster) ListGroups(ctx context.Context) (GroupList, error) {
	groups, err := l.app.GroupService.List(ctx)
	if err != nil {
		return GroupList{}, err
	}
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = string(g)
	}
	return GroupList{Groups: names}, nil
}

func (l *localRoster) CreateGroup(ctx context.Context, name string) (Group, error) {
	created, err := l.app.GroupService.Create(ctx, name)
	if err != nil {
		return Group{}, err
	}
	return Group{Name: string(created)}, nil
}

func (l *localRoster) RemoveGroup(ctx context.Context, name string) error {
	return l.app.GroupService.Remove(ctx, name)
}

func (l *localRoster) AddPlayer(ctx context.Context, group string, p model.Player) (Player, error) {
	if err := l.requireGroup(ctx, group); err != nil {
		return Player{}, err
	}
	added, err := l.app.PlayerService.Add(ctx, p, group)
	if err != nil {
		return Player{}, err
	}
	return playerFromModel(added), nil
}

func (l *localRoster) ListPlayers(ctx context.Context, group string, team model.Team) (PlayerList, error) {
	if err := l.requireGroup(ctx, group); err != nil {
		return PlayerList{}, err
	}

	var (
		players []model.Player
		err     error
	)
	if team == 0 {
		players, err = l.app.PlayerService.ListAll(ctx, group)
	} else {
		players, err = l.app.PlayerService.ListByTeam(ctx, group, team)
	}
	if err != nil {
		return PlayerList{}, err
	}

	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = playerFromModel(p)
	}
	return PlayerList{Players: out}, nil
}

func (l *localRoster) RemovePlayer(ctx context.Context, group, name string) error {
	if err := l.requireGroup(ctx, group); err != nil {
		return err
	}
	return l.app.PlayerService.Remove(ctx, name, group)
}

func (l *localRoster) Sweep(ctx context.Context) (SweepResult, error) {
	removed, err := l.app.GroupService.Sweep(ctx)
	if err != nil {
		return SweepResult{}, err
	}
	return SweepResult{Removed: removed}, nil
}

func (l *localRoster) Health(ctx context.Context) (HealthResult, error) {
	if _, err := l.app.GroupService.List(ctx); err != nil {
		return HealthResult{}, err
	}
	return HealthResult{Status: "ok", Storage: l.storageType}, nil
}

func (l *localRoster) Close() error {
	return l.app.Close()
}

func (l *localRoster) requireGroup(ctx context.Context, group string) error {
	exists, err := l.app.GroupService.Exists(ctx, group)
	if err != nil {
		return err
	}
	if !exists {
		return ErrGroupNotFound
	}
	return nil
}

// remoteRoster runs operations against a teamsplit API server
type remoteRoster struct {
	client *Client
}

func newRemoteRoster(client *Client) *remoteRoster {
	return &remoteRoster{client: client}
}

func playersPath(group string) string {
	return "/api/v1/groups/" + url.PathEscape(group) + "/players"
}

func (r *remoteRoster) ListGroups(ctx context.Context) (GroupList, error) {
	var result GroupList
	err := r.client.Get(ctx, "/api/v1/groups", &result)
	return result, err
}

func (r *remoteRoster) CreateGroup(ctx context.Context, name string) (Group, error) {
	var result Group
	err := r.client.Post(ctx, "/api/v1/groups", map[string]string{"name": name}, &result)
	return result, err
}

func (r *remoteRoster) RemoveGroup(ctx context.Context, name string) error {
	return r.client.Delete(ctx, "/api/v1/groups/"+url.PathEscape(name))
}

func (r *remoteRoster) AddPlayer(ctx context.Context, group string, p model.Player) (Player, error) {
	req := map[string]string{"name": p.Name, "team": p.Team.String()}
	var result Player
	err := r.client.Post(ctx, playersPath(group), req, &result)
	return result, err
}

func (r *remoteRoster) ListPlayers(ctx context.Context, group string, team model.Team) (PlayerList, error) {
	path := playersPath(group)
	if team != 0 {
		path += "?team=" + url.QueryEscape(team.String())
	}
	var result PlayerList
	err := r.client.Get(ctx, path, &result)
	return result, err
}

func (r *remoteRoster) RemovePlayer(ctx context.Context, group, name string) error {
	return r.client.Delete(ctx, playersPath(group)+"/"+url.PathEscape(name))
}

func (r *remoteRoster) Sweep(ctx context.Context) (SweepResult, error) {
	var result SweepResult
	err := r.client.Post(ctx, "/api/v1/sweep", nil, &result)
	return result, err
}

func (r *remoteRoster) Health(ctx context.Context) (HealthResult, error) {
	var result HealthResult
	err := r.client.Get(ctx, "/api/v1/health", &result)
	return result, err
}

func (r *remoteRoster) Close() error {
	return nil
}
