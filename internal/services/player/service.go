package player

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/mcoot/teamsplit/internal/codec"
	"github.com/mcoot/teamsplit/internal/model"
	"github.com/mcoot/teamsplit/internal/services/keylock"
	"github.com/mcoot/teamsplit/internal/storage"
)

// Service manages the per-group player lists
type Service struct {
	backend storage.Backend
	locker  *keylock.Locker
}

// New creates a new player Service.
// A nil locker disables locking; concurrent Add/Remove calls on the same group may then lose updates.
func New(backend storage.Backend, locker *keylock.Locker) *Service {
	return &Service{
		backend: backend,
		locker:  locker,
	}
}

// Add appends a player to a group. A player whose name is already in the group is rejected,
// whichever team they are on.
func (s *Service) Add(ctx context.Context, player model.Player, group string) (model.Player, error) {
	player, err := player.Normalize()
	if err != nil {
		return model.Player{}, err
	}
	groupName, err := model.NormalizeGroupName(group)
	if err != nil {
		return model.Player{}, err
	}

	key := storage.PlayerCollectionKey(string(groupName))
	unlock := s.locker.Lock(key)
	defer unlock()

	players, err := s.read(ctx, key)
	if err != nil {
		return model.Player{}, err
	}

	if slices.ContainsFunc(players, func(p model.Player) bool { return p.Name == player.Name }) {
		return model.Player{}, model.ErrPlayerAlreadyInGroup
	}

	if err := s.write(ctx, key, append(players, player)); err != nil {
		return model.Player{}, err
	}
	return player, nil
}

// ListByTeam returns the group's players on team, in the order they were added
func (s *Service) ListByTeam(ctx context.Context, group string, team model.Team) ([]model.Player, error) {
	if !team.Valid() {
		return nil, model.ErrInvalidTeam
	}

	players, err := s.ListAll(ctx, group)
	if err != nil {
		return nil, err
	}

	return slices.DeleteFunc(players, func(p model.Player) bool {
		return p.Team != team
	}), nil
}

// ListAll returns every player in the group, in the order they were added
func (s *Service) ListAll(ctx context.Context, group string) ([]model.Player, error) {
	return s.read(ctx, keyFor(group))
}

// Remove deletes every player with this name from the group. Unknown names are a no-op.
func (s *Service) Remove(ctx context.Context, name, group string) error {
	name = strings.TrimSpace(name)
	key := keyFor(group)

	unlock := s.locker.Lock(key)
	defer unlock()

	players, err := s.read(ctx, key)
	if err != nil {
		return err
	}

	before := len(players)
	remaining := slices.DeleteFunc(players, func(p model.Player) bool {
		return p.Name == name
	})
	if len(remaining) == before {
		return nil
	}

	return s.write(ctx, key, remaining)
}

func keyFor(group string) string {
	return storage.PlayerCollectionKey(strings.TrimSpace(group))
}

func (s *Service) read(ctx context.Context, key string) ([]model.Player, error) {
	text, err := s.backend.Get(ctx, key)
	if err != nil && !errors.Is(err, storage.ErrKeyNotFound) {
		return nil, err
	}
	return codec.DecodePlayers(text), nil
}

func (s *Service) write(ctx context.Context, key string, players []model.Player) error {
	encoded, err := codec.EncodePlayers(players)
	if err != nil {
		return err
	}
	return s.backend.Set(ctx, key, encoded)
}
