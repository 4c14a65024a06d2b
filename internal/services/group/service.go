package group

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

// ErrSweepUnsupported is returned by Sweep when the backend cannot list its keys
var ErrSweepUnsupported = errors.New("backend does not support listing keys")

// Service manages the ordered collection of group names
type Service struct {
	backend storage.Backend
	locker  *keylock.Locker
}

// New creates a new group Service.
// locker must be shared with the player service; a nil locker disables locking,
// which is only safe while a single caller issues one operation at a time.
func New(backend storage.Backend, locker *keylock.Locker) *Service {
	return &Service{
		backend: backend,
		locker:  locker,
	}
}

// List returns every group name in creation order
func (s *Service) List(ctx context.Context) ([]model.GroupName, error) {
	return s.read(ctx)
}

// Exists reports whether a group with exactly this name is listed
func (s *Service) Exists(ctx context.Context, name string) (bool, error) {
	groups, err := s.read(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(groups, model.GroupName(strings.TrimSpace(name))), nil
}

// Create appends a new group. Blank and duplicate names are rejected.
//
// Any player list still stored under the name is cleared in the same step, so a
// recreated group always starts empty. On a storage.Batcher both writes are applied
// atomically; otherwise the player list is removed before the group is listed.
func (s *Service) Create(ctx context.Context, name string) (model.GroupName, error) {
	groupName, err := model.NormalizeGroupName(name)
	if err != nil {
		return "", err
	}
	playersKey := storage.PlayerCollectionKey(string(groupName))

	unlock := s.locker.Lock(storage.GroupCollectionKey, playersKey)
	defer unlock()

	groups, err := s.read(ctx)
	if err != nil {
		return "", err
	}

	if slices.Contains(groups, groupName) {
		return "", model.ErrGroupAlreadyExists
	}

	encoded, err := codec.EncodeGroups(append(groups, groupName))
	if err != nil {
		return "", err
	}

	if batcher, ok := s.backend.(storage.Batcher); ok {
		err := batcher.Apply(ctx,
			storage.RemoveOp(playersKey),
			storage.SetOp(storage.GroupCollectionKey, encoded),
		)
		if err != nil {
			return "", err
		}
		return groupName, nil
	}

	if err := s.backend.Remove(ctx, playersKey); err != nil {
		return "", err
	}
	if err := s.backend.Set(ctx, storage.GroupCollectionKey, encoded); err != nil {
		return "", err
	}
	return groupName, nil
}

// Remove deletes a group and its players. Removing an unknown group is a no-op.
//
// On a storage.Batcher both writes are applied atomically. Otherwise the group list
// is written first, and a failure before the players are removed leaves them orphaned
// until the next Sweep.
func (s *Service) Remove(ctx context.Context, name string) error {
	groupName := model.GroupName(strings.TrimSpace(name))
	playersKey := storage.PlayerCollectionKey(string(groupName))

	unlock := s.locker.Lock(storage.GroupCollectionKey, playersKey)
	defer unlock()

	groups, err := s.read(ctx)
	if err != nil {
		return err
	}

	remaining := slices.DeleteFunc(groups, func(g model.GroupName) bool {
		return g == groupName
	})

	encoded, err := codec.EncodeGroups(remaining)
	if err != nil {
		return err
	}

	if batcher, ok := s.backend.(storage.Batcher); ok {
		return batcher.Apply(ctx,
			storage.SetOp(storage.GroupCollectionKey, encoded),
			storage.RemoveOp(playersKey),
		)
	}

	if err := s.backend.Set(ctx, storage.GroupCollectionKey, encoded); err != nil {
		return err
	}
	return s.backend.Remove(ctx, playersKey)
}

// Sweep removes player collections whose group is no longer listed and returns the removed keys.
// This reclaims players left behind by an interrupted Remove, and players added to a group
// that was never created.
func (s *Service) Sweep(ctx context.Context) ([]string, error) {
	scanner, ok := s.backend.(storage.Scanner)
	if !ok {
		return nil, ErrSweepUnsupported
	}

	unlock := s.locker.Lock(storage.GroupCollectionKey)
	defer unlock()

	groups, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	keys, err := scanner.Keys(ctx, storage.PlayerCollectionPrefix)
	if err != nil {
		return nil, err
	}
	slices.Sort(keys)

	removed := []string{}
	for _, key := range keys {
		name, ok := storage.NameFromKey(storage.PlayerCollectionPrefix, key)
		if !ok || slices.Contains(groups, model.GroupName(name)) {
			continue
		}
		if err := s.removeKey(ctx, key); err != nil {
			return removed, err
		}
		removed = append(removed, key)
	}
	return removed, nil
}

func (s *Service) removeKey(ctx context.Context, key string) error {
	unlock := s.locker.Lock(key)
	defer unlock()
	return s.backend.Remove(ctx, key)
}

func (s *Service) read(ctx context.Context) ([]model.GroupName, error) {
	text, err := s.backend.Get(ctx, storage.GroupCollectionKey)
	if err != nil && !errors.Is(err, storage.ErrKeyNotFound) {
		return nil, err
	}
	return codec.DecodeGroups(text), nil
}
