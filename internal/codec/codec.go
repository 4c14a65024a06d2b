// Package codec converts stored collections to and from their JSON text form.
//
// A collection that was never written, or whose text cannot be parsed, decodes to
// an empty (non-nil) slice.
package codec

import (
	"github.com/bytedance/sonic"

	"github.com/mcoot/teamsplit/internal/model"
)

var api = sonic.ConfigStd

// EncodeGroups encodes group names in order
func EncodeGroups(groups []model.GroupName) (string, error) {
	if groups == nil {
		groups = []model.GroupName{}
	}
	return api.MarshalToString(groups)
}

// DecodeGroups decodes text produced by EncodeGroups
func DecodeGroups(text string) []model.GroupName {
	return decode[model.GroupName](text)
}

// EncodePlayers encodes player records in order
func EncodePlayers(players []model.Player) (string, error) {
	if players == nil {
		players = []model.Player{}
	}
	return api.MarshalToString(players)
}

// DecodePlayers decodes text produced by EncodePlayers
func DecodePlayers(text string) []model.Player {
	return decode[model.Player](text)
}

func decode[T any](text string) []T {
	if text == "" {
		return []T{}
	}
	var out []T
	if err := api.UnmarshalFromString(text, &out); err != nil || out == nil {
		return []T{}
	}
	return out
}
