package storage

import (
	"net/url"
	"strings"
)

const (
	// GroupCollectionKey holds the ordered list of group names
	GroupCollectionKey = "@teamsplit:groups"

	// PlayerCollectionPrefix is the prefix of every per-group player list key
	PlayerCollectionPrefix = "@teamsplit:players"

	keySeparator = "-"
)

// DeriveKey builds the key for a per-name collection under prefix.
//
// The name is query-escaped, so the result contains no separator collisions,
// no glob metacharacters (*, ?, [) and maps back to exactly one name.
func DeriveKey(prefix, name string) string {
	return prefix + keySeparator + url.QueryEscape(name)
}

// NameFromKey reverses DeriveKey. ok is false if key was not derived from prefix.
func NameFromKey(prefix, key string) (name string, ok bool) {
	rest, found := strings.CutPrefix(key, prefix+keySeparator)
	if !found {
		return "", false
	}
	name, err := url.QueryUnescape(rest)
	if err != nil {
		return "", false
	}
	return name, true
}

// PlayerCollectionKey returns the key holding the players of group
func PlayerCollectionKey(group string) string {
	return DeriveKey(PlayerCollectionPrefix, group)
}
