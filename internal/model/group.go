package model

import "strings"

// GroupName identifies a roster. Names are compared exactly (case-sensitive).
type GroupName string

// NormalizeGroupName trims surrounding whitespace and rejects blank names
func NormalizeGroupName(name string) (GroupName, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrGroupNameRequired
	}
	return GroupName(trimmed), nil
}
