package redis

import "strings"

// namespaced returns the Redis key for a backend key
func (s *Storage) namespaced(key string) string {
	if s.cfg.Namespace == "" {
		return key
	}
	return s.cfg.Namespace + ":" + key
}

// stripNamespace reverses namespaced
func (s *Storage) stripNamespace(key string) string {
	if s.cfg.Namespace == "" {
		return key
	}
	return strings.TrimPrefix(key, s.cfg.Namespace+":")
}

// matchPattern returns a SCAN MATCH pattern for keys starting with prefix
func (s *Storage) matchPattern(prefix string) string {
	return escapeGlob(s.namespaced(prefix)) + "*"
}

var globReplacer = strings.NewReplacer(
	`\`, `\\`,
	`*`, `\*`,
	`?`, `\?`,
	`[`, `\[`,
	`]`, `\]`,
)

// escapeGlob quotes the characters Redis treats specially in MATCH patterns
func escapeGlob(s string) string {
	return globReplacer.Replace(s)
}
