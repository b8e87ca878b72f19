package config

import (
	"path"
	"strings"
)

// Normalize trims exclusion patterns and removes empty values.
func (c *Config) Normalize() {
	if c == nil {
		return
	}
	c.ExcludeNames = normalizePatterns(c.ExcludeNames)
}

// IsNameExcluded reports whether a client display name matches any
// configured exclusion pattern. Matching is case-insensitive even though
// grouping itself follows the server's collation; exclusion is an
// operator safety net, not an identity comparison.
func (c *Config) IsNameExcluded(name string) bool {
	if c == nil || len(c.ExcludeNames) == 0 {
		return false
	}

	value := normalizePattern(name)
	if value == "" {
		return false
	}

	for _, pattern := range c.ExcludeNames {
		if patternMatches(pattern, value) {
			return true
		}
	}

	return false
}

func normalizePatterns(values []string) []string {
	if len(values) == 0 {
		return []string{}
	}

	normalized := make([]string, 0, len(values))
	for _, pattern := range values {
		p := normalizePattern(pattern)
		if p == "" {
			continue
		}
		normalized = append(normalized, p)
	}
	return normalized
}

func normalizePattern(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func patternMatches(pattern, value string) bool {
	normalizedPattern := normalizePattern(pattern)
	normalizedValue := normalizePattern(value)
	if normalizedPattern == "" || normalizedValue == "" {
		return false
	}

	// Invalid glob patterns are treated as exact matches.
	matched, err := path.Match(normalizedPattern, normalizedValue)
	if err == nil {
		return matched
	}
	return normalizedPattern == normalizedValue
}
