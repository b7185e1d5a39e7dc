package cache

import (
	"strings"

	"github.com/samber/lo"
)

// Prefix namespaces every key this service writes.
const Prefix = "mcqgen"

// Key joins parts under Prefix with ":", skipping empty parts.
func Key(parts ...string) string {
	return strings.Join(append([]string{Prefix}, lo.Compact(parts)...), ":")
}

// QuizResultKey is where a generated quiz result is stored.
func QuizResultKey(id string) string {
	return Key("quiz", "result", id)
}
