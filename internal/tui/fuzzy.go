package tui

import (
	"strings"
	"unicode"

	"github.com/rnwolfe/dated/internal/todo"
)

// FuzzyMatch checks whether all characters of query appear in target in
// order, ignoring case. It returns whether it matched and a relevance score
// that rewards consecutive runs, a match on the first character, and
// matches right after a word separator.
func FuzzyMatch(query, target string) (bool, int) {
	if query == "" {
		return true, 0
	}

	q := []rune(strings.ToLower(query))
	t := []rune(strings.ToLower(target))

	qi := 0
	score := 0
	consecutive := 0

	for ti := 0; ti < len(t) && qi < len(q); ti++ {
		if t[ti] != q[qi] {
			consecutive = 0
			continue
		}
		qi++
		consecutive++
		score += consecutive

		if ti == 0 {
			score += 3
		} else if isSeparator(t[ti-1]) {
			score += 2
		}
	}

	return qi == len(q), score
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune("/-_.()", r)
}

// MatchTask reports whether query fuzzy-matches the task's title, its note
// or the title of a visible subtask.
func MatchTask(query string, t todo.Task) bool {
	if ok, _ := FuzzyMatch(query, t.Title); ok {
		return true
	}
	if t.Note != "" {
		if ok, _ := FuzzyMatch(query, t.Note); ok {
			return true
		}
	}
	for _, s := range t.VisibleSubtasks() {
		if ok, _ := FuzzyMatch(query, s.Title); ok {
			return true
		}
	}
	return false
}
