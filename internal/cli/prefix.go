// Package cli provides terminal output, prompts and error formatting for storectl.
package cli

import (
	"errors"
	"fmt"
	"strings"
)

// MatchCommand resolves word to one of commands. An exact match wins;
// otherwise word must be a prefix of exactly one command. Matching ignores
// case.
func MatchCommand(word string, commands []string) (string, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return "", errors.New("missing command")
	}

	var matches []string
	for _, c := range commands {
		lc := strings.ToLower(c)
		if lc == word {
			return c, nil
		}
		if strings.HasPrefix(lc, word) {
			matches = append(matches, c)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("unknown command %q", word)
	case 1:
		return matches[0], nil
	}
	return "", fmt.Errorf("ambiguous command %q matches: %s", word, strings.Join(matches, ", "))
}
