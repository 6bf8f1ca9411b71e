// Package lang splits stored bilingual answers for selective display.
// Answers embed a Telugu translation after the first line; the boundary rule
// is exact (line 0 vs everything else) and display logic depends on it.
package lang

import (
	"errors"
	"strings"
)

// Language selects which answer segment a caller wants.
type Language string

const (
	English Language = "English"
	Telugu  Language = "Telugu"
)

// ErrTranslationUnavailable reports a requested secondary segment that is
// empty or whitespace-only, so the caller can show the primary segment with
// a notice instead of a blank answer.
var ErrTranslationUnavailable = errors.New("lang: translation not available")

// Split divides an answer into its primary-language segment (line 0) and the
// secondary-language segment (all remaining lines, rejoined). A single-line
// answer has an empty secondary segment.
func Split(answer string) (primary, secondary string) {
	lines := strings.Split(answer, "\n")
	primary = lines[0]
	if len(lines) > 1 {
		secondary = strings.Join(lines[1:], "\n")
	}
	return primary, secondary
}

// Segment returns the requested segment of an answer. Unknown languages fall
// back to the primary segment.
func Segment(answer string, language Language) (string, error) {
	primary, secondary := Split(answer)
	if language == Telugu {
		if strings.TrimSpace(secondary) == "" {
			return "", ErrTranslationUnavailable
		}
		return secondary, nil
	}
	return primary, nil
}
