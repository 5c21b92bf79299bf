package parser

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/resumerater/resumerater-backend/internal/rating/domain"
)

// ErrNoRating is returned when a reply does not start with a number.
var ErrNoRating = errors.New("reply does not start with a numeric rating")

var leadingDigits = regexp.MustCompile(`^(\d+)`)

// Parse reads the score and suggestions out of a model reply.
//
// The reply is trimmed, then a run of digits anchored at its start becomes the
// score, clamped to [0, domain.MaxScore]. Everything after the first line
// break is the suggestion text; without a line break it is domain.NoSuggestions.
func Parse(reply string) (*domain.ParsedResult, error) {
	text := strings.TrimSpace(reply)

	m := leadingDigits.FindStringSubmatch(text)
	if m == nil {
		return nil, ErrNoRating
	}

	suggestions := domain.NoSuggestions
	if _, rest, found := strings.Cut(text, "\n"); found {
		suggestions = rest
	}

	return &domain.ParsedResult{
		Score:       clamp(m[1]),
		Suggestions: suggestions,
	}, nil
}

func clamp(digits string) int {
	n, err := strconv.Atoi(digits)
	if err != nil {
		// only out-of-range is possible for a pure digit run
		return domain.MaxScore
	}
	return min(max(n, 0), domain.MaxScore)
}
