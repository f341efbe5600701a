package share

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/osse101/armory/internal/domain"
)

// UnmappableValueError reports a weapon attribute with no compact code
type UnmappableValueError struct {
	Field      string
	Value      string
	Suggestion string // closest known value, if any is near enough
}

func (e *UnmappableValueError) Error() string {
	msg := fmt.Sprintf("%s: %s %q", domain.ErrMsgUnmappableValue, e.Field, e.Value)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

// Unwrap lets errors.Is match domain.ErrUnmappableValue
func (e *UnmappableValueError) Unwrap() error {
	return domain.ErrUnmappableValue
}

func unmappable(field, value string, candidates []string) *UnmappableValueError {
	return &UnmappableValueError{
		Field:      field,
		Value:      value,
		Suggestion: closestMatch(value, candidates),
	}
}

// closestMatch returns the candidate with the smallest edit distance to value,
// or "" when nothing is within the length-scaled limit.
func closestMatch(value string, candidates []string) string {
	needle := strings.ToLower(strings.TrimSpace(value))
	if needle == "" {
		return ""
	}

	best, bestDist := "", -1
	for _, cand := range candidates {
		dist := levenshtein.ComputeDistance(needle, strings.ToLower(cand))
		if dist > suggestionLimit(len(cand)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best
}

func suggestionLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// FailureReason maps a codec error to its metric label
func FailureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnmappableValue):
		return ReasonUnmappable
	case errors.Is(err, domain.ErrMalformedPayload):
		return ReasonMalformed
	case errors.Is(err, domain.ErrUnsupportedVersion):
		return ReasonUnsupportedVersion
	case errors.Is(err, domain.ErrNotShareable):
		return ReasonNotShareable
	case errors.Is(err, domain.ErrNoCodeFound):
		return ReasonNoCode
	default:
		return ReasonOther
	}
}
