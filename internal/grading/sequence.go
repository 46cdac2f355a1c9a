package grading

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrIncompleteSequence = errors.New("every item needs a position")
	ErrDuplicatePosition  = errors.New("duplicate numbers found")
	ErrPositionRange      = errors.New("position out of range")
)

// ValidateSequence checks a player's item -> position map before grading.
// Position 0 means unset. The map must hold every position 1..total once.
func ValidateSequence(positions map[string]int, total int) error {
	seen := make(map[int]bool, len(positions))
	filled := 0
	for _, p := range positions {
		if p == 0 {
			continue
		}
		filled++
		if p < 1 || p > total {
			return fmt.Errorf("%w: numbers must be between 1 and %d", ErrPositionRange, total)
		}
		if seen[p] {
			return ErrDuplicatePosition
		}
		seen[p] = true
	}
	if filled != total {
		return ErrIncompleteSequence
	}
	return nil
}

// SequenceString renders positions as the comma-separated item order used
// in correct answers, e.g. "2,4,1,3". Unfilled slots read "?".
func SequenceString(positions map[string]int, total int) string {
	byPos := make(map[int]string, len(positions))
	for id, p := range positions {
		if p != 0 {
			byPos[p] = id
		}
	}
	out := make([]string, total)
	for i := range out {
		if id, ok := byPos[i+1]; ok {
			out[i] = id
		} else {
			out[i] = "?"
		}
	}
	return strings.Join(out, ",")
}

// CheckSequence compares two comma-separated orders, ignoring space around ids.
func CheckSequence(order, correct string) bool {
	got, want := splitOrder(order), splitOrder(correct)
	if len(want) == 0 || len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// CorrectPosition is the 1-based slot of itemID in correct, or 0.
func CorrectPosition(itemID, correct string) int {
	for i, id := range splitOrder(correct) {
		if id == itemID {
			return i + 1
		}
	}
	return 0
}

func splitOrder(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// ParsePositions reads the UI's item -> position map where values arrive as
// strings and "" means unset.
func ParsePositions(raw map[string]string) (map[string]int, error) {
	out := make(map[string]int, len(raw))
	for id, v := range raw {
		v = strings.TrimSpace(v)
		if v == "" {
			out[id] = 0
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("position for %s: %w", id, err)
		}
		out[id] = n
	}
	return out, nil
}
