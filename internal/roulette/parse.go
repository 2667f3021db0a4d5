package roulette

import (
	"fmt"
	"regexp"
	"strconv"

	"TrendSentinel/internal/session"
)

var digitRun = regexp.MustCompile(`\d+`)

// ParseNumbers extracts every run of digits from free text, so commas, spaces
// and newlines all separate values. A batch holding no numbers or any number
// above 36 is rejected as a whole.
func ParseNumbers(text string) ([]int, error) {
	runs := digitRun.FindAllString(text, -1)
	if len(runs) == 0 {
		return nil, fmt.Errorf("%w: no numbers found", session.ErrInvalidInput)
	}
	out := make([]int, 0, len(runs))
	for _, r := range runs {
		n, err := strconv.Atoi(r)
		if err != nil || n > MaxNumber {
			return nil, fmt.Errorf("%w: %q is not a roulette number", session.ErrInvalidInput, r)
		}
		out = append(out, n)
	}
	return out, nil
}
