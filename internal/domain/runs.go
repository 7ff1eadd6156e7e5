package domain

import (
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
)

// ExpandRuns converts a user-supplied run token into an ordered list of run
// numbers. A token is a bare integer ("123"), a comma-separated list
// ("1,3,10"), a dash-delimited inclusive range ("100-105"), or a mix of the
// two ("1,3-5,10"). Range endpoints are sorted before expansion, so "8-5"
// and "5-8" both yield 5 through 8. Duplicates and ordering are preserved
// exactly as produced by left-to-right expansion.
//
// Integer conversion never fails hard: a piece that does not parse is logged
// and coerced to 0, which the expansion then drops as absent. A genuine run
// number 0 is therefore indistinguishable from a parse failure and is always
// dropped; known limitation.
func ExpandRuns(token string, log *slog.Logger) []int {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	// A bare integer needs no splitting. This path also accepts negative
	// numbers, whose leading dash is a sign rather than a range separator.
	if n, err := strconv.Atoi(strings.TrimSpace(token)); err == nil {
		if n == 0 {
			return []int{}
		}
		return []int{n}
	}

	runs := []int{}
	for _, piece := range strings.Split(token, ",") {
		if strings.Contains(piece, "-") {
			bounds := []int{}
			for _, p := range strings.Split(piece, "-") {
				bounds = append(bounds, toInt(p, log))
			}
			sort.Ints(bounds)
			// The first two sorted values bound the range; a zero
			// lower bound marks a piece that failed to parse.
			if bounds[0] == 0 {
				continue
			}
			for n := bounds[0]; n <= bounds[1]; n++ {
				runs = append(runs, n)
			}
		} else if n := toInt(piece, log); n != 0 {
			runs = append(runs, n)
		}
	}
	return runs
}

// toInt converts a string to an integer, mapping failures to 0 so callers
// can treat unparseable pieces as absent.
func toInt(s string, log *slog.Logger) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		log.Info("failed casting to int", "value", s)
		return 0
	}
	return n
}
