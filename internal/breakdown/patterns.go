package breakdown

import (
	"sort"
	"strings"
)

// DefaultPatternSize is the default widest conversational pattern mined.
const DefaultPatternSize = 3

// CountRow is one distinct breakdown sequence and how often it occurred.
type CountRow struct {
	Sequence string `json:"sequence"`
	Count    int    `json:"count"`
}

// PatternRow is a conversational pattern: a window of consecutive distinct
// breakdown sequences and its frequency among windows of the same width.
type PatternRow struct {
	Window []string `json:"window"`
	Width  int      `json:"width"`
	Count  int      `json:"count"`
}

// Summary is the report of one detector over one batch.
type Summary struct {
	Detector   string       `json:"detector"`
	Breakdowns []CountRow   `json:"breakdowns"`
	Patterns   []PatternRow `json:"patterns"`
}

// Total returns the number of breakdowns across all sequences.
func (s Summary) Total() int {
	total := 0
	for _, r := range s.Breakdowns {
		total += r.Count
	}
	return total
}

// Summarize builds the breakdown table (tally key order) and the pattern table
// (windows of width 2..n) for a tally.
func Summarize(detector string, tally *Tally, n int) Summary {
	s := Summary{
		Detector:   detector,
		Breakdowns: []CountRow{},
		Patterns:   []PatternRow{},
	}
	if tally == nil {
		return s
	}

	rendered := make([]string, 0, tally.Len())
	for _, seq := range tally.Keys() {
		rendered = append(rendered, seq.String())
		s.Breakdowns = append(s.Breakdowns, CountRow{Sequence: seq.String(), Count: tally.Count(seq)})
	}
	s.Patterns = MinePatterns(rendered, n)
	return s
}

// MinePatterns slides windows of width 2..n over items (step 1, no wraparound)
// and counts each distinct window. Widths are reported in ascending order; within
// a width, windows are ranked by descending count, ties in first-seen order.
func MinePatterns(items []string, n int) []PatternRow {
	rows := []PatternRow{}
	for w := 2; w <= n && w <= len(items); w++ {
		var order []string
		byKey := make(map[string]*PatternRow)
		for i := 0; i+w <= len(items); i++ {
			window := items[i : i+w]
			key := strings.Join(window, tokenSep)
			if r, ok := byKey[key]; ok {
				r.Count++
				continue
			}
			byKey[key] = &PatternRow{Window: append([]string(nil), window...), Width: w, Count: 1}
			order = append(order, key)
		}

		ranked := make([]PatternRow, 0, len(order))
		for _, key := range order {
			ranked = append(ranked, *byKey[key])
		}
		sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })
		rows = append(rows, ranked...)
	}
	return rows
}
