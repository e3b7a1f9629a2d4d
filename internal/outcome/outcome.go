// Package outcome maps chess.com result codes to a numeric game score.
package outcome

import (
	"fmt"
	"strings"
)

// Score is the numeric result of a game from one side's perspective.
type Score int

const (
	// Unresolved marks a result code that is not in the classification table.
	Unresolved Score = iota
	Loss
	Draw
	Win
)

// Value returns the numeric score and whether the score is resolvable.
func (s Score) Value() (float64, bool) {
	switch s {
	case Win:
		return 1, true
	case Draw:
		return 0.5, true
	case Loss:
		return 0, true
	default:
		return 0, false
	}
}

// String renders the score the way it appears in the statistics file.
func (s Score) String() string {
	switch s {
	case Win:
		return "1"
	case Draw:
		return "0.5"
	case Loss:
		return "0"
	default:
		return "?"
	}
}

// ParseScore is the inverse of String for resolvable scores.
func ParseScore(s string) (Score, error) {
	switch strings.TrimSpace(s) {
	case "1":
		return Win, nil
	case "0.5":
		return Draw, nil
	case "0":
		return Loss, nil
	default:
		return Unresolved, fmt.Errorf("invalid score %q: want 1, 0.5 or 0", s)
	}
}

// Table maps a lower-case result code to its score.
type Table map[string]Score

var (
	winCodes  = []string{"win"}
	drawCodes = []string{"stalemate", "agreed", "repetition", "insufficient", "timevsinsufficient", "50move", "threecheckdraw"}
	lossCodes = []string{"checkmated", "timeout", "resigned", "abandoned", "lose"}
)

// DefaultTable returns a fresh copy of the built-in classification table.
func DefaultTable() Table {
	t := make(Table, len(winCodes)+len(drawCodes)+len(lossCodes))
	for _, c := range winCodes {
		t[c] = Win
	}
	for _, c := range drawCodes {
		t[c] = Draw
	}
	for _, c := range lossCodes {
		t[c] = Loss
	}
	return t
}

// Merge returns a copy of t with extra entries overlaid.
func (t Table) Merge(extra Table) Table {
	out := make(Table, len(t)+len(extra))
	for k, v := range t {
		out[normalize(k)] = v
	}
	for k, v := range extra {
		out[normalize(k)] = v
	}
	return out
}

// ParseOverrides parses "code=score,code=score" into a Table.
func ParseOverrides(s string) (Table, error) {
	out := Table{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		code, score, ok := strings.Cut(part, "=")
		if !ok || strings.TrimSpace(code) == "" {
			return nil, fmt.Errorf("invalid override %q: want code=score", part)
		}
		sc, err := ParseScore(score)
		if err != nil {
			return nil, fmt.Errorf("override %q: %w", part, err)
		}
		out[normalize(code)] = sc
	}
	return out, nil
}

// Classifier scores result codes against a table.
type Classifier struct {
	table Table
}

// NewClassifier creates a Classifier; a nil table selects DefaultTable.
func NewClassifier(table Table) *Classifier {
	if table == nil {
		table = DefaultTable()
	}
	return &Classifier{table: Table{}.Merge(table)}
}

// Score classifies a result code. Codes outside the table yield Unresolved.
func (c *Classifier) Score(code string) Score {
	if s, ok := c.table[normalize(code)]; ok {
		return s
	}
	return Unresolved
}

func normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
