package pgn

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/corentings/chess/v2"
	"github.com/corentings/chess/v2/opening"
)

var headerRe = regexp.MustCompile(`\[(\w+)\s+"([^"]+)"\]`)

// ParsePGNHeaders extracts PGN header tags into a map
func ParsePGNHeaders(pgn string) map[string]string {
	out := map[string]string{}
	for _, line := range strings.Split(pgn, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "[") {
			continue
		}
		m := headerRe.FindStringSubmatch(line)
		if len(m) == 3 {
			out[m[1]] = m[2]
		}
	}
	return out
}

var gameIDRe = regexp.MustCompile(`.*/game/[^/]+/([0-9]+)`)

// ExtractGameID extracts the game ID from a chess.com game URL
func ExtractGameID(url string) string {
	m := gameIDRe.FindStringSubmatch(url)
	if len(m) == 2 {
		return m[1]
	}
	return url
}

// Summary is what the stats database records about a game's moves.
type Summary struct {
	ECOCode     string
	OpeningName string
	Plies       int
}

// Summarize reads the opening and length of a game. Header tags win; the ECO
// book is consulted only when the headers carry no opening. On a parse error
// the header-derived fields are still returned.
func Summarize(pgnText string) (Summary, error) {
	headers := ParsePGNHeaders(pgnText)
	s := Summary{
		ECOCode:     headers["ECO"],
		OpeningName: headers["Opening"],
	}
	if s.OpeningName == "" {
		s.OpeningName = openingFromURL(headers["ECOUrl"])
	}
	if strings.TrimSpace(pgnText) == "" {
		return s, nil
	}

	pgnOpt, err := chess.PGN(strings.NewReader(pgnText))
	if err != nil {
		return s, fmt.Errorf("parse pgn: %w", err)
	}
	game := chess.NewGame(pgnOpt)
	moves := game.Moves()
	s.Plies = len(moves)

	if s.ECOCode == "" || s.OpeningName == "" {
		book := opening.NewBookECO()
		if found := book.Find(moves); found != nil {
			if s.ECOCode == "" {
				s.ECOCode = found.Code()
			}
			if s.OpeningName == "" {
				s.OpeningName = found.Title()
			}
		}
	}
	return s, nil
}

// openingFromURL turns https://www.chess.com/openings/Sicilian-Defense-2.Nf3
// into "Sicilian Defense 2.Nf3".
func openingFromURL(u string) string {
	u = strings.TrimSuffix(u, "/")
	idx := strings.LastIndex(u, "/openings/")
	if idx < 0 {
		return ""
	}
	return strings.ReplaceAll(u[idx+len("/openings/"):], "-", " ")
}
