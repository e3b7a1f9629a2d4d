package export

import (
	"bufio"
	"io"
	"os"

	"github.com/vytor/chessstats/internal/chesscom"
)

// WritePGN writes each game's PGN followed by a blank line, in order.
func WritePGN(w io.Writer, games []chesscom.MonthlyGame) error {
	bw := bufio.NewWriter(w)
	for _, g := range games {
		if _, err := bw.WriteString(g.PGN); err != nil {
			return err
		}
		if _, err := bw.WriteString("\n\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WritePGNFile creates path and writes the game archive to it.
func WritePGNFile(path string, games []chesscom.MonthlyGame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePGN(f, games); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
