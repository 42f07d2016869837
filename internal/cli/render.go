package cli

import (
	"fmt"
	"io"

	"github.com/tsawler/readable"
)

// Render prints the verdict, optionally preceded by both scores.
func Render(w io.Writer, v readable.Verdict, showScores bool) error {
	if showScores {
		if _, err := fmt.Fprintf(w, "positive: %g, negative: %g\n", float64(v.Positive), float64(v.Negative)); err != nil {
			return err
		}
	}

	var err error
	switch v.Decision {
	case readable.Readable:
		_, err = fmt.Fprintln(w, "You can read 😄!")
	default:
		_, err = fmt.Fprintln(w, "Do not read 💥!")
	}
	return err
}
