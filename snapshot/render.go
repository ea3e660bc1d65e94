package snapshot

import (
	"io"
	"strings"

	"elevsim/types"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Render writes a plain text picture of the building, top floor first.
func Render(w io.Writer, b Building) error {
	hallCalls := b.HallCalls()

	var sb strings.Builder
	printer.Fprintf(&sb, "tick %d  arrived %d  delivered %d  waiting %d  riding %d  mean wait %.1f  max wait %d\n",
		b.Stats.Ticks, b.Stats.Arrived, b.Stats.Delivered, b.Waiting(), b.Riding(), b.Stats.MeanWait(), b.Stats.MaxWait)

	for i := len(b.Floors) - 1; i >= 0; i-- {
		f := b.Floors[i]
		printer.Fprintf(&sb, "%3d %s |", f.Number, lamps(hallCalls[i]))
		for _, e := range b.Elevators {
			if e.Floor == f.Number {
				printer.Fprintf(&sb, " [%d%s %d/%d]", e.ID, arrow(e.Direction), len(e.Occupants), e.Capacity)
			} else {
				sb.WriteString("         ")
			}
		}
		if len(f.Waiting) > 0 {
			printer.Fprintf(&sb, " | %d waiting", len(f.Waiting))
		}
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func lamps(calls [2]bool) string {
	s := []byte("  ")
	if calls[0] {
		s[0] = '^'
	}
	if calls[1] {
		s[1] = 'v'
	}
	return string(s)
}

func arrow(d types.Direction) string {
	switch d {
	case types.Up:
		return "^"
	case types.Down:
		return "v"
	}
	return "-"
}
