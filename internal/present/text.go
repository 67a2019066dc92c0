package present

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
)

const textWidth = 76

var plotStyle = lipgloss.NewStyle().Width(textWidth)

// WriteCards prints cards as an aligned table for non-interactive output.
func WriteCards(w io.Writer, cards []Card) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "ID\tTITLE\tYEAR\tTYPE\tPOSTER"); err != nil {
		return err
	}
	for _, c := range cards {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Title, c.Year, c.Type, c.Poster); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// WriteDetail prints a detail panel for non-interactive output.
func WriteDetail(w io.Writer, v DetailView) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s (%s)\n", v.Title, v.Year)
	fmt.Fprintf(&sb, "%s  %s  %s\n\n", v.Rating, v.Runtime, v.Genre)
	sb.WriteString(plotStyle.Render(v.Plot))
	sb.WriteString("\n\n")

	fields := []struct{ label, value string }{
		{"Director", v.Director},
		{"Cast", v.Cast},
		{"Rated", v.Rated},
		{"Released", v.Released},
		{"Awards", v.Awards},
		{"Poster", v.Poster},
		{"IMDb ID", v.ID},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		fmt.Fprintf(&sb, "%-9s %s\n", f.label+":", f.value)
	}

	marker := " "
	if v.FavoriteActive {
		marker = "*"
	}
	fmt.Fprintf(&sb, "\n[%s] %s\n", marker, v.FavoriteLabel)

	_, err := io.WriteString(w, sb.String())
	return err
}
