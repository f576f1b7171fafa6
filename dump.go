package qsweep

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var headerStyle = lipgloss.NewStyle().Bold(true)

// Fprint writes every amplitude, one per line, under a size header.
func (sv *StateVector) Fprint(w io.Writer) error {
	header := fmt.Sprintf("Vector of size %d", len(sv.amplitudes))

	if _, err := fmt.Fprintln(w, headerStyle.Render(header)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", len(header))); err != nil {
		return err
	}

	for i, v := range sv.amplitudes {
		if _, err := fmt.Fprintf(w, "v[%d]:\t%v\n", i, v); err != nil {
			return err
		}
	}
	return nil
}
