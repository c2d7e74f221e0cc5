// Package report prints the run summary to the operator console.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/MarkTee/Psych403-FinalProject/stats"
)

// Printer renders a stats.Summary with terminal styling.
type Printer struct {
	out     io.Writer
	profile termenv.Profile
}

// NewPrinter creates a printer for the given writer, with colors matched to
// the terminal's capabilities.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, profile: termenv.ColorProfile()}
}

// NewPlainPrinter creates a printer with styling disabled, for tests and
// redirected output.
func NewPlainPrinter(out io.Writer) *Printer {
	return &Printer{out: out, profile: termenv.Ascii}
}

func (p *Printer) heading(text string) string {
	if p.profile == termenv.Ascii {
		return text
	}
	return termenv.String(text).Foreground(p.profile.Color("#818cf8")).Bold().String()
}

// Print writes the grouped accuracy and response-time summary, mirroring the
// original experiment's console output.
func (p *Printer) Print(s *stats.Summary) {
	fmt.Fprintf(p.out, "\n%s\n", p.heading("Per-Block Accuracy"))
	for _, block := range stats.SortedKeys(s.ByBlock) {
		fmt.Fprintf(p.out, "Block %d: %g%%\n", block, round5(s.ByBlock[block].Accuracy*100))
	}

	fmt.Fprintf(p.out, "\n%s\n", p.heading("Per-Circles Accuracy"))
	for _, count := range stats.SortedKeys(s.ByCount) {
		fmt.Fprintf(p.out, "%d circles: %g%%\n", count, round5(s.ByCount[count].Accuracy*100))
	}

	fmt.Fprintf(p.out, "\nOverall Accuracy: %g%%\n", round5(s.Overall.Accuracy*100))

	fmt.Fprintln(p.out, strings.Repeat("-", 10))

	fmt.Fprintf(p.out, "\n%s\n", p.heading("Per-Block RT"))
	for _, block := range stats.SortedKeys(s.ByBlock) {
		fmt.Fprintf(p.out, "Block %d: %gs\n", block, round5(s.ByBlock[block].MeanRT))
	}

	fmt.Fprintf(p.out, "\n%s\n", p.heading("Per-Circles RT"))
	for _, count := range stats.SortedKeys(s.ByCount) {
		fmt.Fprintf(p.out, "%d circles: %gs\n", count, round5(s.ByCount[count].MeanRT))
	}

	fmt.Fprintf(p.out, "\nOverall RT: %gs\n", round5(s.Overall.MeanRT))
}

// round5 rounds to five decimal places, as the original summary did.
func round5(v float64) float64 {
	scaled := v * 1e5
	if scaled < 0 {
		return float64(int64(scaled-0.5)) / 1e5
	}
	return float64(int64(scaled+0.5)) / 1e5
}
