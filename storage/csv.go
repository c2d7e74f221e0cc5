package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/MarkTee/Psych403-FinalProject/experiment"
)

// csvHeader matches the original results table column for column.
var csvHeader = []string{"block", "trial", "n_objects_actual", "n_objects_guessed", "correct", "rt"}

// ResultsFilename builds the per-run export name, e.g.
// subject3_27-8-2026_results.csv.
func ResultsFilename(subject int, now time.Time) string {
	return fmt.Sprintf("subject%d_%d-%d-%d_results.csv",
		subject, now.Day(), int(now.Month()), now.Year())
}

// WriteCSV exports the ordered results to a flat CSV file at path.
func WriteCSV(path string, records experiment.Results) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create results file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			strconv.Itoa(rec.Block),
			strconv.Itoa(rec.Trial),
			strconv.Itoa(rec.Actual),
			strconv.Itoa(rec.Guessed),
			strconv.FormatBool(rec.Correct),
			strconv.FormatFloat(rec.RT, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
