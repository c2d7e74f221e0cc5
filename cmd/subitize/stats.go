package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MarkTee/Psych403-FinalProject/storage"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Report aggregate performance across archived sessions",
	Long: `Reads the SQLite archive and reports counting accuracy and response
times grouped by item count and by subject, across every stored session.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().String("db", "", "Archive database path (default <data-dir>/subitize.db)")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		dbPath = filepath.Join(dataDir, "subitize.db")
	}

	store, err := storage.New(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	db := store.DB()

	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("SUBITIZING EXPERIMENT STATISTICS")
	fmt.Println(strings.Repeat("=", 50))

	var totalSessions, totalTrials int
	db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&totalSessions)
	db.QueryRow("SELECT COUNT(*) FROM trials").Scan(&totalTrials)
	fmt.Printf("\nSessions: %d\nTrials:   %d\n", totalSessions, totalTrials)
	if totalTrials == 0 {
		fmt.Println("\nNo archived trials yet.")
		return nil
	}

	var overallAcc, overallRT float64
	db.QueryRow("SELECT AVG(correct), AVG(rt) FROM trials").Scan(&overallAcc, &overallRT)
	fmt.Printf("\nOverall Accuracy: %.1f%%\n", overallAcc*100)
	fmt.Printf("Overall Mean RT:  %.3fs\n", overallRT)

	fmt.Println("\n--- By Item Count ---")
	rows, err := db.Query(`
		SELECT n_objects_actual, COUNT(*), AVG(correct), AVG(rt)
		FROM trials
		GROUP BY n_objects_actual
		ORDER BY n_objects_actual
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var count, n int
		var acc, rt float64
		if err := rows.Scan(&count, &n, &acc, &rt); err != nil {
			return err
		}
		bar := strings.Repeat("#", int(acc*20))
		fmt.Printf("%2d circles: %4d trials  %5.1f%% correct  %.3fs  %s\n",
			count, n, acc*100, rt, bar)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	fmt.Println("\n--- By Subject ---")
	subjectRows, err := db.Query(`
		SELECT s.subject, COUNT(t.id), AVG(t.correct), AVG(t.rt)
		FROM sessions s JOIN trials t ON t.session_id = s.id
		GROUP BY s.subject
		ORDER BY s.subject
	`)
	if err != nil {
		return err
	}
	defer subjectRows.Close()

	for subjectRows.Next() {
		var subject, n int
		var acc, rt float64
		if err := subjectRows.Scan(&subject, &n, &acc, &rt); err != nil {
			return err
		}
		fmt.Printf("Subject %3d: %4d trials  %5.1f%% correct  %.3fs mean RT\n",
			subject, n, acc*100, rt)
	}
	return subjectRows.Err()
}
