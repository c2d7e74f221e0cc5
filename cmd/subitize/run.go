package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ncruces/zenity"
	"github.com/spf13/cobra"

	"github.com/MarkTee/Psych403-FinalProject/audio"
	"github.com/MarkTee/Psych403-FinalProject/config"
	"github.com/MarkTee/Psych403-FinalProject/display"
	"github.com/MarkTee/Psych403-FinalProject/experiment"
	"github.com/MarkTee/Psych403-FinalProject/logging"
	"github.com/MarkTee/Psych403-FinalProject/report"
	"github.com/MarkTee/Psych403-FinalProject/stats"
	"github.com/MarkTee/Psych403-FinalProject/storage"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one experiment session",
	Long: `Runs a full session for one participant: instructions, shuffled blocks
of counting trials, console summary, CSV export, and database archive.`,
	RunE: runSession,
}

func init() {
	runCmd.Flags().Int("subject", 0, "Subject number (0 asks via a dialog, falling back to 1)")
	runCmd.Flags().Int64("seed", 0, "Random seed (0 uses the current time)")
	runCmd.Flags().String("config", "", "YAML config file overriding the defaults")
	runCmd.Flags().String("db", "", "Archive database path (default <data-dir>/subitize.db)")
	runCmd.Flags().Int("blocks", 0, "Number of blocks (overrides config)")
	runCmd.Flags().Int("trials", 0, "Trials per block, 1-10 (overrides config)")
	runCmd.Flags().Bool("no-audio", false, "Disable response feedback tones")
	runCmd.Flags().Bool("debug", false, "Write a debug log to <data-dir>/subitize.log")
	rootCmd.AddCommand(runCmd)
}

func runSession(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("blocks") {
		cfg.Blocks, _ = cmd.Flags().GetInt("blocks")
	}
	if cmd.Flags().Changed("trials") {
		cfg.Trials, _ = cmd.Flags().GetInt("trials")
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir, _ = cmd.Flags().GetString("data-dir")
	}
	if noAudio, _ := cmd.Flags().GetBool("no-audio"); noAudio {
		cfg.Audio = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	log := logging.NewNop()
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		logFile, err := os.OpenFile(filepath.Join(cfg.DataDir, "subitize.log"),
			os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer logFile.Close()
		log = logging.New(logFile, slog.LevelDebug)
	}

	subject, _ := cmd.Flags().GetInt("subject")
	if subject == 0 {
		subject = askSubject(log)
	}

	seed, _ := cmd.Flags().GetInt64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	log.Debug("session start", "subject", subject, "seed", seed,
		"blocks", cfg.Blocks, "trials", cfg.Trials)

	results, err := runOnTerminal(cfg, rng, log)
	if err != nil {
		if errors.Is(err, experiment.ErrAborted) {
			fmt.Println("Session aborted; no results saved.")
			return nil
		}
		return err
	}

	summary, err := stats.Summarize(results)
	if err != nil {
		return err
	}
	report.NewPrinter(os.Stdout).Print(summary)

	csvPath := filepath.Join(cfg.DataDir, storage.ResultsFilename(subject, time.Now()))
	if err := storage.WriteCSV(csvPath, results); err != nil {
		return err
	}
	fmt.Printf("\nResults written to %s\n", csvPath)

	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = filepath.Join(cfg.DataDir, cfg.DBFile)
	}
	store, err := storage.New(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	sessionID := uuid.NewString()
	if err := store.CreateSession(sessionID, subject, seed, cfg.Blocks, cfg.Trials); err != nil {
		return err
	}
	if err := store.SaveResults(sessionID, results); err != nil {
		return err
	}
	fmt.Printf("Session %s archived in %s\n", sessionID, dbPath)
	return nil
}

// runOnTerminal owns the tcell screen for the duration of the session and
// guarantees the terminal is restored, even on panic.
func runOnTerminal(cfg *config.Config, rng *rand.Rand, log *slog.Logger) (experiment.Results, error) {
	term, err := display.New(cfg.Region())
	if err != nil {
		return nil, fmt.Errorf("initialize terminal: %w", err)
	}
	defer term.Close()
	defer func() {
		if r := recover(); r != nil {
			term.Close()
			fmt.Fprintf(os.Stderr, "\nSESSION CRASHED: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	var feedback *audio.Player
	if cfg.Audio {
		feedback, err = audio.NewPlayer()
		if err != nil {
			// Non-fatal, the session can run without sound
			log.Warn("audio initialization failed", "err", err)
		}
	} else {
		feedback = audio.NewSilentPlayer()
	}
	defer feedback.Close()

	clock := experiment.NewMonotonicClock()
	controller := &experiment.Controller{
		Display: term,
		Rng:     rng,
		Log:     log,
		Sequencer: &experiment.Sequencer{
			Display:       term,
			Clock:         clock,
			Rng:           rng,
			Feedback:      feedback,
			Log:           log,
			Region:        cfg.Region(),
			MinSeparation: cfg.MinSeparation(),
			FixationTime:  cfg.FixationTime(),
			StimulusTime:  cfg.StimulusTime(),
		},
		Blocks:     cfg.Blocks,
		Trials:     cfg.Trials,
		BlockPause: cfg.BlockPause(),
	}

	return controller.Run()
}

// askSubject collects the subject number through a native dialog, matching
// the original experiment's info prompt. Cancelled or unavailable dialogs
// fall back to subject 1.
func askSubject(log *slog.Logger) int {
	answer, err := zenity.Entry("Subject number:",
		zenity.Title("Experiment Info"),
		zenity.EntryText("1"))
	if err != nil {
		log.Warn("participant dialog unavailable, using subject 1", "err", err)
		return 1
	}
	subject, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil || subject < 1 {
		log.Warn("invalid subject number, using subject 1", "answer", answer)
		return 1
	}
	return subject
}
