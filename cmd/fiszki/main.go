// Package main provides the CLI entrypoint for fiszki.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/fiszki/internal/config"
	"github.com/verte-zerg/fiszki/internal/deck"
	"github.com/verte-zerg/fiszki/internal/logging"
	"github.com/verte-zerg/fiszki/internal/model"
	"github.com/verte-zerg/fiszki/internal/selector"
	"github.com/verte-zerg/fiszki/internal/store"
	"github.com/verte-zerg/fiszki/internal/tui"
	"github.com/verte-zerg/fiszki/internal/vocab"
)

var (
	deckPath string
	dbPath   string

	studyUnits     []string
	studyCategory  string
	studySearch    string
	studyStatus    string
	studyHard      bool
	studyDifficult bool
	studyDue       bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fiszki",
		Short:         "Vocabulary flashcards with spaced repetition",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runStudyCmd,
	}

	rootCmd.PersistentFlags().StringVar(&deckPath, "deck", config.DefaultDeckPath(), "word list file (.json, .yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", config.DefaultDBPath(), "session database")
	addFilterFlags(rootCmd)
	rootCmd.Flags().BoolVar(&studyDue, "due", false, "only show words that are due for review")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newUnitsCmd())
	rootCmd.AddCommand(newDueCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&studyUnits, "unit", nil, "unit to include (repeatable)")
	cmd.Flags().StringVar(&studyCategory, "category", "", "part of speech filter")
	cmd.Flags().StringVar(&studySearch, "search", "", "substring of word, translation or definition")
	cmd.Flags().StringVar(&studyStatus, "status", "", "untouched, learning, known or difficult")
	cmd.Flags().BoolVar(&studyHard, "hard", false, "only words answered wrong at least 40% of the time")
	cmd.Flags().BoolVar(&studyDifficult, "difficult", false, "difficult deck: error rate above 50%, hardest first")
}

func runStudyCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig(cmd)
	if err != nil {
		return err
	}
	applyBoolConfig(cmd, "due", &studyDue, fileCfg.Study.Due)
	cfg := studyConfig()
	if err := validateStudyConfig(cfg); err != nil {
		return err
	}

	logger := openLogger(fileCfg)
	defer logger.Sync()

	items, err := vocab.Load(cfg.DeckPath, time.Now())
	if err != nil {
		return fmt.Errorf("failed to load word list: %w", err)
	}
	pool := deck.Pool(items, cfg)
	if len(pool) == 0 {
		return errors.New("no words match the selected filters")
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	logger.Info("study session started", "deck", cfg.DeckPath, "pool", len(pool), "units", cfg.Units, "due_only", cfg.DueOnly)
	m := tui.NewModel(cfg, items, pool, st, selector.New(), logger)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if summary := m.Summary(); summary != nil && summary.WordsReviewed() > 0 {
		return printSessionSummary(cmd.OutOrStdout(), *summary)
	}
	return nil
}

func studyConfig() model.StudyConfig {
	return model.StudyConfig{
		DeckPath:  deckPath,
		Units:     studyUnits,
		Category:  studyCategory,
		Search:    studySearch,
		Status:    strings.ToLower(studyStatus),
		Hard:      studyHard,
		Difficult: studyDifficult,
		DueOnly:   studyDue,
	}
}

func validateStudyConfig(cfg model.StudyConfig) error {
	if strings.TrimSpace(cfg.DeckPath) == "" {
		return fmt.Errorf("--deck must not be empty")
	}
	if cfg.Status != "" && !deck.ValidStatus(cfg.Status) {
		return fmt.Errorf("--status must be one of: untouched, learning, known, difficult")
	}
	return nil
}

// loadFileConfig reads the config file and fills every flag of cmd that was
// not set explicitly.
func loadFileConfig(cmd *cobra.Command) (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "deck", &deckPath, fileCfg.Study.Deck)
	applyStringConfig(cmd, "db", &dbPath, fileCfg.Study.DB)
	applyStringsConfig(cmd, "unit", &studyUnits, fileCfg.Study.Units)
	applyStringConfig(cmd, "category", &studyCategory, fileCfg.Study.Category)
	applyStringConfig(cmd, "status", &studyStatus, fileCfg.Study.Status)
	applyBoolConfig(cmd, "difficult", &studyDifficult, fileCfg.Study.Difficult)
	return fileCfg, nil
}

func openLogger(fileCfg config.FileConfig) *logging.Logger {
	path := config.DefaultLogPath()
	if fileCfg.Log.Path != nil {
		path = *fileCfg.Log.Path
	}
	level := ""
	if fileCfg.Log.Level != nil {
		level = *fileCfg.Log.Level
	}
	logger, err := logging.New(path, level)
	if err != nil {
		logErrf("logging disabled: %v\n", err)
		return logging.Nop()
	}
	return logger
}

func printSessionSummary(w io.Writer, s model.SessionSummary) error {
	d := s.Duration.Round(time.Second)
	_, err := fmt.Fprintf(w, "Session: %d words, %d correct, %d wrong, %.1f%% accuracy, %02d:%02d\n",
		s.WordsReviewed(), s.Correct, s.Wrong, s.Accuracy, int(d.Minutes()), int(d.Seconds())%60)
	return err
}

func withStore(fn func(ctx context.Context, st *store.Store) error) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	return fn(context.Background(), st)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil || cmd.Flags().Lookup(name) == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyStringsConfig(cmd *cobra.Command, name string, target *[]string, value []string) {
	if value == nil || cmd.Flags().Lookup(name) == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = append([]string(nil), value...)
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil || cmd.Flags().Lookup(name) == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
