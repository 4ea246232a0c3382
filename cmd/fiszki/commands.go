package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/fiszki/internal/config"
	"github.com/verte-zerg/fiszki/internal/deck"
	"github.com/verte-zerg/fiszki/internal/export"
	"github.com/verte-zerg/fiszki/internal/model"
	"github.com/verte-zerg/fiszki/internal/srs"
	"github.com/verte-zerg/fiszki/internal/stats"
	"github.com/verte-zerg/fiszki/internal/statsui"
	"github.com/verte-zerg/fiszki/internal/store"
	"github.com/verte-zerg/fiszki/internal/vocab"
)

const defaultCurveWindow = 10

var (
	dueList bool

	importCfg = vocab.DefaultImportConfig()

	exportFormat string
	exportOut    string

	statsUnit        string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsTUI         bool
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if _, err := config.EnsureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newUnitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "units",
		Short: "List units with word counts and accuracy",
		Args:  cobra.NoArgs,
		RunE:  runUnitsCmd,
	}
}

func runUnitsCmd(cmd *cobra.Command, _ []string) error {
	if _, err := loadFileConfig(cmd); err != nil {
		return err
	}
	items, err := vocab.Load(deckPath, time.Now())
	if err != nil {
		return fmt.Errorf("failed to load word list: %w", err)
	}
	out := cmd.OutOrStdout()
	for _, uc := range deck.Units(items) {
		s := deck.Summarize(deck.Apply(items, deck.ByUnits(uc.Unit)))
		label := uc.Unit
		if label == "" {
			label = "(none)"
		}
		if _, err := fmt.Fprintf(out, "Unit %-8s %4d words  %5.1f%% accuracy  %d untouched  %d difficult\n",
			label, uc.Count, s.Accuracy, s.Untouched, s.Difficult); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if _, err := fmt.Fprintf(out, "Language: %s\n", deck.LanguageName(deck.DetectLanguage(items))); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if categories := deck.Categories(items); len(categories) > 0 {
		if _, err := fmt.Fprintf(out, "Categories: %s\n", strings.Join(categories, ", ")); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newDueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "due",
		Short: "Show review status counts for the selected words",
		Args:  cobra.NoArgs,
		RunE:  runDueCmd,
	}
	addFilterFlags(cmd)
	cmd.Flags().BoolVar(&dueList, "list", false, "list the words that are due now")
	return cmd
}

func runDueCmd(cmd *cobra.Command, _ []string) error {
	if _, err := loadFileConfig(cmd); err != nil {
		return err
	}
	cfg := studyConfig()
	if err := validateStudyConfig(cfg); err != nil {
		return err
	}
	now := time.Now()
	items, err := vocab.Load(cfg.DeckPath, now)
	if err != nil {
		return fmt.Errorf("failed to load word list: %w", err)
	}
	pool := deck.Pool(items, cfg)
	out := cmd.OutOrStdout()
	if err := stats.RenderDueCounts(out, srs.CountStatuses(pool, now)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if !dueList {
		return nil
	}
	for _, item := range srs.DueItems(pool, now) {
		if _, err := fmt.Fprintf(out, "  %s %s\n", srs.StatusOf(item, now).Symbol(), deck.Preview(item)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.xlsx|file.csv>",
		Short: "Merge spreadsheet rows into the word list",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
	cmd.Flags().StringVar(&importCfg.SheetName, "sheet", "", "sheet name (default: first sheet)")
	cmd.Flags().IntVar(&importCfg.StartRow, "start-row", importCfg.StartRow, "first data row (1-based)")
	cmd.Flags().StringVar(&importCfg.WordColumn, "word-col", importCfg.WordColumn, "column with the word")
	cmd.Flags().StringVar(&importCfg.TranslationColumn, "translation-col", importCfg.TranslationColumn, "column with the translation")
	cmd.Flags().StringVar(&importCfg.DefinitionColumn, "definition-col", importCfg.DefinitionColumn, "column with the definition")
	cmd.Flags().StringVar(&importCfg.UnitColumn, "unit-col", importCfg.UnitColumn, "column with the unit")
	cmd.Flags().StringVar(&importCfg.PartOfSpeechColumn, "pos-col", importCfg.PartOfSpeechColumn, "column with the part of speech")
	cmd.Flags().StringVar(&importCfg.PronunciationColumn, "pron-col", importCfg.PronunciationColumn, "column with the pronunciation")
	cmd.Flags().StringVar(&importCfg.PageColumn, "page-col", importCfg.PageColumn, "column with the page number")
	return cmd
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := loadFileConfig(cmd)
	if err != nil {
		return err
	}
	logger := openLogger(fileCfg)
	defer logger.Sync()

	now := time.Now()
	var existing []*model.VocabularyItem
	if _, err := os.Stat(deckPath); err == nil {
		existing, err = vocab.Load(deckPath, now)
		if err != nil {
			return fmt.Errorf("failed to load word list: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat word list: %w", err)
	}

	cfg := importCfg
	cfg.FilePath = args[0]
	merged, result, err := vocab.Import(cfg, existing, now)
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", filepath.Base(cfg.FilePath), err)
	}
	for _, rowErr := range result.Errors {
		logErrln(rowErr)
	}
	if len(merged) == 0 {
		return fmt.Errorf("no words found in %s", cfg.FilePath)
	}
	if err := vocab.Save(deckPath, merged); err != nil {
		return fmt.Errorf("failed to save word list: %w", err)
	}
	logger.Info("spreadsheet imported",
		"file", cfg.FilePath,
		"deck", deckPath,
		"processed", result.TotalProcessed,
		"created", result.Created,
		"updated", result.Updated,
		"skipped", result.Skipped,
	)
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d rows into %s: %d new, %d updated, %d skipped\n",
		result.TotalProcessed, deckPath, result.Created, result.Updated, result.Skipped)
	return err
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the selected words",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	addFilterFlags(cmd)
	cmd.Flags().StringVar(&exportFormat, "format", export.FormatAnki, "anki, csv, json or stats")
	cmd.Flags().StringVar(&exportOut, "out", "", "output file (default: fiszki-<format>.<ext>)")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	if _, err := loadFileConfig(cmd); err != nil {
		return err
	}
	cfg := studyConfig()
	if err := validateStudyConfig(cfg); err != nil {
		return err
	}
	now := time.Now()
	items, err := vocab.Load(cfg.DeckPath, now)
	if err != nil {
		return fmt.Errorf("failed to load word list: %w", err)
	}
	pool := deck.Pool(items, cfg)
	format := strings.ToLower(exportFormat)
	out := exportOut
	if out == "" {
		out = defaultExportPath(format)
	}
	if err := export.ToFile(out, format, pool, now); err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d words to %s\n", len(pool), out)
	return err
}

func defaultExportPath(format string) string {
	ext := map[string]string{
		export.FormatAnki:  "txt",
		export.FormatCSV:   "csv",
		export.FormatJSON:  "json",
		export.FormatStats: "txt",
	}[format]
	if ext == "" {
		ext = "txt"
	}
	return fmt.Sprintf("fiszki-%s.%s", format, ext)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show study statistics",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsUnit, "unit", "", "unit filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().BoolVar(&statsTUI, "tui", false, "open the interactive dashboard")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	if _, err := loadFileConfig(cmd); err != nil {
		return err
	}
	cfg, err := statsConfig()
	if err != nil {
		return err
	}
	return withStore(func(ctx context.Context, st *store.Store) error {
		if statsTUI {
			program := tea.NewProgram(statsui.NewModel(st, cfg), tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("failed to run stats TUI: %w", err)
			}
			return nil
		}
		report, err := stats.BuildReport(ctx, st, cfg, time.Now())
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		return stats.RenderReport(cmd.OutOrStdout(), report, cfg.CurveWindow, stats.TerminalWidth())
	})
}

func statsConfig() (model.StatsConfig, error) {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsLast < 0 {
		return model.StatsConfig{}, fmt.Errorf("--last must be >= 0")
	}
	if statsCurveWindow < 1 {
		return model.StatsConfig{}, fmt.Errorf("--curve-window must be >= 1")
	}
	return model.StatsConfig{
		Unit:        statsUnit,
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}, nil
}
