// Package main provides the CLI entrypoint for okulo.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/fovealabs/okulo/internal/analytics"
	"github.com/fovealabs/okulo/internal/config"
	"github.com/fovealabs/okulo/internal/levels"
	"github.com/fovealabs/okulo/internal/model"
	"github.com/fovealabs/okulo/internal/progress"
	"github.com/fovealabs/okulo/internal/session"
	"github.com/fovealabs/okulo/internal/statsui"
	"github.com/fovealabs/okulo/internal/store"
	"github.com/fovealabs/okulo/internal/tui"
)

const defaultWindowDays = 7

var (
	runLevel string
	runUser  string

	statsUser  string
	statsFrom  string
	statsTo    string
	statsPlain bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "okulo",
		Short:         "Terminal vision-therapy trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runLevelCmd,
	}

	rootCmd.Flags().StringVar(&runLevel, "level", "", "level to run (see: okulo levels)")
	rootCmd.Flags().StringVar(&runUser, "user", progress.DefaultUserID, "user account")

	rootCmd.AddCommand(newLevelsCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runLevelCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "level", &runLevel, fileCfg.Therapy.Level)
	applyStringConfig(cmd, "user", &runUser, fileCfg.Therapy.User)

	if runLevel == "" {
		return fmt.Errorf("no level selected; pick one with --level (see: okulo levels)")
	}
	if runUser == "" {
		return fmt.Errorf("--user must not be empty")
	}
	level, err := levels.Find(runLevel)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	clock := session.SystemClock{}
	recorder := progress.NewRecorder(st, clock)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	runModel := tui.NewModel(level, recorder, runUser, clock, rng)
	program := tea.NewProgram(runModel, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newLevelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List the level catalog",
		Args:  cobra.NoArgs,
		RunE:  runLevelsCmd,
	}
}

func runLevelsCmd(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	for _, lvl := range levels.Catalog() {
		line := fmt.Sprintf("%-10s %-16s %-8s %-10s trials=%d policy=%s",
			lvl.ID, lvl.Title, lvl.Category, lvl.Variant, lvl.Trials, lvl.Policy)
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show therapy-time analytics",
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsUser, "user", progress.DefaultUserID, "user account")
	cmd.Flags().StringVar(&statsFrom, "from", "", "range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&statsTo, "to", "", "range end (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print to stdout instead of the TUI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	windowDays := defaultWindowDays
	if fileCfg.Stats.WindowDays != nil && *fileCfg.Stats.WindowDays > 0 {
		windowDays = *fileCfg.Stats.WindowDays
	}
	applyStringConfig(cmd, "user", &statsUser, fileCfg.Therapy.User)

	to := time.Now()
	if statsTo != "" {
		if to, err = time.ParseInLocation(analytics.DateLabel, statsTo, time.Local); err != nil {
			return fmt.Errorf("invalid --to value: %w", err)
		}
	}
	from := to.AddDate(0, 0, -(windowDays - 1))
	if statsFrom != "" {
		if from, err = time.ParseInLocation(analytics.DateLabel, statsFrom, time.Local); err != nil {
			return fmt.Errorf("invalid --from value: %w", err)
		}
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	clock := session.SystemClock{}
	recorder := progress.NewRecorder(st, clock)
	cfg := model.StatsConfig{UserID: statsUser, From: from, To: to}

	if statsPlain {
		return renderPlainStats(recorder, cfg)
	}

	statsModel := statsui.NewModel(recorder, cfg)
	program := tea.NewProgram(statsModel, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func renderPlainStats(recorder *progress.Recorder, cfg model.StatsConfig) error {
	rec, err := recorder.Load(cfg.UserID)
	if err != nil {
		return err
	}
	report := analytics.Aggregate(rec.History, cfg.From, cfg.To)
	out := os.Stdout
	if err := analytics.RenderSummary(out, report); err != nil {
		return err
	}
	if err := analytics.PlotBuckets(out, report.Buckets, 0, 0, false); err != nil {
		return err
	}
	if err := analytics.RenderDayTable(out, report); err != nil {
		return err
	}
	return analytics.RenderHistoryTable(out, report)
}

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
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func openStore() (*store.Store, error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	if err := progress.Seed(st, session.SystemClock{}); err != nil {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
		return nil, fmt.Errorf("failed to seed accounts: %w", err)
	}
	return st, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# okulo configuration
# Uncomment a value to enable it. CLI flags override config values.

[therapy]
# user = %q         # Default user account
# level = "amblyo-1"       # Default level for bare "okulo"

[stats]
# window-days = %d          # Default analytics range length
`,
		progress.DefaultUserID,
		defaultWindowDays,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
