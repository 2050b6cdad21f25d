// Package main provides the CLI entrypoint for quizdeck.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/QS3H/quizdeck/internal/catalog"
	"github.com/QS3H/quizdeck/internal/config"
	"github.com/QS3H/quizdeck/internal/report"
	"github.com/QS3H/quizdeck/internal/session"
	"github.com/QS3H/quizdeck/internal/store"
	"github.com/QS3H/quizdeck/internal/tui"
)

const (
	defaultFeedbackDelayMs = 1500
	defaultDarkTheme       = true
)

var (
	quizCatalogPath   string
	quizFeedbackDelay int
	quizDarkTheme     bool

	historyQuiz string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "quizdeck",
		Short:         "TUI quiz app",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runQuizCmd,
	}

	rootCmd.PersistentFlags().StringVar(&quizCatalogPath, "catalog", "", "path to a TOML quiz catalog (default: built-in)")
	rootCmd.Flags().IntVar(&quizFeedbackDelay, "feedback-delay", defaultFeedbackDelayMs, "answer feedback interval in milliseconds")
	rootCmd.Flags().BoolVar(&quizDarkTheme, "dark", defaultDarkTheme, "start with the dark theme")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCatalogCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newResetCmd())

	return rootCmd
}

func runQuizCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "catalog", &quizCatalogPath, fileCfg.Quiz.Catalog)
	applyIntConfig(cmd, "feedback-delay", &quizFeedbackDelay, fileCfg.Quiz.FeedbackDelayMs)
	applyBoolConfig(cmd, "dark", &quizDarkTheme, fileCfg.Quiz.DarkTheme)

	if quizFeedbackDelay <= 0 {
		return fmt.Errorf("--feedback-delay must be > 0")
	}

	cat, err := catalog.Load(resolveCatalogPath())
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	delay := time.Duration(quizFeedbackDelay) * time.Millisecond
	sess := session.New(cat, st, delay, quizDarkTheme)
	model := tui.NewModel(cat, sess, st)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
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

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Validate and list the quiz catalog",
		Args:  cobra.NoArgs,
		RunE:  runCatalogCmd,
	}
}

func runCatalogCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "catalog", &quizCatalogPath, fileCfg.Quiz.Catalog)

	cat, err := catalog.Load(resolveCatalogPath())
	if err != nil {
		return fmt.Errorf("catalog is invalid: %w", err)
	}
	for _, quiz := range cat.Quizzes {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s (%d questions)\n", quiz.Title, len(quiz.Questions)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show completed quiz runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyQuiz, "quiz", "", "quiz title filter")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	runs, err := st.ListRuns(cmd.Context(), historyQuiz)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	width := 0
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil {
			width = w
		}
	}
	if err := report.RenderHistory(cmd.OutOrStdout(), runs, width); err != nil {
		return fmt.Errorf("failed to render history: %w", err)
	}
	return nil
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the saved session state",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	for _, key := range session.StorageKeys() {
		if err := st.Delete(cmd.Context(), key); err != nil {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), "Session state cleared."); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func resolveCatalogPath() string {
	if quizCatalogPath != "" {
		return quizCatalogPath
	}
	return config.DefaultCatalogPath()
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

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# quizdeck configuration
# Uncomment a value to enable it. CLI flags override config values.

[quiz]
# catalog = ""              # Path to a TOML quiz catalog (default: built-in)
# feedback-delay-ms = %d  # Answer feedback interval in milliseconds
# dark-theme = %t         # Start with the dark theme
`,
		defaultFeedbackDelayMs,
		defaultDarkTheme,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
