package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/yildizm/speedx/internal/config"
	"github.com/yildizm/speedx/internal/emoji"
	"golang.org/x/term"
)

var (
	cfgFile    string
	verbose    bool
	noColor    bool
	noEmoji    bool
	backendURL string
	themeName  string

	globalConfig *config.Config
	appVersion   = "dev"
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	appVersion = version

	rootCmd := &cobra.Command{
		Use:   "speedx",
		Short: "Page performance analysis client",
		Long: `SpeedX submits a page URL to a remote analysis service and shows the
accessibility, best-practices, performance and SEO scores it computes, along
with load time, total request size and request count.

Run without a subcommand in a terminal to start the interactive client.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}
			emoji.SetEmojiDisabled(noEmoji)

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			globalConfig = cfg

			if !colorEnabled() {
				lipgloss.SetColorProfile(termenv.Ascii)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isInteractive() {
				return cmd.Help()
			}
			return runTUI(cmd, "", false)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend-url", "", "analysis service base URL")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "interactive client theme (default, high-contrast, minimal)")

	// Add subcommands
	rootCmd.AddCommand(newTUICommand())
	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

// loadConfig loads the configuration files and applies the global flags on
// top. The config subcommands read files themselves and skip this.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if isConfigCommand(cmd) {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.NewLoader().LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := applyFlagOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlagOverrides lets the global flags win over every file and env value
func applyFlagOverrides(cfg *config.Config) error {
	if backendURL != "" {
		cfg.Backend.BaseURL = backendURL
	}
	if themeName != "" {
		cfg.UI.Theme = themeName
	}
	if verbose {
		cfg.Output.Verbose = true
	}
	if noColor {
		cfg.Output.ColorMode = "never"
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" {
			return true
		}
	}
	return false
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "SpeedX %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Backend: %s\n", config.DefaultBackendURL())
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// Global helpers

// GetGlobalConfig returns the configuration loaded for the running command
func GetGlobalConfig() *config.Config {
	if globalConfig == nil {
		return config.DefaultConfig()
	}
	return globalConfig
}

func isVerbose() bool {
	return verbose || GetGlobalConfig().Output.Verbose
}

// colorEnabled resolves output.color_mode against the terminal
func colorEnabled() bool {
	switch GetGlobalConfig().Output.ColorMode {
	case "never":
		return false
	case "always":
		return true
	default:
		return !noColor && term.IsTerminal(int(os.Stdout.Fd()))
	}
}

// isInteractive reports whether both ends of the session are a terminal
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func userAgent() string {
	return "speedx/" + appVersion
}
