package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/yildizm/speedx/internal/config"
	"github.com/yildizm/speedx/internal/logger"
	"github.com/yildizm/speedx/internal/notify"
	"github.com/yildizm/speedx/internal/ui"
)

func newTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui [url]",
		Short: "Start the interactive client",
		Long: `Start the interactive client. Type a page URL and press enter to analyze it.

When a URL is given it is placed in the input field and analyzed right away.
Changes to the configuration file are applied while the client is running.

Examples:
  speedx tui
  speedx tui https://youtube.com
  speedx tui --theme high-contrast`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var url string
			if len(args) == 1 {
				url = args[0]
			}
			return runTUI(cmd, url, url != "")
		},
	}
}

func runTUI(cmd *cobra.Command, initialURL string, autoStart bool) error {
	cfg := GetGlobalConfig()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	// The alternate screen owns stdout, so logs only go to a file.
	lg := newLogger()
	closeLog, err := openLogFile(lg, cfg.Output.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	toaster := notify.NewToaster()
	orch, err := newSession(cfg, lg, toaster)
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, orch, toaster, ui.Options{
		InitialURL:    initialURL,
		AutoStart:     autoStart,
		Theme:         cfg.UI.Theme,
		IndicatorSize: cfg.UI.IndicatorSize,
		StrokeWidth:   cfg.UI.StrokeWidth,
		Reloads:       watchConfig(ctx, lg),
		Logger:        lg.WithComponent("ui"),
	})

	lg.Info("interactive client started (backend=%s)", cfg.Backend.BaseURL)
	return ui.Run(ctx, model)
}

// watchConfig streams reloaded configurations from the active config file.
// It returns nil when no file is in use.
func watchConfig(ctx context.Context, lg *logger.Logger) <-chan *config.Config {
	path := cfgFile
	if path == "" {
		found, ok := config.FindConfigFile()
		if !ok {
			return nil
		}
		path = found
	}

	reloads := make(chan *config.Config, 1)
	go func() {
		err := config.NewLoader().Watch(ctx, path,
			func(cfg *config.Config) {
				if err := applyFlagOverrides(cfg); err != nil {
					lg.Warn("ignoring reloaded config: %v", err)
					return
				}
				// keep only the newest pending reload
				select {
				case <-reloads:
				default:
				}
				reloads <- cfg
			},
			func(err error) {
				lg.Warn("config reload failed: %v", err)
			},
		)
		if err != nil {
			lg.Warn("config watch stopped: %v", err)
		}
	}()

	lg.Debug("watching %s for changes", path)
	return reloads
}
