package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/yildizm/speedx/internal/formatter"
	"github.com/yildizm/speedx/internal/notify"
	"github.com/yildizm/speedx/internal/orchestrator"
)

// errNoMetrics is returned when the service answered without metrics to apply
var errNoMetrics = errors.New("the analysis service returned no metrics")

// reportedError marks an error the user has already been shown
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	return &reportedError{err: err}
}

// IsReported reports whether err was already printed by a notification sink
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

var (
	analyzeFormat     string
	analyzeTimeout    time.Duration
	analyzeOutputFile string
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <url>",
		Short: "Analyze a single page and print its metrics",
		Long: `Submit one page to the analysis service and print the returned scores and
metrics. Errors are reported on stderr and the command exits non-zero.
The URL is sent exactly as given; only an empty argument is rejected.

Examples:
  speedx analyze https://youtube.com
  speedx analyze --format json https://example.com
  speedx analyze --format markdown --output-file report.md https://example.com`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringVarP(&analyzeFormat, "format", "f", "", "output format (text, json, markdown, csv)")
	cmd.Flags().DurationVar(&analyzeTimeout, "timeout", 0, "request timeout (0 waits indefinitely)")
	cmd.Flags().StringVar(&analyzeOutputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	// Get configuration
	cfg := *GetGlobalConfig()

	// Use config values if flags weren't explicitly set
	if cmd.Flag("timeout").Changed {
		cfg.Backend.Timeout = analyzeTimeout
	}
	format := analyzeFormat
	if format == "" {
		format = cfg.Output.DefaultFormat
	}

	f, err := getFormatter(format, colorEnabled() && analyzeOutputFile == "")
	if err != nil {
		return err
	}

	// failures reach the user through the sink; the log only adds detail
	lg := newLogger()
	if isVerbose() {
		lg.SetOutput(cmd.ErrOrStderr())
	} else {
		lg.SetOutput(io.Discard)
	}
	sink := notify.NewWriterSink(cmd.ErrOrStderr(), !colorEnabled())
	orch, err := newSession(&cfg, lg, sink)
	if err != nil {
		return err
	}

	report, err := analyzeURL(cmd.Context(), orch, args[0])
	if err != nil {
		return err
	}

	output, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	return handleOutputDestination(cmd.OutOrStdout(), output)
}

// analyzeURL runs one request through the orchestrator and builds the report.
// Failures have already been written to the sink when an error is returned.
func analyzeURL(ctx context.Context, orch *orchestrator.Orchestrator, url string) (*formatter.Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	ticket, err := orch.Begin(url)
	if err != nil {
		return nil, reported(err)
	}

	outcome := orch.Dispatch(ctx, ticket)
	if err := orch.Resolve(outcome); err != nil {
		return nil, reported(err)
	}
	if orch.Session().Applied.Get() == 0 {
		return nil, errNoMetrics
	}

	report := &formatter.Report{
		URL:        ticket.URL,
		AnalyzedAt: ticket.IssuedAt,
		Duration:   outcome.Duration,
		Result:     orch.Store().Get(),
	}
	if outcome.Response != nil {
		report.RequestID = outcome.Response.RequestID
	}
	return report, nil
}

// handleOutputDestination writes output to --output-file or to w
func handleOutputDestination(w io.Writer, output []byte) error {
	if analyzeOutputFile == "" {
		_, err := w.Write(output)
		return err
	}

	if err := validateOutputFilePath(analyzeOutputFile); err != nil {
		return fmt.Errorf("invalid output file path: %w", err)
	}
	if err := writeOutputBytesToFile(output, analyzeOutputFile); err != nil {
		return fmt.Errorf("failed to write output to file: %w", err)
	}

	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Output saved to: %s\n", analyzeOutputFile)
	}
	return nil
}

func validateOutputFilePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty file path")
	}
	if info, err := os.Stat(filepath.Clean(path)); err == nil && info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}
	return nil
}

func getFormatter(format string, color bool) (formatter.Formatter, error) {
	f, err := formatter.New(format, color)
	if err != nil {
		return nil, fmt.Errorf("invalid output format: %w", err)
	}
	return f, nil
}

// writeOutputBytesToFile writes output to a file with proper error handling
func writeOutputBytesToFile(output []byte, filePath string) error {
	cleanPath := filepath.Clean(filePath)

	// Create or truncate the file
	file, err := os.Create(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && isVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: failed to close output file: %v\n", closeErr)
		}
	}()

	if _, err := file.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
