package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/schedule2ics/internal/calendar"
	"github.com/pfrederiksen/schedule2ics/internal/config"
	"github.com/pfrederiksen/schedule2ics/internal/logger"
	"github.com/pfrederiksen/schedule2ics/internal/scraper"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// Version is set at build time
var Version = "dev"

type rootOptions struct {
	configPath   string
	writeConfig  string
	input        string
	output       string
	calendarName string
	timezone     string
	year         int
	lenient      bool
	verify       bool
	format       string
	sortOrder    string
	verbose      bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "schedule2ics",
		Short: "Convert a page-builder event schedule into an iCalendar file",
		Long: `Reads an HTML schedule page made of date headings and event blocks,
extracts every event with its location and time range, and writes them
to an .ics file that calendar applications can import.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	cmd.Flags().StringVar(&opts.writeConfig, "write-config", "", "Save the effective settings to this YAML file and exit")
	cmd.Flags().StringVarP(&opts.input, "input", "i", config.DefaultInput, "Input HTML file, http(s) URL, or - for stdin")
	cmd.Flags().StringVarP(&opts.output, "output", "o", config.DefaultOutput, "Output .ics file, or - for stdout")
	cmd.Flags().StringVar(&opts.calendarName, "calendar-name", "", "Calendar name (X-WR-CALNAME)")
	cmd.Flags().StringVar(&opts.timezone, "timezone", "", "IANA timezone for event times (default: local offset)")
	cmd.Flags().IntVar(&opts.year, "year", 0, "Year for date headings (default: current year)")
	cmd.Flags().BoolVar(&opts.lenient, "lenient", false, "Skip blocks with unreadable dates instead of failing")
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "Read the written calendar back and check every event")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Summary format: text or json")
	cmd.Flags().StringVar(&opts.sortOrder, "sort", string(SortByDocument), "Event order: document, start or title")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Enable debug logging and detailed summary")

	return cmd
}

// resolveConfig merges defaults, the config file and explicitly set flags
func resolveConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = opts.input
	}
	if flags.Changed("output") {
		cfg.Output = opts.output
	}
	if flags.Changed("calendar-name") {
		cfg.CalendarName = opts.calendarName
	}
	if flags.Changed("timezone") {
		cfg.Timezone = opts.timezone
	}
	if flags.Changed("year") {
		cfg.Year = opts.year
	}
	if flags.Changed("lenient") {
		cfg.Lenient = opts.lenient
	}
	if opts.verbose {
		cfg.LogLevel = string(logger.LevelDebug)
	}

	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runConvert is the main command logic
func runConvert(cmd *cobra.Command, opts *rootOptions) error {
	format := OutputFormat(strings.ToLower(opts.format))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", opts.format)
	}

	order := SortOrder(strings.ToLower(opts.sortOrder))
	if !order.Valid() {
		return fmt.Errorf("invalid sort order: %s (must be 'document', 'start' or 'title')", opts.sortOrder)
	}

	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if opts.writeConfig != "" {
		if err := config.Save(opts.writeConfig, cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", opts.writeConfig)
		return nil
	}

	level, _ := logger.ParseLevel(cfg.LogLevel)
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))

	loc, _ := cfg.Location()
	sc := scraper.New(scraper.Options{
		Year:     cfg.Year,
		Location: loc,
		Lenient:  cfg.Lenient,
	})

	logger.Debug("Loading schedule", logger.Fields{"input": cfg.Input})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := sc.Load(ctx, cfg.Input)
	if err != nil {
		return fmt.Errorf("loading schedule: %w", err)
	}

	sortEvents(result.Events, order)

	calOpts := calendar.Options{Name: cfg.CalendarName}
	toStdout := cfg.Output == "-"

	var written bytes.Buffer
	if toStdout {
		if err := calendar.Write(io.MultiWriter(cmd.OutOrStdout(), &written), result.Events, calOpts); err != nil {
			return err
		}
	} else {
		if err := calendar.WriteFile(cfg.Output, result.Events, calOpts); err != nil {
			return err
		}
		logger.Info("Calendar written", logger.Fields{"path": cfg.Output, "events": len(result.Events)})
	}

	if opts.verify {
		if err := verifyOutput(cfg.Output, written.Bytes(), result); err != nil {
			return fmt.Errorf("verifying calendar: %w", err)
		}
		logger.Info("Calendar verified", logger.Fields{"events": len(result.Events)})
	}

	logger.Debug("Run metrics", logger.Fields{"metrics": logger.GetMetricsSnapshot()})

	if toStdout {
		return nil
	}

	summary := &OutputResult{
		GeneratedAt: time.Now().UTC(),
		Input:       cfg.Input,
		Output:      cfg.Output,
		Events:      result.Events,
		EventCount:  len(result.Events),
		Skipped:     len(result.Skipped),
		Verified:    opts.verify,
	}
	if err := WriteOutput(cmd.OutOrStdout(), summary, format, opts.verbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

func verifyOutput(path string, written []byte, result *scraper.Result) error {
	var (
		entries []calendar.Entry
		err     error
	)
	if path == "-" {
		entries, err = calendar.ReadEntries(bytes.NewReader(written))
	} else {
		entries, err = calendar.ReadFile(path)
	}
	if err != nil {
		return err
	}
	return calendar.Verify(entries, result.Events)
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
