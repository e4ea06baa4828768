package text

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/cloudjanitor/vpc-reaper/internal/core/domain"
	"github.com/cloudjanitor/vpc-reaper/internal/core/ports"
)

const ReporterTypeText = "text"

const sampleLimit = 3

type Config struct {
	NoColor bool `mapstructure:"no_color"`
}

type Reporter struct {
	config Config
	writer io.Writer
	logger ports.Logger
}

func NewReporter(cfg Config, logger ports.Logger) (*Reporter, error) {
	if cfg.NoColor || !isTerminal(os.Stdout) {
		color.NoColor = true
	}

	return &Reporter{
		config: cfg,
		writer: os.Stdout,
		logger: logger,
	}, nil
}

// NewReporterWithWriter exists for tests that capture output.
func NewReporterWithWriter(cfg Config, logger ports.Logger, w io.Writer) *Reporter {
	return &Reporter{config: cfg, writer: w, logger: logger}
}

func isTerminal(f *os.File) bool {
	stat, _ := f.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

func (r *Reporter) Report(ctx context.Context, report *domain.Report) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	title := fmt.Sprintf("Teardown Report for %s", report.ScopeID)
	if report.DryRun {
		title = fmt.Sprintf("Teardown Plan for %s (dry run)", report.ScopeID)
	}
	fmt.Fprintln(r.writer, title)
	fmt.Fprintln(r.writer, strings.Repeat("=", len(title)))

	if report.DeletedCount() == 0 && report.FailureCount() == 0 {
		fmt.Fprintln(r.writer, "Nothing to delete.")
	} else {
		tw := tabwriter.NewWriter(r.writer, 0, 8, 2, ' ', 0)

		verb := "Deleted"
		if report.DryRun {
			verb = "Would delete"
		}

		fmt.Fprintln(tw, "Kind\tCount\tResources")
		fmt.Fprintln(tw, "----\t-----\t---------")
		for _, kind := range report.DeletedKinds() {
			ids := report.Deleted[kind]
			fmt.Fprintf(tw, "%s\t%s\t%s\n", cyan(kind), green(len(ids)), sample(ids))
		}
		for _, kind := range report.FailureKinds() {
			failures := report.Failures[kind]
			ids := make([]string, 0, len(failures))
			for _, f := range failures {
				ids = append(ids, f.ID)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", cyan(kind), red(fmt.Sprintf("%d failed", len(ids))), sample(ids))
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		fmt.Fprintf(r.writer, "\n%s %d resources", verb, report.DeletedCount())
		if report.FailureCount() > 0 {
			fmt.Fprintf(r.writer, ", %s", red(fmt.Sprintf("%d failed", report.FailureCount())))
		}
		fmt.Fprintln(r.writer)
	}

	for _, kind := range report.FailureKinds() {
		for _, f := range report.Failures[kind] {
			fmt.Fprintf(r.writer, "%s %s %s: %s\n", red("FAILED"), kind, f.ID, f.Reason)
			if f.Guidance != "" {
				fmt.Fprintf(r.writer, "  %s\n", yellow(f.Guidance))
			}
		}
	}

	fmt.Fprintln(r.writer)
	switch {
	case report.Succeeded() && report.DryRun:
		fmt.Fprintln(r.writer, green(fmt.Sprintf("VPC %s would be deleted.", report.ScopeID)))
	case report.Succeeded():
		fmt.Fprintln(r.writer, green(fmt.Sprintf("VPC %s deleted.", report.ScopeID)))
	default:
		fmt.Fprintln(r.writer, red(fmt.Sprintf("VPC %s was NOT deleted.", report.ScopeID)))
	}
	return nil
}

func sample(ids []string) string {
	if len(ids) <= sampleLimit {
		return strings.Join(ids, ", ")
	}
	shown := strings.Join(ids[:sampleLimit], ", ")
	return fmt.Sprintf("%s, +%d more", shown, len(ids)-sampleLimit)
}
