package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/finance-tracker/ledger/internal/application/usecase/export"
	"github.com/finance-tracker/ledger/internal/application/usecase/insight"
)

type exportCmd struct {
	app    *App
	output string
	start  string
	end    string
}

// Name implements subcommands.Command.
func (*exportCmd) Name() string { return "export" }

// Synopsis implements subcommands.Command.
func (*exportCmd) Synopsis() string { return "write the transaction history as CSV" }

// Usage implements subcommands.Command.
func (*exportCmd) Usage() string {
	return `ledgerctl export [-o <file>] [-s <start>] [-e <end>]

  Writes to a dated file in the current directory unless -o is given.
  Use -o - to write to standard output.
`
}

// SetFlags registers the command flags.
func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file, or - for standard output.")
	f.StringVar(&c.start, "s", "", "Start date (YYYY-MM-DD), inclusive.")
	f.StringVar(&c.end, "e", "", "End date (YYYY-MM-DD), inclusive.")
}

// Execute runs the export command.
func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	from, to, err := c.app.parseRange(c.start, c.end)
	if err != nil {
		return c.app.usage("%v", err)
	}
	out, err := export.NewExportCSVUseCase(c.app.Ledgers).Execute(ctx, export.ExportCSVInput{
		UserID:    LocalOwner,
		StartDate: from,
		EndDate:   to,
		Location:  c.app.location(),
	})
	if err != nil {
		return c.app.fail(err)
	}

	if c.output == "-" {
		if _, err := c.app.Out.Write(out.Content); err != nil {
			return c.app.fail(err)
		}
		return subcommands.ExitSuccess
	}
	path := c.output
	if path == "" {
		path = out.Filename
	}
	if err := os.WriteFile(path, out.Content, 0o644); err != nil {
		return c.app.fail(fmt.Errorf("failed to write %s: %w", path, err))
	}
	fmt.Fprintf(c.app.Out, "Exported %d transactions to %s\n", out.Rows, path)
	return subcommands.ExitSuccess
}

type insightsCmd struct {
	app   *App
	start string
	end   string
}

// Name implements subcommands.Command.
func (*insightsCmd) Name() string { return "insights" }

// Synopsis implements subcommands.Command.
func (*insightsCmd) Synopsis() string { return "ask the AI model for spending insights" }

// Usage implements subcommands.Command.
func (*insightsCmd) Usage() string {
	return `ledgerctl insights [-s <start>] [-e <end>]

  Requires GEMINI_API_KEY.
`
}

// SetFlags registers the command flags.
func (c *insightsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "Start date (YYYY-MM-DD), inclusive.")
	f.StringVar(&c.end, "e", "", "End date (YYYY-MM-DD), inclusive.")
}

// Execute runs the insights command.
func (c *insightsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.app.Insights == nil {
		return c.app.fail(fmt.Errorf("insights are not configured, set GEMINI_API_KEY"))
	}
	from, to, err := c.app.parseRange(c.start, c.end)
	if err != nil {
		return c.app.usage("%v", err)
	}
	out, err := insight.NewGenerateInsightsUseCase(c.app.Ledgers, c.app.Insights).Execute(ctx, insight.GenerateInsightsInput{
		UserID:    LocalOwner,
		StartDate: from,
		EndDate:   to,
	})
	if err != nil {
		return c.app.fail(err)
	}
	c.app.printMarkdown(fmt.Sprintf("# Insights\n\nBalance %s across %d transactions.\n\n%s\n",
		out.TotalBalance, out.TransactionCount, out.Insights))
	return subcommands.ExitSuccess
}
