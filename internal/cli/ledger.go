package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	"github.com/finance-tracker/ledger/internal/application/usecase/settings"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

type setupCmd struct {
	app      *App
	currency string
}

// Name implements subcommands.Command.
func (*setupCmd) Name() string { return "setup" }

// Synopsis implements subcommands.Command.
func (*setupCmd) Synopsis() string { return "choose the ledger currency" }

// Usage implements subcommands.Command.
func (*setupCmd) Usage() string {
	return `ledgerctl setup -c <currency>

  Sets the ISO 4217 currency of the ledger. Accounts can only be created once
  a currency is set. Changing it later does not convert stored amounts.
`
}

// SetFlags registers the command flags.
func (c *setupCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", "", "ISO 4217 currency code, e.g. USD.")
}

// Execute runs the setup command.
func (c *setupCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.currency == "" {
		return c.app.usage("-c is required")
	}
	out, err := settings.NewSetCurrencyUseCase(c.app.Ledgers).Execute(ctx, settings.SetCurrencyInput{
		UserID:   LocalOwner,
		Currency: c.currency,
	})
	if err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintf(c.app.Out, "Currency set to %s\n", out.Currency)
	return c.app.done()
}

type balanceCmd struct {
	app *App
}

// Name implements subcommands.Command.
func (*balanceCmd) Name() string { return "balance" }

// Synopsis implements subcommands.Command.
func (*balanceCmd) Synopsis() string { return "show the total balance and ledger summary" }

// Usage implements subcommands.Command.
func (*balanceCmd) Usage() string {
	return `ledgerctl balance
`
}

// SetFlags implements subcommands.Command.
func (*balanceCmd) SetFlags(*flag.FlagSet) {}

// Execute runs the balance command.
func (c *balanceCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	out, err := settings.NewGetOverviewUseCase(c.app.Ledgers).Execute(ctx, settings.GetOverviewInput{UserID: LocalOwner})
	if err != nil {
		return c.app.fail(err)
	}
	if out.NeedsSetup {
		fmt.Fprintln(c.app.Out, "No currency set yet. Run: ledgerctl setup -c <currency>")
		return subcommands.ExitSuccess
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Balance: %s\n\n", out.FormattedBalance)
	fmt.Fprintf(&b, "- Currency: %s\n", out.Currency)
	fmt.Fprintf(&b, "- Accounts: %d\n", out.AccountCount)
	fmt.Fprintf(&b, "- Transactions: %d\n", out.TransactionCount)
	if out.OrphanedTransactions > 0 {
		fmt.Fprintf(&b, "- Orphaned transactions: %d\n", out.OrphanedTransactions)
	}
	if out.SyncWarning != "" {
		fmt.Fprintf(&b, "\n> Warning: %s\n", out.SyncWarning)
	}
	c.app.printMarkdown(b.String())
	return subcommands.ExitSuccess
}

type verifyCmd struct {
	app *App
}

// Name implements subcommands.Command.
func (*verifyCmd) Name() string { return "verify" }

// Synopsis implements subcommands.Command.
func (*verifyCmd) Synopsis() string { return "replay the transaction log against account balances" }

// Usage implements subcommands.Command.
func (*verifyCmd) Usage() string {
	return `ledgerctl verify

  Exits with a failure status when a stored balance disagrees with the log.
`
}

// SetFlags implements subcommands.Command.
func (*verifyCmd) SetFlags(*flag.FlagSet) {}

// Execute runs the verify command.
func (c *verifyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	out, err := settings.NewVerifyLedgerUseCase(c.app.Ledgers).Execute(ctx, settings.VerifyLedgerInput{UserID: LocalOwner})
	if err != nil {
		return c.app.fail(err)
	}
	if out.Report.Consistent {
		fmt.Fprintf(c.app.Out, "OK: %d accounts match the transaction log\n", out.Report.Checked)
		return subcommands.ExitSuccess
	}

	var b strings.Builder
	b.WriteString("| Account | Stored | Replayed |\n|---|---:|---:|\n")
	for _, d := range out.Report.Discrepancies {
		fmt.Fprintf(&b, "| %s | %s | %s |\n",
			cell(d.Name),
			valueobject.PlainAmount(d.Stored, out.Currency),
			valueobject.PlainAmount(d.Replayed, out.Currency),
		)
	}
	c.app.printMarkdown(b.String())
	return subcommands.ExitFailure
}

type resetCmd struct {
	app     *App
	confirm string
}

// Name implements subcommands.Command.
func (*resetCmd) Name() string { return "reset" }

// Synopsis implements subcommands.Command.
func (*resetCmd) Synopsis() string { return "delete every account and transaction" }

// Usage implements subcommands.Command.
func (*resetCmd) Usage() string {
	return `ledgerctl reset -confirm RESET

  Clears accounts, transactions and the currency. Categories are kept.
`
}

// SetFlags registers the command flags.
func (c *resetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.confirm, "confirm", "", "Must be exactly "+settings.ResetConfirmation+".")
}

// Execute runs the reset command.
func (c *resetCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	err := settings.NewResetLedgerUseCase(c.app.Ledgers).Execute(ctx, settings.ResetLedgerInput{
		UserID:       LocalOwner,
		Confirmation: c.confirm,
	})
	if err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintln(c.app.Out, "Ledger reset")
	return c.app.done()
}
