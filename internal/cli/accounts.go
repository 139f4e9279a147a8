package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	"github.com/finance-tracker/ledger/internal/application/usecase/account"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

type accountsCmd struct {
	app *App
}

// Name implements subcommands.Command.
func (*accountsCmd) Name() string { return "accounts" }

// Synopsis implements subcommands.Command.
func (*accountsCmd) Synopsis() string { return "list accounts and their balances" }

// Usage implements subcommands.Command.
func (*accountsCmd) Usage() string {
	return `ledgerctl accounts
`
}

// SetFlags implements subcommands.Command.
func (*accountsCmd) SetFlags(*flag.FlagSet) {}

// Execute runs the accounts command.
func (c *accountsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	out, err := account.NewListAccountsUseCase(c.app.Ledgers).Execute(ctx, account.ListAccountsInput{UserID: LocalOwner})
	if err != nil {
		return c.app.fail(err)
	}
	if len(out.Accounts) == 0 {
		fmt.Fprintln(c.app.Out, "No accounts yet")
		return subcommands.ExitSuccess
	}

	var b strings.Builder
	b.WriteString("| ID | Account | Balance |\n|---|---|---:|\n")
	for _, a := range out.Accounts {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", shortID(a.ID), cell(a.Name), valueobject.DisplayAmount(a.Balance, out.Currency))
	}
	fmt.Fprintf(&b, "| | **Total** | **%s** |\n", valueobject.DisplayAmount(out.TotalBalance, out.Currency))
	c.app.printMarkdown(b.String())
	return subcommands.ExitSuccess
}

type addAccountCmd struct {
	app     *App
	name    string
	balance string
}

// Name implements subcommands.Command.
func (*addAccountCmd) Name() string { return "add-account" }

// Synopsis implements subcommands.Command.
func (*addAccountCmd) Synopsis() string { return "open an account with an initial balance" }

// Usage implements subcommands.Command.
func (*addAccountCmd) Usage() string {
	return `ledgerctl add-account -n <name> [-b <initial balance>]
`
}

// SetFlags registers the command flags.
func (c *addAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "Account name.")
	f.StringVar(&c.balance, "b", "0", "Initial balance, zero or more.")
}

// Execute runs the addAccount command.
func (c *addAccountCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	balance, err := parseAmount(c.balance)
	if err != nil {
		return c.app.usage("%v", err)
	}
	out, err := account.NewCreateAccountUseCase(c.app.Ledgers).Execute(ctx, account.CreateAccountInput{
		UserID:         LocalOwner,
		Name:           c.name,
		InitialBalance: balance,
	})
	if err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintf(c.app.Out, "Created account %s (%s)\n", out.Account.Name, shortID(out.Account.ID))
	return c.app.done()
}

type renameAccountCmd struct {
	app *App
}

// Name implements subcommands.Command.
func (*renameAccountCmd) Name() string { return "rename-account" }

// Synopsis implements subcommands.Command.
func (*renameAccountCmd) Synopsis() string { return "rename an account" }

// Usage implements subcommands.Command.
func (*renameAccountCmd) Usage() string {
	return `ledgerctl rename-account <account> <new name>

  <account> is an account name, id or id prefix.
`
}

// SetFlags implements subcommands.Command.
func (*renameAccountCmd) SetFlags(*flag.FlagSet) {}

// Execute runs the renameAccount command.
func (c *renameAccountCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 {
		return c.app.usage("expected an account and a new name")
	}
	id, err := c.app.resolveAccount(ctx, f.Arg(0))
	if err != nil {
		return c.app.fail(err)
	}
	out, err := account.NewRenameAccountUseCase(c.app.Ledgers).Execute(ctx, account.RenameAccountInput{
		UserID:    LocalOwner,
		AccountID: id,
		Name:      strings.Join(f.Args()[1:], " "),
	})
	if err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintf(c.app.Out, "Renamed account to %s\n", out.Account.Name)
	return c.app.done()
}

type deleteAccountCmd struct {
	app *App
}

// Name implements subcommands.Command.
func (*deleteAccountCmd) Name() string { return "delete-account" }

// Synopsis implements subcommands.Command.
func (*deleteAccountCmd) Synopsis() string { return "delete an account, keeping its transactions" }

// Usage implements subcommands.Command.
func (*deleteAccountCmd) Usage() string {
	return `ledgerctl delete-account <account>

  The account's transactions stay in the history and are marked orphaned.
`
}

// SetFlags implements subcommands.Command.
func (*deleteAccountCmd) SetFlags(*flag.FlagSet) {}

// Execute runs the deleteAccount command.
func (c *deleteAccountCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.usage("expected exactly one account")
	}
	id, err := c.app.resolveAccount(ctx, f.Arg(0))
	if err != nil {
		return c.app.fail(err)
	}
	if _, err := account.NewDeleteAccountUseCase(c.app.Ledgers).Execute(ctx, account.DeleteAccountInput{
		UserID:    LocalOwner,
		AccountID: id,
	}); err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintln(c.app.Out, "Account deleted")
	return c.app.done()
}
