package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/google/subcommands"
	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/application/usecase/transaction"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// flowCmd records an income or an expenditure depending on kind.
type flowCmd struct {
	app      *App
	kind     entity.TransactionKind
	account  string
	amount   string
	remarks  string
	category string
	date     string
}

// Name implements subcommands.Command.
func (c *flowCmd) Name() string {
	if c.kind == entity.TransactionKindIncome {
		return "income"
	}
	return "expense"
}

// Synopsis implements subcommands.Command.
func (c *flowCmd) Synopsis() string {
	if c.kind == entity.TransactionKindIncome {
		return "record money received into an account"
	}
	return "record money spent from an account"
}

// Usage implements subcommands.Command.
func (c *flowCmd) Usage() string {
	return fmt.Sprintf(`ledgerctl %s -a <account> -m <amount> [-r <remarks>] [-c <category>] [-d <date>]
`, c.Name())
}

// SetFlags registers the command flags.
func (c *flowCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account name or id.")
	f.StringVar(&c.amount, "m", "", "Amount, greater than zero.")
	f.StringVar(&c.remarks, "r", "", "Free text remarks.")
	f.StringVar(&c.category, "c", "", "Category name or id.")
	f.StringVar(&c.date, "d", "", "Date (YYYY-MM-DD). Defaults to now.")
}

// Execute runs the flow command.
func (c *flowCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || c.amount == "" {
		return c.app.usage("-a and -m are required")
	}
	amount, err := parseAmount(c.amount)
	if err != nil {
		return c.app.usage("%v", err)
	}
	date, err := c.app.parseDate(c.date)
	if err != nil {
		return c.app.usage("%v", err)
	}
	accountID, err := c.app.resolveAccount(ctx, c.account)
	if err != nil {
		return c.app.fail(err)
	}
	input := transaction.RecordFlowInput{
		UserID:    LocalOwner,
		Type:      c.kind,
		Amount:    amount,
		AccountID: accountID,
		Remarks:   c.remarks,
		Date:      date,
	}
	if c.category != "" {
		categoryID, err := c.app.resolveCategory(ctx, c.category, c.kind)
		if err != nil {
			return c.app.fail(err)
		}
		input.CategoryID = &categoryID
	}

	out, err := transaction.NewRecordFlowUseCase(c.app.Ledgers).Execute(ctx, input)
	if err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintf(c.app.Out, "Recorded %s %s on %s (%s)\n",
		out.Transaction.Type, out.Transaction.Amount.String(), out.Transaction.AccountName, shortID(out.Transaction.ID))
	return c.app.done()
}

type transferCmd struct {
	app     *App
	from    string
	to      string
	amount  string
	remarks string
	date    string
}

// Name implements subcommands.Command.
func (*transferCmd) Name() string { return "transfer" }

// Synopsis implements subcommands.Command.
func (*transferCmd) Synopsis() string { return "move money between two accounts" }

// Usage implements subcommands.Command.
func (*transferCmd) Usage() string {
	return `ledgerctl transfer -from <account> -to <account> -m <amount> [-r <remarks>] [-d <date>]
`
}

// SetFlags registers the command flags.
func (c *transferCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Source account name or id.")
	f.StringVar(&c.to, "to", "", "Destination account name or id.")
	f.StringVar(&c.amount, "m", "", "Amount, greater than zero.")
	f.StringVar(&c.remarks, "r", "", "Free text remarks.")
	f.StringVar(&c.date, "d", "", "Date (YYYY-MM-DD). Defaults to now.")
}

// Execute runs the transfer command.
func (c *transferCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.from == "" || c.to == "" || c.amount == "" {
		return c.app.usage("-from, -to and -m are required")
	}
	amount, err := parseAmount(c.amount)
	if err != nil {
		return c.app.usage("%v", err)
	}
	date, err := c.app.parseDate(c.date)
	if err != nil {
		return c.app.usage("%v", err)
	}
	fromID, err := c.app.resolveAccount(ctx, c.from)
	if err != nil {
		return c.app.fail(err)
	}
	toID, err := c.app.resolveAccount(ctx, c.to)
	if err != nil {
		return c.app.fail(err)
	}

	out, err := transaction.NewRecordTransferUseCase(c.app.Ledgers).Execute(ctx, transaction.RecordTransferInput{
		UserID:        LocalOwner,
		Amount:        amount,
		FromAccountID: fromID,
		ToAccountID:   toID,
		Remarks:       c.remarks,
		Date:          date,
	})
	if err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintf(c.app.Out, "Transferred %s from %s to %s (%s)\n",
		out.Transaction.Amount.String(), out.Transaction.AccountName, out.Transaction.ToAccountName, shortID(out.Transaction.ID))
	return c.app.done()
}

type editCmd struct {
	app           *App
	amount        string
	remarks       string
	date          string
	account       string
	category      string
	clearCategory bool
}

// Name implements subcommands.Command.
func (*editCmd) Name() string { return "edit" }

// Synopsis implements subcommands.Command.
func (*editCmd) Synopsis() string { return "change a recorded transaction" }

// Usage implements subcommands.Command.
func (*editCmd) Usage() string {
	return `ledgerctl edit [-m <amount>] [-r <remarks>] [-d <date>] [-a <account>] [-c <category> | -no-category] <transaction>

  Only the given flags are changed. Transfers accept -m, -r and -d only.
`
}

// SetFlags registers the command flags.
func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "m", "", "New amount.")
	f.StringVar(&c.remarks, "r", "", "New remarks.")
	f.StringVar(&c.date, "d", "", "New date (YYYY-MM-DD).")
	f.StringVar(&c.account, "a", "", "Move an income or expense to this account.")
	f.StringVar(&c.category, "c", "", "New category name or id.")
	f.BoolVar(&c.clearCategory, "no-category", false, "Remove the category.")
}

// Execute runs the edit command.
func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.usage("expected exactly one transaction id")
	}
	set := map[string]bool{}
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	id, err := c.app.resolveTransaction(ctx, f.Arg(0))
	if err != nil {
		return c.app.fail(err)
	}
	input := transaction.EditTransactionInput{
		UserID:        LocalOwner,
		TransactionID: id,
		ClearCategory: c.clearCategory,
	}
	if set["m"] {
		amount, err := parseAmount(c.amount)
		if err != nil {
			return c.app.usage("%v", err)
		}
		input.Amount = &amount
	}
	if set["r"] {
		input.Remarks = &c.remarks
	}
	if set["d"] {
		date, err := c.app.parseDate(c.date)
		if err != nil || date == nil {
			return c.app.usage("invalid date %q, expected YYYY-MM-DD", c.date)
		}
		input.Date = date
	}
	if set["a"] {
		accountID, err := c.app.resolveAccount(ctx, c.account)
		if err != nil {
			return c.app.fail(err)
		}
		input.AccountID = &accountID
	}
	if set["c"] {
		kind, err := c.app.transactionKind(ctx, id)
		if err != nil {
			return c.app.fail(err)
		}
		categoryID, err := c.app.resolveCategory(ctx, c.category, kind)
		if err != nil {
			return c.app.fail(err)
		}
		input.CategoryID = &categoryID
	}

	out, err := transaction.NewEditTransactionUseCase(c.app.Ledgers).Execute(ctx, input)
	if err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintf(c.app.Out, "Updated %s %s\n", out.Transaction.Type, shortID(out.Transaction.ID))
	return c.app.done()
}

type deleteCmd struct {
	app *App
}

// Name implements subcommands.Command.
func (*deleteCmd) Name() string { return "delete" }

// Synopsis implements subcommands.Command.
func (*deleteCmd) Synopsis() string { return "delete a transaction and reverse its effect" }

// Usage implements subcommands.Command.
func (*deleteCmd) Usage() string {
	return `ledgerctl delete <transaction>

  Account creation records cannot be deleted.
`
}

// SetFlags implements subcommands.Command.
func (*deleteCmd) SetFlags(*flag.FlagSet) {}

// Execute runs the delete command.
func (c *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.usage("expected exactly one transaction id")
	}
	id, err := c.app.resolveTransaction(ctx, f.Arg(0))
	if err != nil {
		return c.app.fail(err)
	}
	if _, err := transaction.NewDeleteTransactionUseCase(c.app.Ledgers).Execute(ctx, transaction.DeleteTransactionInput{
		UserID:        LocalOwner,
		TransactionID: id,
	}); err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintln(c.app.Out, "Transaction deleted")
	return c.app.done()
}

type transactionsCmd struct {
	app     *App
	kind    string
	account string
	search  string
	start   string
	end     string
	limit   int
}

// Name implements subcommands.Command.
func (*transactionsCmd) Name() string { return "transactions" }

// Synopsis implements subcommands.Command.
func (*transactionsCmd) Synopsis() string { return "list transactions, newest first" }

// Usage implements subcommands.Command.
func (*transactionsCmd) Usage() string {
	return `ledgerctl transactions [-t <type>] [-a <account>] [-q <search>] [-s <start>] [-e <end>] [-n <limit>]
`
}

// SetFlags registers the command flags.
func (c *transactionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "t", "", "Type: income, expenditure, transfer or account_creation.")
	f.StringVar(&c.account, "a", "", "Only transactions touching this account.")
	f.StringVar(&c.search, "q", "", "Search remarks and account names.")
	f.StringVar(&c.start, "s", "", "Start date (YYYY-MM-DD), inclusive.")
	f.StringVar(&c.end, "e", "", "End date (YYYY-MM-DD), inclusive.")
	f.IntVar(&c.limit, "n", transaction.DefaultPageSize, "Maximum number of rows.")
}

// Execute runs the transactions command.
func (c *transactionsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	from, to, err := c.app.parseRange(c.start, c.end)
	if err != nil {
		return c.app.usage("%v", err)
	}
	input := transaction.ListTransactionsInput{
		UserID:    LocalOwner,
		StartDate: from,
		EndDate:   to,
		Search:    c.search,
		Limit:     c.limit,
	}
	if c.kind != "" {
		kind := entity.TransactionKind(c.kind)
		if !kind.IsValid() {
			return c.app.usage("unknown transaction type %q", c.kind)
		}
		input.Type = &kind
	}
	if c.account != "" {
		accountID, err := c.app.resolveAccount(ctx, c.account)
		if err != nil {
			return c.app.fail(err)
		}
		input.AccountID = &accountID
	}

	out, err := transaction.NewListTransactionsUseCase(c.app.Ledgers).Execute(ctx, input)
	if err != nil {
		return c.app.fail(err)
	}
	currency, err := c.app.currency(ctx)
	if err != nil {
		return c.app.fail(err)
	}
	c.app.printMarkdown(transactionsMarkdown(out, currency, c.app.location()))
	return subcommands.ExitSuccess
}

func transactionsMarkdown(out *transaction.ListTransactionsOutput, currency string, loc *time.Location) string {
	var b strings.Builder
	if len(out.Transactions) == 0 {
		return "No transactions\n"
	}
	b.WriteString("| ID | Date | Type | Account | Amount | Category | Remarks |\n|---|---|---|---|---:|---|---|\n")
	for _, t := range out.Transactions {
		accountName := t.AccountName
		if t.Type == entity.TransactionKindTransfer {
			accountName += " → " + t.ToAccountName
		}
		if t.IsOrphaned {
			accountName += " (deleted)"
		}
		category := ""
		if t.Category != nil {
			category = t.Category.Name
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			shortID(t.ID),
			t.Date.In(loc).Format(dateLayout),
			t.Type,
			cell(accountName),
			valueobject.PlainAmount(t.Amount, currency),
			cell(category),
			cell(t.Remarks),
		)
	}
	fmt.Fprintf(&b, "\nShowing %d of %d. Income %s, expenses %s, net %s.\n",
		len(out.Transactions),
		out.Pagination.Total,
		valueobject.PlainAmount(out.Totals.IncomeTotal, currency),
		valueobject.PlainAmount(out.Totals.ExpenseTotal, currency),
		valueobject.PlainAmount(out.Totals.NetTotal, currency),
	)
	return b.String()
}

func (a *App) transactionKind(ctx context.Context, id uuid.UUID) (entity.TransactionKind, error) {
	var kind entity.TransactionKind
	err := a.Ledgers.View(ctx, LocalOwner, func(l ledger.Ledger) error {
		t, err := l.Transaction(id)
		if err != nil {
			return err
		}
		kind = t.Kind
		return nil
	})
	return kind, err
}

func (a *App) currency(ctx context.Context) (string, error) {
	var currency string
	err := a.Ledgers.View(ctx, LocalOwner, func(l ledger.Ledger) error {
		currency = l.Currency()
		return nil
	})
	return currency, err
}
