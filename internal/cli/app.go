// Package cli implements the ledgerctl subcommands over a single local ledger.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// LocalOwner owns the ledger kept by the command line tool.
var LocalOwner = uuid.Nil

const dateLayout = "2006-01-02"

// App carries what every subcommand needs.
type App struct {
	Ledgers  ledger.Runner
	Insights adapter.InsightService // optional
	Location *time.Location
	Out      io.Writer
	Err      io.Writer
	// Plain prints markdown as is instead of rendering it for the terminal.
	Plain bool
}

// Register adds every subcommand to c, grouped like the help output shows them.
func Register(c *subcommands.Commander, app *App) {
	c.Register(&setupCmd{app: app}, "ledger")
	c.Register(&balanceCmd{app: app}, "ledger")
	c.Register(&verifyCmd{app: app}, "ledger")
	c.Register(&resetCmd{app: app}, "ledger")

	c.Register(&accountsCmd{app: app}, "accounts")
	c.Register(&addAccountCmd{app: app}, "accounts")
	c.Register(&renameAccountCmd{app: app}, "accounts")
	c.Register(&deleteAccountCmd{app: app}, "accounts")

	c.Register(&flowCmd{app: app, kind: entity.TransactionKindIncome}, "transactions")
	c.Register(&flowCmd{app: app, kind: entity.TransactionKindExpenditure}, "transactions")
	c.Register(&transferCmd{app: app}, "transactions")
	c.Register(&editCmd{app: app}, "transactions")
	c.Register(&deleteCmd{app: app}, "transactions")
	c.Register(&transactionsCmd{app: app}, "transactions")

	c.Register(&categoriesCmd{app: app}, "categories")
	c.Register(&addCategoryCmd{app: app}, "categories")

	c.Register(&exportCmd{app: app}, "reports")
	c.Register(&insightsCmd{app: app}, "reports")
}

func (a *App) location() *time.Location {
	if a.Location == nil {
		return time.UTC
	}
	return a.Location
}

func (a *App) printMarkdown(md string) {
	if a.Plain {
		fmt.Fprint(a.Out, md)
		return
	}
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Fprint(a.Out, md)
		return
	}
	fmt.Fprint(a.Out, out)
}

func (a *App) fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(a.Err, "Error:", err)
	return subcommands.ExitFailure
}

func (a *App) usage(format string, args ...interface{}) subcommands.ExitStatus {
	fmt.Fprintf(a.Err, "Error: "+format+"\n", args...)
	return subcommands.ExitUsageError
}

// done reports a save failure after a mutation. The change itself stays in memory
// for the rest of the process only, so the command still fails.
func (a *App) done() subcommands.ExitStatus {
	if err := a.Ledgers.SyncStatus(LocalOwner); err != nil {
		fmt.Fprintln(a.Err, "Warning: ledger not saved:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (a *App) parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, value, a.location())
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return &t, nil
}

// parseRange parses inclusive start and end dates.
func (a *App) parseRange(start, end string) (*time.Time, *time.Time, error) {
	from, err := a.parseDate(start)
	if err != nil {
		return nil, nil, err
	}
	to, err := a.parseDate(end)
	if err != nil {
		return nil, nil, err
	}
	if to != nil {
		last := to.Add(24*time.Hour - time.Nanosecond)
		to = &last
	}
	return from, to, nil
}

func parseAmount(value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", value)
	}
	return amount, nil
}

// resolveAccount accepts an account id, a unique id prefix or a case-insensitive name.
func (a *App) resolveAccount(ctx context.Context, ref string) (uuid.UUID, error) {
	var found []uuid.UUID
	err := a.Ledgers.View(ctx, LocalOwner, func(l ledger.Ledger) error {
		found = matchRefs(ref, l.Accounts(), func(acc *entity.Account) (uuid.UUID, string) {
			return acc.ID, acc.Name
		})
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return pickOne(ref, found, domainerror.NewNotFoundError(domainerror.ErrCodeAccountNotFound, domainerror.ErrAccountNotFound))
}

// resolveTransaction accepts a transaction id or a unique id prefix.
func (a *App) resolveTransaction(ctx context.Context, ref string) (uuid.UUID, error) {
	var found []uuid.UUID
	err := a.Ledgers.View(ctx, LocalOwner, func(l ledger.Ledger) error {
		found = matchRefs(ref, l.Transactions(ledger.TransactionFilter{}), func(t *entity.Transaction) (uuid.UUID, string) {
			return t.ID, ""
		})
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return pickOne(ref, found, domainerror.NewNotFoundError(domainerror.ErrCodeTransactionNotFound, domainerror.ErrTransactionNotFound))
}

// resolveCategory finds a category by id or name among those a flow of kind may use.
func (a *App) resolveCategory(ctx context.Context, ref string, kind entity.TransactionKind) (uuid.UUID, error) {
	categoryType, _ := kind.CategoryType()
	var found []uuid.UUID
	err := a.Ledgers.View(ctx, LocalOwner, func(l ledger.Ledger) error {
		candidates := make([]*entity.Category, 0)
		for _, c := range l.Categories() {
			if categoryType == "" || c.Type == categoryType {
				candidates = append(candidates, c)
			}
		}
		found = matchRefs(ref, candidates, func(c *entity.Category) (uuid.UUID, string) {
			return c.ID, c.Name
		})
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return pickOne(ref, found, domainerror.NewNotFoundError(domainerror.ErrCodeCategoryNotFound, domainerror.ErrCategoryNotFound))
}

func matchRefs[T any](ref string, items []T, key func(T) (uuid.UUID, string)) []uuid.UUID {
	ref = strings.TrimSpace(ref)
	if id, err := uuid.Parse(ref); err == nil {
		for _, item := range items {
			if itemID, _ := key(item); itemID == id {
				return []uuid.UUID{id}
			}
		}
		return nil
	}

	var byName, byPrefix []uuid.UUID
	lower := strings.ToLower(ref)
	for _, item := range items {
		id, name := key(item)
		if name != "" && strings.EqualFold(name, ref) {
			byName = append(byName, id)
		}
		if len(lower) >= 4 && strings.HasPrefix(id.String(), lower) {
			byPrefix = append(byPrefix, id)
		}
	}
	if len(byName) > 0 {
		return byName
	}
	return byPrefix
}

func pickOne(ref string, found []uuid.UUID, notFound error) (uuid.UUID, error) {
	switch len(found) {
	case 0:
		return uuid.Nil, notFound
	case 1:
		return found[0], nil
	default:
		return uuid.Nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidRequest,
			domainerror.KindValidation,
			fmt.Sprintf("%q matches %d records, use a longer id", ref, len(found)),
			nil,
		)
	}
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

func cell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "|", "\\|"), "\n", " ")
}
