package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	"github.com/finance-tracker/ledger/internal/application/usecase/category"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

type categoriesCmd struct {
	app          *App
	categoryType string
}

// Name implements subcommands.Command.
func (*categoriesCmd) Name() string { return "categories" }

// Synopsis implements subcommands.Command.
func (*categoriesCmd) Synopsis() string { return "list categories with their usage" }

// Usage implements subcommands.Command.
func (*categoriesCmd) Usage() string {
	return `ledgerctl categories [-t income|expense]
`
}

// SetFlags registers the command flags.
func (c *categoriesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.categoryType, "t", "", "Only income or expense categories.")
}

// Execute runs the categories command.
func (c *categoriesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	input := category.ListCategoriesInput{UserID: LocalOwner}
	if c.categoryType != "" {
		categoryType := entity.CategoryType(c.categoryType)
		if !categoryType.IsValid() {
			return c.app.usage("unknown category type %q", c.categoryType)
		}
		input.CategoryType = &categoryType
	}
	out, err := category.NewListCategoriesUseCase(c.app.Ledgers).Execute(ctx, input)
	if err != nil {
		return c.app.fail(err)
	}

	var b strings.Builder
	b.WriteString("| Category | Type | Transactions | Total |\n|---|---|---:|---:|\n")
	for _, cat := range out.Categories {
		name := cat.Name
		if cat.IsDefault {
			name += " *"
		}
		fmt.Fprintf(&b, "| %s | %s | %d | %s |\n", cell(name), cat.Type, cat.TransactionCount, cat.PeriodTotal.StringFixed(2))
	}
	b.WriteString("\n\\* default category\n")
	c.app.printMarkdown(b.String())
	return subcommands.ExitSuccess
}

type addCategoryCmd struct {
	app          *App
	name         string
	icon         string
	categoryType string
}

// Name implements subcommands.Command.
func (*addCategoryCmd) Name() string { return "add-category" }

// Synopsis implements subcommands.Command.
func (*addCategoryCmd) Synopsis() string { return "create a custom category" }

// Usage implements subcommands.Command.
func (*addCategoryCmd) Usage() string {
	return `ledgerctl add-category -n <name> -t income|expense [-i <icon>]
`
}

// SetFlags registers the command flags.
func (c *addCategoryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "Category name.")
	f.StringVar(&c.categoryType, "t", string(entity.CategoryTypeExpense), "income or expense.")
	f.StringVar(&c.icon, "i", "", "Icon name.")
}

// Execute runs the addCategory command.
func (c *addCategoryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	out, err := category.NewCreateCategoryUseCase(c.app.Ledgers).Execute(ctx, category.CreateCategoryInput{
		UserID: LocalOwner,
		Name:   c.name,
		Icon:   c.icon,
		Type:   entity.CategoryType(c.categoryType),
	})
	if err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintf(c.app.Out, "Created %s category %s\n", out.Category.Type, out.Category.Name)
	return c.app.done()
}
