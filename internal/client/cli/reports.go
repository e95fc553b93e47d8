package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/bizdesk/internal/client/chart"
	"github.com/dmitrijs2005/bizdesk/internal/client/models"
)

// Chart prints the monthly table for [start, end] along with the chart
// image url. Both bounds are optional.
func (a *App) Chart(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	if len(args) > 2 {
		return errUsage
	}
	bounds := append(slices.Clone(args), "", "")
	r, err := chart.ParseRange(bounds[0], bounds[1])
	if err != nil {
		return err
	}

	rep, err := a.core.Charts.Report(ctx, r)
	if err != nil {
		return err
	}
	if rep.ChartErr != nil {
		fmt.Fprintln(a.out, "Chart unavailable:", rep.ChartErr)
	} else {
		fmt.Fprintln(a.out, "Chart:", rep.URL)
	}
	if len(rep.Rows) == 0 {
		a.println("No transactions in range.")
		return nil
	}
	rows := aggregateRows(rep.Rows)
	rows = append(rows, []string{"TOTAL", rep.Totals.Income.StringFixed(2), rep.Totals.Expense.StringFixed(2), rep.Totals.Balance.StringFixed(2)})
	printTable(a.out, aggregateHeader, rows)
	return nil
}

func (a *App) Convert(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	if len(args) != 3 {
		return errUsage
	}
	amount, err := decimal.NewFromString(args[2])
	if err != nil {
		return fmt.Errorf("amount %q is not a number", args[2])
	}

	c, err := a.core.Converter.Convert(ctx, args[0], args[1], amount)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s %s = %s %s (rate %s)\n", c.Amount, c.Base, c.ConvertedAmount, c.Target, c.Rate)
	return nil
}

// Stats prints cached entity counts and the transport counters.
func (a *App) Stats(ctx context.Context) error {
	counts := a.core.Cache.Counts()
	for _, k := range models.Kinds() {
		fmt.Fprintf(a.out, "cached %s: %d\n", k, counts[k])
	}
	return a.metrics.WriteSummary(a.out)
}
