package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/bizdesk/internal/client/models"
)

func printTable(w io.Writer, header []string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	tw.Flush()
}

func id(n int64) string { return strconv.FormatInt(n, 10) }

func transactionRows(items []models.Transaction) [][]string {
	rows := make([][]string, 0, len(items))
	for _, t := range items {
		rows = append(rows, []string{id(t.ID), t.Date.String(), string(t.TransactionType), t.Amount.StringFixed(2), t.Status, t.Company, t.Description})
	}
	return rows
}

func budgetRows(items []models.Budget) [][]string {
	rows := make([][]string, 0, len(items))
	for _, b := range items {
		rows = append(rows, []string{id(b.ID), id(b.ProjectID), b.Date.String(), b.Amount.StringFixed(2), b.Status, b.Description})
	}
	return rows
}

func employeeRows(items []models.Employee) [][]string {
	rows := make([][]string, 0, len(items))
	for _, e := range items {
		rows = append(rows, []string{id(e.ID), e.Name, e.Position, e.Salary.StringFixed(2)})
	}
	return rows
}

func projectRows(items []models.Project) [][]string {
	rows := make([][]string, 0, len(items))
	for _, p := range items {
		rows = append(rows, []string{id(p.ID), p.Name, p.Client, p.StartDate.String(), p.EndDate.String(), p.Description})
	}
	return rows
}

func aggregateRows(items []models.MonthlyAggregate) [][]string {
	rows := make([][]string, 0, len(items))
	for _, m := range items {
		rows = append(rows, []string{m.Month, m.Income.StringFixed(2), m.Expense.StringFixed(2), m.Balance.StringFixed(2)})
	}
	return rows
}

var (
	transactionHeader = []string{"ID", "DATE", "TYPE", "AMOUNT", "STATUS", "COMPANY", "DESCRIPTION"}
	budgetHeader      = []string{"ID", "PROJECT", "DATE", "AMOUNT", "STATUS", "DESCRIPTION"}
	employeeHeader    = []string{"ID", "NAME", "POSITION", "SALARY"}
	projectHeader     = []string{"ID", "NAME", "CLIENT", "START", "END", "DESCRIPTION"}
	aggregateHeader   = []string{"MONTH", "INCOME", "EXPENSE", "BALANCE"}
)
