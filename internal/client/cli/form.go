package cli

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/bizdesk/internal/client/models"
)

// form reads a sequence of fields. After the first error every further
// read is skipped and returns the current value.
type form struct {
	a   *App
	err error
}

func (a *App) newForm() *form { return &form{a: a} }

func (f *form) text(label, cur string) string {
	if f.err != nil {
		return cur
	}
	v, err := getWithDefault(f.a.reader, label, cur, f.a.out)
	if err != nil {
		f.err = err
		return cur
	}
	return v
}

func (f *form) decimal(label string, cur decimal.Decimal) decimal.Decimal {
	def := ""
	if !cur.IsZero() {
		def = cur.String()
	}
	s := f.text(label, def)
	if f.err != nil || s == "" {
		return cur
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		f.err = fmt.Errorf("%s: %q is not a number", label, s)
		return cur
	}
	return d
}

func (f *form) wholeNumber(label string, cur int64) int64 {
	def := ""
	if cur != 0 {
		def = strconv.FormatInt(cur, 10)
	}
	s := f.text(label, def)
	if f.err != nil || s == "" {
		return cur
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f.err = fmt.Errorf("%s: %q is not a whole number", label, s)
		return cur
	}
	return n
}

func (f *form) date(label string, cur models.Date) models.Date {
	s := f.text(label+" (YYYY-MM-DD)", cur.String())
	if f.err != nil || s == "" {
		return cur
	}
	d, err := models.ParseDate(s)
	if err != nil {
		f.err = fmt.Errorf("%s: %w", label, err)
		return cur
	}
	return d
}

func promptTransaction(f *form, t models.Transaction) models.Transaction {
	t.Amount = f.decimal("Amount", t.Amount)
	t.TransactionType = models.TransactionType(f.text("Type (income/expense)", string(t.TransactionType)))
	t.Description = f.text("Description", t.Description)
	t.Status = f.text("Status", t.Status)
	t.Company = f.text("Company", t.Company)
	t.Date = f.date("Date", t.Date)
	return t
}

func promptBudget(f *form, b models.Budget) models.Budget {
	b.ProjectID = f.wholeNumber("Project ID", b.ProjectID)
	b.Description = f.text("Description", b.Description)
	b.Amount = f.decimal("Amount", b.Amount)
	b.Status = f.text("Status", b.Status)
	b.Date = f.date("Date", b.Date)
	return b
}

func promptEmployee(f *form, e models.Employee) models.Employee {
	e.Name = f.text("Name", e.Name)
	e.Position = f.text("Position", e.Position)
	e.Salary = f.decimal("Salary", e.Salary)
	return e
}

func promptProject(f *form, p models.Project) models.Project {
	p.Name = f.text("Name", p.Name)
	p.Client = f.text("Client", p.Client)
	p.Description = f.text("Description", p.Description)
	p.StartDate = f.date("Start date", p.StartDate)
	p.EndDate = f.date("End date", p.EndDate)
	return p
}
