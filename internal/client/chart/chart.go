// Package chart turns a list of transactions into monthly income and
// expense totals.
package chart

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/bizdesk/internal/client/models"
)

var ErrUnknownTransactionType = errors.New("unknown transaction type")

// Range bounds transactions by day, both ends inclusive. A zero bound is open.
type Range struct {
	Start models.Date
	End   models.Date
}

// ParseRange reads "YYYY-MM-DD" bounds; an empty string leaves that side open.
func ParseRange(start, end string) (Range, error) {
	var (
		r   Range
		err error
	)
	if s := strings.TrimSpace(start); s != "" {
		if r.Start, err = models.ParseDate(s); err != nil {
			return Range{}, fmt.Errorf("start date: %w", err)
		}
	}
	if s := strings.TrimSpace(end); s != "" {
		if r.End, err = models.ParseDate(s); err != nil {
			return Range{}, fmt.Errorf("end date: %w", err)
		}
	}
	if !r.Start.IsZero() && !r.End.IsZero() && r.End.Before(r.Start) {
		return Range{}, fmt.Errorf("end date %s is before start date %s", r.End, r.Start)
	}
	return r, nil
}

// Contains reports whether d falls inside the range. Undated values are only
// inside a fully open range.
func (r Range) Contains(d models.Date) bool {
	if d.IsZero() {
		return r.Start.IsZero() && r.End.IsZero()
	}
	if !r.Start.IsZero() && d.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && d.After(r.End) {
		return false
	}
	return true
}

// Aggregate sums the transactions inside r per month and returns one row
// per month, most recent first. Transactions without a date cannot be
// placed in a month and are skipped.
//
// A transaction type other than income or expense fails the whole call.
func Aggregate(txs []models.Transaction, r Range) ([]models.MonthlyAggregate, error) {
	buckets := make(map[string]*models.MonthlyAggregate)

	for _, tx := range txs {
		if tx.Date.IsZero() || !r.Contains(tx.Date) {
			continue
		}

		month := tx.Date.Month()
		b, ok := buckets[month]
		if !ok {
			b = &models.MonthlyAggregate{Month: month}
			buckets[month] = b
		}

		switch tx.TransactionType {
		case models.TransactionIncome:
			b.Income = b.Income.Add(tx.Amount)
		case models.TransactionExpense:
			b.Expense = b.Expense.Add(tx.Amount)
		default:
			return nil, fmt.Errorf("%w: transaction %d has %q", ErrUnknownTransactionType, tx.ID, tx.TransactionType)
		}
	}

	rows := make([]models.MonthlyAggregate, 0, len(buckets))
	for _, b := range buckets {
		b.Balance = b.Income.Sub(b.Expense)
		rows = append(rows, *b)
	}
	slices.SortFunc(rows, func(a, b models.MonthlyAggregate) int {
		return strings.Compare(b.Month, a.Month)
	})
	return rows, nil
}

// Totals sums every row.
func Totals(rows []models.MonthlyAggregate) models.MonthlyAggregate {
	var t models.MonthlyAggregate
	for _, r := range rows {
		t.Income = t.Income.Add(r.Income)
		t.Expense = t.Expense.Add(r.Expense)
	}
	t.Balance = t.Income.Sub(t.Expense)
	return t
}
