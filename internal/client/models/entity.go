package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// The backend keeps amounts in float columns and expects JSON numbers.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

var ErrInvalidEntity = errors.New("invalid entity")

// Entity is anything held in an EntityCache collection. The id is assigned
// by the backend and never changes afterwards.
type Entity interface {
	EntityID() int64
	Validate() error
}

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

type Transaction struct {
	ID              int64           `json:"id,omitempty"`
	UserID          int64           `json:"user_id,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description,omitempty"`
	TransactionType TransactionType `json:"transaction_type"`
	Status          string          `json:"status"`
	Company         string          `json:"company,omitempty"`
	Date            Date            `json:"date,omitzero"`
}

func (t Transaction) EntityID() int64 { return t.ID }

func (t Transaction) Validate() error {
	if !t.TransactionType.Valid() {
		return fmt.Errorf("%w: transaction_type %q must be %q or %q",
			ErrInvalidEntity, t.TransactionType, TransactionIncome, TransactionExpense)
	}
	if t.Status == "" {
		return fmt.Errorf("%w: transaction status is required", ErrInvalidEntity)
	}
	return nil
}

type Budget struct {
	ID          int64           `json:"id,omitempty"`
	UserID      int64           `json:"user_id,omitempty"`
	ProjectID   int64           `json:"project_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	Date        Date            `json:"date,omitzero"`
}

func (b Budget) EntityID() int64 { return b.ID }

func (b Budget) Validate() error {
	if b.ProjectID == 0 {
		return fmt.Errorf("%w: budget project_id is required", ErrInvalidEntity)
	}
	if b.Status == "" {
		return fmt.Errorf("%w: budget status is required", ErrInvalidEntity)
	}
	return nil
}

type Employee struct {
	ID       int64           `json:"id,omitempty"`
	UserID   int64           `json:"user_id,omitempty"`
	Name     string          `json:"name"`
	Salary   decimal.Decimal `json:"salary"`
	Position string          `json:"position,omitempty"`
}

func (e Employee) EntityID() int64 { return e.ID }

func (e Employee) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("%w: employee name is required", ErrInvalidEntity)
	}
	return nil
}

type Project struct {
	ID          int64  `json:"id,omitempty"`
	UserID      int64  `json:"user_id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Client      string `json:"client"`
	StartDate   Date   `json:"start_date,omitzero"`
	EndDate     Date   `json:"end_date,omitzero"`
}

func (p Project) EntityID() int64 { return p.ID }

func (p Project) Validate() error {
	if p.Name == "" || p.Client == "" {
		return fmt.Errorf("%w: project name and client are required", ErrInvalidEntity)
	}
	return nil
}

// MonthlyAggregate is one row of the income/expense table. Balance is
// always Income - Expense.
type MonthlyAggregate struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}
