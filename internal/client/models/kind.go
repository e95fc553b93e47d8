package models

import (
	"errors"
	"fmt"
)

// Kind names a resource collection on the backend. It doubles as the URL
// segment under /api.
type Kind string

const (
	KindTransactions Kind = "transactions"
	KindBudgets      Kind = "budgets"
	KindEmployees    Kind = "employees"
	KindProjects     Kind = "projects"
)

var ErrUnknownKind = errors.New("unknown resource kind")

// Kinds lists every resource kind in display order.
func Kinds() []Kind {
	return []Kind{KindTransactions, KindBudgets, KindEmployees, KindProjects}
}

func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

func (k Kind) String() string { return string(k) }
