// Package models defines the client-side data models of the bizdesk client:
// the user profile, the four resource kinds kept in the entity cache
// (transactions, budgets, employees, projects) and the monthly aggregate
// rows derived from transactions.
//
// Field names follow the backend JSON. Amounts are decimal.Decimal and are
// sent to the backend as plain JSON numbers.
package models
