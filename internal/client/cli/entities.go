package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/bizdesk/internal/client/models"
	"github.com/dmitrijs2005/bizdesk/internal/client/services"
)

func parseKind(args []string, n int) (models.Kind, error) {
	if len(args) != n {
		return "", errUsage
	}
	return models.ParseKind(args[0])
}

func parseKindID(args []string) (models.Kind, int64, error) {
	kind, err := parseKind(args, 2)
	if err != nil {
		return "", 0, err
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || id <= 0 {
		return "", 0, errUsage
	}
	return kind, id, nil
}

func (a *App) List(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	kind, err := parseKind(args, 1)
	if err != nil {
		return err
	}

	d := a.core.Entities
	switch kind {
	case models.KindTransactions:
		printTable(a.out, transactionHeader, transactionRows(d.Transactions.List(ctx)))
	case models.KindBudgets:
		printTable(a.out, budgetHeader, budgetRows(d.Budgets.List(ctx)))
	case models.KindEmployees:
		printTable(a.out, employeeHeader, employeeRows(d.Employees.List(ctx)))
	case models.KindProjects:
		printTable(a.out, projectHeader, projectRows(d.Projects.List(ctx)))
	}
	return nil
}

func (a *App) Add(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	kind, err := parseKind(args, 1)
	if err != nil {
		return err
	}

	d := a.core.Entities
	switch kind {
	case models.KindTransactions:
		return addEntity(ctx, a, d.Transactions, promptTransaction)
	case models.KindBudgets:
		return addEntity(ctx, a, d.Budgets, promptBudget)
	case models.KindEmployees:
		return addEntity(ctx, a, d.Employees, promptEmployee)
	default:
		return addEntity(ctx, a, d.Projects, promptProject)
	}
}

func (a *App) Edit(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	kind, id, err := parseKindID(args)
	if err != nil {
		return err
	}

	d := a.core.Entities
	switch kind {
	case models.KindTransactions:
		return editEntity(ctx, a, d.Transactions, id, promptTransaction)
	case models.KindBudgets:
		return editEntity(ctx, a, d.Budgets, id, promptBudget)
	case models.KindEmployees:
		return editEntity(ctx, a, d.Employees, id, promptEmployee)
	default:
		return editEntity(ctx, a, d.Projects, id, promptProject)
	}
}

func (a *App) Remove(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	kind, id, err := parseKindID(args)
	if err != nil {
		return err
	}
	if err := a.core.Entities.Delete(ctx, kind, id); err != nil {
		return err
	}
	a.println("Deleted.")
	return nil
}

func addEntity[T models.Entity](ctx context.Context, a *App, r *services.Resource[T], prompt func(*form, T) T) error {
	var zero T
	f := a.newForm()
	item := prompt(f, zero)
	if f.err != nil {
		return f.err
	}
	if err := item.Validate(); err != nil {
		return err
	}
	if !r.Create(ctx, item) {
		return errFailed
	}
	a.println("Created.")
	return nil
}

// editEntity prefills the form from the cache, loading the collection
// first when the entity is not cached yet.
func editEntity[T models.Entity](ctx context.Context, a *App, r *services.Resource[T], id int64, prompt func(*form, T) T) error {
	cur, ok := r.Lookup(id)
	if !ok {
		r.List(ctx)
		cur, ok = r.Lookup(id)
	}
	if !ok {
		return fmt.Errorf("%s %d not found", r.Kind(), id)
	}

	f := a.newForm()
	item := prompt(f, cur)
	if f.err != nil {
		return f.err
	}
	if err := item.Validate(); err != nil {
		return err
	}
	if !r.Update(ctx, id, item) {
		return errFailed
	}
	a.println("Saved.")
	return nil
}
