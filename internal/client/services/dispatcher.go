package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/bizdesk/internal/client/cache"
	"github.com/dmitrijs2005/bizdesk/internal/client/client"
	"github.com/dmitrijs2005/bizdesk/internal/client/models"
	"github.com/dmitrijs2005/bizdesk/internal/logging"
)

// Dispatcher holds one Resource per kind, all writing into the same
// EntityCache.
type Dispatcher struct {
	Transactions *Resource[models.Transaction]
	Budgets      *Resource[models.Budget]
	Employees    *Resource[models.Employee]
	Projects     *Resource[models.Project]
}

func NewDispatcher(c client.Client, s SessionState, ec *cache.EntityCache, log logging.Logger) *Dispatcher {
	log = log.With("component", "dispatcher")
	return &Dispatcher{
		Transactions: NewResource(models.KindTransactions, c, s, &ec.Transactions, log),
		Budgets:      NewResource(models.KindBudgets, c, s, &ec.Budgets, log),
		Employees:    NewResource(models.KindEmployees, c, s, &ec.Employees, log),
		Projects:     NewResource(models.KindProjects, c, s, &ec.Projects, log),
	}
}

// LoadAll lists every kind concurrently and returns how many entities each
// one holds afterwards.
func (d *Dispatcher) LoadAll(ctx context.Context) (map[models.Kind]int, error) {
	var (
		g      errgroup.Group
		counts [4]int
	)
	g.Go(func() error { counts[0] = len(d.Transactions.List(ctx)); return ctx.Err() })
	g.Go(func() error { counts[1] = len(d.Budgets.List(ctx)); return ctx.Err() })
	g.Go(func() error { counts[2] = len(d.Employees.List(ctx)); return ctx.Err() })
	g.Go(func() error { counts[3] = len(d.Projects.List(ctx)); return ctx.Err() })

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load all: %w", err)
	}
	return map[models.Kind]int{
		models.KindTransactions: counts[0],
		models.KindBudgets:      counts[1],
		models.KindEmployees:    counts[2],
		models.KindProjects:     counts[3],
	}, nil
}

// Delete removes one entity of the given kind.
func (d *Dispatcher) Delete(ctx context.Context, kind models.Kind, id int64) error {
	switch kind {
	case models.KindTransactions:
		return d.Transactions.Delete(ctx, id)
	case models.KindBudgets:
		return d.Budgets.Delete(ctx, id)
	case models.KindEmployees:
		return d.Employees.Delete(ctx, id)
	case models.KindProjects:
		return d.Projects.Delete(ctx, id)
	default:
		return fmt.Errorf("%w: %q", models.ErrUnknownKind, kind)
	}
}
