package services

import (
	"github.com/dmitrijs2005/bizdesk/internal/client/cache"
	"github.com/dmitrijs2005/bizdesk/internal/client/client"
	"github.com/dmitrijs2005/bizdesk/internal/client/session"
	"github.com/dmitrijs2005/bizdesk/internal/logging"
)

// Core is the single owner of the session, the entity cache and the services
// built on them. Components receive it, or the parts they need, explicitly.
type Core struct {
	Session   *session.Store
	Cache     *cache.EntityCache
	Auth      AuthService
	Entities  *Dispatcher
	Charts    ChartService
	Converter ConverterService
}

// NewCore wires the services around store. The cache is emptied whenever the
// session ends.
func NewCore(store *session.Store, c client.Client, log logging.Logger) *Core {
	ec := cache.New()
	store.OnClear(ec.Reset)

	entities := NewDispatcher(c, store, ec, log)
	return &Core{
		Session:   store,
		Cache:     ec,
		Auth:      NewAuthService(c, store, log),
		Entities:  entities,
		Charts:    NewChartService(c, entities.Transactions, log),
		Converter: NewConverterService(c),
	}
}
