package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/bizdesk/internal/client/cache"
	"github.com/dmitrijs2005/bizdesk/internal/client/client"
	"github.com/dmitrijs2005/bizdesk/internal/client/models"
	"github.com/dmitrijs2005/bizdesk/internal/logging"
)

// ErrSessionChanged is returned when the session ended while a request was
// in flight; its response is not applied.
var ErrSessionChanged = errors.New("session changed during request")

var errMissingID = errors.New("server returned entity without id")

// SessionState exposes the generation counter of the session store.
// IfGeneration runs fn atomically with respect to the session ending.
type SessionState interface {
	Generation() uint64
	IfGeneration(gen uint64, fn func()) bool
}

// Resource is the CRUD surface of one resource kind. Operations of a kind
// run one at a time in the order they were called, and each one is applied
// to the cache before the next starts.
type Resource[T models.Entity] struct {
	kind    models.Kind
	client  client.Client
	session SessionState
	coll    *cache.Collection[T]
	queue   opQueue
	log     logging.Logger
}

func NewResource[T models.Entity](kind models.Kind, c client.Client, s SessionState, coll *cache.Collection[T], log logging.Logger) *Resource[T] {
	return &Resource[T]{
		kind:    kind,
		client:  c,
		session: s,
		coll:    coll,
		log:     log.With("kind", string(kind)),
	}
}

func (r *Resource[T]) Kind() models.Kind { return r.kind }

// Cached returns the cached collection without touching the network.
func (r *Resource[T]) Cached() []T { return r.coll.Snapshot() }

// Lookup returns the cached entity with the given id.
func (r *Resource[T]) Lookup(id int64) (T, bool) { return r.coll.Get(id) }

func (r *Resource[T]) collectionPath() string {
	return "/api/" + string(r.kind)
}

func (r *Resource[T]) itemPath(id int64) string {
	return r.collectionPath() + "/" + strconv.FormatInt(id, 10)
}

// List fetches the whole collection and replaces the cache with it. Any
// failure leaves an empty collection behind and is only logged.
func (r *Resource[T]) List(ctx context.Context) []T {
	leave, err := r.queue.enter(ctx)
	if err != nil {
		r.log.Warn(ctx, "list abandoned", "err", err)
		return []T{}
	}
	defer leave()

	gen := r.session.Generation()
	var items []T
	err = r.client.Do(ctx, http.MethodGet, r.collectionPath(), nil, nil, &items)

	applied := r.session.IfGeneration(gen, func() {
		if err != nil {
			items = nil
		}
		r.coll.Replace(items)
	})
	if !applied {
		r.log.Debug(ctx, "dropping list response from ended session")
		return []T{}
	}
	if err != nil {
		r.log.Warn(ctx, "list failed", "err", err)
		return []T{}
	}
	return r.coll.Snapshot()
}

// Create posts item and appends the entity the server returns. The cache is
// not touched unless the server accepted it.
func (r *Resource[T]) Create(ctx context.Context, item T) bool {
	_, err := r.create(ctx, item)
	if err != nil {
		r.log.Warn(ctx, "create failed", "err", err)
		return false
	}
	return true
}

func (r *Resource[T]) create(ctx context.Context, item T) (T, error) {
	var out T
	if err := item.Validate(); err != nil {
		return out, err
	}

	leave, err := r.queue.enter(ctx)
	if err != nil {
		return out, err
	}
	defer leave()

	gen := r.session.Generation()
	if err := r.client.Do(ctx, http.MethodPost, r.collectionPath(), nil, item, &out); err != nil {
		return out, err
	}
	applied := r.session.IfGeneration(gen, func() {
		if out.EntityID() != 0 {
			r.coll.Append(out)
		}
	})
	if !applied {
		return out, ErrSessionChanged
	}
	if out.EntityID() == 0 {
		return out, errMissingID
	}
	return out, nil
}

// Update puts item to the entity with the given id and swaps the cached copy
// for the server's version, keeping its position.
func (r *Resource[T]) Update(ctx context.Context, id int64, item T) bool {
	if err := r.update(ctx, id, item); err != nil {
		r.log.Warn(ctx, "update failed", "id", id, "err", err)
		return false
	}
	return true
}

func (r *Resource[T]) update(ctx context.Context, id int64, item T) error {
	if err := item.Validate(); err != nil {
		return err
	}

	leave, err := r.queue.enter(ctx)
	if err != nil {
		return err
	}
	defer leave()

	gen := r.session.Generation()
	var out T
	if err := r.client.Do(ctx, http.MethodPut, r.itemPath(id), nil, item, &out); err != nil {
		return err
	}
	var found bool
	applied := r.session.IfGeneration(gen, func() {
		if out.EntityID() != 0 {
			found = r.coll.ReplaceByID(id, out)
		}
	})
	if !applied {
		return ErrSessionChanged
	}
	if out.EntityID() == 0 {
		return errMissingID
	}
	if !found {
		r.log.Debug(ctx, "updated entity not in cache", "id", id)
	}
	return nil
}

// Delete removes the entity on the server and then from the cache. The
// error is returned so callers can tell the user; the cache is unchanged
// on failure.
func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	leave, err := r.queue.enter(ctx)
	if err != nil {
		return err
	}
	defer leave()

	gen := r.session.Generation()
	if err := r.client.Do(ctx, http.MethodDelete, r.itemPath(id), nil, nil, nil); err != nil {
		r.log.Warn(ctx, "delete failed", "id", id, "err", err)
		return fmt.Errorf("delete %s %d: %w", r.kind, id, err)
	}
	if !r.session.IfGeneration(gen, func() { r.coll.RemoveByID(id) }) {
		return ErrSessionChanged
	}
	return nil
}
