// Package cache holds the last known server state of each resource kind.
//
// A Collection never hands out its internal slice. Writers build a new slice
// and swap it in under the lock, so a reader always sees either the state
// before an update or the state after it.
package cache

import (
	"slices"
	"sync"

	"github.com/dmitrijs2005/bizdesk/internal/client/models"
)

// Collection is an ordered list of entities with unique ids. The zero value
// is an empty collection ready to use.
type Collection[T models.Entity] struct {
	mu    sync.RWMutex
	items []T
}

// Snapshot returns a copy of the current contents.
func (c *Collection[T]) Snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Get looks an entity up by id.
func (c *Collection[T]) Get(id int64) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := indexOf(c.items, id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Replace swaps the contents for items. Later duplicates of an id overwrite
// earlier ones in place.
func (c *Collection[T]) Replace(items []T) {
	next := make([]T, 0, len(items))
	for _, it := range items {
		if i := indexOf(next, it.EntityID()); i >= 0 {
			next[i] = it
			continue
		}
		next = append(next, it)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = next
}

// Append adds item at the end, or replaces the entity that already has its id.
func (c *Collection[T]) Append(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := slices.Clone(c.items)
	if i := indexOf(next, item.EntityID()); i >= 0 {
		next[i] = item
	} else {
		next = append(next, item)
	}
	c.items = next
}

// ReplaceByID swaps the entity with the given id for item and reports
// whether it was present. Nothing changes when it was not.
func (c *Collection[T]) ReplaceByID(id int64, item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexOf(c.items, id)
	if i < 0 {
		return false
	}
	next := slices.Clone(c.items)
	next[i] = item
	if item.EntityID() != id {
		// the server moved the entity; drop any stale copy under the new id
		for j := len(next) - 1; j >= 0; j-- {
			if j != i && next[j].EntityID() == item.EntityID() {
				next = slices.Delete(next, j, j+1)
			}
		}
	}
	c.items = next
	return true
}

// RemoveByID drops the entity with the given id and reports whether it was
// present.
func (c *Collection[T]) RemoveByID(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexOf(c.items, id)
	if i < 0 {
		return false
	}
	next := slices.Clone(c.items)
	c.items = slices.Delete(next, i, i+1)
	return true
}

func (c *Collection[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

func indexOf[T models.Entity](items []T, id int64) int {
	return slices.IndexFunc(items, func(it T) bool { return it.EntityID() == id })
}

// EntityCache groups the four collections of a signed-in user.
type EntityCache struct {
	Transactions Collection[models.Transaction]
	Budgets      Collection[models.Budget]
	Employees    Collection[models.Employee]
	Projects     Collection[models.Project]
}

func New() *EntityCache {
	return &EntityCache{}
}

// Reset empties every collection. It runs when the session ends.
func (c *EntityCache) Reset() {
	c.Transactions.Reset()
	c.Budgets.Reset()
	c.Employees.Reset()
	c.Projects.Reset()
}

// Counts reports the number of cached entities per kind.
func (c *EntityCache) Counts() map[models.Kind]int {
	return map[models.Kind]int{
		models.KindTransactions: c.Transactions.Len(),
		models.KindBudgets:      c.Budgets.Len(),
		models.KindEmployees:    c.Employees.Len(),
		models.KindProjects:     c.Projects.Len(),
	}
}
