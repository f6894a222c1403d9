package geoingest

import (
	"fmt"
	"slices"
	"sync"
)

// LocationID is the stable index of a settlement in an Arena.
type LocationID int

// OwnerID identifies a holder of settlements, such as a player.
type OwnerID int

// Arena holds settlements by stable index. Selection and ownership are sets
// of indices, so the Location values themselves are never shared or mutated
// after the arena is built.
//
// Example:
//
//	arena := geoingest.NewArena(ds.Settlements)
//	id, _, _ := idx.NearestLocation(x, y)
//	arena.Select(id)
//	if err := arena.Assign(id, player); err != nil {
//	    // already owned by someone else
//	}
type Arena struct {
	locations []Location

	mu       sync.RWMutex
	selected map[LocationID]struct{}
	owner    map[LocationID]OwnerID
}

// NewArena copies locs into a new arena. ID i refers to locs[i].
func NewArena(locs []Location) *Arena {
	return &Arena{
		locations: slices.Clone(locs),
		selected:  make(map[LocationID]struct{}),
		owner:     make(map[LocationID]OwnerID),
	}
}

// Len is the number of settlements in the arena.
func (a *Arena) Len() int { return len(a.locations) }

// Get returns the settlement with the given id.
func (a *Arena) Get(id LocationID) (Location, bool) {
	if !a.valid(id) {
		return Location{}, false
	}
	return a.locations[id], true
}

func (a *Arena) valid(id LocationID) bool {
	return id >= 0 && int(id) < len(a.locations)
}

// Select adds id to the selection. Unknown ids are ignored.
func (a *Arena) Select(id LocationID) {
	if !a.valid(id) {
		return
	}
	a.mu.Lock()
	a.selected[id] = struct{}{}
	a.mu.Unlock()
}

// Deselect removes id from the selection.
func (a *Arena) Deselect(id LocationID) {
	a.mu.Lock()
	delete(a.selected, id)
	a.mu.Unlock()
}

// IsSelected reports whether id is selected.
func (a *Arena) IsSelected(id LocationID) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.selected[id]
	return ok
}

// Selected returns the selected ids in ascending order.
func (a *Arena) Selected() []LocationID {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return sortedKeys(a.selected)
}

// ClearSelection empties the selection.
func (a *Arena) ClearSelection() {
	a.mu.Lock()
	clear(a.selected)
	a.mu.Unlock()
}

// Assign gives id to owner. A settlement has at most one owner; assigning
// one that another owner holds is an error, re-assigning to the same owner
// is not.
func (a *Arena) Assign(id LocationID, owner OwnerID) error {
	if !a.valid(id) {
		return fmt.Errorf("location %d out of range [0, %d)", id, len(a.locations))
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if cur, ok := a.owner[id]; ok && cur != owner {
		return fmt.Errorf("location %d already owned by %d", id, cur)
	}
	a.owner[id] = owner
	return nil
}

// Release removes any owner from id.
func (a *Arena) Release(id LocationID) {
	a.mu.Lock()
	delete(a.owner, id)
	a.mu.Unlock()
}

// Owner returns the owner of id.
func (a *Arena) Owner(id LocationID) (OwnerID, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	o, ok := a.owner[id]
	return o, ok
}

// Owned returns the ids held by owner in ascending order.
func (a *Arena) Owned(owner OwnerID) []LocationID {
	a.mu.RLock()
	defer a.mu.RUnlock()
	var out []LocationID
	for id, o := range a.owner {
		if o == owner {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}

// Population sums the population of ids, skipping unknown ones.
func (a *Arena) Population(ids []LocationID) int64 {
	var total int64
	for _, id := range ids {
		if a.valid(id) {
			total += a.locations[id].Population
		}
	}
	return total
}

func sortedKeys(m map[LocationID]struct{}) []LocationID {
	out := make([]LocationID, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
