// Package ordering computes dense position updates for drag-and-drop
// reordering of lists, cards and checklist items. Positions within one
// container are always the sequence 0..n-1; every insert, move and removal
// returns the minimal batch of sibling updates that keeps it that way.
//
// The package is pure: it never touches the database. Callers load the
// sibling rows (locked for update), run one of the functions below and apply
// the returned batch inside the same transaction.
package ordering

import "errors"

var (
	ErrItemNotFound     = errors.New("item not found in container")
	ErrInvalidContainer = errors.New("invalid container")
	ErrNotDense         = errors.New("container positions are not dense")
)

// Item is one positioned element of a container.
type Item struct {
	ID       uint
	Position int
}

// Container is an ordered sibling set, identified by the parent row's ID.
type Container struct {
	ID    uint
	Items []Item
}

// Update assigns a new position to an existing sibling.
type Update struct {
	ID       uint
	Position int
}

// Placement is the moving item's final location.
type Placement struct {
	ContainerID uint
	Position    int
}

// Validate reports whether items occupy exactly the positions 0..len-1
// with no duplicates.
func Validate(items []Item) error {
	seen := make(map[int]bool, len(items))

	for _, item := range items {
		if item.Position < 0 || item.Position >= len(items) || seen[item.Position] {
			return ErrNotDense
		}
		seen[item.Position] = true
	}

	return nil
}

// Move computes the updates needed to move an item from source to dest at
// the requested position. For a move within one container, pass the same
// container as both source and dest. The moving item itself is not included
// in the returned updates; its new location is the returned Placement.
//
// The requested position is clamped to the destination's valid range. An
// item moved onto the position it already holds yields no updates.
func Move(source, dest Container, movingID uint, requested int) ([]Update, Placement, error) {
	if source.ID == 0 || dest.ID == 0 {
		return nil, Placement{}, ErrInvalidContainer
	}

	old := -1

	for _, item := range source.Items {
		if item.ID == movingID {
			old = item.Position
			break
		}
	}

	if old == -1 {
		return nil, Placement{}, ErrItemNotFound
	}

	if err := Validate(source.Items); err != nil {
		return nil, Placement{}, err
	}

	if source.ID == dest.ID {
		return moveWithin(source, movingID, old, requested)
	}

	if err := Validate(dest.Items); err != nil {
		return nil, Placement{}, err
	}

	return moveAcross(source, dest, movingID, old, requested)
}

func moveWithin(c Container, movingID uint, old, requested int) ([]Update, Placement, error) {
	requested = clamp(requested, 0, len(c.Items)-1)

	if requested == old {
		return nil, Placement{ContainerID: c.ID, Position: old}, nil
	}

	var updates []Update

	for _, item := range c.Items {
		if item.ID == movingID {
			continue
		}

		switch {
		case requested > old && item.Position > old && item.Position <= requested:
			updates = append(updates, Update{ID: item.ID, Position: item.Position - 1})
		case requested < old && item.Position >= requested && item.Position < old:
			updates = append(updates, Update{ID: item.ID, Position: item.Position + 1})
		}
	}

	return updates, Placement{ContainerID: c.ID, Position: requested}, nil
}

func moveAcross(source, dest Container, movingID uint, old, requested int) ([]Update, Placement, error) {
	requested = clamp(requested, 0, len(dest.Items))

	var updates []Update

	// Close the gap left behind in the source container.
	for _, item := range source.Items {
		if item.ID != movingID && item.Position > old {
			updates = append(updates, Update{ID: item.ID, Position: item.Position - 1})
		}
	}

	// Open a slot in the destination.
	for _, item := range dest.Items {
		if item.Position >= requested {
			updates = append(updates, Update{ID: item.ID, Position: item.Position + 1})
		}
	}

	return updates, Placement{ContainerID: dest.ID, Position: requested}, nil
}

// Insert returns the sibling updates needed to admit a new item at the
// requested position, plus the position the new item should take. A negative
// or out-of-range request appends at the end.
func Insert(c Container, requested int) ([]Update, int) {
	if requested < 0 || requested > len(c.Items) {
		requested = len(c.Items)
	}

	var updates []Update

	for _, item := range c.Items {
		if item.Position >= requested {
			updates = append(updates, Update{ID: item.ID, Position: item.Position + 1})
		}
	}

	return updates, requested
}

// Remove returns the updates that close the gap left by deleting (or
// archiving) an item, keeping the surviving siblings dense.
func Remove(c Container, itemID uint) ([]Update, error) {
	removed := -1

	for _, item := range c.Items {
		if item.ID == itemID {
			removed = item.Position
			break
		}
	}

	if removed == -1 {
		return nil, ErrItemNotFound
	}

	var updates []Update

	for _, item := range c.Items {
		if item.ID != itemID && item.Position > removed {
			updates = append(updates, Update{ID: item.ID, Position: item.Position - 1})
		}
	}

	return updates, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}
