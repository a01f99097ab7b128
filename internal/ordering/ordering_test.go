package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// apply replays an update batch onto a container and, if the placement lands
// here, the moving item too. Returns positions keyed by item ID.
func apply(c Container, updates []Update, moved *Update) map[uint]int {
	result := make(map[uint]int, len(c.Items))

	for _, item := range c.Items {
		result[item.ID] = item.Position
	}

	for _, u := range updates {
		if _, ok := result[u.ID]; ok {
			result[u.ID] = u.Position
		}
	}

	if moved != nil {
		result[moved.ID] = moved.Position
	}

	return result
}

func container(id uint, ids ...uint) Container {
	c := Container{ID: id}

	for i, itemID := range ids {
		c.Items = append(c.Items, Item{ID: itemID, Position: i})
	}

	return c
}

func TestMoveForwardWithinContainer(t *testing.T) {
	a := container(1, 10, 20, 30, 40)

	updates, place, err := Move(a, a, 20, 3)
	require.NoError(t, err)

	assert.Equal(t, Placement{ContainerID: 1, Position: 3}, place)

	got := apply(a, updates, &Update{ID: 20, Position: place.Position})
	assert.Equal(t, map[uint]int{10: 0, 30: 1, 40: 2, 20: 3}, got)
}

func TestMoveBackwardWithinContainer(t *testing.T) {
	a := container(1, 10, 20, 30, 40)

	updates, place, err := Move(a, a, 40, 1)
	require.NoError(t, err)

	got := apply(a, updates, &Update{ID: 40, Position: place.Position})
	assert.Equal(t, map[uint]int{10: 0, 40: 1, 20: 2, 30: 3}, got)
}

func TestMoveToSamePositionIsNoOp(t *testing.T) {
	a := container(1, 10, 20, 30)

	updates, place, err := Move(a, a, 20, 1)
	require.NoError(t, err)

	assert.Empty(t, updates)
	assert.Equal(t, Placement{ContainerID: 1, Position: 1}, place)
}

func TestMoveClampsRequestedPosition(t *testing.T) {
	a := container(1, 10, 20, 30)

	updates, place, err := Move(a, a, 10, 99)
	require.NoError(t, err)

	assert.Equal(t, 2, place.Position)

	got := apply(a, updates, &Update{ID: 10, Position: place.Position})
	assert.Equal(t, map[uint]int{20: 0, 30: 1, 10: 2}, got)

	_, place, err = Move(a, a, 30, -5)
	require.NoError(t, err)
	assert.Equal(t, 0, place.Position)
}

func TestMoveAcrossContainers(t *testing.T) {
	a := container(1, 10, 20, 30)
	b := container(2, 40, 50)

	updates, place, err := Move(a, b, 20, 1)
	require.NoError(t, err)

	assert.Equal(t, Placement{ContainerID: 2, Position: 1}, place)

	gotA := apply(a, updates, nil)
	delete(gotA, 20)
	assert.Equal(t, map[uint]int{10: 0, 30: 1}, gotA)

	gotB := apply(b, updates, &Update{ID: 20, Position: place.Position})
	assert.Equal(t, map[uint]int{40: 0, 20: 1, 50: 2}, gotB)
}

func TestMoveAcrossClampsToAppend(t *testing.T) {
	a := container(1, 10, 20)
	b := container(2, 40)

	updates, place, err := Move(a, b, 10, 7)
	require.NoError(t, err)

	assert.Equal(t, Placement{ContainerID: 2, Position: 1}, place)
	assert.Equal(t, []Update{{ID: 20, Position: 0}}, updates)
}

func TestMoveToEmptyContainer(t *testing.T) {
	a := container(1, 10)
	b := Container{ID: 2}

	updates, place, err := Move(a, b, 10, 0)
	require.NoError(t, err)

	assert.Empty(t, updates)
	assert.Equal(t, Placement{ContainerID: 2, Position: 0}, place)
}

func TestMoveRoundTripRestoresOrdering(t *testing.T) {
	a := container(1, 10, 20, 30)
	b := container(2, 40, 50)

	updates, place, err := Move(a, b, 20, 0)
	require.NoError(t, err)

	afterA := containerFrom(1, apply(a, updates, nil), 20)
	afterB := containerFrom(2, apply(b, updates, &Update{ID: 20, Position: place.Position}), 0)

	updates, place, err = Move(afterB, afterA, 20, 1)
	require.NoError(t, err)

	gotA := apply(afterA, updates, &Update{ID: 20, Position: place.Position})
	assert.Equal(t, map[uint]int{10: 0, 20: 1, 30: 2}, gotA)
}

// containerFrom rebuilds a Container from a position map, dropping excludeID.
func containerFrom(id uint, positions map[uint]int, excludeID uint) Container {
	c := Container{ID: id}

	for itemID, pos := range positions {
		if itemID == excludeID {
			continue
		}
		c.Items = append(c.Items, Item{ID: itemID, Position: pos})
	}

	return c
}

func TestMoveUnknownItem(t *testing.T) {
	a := container(1, 10, 20)

	_, _, err := Move(a, a, 99, 0)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestMoveRejectsZeroContainer(t *testing.T) {
	a := container(1, 10)

	_, _, err := Move(Container{}, a, 10, 0)
	assert.ErrorIs(t, err, ErrInvalidContainer)

	_, _, err = Move(a, Container{}, 10, 0)
	assert.ErrorIs(t, err, ErrInvalidContainer)
}

func TestMoveRejectsNonDenseSource(t *testing.T) {
	a := Container{ID: 1, Items: []Item{{ID: 10, Position: 0}, {ID: 20, Position: 2}}}

	_, _, err := Move(a, a, 10, 1)
	assert.ErrorIs(t, err, ErrNotDense)
}

func TestMoveRejectsNonDenseDest(t *testing.T) {
	a := container(1, 10)
	b := Container{ID: 2, Items: []Item{{ID: 40, Position: 1}, {ID: 50, Position: 1}}}

	_, _, err := Move(a, b, 10, 0)
	assert.ErrorIs(t, err, ErrNotDense)
}

func TestInsertAppendsByDefault(t *testing.T) {
	a := container(1, 10, 20)

	updates, pos := Insert(a, -1)
	assert.Empty(t, updates)
	assert.Equal(t, 2, pos)

	updates, pos = Insert(Container{ID: 1}, -1)
	assert.Empty(t, updates)
	assert.Equal(t, 0, pos)
}

func TestInsertOpensSlot(t *testing.T) {
	a := container(1, 10, 20, 30)

	updates, pos := Insert(a, 1)
	assert.Equal(t, 1, pos)

	got := apply(a, updates, nil)
	assert.Equal(t, map[uint]int{10: 0, 20: 2, 30: 3}, got)
}

func TestRemoveClosesGap(t *testing.T) {
	a := container(1, 10, 20, 30)

	updates, err := Remove(a, 30)
	require.NoError(t, err)
	assert.Empty(t, updates)

	updates, err = Remove(a, 10)
	require.NoError(t, err)

	got := apply(a, updates, nil)
	delete(got, 10)
	assert.Equal(t, map[uint]int{20: 0, 30: 1}, got)
}

func TestRemoveUnknownItem(t *testing.T) {
	a := container(1, 10)

	_, err := Remove(a, 99)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(nil))
	assert.NoError(t, Validate([]Item{{ID: 1, Position: 0}, {ID: 2, Position: 1}}))

	assert.ErrorIs(t, Validate([]Item{{ID: 1, Position: 1}}), ErrNotDense)
	assert.ErrorIs(t, Validate([]Item{{ID: 1, Position: 0}, {ID: 2, Position: 0}}), ErrNotDense)
	assert.ErrorIs(t, Validate([]Item{{ID: 1, Position: -1}, {ID: 2, Position: 0}}), ErrNotDense)
}

// Density survives an arbitrary mixed sequence of inserts, moves and removes.
func TestDensityInvariantAcrossOperationSequence(t *testing.T) {
	a := container(1, 10, 20, 30, 40)
	b := container(2, 50, 60)

	updates, pos := Insert(a, 2)
	a = containerFrom(1, apply(a, updates, &Update{ID: 70, Position: pos}), 0)
	require.NoError(t, Validate(a.Items))

	updates, place, err := Move(a, b, 40, 0)
	require.NoError(t, err)
	b = containerFrom(2, apply(b, updates, &Update{ID: 40, Position: place.Position}), 0)
	a = containerFrom(1, apply(a, updates, nil), 40)
	require.NoError(t, Validate(a.Items))
	require.NoError(t, Validate(b.Items))

	updates, err = Remove(b, 50)
	require.NoError(t, err)
	b = containerFrom(2, apply(b, updates, nil), 50)
	require.NoError(t, Validate(b.Items))

	updates, place, err = Move(a, a, 10, 3)
	require.NoError(t, err)
	a = containerFrom(1, apply(a, updates, &Update{ID: 10, Position: place.Position}), 0)
	require.NoError(t, Validate(a.Items))
}
