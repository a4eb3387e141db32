package cart_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/dukaan/app/cart"
	"github.com/shashiranjanraj/dukaan/app/models"
	"github.com/shashiranjanraj/dukaan/pkg/event"
	"github.com/shashiranjanraj/dukaan/pkg/slot"
)

var hammer = models.Product{ID: "1", Name: "Hammer", Category: "Tools", Price: 10, Image: "h.png"}
var mug = models.Product{ID: "2", Name: "Mug", Category: "Kitchen", Price: 3.5}

func fileSlot(t *testing.T) slot.Store {
	t.Helper()
	return slot.NewFile(filepath.Join(t.TempDir(), "cart.json"))
}

func TestAddSameProductTwiceMergesLines(t *testing.T) {
	c := cart.NewStore(nil, nil)

	c.AddOrIncrement(hammer, 2)
	line := c.AddOrIncrement(hammer, 2)

	snap := c.Snapshot()
	require.Len(t, snap, 1, "one line per product")
	assert.Equal(t, 4, snap[0].Quantity)
	assert.Equal(t, 4, line.Quantity)
	assert.Equal(t, 40.0, c.Subtotal())
}

func TestAddSnapshotsPrice(t *testing.T) {
	c := cart.NewStore(nil, nil)
	c.AddOrIncrement(hammer, 1)

	reloaded := hammer
	reloaded.Price = 99
	c.AddOrIncrement(reloaded, 1)

	snap := c.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, 10.0, snap[0].Price, "price is fixed at first add")
}

func TestQuantityClamping(t *testing.T) {
	c := cart.NewStore(nil, nil)

	c.AddOrIncrement(hammer, -3)
	assert.Equal(t, 1, c.Snapshot()[0].Quantity, "non-positive add corrects to 1")

	require.True(t, c.SetQuantity("1", 5000))
	assert.Equal(t, 999, c.Snapshot()[0].Quantity)

	require.True(t, c.SetQuantity("1", -3))
	assert.Equal(t, 1, c.Snapshot()[0].Quantity)

	c.SetQuantity("1", 998)
	c.AddOrIncrement(hammer, 5)
	assert.Equal(t, 999, c.Snapshot()[0].Quantity, "increment saturates at the cap")
}

func TestSetQuantityUnknownID(t *testing.T) {
	c := cart.NewStore(nil, nil)
	assert.False(t, c.SetQuantity("nope", 2))
}

func TestRemove(t *testing.T) {
	c := cart.NewStore(nil, nil)
	c.AddOrIncrement(hammer, 1)
	c.AddOrIncrement(mug, 2)

	require.True(t, c.Remove("1"))
	assert.False(t, c.Remove("1"), "second remove is a no-op")

	snap := c.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "2", snap[0].ProductID)
	assert.Equal(t, 7.0, c.Subtotal())

	require.True(t, c.Remove("2"))
	assert.Empty(t, c.Snapshot())
	assert.Equal(t, 0.0, c.Subtotal())
}

func TestCountSumsUnits(t *testing.T) {
	c := cart.NewStore(nil, nil)
	c.AddOrIncrement(hammer, 3)
	c.AddOrIncrement(mug, 2)

	assert.Equal(t, 5, c.Count())
}

func TestPersistRestoreRoundTrip(t *testing.T) {
	s := fileSlot(t)

	c := cart.NewStore(s, nil)
	c.AddOrIncrement(hammer, 2)
	c.AddOrIncrement(mug, 1)

	again := cart.NewStore(s, nil)
	again.Restore()

	assert.Equal(t, c.Snapshot(), again.Snapshot())
	assert.Equal(t, 23.5, again.Subtotal())
}

func TestRestoreCorruptSlotStartsEmpty(t *testing.T) {
	s := fileSlot(t)
	require.NoError(t, s.Write([]byte("{not json")))

	c := cart.NewStore(s, nil)
	c.Restore()

	assert.Empty(t, c.Snapshot())

	// Next mutation overwrites the bad value.
	c.AddOrIncrement(hammer, 1)
	again := cart.NewStore(s, nil)
	again.Restore()
	assert.Len(t, again.Snapshot(), 1)
}

func TestRestoreEmptySlot(t *testing.T) {
	c := cart.NewStore(fileSlot(t), nil)
	c.Restore()
	assert.Empty(t, c.Snapshot())
}

func TestClearPersistsEmpty(t *testing.T) {
	s := fileSlot(t)
	c := cart.NewStore(s, nil)
	c.AddOrIncrement(hammer, 1)
	c.Clear()

	again := cart.NewStore(s, nil)
	again.Restore()
	assert.Empty(t, again.Snapshot())
}

// failingSlot refuses every write, like a browser profile over quota.
type failingSlot struct{}

func (failingSlot) Read() ([]byte, error) { return nil, slot.ErrEmpty }
func (failingSlot) Write([]byte) error    { return errors.New("quota exceeded") }
func (failingSlot) Clear() error          { return errors.New("quota exceeded") }

func TestPersistenceFailureKeepsMemoryAuthoritative(t *testing.T) {
	c := cart.NewStore(failingSlot{}, nil)

	c.AddOrIncrement(hammer, 2)
	require.True(t, c.SetQuantity("1", 3))
	c.AddOrIncrement(mug, 1)

	snap := c.Snapshot()
	require.Len(t, snap, 2, "mutations must land in memory even when persistence fails")
	assert.Equal(t, 3, snap[0].Quantity)
	assert.Equal(t, 33.5, c.Subtotal())

	require.True(t, c.Remove("2"))
	c.Clear()
	assert.Empty(t, c.Snapshot())
}

func TestMutationsFireEvents(t *testing.T) {
	bus := event.NewBus()
	var counts []interface{}
	bus.Listen(cart.EventUpdated, func(payload interface{}) {
		counts = append(counts, payload)
	})

	c := cart.NewStore(nil, bus)
	c.AddOrIncrement(hammer, 2)
	c.SetQuantity("1", 5)
	c.Remove("1")

	assert.Equal(t, []interface{}{2, 5, 0}, counts)
}
