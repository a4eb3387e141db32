// Package cart holds the shopper's pending order lines and keeps them
// durable across restarts.
//
// The cart never talks to the catalog after a line is added: name, price
// and image are snapshotted at add time, so a feed reload or a vanished
// product cannot reprice or blank out an existing line. Every mutation
// rewrites the full cart into its storage slot; a failed write degrades to
// an in-memory cart with a warning, it never blocks the shopper.
package cart

import (
	"encoding/json"
	"sync"

	"github.com/shashiranjanraj/dukaan/app/models"
	"github.com/shashiranjanraj/dukaan/pkg/collection"
	"github.com/shashiranjanraj/dukaan/pkg/event"
	"github.com/shashiranjanraj/dukaan/pkg/logger"
	"github.com/shashiranjanraj/dukaan/pkg/metrics"
	"github.com/shashiranjanraj/dukaan/pkg/slot"
)

// EventUpdated is fired on the bus after every mutation. The payload is
// the new line count.
const EventUpdated = "cart.updated"

// Store is the in-memory cart, mirrored into a storage slot.
type Store struct {
	mu    sync.Mutex
	lines []models.Line
	slot  slot.Store
	bus   *event.Bus
}

// NewStore creates an empty cart persisted into s. Both s and bus may be
// nil (the cart then lives in memory only and announces nothing).
func NewStore(s slot.Store, bus *event.Bus) *Store {
	return &Store{slot: s, bus: bus}
}

// Restore loads the previously persisted cart, if any. An empty or
// unreadable slot yields an empty cart; corruption is logged and the bad
// value overwritten on the next mutation, never surfaced to the shopper.
func (c *Store) Restore() {
	if c.slot == nil {
		return
	}

	data, err := c.slot.Read()
	if err != nil {
		if err != slot.ErrEmpty {
			logger.Warn("cart restore failed, starting empty", "error", err)
		}
		return
	}

	var lines []models.Line
	if err := json.Unmarshal(data, &lines); err != nil {
		logger.Warn("cart slot corrupt, starting empty", "error", err)
		return
	}

	c.mu.Lock()
	c.lines = lines
	c.mu.Unlock()
}

// AddOrIncrement adds qty of p to the cart. A line already holding p grows
// by qty instead of duplicating; the cart keeps at most one line per
// product. Quantities are clamped into [1, 999] on the way in and the line
// total is clamped after the increment. Returns the resulting line.
func (c *Store) AddOrIncrement(p models.Product, qty int) models.Line {
	qty = models.ClampQuantity(qty)

	c.mu.Lock()
	var line models.Line
	if i := c.index(p.ID); i >= 0 {
		c.lines[i].Quantity = models.ClampQuantity(c.lines[i].Quantity + qty)
		line = c.lines[i]
	} else {
		line = models.Line{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Image:     p.Image,
			Quantity:  qty,
		}
		c.lines = append(c.lines, line)
	}
	c.persistLocked()
	c.mu.Unlock()

	c.announce("add")
	return line
}

// SetQuantity sets the quantity of an existing line, clamped into
// [1, 999]. Returns false if no line holds id.
func (c *Store) SetQuantity(id string, qty int) bool {
	c.mu.Lock()
	i := c.index(id)
	if i < 0 {
		c.mu.Unlock()
		return false
	}
	c.lines[i].Quantity = models.ClampQuantity(qty)
	c.persistLocked()
	c.mu.Unlock()

	c.announce("set")
	return true
}

// Remove drops the line holding id. Removing an absent id is a no-op and
// persists nothing.
func (c *Store) Remove(id string) bool {
	c.mu.Lock()
	i := c.index(id)
	if i < 0 {
		c.mu.Unlock()
		return false
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	c.persistLocked()
	c.mu.Unlock()

	c.announce("remove")
	return true
}

// Clear empties the cart. Checkout calls this after a confirmed order.
func (c *Store) Clear() {
	c.mu.Lock()
	c.lines = nil
	c.persistLocked()
	c.mu.Unlock()

	c.announce("clear")
}

// Snapshot returns a copy of the current lines in insertion order.
func (c *Store) Snapshot() []models.Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Line(nil), c.lines...)
}

// Subtotal is the sum of all line totals.
func (c *Store) Subtotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return collection.Sum(c.lines, models.Line.Total)
}

// Count is the total number of units across all lines (the cart badge
// number), not the number of lines.
func (c *Store) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// index returns the position of the line holding id, or -1. Callers hold
// the lock.
func (c *Store) index(id string) int {
	for i, l := range c.lines {
		if l.ProductID == id {
			return i
		}
	}
	return -1
}

// persistLocked serializes the cart into its slot. Callers hold the lock.
// Failures downgrade to a warning so the in-memory cart stays usable.
func (c *Store) persistLocked() {
	if c.slot == nil {
		return
	}

	data, err := json.Marshal(c.lines)
	if err != nil {
		logger.Warn("cart serialize failed", "error", err)
		return
	}
	if err := c.slot.Write(data); err != nil {
		logger.Warn("cart persist failed", "error", err)
	}
}

func (c *Store) announce(op string) {
	metrics.CartMutations.WithLabelValues(op).Inc()
	if c.bus != nil {
		c.bus.Fire(EventUpdated, c.Count())
	}
}
