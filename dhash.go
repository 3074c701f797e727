package dhash

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	// DefaultBaseSize is the capacity seed used when none is configured
	DefaultBaseSize = 53
	// MinSize is the floor below which a table never shrinks
	MinSize = 53
	// GrowThreshold is the load percentage above which Insert grows the table
	GrowThreshold = 70
	// ShrinkThreshold is the load percentage below which Delete shrinks the table
	ShrinkThreshold = 10
)

var (
	// ErrInvalidBaseSize is returned by New for a negative base size
	ErrInvalidBaseSize = errors.New("invalid base size")
	// ErrDestroyed is returned by mutations on a destroyed table
	ErrDestroyed = errors.New("table destroyed")
	// ErrTableFull is returned when a probe sequence finds no free slot
	ErrTableFull = errors.New("hash table full")
)

type slotState uint8

const (
	slotEmpty slotState = iota
	slotTombstone
	slotOccupied
)

type entry struct {
	key   string
	value string
}

// slot is empty, a tombstone, or occupied by entry
type slot struct {
	state slotState
	entry entry
}

// Table is an open-addressing hash table of string keys and values using
// double hashing. It is not safe for concurrent use.
type Table struct {
	slots      []slot
	baseSize   int
	count      int
	tombstones int
	grows      int
	shrinks    int
	hasher     Hasher
	logger     *zap.Logger
	destroyed  bool
}

// Stats is a snapshot of a table's occupancy and resize history
type Stats struct {
	Count      int
	Size       int
	BaseSize   int
	Tombstones int
	Grows      int
	Shrinks    int
}

// New creates an empty table sized to the next prime at or above the base size
func New(opts ...Option) (*Table, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.baseSize < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBaseSize, cfg.baseSize)
	}
	if cfg.baseSize < MinSize {
		cfg.baseSize = MinSize
	}

	return &Table{
		slots:    make([]slot, NextPrime(cfg.baseSize)),
		baseSize: cfg.baseSize,
		hasher:   cfg.hasher,
		logger:   cfg.logger,
	}, nil
}

// Insert stores value under key, replacing any previous value for key
func (t *Table) Insert(key, value string) error {
	if t.destroyed {
		return ErrDestroyed
	}

	if load := t.LoadFactor(); load > GrowThreshold {
		t.logger.Debug("resize triggered",
			zap.String("direction", "grow"),
			zap.Int("load", load),
			zap.Int("count", t.count),
			zap.Int("size", len(t.slots)))
		t.resize(len(t.slots) * 2)
	}

	// Clone so the table never shares backing memory with the caller
	return t.put(strings.Clone(key), strings.Clone(value))
}

// put places an entry without checking the load factor
func (t *Table) put(key, value string) error {
	seq := newProbeSeq(t.hasher, key, len(t.slots))
	tomb := -1

	for attempt := 0; attempt < len(t.slots); attempt++ {
		idx := seq.at(attempt)
		s := &t.slots[idx]

		switch s.state {
		case slotEmpty:
			if tomb >= 0 {
				idx = tomb
			}
			t.occupy(idx, key, value)
			return nil

		case slotTombstone:
			// Reuse the first tombstone, but only once the key is known
			// to be absent further down the chain.
			if tomb < 0 {
				tomb = idx
			}

		case slotOccupied:
			if s.entry.key == key {
				s.entry = entry{key: key, value: value}
				return nil
			}
		}
	}

	if tomb >= 0 {
		t.occupy(tomb, key, value)
		return nil
	}
	return ErrTableFull
}

func (t *Table) occupy(idx int, key, value string) {
	if t.slots[idx].state == slotTombstone {
		t.tombstones--
	}
	t.slots[idx] = slot{state: slotOccupied, entry: entry{key: key, value: value}}
	t.count++
}

// Search returns the value stored under key
func (t *Table) Search(key string) (string, bool) {
	idx, ok := t.lookup(key)
	if !ok {
		return "", false
	}
	return t.slots[idx].entry.value, true
}

// Contains reports whether key is present
func (t *Table) Contains(key string) bool {
	_, ok := t.lookup(key)
	return ok
}

// lookup walks the probe sequence of key past tombstones until it finds
// the key or an empty slot.
func (t *Table) lookup(key string) (int, bool) {
	if len(t.slots) == 0 {
		return 0, false
	}

	seq := newProbeSeq(t.hasher, key, len(t.slots))
	for attempt := 0; attempt < len(t.slots); attempt++ {
		idx := seq.at(attempt)
		s := &t.slots[idx]

		switch s.state {
		case slotEmpty:
			return 0, false
		case slotOccupied:
			if s.entry.key == key {
				return idx, true
			}
		}
	}
	return 0, false
}

// Delete removes key. Deleting a missing key is a no-op.
func (t *Table) Delete(key string) error {
	if t.destroyed {
		return ErrDestroyed
	}

	if load := t.LoadFactor(); load < ShrinkThreshold {
		t.logger.Debug("resize triggered",
			zap.String("direction", "shrink"),
			zap.Int("load", load),
			zap.Int("count", t.count),
			zap.Int("size", len(t.slots)))
		t.resize(len(t.slots) / 2)
	}

	idx, ok := t.lookup(key)
	if !ok {
		return nil
	}

	// A tombstone keeps later entries of the same probe chain reachable
	t.slots[idx] = slot{state: slotTombstone}
	t.count--
	t.tombstones++
	return nil
}

// resize rehashes every live entry into a table seeded with baseSize.
// Requests below MinSize are ignored.
func (t *Table) resize(baseSize int) {
	if baseSize < MinSize {
		t.logger.Debug("resize skipped",
			zap.Int("base_size", baseSize),
			zap.Int("floor", MinSize))
		return
	}

	fresh := &Table{
		slots:    make([]slot, NextPrime(baseSize)),
		baseSize: baseSize,
		hasher:   t.hasher,
		logger:   t.logger,
	}

	for i := range t.slots {
		s := &t.slots[i]
		if s.state != slotOccupied {
			continue
		}
		if err := fresh.put(s.entry.key, s.entry.value); err != nil {
			t.logger.Error("resize aborted",
				zap.Int("base_size", baseSize),
				zap.Int("count", t.count),
				zap.Error(err))
			return
		}
	}

	grow := len(fresh.slots) > len(t.slots)
	dropped := t.tombstones
	prevSize := len(t.slots)

	t.slots = fresh.slots
	t.baseSize = fresh.baseSize
	t.count = fresh.count
	t.tombstones = 0
	if grow {
		t.grows++
	} else {
		t.shrinks++
	}

	t.logger.Debug("resize complete",
		zap.Int("old_size", prevSize),
		zap.Int("new_size", len(t.slots)),
		zap.Int("count", t.count),
		zap.Int("dropped_tombstones", dropped))
}

// Destroy releases every entry and the slot array. Later mutations return
// ErrDestroyed and searches find nothing.
func (t *Table) Destroy() {
	t.slots = nil
	t.count = 0
	t.tombstones = 0
	t.destroyed = true
}

// Range calls fn for every entry in slot order until fn returns false.
// The order is unspecified and changes across resizes.
func (t *Table) Range(fn func(key, value string) bool) {
	for i := range t.slots {
		s := &t.slots[i]
		if s.state != slotOccupied {
			continue
		}
		if !fn(s.entry.key, s.entry.value) {
			return
		}
	}
}

// Len returns the number of live entries
func (t *Table) Len() int {
	return t.count
}

// Size returns the number of slots, always a prime unless destroyed
func (t *Table) Size() int {
	return len(t.slots)
}

// BaseSize returns the capacity seed the current size was derived from
func (t *Table) BaseSize() int {
	return t.baseSize
}

// LoadFactor returns the integer percentage of slots holding live entries
func (t *Table) LoadFactor() int {
	if len(t.slots) == 0 {
		return 0
	}
	return t.count * 100 / len(t.slots)
}

// Stats returns a snapshot of the table's counters
func (t *Table) Stats() Stats {
	return Stats{
		Count:      t.count,
		Size:       len(t.slots),
		BaseSize:   t.baseSize,
		Tombstones: t.tombstones,
		Grows:      t.grows,
		Shrinks:    t.shrinks,
	}
}
