package collision

import "errors"

var (
	// ErrEmptyName is returned when a blank class name is tracked.
	ErrEmptyName = errors.New("class name is empty")
	// ErrDuplicateName is returned when the same class name is tracked twice.
	ErrDuplicateName = errors.New("duplicate class name")
)

// Tracker maps hashed class names to class labels and detects hash
// collisions while a name table is being built.
//
// When two different names share a hash, the tracker records the collision
// and Lookup falls back to comparing names, so a collision never produces a
// wrong label.
type Tracker struct {
	byHash       map[uint64]int // hash → first label with that hash
	names        []string       // label → name
	hasCollision bool
}

// NewTracker creates a tracker sized for n names.
func NewTracker(n int) *Tracker {
	return &Tracker{
		byHash: make(map[uint64]int, n),
		names:  make([]string, 0, n),
	}
}

// Track registers name with its hash and returns the label assigned to it,
// which is the number of names tracked before it.
func (t *Tracker) Track(name string, hash uint64) (int, error) {
	if name == "" {
		return -1, ErrEmptyName
	}

	label := len(t.names)
	existing, hit := t.byHash[hash]
	if hit && t.names[existing] == name {
		return -1, ErrDuplicateName
	}
	if hit || t.hasCollision {
		for _, n := range t.names {
			if n == name {
				return -1, ErrDuplicateName
			}
		}
	}

	if hit {
		t.hasCollision = true
	} else {
		t.byHash[hash] = label
	}

	t.names = append(t.names, name)

	return label, nil
}

// Lookup returns the label registered for name.
func (t *Tracker) Lookup(name string, hash uint64) (int, bool) {
	if !t.hasCollision {
		label, ok := t.byHash[hash]
		if !ok || t.names[label] != name {
			return -1, false
		}

		return label, true
	}

	for label, n := range t.names {
		if n == name {
			return label, true
		}
	}

	return -1, false
}

// HasCollision reports whether two tracked names shared a hash.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Names returns the tracked names in label order.
func (t *Tracker) Names() []string {
	return t.names
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	return len(t.names)
}
