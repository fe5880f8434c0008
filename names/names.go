// Package names maps class labels to human-readable crop names.
package names

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/arloliu/cropfit/internal/collision"
	"github.com/arloliu/cropfit/internal/hash"
)

// Table is an immutable label → name table. Label i is the i-th name the
// table was built from.
type Table struct {
	tracker *collision.Tracker
}

// New builds a Table from display names, used as given.
func New(displayNames []string) (*Table, error) {
	tr := collision.NewTracker(len(displayNames))
	for i, name := range displayNames {
		if _, err := tr.Track(name, hash.ID(name)); err != nil {
			return nil, fmt.Errorf("class %d: %w", i, err)
		}
	}

	return &Table{tracker: tr}, nil
}

// FromCrops builds a Table from raw crop identifiers as stored by the
// training pipeline ("rice", "kidneybeans"), capitalizing each one:
// the first letter is upper-cased and the rest lower-cased.
func FromCrops(crops []string) (*Table, error) {
	display := make([]string, len(crops))
	for i, c := range crops {
		display[i] = Capitalize(c)
	}

	return New(display)
}

// Capitalize upper-cases the first letter of s and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)

	// Casers keep state between calls and cannot be shared across goroutines.
	return cases.Upper(language.Und).String(s[:size]) + cases.Lower(language.Und).String(s[size:])
}

// Len returns the number of names.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}

	return t.tracker.Count()
}

// Name returns the name registered for label.
func (t *Table) Name(label int) (string, bool) {
	if t == nil || label < 0 || label >= t.tracker.Count() {
		return "", false
	}

	return t.tracker.Names()[label], true
}

// Resolve returns the name registered for label, or the decimal label when
// none is registered.
func (t *Table) Resolve(label int) string {
	if name, ok := t.Name(label); ok {
		return name
	}

	return strconv.Itoa(label)
}

// Lookup returns the label registered for an exact display name.
func (t *Table) Lookup(name string) (int, bool) {
	if t == nil {
		return -1, false
	}

	return t.tracker.Lookup(name, hash.ID(name))
}

// Names returns a copy of all names in label order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}

	return append([]string(nil), t.tracker.Names()...)
}
