package ledger

import (
	"fmt"
	"iter"
	"slices"

	"farmdesk/internal/pkg/errs"
)

// Book is the full ledger of one customer, kept in (occurredAt, id) order with
// every running balance consistent with the amounts before it.
type Book struct {
	customerID string
	entries    []Entry
	drifted    []Entry
}

// NewBook orders the given saved entries and recomputes their running balances.
// Entries whose stored balance disagreed with the recomputed one are available
// through Drifted.
func NewBook(customerID string, entries []Entry) (*Book, error) {
	if customerID == "" {
		return nil, errs.NewValueIsRequiredError("customerId")
	}

	sorted := slices.Clone(entries)
	for _, e := range sorted {
		if e.customerID != customerID {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"entries", fmt.Errorf("entry %d belongs to %s, not %s", e.id, e.customerID, customerID),
			)
		}
		if e.id == 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause("entries", fmt.Errorf("unsaved entry in %s", customerID))
		}
	}
	slices.SortStableFunc(sorted, compare)

	b := &Book{customerID: customerID, entries: sorted}
	b.drifted = b.recompute(0)
	return b, nil
}

// CustomerID returns the owner of the book.
func (b *Book) CustomerID() string {
	return b.customerID
}

// Post inserts an unsaved entry at its ordering position and recomputes the
// balances from there on. It returns the inserted entry with its balance, and
// the already saved entries whose balance changed (non-empty only for
// back-dated inserts).
func (b *Book) Post(e Entry) (Entry, []Entry, error) {
	if e.customerID != b.customerID {
		return Entry{}, nil, errs.NewValueIsInvalidErrorWithCause(
			"customerId", fmt.Errorf("entry belongs to %s, not %s", e.customerID, b.customerID),
		)
	}
	if e.id != 0 {
		return Entry{}, nil, errs.NewValueIsInvalidErrorWithCause("ledgerId", fmt.Errorf("entry %d is already saved", e.id))
	}

	pos, _ := slices.BinarySearchFunc(b.entries, e, func(existing, target Entry) int {
		if target.less(existing) {
			return 1
		}
		return -1
	})
	b.entries = slices.Insert(b.entries, pos, e)

	changed := b.recompute(pos)
	posted := b.entries[pos]
	return posted, withoutUnsaved(changed), nil
}

// Delete removes the entry with the given id and recomputes the balances after it.
// It returns the removed entry and the saved entries whose balance changed.
func (b *Book) Delete(id int64) (Entry, []Entry, error) {
	pos := slices.IndexFunc(b.entries, func(e Entry) bool { return e.id == id })
	if pos < 0 {
		return Entry{}, nil, errs.NewObjectNotFoundError("ledgerId", id)
	}

	removed := b.entries[pos]
	b.entries = slices.Delete(b.entries, pos, pos+1)
	return removed, b.recompute(pos), nil
}

// Balance is the terminal running balance, 0 for an empty ledger.
func (b *Book) Balance() int64 {
	if len(b.entries) == 0 {
		return 0
	}
	return b.entries[len(b.entries)-1].runningBalance
}

// Len returns the number of entries.
func (b *Book) Len() int {
	return len(b.entries)
}

// Entries yields the entries in ledger order.
func (b *Book) Entries() iter.Seq[Entry] {
	return slices.Values(slices.Clone(b.entries))
}

// Drifted returns the entries whose stored balance was corrected by NewBook.
func (b *Book) Drifted() []Entry {
	return slices.Clone(b.drifted)
}

// recompute rebuilds running balances from index from and returns the entries
// whose balance changed.
func (b *Book) recompute(from int) []Entry {
	var prev int64
	if from > 0 {
		prev = b.entries[from-1].runningBalance
	}

	var changed []Entry
	for i := from; i < len(b.entries); i++ {
		next := prev + b.entries[i].amount
		if b.entries[i].runningBalance != next || b.entries[i].id == 0 {
			b.entries[i].runningBalance = next
			changed = append(changed, b.entries[i])
		}
		prev = next
	}
	return changed
}

func compare(a, b Entry) int {
	switch {
	case a.less(b):
		return -1
	case b.less(a):
		return 1
	default:
		return 0
	}
}

func withoutUnsaved(entries []Entry) []Entry {
	return slices.DeleteFunc(entries, func(e Entry) bool { return e.id == 0 })
}
