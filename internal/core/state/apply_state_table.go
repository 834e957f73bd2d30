package state

import (
	"fmt"

	"github.com/swapnode/swapd/internal/core/keylet"
)

// Action represents the type of modification to a tracked entry.
type Action int

const (
	// ActionCache means the entry was read but not modified.
	ActionCache Action = iota
	// ActionInsert means a new entry was created.
	ActionInsert
	// ActionModify means an existing entry was modified.
	ActionModify
	// ActionErase means an entry was deleted.
	ActionErase
)

// TrackedEntry records an entry's original and tentative state.
type TrackedEntry struct {
	Keylet   keylet.Keylet
	Action   Action
	Original []byte // original state (nil for inserts)
	Current  []byte // tentative state (nil after erase)
}

// ApplyStateTable wraps a base View and buffers all modifications. Nothing
// reaches the base until Commit; a failed action simply drops the table, which
// is what gives each action its all-or-nothing semantics.
type ApplyStateTable struct {
	base  View
	items map[[32]byte]*TrackedEntry
}

func NewApplyStateTable(base View) *ApplyStateTable {
	return &ApplyStateTable{
		base:  base,
		items: make(map[[32]byte]*TrackedEntry),
	}
}

func (t *ApplyStateTable) Read(k keylet.Keylet) ([]byte, error) {
	if entry, ok := t.items[k.Key]; ok {
		if entry.Action == ActionErase {
			return nil, nil
		}
		return entry.Current, nil
	}

	data, err := t.base.Read(k)
	if err != nil {
		return nil, err
	}
	if data != nil {
		t.items[k.Key] = &TrackedEntry{
			Keylet:   k,
			Action:   ActionCache,
			Original: data,
			Current:  data,
		}
	}
	return data, nil
}

func (t *ApplyStateTable) Exists(k keylet.Keylet) (bool, error) {
	if entry, ok := t.items[k.Key]; ok {
		return entry.Action != ActionErase, nil
	}
	return t.base.Exists(k)
}

func (t *ApplyStateTable) Insert(k keylet.Keylet, data []byte) error {
	if entry, ok := t.items[k.Key]; ok {
		if entry.Action != ActionErase {
			return ErrEntryExists
		}
		// Erased earlier in the same action: re-insert becomes a modify of the
		// original entry.
		entry.Action = ActionModify
		entry.Current = data
		return nil
	}

	exists, err := t.base.Exists(k)
	if err != nil {
		return err
	}
	if exists {
		return ErrEntryExists
	}
	t.items[k.Key] = &TrackedEntry{Keylet: k, Action: ActionInsert, Current: data}
	return nil
}

func (t *ApplyStateTable) Update(k keylet.Keylet, data []byte) error {
	if entry, ok := t.items[k.Key]; ok {
		if entry.Action == ActionErase {
			return ErrEntryNotFound
		}
		if entry.Action == ActionCache {
			entry.Action = ActionModify
		}
		entry.Current = data
		return nil
	}

	original, err := t.base.Read(k)
	if err != nil {
		return err
	}
	if original == nil {
		return ErrEntryNotFound
	}
	t.items[k.Key] = &TrackedEntry{
		Keylet:   k,
		Action:   ActionModify,
		Original: original,
		Current:  data,
	}
	return nil
}

func (t *ApplyStateTable) Erase(k keylet.Keylet) error {
	if entry, ok := t.items[k.Key]; ok {
		switch entry.Action {
		case ActionErase:
			return ErrEntryNotFound
		case ActionInsert:
			// Created and destroyed within one action: forget it entirely.
			delete(t.items, k.Key)
			return nil
		default:
			entry.Action = ActionErase
			entry.Current = nil
			return nil
		}
	}

	original, err := t.base.Read(k)
	if err != nil {
		return err
	}
	if original == nil {
		return ErrEntryNotFound
	}
	t.items[k.Key] = &TrackedEntry{
		Keylet:   k,
		Action:   ActionErase,
		Original: original,
	}
	return nil
}

// Commit writes every buffered change through to the base view.
func (t *ApplyStateTable) Commit() error {
	for _, entry := range t.items {
		var err error
		switch entry.Action {
		case ActionInsert:
			err = t.base.Insert(entry.Keylet, entry.Current)
		case ActionModify:
			err = t.base.Update(entry.Keylet, entry.Current)
		case ActionErase:
			err = t.base.Erase(entry.Keylet)
		case ActionCache:
			continue
		}
		if err != nil {
			return fmt.Errorf("commit state table: %w", err)
		}
	}
	return nil
}

// Changes returns the tracked entries that were actually modified. Used for
// receipts and event publication.
func (t *ApplyStateTable) Changes() []*TrackedEntry {
	out := make([]*TrackedEntry, 0, len(t.items))
	for _, entry := range t.items {
		if entry.Action != ActionCache {
			out = append(out, entry)
		}
	}
	return out
}
