// Package state provides read/write access to exchange state and the
// change-tracking table that makes every action all-or-nothing.
package state

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/swapnode/swapd/internal/core/keylet"
	"github.com/swapnode/swapd/internal/storage/keyValueDb"
)

var (
	// ErrEntryExists is returned by Insert when the keylet is already occupied.
	ErrEntryExists = errors.New("entry already exists")

	// ErrEntryNotFound is returned by Update and Erase when the keylet is vacant.
	ErrEntryNotFound = errors.New("entry not found")
)

// View provides read/write access to exchange state. Read returns nil data
// (and no error) for a vacant keylet.
type View interface {
	Read(k keylet.Keylet) ([]byte, error)
	Exists(k keylet.Keylet) (bool, error)
	Insert(k keylet.Keylet, data []byte) error
	Update(k keylet.Keylet, data []byte) error
	Erase(k keylet.Keylet) error
}

// KVView adapts a keyValueDb backend into a View. Records are stored under a
// 2-byte space prefix followed by the 32-byte keylet key.
type KVView struct {
	db keyValueDb.DB
}

func NewKVView(db keyValueDb.DB) *KVView {
	return &KVView{db: db}
}

func storageKey(k keylet.Keylet) []byte {
	key := make([]byte, 2+len(k.Key))
	binary.BigEndian.PutUint16(key[:2], k.Space)
	copy(key[2:], k.Key[:])
	return key
}

func (v *KVView) Read(k keylet.Keylet) ([]byte, error) {
	data, err := v.db.Read(context.Background(), storageKey(k))
	if err != nil {
		if errors.Is(err, keyValueDb.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (v *KVView) Exists(k keylet.Keylet) (bool, error) {
	data, err := v.Read(k)
	if err != nil {
		return false, err
	}
	return data != nil, nil
}

func (v *KVView) Insert(k keylet.Keylet, data []byte) error {
	exists, err := v.Exists(k)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: space %c", ErrEntryExists, rune(k.Space))
	}
	return v.db.Write(context.Background(), storageKey(k), data)
}

func (v *KVView) Update(k keylet.Keylet, data []byte) error {
	exists, err := v.Exists(k)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: space %c", ErrEntryNotFound, rune(k.Space))
	}
	return v.db.Write(context.Background(), storageKey(k), data)
}

func (v *KVView) Erase(k keylet.Keylet) error {
	exists, err := v.Exists(k)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: space %c", ErrEntryNotFound, rune(k.Space))
	}
	return v.db.Delete(context.Background(), storageKey(k))
}
