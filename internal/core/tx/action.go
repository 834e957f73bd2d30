package tx

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownActionType is returned when an action name has no registered factory.
var ErrUnknownActionType = errors.New("unknown action type")

// Action is the interface every state-changing exchange action implements.
// Validate performs stateless input checks; Apply runs against the tracked
// state view and either succeeds completely or leaves no trace.
type Action interface {
	// ActionName returns the wire name of the action, e.g. "create.pair".
	ActionName() string

	// Validate checks the action's fields without touching state.
	Validate() error

	// Apply executes the action against the context's view.
	Apply(ctx *ApplyContext) Result
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]func() Action)
)

// Register installs a factory for an action name. Action packages call this
// from init.
func Register(name string, factory func() Action) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// NewFromName creates an empty action of the named type.
func NewFromName(name string) (Action, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownActionType, name)
	}
	return factory(), nil
}

// FromJSON creates an action of the named type from its JSON parameters.
func FromJSON(name string, params []byte) (Action, error) {
	action, err := NewFromName(name)
	if err != nil {
		return nil, err
	}
	if len(params) > 0 {
		if err := json.Unmarshal(params, action); err != nil {
			return nil, fmt.Errorf("decode %s params: %w", name, err)
		}
	}
	return action, nil
}

// RegisteredActions returns the sorted names of all registered actions.
func RegisteredActions() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
