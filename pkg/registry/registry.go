// Package registry maps action names to their class and, for auto-executable
// actions, to the handler that runs them.
//
// A Registry is built once from the action catalog and never changes afterwards,
// so it is safe for concurrent use without locking.
package registry

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/aretw0/baristabot/pkg/domain"
)

// Handler defines the signature for an auto-executable action.
// It receives a context and the request arguments and returns the result content.
type Handler func(ctx context.Context, args map[string]any) (string, error)

// ErrNotAutoExecutable is returned when resolving a handler for an order-mutating action.
var ErrNotAutoExecutable = errors.New("action is not auto-executable")

type entry struct {
	action  domain.Action
	handler Handler
}

// Registry holds the static action catalog.
type Registry struct {
	entries map[string]entry
	catalog []domain.Action
}

// New builds a registry from the catalog bound to the Reasoner.
//
// Every auto action must come with a handler, order-mutating actions must not
// have one, and every handler must belong to a catalog action.
func New(catalog []domain.Action, handlers map[string]Handler) (*Registry, error) {
	r := &Registry{
		entries: make(map[string]entry, len(catalog)),
		catalog: make([]domain.Action, 0, len(catalog)),
	}

	for _, action := range catalog {
		if action.Name == "" {
			return nil, fmt.Errorf("catalog contains an action without name")
		}
		if _, dup := r.entries[action.Name]; dup {
			return nil, fmt.Errorf("action %q registered twice", action.Name)
		}

		h := handlers[action.Name]
		switch action.Class {
		case domain.ClassAuto:
			if h == nil {
				return nil, fmt.Errorf("auto action %q has no handler", action.Name)
			}
		case domain.ClassOrder:
			if h != nil {
				return nil, fmt.Errorf("order action %q must not have an auto handler", action.Name)
			}
		default:
			return nil, fmt.Errorf("action %q has invalid class %q", action.Name, action.Class)
		}

		r.entries[action.Name] = entry{action: action, handler: h}
		r.catalog = append(r.catalog, action)
	}

	for name := range handlers {
		if _, ok := r.entries[name]; !ok {
			return nil, fmt.Errorf("handler %q does not match any catalog action", name)
		}
	}

	return r, nil
}

// Classify reports whether the action is auto-executable or order-mutating.
func (r *Registry) Classify(name string) (domain.ActionClass, error) {
	e, ok := r.entries[name]
	if !ok {
		return "", &domain.UnknownActionError{Name: name}
	}
	return e.action.Class, nil
}

// Resolve returns the handler of an auto-executable action.
func (r *Registry) Resolve(name string) (Handler, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, &domain.UnknownActionError{Name: name}
	}
	if e.action.Class != domain.ClassAuto {
		return nil, fmt.Errorf("%w: %s", ErrNotAutoExecutable, name)
	}
	return e.handler, nil
}

// Catalog returns the registered actions in catalog order.
func (r *Registry) Catalog() []domain.Action {
	return slices.Clone(r.catalog)
}

// Names returns the names of the actions of the given class, in catalog order.
func (r *Registry) Names(class domain.ActionClass) []string {
	var names []string
	for _, a := range r.catalog {
		if a.Class == class {
			names = append(names, a.Name)
		}
	}
	return names
}
