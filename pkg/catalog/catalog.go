// Package catalog declares the fixed set of cafe actions the Reasoner is bound to.
package catalog

import (
	"context"
	"fmt"

	"github.com/aretw0/baristabot/pkg/domain"
	"github.com/aretw0/baristabot/pkg/ports"
	"github.com/aretw0/baristabot/pkg/registry"
)

var noParameters = map[string]any{
	"type":       "object",
	"properties": map[string]any{},
}

// Default returns the cafe catalog: one auto-executable menu lookup and the
// order-mutating actions handled by the Order Handler.
func Default() []domain.Action {
	return []domain.Action{
		{
			Name:        domain.ActionGetMenu,
			Description: "Provide the latest up-to-date menu.",
			Parameters:  noParameters,
			Class:       domain.ClassAuto,
		},
		{
			Name: domain.ActionAddToOrder,
			Description: "Adds the specified drink to the customer's order, including any modifiers. " +
				"Returns the updated order in progress.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"drink": map[string]any{
						"type":        "string",
						"description": "The name of the drink to add, as written on the menu.",
					},
					"modifiers": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "Modifiers for the drink (milk, espresso, syrups, temperature).",
					},
				},
				"required": []string{"drink"},
			},
			Class: domain.ClassOrder,
		},
		{
			Name:        domain.ActionConfirmOrder,
			Description: "Asks the customer if the order is correct. The customer's answer arrives in their next message.",
			Parameters:  noParameters,
			Class:       domain.ClassOrder,
		},
		{
			Name:        domain.ActionGetOrder,
			Description: "Returns the order so far, one item per line. Shown to you, not to the customer.",
			Parameters:  noParameters,
			Class:       domain.ClassOrder,
		},
		{
			Name:        domain.ActionClearOrder,
			Description: "Removes all items from the customer's order.",
			Parameters:  noParameters,
			Class:       domain.ClassOrder,
		},
		{
			Name:        domain.ActionPlaceOrder,
			Description: "Sends the order to the barista for fulfillment. Returns a confirmation number.",
			Parameters:  noParameters,
			Class:       domain.ClassOrder,
		},
	}
}

// Handlers returns the auto-executable handlers of the default catalog.
func Handlers(menu ports.MenuProvider) map[string]registry.Handler {
	return map[string]registry.Handler{
		domain.ActionGetMenu: func(ctx context.Context, _ map[string]any) (string, error) {
			text, err := menu.Menu(ctx)
			if err != nil {
				return "", fmt.Errorf("menu lookup: %w", err)
			}
			return text, nil
		},
	}
}

// NewRegistry builds the registry for the default catalog.
func NewRegistry(menu ports.MenuProvider) (*registry.Registry, error) {
	return registry.New(Default(), Handlers(menu))
}
