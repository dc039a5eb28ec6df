/*
Package baristabot is a conversational ordering agent for a cafe.

A language model (the Reasoner) talks to the customer and declares actions:
looking up the menu, adding drinks, confirming, clearing or placing the order.
The engine routes every declared action either to a read-only lookup or to a
deterministic order handler, so the order itself only ever changes through
auditable code paths.

# Concept

The engine is stateless. Every call receives the full ConversationState and
returns the next one; persisting it between user turns is the caller's job
(see pkg/session and the store adapters). One call handles one user message
and loops through Reasoner turns and action batches until the Reasoner
answers with text, or the order was placed and the conversation ends.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/baristabot"
		"github.com/aretw0/baristabot/pkg/adapters/openai"
		"github.com/aretw0/baristabot/pkg/catalog"
	)

	func main() {
		reasoner := openai.New(catalog.Default(), openai.WithAPIKey("sk-..."))

		eng, err := baristabot.New(reasoner)
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		state := eng.Start("session-123")

		state, err = eng.HandleUserMessage(ctx, state, "A latte with oat milk, please")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(state.LastReply())
	}

# Architecture

  - pkg/domain: turns, orders, conversation state, routes and errors.
  - pkg/registry and pkg/catalog: the static action catalog.
  - internal/runtime: router, order handler and dialogue loop.
  - pkg/ports: Reasoner, MenuProvider, Fulfillment and StateStore boundaries.
  - pkg/adapters: OpenAI, HTTP, MCP, file, memory and Redis implementations.
*/
package baristabot
