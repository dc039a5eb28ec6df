package baristabot_test

import (
	"context"
	"fmt"

	"github.com/aretw0/baristabot"
	"github.com/aretw0/baristabot/internal/testutils"
	"github.com/aretw0/baristabot/pkg/domain"
)

func Example() {
	// A scripted Reasoner stands in for the language model.
	reasoner := testutils.NewScriptedReasoner(
		testutils.Call(testutils.AddLine("Cappuccino", "Oat")),
		testutils.Say("One oat cappuccino coming up. Anything else?"),
	)

	eng, err := baristabot.New(reasoner)
	if err != nil {
		panic(err)
	}

	state, err := eng.HandleUserMessage(context.Background(), eng.Start("demo"), "An oat cappuccino please")
	if err != nil {
		panic(err)
	}

	fmt.Println(state.LastReply())
	fmt.Println(state.Order.Summary())
	fmt.Println(state.History[2].Kind() == domain.TurnActionResult)
	// Output:
	// One oat cappuccino coming up. Anything else?
	// Cappuccino (Oat)
	// true
}
