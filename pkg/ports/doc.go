/*
Package ports defines the driven ports (interfaces) of the BaristaBot engine.

These interfaces decouple the dialogue core from external implementations, allowing
the engine to work with different model bindings, menu sources, fulfillment systems
and storage backends.

# Key Interfaces

  - Reasoner: Produces the next assistant turn from the full history.
  - MenuProvider: Supplies the menu text returned by the menu lookup action.
  - Fulfillment: Receives placed orders (the kitchen hand-off).
  - StateStore: Persists ConversationState between user turns.
  - DistributedLocker: Provides distributed locking for handling concurrent session access.
*/
package ports
