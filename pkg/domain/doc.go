/*
Package domain contains the core domain models of the BaristaBot dialogue engine.

It defines the conversation history, the order being assembled, the actions the
Reasoner may request and their results. This package is kept pure and free of
external dependencies like I/O or persistence, following Hexagonal Architecture
principles.

# Key Entities

  - Turn: One immutable entry of the conversation history (text, action requests or an action result).
  - ActionRequest / ActionResult: A named action requested by the Reasoner and its correlated outcome.
  - OrderLine / Order: The drinks collected so far, in insertion order.
  - ConversationState: The full snapshot of a session (History, Order, Finished).
*/
package domain
