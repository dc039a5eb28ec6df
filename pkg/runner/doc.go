/*
Package runner drives a BaristaBot conversation from a line-oriented frontend.

It is the bridge between the dialogue engine and the outside world: it reads
customer messages through a pluggable IOHandler, sanitizes them, runs the turn
under the session lock and shows the reply. The same single-turn path
(SendMessage) is shared by the HTTP and MCP adapters.

# Key Components

  - Runner: the REPL loop used by `baristabot chat`.
  - IOHandler: decouples how messages are read and replies shown.
  - TextHandler: interactive terminal mode, replies rendered as markdown.
  - JSONHandler: JSON-Lines mode for scripted clients.

# Usage

	r := runner.NewRunner(engine,
		runner.WithSessions(session.NewManager(store)),
		runner.WithSessionID("table-4"),
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
	)

	if err := r.Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner
