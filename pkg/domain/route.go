package domain

// Route is the decision taken after every Reasoner turn.
type Route string

const (
	// RouteReasoner hands control back to the Reasoner once the user speaks again.
	RouteReasoner Route = "reasoner"
	// RouteAutoExec executes the batch through the action registry.
	RouteAutoExec Route = "auto_exec"
	// RouteOrderExec executes the batch through the Order Handler.
	RouteOrderExec Route = "order_exec"
	// RouteTerminate ends the conversation.
	RouteTerminate Route = "terminate"
)
