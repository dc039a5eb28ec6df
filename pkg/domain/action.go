package domain

// Action names of the cafe catalog.
const (
	ActionGetMenu      = "get_menu"
	ActionAddToOrder   = "add_to_order"
	ActionConfirmOrder = "confirm_order"
	ActionGetOrder     = "get_order"
	ActionClearOrder   = "clear_order"
	ActionPlaceOrder   = "place_order"
)

// ActionClass tells the router which subsystem executes an action.
type ActionClass string

const (
	// ClassAuto marks read-only actions executed directly from the registry.
	ClassAuto ActionClass = "auto"
	// ClassOrder marks actions that change or finalize the order and must go through the Order Handler.
	ClassOrder ActionClass = "order"
)

// Action describes an operation the Reasoner may request.
// Name, Description and Parameters are what the model is bound to.
type Action struct {
	Name        string         `json:"name" yaml:"name" mapstructure:"name"`
	Description string         `json:"description" yaml:"description" mapstructure:"description"`
	Parameters  map[string]any `json:"parameters,omitempty" yaml:"parameters,omitempty" mapstructure:"parameters"`
	Class       ActionClass    `json:"class" yaml:"class" mapstructure:"class"`
}

// ActionRequest is a single action the Reasoner asked for.
// ID correlates the request with its ActionResult.
type ActionRequest struct {
	ID   string         `json:"id" yaml:"id" mapstructure:"id"`
	Name string         `json:"name" yaml:"name" mapstructure:"name"`
	Args map[string]any `json:"args,omitempty" yaml:"args,omitempty" mapstructure:"args"`
}

// ActionResult is the outcome of one ActionRequest.
type ActionResult struct {
	RequestID string `json:"request_id"` // Must match the ActionRequest.ID
	Name      string `json:"name"`
	Content   string `json:"content"`
	IsError   bool   `json:"is_error,omitempty"`
}
