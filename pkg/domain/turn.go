package domain

// Role identifies the author of a Turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// TurnKind discriminates the variants of a Turn.
type TurnKind string

const (
	// TurnText carries plain text from the system, the user or the assistant.
	TurnText TurnKind = "text"
	// TurnActionRequests carries the assistant's batch of requested actions.
	TurnActionRequests TurnKind = "action_requests"
	// TurnActionResult carries the result of one requested action.
	TurnActionResult TurnKind = "action_result"
)

// Turn is one entry of the conversation history. Turns are never edited once appended.
//
// Exactly one variant is populated: Content for text turns, Requests for
// assistant action requests and Result for action results. Use the
// constructors below instead of building Turns by hand.
type Turn struct {
	Role     Role            `json:"role"`
	Content  string          `json:"content,omitempty"`
	Requests []ActionRequest `json:"requests,omitempty"`
	Result   *ActionResult   `json:"result,omitempty"`
}

// SystemTurn builds the persona instruction turn.
func SystemTurn(content string) Turn {
	return Turn{Role: RoleSystem, Content: content}
}

// UserTurn builds a turn authored by the human.
func UserTurn(content string) Turn {
	return Turn{Role: RoleUser, Content: content}
}

// AssistantTurn builds a plain-text reply from the Reasoner.
func AssistantTurn(content string) Turn {
	return Turn{Role: RoleAssistant, Content: content}
}

// ActionRequestTurn builds an assistant turn carrying a batch of action requests.
func ActionRequestTurn(requests ...ActionRequest) Turn {
	batch := make([]ActionRequest, len(requests))
	copy(batch, requests)
	return Turn{Role: RoleAssistant, Requests: batch}
}

// ResultTurn builds the tool-result turn for a single action.
func ResultTurn(result ActionResult) Turn {
	r := result
	return Turn{Role: RoleTool, Content: result.Content, Result: &r}
}

// Kind reports which variant the turn carries.
func (t Turn) Kind() TurnKind {
	switch {
	case len(t.Requests) > 0:
		return TurnActionRequests
	case t.Result != nil:
		return TurnActionResult
	default:
		return TurnText
	}
}

// HasActionRequests reports whether the turn is an action-request batch.
func (t Turn) HasActionRequests() bool {
	return t.Kind() == TurnActionRequests
}
