package domain

// StateDiff represents the changes between two conversation states.
// It is designed to be serialized to JSON for partial updates on the client.
type StateDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	// Status changed?
	Status *ExecutionStatus `json:"status,omitempty"`

	// History contains the turns appended since the old state.
	History *HistoryDelta `json:"history,omitempty"`

	// Order holds the complete new order when any line changed.
	// Clients replace their local order with it.
	Order *Order `json:"order,omitempty"`

	// Finished changed?
	Finished *bool `json:"finished,omitempty"`

	// ConfirmationToken is set when the order was placed.
	ConfirmationToken *string `json:"confirmation_token,omitempty"`
}

// HistoryDelta represents turns appended to the history.
type HistoryDelta struct {
	Appended []Turn `json:"appended"`
}

// Diff calculates the difference between oldState and newState.
// If oldState is nil, it returns a diff representing the entire newState (initial load).
func Diff(oldState, newState *ConversationState) *StateDiff {
	if newState == nil {
		return nil
	}

	diff := &StateDiff{
		SessionID: newState.SessionID,
	}

	if oldState == nil || oldState.Status != newState.Status {
		diff.Status = &newState.Status
	}
	if oldState == nil {
		if newState.Finished {
			diff.Finished = &newState.Finished
		}
	} else if oldState.Finished != newState.Finished {
		diff.Finished = &newState.Finished
	}
	if newState.ConfirmationToken != "" && (oldState == nil || oldState.ConfirmationToken != newState.ConfirmationToken) {
		diff.ConfirmationToken = &newState.ConfirmationToken
	}

	diff.Order = diffOrder(oldState, newState)
	diff.History = diffHistory(oldState, newState)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func diffOrder(old *ConversationState, new *ConversationState) *Order {
	if old == nil {
		if len(new.Order) == 0 {
			return nil
		}
		order := new.Order.Clone()
		return &order
	}
	if old.Order.Equal(new.Order) {
		return nil
	}
	order := new.Order.Clone()
	if order == nil {
		order = Order{}
	}
	return &order
}

// diffHistory relies on the append-only contract of History.
func diffHistory(old *ConversationState, new *ConversationState) *HistoryDelta {
	if len(new.History) == 0 {
		return nil
	}
	if old == nil {
		return &HistoryDelta{Appended: new.History}
	}

	oldLen := len(old.History)
	if len(new.History) > oldLen {
		return &HistoryDelta{Appended: new.History[oldLen:]}
	}
	return nil
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *StateDiff) IsEmpty() bool {
	return d.Status == nil &&
		d.History == nil &&
		d.Order == nil &&
		d.Finished == nil &&
		d.ConfirmationToken == nil
}
