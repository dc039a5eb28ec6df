package runtime

import (
	"github.com/aretw0/baristabot/pkg/domain"
)

// Classifier reports the class of a registered action.
type Classifier interface {
	Classify(name string) (domain.ActionClass, error)
}

// Route decides where control goes after the latest turn.
//
// A batch containing at least one auto-executable request is routed to
// AutoExec as a whole, even when order-mutating requests are mixed in.
// An unknown action name in the batch is fatal.
func Route(state *domain.ConversationState, classifier Classifier) (domain.Route, error) {
	last, ok := state.LastTurn()
	if !ok {
		return "", domain.ErrEmptyHistory
	}

	if !last.HasActionRequests() {
		if state.Finished {
			return domain.RouteTerminate, nil
		}
		return domain.RouteReasoner, nil
	}

	auto := false
	for _, req := range last.Requests {
		class, err := classifier.Classify(req.Name)
		if err != nil {
			return "", err
		}
		if class == domain.ClassAuto {
			auto = true
		}
	}

	if auto {
		return domain.RouteAutoExec, nil
	}
	return domain.RouteOrderExec, nil
}
