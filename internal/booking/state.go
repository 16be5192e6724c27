package booking

import (
	"net/http"
	"strings"

	"github.com/shareit-go/shareit-server/internal/pkg/apperror"
)

// State is a query-time filter over bookings. ALL, CURRENT, FUTURE and PAST
// classify the raw time window against now; WAITING and REJECTED alias the
// stored status. A State is never persisted.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StateFuture   State = "FUTURE"
	StatePast     State = "PAST"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState converts a state query parameter into a State. Unrecognized
// values fail here, before any query is built.
func ParseState(s string) (State, error) {
	switch State(strings.ToUpper(strings.TrimSpace(s))) {
	case StateAll:
		return StateAll, nil
	case StateCurrent:
		return StateCurrent, nil
	case StateFuture:
		return StateFuture, nil
	case StatePast:
		return StatePast, nil
	case StateWaiting:
		return StateWaiting, nil
	case StateRejected:
		return StateRejected, nil
	default:
		return "", apperror.Newf(http.StatusBadRequest, "unknown state: %s", s)
	}
}
