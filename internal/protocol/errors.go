package protocol

const (
	// Protocol/transport validation.
	ErrProtoBadRequest = "E_PROTO_BAD_REQUEST"

	// Request envelope.
	ErrBadRequest    = "E_BAD_REQUEST"
	ErrMissingAction = "E_MISSING_ACTION"
	ErrInvalidTarget = "E_INVALID_TARGET"

	// Dispatch layer.
	ErrUnknownAction = "E_UNKNOWN_ACTION"
	ErrPlannerFailed = "E_PLANNER_FAILED"
	ErrInternal      = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrProtoBadRequest: {},
	ErrBadRequest:      {},
	ErrMissingAction:   {},
	ErrInvalidTarget:   {},
	ErrUnknownAction:   {},
	ErrPlannerFailed:   {},
	ErrInternal:        {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}
