package kinetic

import "github.com/kineticgo/kinetic/kproto"

// Status is the closed result taxonomy returned to callers. It merges
// transport-level outcomes with the server's own protocol status codes
// into a single, stable enumeration so callers never have to look past
// the completion closure to know what happened to an operation.
type Status int32

const (
	// StatusSuccess indicates the operation completed and, if it carried
	// a server reply, the server reported its own success.
	StatusSuccess Status = iota
	// StatusSocketError indicates a transport-level send or receive
	// failure (connection reset, short write, oversize frame, ...).
	StatusSocketError
	// StatusSocketTimeout indicates the underlying write did not
	// complete before its deadline.
	StatusSocketTimeout
	// StatusOperationTimedOut indicates no reply arrived before the
	// operation's deadline.
	StatusOperationTimedOut
	// StatusInvalid indicates a programming error or a malformed
	// reply that carried no usable status.
	StatusInvalid
	// StatusDataError indicates a reply that failed its HMAC check, or a
	// server-reported DATA_ERROR. Framing failures surface as
	// StatusSocketError instead.
	StatusDataError
	// StatusConnectionError names a failure to reach connectionReady
	// before the handshake timeout. Connect does not return it: Connect
	// reports that failure as an error wrapping ErrHandshakeTimeout.
	StatusConnectionError

	statusTransportBoundary // sentinel; server codes start above this value
)

// Server protocol status codes, one-to-one with kproto.Command_Status_StatusCode.
const (
	StatusNotAttempted Status = statusTransportBoundary + iota
	StatusHMACFailure
	StatusNotAuthorized
	StatusVersionFailure
	StatusInternalError
	StatusHeaderRequired
	StatusNotFound
	StatusVersionMismatch
	StatusServiceBusy
	StatusExpired
	StatusPermDataError
	StatusRemoteConnectionError
	StatusNoSpace
	StatusNoSuchHMACAlgorithm
	StatusInvalidRequest
	StatusNestedOperationErrors
	StatusDeviceLocked
	StatusDeviceAlreadyUnlocked
	StatusConnectionTerminated
	StatusInvalidBatch
)

var statusNames = map[Status]string{
	StatusSuccess:               "SUCCESS",
	StatusSocketError:           "SOCKET_ERROR",
	StatusSocketTimeout:         "SOCKET_TIMEOUT",
	StatusOperationTimedOut:     "OPERATION_TIMED_OUT",
	StatusInvalid:               "INVALID",
	StatusDataError:             "DATA_ERROR",
	StatusConnectionError:       "CONNECTION_ERROR",
	StatusNotAttempted:          "NOT_ATTEMPTED",
	StatusHMACFailure:           "HMAC_FAILURE",
	StatusNotAuthorized:         "NOT_AUTHORIZED",
	StatusVersionFailure:        "VERSION_FAILURE",
	StatusInternalError:         "INTERNAL_ERROR",
	StatusHeaderRequired:        "HEADER_REQUIRED",
	StatusNotFound:              "NOT_FOUND",
	StatusVersionMismatch:       "VERSION_MISMATCH",
	StatusServiceBusy:           "SERVICE_BUSY",
	StatusExpired:               "EXPIRED",
	StatusPermDataError:         "PERM_DATA_ERROR",
	StatusRemoteConnectionError: "REMOTE_CONNECTION_ERROR",
	StatusNoSpace:               "NO_SPACE",
	StatusNoSuchHMACAlgorithm:   "NO_SUCH_HMAC_ALGORITHM",
	StatusInvalidRequest:        "INVALID_REQUEST",
	StatusNestedOperationErrors: "NESTED_OPERATION_ERRORS",
	StatusDeviceLocked:          "DEVICE_LOCKED",
	StatusDeviceAlreadyUnlocked: "DEVICE_ALREADY_UNLOCKED",
	StatusConnectionTerminated:  "CONNECTION_TERMINATED",
	StatusInvalidBatch:          "INVALID_BATCH",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN_STATUS"
}

// IsOK reports whether the status represents a successful outcome.
func (s Status) IsOK() bool { return s == StatusSuccess }

// statusFromServerCode maps a server-reported kproto status code onto
// the public Status taxonomy.
func statusFromServerCode(code kproto.Command_Status_StatusCode) Status {
	switch code {
	case kproto.Command_Status_SUCCESS:
		return StatusSuccess
	case kproto.Command_Status_NOT_ATTEMPTED:
		return StatusNotAttempted
	case kproto.Command_Status_HMAC_FAILURE:
		return StatusHMACFailure
	case kproto.Command_Status_NOT_AUTHORIZED:
		return StatusNotAuthorized
	case kproto.Command_Status_VERSION_FAILURE:
		return StatusVersionFailure
	case kproto.Command_Status_INTERNAL_ERROR:
		return StatusInternalError
	case kproto.Command_Status_HEADER_REQUIRED:
		return StatusHeaderRequired
	case kproto.Command_Status_NOT_FOUND:
		return StatusNotFound
	case kproto.Command_Status_VERSION_MISMATCH:
		return StatusVersionMismatch
	case kproto.Command_Status_SERVICE_BUSY:
		return StatusServiceBusy
	case kproto.Command_Status_EXPIRED:
		return StatusExpired
	case kproto.Command_Status_DATA_ERROR:
		return StatusDataError
	case kproto.Command_Status_PERM_DATA_ERROR:
		return StatusPermDataError
	case kproto.Command_Status_REMOTE_CONNECTION_ERROR:
		return StatusRemoteConnectionError
	case kproto.Command_Status_NO_SPACE:
		return StatusNoSpace
	case kproto.Command_Status_NO_SUCH_HMAC_ALGORITHM:
		return StatusNoSuchHMACAlgorithm
	case kproto.Command_Status_INVALID_REQUEST:
		return StatusInvalidRequest
	case kproto.Command_Status_NESTED_OPERATION_ERRORS:
		return StatusNestedOperationErrors
	case kproto.Command_Status_DEVICE_LOCKED:
		return StatusDeviceLocked
	case kproto.Command_Status_DEVICE_ALREADY_UNLOCKED:
		return StatusDeviceAlreadyUnlocked
	case kproto.Command_Status_CONNECTION_TERMINATED:
		return StatusConnectionTerminated
	case kproto.Command_Status_INVALID_BATCH:
		return StatusInvalidBatch
	default:
		return StatusInvalid
	}
}

// busOutcome is the Transport's internal per-reply result, mirroring the
// source's bus_send_status_t. It is mapped to a public Status by
// statusFromOutcome before it ever reaches a completion closure.
type busOutcome int

const (
	outcomeSuccess busOutcome = iota
	outcomeTxTimeout
	outcomeTxFailure
	outcomeRxTimeout
	outcomeRxFailure
	outcomeBadResponse
	outcomeUnregisteredSocket
	outcomeRxTimeoutInternal
	outcomeUndefined
)

func (o busOutcome) String() string {
	switch o {
	case outcomeSuccess:
		return "success"
	case outcomeTxTimeout:
		return "tx_timeout"
	case outcomeTxFailure:
		return "tx_failure"
	case outcomeRxTimeout:
		return "rx_timeout"
	case outcomeRxFailure:
		return "rx_failure"
	case outcomeBadResponse:
		return "bad_response"
	case outcomeUnregisteredSocket:
		return "unregistered_socket"
	case outcomeRxTimeoutInternal:
		return "rx_timeout_internal"
	default:
		return "undefined"
	}
}

// statusFromOutcome maps the Transport's internal outcome onto the public
// Status taxonomy. outcomeUndefined maps to StatusInvalid; it additionally
// panics when debug mode is enabled, matching the original's
// KINETIC_ASSERT(false) gated to non-release builds.
func statusFromOutcome(o busOutcome, debug bool) Status {
	switch o {
	case outcomeSuccess:
		return StatusSuccess
	case outcomeTxTimeout:
		return StatusSocketTimeout
	case outcomeTxFailure:
		return StatusSocketError
	case outcomeRxTimeout:
		return StatusOperationTimedOut
	case outcomeRxFailure:
		return StatusSocketError
	case outcomeBadResponse:
		return StatusSocketError
	case outcomeUnregisteredSocket:
		return StatusSocketError
	case outcomeRxTimeoutInternal:
		return StatusOperationTimedOut
	default:
		if debug {
			panic("kinetic: unmatched bus outcome " + o.String())
		}
		return StatusInvalid
	}
}
