package parking

import (
	"github.com/cockroachdb/errors"
)

// Sentinel markers used to classify failures. Use errors.Is against these.
var (
	ErrConnectivity = errors.New("backend unreachable")
	ErrRejected     = errors.New("operation rejected")
	ErrPrecondition = errors.New("precondition not met")
)

// ConnectivityMessage is the operator-facing text for transport failures.
const ConnectivityMessage = "Error de conexión con el servidor."

// Kind is the coarse failure category shown to the operator.
type Kind int

const (
	KindNone Kind = iota
	KindConnectivity
	KindRejected
	KindPrecondition
	KindUnknown
)

// Classify maps err to its failure kind.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrPrecondition):
		return KindPrecondition
	case errors.Is(err, ErrRejected):
		return KindRejected
	case errors.Is(err, ErrConnectivity):
		return KindConnectivity
	default:
		return KindUnknown
	}
}

// Rejected builds a business rejection carrying the backend message verbatim.
func Rejected(msg string) error {
	return errors.Mark(errors.New(msg), ErrRejected)
}

// Precondition builds a client-side validation failure.
func Precondition(msg string) error {
	return errors.Mark(errors.New(msg), ErrPrecondition)
}

func connectivity(err error, msg string) error {
	return errors.Mark(errors.Wrap(err, msg), ErrConnectivity)
}

// Message returns the text to show the operator for err. Rejections and
// preconditions carry their own message and transport failures use the fixed
// connectivity text.
func Message(err error) string {
	switch Classify(err) {
	case KindNone:
		return ""
	case KindRejected, KindPrecondition:
		return errors.UnwrapAll(err).Error()
	case KindConnectivity:
		return ConnectivityMessage
	default:
		return err.Error()
	}
}
