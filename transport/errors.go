package transport

import "fmt"

// Kind tells which step of a fetch failed.
type Kind int

const (
	DnsFailure Kind = iota
	ConnectFailure
	HandshakeFailure
	WriteFailure
	ReadFailure
)

func (k Kind) String() string {
	switch k {
	case DnsFailure:
		return "DNS lookup failed"
	case ConnectFailure:
		return "connection failed"
	case HandshakeFailure:
		return "TLS handshake failed"
	case WriteFailure:
		return "request write failed"
	case ReadFailure:
		return "response read failed"
	default:
		return fmt.Sprintf("unknown transport failure %d", int(k))
	}
}

// TransportError carries the underlying network or TLS error. No retry is
// attempted for any kind.
type TransportError struct {
	Kind Kind
	Host string
	Err  error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v (host %v)", e.Kind, e.Host)
	}
	return fmt.Sprintf("%v (host %v): %v", e.Kind, e.Host, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func newError(kind Kind, host string, err error) *TransportError {
	return &TransportError{Kind: kind, Host: host, Err: err}
}
