package urlParser

import (
	"errors"
	"fmt"
	"strings"
)

type Scheme int

const (
	HTTP Scheme = iota
	HTTPS
)

func (s Scheme) String() string {
	if s == HTTPS {
		return "https"
	}
	return "http"
}

const (
	httpsPrefix = "https://"
	httpPrefix  = "http://"
)

var ErrInvalidScheme = errors.New("invalid URL scheme, only http and https are supported")

// ParsedURL is what the transport needs to issue one request.
// Path always starts with "/".
type ParsedURL struct {
	Scheme Scheme
	Host   string
	Path   string
}

func (u ParsedURL) String() string {
	return fmt.Sprintf("%v://%v%v", u.Scheme, u.Host, u.Path)
}

// Parse splits input into scheme, host and path. The prefix match is case
// sensitive. The host is not validated, so "example.com:8443" is kept as the
// host verbatim and the transport still dials port 443.
func Parse(input string) (ParsedURL, error) {
	var scheme Scheme
	var rest string
	switch {
	case strings.HasPrefix(input, httpsPrefix):
		scheme, rest = HTTPS, input[len(httpsPrefix):]
	case strings.HasPrefix(input, httpPrefix):
		scheme, rest = HTTP, input[len(httpPrefix):]
	default:
		return ParsedURL{}, fmt.Errorf("%w: %q", ErrInvalidScheme, input)
	}

	host, path := rest, "/"
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		host, path = rest[:i], rest[i:]
	}

	return ParsedURL{Scheme: scheme, Host: host, Path: path}, nil
}
