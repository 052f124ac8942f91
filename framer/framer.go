// Package framer turns the raw bytes of an HTTP response into text and
// splits the header block from the body.
package framer

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
)

const delimiter = "\r\n\r\n"

// FramedResponse is the result of splitting a response on the first blank
// line. Headers are kept as one opaque string and never parsed.
type FramedResponse struct {
	Headers string
	Body    string
}

// Decode converts the complete response to UTF-8 text, replacing every
// invalid sequence with U+FFFD. It must run once on the whole buffer so
// characters split across reads survive.
func Decode(raw []byte) string {
	// Invalid bytes are replaced one by one, so the error is always nil.
	decoded, _ := unicode.UTF8.NewDecoder().Bytes(raw)
	return string(decoded)
}

// Frame splits raw on the first CRLF CRLF. Without a delimiter everything is
// treated as headers and the body is empty.
func Frame(raw string) FramedResponse {
	headers, body, found := strings.Cut(raw, delimiter)
	if !found {
		return FramedResponse{Headers: raw}
	}
	return FramedResponse{Headers: headers, Body: body}
}
