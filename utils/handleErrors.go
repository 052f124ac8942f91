package utils

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/SKB231/go2web/urlParser"
)

// UsageError marks a bad command line value that was caught before any
// network activity.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// ReportErr prints err as a single "Error: ..." line and returns the exit
// code to use. Only a bad scheme or a bad flag value exits non-zero; a failed
// fetch is reported and the process still exits 0.
func ReportErr(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	return ExitCode(err)
}

func ExitCode(err error) int {
	var usageErr *UsageError
	switch {
	case err == nil:
		return 0
	case errors.Is(err, urlParser.ErrInvalidScheme), errors.As(err, &usageErr):
		return 1
	default:
		return 0
	}
}

func DiscardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
