package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/sirupsen/logrus"

	"github.com/SKB231/go2web/client"
	"github.com/SKB231/go2web/tagRender"
	"github.com/SKB231/go2web/utils"
)

type args struct {
	URL     *string `arg:"-u,--url" help:"make an HTTP or HTTPS request to URL and print the response" placeholder:"URL"`
	HTML    bool    `arg:"--html" help:"print headings, paragraphs, links and list items instead of the raw body"`
	Text    bool    `arg:"--text" help:"print the whole page converted to plain text"`
	Select  string  `arg:"--select" help:"CSS selector limiting what --html and --text print" placeholder:"CSS"`
	Verbose bool    `arg:"-v,--verbose" help:"log connection details to stderr"`
}

func (args) Description() string {
	return "go2web fetches a single URL over a raw TLS socket and prints the body.\n" +
		"Note: http:// URLs are sent to port 443 over TLS as well."
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, nil))
}

// run is main without the process exit. A nil fetcher dials the real host.
func run(argv []string, stdout, stderr io.Writer, fetcher client.Fetcher) int {
	var a args
	p, err := arg.NewParser(arg.Config{Program: "go2web"}, &a)
	if err != nil {
		return utils.ReportErr(stdout, err)
	}
	// Help, no arguments and anything unrecognized all print usage and exit 0.
	// An empty -u still goes to the parser and fails on its scheme.
	if err := p.Parse(argv); err != nil || a.URL == nil || !validMode(a) {
		p.WriteHelp(stdout)
		return 0
	}

	if a.Select != "" {
		if _, err := tagRender.CompileSelector(a.Select); err != nil {
			return utils.ReportErr(stdout, &utils.UsageError{Err: err})
		}
	}

	log := newLogger(stderr, a.Verbose)
	c := client.New(log)
	if fetcher != nil {
		c.Transport = fetcher
	}

	resp, err := c.Get(context.Background(), *a.URL)
	if err != nil {
		log.WithError(err).Debug("fetch failed")
		return utils.ReportErr(stdout, err)
	}

	if err := show(stdout, resp.Body, a); err != nil {
		return utils.ReportErr(stdout, err)
	}
	return 0
}

// validMode rejects --html with --text, and --select without either.
func validMode(a args) bool {
	if a.HTML && a.Text {
		return false
	}
	return a.Select == "" || a.HTML || a.Text
}

func show(w io.Writer, body string, a args) error {
	switch {
	case a.HTML:
		return tagRender.Render(w, body, a.Select)
	case a.Text:
		return tagRender.PlainText(w, body, a.Select)
	default:
		_, err := fmt.Fprintln(w, body)
		return err
	}
}

func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}
