package client

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/SKB231/go2web/framer"
	"github.com/SKB231/go2web/transport"
	"github.com/SKB231/go2web/urlParser"
	"github.com/SKB231/go2web/utils"
)

// Fetcher returns the raw bytes of one response. *transport.Dialer is the
// real implementation.
type Fetcher interface {
	Fetch(ctx context.Context, host, path string) ([]byte, error)
}

type Client struct {
	Transport Fetcher
	Log       logrus.FieldLogger
}

// New returns a Client backed by a default transport.Dialer.
func New(log logrus.FieldLogger) *Client {
	if log == nil {
		log = utils.DiscardLogger()
	}
	return &Client{Transport: transport.NewDialer(log), Log: log}
}

// Get fetches rawURL and returns the framed response. A URL with an
// unsupported scheme fails before the transport is touched.
func (c *Client) Get(ctx context.Context, rawURL string) (framer.FramedResponse, error) {
	u, err := urlParser.Parse(rawURL)
	if err != nil {
		return framer.FramedResponse{}, err
	}
	log := c.logger().WithFields(logrus.Fields{"url": u.String(), "scheme": u.Scheme})
	if u.Scheme == urlParser.HTTP {
		log.Debug("http URL, still dialing port 443 with TLS")
	}

	raw, err := c.Transport.Fetch(ctx, u.Host, u.Path)
	if err != nil {
		return framer.FramedResponse{}, err
	}

	resp := framer.Frame(framer.Decode(raw))
	log.WithField("bytes", len(resp.Body)).Debug("body framed")
	return resp, nil
}

func (c *Client) logger() logrus.FieldLogger {
	if c.Log != nil {
		return c.Log
	}
	return utils.DiscardLogger()
}
