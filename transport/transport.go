package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/SKB231/go2web/utils"
)

const (
	DefaultPort      = 443
	DefaultChunkSize = 1024
)

// Dialer opens one TLS connection per Fetch. The zero value dials port 443
// and verifies against the system trust store, for http:// URLs too.
type Dialer struct {
	Port      int
	ChunkSize int
	// TLSConfig is cloned for every connection; ServerName is always
	// overwritten with the requested host.
	TLSConfig *tls.Config
	NetDialer *net.Dialer
	Log       logrus.FieldLogger
}

func NewDialer(log logrus.FieldLogger) *Dialer {
	return &Dialer{Log: log}
}

// BuildRequest renders the only request this client ever sends.
func BuildRequest(host, path string) []byte {
	return []byte(fmt.Sprintf("GET %s HTTP/1.1\r\nHost: %s\r\nConnection: close\r\n\r\n", path, host))
}

// Fetch connects to host, sends a GET for path and returns every byte the
// peer sent until it closed the connection. There is no timeout; only ctx
// bounds the dial and the handshake.
func (d *Dialer) Fetch(ctx context.Context, host, path string) ([]byte, error) {
	log := d.logger().WithFields(logrus.Fields{"host": host, "port": d.port(), "path": path})

	conn, err := d.dial(ctx, host)
	if err != nil {
		return nil, err
	}
	log.Debug("connected")

	tlsConn := tls.Client(conn, d.tlsConfig(host))
	defer tlsConn.Close() // Also closes the raw TCP connection

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		return nil, newError(HandshakeFailure, host, err)
	}
	log.WithField("version", tls.VersionName(tlsConn.ConnectionState().Version)).Debug("TLS handshake complete")

	return exchange(tlsConn, host, path, d.chunkSize(), log)
}

// Exchange runs the request/response cycle over an already open stream.
func Exchange(rw io.ReadWriter, host, path string, chunkSize int) ([]byte, error) {
	return exchange(rw, host, path, chunkSize, utils.DiscardLogger())
}

func exchange(rw io.ReadWriter, host, path string, chunkSize int, log logrus.FieldLogger) ([]byte, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	request := BuildRequest(host, path)
	n, err := rw.Write(request)
	if err != nil {
		return nil, newError(WriteFailure, host, err)
	}
	if n != len(request) {
		return nil, newError(WriteFailure, host, io.ErrShortWrite)
	}
	log.WithField("bytes", n).Debug("request written")

	var response bytes.Buffer
	buf := make([]byte, chunkSize)
	chunks := 0
	for {
		n, err := rw.Read(buf)
		if n > 0 {
			response.Write(buf[:n])
			chunks++
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, newError(ReadFailure, host, err)
		}
		if n == 0 {
			break // Peer closed the connection
		}
	}
	log.WithFields(logrus.Fields{"bytes": response.Len(), "chunks": chunks}).Debug("response read")

	return response.Bytes(), nil
}

func (d *Dialer) dial(ctx context.Context, host string) (net.Conn, error) {
	nd := d.NetDialer
	if nd == nil {
		nd = &net.Dialer{}
	}

	addr := net.JoinHostPort(host, strconv.Itoa(d.port()))
	conn, err := nd.DialContext(ctx, "tcp", addr)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) {
			return nil, newError(DnsFailure, host, err)
		}
		return nil, newError(ConnectFailure, host, err)
	}

	if tcpConn, ok := conn.(*net.TCPConn); ok {
		if err := tcpConn.SetNoDelay(true); err != nil {
			conn.Close()
			return nil, newError(ConnectFailure, host, err)
		}
	}
	return conn, nil
}

func (d *Dialer) tlsConfig(host string) *tls.Config {
	var cfg *tls.Config
	if d.TLSConfig != nil {
		cfg = d.TLSConfig.Clone()
	} else {
		cfg = &tls.Config{}
	}
	cfg.ServerName = host
	return cfg
}

func (d *Dialer) port() int {
	if d.Port > 0 {
		return d.Port
	}
	return DefaultPort
}

func (d *Dialer) chunkSize() int {
	if d.ChunkSize > 0 {
		return d.ChunkSize
	}
	return DefaultChunkSize
}

func (d *Dialer) logger() logrus.FieldLogger {
	if d.Log != nil {
		return d.Log
	}
	return utils.DiscardLogger()
}
