// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
// SPDX-License-Identifier: Apache-2.0

package mail

import (
	"bufio"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"fmt"
	"math/big"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type smtpServerOptions struct {
	implicitTLS bool
	startTLS    bool
	// failQuit answers QUIT with a transient error.
	failQuit bool
}

// testSMTPServer is a minimal SMTP server on a random port that accepts one
// connection. It only implements the commands the sender uses.
type testSMTPServer struct {
	host string
	port int

	mu       sync.Mutex
	commands []string
	data     string

	ln   net.Listener
	done chan struct{}
}

func startTestSMTPServer(t *testing.T, opts smtpServerOptions) *testSMTPServer {
	t.Helper()

	tlsCfg := testTLSConfig(t)
	var (
		ln  net.Listener
		err error
	)
	if opts.implicitTLS {
		ln, err = tls.Listen("tcp", "127.0.0.1:0", tlsCfg)
	} else {
		ln, err = net.Listen("tcp", "127.0.0.1:0")
	}
	require.NoError(t, err)

	srv := &testSMTPServer{
		host: "127.0.0.1",
		port: ln.Addr().(*net.TCPAddr).Port,
		ln:   ln,
		done: make(chan struct{}),
	}
	go func() {
		defer close(srv.done)
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		srv.serve(conn, tlsCfg, opts)
	}()
	t.Cleanup(srv.stop)
	return srv
}

// stop closes the listener and waits for the connection handler to finish.
func (s *testSMTPServer) stop() {
	_ = s.ln.Close()
	<-s.done
}

func (s *testSMTPServer) serve(conn net.Conn, tlsCfg *tls.Config, opts smtpServerOptions) {
	defer func() { _ = conn.Close() }()
	r := bufio.NewReader(conn)
	fmt.Fprintf(conn, "220 localhost Test SMTP Service Ready\r\n")
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		s.record(line)
		upper := strings.ToUpper(line)

		switch {
		case strings.HasPrefix(upper, "EHLO"), strings.HasPrefix(upper, "HELO"):
			reply := "250-localhost Hello\r\n"
			if _, encrypted := conn.(*tls.Conn); opts.startTLS && !encrypted {
				reply += "250-STARTTLS\r\n"
			}
			reply += "250 AUTH PLAIN\r\n"
			fmt.Fprint(conn, reply)
		case upper == "STARTTLS":
			fmt.Fprintf(conn, "220 Ready to start TLS\r\n")
			tlsConn := tls.Server(conn, tlsCfg)
			if err := tlsConn.Handshake(); err != nil {
				return
			}
			conn = tlsConn
			r = bufio.NewReader(conn)
		case strings.HasPrefix(upper, "AUTH"):
			fmt.Fprintf(conn, "235 2.7.0 Authentication successful\r\n")
		case strings.HasPrefix(upper, "MAIL FROM:"), strings.HasPrefix(upper, "RCPT TO:"):
			fmt.Fprintf(conn, "250 OK\r\n")
		case upper == "DATA":
			fmt.Fprintf(conn, "354 End data with <CR><LF>.<CR><LF>\r\n")
			var b strings.Builder
			for {
				dline, derr := r.ReadString('\n')
				if derr != nil {
					return
				}
				if strings.TrimRight(dline, "\r\n") == "." {
					break
				}
				b.WriteString(dline)
			}
			s.mu.Lock()
			s.data = b.String()
			s.mu.Unlock()
			fmt.Fprintf(conn, "250 OK: queued as 12345\r\n")
		case upper == "QUIT":
			if opts.failQuit {
				fmt.Fprintf(conn, "421 Service not available\r\n")
				return
			}
			fmt.Fprintf(conn, "221 Bye\r\n")
			return
		default:
			fmt.Fprintf(conn, "250 OK\r\n")
		}
	}
}

func (s *testSMTPServer) record(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commands = append(s.commands, line)
}

// received returns the commands and message data seen so far. Call stop first.
func (s *testSMTPServer) received() ([]string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.commands...), s.data
}

func (s *testSMTPServer) sawCommand(prefix string) bool {
	commands, _ := s.received()
	for _, c := range commands {
		if strings.HasPrefix(strings.ToUpper(c), prefix) {
			return true
		}
	}
	return false
}

func testTLSConfig(t *testing.T) *tls.Config {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "127.0.0.1"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		IPAddresses:  []net.IP{net.ParseIP("127.0.0.1")},
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)

	return &tls.Config{
		Certificates: []tls.Certificate{{Certificate: [][]byte{der}, PrivateKey: key}},
		MinVersion:   tls.VersionTLS12,
	}
}

// freePort returns a port nothing listens on.
func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return port
}
