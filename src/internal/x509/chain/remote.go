// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"
)

// ErrNoPeerCertificates indicates that a TLS server completed the handshake
// without presenting a certificate.
var ErrNoPeerCertificates = errors.New("x509chain: no certificates received from server")

// FetchRemoteLeaf performs a TLS handshake with host:port and returns the
// leaf certificate together with every certificate the server presented.
// The handshake does not verify the server; trust is decided afterwards by
// a [Validator] against a local pool.
func FetchRemoteLeaf(ctx context.Context, host string, port int, timeout time.Duration) (*x509.Certificate, []*x509.Certificate, error) {
	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: timeout},
		// We just want the presented certificates, not to verify
		Config: &tls.Config{InsecureSkipVerify: true, ServerName: host},
	}

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	defer conn.Close()

	peerCerts := conn.(*tls.Conn).ConnectionState().PeerCertificates
	if len(peerCerts) == 0 {
		return nil, nil, ErrNoPeerCertificates
	}

	return peerCerts[0], peerCerts, nil
}
