// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	cryptotls "crypto/tls"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/samber/oops"

	"github.com/holomush/authcore/internal/tls"
)

// ensureTLSCerts loads the auth server's TLS config from certsDir, first
// generating a CA, a server certificate for serverName and a gateway client
// certificate when the directory holds none of the server files.
func ensureTLSCerts(certsDir, serverName string) (*cryptotls.Config, error) {
	certExists := fileExists(filepath.Join(certsDir, tls.ServerName+".crt"))
	keyExists := fileExists(filepath.Join(certsDir, tls.ServerName+".key"))
	caExists := fileExists(filepath.Join(certsDir, tls.CAName+".crt"))

	// Partial or corrupt sets are reported rather than regenerated.
	if certExists || keyExists || caExists {
		cfg, err := tls.LoadServerTLS(certsDir, tls.ServerName)
		if err != nil {
			return nil, oops.Code("GRPC_TLS_FAILED").With("certs_dir", certsDir).Wrap(err)
		}
		return cfg, nil
	}

	slog.Info("generating TLS certificates", "certs_dir", certsDir, "server_name", serverName)

	ca, err := tls.GenerateCA(serverName)
	if err != nil {
		return nil, oops.Code("GRPC_TLS_FAILED").Wrap(err)
	}
	serverCert, err := tls.GenerateServerCert(ca, serverName, tls.ServerName)
	if err != nil {
		return nil, oops.Code("GRPC_TLS_FAILED").Wrap(err)
	}
	if err := tls.SaveCertificates(certsDir, ca, serverCert); err != nil {
		return nil, oops.Code("GRPC_TLS_FAILED").Wrap(err)
	}
	gatewayCert, err := tls.GenerateClientCert(ca, tls.ClientName)
	if err != nil {
		return nil, oops.Code("GRPC_TLS_FAILED").Wrap(err)
	}
	if err := tls.SaveClientCert(certsDir, gatewayCert); err != nil {
		return nil, oops.Code("GRPC_TLS_FAILED").Wrap(err)
	}

	slog.Info("TLS certificates generated", "certs_dir", certsDir)

	cfg, err := tls.LoadServerTLS(certsDir, tls.ServerName)
	if err != nil {
		return nil, oops.Code("GRPC_TLS_FAILED").With("certs_dir", certsDir).Wrap(err)
	}
	return cfg, nil
}

// loadGatewayTLS loads the gateway's client TLS config from certsDir.
func loadGatewayTLS(certsDir, clientName, serverName string) (*cryptotls.Config, error) {
	cfg, err := tls.LoadClientTLS(certsDir, clientName, serverName)
	if err != nil {
		return nil, oops.Code("GATEWAY_TLS_FAILED").With("certs_dir", certsDir).Wrap(err)
	}
	return cfg, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
