// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package tls generates and loads the certificates that secure the link
// between the gateway and the auth server with mutual TLS.
//
// A certs directory holds:
//   - root-ca.crt, root-ca.key: the CA that signs both sides
//   - {name}.crt, {name}.key: one pair per server or client certificate
package tls

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/samber/oops"
)

// File stems used in a certs directory.
const (
	CAName     = "root-ca"
	ServerName = "server"
	ClientName = "gateway"
)

const (
	organization   = "authcore"
	caValidity     = 10 * 365 * 24 * time.Hour
	leafValidity   = 365 * 24 * time.Hour
	serialBitWidth = 128
)

// CA holds a certificate authority certificate and private key.
type CA struct {
	Certificate *x509.Certificate
	PrivateKey  *ecdsa.PrivateKey
}

// ServerCert holds a server certificate and private key.
type ServerCert struct {
	Certificate *x509.Certificate
	PrivateKey  *ecdsa.PrivateKey
	Name        string
}

// ClientCert holds a client certificate and private key.
type ClientCert struct {
	Certificate *x509.Certificate
	PrivateKey  *ecdsa.PrivateKey
	Name        string
}

// GenerateCA creates a self-signed root CA named "authcore CA {name}".
func GenerateCA(name string) (*CA, error) {
	key, serial, err := newKeyAndSerial()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	template := &x509.Certificate{
		SerialNumber: serial,
		Subject: pkix.Name{
			Organization: []string{organization},
			CommonName:   "authcore CA " + name,
		},
		NotBefore:             now,
		NotAfter:              now.Add(caValidity),
		IsCA:                  true,
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageCRLSign,
		BasicConstraintsValid: true,
	}

	cert, err := sign(template, template, key, key)
	if err != nil {
		return nil, oops.With("certificate", "ca").Wrap(err)
	}
	return &CA{Certificate: cert, PrivateKey: key}, nil
}

// GenerateServerCert creates a server certificate signed by ca. serverName
// is the DNS name clients verify; name is the file stem it is saved under.
func GenerateServerCert(ca *CA, serverName, name string) (*ServerCert, error) {
	if ca == nil {
		return nil, oops.Code("TLS_INVALID_CA").Errorf("CA is required")
	}
	key, serial, err := newKeyAndSerial()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	template := &x509.Certificate{
		SerialNumber: serial,
		Subject: pkix.Name{
			Organization: []string{organization},
			CommonName:   serverName,
		},
		NotBefore:   now,
		NotAfter:    now.Add(leafValidity),
		KeyUsage:    x509.KeyUsageDigitalSignature,
		ExtKeyUsage: []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		DNSNames:    []string{"localhost", serverName},
		IPAddresses: []net.IP{net.IPv4(127, 0, 0, 1), net.IPv6loopback},
	}

	cert, err := sign(template, ca.Certificate, key, ca.PrivateKey)
	if err != nil {
		return nil, oops.With("certificate", name).Wrap(err)
	}
	return &ServerCert{Certificate: cert, PrivateKey: key, Name: name}, nil
}

// GenerateClientCert creates a client certificate signed by ca.
func GenerateClientCert(ca *CA, name string) (*ClientCert, error) {
	if ca == nil {
		return nil, oops.Code("TLS_INVALID_CA").Errorf("CA is required")
	}
	key, serial, err := newKeyAndSerial()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	template := &x509.Certificate{
		SerialNumber: serial,
		Subject: pkix.Name{
			Organization: []string{organization},
			CommonName:   name,
		},
		NotBefore:   now,
		NotAfter:    now.Add(leafValidity),
		KeyUsage:    x509.KeyUsageDigitalSignature,
		ExtKeyUsage: []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
	}

	cert, err := sign(template, ca.Certificate, key, ca.PrivateKey)
	if err != nil {
		return nil, oops.With("certificate", name).Wrap(err)
	}
	return &ClientCert{Certificate: cert, PrivateKey: key, Name: name}, nil
}

// SaveCertificates writes the CA and, when non-nil, the server certificate
// to certsDir.
func SaveCertificates(certsDir string, ca *CA, serverCert *ServerCert) error {
	if err := os.MkdirAll(certsDir, 0o700); err != nil {
		return oops.Code("TLS_SAVE_FAILED").With("dir", certsDir).Wrap(err)
	}
	if err := savePair(certsDir, CAName, ca.Certificate, ca.PrivateKey); err != nil {
		return err
	}
	if serverCert != nil {
		return savePair(certsDir, serverCert.Name, serverCert.Certificate, serverCert.PrivateKey)
	}
	return nil
}

// SaveClientCert writes a client certificate to certsDir.
func SaveClientCert(certsDir string, clientCert *ClientCert) error {
	if err := os.MkdirAll(certsDir, 0o700); err != nil {
		return oops.Code("TLS_SAVE_FAILED").With("dir", certsDir).Wrap(err)
	}
	return savePair(certsDir, clientCert.Name, clientCert.Certificate, clientCert.PrivateKey)
}

// LoadCA loads the CA from certsDir.
func LoadCA(certsDir string) (*CA, error) {
	cert, err := readCert(filepath.Join(certsDir, CAName+".crt"))
	if err != nil {
		return nil, err
	}

	keyPath := filepath.Clean(filepath.Join(certsDir, CAName+".key"))
	keyPEM, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, oops.Code("TLS_LOAD_FAILED").With("path", keyPath).Wrap(err)
	}
	block, _ := pem.Decode(keyPEM)
	if block == nil {
		return nil, oops.Code("TLS_LOAD_FAILED").With("path", keyPath).Errorf("no PEM block in CA key")
	}
	key, err := x509.ParseECPrivateKey(block.Bytes)
	if err != nil {
		return nil, oops.Code("TLS_LOAD_FAILED").With("path", keyPath).Wrap(err)
	}
	return &CA{Certificate: cert, PrivateKey: key}, nil
}

// LoadServerTLS builds a server config that presents {name}.crt and requires
// a client certificate signed by the CA.
func LoadServerTLS(certsDir, name string) (*tls.Config, error) {
	pair, pool, err := loadPairAndPool(certsDir, name)
	if err != nil {
		return nil, err
	}
	return &tls.Config{
		Certificates: []tls.Certificate{pair},
		ClientCAs:    pool,
		ClientAuth:   tls.RequireAndVerifyClientCert,
		MinVersion:   tls.VersionTLS13,
	}, nil
}

// LoadClientTLS builds a client config that presents {clientName}.crt and
// trusts only servers named serverName signed by the CA.
func LoadClientTLS(certsDir, clientName, serverName string) (*tls.Config, error) {
	pair, pool, err := loadPairAndPool(certsDir, clientName)
	if err != nil {
		return nil, err
	}
	return &tls.Config{
		Certificates: []tls.Certificate{pair},
		RootCAs:      pool,
		ServerName:   serverName,
		MinVersion:   tls.VersionTLS13,
	}, nil
}

func loadPairAndPool(certsDir, name string) (tls.Certificate, *x509.CertPool, error) {
	certPath := filepath.Clean(filepath.Join(certsDir, name+".crt"))
	keyPath := filepath.Clean(filepath.Join(certsDir, name+".key"))
	pair, err := tls.LoadX509KeyPair(certPath, keyPath)
	if err != nil {
		return tls.Certificate{}, nil, oops.Code("TLS_LOAD_FAILED").With("path", certPath).Wrap(err)
	}

	ca, err := readCert(filepath.Join(certsDir, CAName+".crt"))
	if err != nil {
		return tls.Certificate{}, nil, err
	}
	pool := x509.NewCertPool()
	pool.AddCert(ca)
	return pair, pool, nil
}

func readCert(path string) (*x509.Certificate, error) {
	path = filepath.Clean(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.Code("TLS_LOAD_FAILED").With("path", path).Wrap(err)
	}
	block, _ := pem.Decode(data)
	if block == nil || block.Type != "CERTIFICATE" {
		return nil, oops.Code("TLS_LOAD_FAILED").With("path", path).Errorf("no certificate PEM block")
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, oops.Code("TLS_LOAD_FAILED").With("path", path).Wrap(err)
	}
	return cert, nil
}

func newKeyAndSerial() (*ecdsa.PrivateKey, *big.Int, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, nil, oops.Code("TLS_GENERATE_FAILED").With("operation", "generate key").Wrap(err)
	}
	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), serialBitWidth))
	if err != nil {
		return nil, nil, oops.Code("TLS_GENERATE_FAILED").With("operation", "generate serial").Wrap(err)
	}
	return key, serial, nil
}

func sign(template, parent *x509.Certificate, key, parentKey *ecdsa.PrivateKey) (*x509.Certificate, error) {
	der, err := x509.CreateCertificate(rand.Reader, template, parent, &key.PublicKey, parentKey)
	if err != nil {
		return nil, oops.Code("TLS_GENERATE_FAILED").With("operation", "create certificate").Wrap(err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, oops.Code("TLS_GENERATE_FAILED").With("operation", "parse certificate").Wrap(err)
	}
	return cert, nil
}

func savePair(certsDir, name string, cert *x509.Certificate, key *ecdsa.PrivateKey) error {
	keyDER, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		return oops.Code("TLS_SAVE_FAILED").With("certificate", name).Wrap(err)
	}
	if err := writePEM(filepath.Join(certsDir, name+".crt"), "CERTIFICATE", cert.Raw); err != nil {
		return err
	}
	return writePEM(filepath.Join(certsDir, name+".key"), "EC PRIVATE KEY", keyDER)
}

func writePEM(path, blockType string, der []byte) error {
	path = filepath.Clean(path)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return oops.Code("TLS_SAVE_FAILED").With("path", path).Wrap(err)
	}
	if err := pem.Encode(f, &pem.Block{Type: blockType, Bytes: der}); err != nil {
		_ = f.Close()
		return oops.Code("TLS_SAVE_FAILED").With("path", path).Wrap(err)
	}
	if err := f.Close(); err != nil {
		return oops.Code("TLS_SAVE_FAILED").With("path", path).Wrap(err)
	}
	return nil
}
