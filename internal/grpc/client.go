// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package grpc

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/google/uuid"
	"github.com/samber/oops"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/holomush/authcore/internal/auth"
	"github.com/holomush/authcore/internal/logging"
	authv1 "github.com/holomush/authcore/pkg/proto/authcore/auth/v1"
)

// Client calls a remote auth server. It implements auth.API.
type Client struct {
	conn *grpc.ClientConn
	auth authv1.AuthClient
}

var _ auth.API = (*Client)(nil)

// ClientConfig holds configuration for the gRPC client.
type ClientConfig struct {
	// Address is the target gRPC server address (e.g., "localhost:9090")
	Address string

	// TLSConfig for server authentication. If nil, insecure connection is used.
	TLSConfig *tls.Config

	// KeepaliveTime is how often to ping the server (default: 10s)
	KeepaliveTime time.Duration

	// KeepaliveTimeout is how long to wait for ping response (default: 5s)
	KeepaliveTimeout time.Duration

	// DialOptions are appended to the defaults.
	DialOptions []grpc.DialOption
}

// NewClient creates a client for the auth server at cfg.Address. The
// connection is established lazily on the first call.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.Address == "" {
		return nil, oops.Code("GRPC_CLIENT_CONFIG").Errorf("address is required")
	}

	if cfg.KeepaliveTime == 0 {
		cfg.KeepaliveTime = 10 * time.Second
	}
	if cfg.KeepaliveTimeout == 0 {
		cfg.KeepaliveTimeout = 5 * time.Second
	}

	opts := []grpc.DialOption{
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                cfg.KeepaliveTime,
			Timeout:             cfg.KeepaliveTimeout,
			PermitWithoutStream: true,
		}),
	}

	if cfg.TLSConfig != nil {
		opts = append(opts, grpc.WithTransportCredentials(credentials.NewTLS(cfg.TLSConfig)))
	} else {
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}
	opts = append(opts, cfg.DialOptions...)

	conn, err := grpc.NewClient(cfg.Address, opts...)
	if err != nil {
		return nil, oops.Code("GRPC_CLIENT_CONNECT").With("address", cfg.Address).Wrap(err)
	}

	return &Client{conn: conn, auth: authv1.NewAuthClient(conn)}, nil
}

// Close closes the underlying gRPC connection.
func (c *Client) Close() error {
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			return oops.Code("GRPC_CLIENT_CLOSE").Wrap(err)
		}
	}
	return nil
}

// CreateAccount registers an account and returns its id.
func (c *Client) CreateAccount(ctx context.Context, email, password string) (string, error) {
	resp, err := c.auth.CreateCredential(outgoing(ctx), &authv1.CreateCredentialRequest{Email: email, Password: password})
	if err != nil {
		return "", fromStatus(authv1.Auth_CreateCredential_FullMethodName, err)
	}
	return resp.GetUserId(), nil
}

// SignIn issues a session with the server's default lifetime.
func (c *Client) SignIn(ctx context.Context, email, password string) (*auth.Session, error) {
	return c.SignInFor(ctx, email, password, 0)
}

// SignInFor issues a session that lives for ttl, rounded up to whole seconds.
// A non-positive ttl uses the server's default.
func (c *Client) SignInFor(ctx context.Context, email, password string, ttl time.Duration) (*auth.Session, error) {
	req := &authv1.SignInRequest{Email: email, Password: password}
	if ttl > 0 {
		req.TtlSeconds = int64((ttl + time.Second - 1) / time.Second)
	}

	resp, err := c.auth.SignIn(outgoing(ctx), req)
	if err != nil {
		return nil, fromStatus(authv1.Auth_SignIn_FullMethodName, err)
	}
	return sessionFromProto(resp.GetSession())
}

// Authenticate returns the session for a valid session id.
func (c *Client) Authenticate(ctx context.Context, sessionID string) (*auth.Session, error) {
	resp, err := c.auth.Authenticate(outgoing(ctx), &authv1.AuthenticateRequest{SessionId: sessionID})
	if err != nil {
		return nil, fromStatus(authv1.Auth_Authenticate_FullMethodName, err)
	}
	return sessionFromProto(resp.GetSession())
}

// SignOut ends a session.
func (c *Client) SignOut(ctx context.Context, sessionID string) error {
	if _, err := c.auth.SignOut(outgoing(ctx), &authv1.SignOutRequest{SessionId: sessionID}); err != nil {
		return fromStatus(authv1.Auth_SignOut_FullMethodName, err)
	}
	return nil
}

// Ping asks the server's health service whether the auth service is
// serving. It satisfies observability.Pinger.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := healthpb.NewHealthClient(c.conn).Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		return oops.Code("GRPC_HEALTH_CHECK_FAILED").Wrap(err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return oops.Code("GRPC_NOT_SERVING").With("status", resp.GetStatus().String()).Errorf("auth server not serving")
	}
	return nil
}

// outgoing forwards the request id, if any, as call metadata.
func outgoing(ctx context.Context) context.Context {
	if id := logging.RequestIDFromContext(ctx); id != "" {
		return metadata.AppendToOutgoingContext(ctx, MetadataRequestID, id)
	}
	return ctx
}

// fromStatus maps a gRPC status back to an auth error kind.
func fromStatus(method string, err error) error {
	st := status.Convert(err)
	switch st.Code() {
	case codes.InvalidArgument:
		return auth.NewInvalidInputError(st.Message())
	case codes.Unauthenticated:
		return auth.NewInvalidCredentialsError()
	default:
		return oops.Code(auth.CodeInternal).
			With("method", method).
			With("grpc_code", st.Code().String()).
			Wrap(err)
	}
}

func sessionFromProto(pb *authv1.Session) (*auth.Session, error) {
	if pb == nil {
		return nil, oops.Code(auth.CodeInternal).Errorf("server returned no session")
	}
	id, err := uuid.Parse(pb.GetSessionId())
	if err != nil {
		return nil, oops.Code(auth.CodeInternal).With("session_id", pb.GetSessionId()).Wrapf(err, "malformed session id from server")
	}
	credID, err := uuid.Parse(pb.GetCredentialId())
	if err != nil {
		return nil, oops.Code(auth.CodeInternal).With("credential_id", pb.GetCredentialId()).Wrapf(err, "malformed credential id from server")
	}
	if err := pb.GetCreatedAt().CheckValid(); err != nil {
		return nil, oops.Code(auth.CodeInternal).Wrapf(err, "malformed created_at from server")
	}
	if err := pb.GetExpiresAt().CheckValid(); err != nil {
		return nil, oops.Code(auth.CodeInternal).Wrapf(err, "malformed expires_at from server")
	}
	return &auth.Session{
		ID:           id,
		CreatedAt:    pb.GetCreatedAt().AsTime(),
		ExpiresAt:    pb.GetExpiresAt().AsTime(),
		CredentialID: credID,
		Active:       true,
	}, nil
}
