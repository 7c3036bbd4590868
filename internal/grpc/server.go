// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package grpc exposes the auth service over gRPC and provides a client that
// satisfies auth.API against a remote server.
package grpc

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/oklog/ulid/v2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/holomush/authcore/internal/auth"
	"github.com/holomush/authcore/internal/logging"
	"github.com/holomush/authcore/internal/observability"
	authv1 "github.com/holomush/authcore/pkg/proto/authcore/auth/v1"
)

// MetadataRequestID is the metadata key carrying the caller's request id.
const MetadataRequestID = "x-request-id"

// Status messages for non-input failures.
const (
	MsgInvalidCredentials = "invalid credentials"
	MsgInternal           = "internal server error"
)

// ServiceName is the fully-qualified auth service name reported by the
// health service.
var ServiceName = authv1.Auth_ServiceDesc.ServiceName

// maxTTLSeconds is the longest requested lifetime that converts to a
// time.Duration without overflow.
const maxTTLSeconds = math.MaxInt64 / int64(time.Second)

// AuthService implements authv1.AuthServer on top of an auth.API.
type AuthService struct {
	authv1.UnimplementedAuthServer
	api auth.API
}

var _ authv1.AuthServer = (*AuthService)(nil)

// NewAuthService creates the gRPC adapter for api.
func NewAuthService(api auth.API) *AuthService {
	return &AuthService{api: api}
}

// CreateCredential registers an account.
func (s *AuthService) CreateCredential(ctx context.Context, req *authv1.CreateCredentialRequest) (*authv1.CreateCredentialResponse, error) {
	id, err := s.api.CreateAccount(ctx, req.GetEmail(), req.GetPassword())
	if err != nil {
		return nil, toStatus(err)
	}
	return &authv1.CreateCredentialResponse{UserId: id}, nil
}

// SignIn verifies credentials and issues a session. A non-positive
// ttl_seconds uses the service default.
func (s *AuthService) SignIn(ctx context.Context, req *authv1.SignInRequest) (*authv1.SignInResponse, error) {
	ttlSeconds := req.GetTtlSeconds()
	if ttlSeconds > maxTTLSeconds {
		return nil, toStatus(auth.NewInvalidInputError(auth.MsgSessionTTLTooLong))
	}
	session, err := s.api.SignInFor(ctx, req.GetEmail(), req.GetPassword(), time.Duration(ttlSeconds)*time.Second)
	if err != nil {
		return nil, toStatus(err)
	}
	return &authv1.SignInResponse{Session: sessionToProto(session)}, nil
}

// Authenticate reports the session behind a valid session id.
func (s *AuthService) Authenticate(ctx context.Context, req *authv1.AuthenticateRequest) (*authv1.AuthenticateResponse, error) {
	session, err := s.api.Authenticate(ctx, req.GetSessionId())
	if err != nil {
		return nil, toStatus(err)
	}
	return &authv1.AuthenticateResponse{Session: sessionToProto(session)}, nil
}

// SignOut ends a session.
func (s *AuthService) SignOut(ctx context.Context, req *authv1.SignOutRequest) (*authv1.SignOutResponse, error) {
	if err := s.api.SignOut(ctx, req.GetSessionId()); err != nil {
		return nil, toStatus(err)
	}
	return &authv1.SignOutResponse{}, nil
}

func sessionToProto(session *auth.Session) *authv1.Session {
	return &authv1.Session{
		SessionId:    session.ID.String(),
		CredentialId: session.CredentialID.String(),
		CreatedAt:    timestamppb.New(session.CreatedAt),
		ExpiresAt:    timestamppb.New(session.ExpiresAt),
	}
}

// toStatus maps an auth error to a gRPC status. Internal details never leave
// the process.
func toStatus(err error) error {
	switch auth.KindOf(err) {
	case auth.KindInvalidInput:
		return status.Error(codes.InvalidArgument, auth.Message(err))
	case auth.KindInvalidCredentials:
		return status.Error(codes.Unauthenticated, MsgInvalidCredentials)
	default:
		return status.Error(codes.Unknown, MsgInternal)
	}
}

// UnaryServerInterceptor logs and counts every unary call. The request id is
// taken from incoming metadata or generated.
func UnaryServerInterceptor(logger *slog.Logger, metrics *observability.Metrics) grpc.UnaryServerInterceptor {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		requestID := incomingRequestID(ctx)
		ctx = logging.ContextWithRequestID(ctx, requestID)

		start := time.Now()
		resp, err := handler(ctx, req)
		elapsed := time.Since(start)

		code := status.Code(err)
		metrics.ObserveRequest("grpc", info.FullMethod, code.String(), elapsed)

		level := slog.LevelInfo
		if code == codes.Unknown || code == codes.Internal {
			level = slog.LevelError
		}
		logger.Log(ctx, level, "rpc finished",
			"method", info.FullMethod,
			"code", code.String(),
			"duration", elapsed,
		)
		return resp, err
	}
}

func incomingRequestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get(MetadataRequestID); len(ids) > 0 && ids[0] != "" {
			return ids[0]
		}
	}
	return ulid.Make().String()
}

// ServerConfig configures NewServer.
type ServerConfig struct {
	Logger  *slog.Logger
	Metrics *observability.Metrics
}

// NewServer creates a gRPC server with the auth service and the standard
// health service registered.
func NewServer(api auth.API, cfg ServerConfig, opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{
		grpc.ChainUnaryInterceptor(UnaryServerInterceptor(cfg.Logger, cfg.Metrics)),
		// Matches the client keepalive so idle pings are not rejected.
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             5 * time.Second,
			PermitWithoutStream: true,
		}),
	}, opts...)
	srv := grpc.NewServer(opts...)

	authv1.RegisterAuthServer(srv, NewAuthService(api))

	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	return srv
}
