// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "github.com/holomush/authcore/internal/auth"

// startOperation opens a span for a public Service operation. The returned
// func ends the span and records the outcome metric.
func (s *Service) startOperation(ctx context.Context, operation string) (context.Context, func(error)) {
	ctx, span := s.tracer.Start(ctx, "auth."+operation)
	return ctx, func(err error) {
		s.metrics.record(operation, err)
		if err != nil {
			kind := KindOf(err)
			span.SetAttributes(attribute.String("auth.outcome", kind.String()))
			// Rejected input and credentials are expected outcomes, not span errors.
			if kind == KindInternal {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
		} else {
			span.SetAttributes(attribute.String("auth.outcome", "ok"))
		}
		span.End()
	}
}
