// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package errutil

import (
	"context"
	"log/slog"

	"github.com/samber/oops"
)

// LogError logs an error with structured context if it's an oops error.
// For oops errors, it extracts and logs the message, code and context.
// For standard errors, it logs the error string.
func LogError(logger *slog.Logger, msg string, err error) {
	LogErrorContext(context.Background(), logger, msg, err)
}

// LogErrorContext is LogError with a context, so trace ids reach the handler,
// and extra key/value attributes appended after the error fields.
func LogErrorContext(ctx context.Context, logger *slog.Logger, msg string, err error, attrs ...any) {
	fields := make([]any, 0, 6+len(attrs))
	if oopsErr, ok := oops.AsOops(err); ok {
		fields = append(fields, "error", oopsErr.Error())
		if code := oopsErr.Code(); code != nil && code != "" {
			fields = append(fields, "code", code)
		}
		if errCtx := oopsErr.Context(); len(errCtx) > 0 {
			fields = append(fields, "context", errCtx)
		}
	} else {
		fields = append(fields, "error", err)
	}
	fields = append(fields, attrs...)
	logger.ErrorContext(ctx, msg, fields...)
}
