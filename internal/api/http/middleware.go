package http

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/docrequest-service/internal/observability"
	apperrors "github.com/spec-kit/docrequest-service/pkg/util/errorutil"
)

// RegisterMiddlewares attaches the global chain: request correlation ids,
// per-request timeout, access logging, then error rendering. The error
// middleware sits innermost so the logger observes the rendered status.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	app.Use(observability.RequestID())
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(observability.RequestLogger(logger, metrics))
	app.Use(errorHandlingMiddleware(logger, metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorHandlingMiddleware renders DomainErrors as the JSON error envelope and
// recovers panics. Upstream failures (object storage, email provider) are
// logged separately from our own faults: a 502 points at a collaborator, a 500
// at this service.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					zap.String("request_id", observability.RequestIDFromContext(c)),
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err == nil {
				return
			}

			domainErr := apperrors.ToDomainError(err)
			if metrics != nil {
				metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
			}

			switch {
			case domainErr.Code == apperrors.CodeUpstreamError:
				logger.Warn("upstream dependency failed",
					zap.String("request_id", observability.RequestIDFromContext(c)),
					zap.String("path", c.Path()),
					zap.Error(domainErr))
			case domainErr.HTTPStatus >= 500:
				logger.Error("request failed",
					zap.String("request_id", observability.RequestIDFromContext(c)),
					zap.String("path", c.Path()),
					zap.Error(domainErr))
			}

			body := fiber.Map{
				"code":    domainErr.Code,
				"message": domainErr.Message,
			}
			if len(domainErr.Details) > 0 {
				body["details"] = domainErr.Details
			}
			c.Status(domainErr.HTTPStatus)
			_ = c.JSON(fiber.Map{"error": body})
			err = nil
		}()
		return c.Next()
	}
}
