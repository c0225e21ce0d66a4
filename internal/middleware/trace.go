package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"styleMarket/pkg/logger"
)

const HeaderRequestID = "X-Request-ID"

// Trace tags every request with a trace id, reusing a well-formed incoming
// X-Request-ID, and echoes it in the response.
func Trace() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			traceID := req.Header.Get(HeaderRequestID)
			if _, err := uuid.Parse(traceID); err != nil {
				traceID = uuid.NewString()
			}

			c.SetRequest(req.WithContext(logger.WithTraceID(req.Context(), traceID)))
			c.Response().Header().Set(HeaderRequestID, traceID)

			return next(c)
		}
	}
}
