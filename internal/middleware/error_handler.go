package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"styleMarket/domain"
	"styleMarket/pkg/logger"
	jsonres "styleMarket/pkg/response"
)

// ErrorHandler renders every error returned by a handler as
// {"error": {"code", "message"}}. Causes wrapped in a domain.AppError are
// logged and never sent to the client.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, code, message := http.StatusInternalServerError, domain.CodeInternal, "Internal server error"

	var appErr *domain.AppError
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
		status, code, message = appErr.Status, appErr.Code, appErr.Message
	case errors.As(err, &httpErr):
		status = httpErr.Code
		code = httpCode(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(httpErr.Code)
		}
	}

	traceID := logger.TraceIDFromContext(c.Request().Context())
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			"method", c.Request().Method, "path", c.Path(), "status", status, "code", code, "trace_id", traceID, "error", err)
	} else {
		logger.Debug("request rejected",
			"method", c.Request().Method, "path", c.Path(), "status", status, "code", code, "trace_id", traceID)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, jsonres.Error(code, message, nil))
	}
	if writeErr != nil {
		logger.Error("failed to write error response", "error", writeErr)
	}
}

func httpCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return domain.CodeForbidden
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case http.StatusTooManyRequests:
		return "TOO_MANY_REQUESTS"
	case http.StatusServiceUnavailable:
		return "SERVICE_UNAVAILABLE"
	default:
		if status >= http.StatusInternalServerError {
			return domain.CodeInternal
		}
		return "REQUEST_FAILED"
	}
}
