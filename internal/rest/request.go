package rest

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"styleMarket/domain"
	"styleMarket/internal/middleware"
)

// resolveLanguage picks the response language: the lang query parameter,
// then the first supported Accept-Language tag, then English.
func resolveLanguage(c echo.Context) string {
	if lang, ok := domain.NormalizeLanguage(c.QueryParam("lang")); ok {
		return lang
	}

	for _, part := range strings.Split(c.Request().Header.Get("Accept-Language"), ",") {
		tag, _, _ := strings.Cut(part, ";")
		if lang, ok := domain.NormalizeLanguage(tag); ok {
			return lang
		}
	}

	return domain.DefaultLanguage
}

// queryLimit reads the limit parameter. Missing or malformed values read as 0,
// which the services replace with their default.
func queryLimit(c echo.Context) int {
	limit, err := strconv.Atoi(strings.TrimSpace(c.QueryParam("limit")))
	if err != nil {
		return 0
	}
	return limit
}

func userID(c echo.Context) (uint, bool) {
	id, ok := c.Get(middleware.ContextUserID).(uint)
	return id, ok
}

// bindBody decodes the JSON body into v. Decode failures become INVALID_BODY.
func bindBody(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) && httpErr.Code == http.StatusUnsupportedMediaType {
			return domain.NewValidationError(domain.CodeInvalidBody, "request body must be JSON")
		}
		return domain.NewValidationError(domain.CodeInvalidBody, "request body is not valid JSON")
	}
	return nil
}
