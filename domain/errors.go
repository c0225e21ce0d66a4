package domain

import (
	"errors"
	"net/http"
)

const (
	CodeInvalidCategories    = "INVALID_CATEGORIES"
	CodeInvalidBrands        = "INVALID_BRANDS"
	CodeInvalidPriceRange    = "INVALID_PRICE_RANGE"
	CodeInvalidProductID     = "INVALID_PRODUCT_ID"
	CodeInvalidRating        = "INVALID_RATING"
	CodeInvalidBody          = "INVALID_BODY"
	CodeRecommendationFailed = "RECOMMENDATION_FAILED"
	CodeRatingSaveFailed     = "RATING_SAVE_FAILED"
	CodeRatingsFetchFailed   = "RATINGS_FETCH_FAILED"
	CodeRatingsExportFailed  = "RATINGS_EXPORT_FAILED"
	CodeProductsFetchFailed  = "GET_PRODUCTS_FAILED"
	CodeCategoriesFailed     = "GET_CATEGORIES_FAILED"
	CodeProductNotFound      = "PRODUCT_NOT_FOUND"
	CodeForbidden            = "FORBIDDEN"
	CodeInternal             = "INTERNAL_SERVER_ERROR"
)

// AppError is an error meant for the caller: a stable code, an HTTP status
// and a message. The wrapped Err is logged, never rendered.
type AppError struct {
	Code    string
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidationError(code, message string) *AppError {
	return &AppError{Code: code, Status: http.StatusBadRequest, Message: message}
}

func NewNotFoundError(code, message string) *AppError {
	return &AppError{Code: code, Status: http.StatusNotFound, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: CodeForbidden, Status: http.StatusForbidden, Message: message}
}

func NewInternalError(code, message string, err error) *AppError {
	return &AppError{Code: code, Status: http.StatusInternalServerError, Message: message, Err: err}
}

// IsValidation reports whether err is a caller-input failure.
func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Status == http.StatusBadRequest
}
