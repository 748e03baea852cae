package dto

import (
	"net/http"
	"strings"
)

// Error codes surfaced by the API. Domain services attach these to
// shared.DomainError; handlers translate them to HTTP statuses here.
const (
	// General
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeInvalidJSON  = "INVALID_JSON"

	// Auth
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeAccountInactive    = "ACCOUNT_INACTIVE"
	ErrCodeTokenExpired       = "TOKEN_EXPIRED"
	ErrCodeInvalidToken       = "INVALID_TOKEN"

	// Resource lookup
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeCustomerNotFound = "CUSTOMER_NOT_FOUND"
	ErrCodeProductNotFound  = "PRODUCT_NOT_FOUND"
	ErrCodeCategoryNotFound = "CATEGORY_NOT_FOUND"
	ErrCodeAssigneeNotFound = "ASSIGNEE_NOT_FOUND"

	// Uniqueness conflicts
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeSlugExists    = "SLUG_EXISTS"
	ErrCodeSKUExists     = "SKU_EXISTS"
	ErrCodePhoneExists   = "PHONE_EXISTS"
	ErrCodeEmailExists   = "EMAIL_EXISTS"

	// Business rules
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrCodeInvalidState      = "INVALID_STATE"
	ErrCodeInvalidTotal      = "INVALID_TOTAL"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeInvalidToken:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeAccountInactive:    http.StatusForbidden,

	ErrCodeNotFound:         http.StatusNotFound,
	ErrCodeCustomerNotFound: http.StatusNotFound,
	ErrCodeProductNotFound:  http.StatusNotFound,
	ErrCodeCategoryNotFound: http.StatusNotFound,
	ErrCodeAssigneeNotFound: http.StatusNotFound,

	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeSlugExists:    http.StatusConflict,
	ErrCodeSKUExists:     http.StatusConflict,
	ErrCodePhoneExists:   http.StatusConflict,
	ErrCodeEmailExists:   http.StatusConflict,

	ErrCodeInsufficientStock: http.StatusUnprocessableEntity,
	ErrCodeInvalidState:      http.StatusUnprocessableEntity,
	ErrCodeInvalidTotal:      http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status for an error code.
// Unlisted INVALID_* codes are field-level validation failures and map
// to 400; anything else unknown maps to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
