// Package errors defines the application error taxonomy and its mapping to
// HTTP status codes. User-facing messages are in Spanish; business error
// codes stay in English for logs and clients.
package errors

import (
	"net/http"

	"github.com/PaintToxic22/sistema-rastreo/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Is matches two BaseErrors by business code, so a detailed copy still
// satisfies errors.Is against its predefined sentinel.
func (e *BaseError) Is(target error) bool {
	var other *BaseError
	if !errors.As(target, &other) {
		return false
	}

	return e.errorCode == other.errorCode
}

// Predefined error types
var (
	// Validation errors (400)
	ErrValidation = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Faltan campos requeridos o son inválidos",
		"",
	)

	ErrInvalidStatus = NewBaseError(
		http.StatusBadRequest,
		"INVALID_STATUS",
		"Estado no válido",
		"",
	)

	ErrInvalidCodeFormat = NewBaseError(
		http.StatusBadRequest,
		"INVALID_CODE_FORMAT",
		"Formato de código no válido",
		"",
	)

	// Authentication errors (401)
	ErrAuthentication = NewBaseError(
		http.StatusUnauthorized,
		"AUTHENTICATION_FAILED",
		"Token inválido o expirado",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Email o contraseña incorrectos",
		"",
	)

	ErrUserInactive = NewBaseError(
		http.StatusUnauthorized,
		"USER_INACTIVE",
		"La cuenta está desactivada",
		"",
	)

	// Permission errors (403)
	ErrPermissionDenied = NewBaseError(
		http.StatusForbidden,
		"PERMISSION_DENIED",
		"No tienes permisos para realizar esta acción",
		"",
	)

	// Not found errors (404)
	ErrShipmentNotFound = NewBaseError(
		http.StatusNotFound,
		"SHIPMENT_NOT_FOUND",
		"Encomienda no encontrada",
		"",
	)

	ErrFreightOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"FREIGHT_ORDER_NOT_FOUND",
		"Orden de flete no encontrada",
		"",
	)

	ErrDriverNotFound = NewBaseError(
		http.StatusNotFound,
		"DRIVER_NOT_FOUND",
		"Chofer no encontrado",
		"",
	)

	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"Usuario no encontrado",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Recurso no encontrado",
		"",
	)

	// Conflict errors (409)
	ErrEmailTaken = NewBaseError(
		http.StatusConflict,
		"EMAIL_ALREADY_REGISTERED",
		"El email ya está registrado",
		"",
	)

	ErrOrderNumberTaken = NewBaseError(
		http.StatusConflict,
		"ORDER_NUMBER_TAKEN",
		"El número de orden ya existe",
		"",
	)

	// General errors (500)
	ErrUnexpected = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Error interno del servidor",
		"",
	)
)

// DatabaseExecuteError represents a storage execution error, implementing the
// AppError interface. The original message is kept in Details for diagnostics.
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Error de base de datos"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
