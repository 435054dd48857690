package apperrors

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// SerialNumberConstraint is the unique constraint guarding asset serial
// numbers in the assets table. The storage adapter matches it by name when
// classifying insert/update failures.
const SerialNumberConstraint = "assets_serial_number_uk"

// pqUniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const pqUniqueViolation = "23505"

// NotFoundError signals that no asset exists for the requested id.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("asset not found: id=%d", e.ID)
}

func NewNotFound(id int64) *NotFoundError {
	return &NotFoundError{ID: id}
}

// SerialConflictError signals an attempt to create or rename an asset to a
// serial number already held by another asset.
type SerialConflictError struct {
	SerialNumber string
}

func (e *SerialConflictError) Error() string {
	return fmt.Sprintf("an asset with serialNumber='%s' already exists", e.SerialNumber)
}

func NewSerialConflict(serialNumber string) *SerialConflictError {
	return &SerialConflictError{SerialNumber: serialNumber}
}

// InvalidParameterError signals a malformed or out-of-range query parameter.
// Param and Rejected feed the field error list of the response body and may
// be empty.
type InvalidParameterError struct {
	Message  string
	Param    string
	Rejected string
}

func (e *InvalidParameterError) Error() string {
	return e.Message
}

func NewInvalidParameter(message string) *InvalidParameterError {
	return &InvalidParameterError{Message: message}
}

func NewInvalidParameterValue(param, message, rejected string) *InvalidParameterError {
	return &InvalidParameterError{Message: message, Param: param, Rejected: rejected}
}

// FieldError is a single validation finding on a request body field.
type FieldError struct {
	Field         string `json:"field"`
	Message       string `json:"message"`
	RejectedValue string `json:"rejectedValue"`
}

// ValidationError aggregates the findings produced by request body
// validation. It always carries at least one finding.
type ValidationError struct {
	Findings []FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("request validation failed with %d finding(s)", len(e.Findings))
}

func NewValidation(findings []FieldError) *ValidationError {
	return &ValidationError{Findings: findings}
}

// UniqueViolationError is produced by the storage adapter when the database
// rejects a write because of a uniqueness constraint. Constraint carries the
// violated constraint name when the driver reports one.
type UniqueViolationError struct {
	Constraint string
	cause      error
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("unique constraint violated: %s", e.Constraint)
}

func (e *UniqueViolationError) Unwrap() error {
	return e.cause
}

// WrapDBError classifies a storage failure at the adapter boundary. A
// *pq.Error anywhere in the chain reporting either the serial number
// constraint by name or the unique_violation SQLSTATE becomes a
// UniqueViolationError; anything else is returned unchanged and propagates
// as a generic storage fault.
func WrapDBError(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Constraint == SerialNumberConstraint || string(pqErr.Code) == pqUniqueViolation {
			return &UniqueViolationError{Constraint: pqErr.Constraint, cause: err}
		}
	}

	return err
}
