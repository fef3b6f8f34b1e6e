package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates failed authentication, e.g. a bad email/password
// pair at login.
var ErrUnauthorized = errors.New("unauthorized")

// ErrAccountNotOperable indicates a balance-mutating operation was attempted
// on an account whose lifecycle status forbids it (pending, frozen or closed).
var ErrAccountNotOperable = errors.New("account is not operable")

// ErrInvalidAmount indicates a zero or non-positive amount was supplied to a
// deposit or withdrawal.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrExternalServiceUnavailable indicates an external collaborator (e.g. the
// AI classification service) failed or timed out. The categorization chain
// absorbs this error as "no opinion"; it is never propagated out of the
// pipeline.
var ErrExternalServiceUnavailable = errors.New("external service unavailable")

// ErrInvalidBudgetConfiguration indicates a budget with a non-positive limit
// or an alert threshold outside (0,1].
var ErrInvalidBudgetConfiguration = errors.New("invalid budget configuration")
