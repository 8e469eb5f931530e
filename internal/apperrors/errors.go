package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrPoolNotFound is returned when a pool lookup misses. It matches ErrNotFound.
var ErrPoolNotFound = fmt.Errorf("pool %w", ErrNotFound)

// ErrClaimNotFound is returned when a claim lookup misses. It matches ErrNotFound.
var ErrClaimNotFound = fmt.Errorf("claim %w", ErrNotFound)

// ErrAlreadyMember indicates the member already belongs to a pool.
var ErrAlreadyMember = errors.New("member already belongs to a pool")

// ErrNotAMember indicates the member does not belong to the pool being acted on.
var ErrNotAMember = errors.New("member does not belong to this pool")

// ErrInvalidAmount indicates a non-positive (or otherwise unusable) monetary value.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrClaimFinalized indicates a mutation was attempted on a claim that is not in the required state.
var ErrClaimFinalized = errors.New("claim is already finalized")

// ErrInsufficientFunds indicates an approved claim exceeds the pool's current balance.
var ErrInsufficientFunds = errors.New("insufficient pool balance")

// ErrSettlementFailed indicates the external settlement recorder did not return a reference.
var ErrSettlementFailed = errors.New("settlement failed")

// ErrAlreadyVoted indicates the member already voted on the claim (strict voting only).
var ErrAlreadyVoted = errors.New("member has already voted on this claim")

// AppError carries an HTTP-ish status code alongside a wrapped infrastructure error.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError builds an AppError. err may be nil.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}
