package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrItemNotFound indicates that an item reference resolved to no catalog item.
var ErrItemNotFound = errors.New("item not found")

// ErrUnitNotFound indicates that a unit reference does not exist in the directory.
var ErrUnitNotFound = errors.New("unit not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidStateTransition indicates a request is not in a state that admits the operation.
var ErrInvalidStateTransition = errors.New("invalid state transition")

// ErrInsufficientStock indicates a decrement larger than the stock on hand.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrQuotaExceeded indicates an approval would push a unit over its quota.
var ErrQuotaExceeded = errors.New("quota exceeded")

// ErrInvalidQuantity indicates a quantity outside the allowed range.
var ErrInvalidQuantity = errors.New("invalid quantity")

// ErrAmbiguousItemReference indicates a free-text item name matched several items.
var ErrAmbiguousItemReference = errors.New("ambiguous item reference")

// ErrBusy indicates a row lock could not be acquired in time. Callers may retry.
var ErrBusy = errors.New("resource busy, retry later")

// ErrUnavailable indicates the datastore could not be reached.
var ErrUnavailable = errors.New("datastore unavailable")

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal error")
)

// AppError carries an HTTP-ish status code alongside the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// InsufficientStockError reports the stock on hand against the amount asked for.
type InsufficientStockError struct {
	ItemID    string
	ItemName  string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insufficient for item %q: available %d, requested %d", e.ItemName, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// QuotaExceededError reports the quota row that blocked an approval.
type QuotaExceededError struct {
	ItemID    string
	UnitID    string
	Max       int
	Used      int
	Requested int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("quota exceeded for item %s and unit %s: max %d, used %d, requested %d",
		e.ItemID, e.UnitID, e.Max, e.Used, e.Requested)
}

func (e *QuotaExceededError) Unwrap() error {
	return ErrQuotaExceeded
}

// InvalidStateTransitionError names the request and the rejected move.
type InvalidStateTransitionError struct {
	RequestID string
	From      string
	To        string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("request %s already processed: cannot move from %s to %s", e.RequestID, e.From, e.To)
}

func (e *InvalidStateTransitionError) Unwrap() error {
	return ErrInvalidStateTransition
}

// AmbiguousItemReferenceError lists the item names a reference could mean.
type AmbiguousItemReferenceError struct {
	Reference  string
	Candidates []string
}

func (e *AmbiguousItemReferenceError) Error() string {
	return fmt.Sprintf("item reference %q is ambiguous, candidates: %s", e.Reference, strings.Join(e.Candidates, ", "))
}

func (e *AmbiguousItemReferenceError) Unwrap() error {
	return ErrAmbiguousItemReference
}
