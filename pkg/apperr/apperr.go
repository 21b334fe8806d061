package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure so callers can react to the category
// without parsing messages.
type Kind string

const (
	KindInvalidTransition   Kind = "invalid_transition"
	KindTableUnavailable    Kind = "table_unavailable"
	KindNoApplicableRate    Kind = "no_applicable_rate"
	KindInvalidInterval     Kind = "invalid_interval"
	KindInsufficientStock   Kind = "insufficient_stock"
	KindDiscountNotEligible Kind = "discount_not_eligible"
	KindTenantMismatch      Kind = "tenant_mismatch"
	KindNotFound            Kind = "not_found"
	KindBusy                Kind = "busy"
	KindUnavailable         Kind = "unavailable"
)

// Discount sub-reasons carried in Error.Reason.
const (
	ReasonInactive     = "inactive"
	ReasonExpired      = "expired"
	ReasonNotStarted   = "not_started"
	ReasonExhausted    = "exhausted"
	ReasonBelowMinimum = "below_minimum"
)

type Error struct {
	Kind   Kind
	Reason string // optional sub-reason, e.g. which discount rule failed
	msg    string
	err    error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.err
}

// Is matches any *Error with the same Kind, so callers can use
// errors.Is(err, apperr.New(apperr.KindBusy, "")) style sentinels.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, msg: msg}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

// NewReason builds an error carrying a sub-reason (discount eligibility).
func NewReason(kind Kind, reason, msg string) *Error {
	return &Error{Kind: kind, Reason: reason, msg: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, msg: msg, err: err}
}

// KindOf extracts the kind of a (possibly wrapped) error. Unclassified
// errors report KindUnavailable: unexpected lower-level failures must
// never surface as a silent success or an untyped error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnavailable
}

func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// ReasonOf returns the sub-reason, empty when none was recorded.
func ReasonOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return ""
}

// Retryable reports whether the caller may retry the same request
// verbatim. Only lock contention qualifies; every other kind needs
// corrected input or a different state first.
func Retryable(err error) bool {
	return IsKind(err, KindBusy)
}
