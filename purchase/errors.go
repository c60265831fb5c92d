package purchase

import "github.com/pkg/errors"

// Validation errors. Rejected synchronously before any remote call, with no
// side effects on session state.
var (
	ErrNoServiceSelected   = errors.New("no service selected")
	ErrIdentifierTooShort  = errors.New("account identifier too short")
	ErrNotVerified         = errors.New("account not verified")
	ErrUnknownVariation    = errors.New("variation not in current catalog")
	ErrNoVariationSelected = errors.New("no variation selected")
	ErrStaleVerification   = errors.New("verification does not match current service and account")
	ErrSubmitInFlight      = errors.New("purchase submit already in flight")
)

// Remote errors. Recoverable: the caller may retry the same step.
var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrProviderUnavailable = errors.New("provider unavailable")
)

// ErrProviderRejected: the provider explicitly refused the request before
// moving funds. Safe to retry with a fresh submission.
var ErrProviderRejected = errors.New("provider rejected request")

// ErrSettlementUnknown: the submit call failed in transit or timed out, so the
// funds-movement status is genuinely unknown. Never reported as a failed
// outcome; the caller must go through a status check, not a repeat purchase.
var ErrSettlementUnknown = errors.New("settlement status unknown")

var validationErrors = []error{
	ErrNoServiceSelected,
	ErrIdentifierTooShort,
	ErrNotVerified,
	ErrUnknownVariation,
	ErrNoVariationSelected,
	ErrStaleVerification,
	ErrSubmitInFlight,
}

// IsValidation reports whether err was caught before any remote call.
func IsValidation(err error) bool {
	cause := errors.Cause(err)
	for _, e := range validationErrors {
		if cause == e {
			return true
		}
	}
	return false
}

// IsSettlementUnknown reports whether err leaves the funds-movement status
// ambiguous.
func IsSettlementUnknown(err error) bool {
	return errors.Cause(err) == ErrSettlementUnknown
}
