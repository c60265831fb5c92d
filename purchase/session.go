package purchase

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Identifiers shorter than this are rejected before any remote call.
const minIdentifierLen = 5

// Session drives one utility-purchase flow: select service, verify account,
// load priced variations, select one, submit. It owns no network code; the
// three capabilities are injected.
//
// Operations are expected one at a time per session (discrete user actions),
// but every method is safe for concurrent use so a registry can serve
// parallel handlers. Submit carries a boolean in-flight guard held for the
// full duration of the remote call.
type Session struct {
	verifier  Verifier
	catalog   CatalogProvider
	submitter PaymentSubmitter
	l         *zap.Logger

	mu           sync.Mutex
	inFlight     bool
	service      ServiceSelector
	accountID    string
	verification *VerificationResult
	variations   []ServiceVariation
	selected     *ServiceVariation
}

func NewSession(verifier Verifier, catalog CatalogProvider, submitter PaymentSubmitter) *Session {
	return &Session{
		verifier:  verifier,
		catalog:   catalog,
		submitter: submitter,
		l:         zap.L().Named("purchase_session"),
	}
}

// SelectService switches the session to another billable service. Everything
// downstream is invalidated: switching providers never reuses a verification,
// a catalog or a selection.
func (s *Session) SelectService(selector ServiceSelector) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.service = selector
	s.verification = nil
	s.variations = nil
	s.selected = nil
}

// SetAccount sets the account identifier the user is typing against.
// Changing the identifier drops any prior verification: the purchase must
// re-verify before it can proceed.
func (s *Session) SetAccount(accountID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if accountID != s.accountID {
		s.verification = nil
	}
	s.accountID = accountID
}

// Verify resolves the account identifier at the biller. A failure clears any
// prior verification and is recoverable: the user may retry with a corrected
// identifier.
func (s *Session) Verify(ctx context.Context, accountID string) error {
	accountID = strings.TrimSpace(accountID)

	s.mu.Lock()
	service := s.service
	if service == UNKNOWN_SERVICE {
		s.mu.Unlock()
		return ErrNoServiceSelected
	}
	if len(accountID) < minIdentifierLen {
		s.mu.Unlock()
		return ErrIdentifierTooShort
	}
	if accountID != s.accountID {
		s.verification = nil
	}
	s.accountID = accountID
	s.mu.Unlock()

	resolvedName, err := s.verifier.VerifyAccount(ctx, service, accountID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.verification = nil
		s.l.Warn(
			"Failed verify account.",
			zap.String("service", string(service)),
			zap.String("account_id", accountID),
			zap.Error(err),
		)
		switch errors.Cause(err) {
		case ErrAccountNotFound, ErrProviderUnavailable:
			return err
		}
		return errors.WithMessage(ErrProviderUnavailable, err.Error())
	}
	if !s.service.Match(service) || s.accountID != accountID {
		// The session moved on while the call was in flight.
		return ErrStaleVerification
	}
	s.verification = &VerificationResult{
		Service:           service,
		AccountIdentifier: accountID,
		ResolvedName:      resolvedName,
	}
	return nil
}

// LoadVariations fetches the priced catalog for the current service and
// replaces the variation list wholesale. A priced catalog is never fetched
// for an unverified account.
func (s *Session) LoadVariations(ctx context.Context) ([]ServiceVariation, error) {
	s.mu.Lock()
	service := s.service
	if err := s.verifiedLocked(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()

	list, err := s.catalog.ListVariations(ctx, service)
	if err != nil {
		s.l.Warn(
			"Failed load variations.",
			zap.String("service", string(service)),
			zap.Error(err),
		)
		if errors.Cause(err) == ErrProviderUnavailable {
			return nil, err
		}
		return nil, errors.WithMessage(ErrProviderUnavailable, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.service.Match(service) {
		return nil, ErrStaleVerification
	}
	s.variations = list
	s.selected = nil
	return list, nil
}

// SelectVariation marks a variation from the current catalog as the one to
// buy. A code absent from the last fetched list is a stale UI selection and
// leaves the current selection unchanged.
func (s *Session) SelectVariation(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.variations {
		if s.variations[i].Code == code {
			v := s.variations[i]
			s.selected = &v
			return nil
		}
	}
	return ErrUnknownVariation
}

// SubmitPurchase re-validates the pairing invariant, invokes the payment
// submitter exactly once and interprets the raw settlement response.
//
// On a delivered outcome the selection is cleared (no accidental double
// submit via a stale selection) and the verification preserved (a repeat
// purchase against the same verified account does not re-verify). On pending
// and failed outcomes state is left as is so the user can investigate or
// retry without re-entering the identifier.
func (s *Session) SubmitPurchase(ctx context.Context, contactPhone string) (Outcome, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return Outcome{}, ErrSubmitInFlight
	}
	if s.service == UNKNOWN_SERVICE {
		s.mu.Unlock()
		return Outcome{}, ErrNoServiceSelected
	}
	if err := s.verifiedLocked(); err != nil {
		s.mu.Unlock()
		return Outcome{}, err
	}
	if s.selected == nil {
		s.mu.Unlock()
		return Outcome{}, ErrNoVariationSelected
	}
	req := PurchaseRequest{
		Service:           s.service,
		AccountIdentifier: s.accountID,
		VariationCode:     s.selected.Code,
		AmountMinor:       s.selected.AmountMinor,
		ContactPhone:      contactPhone,
	}
	s.inFlight = true
	s.mu.Unlock()

	// The money-moving call runs to completion, it is never cancelled here.
	raw, err := s.submitter.Submit(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	if err != nil {
		if errors.Cause(err) == ErrProviderRejected {
			// Refused before moving funds: a plain failed outcome, safe to
			// retry with a fresh submission.
			return Outcome{Status: FAILED_PO, Reason: err.Error()}, nil
		}
		s.l.Warn(
			"Submit failed with unknown settlement status.",
			zap.String("service", string(req.Service)),
			zap.String("account_id", req.AccountIdentifier),
			zap.Error(err),
		)
		if IsSettlementUnknown(err) {
			return Outcome{}, err
		}
		return Outcome{}, errors.WithMessage(ErrSettlementUnknown, err.Error())
	}
	out := InterpretSettlement(raw)
	if out.Status.Match(DELIVERED_PO) {
		s.selected = nil
	}
	return out, nil
}

// verifiedLocked checks the pairing invariant: a verification with a resolved
// name exists and matches the current service and account identifier. Called
// with s.mu held.
func (s *Session) verifiedLocked() error {
	if s.verification == nil || s.verification.ResolvedName == "" {
		return ErrNotVerified
	}
	if !s.verification.Service.Match(s.service) || s.verification.AccountIdentifier != s.accountID {
		return ErrStaleVerification
	}
	return nil
}

// Verification returns a copy of the current verification, nil if absent.
func (s *Session) Verification() *VerificationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.verification == nil {
		return nil
	}
	v := *s.verification
	return &v
}

// Variations returns the last fetched catalog.
func (s *Session) Variations() []ServiceVariation {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]ServiceVariation, len(s.variations))
	copy(list, s.variations)
	return list
}

// Selected returns a copy of the selected variation, nil if absent.
func (s *Session) Selected() *ServiceVariation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return nil
	}
	v := *s.selected
	return &v
}

// Service returns the current service selector.
func (s *Session) Service() ServiceSelector {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.service
}
