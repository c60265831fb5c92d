package purchase

import "strings"

type OutcomeStatus string

func (s OutcomeStatus) Match(in OutcomeStatus) bool {
	return s == in
}

const (
	DELIVERED_PO OutcomeStatus = "delivered"
	PENDING_PO   OutcomeStatus = "pending"
	FAILED_PO    OutcomeStatus = "failed"
)

// Outcome is the terminal result of one purchase submission. The orchestrator
// never retries automatically on any outcome.
type Outcome struct {
	Status OutcomeStatus `json:"status"`

	// ConfirmationRef provider reference for delivered and pending outcomes.
	ConfirmationRef string `json:"confirmation_ref,omitempty"`

	// Reason provider-supplied description for failed outcomes.
	Reason string `json:"reason,omitempty"`
}

// RawSettlementResponse is the biller's raw answer to a vend, normalized by
// the provider adapter from its wire format.
type RawSettlementResponse struct {
	// Code top-level status code.
	Code string `json:"status"`

	// TransactionStatus nested status of the vend itself, when present.
	TransactionStatus string `json:"transaction_status,omitempty"`

	Message string `json:"message,omitempty"`
	Ref     string `json:"ref,omitempty"`
}

// Raw status codes of the biller.
const (
	CODE_SUCCESS    = "00"
	CODE_PROCESSING = "09"

	TX_DELIVERED = "delivered"
)

const failedFallbackReason = "purchase failed"

// InterpretSettlement maps a raw settlement response to an outcome.
//
// A purchase may complete after the HTTP call returns, so the mapping is
// three-way: an "accepted, processing" signal is pending, not failed (the
// user must not be pushed to pay twice) and not delivered (the vend is not
// confirmed). Any unrecognized or malformed response is failed.
func InterpretSettlement(raw *RawSettlementResponse) Outcome {
	if raw == nil {
		return Outcome{Status: FAILED_PO, Reason: failedFallbackReason}
	}
	switch {
	case raw.Code == CODE_SUCCESS,
		strings.EqualFold(raw.TransactionStatus, TX_DELIVERED):
		return Outcome{Status: DELIVERED_PO, ConfirmationRef: raw.Ref}
	case raw.Code == CODE_PROCESSING:
		return Outcome{Status: PENDING_PO, ConfirmationRef: raw.Ref}
	}
	reason := raw.Message
	if reason == "" {
		reason = failedFallbackReason
	}
	return Outcome{Status: FAILED_PO, Reason: reason}
}
