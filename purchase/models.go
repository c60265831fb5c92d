package purchase

// ServiceSelector identifies a billable service at a provider
// (an airtime network, a data plan family, a TV operator).
type ServiceSelector string

func (s ServiceSelector) Match(in ServiceSelector) bool {
	return s == in
}

const UNKNOWN_SERVICE ServiceSelector = ""

// ServiceVariation is a priced, provider-defined product option.
// Immutable once fetched; a fresh fetch replaces the whole list.
type ServiceVariation struct {
	// Code is opaque and provider-defined, unique within a service.
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`

	// AmountMinor price in minor units of the settlement currency.
	AmountMinor int64 `json:"amount_minor"`

	// Validity is an optional provider-supplied validity description.
	Validity string `json:"validity,omitempty"`
}

// VerificationResult is the outcome of resolving an account identifier
// (smartcard, meter, phone) at the biller. ResolvedName presence gates
// purchase eligibility.
type VerificationResult struct {
	Service           ServiceSelector `json:"service"`
	AccountIdentifier string          `json:"account_identifier"`
	ResolvedName      string          `json:"resolved_name"`
}

// PurchaseRequest is the money-moving request. It is constructed only when a
// verification with a resolved name and a selected variation exist for the
// same service and account identifier pair.
type PurchaseRequest struct {
	Service           ServiceSelector `json:"service"`
	AccountIdentifier string          `json:"account_identifier"`
	VariationCode     string          `json:"variation_code"`
	AmountMinor       int64           `json:"amount_minor"`
	ContactPhone      string          `json:"contact_phone"`
}
