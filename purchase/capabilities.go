package purchase

import "context"

// Verifier resolves an account identifier at the biller to a display name.
// Fails with ErrAccountNotFound or ErrProviderUnavailable.
type Verifier interface {
	VerifyAccount(ctx context.Context, service ServiceSelector, accountID string) (string, error)
}

// CatalogProvider lists priced variations for a service.
// Fails with ErrProviderUnavailable.
type CatalogProvider interface {
	ListVariations(ctx context.Context, service ServiceSelector) ([]ServiceVariation, error)
}

// PaymentSubmitter executes the money-moving call. Fails with
// ErrProviderRejected (request refused, no funds moved) or
// ErrSettlementUnknown (transport failure, funds status ambiguous).
type PaymentSubmitter interface {
	Submit(ctx context.Context, req PurchaseRequest) (*RawSettlementResponse, error)
}
