package purchase

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeBiller struct {
	verifyCalls  int
	catalogCalls int
	submitCalls  int

	resolvedName string
	verifyErr    error
	variations   []ServiceVariation
	catalogErr   error
	raw          *RawSettlementResponse
	submitErr    error

	lastReq PurchaseRequest

	// blockSubmit, when set, holds Submit until released.
	blockSubmit chan struct{}
	entered     chan struct{}
}

func (f *fakeBiller) VerifyAccount(ctx context.Context, service ServiceSelector, accountID string) (string, error) {
	f.verifyCalls++
	return f.resolvedName, f.verifyErr
}

func (f *fakeBiller) ListVariations(ctx context.Context, service ServiceSelector) ([]ServiceVariation, error) {
	f.catalogCalls++
	return f.variations, f.catalogErr
}

func (f *fakeBiller) Submit(ctx context.Context, req PurchaseRequest) (*RawSettlementResponse, error) {
	f.submitCalls++
	f.lastReq = req
	if f.blockSubmit != nil {
		close(f.entered)
		<-f.blockSubmit
	}
	return f.raw, f.submitErr
}

func dstvBiller() *fakeBiller {
	return &fakeBiller{
		resolvedName: "Jane Doe",
		variations: []ServiceVariation{
			{Code: "P1", DisplayName: "Compact", AmountMinor: 2000},
			{Code: "P2", DisplayName: "Premium", AmountMinor: 5000},
		},
		raw: &RawSettlementResponse{Code: CODE_SUCCESS, Ref: "ord-1"},
	}
}

func readySession(t *testing.T, b *fakeBiller) *Session {
	t.Helper()
	ctx := context.Background()
	s := NewSession(b, b, b)
	s.SelectService("dstv")
	require.NoError(t, s.Verify(ctx, "1234567890"))
	require.Equal(t, "Jane Doe", s.Verification().ResolvedName)
	list, err := s.LoadVariations(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.NoError(t, s.SelectVariation("P1"))
	return s
}

func TestVerifyValidation(t *testing.T) {
	ctx := context.Background()
	b := dstvBiller()
	s := NewSession(b, b, b)

	require.Equal(t, ErrNoServiceSelected, s.Verify(ctx, "1234567890"))

	s.SelectService("dstv")
	require.Equal(t, ErrIdentifierTooShort, s.Verify(ctx, "1234"))
	require.Equal(t, ErrIdentifierTooShort, s.Verify(ctx, "   12 "))
	require.Equal(t, 0, b.verifyCalls)
}

func TestVerifyFailureClearsPriorVerification(t *testing.T) {
	ctx := context.Background()
	b := dstvBiller()
	s := NewSession(b, b, b)
	s.SelectService("dstv")
	require.NoError(t, s.Verify(ctx, "1234567890"))
	require.NotNil(t, s.Verification())

	b.verifyErr = ErrAccountNotFound
	err := s.Verify(ctx, "1234567890")
	require.Equal(t, ErrAccountNotFound, errors.Cause(err))
	require.Nil(t, s.Verification())
}

func TestLoadVariationsRequiresVerification(t *testing.T) {
	ctx := context.Background()
	b := dstvBiller()
	s := NewSession(b, b, b)
	s.SelectService("dstv")

	_, err := s.LoadVariations(ctx)
	require.Equal(t, ErrNotVerified, err)
	require.Equal(t, 0, b.catalogCalls, "no remote call before verification")
}

func TestSelectVariationUnknownCode(t *testing.T) {
	b := dstvBiller()
	s := readySession(t, b)

	err := s.SelectVariation("NOPE")
	require.Equal(t, ErrUnknownVariation, err)
	require.Equal(t, "P1", s.Selected().Code, "selection unchanged")
}

func TestPairingInvariantOnServiceSwitch(t *testing.T) {
	ctx := context.Background()
	b := dstvBiller()
	s := readySession(t, b)

	// Switching providers invalidates everything downstream.
	s.SelectService("gotv")
	_, err := s.SubmitPurchase(ctx, "08030000000")
	require.True(t, IsValidation(err))
	require.Equal(t, 0, b.submitCalls)
}

func TestPairingInvariantOnIdentifierChange(t *testing.T) {
	ctx := context.Background()
	b := dstvBiller()
	s := readySession(t, b)

	// The identifier changes after verification without re-verifying.
	s.SetAccount("0987654321")
	_, err := s.SubmitPurchase(ctx, "08030000000")
	require.True(t, IsValidation(err))
	require.Equal(t, 0, b.submitCalls)
}

func TestSubmitDelivered(t *testing.T) {
	ctx := context.Background()
	b := dstvBiller()
	s := readySession(t, b)

	out, err := s.SubmitPurchase(ctx, "08030000000")
	require.NoError(t, err)
	require.Equal(t, DELIVERED_PO, out.Status)
	require.Equal(t, "ord-1", out.ConfirmationRef)
	require.Equal(t, PurchaseRequest{
		Service:           "dstv",
		AccountIdentifier: "1234567890",
		VariationCode:     "P1",
		AmountMinor:       2000,
		ContactPhone:      "08030000000",
	}, b.lastReq)

	// Delivered clears the selection but keeps the verification.
	require.Nil(t, s.Selected())
	require.NotNil(t, s.Verification())
	_, err = s.SubmitPurchase(ctx, "08030000000")
	require.Equal(t, ErrNoVariationSelected, err)
	require.Equal(t, 1, b.submitCalls)
}

func TestSubmitPending(t *testing.T) {
	ctx := context.Background()
	b := dstvBiller()
	b.raw = &RawSettlementResponse{Code: CODE_PROCESSING, Ref: "ord-2"}
	s := readySession(t, b)

	out, err := s.SubmitPurchase(ctx, "08030000000")
	require.NoError(t, err)
	require.Equal(t, PENDING_PO, out.Status)
	require.Equal(t, "ord-2", out.ConfirmationRef)

	// Pending leaves state as is: retry and investigation stay possible.
	require.NotNil(t, s.Selected())
	require.NotNil(t, s.Verification())
}

func TestSubmitProviderRejected(t *testing.T) {
	ctx := context.Background()
	b := dstvBiller()
	b.raw = nil
	b.submitErr = errors.WithMessage(ErrProviderRejected, "bad vend code")
	s := readySession(t, b)

	out, err := s.SubmitPurchase(ctx, "08030000000")
	require.NoError(t, err)
	require.Equal(t, FAILED_PO, out.Status)
	require.NotEmpty(t, out.Reason)
}

func TestSubmitNetworkFailureIsAmbiguous(t *testing.T) {
	ctx := context.Background()
	b := dstvBiller()
	b.raw = nil
	b.submitErr = errors.New("connection reset by peer")
	s := readySession(t, b)

	_, err := s.SubmitPurchase(ctx, "08030000000")
	require.Error(t, err)
	require.True(t, IsSettlementUnknown(err), "transport fault is never a failed outcome")

	// State untouched: the user is sent to a status check, not a re-entry.
	require.NotNil(t, s.Selected())
	require.NotNil(t, s.Verification())
}

func TestSubmitInFlightGuard(t *testing.T) {
	ctx := context.Background()
	b := dstvBiller()
	b.blockSubmit = make(chan struct{})
	b.entered = make(chan struct{})
	s := readySession(t, b)

	done := make(chan struct{})
	var firstOut Outcome
	var firstErr error
	go func() {
		defer close(done)
		firstOut, firstErr = s.SubmitPurchase(ctx, "08030000000")
	}()

	<-b.entered
	_, err := s.SubmitPurchase(ctx, "08030000000")
	require.Equal(t, ErrSubmitInFlight, err)

	close(b.blockSubmit)
	<-done
	require.NoError(t, firstErr)
	require.Equal(t, DELIVERED_PO, firstOut.Status)
	require.Equal(t, 1, b.submitCalls)
}

func TestReVerificationOverwrites(t *testing.T) {
	ctx := context.Background()
	b := dstvBiller()
	s := readySession(t, b)

	b.resolvedName = "John Doe"
	require.NoError(t, s.Verify(ctx, "1234567890"))
	require.Equal(t, "John Doe", s.Verification().ResolvedName)
}
