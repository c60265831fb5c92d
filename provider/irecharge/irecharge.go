package irecharge

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"encoding/hex"
	"net/url"
	"strconv"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/gebv/billup/provider"
	"github.com/gebv/billup/purchase"
)

type Config struct {
	EntrypointURL string
	VendorCode    string
	PrivateKey    string
}

// OrderStore persists submitted vends and their raw biller statuses.
// *provider.Store satisfies it.
type OrderStore interface {
	NewOrder(ordID string, providerName provider.Provider, req provider.OrderRequest) error
	GetByOrderID(ordID string, providerName provider.Provider) (*provider.PurchaseExtOrders, error)
	SetStatus(ordID string, providerName provider.Provider, newStatus string) error
	ListByStatus(providerName provider.Provider, rawStatus string) ([]*provider.PurchaseExtOrders, error)
}

func NewProvider(s OrderStore, cfg Config, nc *nats.EncodedConn) *Provider {
	return &Provider{
		cfg:    cfg,
		nc:     nc,
		s:      s,
		client: newClient(cfg.VendorCode),
		l:      zap.L().Named("irecharge_provider"),
	}
}

// Provider talks to the iRecharge vending API: account verification, priced
// bouquets and bundles, vends and vend-status re-queries.
type Provider struct {
	cfg    Config
	nc     *nats.EncodedConn
	s      OrderStore
	client *client
	l      *zap.Logger
}

var (
	_ purchase.Verifier         = (*Provider)(nil)
	_ purchase.CatalogProvider  = (*Provider)(nil)
	_ purchase.PaymentSubmitter = (*Provider)(nil)
)

// VerifyAccount resolves a smartcard, meter or phone number to the customer
// name registered at the biller.
func (p *Provider) VerifyAccount(ctx context.Context, service purchase.ServiceSelector, accountID string) (string, error) {
	link := p.link("get_customer_info.php", url.Values{
		"service_code": {string(service)},
		"customer_id":  {accountID},
	}, string(service), accountID)

	var vr verifyResponse
	if err := p.client.GETAndUnmarshalJson(ctx, link, &vr); err != nil {
		p.l.Warn(
			"verify: get url",
			zap.String("service", string(service)),
			zap.Error(err),
		)
		return "", errors.WithMessage(purchase.ErrProviderUnavailable, err.Error())
	}
	switch vr.Status {
	case STATUS_OK:
		if vr.CustomerName == "" {
			return "", purchase.ErrAccountNotFound
		}
		return vr.CustomerName, nil
	case STATUS_NOT_FOUND:
		return "", errors.WithMessage(purchase.ErrAccountNotFound, vr.Message)
	}
	return "", errors.WithMessage(purchase.ErrProviderUnavailable, vr.Message)
}

// ListVariations fetches the priced product options for a service.
func (p *Provider) ListVariations(ctx context.Context, service purchase.ServiceSelector) ([]purchase.ServiceVariation, error) {
	link := p.link("get_bundles.php", url.Values{
		"service_code": {string(service)},
	}, string(service))

	var br variationsResponse
	if err := p.client.GETAndUnmarshalJson(ctx, link, &br); err != nil {
		p.l.Warn(
			"bundles: get url",
			zap.String("service", string(service)),
			zap.Error(err),
		)
		return nil, errors.WithMessage(purchase.ErrProviderUnavailable, err.Error())
	}
	if br.Status != STATUS_OK {
		return nil, errors.WithMessage(purchase.ErrProviderUnavailable, br.Message)
	}
	list := make([]purchase.ServiceVariation, 0, len(br.Bundles))
	for _, b := range br.Bundles {
		amount, err := strconv.ParseInt(strings.TrimSpace(b.Price), 10, 64)
		if err != nil {
			return nil, errors.Wrap(err, "Failed parse bundle price")
		}
		list = append(list, purchase.ServiceVariation{
			Code:        b.Code,
			DisplayName: b.Title,
			AmountMinor: amount,
			Validity:    b.Validity,
		})
	}
	return list, nil
}

// Submit executes the vend. The order is persisted as submitted before the
// call goes out; a transport failure after that point leaves the funds status
// unknown and is surfaced as such, never as a plain failure.
func (p *Provider) Submit(ctx context.Context, req purchase.PurchaseRequest) (*purchase.RawSettlementResponse, error) {
	ordID := newVendOrderID()
	if err := p.s.NewOrder(ordID, provider.IRECHARGE, provider.OrderRequest{
		ServiceCode: string(req.Service),
		AccountID:   req.AccountIdentifier,
		AmountMinor: req.AmountMinor,
	}); err != nil {
		// The money-bearing operation is not recorded: do not vend.
		return nil, errors.Wrap(err, "Failed insert irecharge order")
	}

	link := p.link("vend.php", url.Values{
		"service_code": {string(req.Service)},
		"customer_id":  {req.AccountIdentifier},
		"bundle_code":  {req.VariationCode},
		"amount":       {strconv.FormatInt(req.AmountMinor, 10)},
		"phone":        {req.ContactPhone},
		"reference_id": {ordID},
	}, string(req.Service), req.AccountIdentifier, ordID)

	var vr vendResponse
	if err := p.client.GETAndUnmarshalJson(ctx, link, &vr); err != nil {
		if errors.Cause(err) == errBadRequest {
			// Refused before processing, no funds moved.
			return nil, errors.WithMessage(purchase.ErrProviderRejected, err.Error())
		}
		p.l.Warn(
			"vend: get url",
			zap.String("reference_id", ordID),
			zap.Error(err),
		)
		return nil, errors.WithMessage(purchase.ErrSettlementUnknown, err.Error())
	}
	if err := p.s.SetStatus(ordID, provider.IRECHARGE, vr.Status); err != nil {
		// The settlement answer is already known; losing the status update
		// must not hide it. The reconciliation worker re-queries later.
		p.l.Warn(
			"vend: save order status",
			zap.String("reference_id", ordID),
			zap.String("status", vr.Status),
			zap.Error(err),
		)
	}
	raw := &purchase.RawSettlementResponse{
		Code:              vr.Status,
		TransactionStatus: vr.Transaction.Status,
		Message:           vr.Message,
		Ref:               vr.OrderRef,
	}
	if raw.Ref == "" {
		raw.Ref = ordID
	}
	return raw, nil
}

// CheckOrderStatus re-queries the vend status at the biller and records a
// changed raw status. This is the reconciliation path for pending and
// ambiguous vends.
func (p *Provider) CheckOrderStatus(ctx context.Context, ordID string) (*purchase.RawSettlementResponse, error) {
	link := p.link("vend_status.php", url.Values{
		"reference_id": {ordID},
	}, ordID)

	var vr vendStatusResponse
	if err := p.client.GETAndUnmarshalJson(ctx, link, &vr); err != nil {
		p.l.Warn(
			"vendStatus: get url",
			zap.String("reference_id", ordID),
			zap.Error(err),
		)
		return nil, errors.WithMessage(purchase.ErrProviderUnavailable, err.Error())
	}
	so, err := p.s.GetByOrderID(ordID, provider.IRECHARGE)
	if err != nil {
		p.l.Warn(
			"vendStatus: reload extOrder status",
			zap.String("reference_id", ordID),
			zap.Error(err),
		)
		return nil, err
	}
	if so.RawStatus != vr.Status {
		if err := p.s.SetStatus(ordID, provider.IRECHARGE, vr.Status); err != nil {
			p.l.Warn(
				"vendStatus: save extOrder status",
				zap.String("reference_id", ordID),
				zap.String("status", vr.Status),
				zap.Error(err),
			)
			return nil, err
		}
	}
	raw := &purchase.RawSettlementResponse{
		Code:              vr.Status,
		TransactionStatus: vr.Transaction.Status,
		Message:           vr.Message,
		Ref:               vr.OrderRef,
	}
	if raw.Ref == "" {
		raw.Ref = ordID
	}
	return raw, nil
}

// link builds a signed request URL. The combined hash signs the vendor code
// and the listed parameters in order, per the biller's contract.
func (p *Provider) link(method string, q url.Values, hashParts ...string) string {
	_url, _ := url.Parse(p.cfg.EntrypointURL + "/api/v2/" + method)
	q.Set("vendor_code", p.cfg.VendorCode)
	q.Set("hash", p.combinedHash(hashParts...))
	q.Set("response_format", "json")
	_url.RawQuery = q.Encode()
	return _url.String()
}

func (p *Provider) combinedHash(parts ...string) string {
	mac := hmac.New(sha1.New, []byte(p.cfg.PrivateKey))
	mac.Write([]byte(p.cfg.VendorCode + "|" + strings.Join(parts, "|")))
	return hex.EncodeToString(mac.Sum(nil))
}

func newVendOrderID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
