package provider

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/reform.v1"
)

// Store persists every submitted vend with its raw biller status. The row is
// written before the money-moving call goes out, so an ambiguous settlement
// always has a record to reconcile against.
type Store struct {
	DB *reform.DB
}

const (
	prefixOrderId = "billup"

	// RawSubmitted is set before the vend call; it means the funds-movement
	// status is not confirmed yet.
	RawSubmitted = "submitted"
)

func (s *Store) NewOrder(ordID string, providerName Provider, req OrderRequest) error {
	return s.DB.Insert(&PurchaseExtOrders{
		OrderNumber:  formatOrderID(providerName, ordID),
		ProviderName: providerName,
		ServiceCode:  req.ServiceCode,
		AccountID:    req.AccountID,
		AmountMinor:  req.AmountMinor,
		RawStatus:    RawSubmitted,
	})
}

func (s *Store) GetByOrderID(ordID string, providerName Provider) (*PurchaseExtOrders, error) {
	so := &PurchaseExtOrders{OrderNumber: formatOrderID(providerName, ordID)}
	err := s.DB.Reload(so)
	if err != nil {
		if err == reform.ErrNoRows {
			return nil, err
		}
		return nil, errors.Wrap(err, "Failed get purchase ext orders")
	}
	return so, nil
}

func (s *Store) SetStatus(ordID string, providerName Provider, newStatus string) error {
	o := &PurchaseExtOrders{OrderNumber: formatOrderID(providerName, ordID)}
	err := s.DB.Reload(o)
	if err != nil {
		return err
	}
	o.RawStatus = newStatus
	return s.DB.Save(o)
}

// ListByStatus returns orders in the given raw status, oldest first. Used by
// the reconciliation worker to re-query submitted and processing vends.
func (s *Store) ListByStatus(providerName Provider, rawStatus string) ([]*PurchaseExtOrders, error) {
	structs, err := s.DB.SelectAllFrom(
		PurchaseExtOrdersTable,
		"WHERE provider_name = $1 AND raw_status = $2 ORDER BY created_at",
		providerName, rawStatus,
	)
	if err != nil {
		return nil, errors.Wrap(err, "Failed list purchase ext orders")
	}
	list := make([]*PurchaseExtOrders, 0, len(structs))
	for _, str := range structs {
		list = append(list, str.(*PurchaseExtOrders))
	}
	return list, nil
}

// OrderRequest is what gets persisted about a vend before submission.
type OrderRequest struct {
	ServiceCode string
	AccountID   string
	AmountMinor int64
}

//go:generate reform

//reform:billup.purchase_ext_orders
type PurchaseExtOrders struct {
	OrderNumber  string    `reform:"order_number,pk"`
	ProviderName Provider  `reform:"provider_name"`
	ServiceCode  string    `reform:"service_code"`
	AccountID    string    `reform:"account_id"`
	AmountMinor  int64     `reform:"amount_minor"`
	RawStatus    string    `reform:"raw_status"`
	CreatedAt    time.Time `reform:"created_at"`
	UpdatedAt    time.Time `reform:"updated_at"`
}

// ExtOrderID returns the provider-local reference without the storage prefix.
func (o *PurchaseExtOrders) ExtOrderID() string {
	return strings.TrimPrefix(o.OrderNumber, formatOrderID(o.ProviderName, ""))
}

func (o *PurchaseExtOrders) BeforeInsert() error {
	o.UpdatedAt = time.Now()
	o.CreatedAt = time.Now()
	return nil
}

func (o *PurchaseExtOrders) BeforeUpdate() error {
	o.UpdatedAt = time.Now()
	return nil
}

func formatOrderID(p Provider, extOrderID string) string {
	return prefixOrderId + fmt.Sprintf("-%s-%s", p, extOrderID)
}
