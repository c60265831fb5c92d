package irecharge

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/gebv/billup/provider"
)

type Command string

const (
	SUBJECT             = "provider_irecharge_subject"
	CheckStatus Command = "check_status"
)

type MessageToIrecharge struct {
	Command   Command
	Reference string
}

// Reconcile re-queries every vend whose settlement is still unconfirmed:
// submitted orders with no recorded answer and orders the biller reported as
// still processing.
func (p *Provider) Reconcile(ctx context.Context) {
	for _, status := range []string{provider.RawSubmitted, STATUS_PENDING} {
		orders, err := p.s.ListByStatus(provider.IRECHARGE, status)
		if err != nil {
			p.l.Error("Failed list unconfirmed vend orders.",
				zap.String("raw_status", status),
				zap.Error(err),
			)
			continue
		}
		for _, o := range orders {
			if _, err := p.CheckOrderStatus(ctx, o.ExtOrderID()); err != nil {
				p.l.Warn("Failed reconcile vend order.",
					zap.String("order_number", o.OrderNumber),
					zap.Error(err),
				)
			}
		}
	}
}

// RunReconciler runs Reconcile on a fixed period until ctx is done.
func (p *Provider) RunReconciler(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Reconcile(ctx)
		}
	}
}

// NatsHandler consumes check-status commands and reconciles the stored raw
// status against the biller. Subscribed on SUBJECT via an encoded connection.
func (p *Provider) NatsHandler() func(m *MessageToIrecharge) {
	return func(m *MessageToIrecharge) {
		switch m.Command {
		case CheckStatus:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			raw, err := p.CheckOrderStatus(ctx, m.Reference)
			if err != nil {
				p.l.Error("Failed check vend order status.",
					zap.String("reference_id", m.Reference),
					zap.Error(err),
				)
				return
			}
			p.l.Info("Vend order status checked.",
				zap.String("reference_id", m.Reference),
				zap.String("status", raw.Code),
				zap.String("transaction_status", raw.TransactionStatus),
			)
		default:
			p.l.Warn("Unknown command.", zap.String("command", string(m.Command)))
		}
	}
}
