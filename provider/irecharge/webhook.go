package irecharge

import (
	"net/http"

	"github.com/labstack/echo"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/reform.v1"

	"github.com/gebv/billup/provider"
)

// WebhookHandler handles biller-initiated status callbacks. The callback is
// advisory: the stored raw status is updated and a check-status command is
// published so the worker re-queries the authoritative vend status.
func (p *Provider) WebhookHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		if p == nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		ordID := c.QueryParam("reference_id")
		status := c.QueryParam("status")
		if ordID == "" || status == "" {
			return c.NoContent(http.StatusBadRequest)
		}
		so, err := p.s.GetByOrderID(ordID, provider.IRECHARGE)
		if err != nil {
			if errors.Cause(err) == reform.ErrNoRows {
				p.l.Warn(
					"Webhook for unknown vend order.",
					zap.String("reference_id", ordID),
				)
				return c.NoContent(http.StatusNotFound)
			}
			p.l.Warn(
				"Failed get vend order by webhook reference.",
				zap.String("reference_id", ordID),
				zap.Error(err),
			)
			return c.NoContent(http.StatusInternalServerError)
		}
		if so.RawStatus != status {
			if err := p.s.SetStatus(ordID, provider.IRECHARGE, status); err != nil {
				p.l.Warn(
					"Failed save vend order status from webhook.",
					zap.String("reference_id", ordID),
					zap.String("status", status),
					zap.Error(err),
				)
				return c.NoContent(http.StatusInternalServerError)
			}
		}
		if p.nc != nil {
			if err := p.nc.Publish(SUBJECT, &MessageToIrecharge{
				Command:   CheckStatus,
				Reference: ordID,
			}); err != nil {
				p.l.Warn(
					"Failed publish check status command.",
					zap.String("reference_id", ordID),
					zap.Error(err),
				)
			}
		}
		return c.NoContent(http.StatusOK)
	}
}
