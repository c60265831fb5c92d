package vending

import (
	"net/http"

	"github.com/labstack/echo"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/gebv/billup/purchase"
	"github.com/gebv/billup/refdata"
)

func NewServer(verifier purchase.Verifier, catalog purchase.CatalogProvider, submitter purchase.PaymentSubmitter, ref *refdata.Service) *Server {
	return &Server{
		verifier:  verifier,
		catalog:   catalog,
		submitter: submitter,
		ref:       ref,
		reg:       newRegistry(),
		l:         zap.L().Named("vending_server"),
	}
}

type Server struct {
	verifier  purchase.Verifier
	catalog   purchase.CatalogProvider
	submitter purchase.PaymentSubmitter
	ref       *refdata.Service
	reg       *registry
	l         *zap.Logger
}

func (s *Server) Register(e *echo.Echo) {
	e.POST("/v1/sessions", s.createSession)
	e.PUT("/v1/sessions/:id/service", s.selectService)
	e.POST("/v1/sessions/:id/verify", s.verify)
	e.GET("/v1/sessions/:id/variations", s.variations)
	e.PUT("/v1/sessions/:id/variation", s.selectVariation)
	e.POST("/v1/sessions/:id/purchase", s.submitPurchase)
	e.GET("/v1/billers", s.billers)
}

func (s *Server) createSession(c echo.Context) error {
	id := s.reg.create(purchase.NewSession(s.verifier, s.catalog, s.submitter))
	return c.JSON(http.StatusCreated, map[string]string{"session_id": id})
}

func (s *Server) selectService(c echo.Context) error {
	sess, err := s.reg.get(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, errBody(err))
	}
	var req struct {
		Service string `json:"service"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errBody(err))
	}
	sess.SelectService(purchase.ServiceSelector(req.Service))
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) verify(c echo.Context) error {
	sess, err := s.reg.get(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, errBody(err))
	}
	var req struct {
		AccountID string `json:"account_id"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errBody(err))
	}
	if err := sess.Verify(c.Request().Context(), req.AccountID); err != nil {
		verifyFailuresTotal.Inc()
		return c.JSON(statusOf(err), errBody(err))
	}
	return c.JSON(http.StatusOK, sess.Verification())
}

func (s *Server) variations(c echo.Context) error {
	sess, err := s.reg.get(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, errBody(err))
	}
	list, err := sess.LoadVariations(c.Request().Context())
	if err != nil {
		return c.JSON(statusOf(err), errBody(err))
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) selectVariation(c echo.Context) error {
	sess, err := s.reg.get(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, errBody(err))
	}
	var req struct {
		Code string `json:"code"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errBody(err))
	}
	if err := sess.SelectVariation(req.Code); err != nil {
		return c.JSON(statusOf(err), errBody(err))
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) submitPurchase(c echo.Context) error {
	sess, err := s.reg.get(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, errBody(err))
	}
	var req struct {
		ContactPhone string `json:"contact_phone"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errBody(err))
	}
	out, err := sess.SubmitPurchase(c.Request().Context(), req.ContactPhone)
	if err != nil {
		if purchase.IsSettlementUnknown(err) {
			// Not a failure: the client must go to a status check, not a
			// repeat purchase.
			purchaseAmbiguousTotal.Inc()
			return c.JSON(http.StatusConflict, errBody(err))
		}
		return c.JSON(statusOf(err), errBody(err))
	}
	purchasesTotal.WithLabelValues(string(out.Status)).Inc()
	return c.JSON(http.StatusOK, out)
}

func (s *Server) billers(c echo.Context) error {
	list, err := s.ref.Billers(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return c.JSON(http.StatusBadGateway, errBody(err))
	}
	return c.JSON(http.StatusOK, list)
}

// statusOf maps the purchase error taxonomy to HTTP statuses. Ambiguous
// settlements are handled before this is reached.
func statusOf(err error) int {
	if purchase.IsValidation(err) {
		return http.StatusUnprocessableEntity
	}
	switch errors.Cause(err) {
	case purchase.ErrAccountNotFound:
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

func errBody(err error) map[string]string {
	return map[string]string{"error": err.Error()}
}
