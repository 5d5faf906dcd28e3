package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/zonafranca/invoicehub.go/db/models"
	apperrors "github.com/zonafranca/invoicehub.go/lib/errors"
	"github.com/zonafranca/invoicehub.go/lib/responses"
	"github.com/zonafranca/invoicehub.go/lib/service"
)

// RefundController drives the operator refund wizard over HTTP.
type RefundController struct {
	svc       *service.InvoiceService
	serialize responses.Serializer
}

func NewRefundController(svc *service.InvoiceService, serialize responses.Serializer) *RefundController {
	return &RefundController{svc: svc, serialize: serialize}
}

// OpenWizard godoc
// @Summary      Open a refund wizard
// @Description  Starts a drafting refund wizard for an invoice with a pre-filled amount
// @Produce      json
// @Tags         Refund
// @Param        id  path  int  true  "Invoice ID"
// @Success      200  {object}  service.RefundWizard
// @Failure      404  {object}  responses.Envelope
// @Router       /v2/invoices/{id}/refund_wizard [post]
// @Security     OAuth2Password
func (controller *RefundController) OpenWizard(c echo.Context) error {
	invoiceID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, controller.serialize, apperrors.New(apperrors.KindValue, "invalid invoice id"))
	}

	wizard, err := controller.svc.OpenRefundWizard(c.Request().Context(), invoiceID)
	if err != nil {
		return respondError(c, controller.serialize, err)
	}
	return c.JSON(http.StatusOK, wizard)
}

// GetWizard godoc
// @Summary      Retrieve a refund wizard
// @Produce      json
// @Tags         Refund
// @Param        id  path  string  true  "Wizard ID"
// @Success      200  {object}  service.RefundWizard
// @Failure      404  {object}  responses.Envelope
// @Router       /v2/refund_wizard/{id} [get]
// @Security     OAuth2Password
func (controller *RefundController) GetWizard(c echo.Context) error {
	wizard, err := controller.svc.GetRefundWizard(c.Param("id"))
	if err != nil {
		return respondError(c, controller.serialize, err)
	}
	return c.JSON(http.StatusOK, wizard)
}

type UpdateWizardRequestBody struct {
	Reason      *string          `json:"refund_reason" validate:"omitempty,oneof=absence duplicate fraudulent requested_by_customer other"`
	Description *string          `json:"refund_description"`
	Amount      *decimal.Decimal `json:"amount"`
}

// UpdateWizard godoc
// @Summary      Change a drafting refund wizard
// @Description  Adjusts reason, description or amount. A reason change recomputes the default amount; an invalid amount keeps the draft unchanged.
// @Accept       json
// @Produce      json
// @Tags         Refund
// @Param        id  path  string  true  "Wizard ID"
// @Success      200  {object}  service.RefundWizard
// @Failure      422  {object}  responses.Envelope
// @Router       /v2/refund_wizard/{id} [patch]
// @Security     OAuth2Password
func (controller *RefundController) UpdateWizard(c echo.Context) error {
	var body UpdateWizardRequestBody
	if err := c.Bind(&body); err != nil {
		return respondError(c, controller.serialize, apperrors.New(apperrors.KindValue, "failed to bind json"))
	}
	if err := c.Validate(&body); err != nil {
		return respondError(c, controller.serialize, apperrors.Validation("%v", err))
	}

	wizard, err := controller.svc.UpdateRefundDraft(c.Request().Context(), c.Param("id"), service.DraftPatch{
		Reason:      body.Reason,
		Description: body.Description,
		Amount:      body.Amount,
	})
	if err != nil {
		return respondError(c, controller.serialize, err)
	}
	return c.JSON(http.StatusOK, wizard)
}

type SubmitWizardResponseBody struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Refund  *models.Refund `json:"refund"`
}

// SubmitWizard godoc
// @Summary      Submit a refund wizard
// @Description  Sends the refund to the payment processor and records it on success
// @Produce      json
// @Tags         Refund
// @Param        id  path  string  true  "Wizard ID"
// @Success      200  {object}  SubmitWizardResponseBody
// @Failure      422  {object}  responses.Envelope
// @Failure      502  {object}  responses.Envelope
// @Router       /v2/refund_wizard/{id}/submit [post]
// @Security     OAuth2Password
func (controller *RefundController) SubmitWizard(c echo.Context) error {
	refund, err := controller.svc.SubmitRefund(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, controller.serialize, err)
	}
	return c.JSON(http.StatusOK, &SubmitWizardResponseBody{
		Success: true,
		Message: "refund processed successfully",
		Refund:  refund,
	})
}
