package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/zonafranca/invoicehub.go/db/models"
	apperrors "github.com/zonafranca/invoicehub.go/lib/errors"
	"github.com/zonafranca/invoicehub.go/lib/ledger"
	"github.com/zonafranca/invoicehub.go/lib/responses"
	"github.com/zonafranca/invoicehub.go/lib/service"
)

// InvoiceController : invoice creation and inspection
type InvoiceController struct {
	svc       *service.InvoiceService
	serialize responses.Serializer
}

func NewInvoiceController(svc *service.InvoiceService, serialize responses.Serializer) *InvoiceController {
	return &InvoiceController{svc: svc, serialize: serialize}
}

// respondError converts an orchestrator error into the envelope. Nothing
// propagates to the transport layer uncaught.
func respondError(c echo.Context, serialize responses.Serializer, err error) error {
	c.Logger().Errorf("request failed: %v", err)
	if apperrors.KindOf(err) == apperrors.KindInternal {
		sentry.CaptureException(err)
	}
	code, body := serialize(err)
	return c.JSON(code, body)
}

// CreateInvoice godoc
// @Summary      Create an invoice from reservation data
// @Description  Validates the reservation payload, creates and posts the invoice and returns a payment link
// @Accept       json
// @Produce      json
// @Tags         Invoice
// @Success      200  {object}  responses.Envelope
// @Failure      422  {object}  responses.Envelope
// @Router       /zona_franca/api/v1/create_invoice [post]
func (controller *InvoiceController) CreateInvoice(c echo.Context) error {
	payload := map[string]interface{}{}
	if err := json.NewDecoder(c.Request().Body).Decode(&payload); err != nil || len(payload) == 0 {
		return respondError(c, controller.serialize, apperrors.Validation("the data required to create the invoice was not sent"))
	}

	result, err := controller.svc.CreateInvoice(c.Request().Context(), payload)
	if err != nil {
		return respondError(c, controller.serialize, err)
	}

	return c.JSON(http.StatusOK, responses.OkWithPaymentLink("invoice created successfully", result.PaymentLink))
}

type InvoiceResponseBody struct {
	Invoice             *models.Invoice `json:"invoice"`
	RefundedAmount      string          `json:"refunded_amount"`
	RemainingRefundable string          `json:"remaining_refundable"`
	FullyRefunded       bool            `json:"fully_refunded"`
}

// GetInvoice godoc
// @Summary      Retrieve an invoice
// @Description  Returns the invoice with its lines, refunds and derived refund ledger state
// @Produce      json
// @Tags         Invoice
// @Param        id  path  int  true  "Invoice ID"
// @Success      200  {object}  InvoiceResponseBody
// @Failure      404  {object}  responses.Envelope
// @Router       /v2/invoices/{id} [get]
// @Security     OAuth2Password
func (controller *InvoiceController) GetInvoice(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, controller.serialize, apperrors.New(apperrors.KindValue, "invalid invoice id"))
	}

	invoice, err := controller.svc.GetInvoice(c.Request().Context(), id)
	if err != nil {
		return respondError(c, controller.serialize, err)
	}

	refunded := ledger.RefundedAmount(invoice.Refunds)
	remaining := ledger.RemainingRefundable(invoice.AmountTotal, refunded, len(invoice.Refunds))

	return c.JSON(http.StatusOK, &InvoiceResponseBody{
		Invoice:             invoice,
		RefundedAmount:      refunded.StringFixed(2),
		RemainingRefundable: remaining.StringFixed(2),
		FullyRefunded:       ledger.FullyRefunded(invoice.AmountTotal, refunded),
	})
}

// PaymentLinkQR godoc
// @Summary      Payment link QR code
// @Description  Returns the invoice's payment link as a QR code
// @Produce      png
// @Tags         Invoice
// @Param        id  path  int  true  "Invoice ID"
// @Success      200
// @Failure      404  {object}  responses.Envelope
// @Router       /v2/invoices/{id}/paymentlink/qr [get]
// @Security     OAuth2Password
func (controller *InvoiceController) PaymentLinkQR(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, controller.serialize, apperrors.New(apperrors.KindValue, "invalid invoice id"))
	}

	invoice, err := controller.svc.GetInvoice(c.Request().Context(), id)
	if err != nil {
		return respondError(c, controller.serialize, err)
	}
	if invoice.PaymentLink == "" {
		return respondError(c, controller.serialize, apperrors.NotFound("invoice %d has no payment link", id))
	}

	png, err := qrcode.Encode(invoice.PaymentLink, qrcode.Medium, 256)
	if err != nil {
		return respondError(c, controller.serialize, err)
	}
	return c.Blob(http.StatusOK, "image/png", png)
}
