package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/zonafranca/invoicehub.go/lib/service"
)

// SettingsController exposes the refund-window setting to the external
// scheduling collaborator.
type SettingsController struct {
	svc *service.InvoiceService
}

func NewSettingsController(svc *service.InvoiceService) *SettingsController {
	return &SettingsController{svc: svc}
}

type SettingsResponseBody struct {
	InvoiceDaysToRefund int `json:"invoice_days_to_refund"`
}

// GetSettings godoc
// @Summary      Service settings
// @Description  Returns the number of days an invoice qualifies for refund
// @Produce      json
// @Tags         Settings
// @Success      200  {object}  SettingsResponseBody
// @Router       /v2/settings [get]
// @Security     OAuth2Password
func (controller *SettingsController) GetSettings(c echo.Context) error {
	return c.JSON(http.StatusOK, &SettingsResponseBody{
		InvoiceDaysToRefund: controller.svc.Config.InvoiceDaysToRefund,
	})
}
