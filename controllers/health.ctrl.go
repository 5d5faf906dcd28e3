package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/zonafranca/invoicehub.go/lib/service"
)

type HealthController struct {
	svc *service.InvoiceService
}

func NewHealthController(svc *service.InvoiceService) *HealthController {
	return &HealthController{svc: svc}
}

type HealthResponseBody struct {
	Result string `json:"result"`
}

// Health godoc
// @Summary      Check system health
// @Description  Checks database connectivity
// @Produce      json
// @Tags         Health
// @Success      200  {object}  HealthResponseBody
// @Failure      500  {object}  responses.Envelope
// @Router       /health [get]
func (controller *HealthController) Health(c echo.Context) error {
	if err := controller.svc.DB.PingContext(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &HealthResponseBody{
		Result: "OK",
	})
}
