package transport

import (
	"github.com/labstack/echo/v4"
	"github.com/zonafranca/invoicehub.go/controllers"
	"github.com/zonafranca/invoicehub.go/lib/responses"
	"github.com/zonafranca/invoicehub.go/lib/service"
)

func RegisterEndpoints(svc *service.InvoiceService, e *echo.Echo, operator *echo.Group, strictRateLimitMiddleware echo.MiddlewareFunc, logMw echo.MiddlewareFunc) {
	invoiceCtrl := controllers.NewInvoiceController(svc, responses.Serialize)
	refundCtrl := controllers.NewRefundController(svc, responses.Serialize)
	settingsCtrl := controllers.NewSettingsController(svc)

	// public creation endpoint, the path predates this service
	e.POST("/zona_franca/api/v1/create_invoice", invoiceCtrl.CreateInvoice, logMw)

	operator.GET("/v2/invoices/:id", invoiceCtrl.GetInvoice)
	operator.GET("/v2/invoices/:id/paymentlink/qr", invoiceCtrl.PaymentLinkQR)
	operator.POST("/v2/invoices/:id/refund_wizard", refundCtrl.OpenWizard)
	operator.GET("/v2/refund_wizard/:id", refundCtrl.GetWizard)
	operator.PATCH("/v2/refund_wizard/:id", refundCtrl.UpdateWizard)
	operator.POST("/v2/refund_wizard/:id/submit", refundCtrl.SubmitWizard, strictRateLimitMiddleware)

	operator.GET("/v2/settings", settingsCtrl.GetSettings, CreateCacheClient().Middleware())

	e.GET("/health", controllers.NewHealthController(svc).Health)
}
