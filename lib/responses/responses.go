package responses

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	apperrors "github.com/zonafranca/invoicehub.go/lib/errors"
)

// Envelope is the uniform success/failure body returned by every
// endpoint. No error propagates to the transport layer uncaught.
type Envelope struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	PaymentLink string `json:"payment_link,omitempty"`
}

func Ok(message string) *Envelope {
	return &Envelope{Success: true, Message: message}
}

func OkWithPaymentLink(message, paymentLink string) *Envelope {
	return &Envelope{Success: true, Message: message, PaymentLink: paymentLink}
}

func Fail(message string) *Envelope {
	return &Envelope{Success: false, Message: message}
}

// statusByKind is the fixed error-kind to HTTP status table.
var statusByKind = map[apperrors.Kind]int{
	apperrors.KindValidation:       http.StatusUnprocessableEntity,
	apperrors.KindAccessDenied:     http.StatusForbidden,
	apperrors.KindNotFound:         http.StatusNotFound,
	apperrors.KindValue:            http.StatusBadRequest,
	apperrors.KindGateway:          http.StatusBadGateway,
	apperrors.KindAmbiguousOutcome: http.StatusBadGateway,
}

// Serializer turns an orchestrator error into an HTTP status code and a
// response body. It is injected into the transport layer at construction
// time so the envelope format stays in one place.
type Serializer func(err error) (int, *Envelope)

// Serialize is the default Serializer.
func Serialize(err error) (int, *Envelope) {
	code, ok := statusByKind[apperrors.KindOf(err)]
	if !ok {
		code = http.StatusInternalServerError
	}
	return code, Fail(err.Error())
}

func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	c.Logger().Error(err)
	if hub := sentryecho.GetHubFromContext(c); hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetExtra("RequestID", c.Response().Header().Get(echo.HeaderXRequestID))
			hub.CaptureException(err)
		})
	}
	if he, ok := err.(*echo.HTTPError); ok {
		if msg, ok := he.Message.(string); ok {
			c.JSON(he.Code, Fail(msg))
		} else {
			c.JSON(he.Code, he.Message)
		}
		return
	}
	code, body := Serialize(err)
	c.JSON(code, body)
}
