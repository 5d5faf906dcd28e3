package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/zonafranca/invoicehub.go/common"
	"github.com/zonafranca/invoicehub.go/db/models"
)

func (svc *InvoiceService) StartWebhookSubscription(ctx context.Context) {

	svc.Logger.Infof("Starting webhook subscription with webhook url %s", svc.Config.WebhookUrl)
	invoiceEvents := make(chan models.Event)
	refundEvents := make(chan models.Event)
	invoiceSubId := svc.EventPubSub.Subscribe(common.EventInvoiceCreated, invoiceEvents)
	refundSubId := svc.EventPubSub.Subscribe(common.EventRefundSucceeded, refundEvents)
	for {
		select {
		case <-ctx.Done():
			svc.EventPubSub.Unsubscribe(invoiceSubId, common.EventInvoiceCreated)
			svc.EventPubSub.Unsubscribe(refundSubId, common.EventRefundSucceeded)
			return
		case event := <-invoiceEvents:
			svc.postToWebhook(event)
		case event := <-refundEvents:
			svc.postToWebhook(event)
		}
	}
}

func (svc *InvoiceService) postToWebhook(event models.Event) {

	payload := new(bytes.Buffer)
	err := json.NewEncoder(payload).Encode(event)
	if err != nil {
		svc.Logger.Error(err)
		return
	}

	resp, err := http.Post(svc.Config.WebhookUrl, "application/json", payload)
	if err != nil {
		svc.Logger.Error(err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, err := io.ReadAll(resp.Body)
		if err != nil {
			svc.Logger.Error(err)
		}
		svc.Logger.Errorf("Webhook status code was %d, body: %s", resp.StatusCode, msg)
	}
}
