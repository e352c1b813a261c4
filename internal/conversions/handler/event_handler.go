/*
 * Copyright (c) 2025-2026, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/meridian-watches/storefront-tracking-service/internal/conversions/model"
	"github.com/meridian-watches/storefront-tracking-service/internal/conversions/service"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/authz"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/config"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/constants"
	systemcontext "github.com/meridian-watches/storefront-tracking-service/internal/system/context"
	errors2 "github.com/meridian-watches/storefront-tracking-service/internal/system/errors"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/log"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/security"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/utils"
)

// EventHandler exposes the conversion tracking endpoints. Delivery outcomes
// are reported in the response body; a failed delivery is still a 200.
type EventHandler struct {
	tracker *service.Tracker
}

func NewEventHandler(tracker *service.Tracker) *EventHandler {

	return &EventHandler{tracker: tracker}
}

// TrackEvent handles submission of a single conversion event.
func (eh *EventHandler) TrackEvent(w http.ResponseWriter, r *http.Request) {

	logger := log.GetLogger()

	var event model.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		clientError := errors2.NewClientError(errors2.INVALID_REQUEST_FORMAT, http.StatusBadRequest)
		clientError.Description = utils.HandleDecodeError(err, "event")
		utils.WriteErrorResponse(w, clientError)
		return
	}

	if event.EventName == "" || event.EventID == "" {
		clientError := errors2.NewClientError(errors2.MISSING_REQUIRED_FIELDS, http.StatusBadRequest)
		clientError.Description = "eventName and eventId are required"
		utils.WriteErrorResponse(w, clientError)
		return
	}

	if !constants.AllowedEventNames[event.EventName] {
		clientError := errors2.NewClientError(errors2.INVALID_EVENT_NAME, http.StatusBadRequest)
		clientError.Description = "Unsupported event name: " + event.EventName
		utils.WriteErrorResponse(w, clientError)
		return
	}

	if !eh.tracker.Configured() {
		logger.Warn("Conversion credentials not configured")
		clientError := errors2.NewClientError(errors2.TRACKING_NOT_CONFIGURED, http.StatusServiceUnavailable)
		utils.WriteErrorResponse(w, clientError)
		return
	}

	reqCtx := model.RequestContextFrom(r)
	result := eh.tracker.Track(event.EventName, event.EventData, event.EventID, reqCtx)

	userID := "anonymous"
	if claims := security.AuthenticatedClaims(r); claims != nil {
		if id := authz.UserID(claims); id != "" {
			userID = id
		}
	}
	logger.Info("Event tracked", log.String("eventName", event.EventName),
		log.String("eventId", event.EventID), log.String("userId", userID),
		log.Bool("success", result.Success))

	utils.WriteJSONResponse(w, http.StatusOK, result)
}

type purchaseItem struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Price    interface{} `json:"price"`
	Quantity int         `json:"quantity"`
}

type purchaseRequest struct {
	OrderID  string         `json:"orderId"`
	Items    []purchaseItem `json:"items"`
	Value    *float64       `json:"value"`
	Currency string         `json:"currency"`
	EventID  string         `json:"eventId"`
}

// TrackPurchase handles the dedicated purchase conversion endpoint. The cart
// line items are reshaped into the payload convention the mapper understands,
// and the buyer identity is taken from the session token when present.
func (eh *EventHandler) TrackPurchase(w http.ResponseWriter, r *http.Request) {

	logger := log.GetLogger()

	var purchase purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&purchase); err != nil {
		clientError := errors2.NewClientError(errors2.INVALID_REQUEST_FORMAT, http.StatusBadRequest)
		clientError.Description = utils.HandleDecodeError(err, "purchase")
		utils.WriteErrorResponse(w, clientError)
		return
	}

	if purchase.OrderID == "" || len(purchase.Items) == 0 || purchase.Value == nil || purchase.EventID == "" {
		clientError := errors2.NewClientError(errors2.MISSING_REQUIRED_FIELDS, http.StatusBadRequest)
		clientError.Description = "orderId, items, value, and eventId are required"
		utils.WriteErrorResponse(w, clientError)
		return
	}

	if !eh.tracker.Configured() {
		logger.Warn("Conversion credentials not configured")
		clientError := errors2.NewClientError(errors2.TRACKING_NOT_CONFIGURED, http.StatusServiceUnavailable)
		utils.WriteErrorResponse(w, clientError)
		return
	}

	items := make([]interface{}, 0, len(purchase.Items))
	for _, item := range purchase.Items {
		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}
		items = append(items, map[string]interface{}{
			"product_id":   item.ID,
			"product_name": item.Title,
			"price":        item.Price,
			"quantity":     quantity,
		})
	}

	purchaseData := map[string]interface{}{
		"order_id":    purchase.OrderID,
		"items":       items,
		"total_value": *purchase.Value,
		"currency":    purchase.Currency,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	}
	if claims := security.AuthenticatedClaims(r); claims != nil {
		if userID := authz.UserID(claims); userID != "" {
			purchaseData["userId"] = userID
		}
		if email := authz.Email(claims); email != "" {
			purchaseData["email"] = email
		}
	}

	reqCtx := model.RequestContextFrom(r)
	result := eh.tracker.Track(constants.EventPurchase, purchaseData, purchase.EventID, reqCtx)

	logger.Info("Purchase event tracked", log.String("orderId", purchase.OrderID),
		log.String("eventId", purchase.EventID), log.String("currency", purchase.Currency),
		log.Bool("success", result.Success))

	utils.WriteJSONResponse(w, http.StatusOK, result)
}

type batchRequest struct {
	Events []model.Event `json:"events"`
}

type batchResponse struct {
	Success    bool                `json:"success"`
	Total      int                 `json:"total"`
	Successful int                 `json:"successful"`
	Failed     int                 `json:"failed"`
	Results    []model.TrackResult `json:"results"`
}

// TrackBatch handles bulk event submission. The batch is validated in full
// before any event is delivered, so a rejected batch has no side effects.
func (eh *EventHandler) TrackBatch(w http.ResponseWriter, r *http.Request) {

	logger := log.GetLogger()

	var batch batchRequest
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		clientError := errors2.NewClientError(errors2.INVALID_REQUEST_FORMAT, http.StatusBadRequest)
		clientError.Description = utils.HandleDecodeError(err, "batch")
		utils.WriteErrorResponse(w, clientError)
		return
	}

	if len(batch.Events) == 0 {
		clientError := errors2.NewClientError(errors2.INVALID_BATCH, http.StatusBadRequest)
		clientError.Description = "events array is required"
		utils.WriteErrorResponse(w, clientError)
		return
	}

	if len(batch.Events) > constants.MaxBatchEvents {
		clientError := errors2.NewClientError(errors2.INVALID_BATCH, http.StatusBadRequest)
		clientError.Description = "Maximum 100 events per batch"
		utils.WriteErrorResponse(w, clientError)
		return
	}

	if !eh.tracker.Configured() {
		logger.Warn("Conversion credentials not configured")
		clientError := errors2.NewClientError(errors2.TRACKING_NOT_CONFIGURED, http.StatusServiceUnavailable)
		utils.WriteErrorResponse(w, clientError)
		return
	}

	reqCtx := model.RequestContextFrom(r)

	results := make([]model.TrackResult, 0, len(batch.Events))
	successful := 0
	for _, event := range batch.Events {
		result := eh.tracker.Track(event.EventName, event.EventData, event.EventID, reqCtx)
		if result.Success {
			successful++
		}
		results = append(results, result)
	}

	logger.Info("Batch events tracked", log.Int("total", len(batch.Events)),
		log.Int("successful", successful), log.Int("failed", len(batch.Events)-successful))

	utils.WriteJSONResponse(w, http.StatusOK, batchResponse{
		Success:    true,
		Total:      len(batch.Events),
		Successful: successful,
		Failed:     len(batch.Events) - successful,
		Results:    results,
	})
}

// GetStatus reports whether delivery credentials are present and how many
// events are parked for retry.
func (eh *EventHandler) GetStatus(w http.ResponseWriter, r *http.Request) {

	meta := config.GetSTSRuntime().Config.Meta

	utils.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"tracking": map[string]interface{}{
			"pixelConfigured": meta.PixelID != "",
			"capiConfigured":  meta.AccessToken != "",
			"queuedEvents":    eh.tracker.QueueDepth(),
			"timestamp":       time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// RetryQueue drains the retry queue on demand. Operator only.
func (eh *EventHandler) RetryQueue(w http.ResponseWriter, r *http.Request) {

	if err := security.RequireAdmin(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	processed, remaining := eh.tracker.Drain()

	log.GetLogger().Info("Queue retry completed", log.Int("processed", processed),
		log.Int("remaining", remaining),
		log.String("traceId", systemcontext.GetOrGenerateTraceID(r.Context())))

	utils.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"processed": processed,
		"remaining": remaining,
	})
}
