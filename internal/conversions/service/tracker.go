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

// Package service implements the conversion event delivery engine together
// with the user data enrichment and custom data mapping rules it applies.
package service

import (
	"time"

	"github.com/meridian-watches/storefront-tracking-service/internal/conversions/client"
	"github.com/meridian-watches/storefront-tracking-service/internal/conversions/model"
	"github.com/meridian-watches/storefront-tracking-service/internal/conversions/store"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/constants"
	errors2 "github.com/meridian-watches/storefront-tracking-service/internal/system/errors"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/log"
)

// ConversionRecorder persists an audit record of a delivery outcome. It is
// invoked outside the request path and must not block the tracker.
type ConversionRecorder func(record model.ConversionRecord)

// Tracker delivers conversion events to the Graph API with deduplication
// and bounded retries. Events that exhaust their retries are parked in the
// retry queue for a later drain.
type Tracker struct {
	client     *client.MetaClient
	dedup      store.DedupStore
	queue      *store.RetryQueue
	recorder   ConversionRecorder
	maxRetries int
	baseDelay  time.Duration
}

// TrackerOptions carries the delivery tuning knobs.
type TrackerOptions struct {
	MaxRetries int
	BaseDelay  time.Duration
	Recorder   ConversionRecorder
}

// NewTracker wires the delivery engine. A nil recorder disables audit
// persistence.
func NewTracker(metaClient *client.MetaClient, dedup store.DedupStore,
	queue *store.RetryQueue, opts TrackerOptions) *Tracker {

	maxRetries := opts.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	baseDelay := opts.BaseDelay
	if baseDelay <= 0 {
		baseDelay = time.Second
	}

	return &Tracker{
		client:     metaClient,
		dedup:      dedup,
		queue:      queue,
		recorder:   opts.Recorder,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
	}
}

// Configured reports whether the tracker holds delivery credentials.
func (t *Tracker) Configured() bool {
	return t.client.Configured()
}

// QueueDepth returns the number of events parked for retry.
func (t *Tracker) QueueDepth() int {
	return t.queue.Len()
}

// Track delivers one event. A duplicate event ID is rejected without any
// network traffic. On delivery failure the event is parked in the retry
// queue and its dedup reservation is released so a later attempt with the
// same ID is admitted.
func (t *Tracker) Track(eventName string, eventData map[string]interface{},
	eventID string, reqCtx *model.RequestContext) model.TrackResult {

	logger := log.GetLogger()

	if eventName == "" || eventID == "" {
		return model.TrackResult{Success: false, Error: "Event name and event ID are required"}
	}

	if !t.dedup.Reserve(eventID) {
		logger.Debug("Skipping duplicate event", log.String("eventId", eventID))
		return model.TrackResult{Success: false, Error: model.DuplicateEventError}
	}

	payload := t.buildPayload(eventName, eventData, eventID, reqCtx)

	response, err := t.sendWithRetry(payload, eventID)
	if err != nil {
		logger.Warn("Event delivery failed, queued for retry",
			log.String("eventId", eventID), log.String("eventName", eventName),
			log.Error(errors2.NewServerError(errors2.TRACK_EVENT, err)))
		t.dedup.Release(eventID)
		t.queue.Enqueue(model.QueuedEvent{
			EventName: eventName,
			EventData: eventData,
			EventID:   eventID,
			Context:   reqCtx,
		})
		t.record(eventName, eventData, eventID, model.ConversionQueued, err.Error())
		return model.TrackResult{Success: false, Error: err.Error()}
	}

	logger.Debug("Event delivered", log.String("eventId", eventID),
		log.String("eventName", eventName))
	t.record(eventName, eventData, eventID, model.ConversionDelivered, "")
	return model.TrackResult{Success: true, Data: response}
}

// Drain re-attempts every queued event once. Events that fail again re-park
// themselves. It returns how many were delivered and how many remain.
func (t *Tracker) Drain() (processed int, remaining int) {

	events := t.queue.TakeAll()
	if len(events) == 0 {
		return 0, 0
	}

	logger := log.GetLogger()
	logger.Info("Draining retry queue", log.Int("queued", len(events)))

	for _, event := range events {
		t.Track(event.EventName, event.EventData, event.EventID, event.Context)
	}

	remaining = t.queue.Len()
	processed = len(events) - remaining
	logger.Info("Retry queue drained", log.Int("processed", processed),
		log.Int("remaining", remaining))
	return processed, remaining
}

func (t *Tracker) buildPayload(eventName string, eventData map[string]interface{},
	eventID string, reqCtx *model.RequestContext) model.WirePayload {

	sourceURL := constants.BackendSourceURL
	if reqCtx != nil && reqCtx.Referer != "" {
		sourceURL = reqCtx.Referer
	}

	event := model.WireEvent{
		EventName:      eventName,
		EventID:        eventID,
		EventTime:      time.Now().Unix(),
		EventSourceURL: sourceURL,
		UserData:       BuildUserData(eventData, reqCtx),
		CustomData:     BuildCustomData(eventData),
		OptOut:         false,
	}

	return model.WirePayload{
		Data:        []model.WireEvent{event},
		AccessToken: t.client.AccessToken(),
	}
}

func (t *Tracker) sendWithRetry(payload model.WirePayload, eventID string) (map[string]interface{}, error) {

	logger := log.GetLogger()

	var lastErr error
	for attempt := 1; attempt <= t.maxRetries; attempt++ {
		response, err := t.client.Send(payload)
		if err == nil {
			return response, nil
		}
		lastErr = err
		if attempt < t.maxRetries {
			delay := t.baseDelay << (attempt - 1)
			logger.Debug("Delivery attempt failed, backing off",
				log.String("eventId", eventID), log.Int("attempt", attempt),
				log.String("delay", delay.String()), log.Error(err))
			time.Sleep(delay)
		}
	}
	return nil, lastErr
}

func (t *Tracker) record(eventName string, eventData map[string]interface{},
	eventID, status, errMsg string) {

	if t.recorder == nil {
		return
	}

	record := model.ConversionRecord{
		EventID:   eventID,
		EventName: eventName,
		Status:    status,
		Error:     errMsg,
		OrderID:   stringField(eventData, "order_id"),
		Currency:  stringField(eventData, "currency"),
		CreatedAt: time.Now(),
	}
	if value, ok := numberField(eventData, "total_value"); ok {
		record.Value = formatValue(value)
	} else if value, ok := numberField(eventData, "value"); ok {
		record.Value = formatValue(value)
	}

	t.recorder(record)
}
