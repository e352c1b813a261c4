/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
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

package model

import (
	"net/http"
	"time"

	"github.com/meridian-watches/storefront-tracking-service/internal/system/constants"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/utils"
)

// Event is a logical occurrence submitted for conversion tracking. EventID is
// the deduplication key shared between a browser-side pixel send and a
// server-side send of the same user action.
type Event struct {
	EventName string                 `json:"eventName"`
	EventData map[string]interface{} `json:"eventData"`
	EventID   string                 `json:"eventId"`
	// Timestamp is the producer-supplied occurrence time. It is accepted and
	// logged but the wire payload always carries send-time.
	Timestamp string `json:"timestamp,omitempty"`
}

// RequestContext is the snapshot of transport-level data taken at ingestion.
// Queued events keep the snapshot instead of the request, so replays enrich
// with the context of the original submission.
type RequestContext struct {
	UserAgent string `json:"user_agent,omitempty"`
	ClientIP  string `json:"client_ip,omitempty"`
	Referer   string `json:"referer,omitempty"`
	FBP       string `json:"fbp,omitempty"`
	FBCLID    string `json:"fbclid,omitempty"`
}

// RequestContextFrom captures the enrichment-relevant parts of a request.
func RequestContextFrom(r *http.Request) *RequestContext {
	if r == nil {
		return nil
	}

	rc := &RequestContext{
		UserAgent: r.Header.Get("User-Agent"),
		ClientIP:  utils.ClientIP(r),
		Referer:   r.Header.Get("Referer"),
		FBCLID:    r.URL.Query().Get("fbclid"),
	}
	if cookie, err := r.Cookie(constants.PixelCookie); err == nil {
		rc.FBP = cookie.Value
	}
	return rc
}

// QueuedEvent holds an event whose delivery failed after all retries.
type QueuedEvent struct {
	EventName string                 `json:"eventName"`
	EventData map[string]interface{} `json:"eventData"`
	EventID   string                 `json:"eventId"`
	Context   *RequestContext        `json:"requestContext,omitempty"`
}

// TrackResult is the structured outcome returned for every tracking attempt.
// Delivery problems surface here, never as transport errors to the caller.
type TrackResult struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// DuplicateEventError is the result message for an already-tracked event id.
const DuplicateEventError = "Duplicate event"

// WireEvent is the shape the Conversions API expects for a single event.
type WireEvent struct {
	EventName      string                 `json:"event_name"`
	EventID        string                 `json:"event_id"`
	EventTime      int64                  `json:"event_time"`
	EventSourceURL string                 `json:"event_source_url"`
	UserData       map[string]interface{} `json:"user_data"`
	CustomData     map[string]interface{} `json:"custom_data"`
	OptOut         bool                   `json:"opt_out"`
}

// WirePayload is the request body posted to the Conversions API.
type WirePayload struct {
	Data        []WireEvent `json:"data"`
	AccessToken string      `json:"access_token"`
}

// ConversionRecord is the reporting document written after a delivery
// attempt. The pipeline never reads it back; it exists for the back office.
type ConversionRecord struct {
	ID        string    `json:"id" bson:"_id"`
	EventID   string    `json:"event_id" bson:"event_id"`
	EventName string    `json:"event_name" bson:"event_name"`
	Status    string    `json:"status" bson:"status"`
	Error     string    `json:"error,omitempty" bson:"error,omitempty"`
	OrderID   string    `json:"order_id,omitempty" bson:"order_id,omitempty"`
	Value     string    `json:"value,omitempty" bson:"value,omitempty"`
	Currency  string    `json:"currency,omitempty" bson:"currency,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Conversion record statuses.
const (
	ConversionDelivered = "delivered"
	ConversionQueued    = "queued"
)
