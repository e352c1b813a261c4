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

package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-watches/storefront-tracking-service/internal/conversions/client"
	"github.com/meridian-watches/storefront-tracking-service/internal/conversions/model"
	"github.com/meridian-watches/storefront-tracking-service/internal/conversions/store"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/config"
)

// deliverySpy is a fake Conversions API endpoint. It records every received
// event id and fails delivery for ids in the fail set.
type deliverySpy struct {
	mu       sync.Mutex
	received []string
	times    []time.Time
	failIDs  map[string]bool
}

func (d *deliverySpy) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload model.WirePayload
		_ = json.NewDecoder(r.Body).Decode(&payload)

		eventID := ""
		if len(payload.Data) > 0 {
			eventID = payload.Data[0].EventID
		}

		d.mu.Lock()
		d.received = append(d.received, eventID)
		d.times = append(d.times, time.Now())
		fail := d.failIDs[eventID]
		d.mu.Unlock()

		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"error": map[string]interface{}{"message": "delivery refused"},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"events_received": 1})
	}
}

func (d *deliverySpy) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.received)
}

func (d *deliverySpy) timestamps() []time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]time.Time(nil), d.times...)
}

func (d *deliverySpy) setFail(eventID string, fail bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failIDs == nil {
		d.failIDs = map[string]bool{}
	}
	d.failIDs[eventID] = fail
}

func newTestTracker(t *testing.T, spy *deliverySpy, recorder ConversionRecorder) (*Tracker, store.DedupStore, *store.RetryQueue) {
	t.Helper()

	srv := httptest.NewServer(spy.handler())
	t.Cleanup(srv.Close)

	metaClient := client.NewMetaClient(config.MetaConfig{
		PixelID:     "test-pixel",
		AccessToken: "test-token",
		APIVersion:  "v18.0",
		BaseURL:     srv.URL,
	}, 2*time.Second)

	dedup := store.NewInMemoryDedupStore(time.Minute)
	queue := store.NewRetryQueue()

	tracker := NewTracker(metaClient, dedup, queue, TrackerOptions{
		MaxRetries: 3,
		BaseDelay:  2 * time.Millisecond,
		Recorder:   recorder,
	})
	return tracker, dedup, queue
}

func Test_Track_DeliversEvent(t *testing.T) {

	spy := &deliverySpy{}

	var recordedMu sync.Mutex
	var recorded []model.ConversionRecord
	tracker, _, queue := newTestTracker(t, spy, func(record model.ConversionRecord) {
		recordedMu.Lock()
		recorded = append(recorded, record)
		recordedMu.Unlock()
	})

	result := tracker.Track("Purchase", map[string]interface{}{
		"order_id":    "ORD-1",
		"total_value": 100.0,
	}, "evt-1", nil)

	require.True(t, result.Success)
	data, ok := result.Data.(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 1, data["events_received"])
	assert.Equal(t, 1, spy.count())
	assert.Equal(t, 0, queue.Len())

	recordedMu.Lock()
	defer recordedMu.Unlock()
	require.Len(t, recorded, 1)
	assert.Equal(t, model.ConversionDelivered, recorded[0].Status)
	assert.Equal(t, "ORD-1", recorded[0].OrderID)
	assert.Equal(t, "100.00", recorded[0].Value)
}

func Test_Track_RejectsDuplicateWithoutSending(t *testing.T) {

	spy := &deliverySpy{}
	tracker, _, _ := newTestTracker(t, spy, nil)

	first := tracker.Track("ViewContent", nil, "evt-dup", nil)
	second := tracker.Track("ViewContent", nil, "evt-dup", nil)

	assert.True(t, first.Success)
	assert.False(t, second.Success)
	assert.Equal(t, model.DuplicateEventError, second.Error)
	assert.Equal(t, 1, spy.count())
}

func Test_Track_MissingFieldsNeverQueue(t *testing.T) {

	spy := &deliverySpy{}
	tracker, _, queue := newTestTracker(t, spy, nil)

	result := tracker.Track("", nil, "", nil)

	assert.False(t, result.Success)
	assert.Equal(t, 0, spy.count())
	assert.Equal(t, 0, queue.Len())
}

func Test_Track_ExhaustedRetriesQueueAndRelease(t *testing.T) {

	spy := &deliverySpy{}
	spy.setFail("evt-bad", true)
	tracker, dedup, queue := newTestTracker(t, spy, nil)

	result := tracker.Track("AddToCart", nil, "evt-bad", nil)

	assert.False(t, result.Success)
	assert.Equal(t, "delivery refused", result.Error)
	// Exactly maxRetries attempts, no more.
	assert.Equal(t, 3, spy.count())
	assert.Equal(t, 1, queue.Len())
	// The reservation is returned so a caller retry is admitted again.
	assert.False(t, dedup.IsDuplicate("evt-bad"))
}

func Test_Track_RetryDelaysGrow(t *testing.T) {

	spy := &deliverySpy{}
	spy.setFail("evt-slow", true)

	srv := httptest.NewServer(spy.handler())
	t.Cleanup(srv.Close)

	metaClient := client.NewMetaClient(config.MetaConfig{
		PixelID:     "test-pixel",
		AccessToken: "test-token",
		APIVersion:  "v18.0",
		BaseURL:     srv.URL,
	}, 2*time.Second)

	baseDelay := 20 * time.Millisecond
	tracker := NewTracker(metaClient, store.NewInMemoryDedupStore(time.Minute),
		store.NewRetryQueue(), TrackerOptions{MaxRetries: 3, BaseDelay: baseDelay})

	tracker.Track("AddToCart", nil, "evt-slow", nil)

	attemptTimes := spy.timestamps()
	require.Len(t, attemptTimes, 3)

	firstGap := attemptTimes[1].Sub(attemptTimes[0])
	secondGap := attemptTimes[2].Sub(attemptTimes[1])

	// The delay doubles per attempt: base, then 2x base.
	assert.GreaterOrEqual(t, firstGap, baseDelay)
	assert.GreaterOrEqual(t, secondGap, 2*baseDelay)
	assert.Greater(t, secondGap, firstGap)
}

func Test_Drain_RedeliversQueuedEvents(t *testing.T) {

	spy := &deliverySpy{}
	spy.setFail("evt-a", true)
	spy.setFail("evt-b", true)
	tracker, _, queue := newTestTracker(t, spy, nil)

	tracker.Track("Lead", nil, "evt-a", nil)
	tracker.Track("Lead", nil, "evt-b", nil)
	require.Equal(t, 2, queue.Len())

	// One endpoint recovers, one keeps failing.
	spy.setFail("evt-a", false)

	processed, remaining := tracker.Drain()

	assert.Equal(t, 1, processed)
	assert.Equal(t, 1, remaining)
	assert.Equal(t, 1, queue.Len())
}

func Test_Drain_EmptyQueueIsNoop(t *testing.T) {

	spy := &deliverySpy{}
	tracker, _, _ := newTestTracker(t, spy, nil)

	processed, remaining := tracker.Drain()

	assert.Equal(t, 0, processed)
	assert.Equal(t, 0, remaining)
	assert.Equal(t, 0, spy.count())
}

func Test_Tracker_Configured(t *testing.T) {

	metaClient := client.NewMetaClient(config.MetaConfig{
		BaseURL:    "https://graph.facebook.com",
		APIVersion: "v18.0",
	}, time.Second)
	tracker := NewTracker(metaClient, store.NewInMemoryDedupStore(time.Minute),
		store.NewRetryQueue(), TrackerOptions{})

	assert.False(t, tracker.Configured())
}
