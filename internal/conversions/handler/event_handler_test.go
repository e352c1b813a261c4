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
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-watches/storefront-tracking-service/internal/conversions/client"
	"github.com/meridian-watches/storefront-tracking-service/internal/conversions/service"
	"github.com/meridian-watches/storefront-tracking-service/internal/conversions/store"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/config"
)

func overrideRuntime(t *testing.T) {
	t.Helper()

	conf := config.Config{}
	conf.Meta.PixelID = "test-pixel"
	conf.Meta.AccessToken = "test-token"
	conf.Auth.JWTSecret = "test-secret"
	conf.Auth.AdminUsername = "admin"
	conf.Auth.AdminPassword = "changeit"
	config.OverrideSTSRuntime(conf)
}

// newHandler builds an EventHandler whose tracker posts to a local fake
// endpoint. The returned counter reports how many deliveries were attempted.
func newHandler(t *testing.T, configured bool) (*EventHandler, *int64) {
	t.Helper()
	overrideRuntime(t)

	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"events_received": 1})
	}))
	t.Cleanup(srv.Close)

	metaCfg := config.MetaConfig{
		APIVersion: "v18.0",
		BaseURL:    srv.URL,
	}
	if configured {
		metaCfg.PixelID = "test-pixel"
		metaCfg.AccessToken = "test-token"
	}

	metaClient := client.NewMetaClient(metaCfg, 2*time.Second)
	tracker := service.NewTracker(metaClient, store.NewInMemoryDedupStore(time.Minute),
		store.NewRetryQueue(), service.TrackerOptions{MaxRetries: 2, BaseDelay: time.Millisecond})

	return NewEventHandler(tracker), &hits
}

func postJSON(handlerFunc http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handlerFunc(rec, req)
	return rec
}

func Test_TrackEvent_Success(t *testing.T) {

	handler, hits := newHandler(t, true)

	rec := postJSON(handler.TrackEvent, "/api/events/track",
		`{"eventName":"ViewContent","eventId":"evt-1","eventData":{"product_id":"p1"}}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, true, result["success"])
	assert.EqualValues(t, 1, atomic.LoadInt64(hits))
}

func Test_TrackEvent_MissingFields(t *testing.T) {

	handler, hits := newHandler(t, true)

	rec := postJSON(handler.TrackEvent, "/api/events/track", `{"eventData":{}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "STS-10002")
	assert.EqualValues(t, 0, atomic.LoadInt64(hits))
}

func Test_TrackEvent_UnknownEventName(t *testing.T) {

	handler, hits := newHandler(t, true)

	rec := postJSON(handler.TrackEvent, "/api/events/track",
		`{"eventName":"MadeUpEvent","eventId":"evt-1"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "STS-10003")
	assert.EqualValues(t, 0, atomic.LoadInt64(hits))
}

func Test_TrackEvent_MalformedBody(t *testing.T) {

	handler, hits := newHandler(t, true)

	rec := postJSON(handler.TrackEvent, "/api/events/track", `{"eventName":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.EqualValues(t, 0, atomic.LoadInt64(hits))
}

func Test_TrackEvent_NotConfigured(t *testing.T) {

	handler, hits := newHandler(t, false)

	rec := postJSON(handler.TrackEvent, "/api/events/track",
		`{"eventName":"PageView","eventId":"evt-1"}`)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "STS-10006")
	assert.EqualValues(t, 0, atomic.LoadInt64(hits))
}

func Test_TrackEvent_DuplicateReported(t *testing.T) {

	handler, hits := newHandler(t, true)

	body := `{"eventName":"AddToCart","eventId":"evt-dup"}`
	first := postJSON(handler.TrackEvent, "/api/events/track", body)
	second := postJSON(handler.TrackEvent, "/api/events/track", body)

	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &result))
	assert.Equal(t, false, result["success"])
	assert.Equal(t, "Duplicate event", result["error"])
	assert.EqualValues(t, 1, atomic.LoadInt64(hits))
}

func Test_TrackPurchase_Success(t *testing.T) {

	handler, hits := newHandler(t, true)

	rec := postJSON(handler.TrackPurchase, "/api/events/purchase",
		`{"orderId":"ORD-1","items":[{"id":"p1","title":"Submariner","price":9150,"quantity":1}],"value":9150,"currency":"USD","eventId":"evt-p1"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, true, result["success"])
	assert.EqualValues(t, 1, atomic.LoadInt64(hits))
}

func Test_TrackPurchase_MissingFields(t *testing.T) {

	handler, hits := newHandler(t, true)

	rec := postJSON(handler.TrackPurchase, "/api/events/purchase",
		`{"orderId":"ORD-1","items":[],"value":100,"eventId":"evt-p1"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "STS-10002")
	assert.EqualValues(t, 0, atomic.LoadInt64(hits))
}

func Test_TrackBatch_RejectsOversizedBatchWithoutSideEffects(t *testing.T) {

	handler, hits := newHandler(t, true)

	events := make([]string, 101)
	for i := range events {
		events[i] = fmt.Sprintf(`{"eventName":"PageView","eventId":"evt-%d"}`, i)
	}
	body := `{"events":[` + strings.Join(events, ",") + `]}`

	rec := postJSON(handler.TrackBatch, "/api/events/batch", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "STS-10005")
	assert.EqualValues(t, 0, atomic.LoadInt64(hits))
}

func Test_TrackBatch_RejectsEmptyBatch(t *testing.T) {

	handler, hits := newHandler(t, true)

	rec := postJSON(handler.TrackBatch, "/api/events/batch", `{"events":[]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.EqualValues(t, 0, atomic.LoadInt64(hits))
}

func Test_TrackBatch_AggregatesResults(t *testing.T) {

	handler, hits := newHandler(t, true)

	rec := postJSON(handler.TrackBatch, "/api/events/batch",
		`{"events":[{"eventName":"PageView","eventId":"evt-1"},{"eventName":"PageView","eventId":"evt-1"}]}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.EqualValues(t, 2, result["total"])
	assert.EqualValues(t, 1, result["successful"])
	assert.EqualValues(t, 1, result["failed"])
	assert.EqualValues(t, 1, atomic.LoadInt64(hits))
}

func Test_GetStatus_ReportsConfigurationAndQueueDepth(t *testing.T) {

	handler, _ := newHandler(t, true)

	req := httptest.NewRequest(http.MethodGet, "/api/events/status", nil)
	rec := httptest.NewRecorder()
	handler.GetStatus(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	tracking, ok := result["tracking"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, tracking["pixelConfigured"])
	assert.Equal(t, true, tracking["capiConfigured"])
	assert.EqualValues(t, 0, tracking["queuedEvents"])
}

func Test_RetryQueue_RequiresCredentials(t *testing.T) {

	handler, _ := newHandler(t, true)

	req := httptest.NewRequest(http.MethodPost, "/api/events/retry-queue", nil)
	rec := httptest.NewRecorder()
	handler.RetryQueue(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func Test_RetryQueue_AdminDrains(t *testing.T) {

	handler, _ := newHandler(t, true)

	req := httptest.NewRequest(http.MethodPost, "/api/events/retry-queue", nil)
	creds := base64.StdEncoding.EncodeToString([]byte("admin:changeit"))
	req.Header.Set("Authorization", "Basic "+creds)
	rec := httptest.NewRecorder()
	handler.RetryQueue(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, true, result["success"])
	assert.EqualValues(t, 0, result["processed"])
	assert.EqualValues(t, 0, result["remaining"])
}
