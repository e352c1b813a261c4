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
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-watches/storefront-tracking-service/internal/system/config"
)

func overrideRuntime(t *testing.T) {
	t.Helper()

	conf := config.Config{}
	conf.Auth.JWTSecret = "test-secret"
	conf.Auth.AdminUsername = "admin"
	conf.Auth.AdminPassword = "changeit"
	config.OverrideSTSRuntime(conf)
}

func adminRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	creds := base64.StdEncoding.EncodeToString([]byte("admin:changeit"))
	req.Header.Set("Authorization", "Basic "+creds)
	return req
}

func Test_TrackLinkClick_RejectsInvalidLinkType(t *testing.T) {

	overrideRuntime(t)
	handler := NewLinkClickHandler()

	for _, body := range []string{
		`{"linkType":"telegram"}`,
		`{"linkType":""}`,
		`{"productId":"p1"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/link-clicks/track", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.TrackLinkClick(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Contains(t, rec.Body.String(), "STS-10004", body)
	}
}

func Test_TrackLinkClick_MalformedBody(t *testing.T) {

	overrideRuntime(t)
	handler := NewLinkClickHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/link-clicks/track", strings.NewReader(`{"linkType"`))
	rec := httptest.NewRecorder()

	handler.TrackLinkClick(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "STS-10001")
}

func Test_AdminEndpoints_RequireCredentials(t *testing.T) {

	overrideRuntime(t)
	handler := NewLinkClickHandler()

	endpoints := []struct {
		name   string
		serve  http.HandlerFunc
		method string
		target string
	}{
		{"List", handler.GetLinkClicks, http.MethodGet, "/api/link-clicks"},
		{"Stats", handler.GetLinkClickStats, http.MethodGet, "/api/link-clicks/stats"},
		{"Reset", handler.ResetLinkClicks, http.MethodDelete, "/api/link-clicks"},
		{"DeleteByID", handler.DeleteLinkClick, http.MethodDelete, "/api/link-clicks/abc"},
	}

	for _, endpoint := range endpoints {
		t.Run(endpoint.name, func(t *testing.T) {
			req := httptest.NewRequest(endpoint.method, endpoint.target, nil)
			rec := httptest.NewRecorder()
			endpoint.serve(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func Test_GetLinkClicks_RejectsInvalidDates(t *testing.T) {

	overrideRuntime(t)
	handler := NewLinkClickHandler()

	rec := httptest.NewRecorder()
	handler.GetLinkClicks(rec, adminRequest(http.MethodGet, "/api/link-clicks?startDate=31-12-2025"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid startDate, expected YYYY-MM-DD")

	rec = httptest.NewRecorder()
	handler.GetLinkClicks(rec, adminRequest(http.MethodGet, "/api/link-clicks?endDate=never"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid endDate, expected YYYY-MM-DD")
}

func Test_ParseFilter_EndDateCoversWholeDay(t *testing.T) {

	req := httptest.NewRequest(http.MethodGet,
		"/api/link-clicks?linkType=whatsapp&productId=p1&startDate=2026-01-01&endDate=2026-01-31", nil)

	filter, clientError := parseFilter(req)

	require.Nil(t, clientError)
	assert.Equal(t, "whatsapp", filter.LinkType)
	assert.Equal(t, "p1", filter.ProductID)
	require.NotNil(t, filter.StartDate)
	require.NotNil(t, filter.EndDate)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), *filter.StartDate)
	assert.Equal(t, time.Date(2026, 1, 31, 23, 59, 59, 999000000, time.UTC), *filter.EndDate)
}
