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

package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/meridian-watches/storefront-tracking-service/internal/conversions/model"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/config"
)

// MetaClient posts conversion events to the Graph API events endpoint.
type MetaClient struct {
	endpoint    string
	accessToken string
	pixelID     string
	httpClient  *http.Client
}

// NewMetaClient creates the outbound client for the configured pixel. The
// per-attempt timeout bounds each delivery try; retry pacing is the delivery
// engine's concern.
func NewMetaClient(cfg config.MetaConfig, requestTimeout time.Duration) *MetaClient {

	endpoint := fmt.Sprintf("%s/%s/%s/events", cfg.BaseURL, cfg.APIVersion, cfg.PixelID)

	transport := &http.Transport{
		TLSHandshakeTimeout: 10 * time.Second,
		IdleConnTimeout:     60 * time.Second,
		MaxIdleConns:        100,
		MaxConnsPerHost:     100,
	}

	return &MetaClient{
		endpoint:    endpoint,
		accessToken: cfg.AccessToken,
		pixelID:     cfg.PixelID,
		httpClient: &http.Client{
			Timeout:   requestTimeout,
			Transport: transport,
		},
	}
}

// Configured reports whether delivery credentials are present.
func (c *MetaClient) Configured() bool {
	return c.accessToken != "" && c.pixelID != ""
}

// AccessToken returns the credential attached to outgoing payloads.
func (c *MetaClient) AccessToken() string {
	return c.accessToken
}

// Send posts one payload and returns the decoded API response. A non-2xx
// status is an error carrying the API's own message when one is present.
func (c *MetaClient) Send(payload model.WirePayload) (map[string]interface{}, error) {

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	resp, err := c.httpClient.Post(c.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var decoded map[string]interface{}
	if len(respBody) > 0 {
		// A malformed body on a 2xx answer is not a delivery failure.
		_ = json.Unmarshal(respBody, &decoded)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s", apiErrorMessage(decoded, resp.StatusCode))
	}

	return decoded, nil
}

func apiErrorMessage(decoded map[string]interface{}, statusCode int) string {
	if apiErr, ok := decoded["error"].(map[string]interface{}); ok {
		if msg, ok := apiErr["message"].(string); ok && msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("HTTP %d", statusCode)
}
