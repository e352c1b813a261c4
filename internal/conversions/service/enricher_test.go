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
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-watches/storefront-tracking-service/internal/conversions/model"
)

func sha256Hex(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

func Test_BuildUserData_HashesNormalizedEmail(t *testing.T) {

	userData := BuildUserData(map[string]interface{}{
		"email": "  User@Example.com ",
	}, nil)

	require.Contains(t, userData, "em")
	assert.Equal(t, sha256Hex("user@example.com"), userData["em"])
}

func Test_BuildUserData_HashesPhoneDigitsOnly(t *testing.T) {

	userData := BuildUserData(map[string]interface{}{
		"phone": "+1 (555) 123-4567",
	}, nil)

	require.Contains(t, userData, "ph")
	assert.Equal(t, sha256Hex("15551234567"), userData["ph"])
}

func Test_BuildUserData_HashesUserIdAsExternalId(t *testing.T) {

	userData := BuildUserData(map[string]interface{}{
		"userId": "user-42",
	}, nil)

	require.Contains(t, userData, "external_id")
	assert.Equal(t, sha256Hex("user-42"), userData["external_id"])
}

func Test_BuildUserData_OmitsAbsentFields(t *testing.T) {

	userData := BuildUserData(map[string]interface{}{}, nil)

	assert.NotContains(t, userData, "em")
	assert.NotContains(t, userData, "ph")
	assert.NotContains(t, userData, "external_id")
	assert.NotContains(t, userData, "ua")
	assert.NotContains(t, userData, "client_ip_address")
	assert.NotContains(t, userData, "fbc")
	assert.NotContains(t, userData, "fbp")
}

func Test_BuildUserData_RequestContextFields(t *testing.T) {

	reqCtx := &model.RequestContext{
		UserAgent: "Mozilla/5.0",
		ClientIP:  "203.0.113.9",
	}

	userData := BuildUserData(nil, reqCtx)

	assert.Equal(t, "Mozilla/5.0", userData["ua"])
	assert.Equal(t, "203.0.113.9", userData["client_ip_address"])
}

func Test_BuildUserData_UnknownIPSentinel(t *testing.T) {

	userData := BuildUserData(nil, &model.RequestContext{})

	assert.Equal(t, "0.0.0.0", userData["client_ip_address"])
	assert.NotContains(t, userData, "ua")
}

func Test_BuildUserData_SynthesizesClickId(t *testing.T) {

	userData := BuildUserData(nil, &model.RequestContext{FBCLID: "abc123"})

	require.Contains(t, userData, "fbc")
	fbc := userData["fbc"].(string)
	assert.True(t, strings.HasPrefix(fbc, "fb.1."))
	assert.True(t, strings.HasSuffix(fbc, ".abc123"))
}

func Test_BuildUserData_EventDataClickIdWins(t *testing.T) {

	userData := BuildUserData(map[string]interface{}{
		"fbclid": "from-payload",
	}, &model.RequestContext{FBCLID: "from-request"})

	fbc := userData["fbc"].(string)
	assert.True(t, strings.HasSuffix(fbc, ".from-payload"))
}

func Test_BuildUserData_BrowserIdPassesThrough(t *testing.T) {

	userData := BuildUserData(nil, &model.RequestContext{FBP: "fb.1.1700000000.99999"})

	assert.Equal(t, "fb.1.1700000000.99999", userData["fbp"])
}
