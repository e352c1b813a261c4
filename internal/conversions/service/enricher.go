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

package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/meridian-watches/storefront-tracking-service/internal/conversions/model"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/constants"
)

// BuildUserData produces the privacy-safe user_data object for an event.
// PII fields are normalized and SHA-256 hashed; transport fields come from
// the request-context snapshot. Every field is optional and omitted entirely
// when its source datum is absent - the Conversions API rejects payloads
// carrying hashes of empty strings.
func BuildUserData(eventData map[string]interface{}, reqCtx *model.RequestContext) map[string]interface{} {

	userData := map[string]interface{}{}

	if userID := stringField(eventData, "userId"); userID != "" {
		userData["external_id"] = hashValue(userID)
	}

	if email := stringField(eventData, "email"); email != "" {
		userData["em"] = hashValue(strings.ToLower(strings.TrimSpace(email)))
	}

	if phone := stringField(eventData, "phone"); phone != "" {
		if digits := digitsOnly(phone); digits != "" {
			userData["ph"] = hashValue(digits)
		}
	}

	if reqCtx != nil {
		if reqCtx.UserAgent != "" {
			userData["ua"] = reqCtx.UserAgent
		}
		ip := reqCtx.ClientIP
		if ip == "" {
			ip = constants.UnknownIPAddress
		}
		userData["client_ip_address"] = ip
	}

	// Click id from the ad platform, wrapped in the browser click-id format.
	fbclid := stringField(eventData, "fbclid")
	if fbclid == "" && reqCtx != nil {
		fbclid = reqCtx.FBCLID
	}
	if fbclid != "" {
		userData["fbc"] = fmt.Sprintf("fb.1.%d.%s", time.Now().UnixMilli(), fbclid)
	}

	// Browser id cookie passes through verbatim.
	fbp := stringField(eventData, "fbp")
	if fbp == "" && reqCtx != nil {
		fbp = reqCtx.FBP
	}
	if fbp != "" {
		userData["fbp"] = fbp
	}

	return userData
}

func hashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

func digitsOnly(value string) string {
	var b strings.Builder
	for _, r := range value {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// stringField reads a loosely-typed field as a string, rendering numbers
// without an exponent so hashed ids stay stable.
func stringField(data map[string]interface{}, key string) string {
	if data == nil {
		return ""
	}
	switch v := data[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprint(v)
	}
}
