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
	"strings"

	"github.com/meridian-watches/storefront-tracking-service/internal/system/constants"
)

// Substring-based user-agent classification. Intentionally coarse; the
// breakdown feeds dashboards, not feature gating.

var tabletMarkers = []string{"tablet", "ipad", "playbook", "silk", "kindle"}

var mobileMarkers = []string{
	"mobile", "android", "iphone", "ipod", "iemobile", "blackberry",
	"opera mini", "opera mobi", "webos",
}

// DetectDevice classifies a user-agent as tablet, mobile or desktop. Tablets
// are checked first since most tablet agents also carry mobile markers.
func DetectDevice(userAgent string) string {
	if userAgent == "" {
		return constants.DeviceUnknown
	}

	ua := strings.ToLower(userAgent)
	for _, marker := range tabletMarkers {
		if strings.Contains(ua, marker) {
			return constants.DeviceTablet
		}
	}
	// Android without "mobi" is a tablet form factor.
	if strings.Contains(ua, "android") && !strings.Contains(ua, "mobi") {
		return constants.DeviceTablet
	}
	for _, marker := range mobileMarkers {
		if strings.Contains(ua, marker) {
			return constants.DeviceMobile
		}
	}
	return constants.DeviceDesktop
}

// DetectBrowser identifies the browser family from a user-agent string.
func DetectBrowser(userAgent string) string {
	ua := strings.ToLower(userAgent)
	switch {
	case strings.Contains(ua, "edge") || strings.Contains(ua, "edg/"):
		return "Edge"
	case strings.Contains(ua, "opr/") || strings.Contains(ua, "opera"):
		return "Opera"
	case strings.Contains(ua, "chrome"):
		return "Chrome"
	case strings.Contains(ua, "safari"):
		return "Safari"
	case strings.Contains(ua, "firefox"):
		return "Firefox"
	case strings.Contains(ua, "msie") || strings.Contains(ua, "trident"):
		return "IE"
	default:
		return "Unknown"
	}
}

// DetectOS identifies the operating system family from a user-agent string.
func DetectOS(userAgent string) string {
	ua := strings.ToLower(userAgent)
	switch {
	case strings.Contains(ua, "windows"):
		return "Windows"
	case strings.Contains(ua, "iphone") || strings.Contains(ua, "ipad"):
		return "iOS"
	case strings.Contains(ua, "mac"):
		return "macOS"
	case strings.Contains(ua, "android"):
		return "Android"
	case strings.Contains(ua, "linux"):
		return "Linux"
	default:
		return "Unknown"
	}
}
