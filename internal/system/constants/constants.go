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

package constants

// ContextKey is the type used for values stored in a request context.
type ContextKey string

const TraceIDContextKey ContextKey = "traceID"

const ApiBasePath = "/api"

// MongoDB collection names.
const (
	PageViewCollection   = "page_views"
	LinkClickCollection  = "link_clicks"
	ConversionCollection = "conversion_events"
)

// Conversion event names accepted by the tracking pipeline. The set mirrors
// the standard events the attribution platform understands.
const (
	EventPageView         = "PageView"
	EventViewContent      = "ViewContent"
	EventAddToCart        = "AddToCart"
	EventInitiateCheckout = "InitiateCheckout"
	EventPurchase         = "Purchase"
	EventLead             = "Lead"
)

var AllowedEventNames = map[string]bool{
	EventPageView:         true,
	EventViewContent:      true,
	EventAddToCart:        true,
	EventInitiateCheckout: true,
	EventPurchase:         true,
	EventLead:             true,
}

// Link types recorded by the lead-click tracker.
const (
	LinkTypeWhatsApp    = "whatsapp"
	LinkTypeEmail       = "email"
	LinkTypePhone       = "phone"
	LinkTypeInquiryForm = "inquiry_form"
	LinkTypeOther       = "other"
)

var AllowedLinkTypes = map[string]bool{
	LinkTypeWhatsApp:    true,
	LinkTypeEmail:       true,
	LinkTypePhone:       true,
	LinkTypeInquiryForm: true,
	LinkTypeOther:       true,
}

// Device classes derived from the user-agent string.
const (
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceDesktop = "desktop"
	DeviceUnknown = "unknown"
)

// Dedup store backends.
const (
	DedupBackendMemory = "memory"
	DedupBackendRedis  = "redis"
)

const (
	// MaxBatchEvents caps the number of events accepted per batch request.
	MaxBatchEvents = 100

	// DefaultQueueSize is the capacity of the page-view worker channel.
	DefaultQueueSize = 1000

	// UnknownIPAddress is the sentinel used when no client address is available.
	UnknownIPAddress = "0.0.0.0"

	DefaultCurrency = "USD"

	// BackendSourceURL is reported as event_source_url for server-originated
	// events that carry no referer.
	BackendSourceURL = "backend-api"

	DefaultGraphAPIBaseURL = "https://graph.facebook.com"
	DefaultGraphAPIVersion = "v18.0"

	RoleAdmin = "admin"

	// AuthTokenCookie is the storefront session cookie carrying the JWT.
	AuthTokenCookie = "token"

	// PixelCookie is the browser-id cookie set by the pixel script.
	PixelCookie = "_fbp"
)
