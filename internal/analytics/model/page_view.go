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

package model

import "time"

// PageView is one recorded page navigation. VisitorId is a long-lived
// browser identifier; SessionId groups one visit.
type PageView struct {
	ID        string    `json:"id" bson:"_id"`
	VisitorID string    `json:"visitorId" bson:"visitor_id"`
	SessionID string    `json:"sessionId" bson:"session_id"`
	Page      string    `json:"page" bson:"page"`
	Referrer  string    `json:"referrer" bson:"referrer"`
	UserAgent string    `json:"userAgent" bson:"user_agent"`
	Device    string    `json:"device" bson:"device"`
	Browser   string    `json:"browser" bson:"browser"`
	OS        string    `json:"os" bson:"os"`
	IPAddress string    `json:"ipAddress" bson:"ip_address"`
	UserID    string    `json:"userId,omitempty" bson:"user_id,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

// PageViewRequest is the ingestion payload from the storefront.
type PageViewRequest struct {
	VisitorID string `json:"visitorId"`
	SessionID string `json:"sessionId"`
	Page      string `json:"page"`
	Referrer  string `json:"referrer"`
}

// DailyViews is one day's traffic in the views-by-day series.
type DailyViews struct {
	Date     string `json:"date" bson:"_id"`
	Views    int64  `json:"views" bson:"views"`
	Visitors int64  `json:"visitors" bson:"visitors"`
}

// PageCount is one entry in the top-pages ranking.
type PageCount struct {
	Page     string `json:"page" bson:"_id"`
	Views    int64  `json:"views" bson:"views"`
	Visitors int64  `json:"visitors" bson:"visitors"`
}

// BucketCount is a generic grouped count (device, browser).
type BucketCount struct {
	Bucket string `json:"bucket" bson:"_id"`
	Count  int64  `json:"count" bson:"count"`
}

// StatsSummary aggregates traffic over the lookback window.
type StatsSummary struct {
	TotalViews         int64  `json:"totalViews"`
	UniqueVisitors     int64  `json:"uniqueVisitors"`
	UniqueSessions     int64  `json:"uniqueSessions"`
	AvgViewsPerVisitor string `json:"avgViewsPerVisitor"`
}

// TodayStats is the since-midnight slice of the statistics.
type TodayStats struct {
	Views    int64 `json:"views"`
	Visitors int64 `json:"visitors"`
}

// VisitorStats is the full statistics document served to the back office.
type VisitorStats struct {
	Summary          StatsSummary  `json:"summary"`
	Today            TodayStats    `json:"today"`
	ViewsByDay       []DailyViews  `json:"viewsByDay"`
	TopPages         []PageCount   `json:"topPages"`
	DeviceBreakdown  []BucketCount `json:"deviceBreakdown"`
	BrowserBreakdown []BucketCount `json:"browserBreakdown"`
}

// PageViewListResponse is the paginated listing envelope.
type PageViewListResponse struct {
	Success    bool       `json:"success"`
	Data       []PageView `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Pagination carries the listing window metadata.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}
