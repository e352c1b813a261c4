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
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/meridian-watches/storefront-tracking-service/internal/analytics/model"
	"github.com/meridian-watches/storefront-tracking-service/internal/analytics/store"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/log"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/workers"
)

const topPagesLimit = 10

const browserBucketLimit = 5

// BuildPageView assembles a persistable record from the ingestion payload
// and the transport attributes of the request.
func BuildPageView(request model.PageViewRequest, userAgent, ipAddress, userID string) model.PageView {

	return model.PageView{
		ID:        uuid.New().String(),
		VisitorID: request.VisitorID,
		SessionID: request.SessionID,
		Page:      request.Page,
		Referrer:  request.Referrer,
		UserAgent: userAgent,
		Device:    DetectDevice(userAgent),
		Browser:   DetectBrowser(userAgent),
		OS:        DetectOS(userAgent),
		IPAddress: ipAddress,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
}

// TrackPageView hands the record to the persistence worker. Ingestion never
// waits on the database; a saturated worker drops the record.
func TrackPageView(pageView model.PageView) {

	workers.EnqueuePageView(pageView)
	log.GetLogger().Info("Page view tracked", log.String("page", pageView.Page),
		log.String("visitorId", pageView.VisitorID))
}

// GetVisitorStats computes the traffic statistics over the last `days` days.
func GetVisitorStats(days int) (*model.VisitorStats, error) {

	if days < 1 {
		days = 7
	}
	since := time.Now().UTC().AddDate(0, 0, -days)

	totalViews, err := store.CountPageViews(since, "")
	if err != nil {
		return nil, err
	}
	uniqueVisitors, err := store.DistinctCount("visitor_id", since)
	if err != nil {
		return nil, err
	}
	uniqueSessions, err := store.DistinctCount("session_id", since)
	if err != nil {
		return nil, err
	}

	viewsByDay, err := store.ViewsByDay(since)
	if err != nil {
		return nil, err
	}
	topPages, err := store.TopPages(since, topPagesLimit)
	if err != nil {
		return nil, err
	}
	deviceBreakdown, err := store.BreakdownByField("device", since, 0)
	if err != nil {
		return nil, err
	}
	browserBreakdown, err := store.BreakdownByField("browser", since, browserBucketLimit)
	if err != nil {
		return nil, err
	}

	todayStart := startOfToday()
	todayViews, err := store.CountPageViews(todayStart, "")
	if err != nil {
		return nil, err
	}
	todayVisitors, err := store.DistinctCount("visitor_id", todayStart)
	if err != nil {
		return nil, err
	}

	avgViews := "0"
	if uniqueVisitors > 0 {
		avgViews = strconv.FormatFloat(float64(totalViews)/float64(uniqueVisitors), 'f', 1, 64)
	}

	return &model.VisitorStats{
		Summary: model.StatsSummary{
			TotalViews:         totalViews,
			UniqueVisitors:     uniqueVisitors,
			UniqueSessions:     uniqueSessions,
			AvgViewsPerVisitor: avgViews,
		},
		Today: model.TodayStats{
			Views:    todayViews,
			Visitors: todayVisitors,
		},
		ViewsByDay:       viewsByDay,
		TopPages:         topPages,
		DeviceBreakdown:  deviceBreakdown,
		BrowserBreakdown: browserBreakdown,
	}, nil
}

// GetPageViews returns one page of raw records from the last `days` days.
func GetPageViews(days int, device string, page, limit int) ([]model.PageView, int64, error) {

	if days < 1 {
		days = 7
	}
	since := time.Now().UTC().AddDate(0, 0, -days)
	return store.ListPageViews(since, device, page, limit)
}

func startOfToday() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
