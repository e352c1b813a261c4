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

package services

import (
	"fmt"
	"net/http"

	"github.com/meridian-watches/storefront-tracking-service/internal/analytics/handler"
)

type AnalyticsService struct {
	analyticsHandler *handler.AnalyticsHandler
}

func NewAnalyticsService(mux *http.ServeMux, apiBasePath string) *AnalyticsService {

	instance := &AnalyticsService{
		analyticsHandler: handler.NewAnalyticsHandler(),
	}
	instance.RegisterRoutes(mux, apiBasePath)

	return instance
}

func (s *AnalyticsService) RegisterRoutes(mux *http.ServeMux, apiBasePath string) {

	mux.HandleFunc(fmt.Sprintf("POST %s/analytics/track", apiBasePath), s.analyticsHandler.TrackPageView)
	mux.HandleFunc(fmt.Sprintf("GET %s/analytics/stats", apiBasePath), s.analyticsHandler.GetVisitorStats)
	mux.HandleFunc(fmt.Sprintf("GET %s/analytics/views", apiBasePath), s.analyticsHandler.GetPageViews)
}
