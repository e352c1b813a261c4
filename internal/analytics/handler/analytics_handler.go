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
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/meridian-watches/storefront-tracking-service/internal/analytics/model"
	"github.com/meridian-watches/storefront-tracking-service/internal/analytics/service"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/authz"
	errors2 "github.com/meridian-watches/storefront-tracking-service/internal/system/errors"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/pagination"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/security"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/utils"
)

type AnalyticsHandler struct{}

func NewAnalyticsHandler() *AnalyticsHandler {

	return &AnalyticsHandler{}
}

// TrackPageView ingests one page view. The record is written asynchronously;
// the 201 acknowledges acceptance, not durability.
func (ah *AnalyticsHandler) TrackPageView(w http.ResponseWriter, r *http.Request) {

	var request model.PageViewRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		clientError := errors2.NewClientError(errors2.INVALID_REQUEST_FORMAT, http.StatusBadRequest)
		clientError.Description = utils.HandleDecodeError(err, "page view")
		utils.WriteErrorResponse(w, clientError)
		return
	}

	if request.VisitorID == "" || request.SessionID == "" || request.Page == "" {
		clientError := errors2.NewClientError(errors2.MISSING_REQUIRED_FIELDS, http.StatusBadRequest)
		clientError.Description = "Missing required fields: visitorId, sessionId, page"
		utils.WriteErrorResponse(w, clientError)
		return
	}

	userID := ""
	if claims := security.AuthenticatedClaims(r); claims != nil {
		userID = authz.UserID(claims)
	}

	pageView := service.BuildPageView(request, r.Header.Get("User-Agent"), utils.ClientIP(r), userID)
	service.TrackPageView(pageView)

	utils.WriteJSONResponse(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"id":        pageView.ID,
			"timestamp": pageView.CreatedAt,
		},
	})
}

// GetVisitorStats serves the aggregate traffic statistics. Operator only.
func (ah *AnalyticsHandler) GetVisitorStats(w http.ResponseWriter, r *http.Request) {

	if err := security.RequireAdmin(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	days := queryDays(r)
	stats, err := service.GetVisitorStats(days)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    stats,
	})
}

// GetPageViews serves the paginated raw records. Operator only.
func (ah *AnalyticsHandler) GetPageViews(w http.ResponseWriter, r *http.Request) {

	if err := security.RequireAdmin(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	days := queryDays(r)
	device := r.URL.Query().Get("device")

	page, err := pagination.ParsePage(r)
	if err != nil {
		clientError := errors2.NewClientError(errors2.INVALID_REQUEST_FORMAT, http.StatusBadRequest)
		clientError.Description = "Invalid page parameter"
		utils.WriteErrorResponse(w, clientError)
		return
	}
	limit, err := pagination.ParseLimit(r)
	if err != nil {
		clientError := errors2.NewClientError(errors2.INVALID_REQUEST_FORMAT, http.StatusBadRequest)
		clientError.Description = "Invalid limit parameter"
		utils.WriteErrorResponse(w, clientError)
		return
	}

	pageViews, total, err := service.GetPageViews(days, device, page, limit)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, model.PageViewListResponse{
		Success: true,
		Data:    pageViews,
		Pagination: model.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pagination.TotalPages(total, limit),
		},
	})
}

func queryDays(r *http.Request) int {
	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil || days < 1 {
		return 7
	}
	return days
}
