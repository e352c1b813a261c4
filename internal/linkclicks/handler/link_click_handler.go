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
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/meridian-watches/storefront-tracking-service/internal/linkclicks/model"
	"github.com/meridian-watches/storefront-tracking-service/internal/linkclicks/service"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/authz"
	errors2 "github.com/meridian-watches/storefront-tracking-service/internal/system/errors"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/log"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/pagination"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/security"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/utils"
)

type LinkClickHandler struct{}

func NewLinkClickHandler() *LinkClickHandler {

	return &LinkClickHandler{}
}

// TrackLinkClick ingests one lead click.
func (lh *LinkClickHandler) TrackLinkClick(w http.ResponseWriter, r *http.Request) {

	logger := log.GetLogger()

	var request model.LinkClickRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		clientError := errors2.NewClientError(errors2.INVALID_REQUEST_FORMAT, http.StatusBadRequest)
		clientError.Description = utils.HandleDecodeError(err, "link click")
		utils.WriteErrorResponse(w, clientError)
		return
	}

	if !service.IsValidLinkType(request.LinkType) {
		clientError := errors2.NewClientError(errors2.INVALID_LINK_TYPE, http.StatusBadRequest)
		clientError.Description = "Valid linkType is required"
		utils.WriteErrorResponse(w, clientError)
		return
	}

	userID := ""
	if claims := security.AuthenticatedClaims(r); claims != nil {
		userID = authz.UserID(claims)
	}

	click := service.BuildLinkClick(request, r.Header.Get("Referer"),
		r.Header.Get("User-Agent"), utils.ClientIP(r), userID)
	if err := service.TrackLinkClick(click); err != nil {
		utils.HandleError(w, err)
		return
	}

	logger.Info("Link click tracked", log.String("linkType", click.LinkType),
		log.String("productId", click.ProductID))

	utils.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    click,
	})
}

// GetLinkClicks serves the filtered, paginated listing. Operator only.
func (lh *LinkClickHandler) GetLinkClicks(w http.ResponseWriter, r *http.Request) {

	if err := security.RequireAdmin(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	filter, clientError := parseFilter(r)
	if clientError != nil {
		utils.WriteErrorResponse(w, clientError)
		return
	}

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

	clicks, total, err := service.GetLinkClicks(filter, page, limit)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    clicks,
		"pagination": map[string]interface{}{
			"page":  page,
			"limit": limit,
			"total": total,
			"pages": pagination.TotalPages(total, limit),
		},
	})
}

// GetLinkClickStats serves the click statistics. Operator only.
func (lh *LinkClickHandler) GetLinkClickStats(w http.ResponseWriter, r *http.Request) {

	if err := security.RequireAdmin(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	filter, clientError := parseFilter(r)
	if clientError != nil {
		utils.WriteErrorResponse(w, clientError)
		return
	}

	stats, err := service.GetLinkClickStats(filter)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    stats,
	})
}

// ResetLinkClicks deletes every click record. Operator only.
func (lh *LinkClickHandler) ResetLinkClicks(w http.ResponseWriter, r *http.Request) {

	if err := security.RequireAdmin(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	deleted, err := service.ResetLinkClicks()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	log.GetLogger().Info("Link clicks reset", log.Int("deletedCount", int(deleted)))

	utils.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"message":      fmt.Sprintf("Deleted %d link click records", deleted),
		"deletedCount": deleted,
	})
}

// DeleteLinkClick deletes one click record by id. Operator only.
func (lh *LinkClickHandler) DeleteLinkClick(w http.ResponseWriter, r *http.Request) {

	if err := security.RequireAdmin(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	pathParts := strings.Split(r.URL.Path, "/")
	id := pathParts[len(pathParts)-1]
	if id == "" {
		clientError := errors2.NewClientError(errors2.RESOURCE_NOT_FOUND, http.StatusNotFound)
		utils.WriteErrorResponse(w, clientError)
		return
	}

	deleted, err := service.DeleteLinkClick(id)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	if !deleted {
		clientError := errors2.NewClientError(errors2.RESOURCE_NOT_FOUND, http.StatusNotFound)
		clientError.Description = "Link click record not found"
		utils.WriteErrorResponse(w, clientError)
		return
	}

	log.GetLogger().Info("Link click deleted", log.String("id", id))

	utils.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Link click record deleted",
	})
}

func parseFilter(r *http.Request) (model.ListFilter, *errors2.ClientError) {

	filter := model.ListFilter{
		LinkType:  r.URL.Query().Get("linkType"),
		ProductID: r.URL.Query().Get("productId"),
	}

	if start := r.URL.Query().Get("startDate"); start != "" {
		parsed, err := time.Parse("2006-01-02", start)
		if err != nil {
			clientError := errors2.NewClientError(errors2.INVALID_REQUEST_FORMAT, http.StatusBadRequest)
			clientError.Description = "Invalid startDate, expected YYYY-MM-DD"
			return filter, clientError
		}
		filter.StartDate = &parsed
	}
	if end := r.URL.Query().Get("endDate"); end != "" {
		parsed, err := time.Parse("2006-01-02", end)
		if err != nil {
			clientError := errors2.NewClientError(errors2.INVALID_REQUEST_FORMAT, http.StatusBadRequest)
			clientError.Description = "Invalid endDate, expected YYYY-MM-DD"
			return filter, clientError
		}
		endOfDay := parsed.Add(24*time.Hour - time.Millisecond)
		filter.EndDate = &endOfDay
	}

	return filter, nil
}
