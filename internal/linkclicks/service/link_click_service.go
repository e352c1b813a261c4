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
	"time"

	"github.com/google/uuid"
	"github.com/meridian-watches/storefront-tracking-service/internal/linkclicks/model"
	"github.com/meridian-watches/storefront-tracking-service/internal/linkclicks/store"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/constants"
)

const topProductsLimit = 10

const byDateLookbackDays = 7

// IsValidLinkType reports whether the given value is a recognised lead
// channel.
func IsValidLinkType(linkType string) bool {
	return constants.AllowedLinkTypes[linkType]
}

// BuildLinkClick assembles a persistable record from the ingestion payload
// and the transport attributes of the request.
func BuildLinkClick(request model.LinkClickRequest, referer, userAgent, ipAddress, userID string) model.LinkClick {

	source := model.ClickSource{Page: "unknown"}
	if request.Source != nil && request.Source.Page != "" {
		source.Page = request.Source.Page
	} else if referer != "" {
		source.Page = referer
	}
	if request.Source != nil {
		source.Referrer = request.Source.Referrer
	}

	if ipAddress == "" {
		ipAddress = "unknown"
	}

	return model.LinkClick{
		ID:          uuid.New().String(),
		UserID:      userID,
		LinkType:    request.LinkType,
		ProductID:   request.ProductID,
		ProductName: request.ProductName,
		Destination: request.Destination,
		Source:      source,
		UserAgent:   userAgent,
		IPAddress:   ipAddress,
		CreatedAt:   time.Now().UTC(),
	}
}

// TrackLinkClick persists one click record.
func TrackLinkClick(click model.LinkClick) error {
	return store.InsertLinkClick(click)
}

// GetLinkClicks returns one page of records matching the filter.
func GetLinkClicks(filter model.ListFilter, page, limit int) ([]model.LinkClick, int64, error) {
	return store.ListLinkClicks(filter, page, limit)
}

// GetLinkClickStats computes the click statistics. The by-type, total and
// top-product numbers honour the date filter; the by-date series always
// covers the trailing week.
func GetLinkClickStats(filter model.ListFilter) (*model.LinkClickStats, error) {

	total, err := store.CountLinkClicks(filter)
	if err != nil {
		return nil, err
	}

	byType, err := store.ClicksByType(filter)
	if err != nil {
		return nil, err
	}

	since := time.Now().UTC().AddDate(0, 0, -byDateLookbackDays)
	byDate, err := store.ClicksByDate(since)
	if err != nil {
		return nil, err
	}

	topProducts, err := store.TopProducts(filter, topProductsLimit)
	if err != nil {
		return nil, err
	}

	return &model.LinkClickStats{
		Total:       total,
		ByType:      byType,
		ByDate:      byDate,
		TopProducts: topProducts,
	}, nil
}

// ResetLinkClicks deletes every record and returns the deleted count.
func ResetLinkClicks() (int64, error) {
	return store.DeleteAllLinkClicks()
}

// DeleteLinkClick deletes one record by id. Returns false when the record
// does not exist.
func DeleteLinkClick(id string) (bool, error) {
	return store.DeleteLinkClickByID(id)
}
