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

// ClickSource records where on the storefront the click happened.
type ClickSource struct {
	Page     string `json:"page" bson:"page"`
	Referrer string `json:"referrer,omitempty" bson:"referrer,omitempty"`
}

// LinkClick is one recorded lead signal, e.g. a tap on the WhatsApp contact
// button on a product page. Anonymous clicks are allowed.
type LinkClick struct {
	ID          string      `json:"id" bson:"_id"`
	UserID      string      `json:"userId,omitempty" bson:"user_id,omitempty"`
	LinkType    string      `json:"linkType" bson:"link_type"`
	ProductID   string      `json:"productId,omitempty" bson:"product_id,omitempty"`
	ProductName string      `json:"productName,omitempty" bson:"product_name,omitempty"`
	Destination string      `json:"destination,omitempty" bson:"destination,omitempty"`
	Source      ClickSource `json:"source" bson:"source"`
	UserAgent   string      `json:"userAgent,omitempty" bson:"user_agent,omitempty"`
	IPAddress   string      `json:"ipAddress,omitempty" bson:"ip_address,omitempty"`
	CreatedAt   time.Time   `json:"createdAt" bson:"created_at"`
}

// LinkClickRequest is the ingestion payload from the storefront.
type LinkClickRequest struct {
	LinkType    string       `json:"linkType"`
	ProductID   string       `json:"productId"`
	ProductName string       `json:"productName"`
	Destination string       `json:"destination"`
	Source      *ClickSource `json:"source"`
}

// ListFilter narrows a link click listing or statistics query.
type ListFilter struct {
	LinkType  string
	ProductID string
	StartDate *time.Time
	EndDate   *time.Time
}

// TypeCount is one bucket of the clicks-by-type breakdown.
type TypeCount struct {
	LinkType string `json:"linkType" bson:"_id"`
	Count    int64  `json:"count" bson:"count"`
}

// DateCount is one day of the clicks-by-date series.
type DateCount struct {
	Date  string `json:"date" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}

// ProductCount is one entry of the most-clicked-products ranking.
type ProductCount struct {
	ProductID   string `json:"productId" bson:"_id"`
	ProductName string `json:"productName" bson:"product_name"`
	Count       int64  `json:"count" bson:"count"`
}

// LinkClickStats is the statistics document served to the back office.
type LinkClickStats struct {
	Total       int64          `json:"total"`
	ByType      []TypeCount    `json:"byType"`
	ByDate      []DateCount    `json:"byDate"`
	TopProducts []ProductCount `json:"topProducts"`
}
