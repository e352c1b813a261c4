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
	"math"
	"strconv"

	"github.com/meridian-watches/storefront-tracking-service/internal/system/constants"
)

// BuildCustomData normalizes a loosely-typed event payload into the
// custom_data object. The mapping is purely data-directed: the same rules
// compose correctly for a single product view, a cart addition and a
// multi-item purchase, so there is no branching on the event name.
func BuildCustomData(eventData map[string]interface{}) map[string]interface{} {

	customData := map[string]interface{}{}
	if eventData == nil {
		return customData
	}

	// Monetary value: an aggregate total wins over a unit price.
	if value, ok := numberField(eventData, "total_value"); ok {
		customData["value"] = formatValue(value)
		customData["currency"] = currencyOrDefault(eventData)
	} else if price, ok := numberField(eventData, "price"); ok {
		customData["value"] = formatValue(price)
		customData["currency"] = currencyOrDefault(eventData)
	}

	if productID := stringField(eventData, "product_id"); productID != "" {
		customData["content_ids"] = []string{productID}
		name := stringField(eventData, "product_name")
		if name == "" {
			name = "Product"
		}
		customData["content_name"] = name
		customData["content_type"] = "product"
	}

	if items, ok := eventData["items"].([]interface{}); ok && len(items) > 0 {
		ids := make([]string, 0, len(items))
		for _, raw := range items {
			if item, ok := raw.(map[string]interface{}); ok {
				id := stringField(item, "product_id")
				if id == "" {
					// Storefront carts key line items by a bare "id".
					id = stringField(item, "id")
				}
				if id != "" {
					ids = append(ids, id)
				}
			}
		}
		customData["content_ids"] = ids
		// num_items is the count of distinct line items, not the quantity sum.
		customData["num_items"] = len(items)
		customData["content_type"] = "product_group"
	}

	if orderID := stringField(eventData, "order_id"); orderID != "" {
		customData["order_id"] = orderID
	}

	if _, hasItems := eventData["items"]; !hasItems {
		if quantity, ok := numberField(eventData, "quantity"); ok && quantity > 0 {
			customData["num_items"] = int(quantity)
		}
	}

	return customData
}

func currencyOrDefault(eventData map[string]interface{}) string {
	if currency := stringField(eventData, "currency"); currency != "" {
		return currency
	}
	return constants.DefaultCurrency
}

// formatValue renders a monetary amount rounded to two decimal places, as a
// string, which is the representation the Conversions API optimizes on.
func formatValue(value float64) string {
	rounded := math.Round(value*100) / 100
	return strconv.FormatFloat(rounded, 'f', 2, 64)
}

func numberField(data map[string]interface{}, key string) (float64, bool) {
	switch v := data[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		if v == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
