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

package workers

import (
	analyticsModel "github.com/meridian-watches/storefront-tracking-service/internal/analytics/model"
	analyticsStore "github.com/meridian-watches/storefront-tracking-service/internal/analytics/store"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/constants"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/log"
)

var PageViewQueue chan analyticsModel.PageView

// StartPageViewWorker starts the background writer that persists page views
// off the request path.
func StartPageViewWorker() {

	PageViewQueue = make(chan analyticsModel.PageView, constants.DefaultQueueSize)

	go func() {
		for pageView := range PageViewQueue {
			if err := analyticsStore.InsertPageView(pageView); err != nil {
				log.GetLogger().Error("Failed to persist page view",
					log.String("visitorId", pageView.VisitorID), log.Error(err))
			}
		}
	}()
}

// EnqueuePageView hands a record to the writer without blocking. When the
// queue is full the record is dropped; page views are best-effort.
func EnqueuePageView(pageView analyticsModel.PageView) {
	if PageViewQueue == nil {
		return
	}
	select {
	case PageViewQueue <- pageView:
	default:
		log.GetLogger().Warn("Page view queue full, dropping record",
			log.String("visitorId", pageView.VisitorID))
	}
}
