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

	"github.com/meridian-watches/storefront-tracking-service/internal/conversions/handler"
	"github.com/meridian-watches/storefront-tracking-service/internal/conversions/service"
)

type ConversionEventService struct {
	eventHandler *handler.EventHandler
}

func NewConversionEventService(mux *http.ServeMux, apiBasePath string, tracker *service.Tracker) *ConversionEventService {

	instance := &ConversionEventService{
		eventHandler: handler.NewEventHandler(tracker),
	}
	instance.RegisterRoutes(mux, apiBasePath)

	return instance
}

func (s *ConversionEventService) RegisterRoutes(mux *http.ServeMux, apiBasePath string) {

	mux.HandleFunc(fmt.Sprintf("POST %s/events/track", apiBasePath), s.eventHandler.TrackEvent)
	mux.HandleFunc(fmt.Sprintf("POST %s/events/purchase", apiBasePath), s.eventHandler.TrackPurchase)
	mux.HandleFunc(fmt.Sprintf("POST %s/events/batch", apiBasePath), s.eventHandler.TrackBatch)
	mux.HandleFunc(fmt.Sprintf("GET %s/events/status", apiBasePath), s.eventHandler.GetStatus)
	mux.HandleFunc(fmt.Sprintf("POST %s/events/retry-queue", apiBasePath), s.eventHandler.RetryQueue)
}
