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

	"github.com/meridian-watches/storefront-tracking-service/internal/linkclicks/handler"
)

type LinkClickService struct {
	linkClickHandler *handler.LinkClickHandler
}

func NewLinkClickService(mux *http.ServeMux, apiBasePath string) *LinkClickService {

	instance := &LinkClickService{
		linkClickHandler: handler.NewLinkClickHandler(),
	}
	instance.RegisterRoutes(mux, apiBasePath)

	return instance
}

func (s *LinkClickService) RegisterRoutes(mux *http.ServeMux, apiBasePath string) {

	mux.HandleFunc(fmt.Sprintf("POST %s/link-clicks/track", apiBasePath), s.linkClickHandler.TrackLinkClick)
	mux.HandleFunc(fmt.Sprintf("GET %s/link-clicks", apiBasePath), s.linkClickHandler.GetLinkClicks)
	mux.HandleFunc(fmt.Sprintf("GET %s/link-clicks/stats", apiBasePath), s.linkClickHandler.GetLinkClickStats)
	mux.HandleFunc(fmt.Sprintf("DELETE %s/link-clicks", apiBasePath), s.linkClickHandler.ResetLinkClicks)
	mux.HandleFunc(fmt.Sprintf("DELETE %s/link-clicks/", apiBasePath), s.linkClickHandler.DeleteLinkClick)
}
