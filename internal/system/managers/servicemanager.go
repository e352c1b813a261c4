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

package managers

import (
	"net/http"

	"github.com/meridian-watches/storefront-tracking-service/internal/conversions/service"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/services"
)

type ServiceManagerInterface interface {
	RegisterServices(apiBasePath string) error
}

type ServiceManager struct {
	mux     *http.ServeMux
	tracker *service.Tracker
}

// NewServiceManager creates a new instance of ServiceManager.
func NewServiceManager(mux *http.ServeMux, tracker *service.Tracker) ServiceManagerInterface {

	return &ServiceManager{
		mux:     mux,
		tracker: tracker,
	}
}

func (sm *ServiceManager) RegisterServices(apiBasePath string) error {

	services.NewConversionEventService(sm.mux, apiBasePath, sm.tracker)
	services.NewAnalyticsService(sm.mux, apiBasePath)
	services.NewLinkClickService(sm.mux, apiBasePath)
	services.NewHealthService(sm.mux)

	return nil
}
