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

package config

import "sync"

// STSRuntime holds the runtime configuration for the tracking service.
type STSRuntime struct {
	STSHome string `yaml:"sts_home"`
	Config  Config `yaml:"config"`
}

var (
	runtimeConfig *STSRuntime
	once          sync.Once
)

// InitializeSTSRuntime initializes the STSRuntime configuration.
func InitializeSTSRuntime(stsHome string, config *Config) error {

	once.Do(func() {
		runtimeConfig = &STSRuntime{
			STSHome: stsHome,
			Config:  *config,
		}
	})

	return nil
}

// GetSTSRuntime returns the STSRuntime configuration.
func GetSTSRuntime() *STSRuntime {

	if runtimeConfig == nil {
		panic("STSRuntime is not initialized")
	}
	return runtimeConfig
}

// OverrideSTSRuntime replaces the runtime configuration. Used by tests.
func OverrideSTSRuntime(conf Config) {
	runtimeConfig = &STSRuntime{
		Config: conf,
	}
}
