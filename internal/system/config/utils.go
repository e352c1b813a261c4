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

import (
	"os"
	"path"

	"gopkg.in/yaml.v2"

	"github.com/meridian-watches/storefront-tracking-service/internal/system/constants"
)

// LoadConfig reads the deployment YAML, expands ${ENV} references and applies
// defaults for unset tracker tunables.
func LoadConfig(stsHome, filePath string) (*Config, error) {
	file, err := os.ReadFile(path.Join(stsHome, filePath))
	if err != nil {
		return nil, err
	}

	expanded := os.ExpandEnv(string(file))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Log.LogLevel == "" {
		cfg.Log.LogLevel = "info"
	}
	if cfg.Meta.BaseURL == "" {
		cfg.Meta.BaseURL = constants.DefaultGraphAPIBaseURL
	}
	if cfg.Meta.APIVersion == "" {
		cfg.Meta.APIVersion = constants.DefaultGraphAPIVersion
	}
	if cfg.Tracker.MaxRetries <= 0 {
		cfg.Tracker.MaxRetries = 3
	}
	if cfg.Tracker.RetryBaseDelayMs <= 0 {
		cfg.Tracker.RetryBaseDelayMs = 1000
	}
	if cfg.Tracker.RequestTimeoutSec <= 0 {
		cfg.Tracker.RequestTimeoutSec = 10
	}
	if cfg.Tracker.DedupTTLHours <= 0 {
		cfg.Tracker.DedupTTLHours = 24
	}
	if cfg.Tracker.DedupBackend == "" {
		cfg.Tracker.DedupBackend = constants.DedupBackendMemory
	}
	if cfg.Tracker.QueueDrainIntervalMins <= 0 {
		cfg.Tracker.QueueDrainIntervalMins = 15
	}
}
