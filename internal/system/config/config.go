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

type AddrConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type LogConfig struct {
	LogLevel string `yaml:"log_level"`
}

type AuthConfig struct {
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	JWTSecret          string   `yaml:"jwt_secret"`
	AdminUsername      string   `yaml:"admin_username"`
	AdminPassword      string   `yaml:"admin_password"`
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// MetaConfig holds the Conversions API credentials. BaseURL and APIVersion
// have working defaults and exist mainly so tests can point the delivery
// client at a local server.
type MetaConfig struct {
	PixelID     string `yaml:"pixel_id"`
	AccessToken string `yaml:"access_token"`
	APIVersion  string `yaml:"api_version"`
	BaseURL     string `yaml:"base_url"`
}

// TrackerConfig tunes the delivery engine. Zero values are replaced with
// defaults when the configuration is loaded.
type TrackerConfig struct {
	MaxRetries             int    `yaml:"max_retries"`
	RetryBaseDelayMs       int    `yaml:"retry_base_delay_ms"`
	RequestTimeoutSec      int    `yaml:"request_timeout_sec"`
	DedupTTLHours          int    `yaml:"dedup_ttl_hours"`
	DedupBackend           string `yaml:"dedup_backend"`
	QueueDrainIntervalMins int    `yaml:"queue_drain_interval_mins"`
}

type Config struct {
	Addr    AddrConfig    `yaml:"addr"`
	Log     LogConfig     `yaml:"log"`
	Auth    AuthConfig    `yaml:"auth"`
	Mongo   MongoConfig   `yaml:"mongo"`
	Redis   RedisConfig   `yaml:"redis"`
	Meta    MetaConfig    `yaml:"meta"`
	Tracker TrackerConfig `yaml:"tracker"`
}
