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
	JWTSecret          string   `yaml:"jwt_secret"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

type DataSourceConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// AIProviderConfig describes one entry in the prioritized provider list.
// Lower priority values are tried first.
type AIProviderConfig struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	Priority  int    `yaml:"priority"`
	Model     string `yaml:"model"`
	Endpoint  string `yaml:"endpoint"`
	APIKeyEnv string `yaml:"api_key_env"`
}

type AIConfig struct {
	Providers            []AIProviderConfig `yaml:"providers"`
	AnalysisTimeoutSecs  int                `yaml:"analysis_timeout_seconds"`
	ProbeTimeoutSecs     int                `yaml:"probe_timeout_seconds"`
	ProbeIntervalSecs    int                `yaml:"probe_interval_seconds"`
	FailureThreshold     int                `yaml:"failure_threshold"`
	AnalysisCacheTTLSecs int                `yaml:"analysis_cache_ttl_seconds"`
}

type Config struct {
	Addr       AddrConfig       `yaml:"addr"`
	Log        LogConfig        `yaml:"log"`
	Auth       AuthConfig       `yaml:"auth"`
	DataSource DataSourceConfig `yaml:"datasource"`
	AI         AIConfig         `yaml:"ai"`
}
