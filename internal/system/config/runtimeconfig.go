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

// MDSRuntime holds the runtime configuration for the MDM deduplication server.
type MDSRuntime struct {
	MDSHome string `yaml:"mds_home"`
	Config  Config `yaml:"config"`
}

var (
	runtimeConfig *MDSRuntime
	once          sync.Once
)

// InitializeMDSRuntime initializes the MDSRuntime configuration.
func InitializeMDSRuntime(mdsHome string, config *Config) error {

	once.Do(func() {
		runtimeConfig = &MDSRuntime{
			MDSHome: mdsHome,
			Config:  *config,
		}
	})

	return nil
}

// GetMDSRuntime returns the MDSRuntime configuration.
func GetMDSRuntime() *MDSRuntime {

	if runtimeConfig == nil {
		panic("MDSRuntime is not initialized")
	}
	return runtimeConfig
}

// OverrideMDSRuntime replaces the runtime configuration. Used by tests.
func OverrideMDSRuntime(conf Config) {
	runtimeConfig = &MDSRuntime{
		Config: conf,
	}
}
