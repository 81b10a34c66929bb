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

package service

import (
	"sync"

	"github.com/wso2/mdm-deduplication-service/internal/system/config"
)

var (
	confidenceService ConfidenceAnalyzerInterface
	confidenceOnce    sync.Once
)

// GetConfidenceService returns the process-wide confidence analyzer.
// The service carries provider health state, so unlike the stateless
// rule services it must be a singleton.
func GetConfidenceService() ConfidenceAnalyzerInterface {

	confidenceOnce.Do(func() {
		confidenceService = NewConfidenceService(config.GetMDSRuntime().Config.AI)
	})
	return confidenceService
}

// OverrideConfidenceService replaces the singleton. Used by tests.
func OverrideConfidenceService(service ConfidenceAnalyzerInterface) {

	confidenceOnce.Do(func() {})
	confidenceService = service
}
