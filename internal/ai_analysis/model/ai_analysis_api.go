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

package model

import (
	recordmodel "github.com/wso2/mdm-deduplication-service/internal/customer_records/model"
)

// AnalyzeConfidenceRequest represents an ad hoc analysis request for a
// record pair.
type AnalyzeConfidenceRequest struct {
	Record1    recordmodel.CustomerRecord `json:"record1"`
	Record2    recordmodel.CustomerRecord `json:"record2"`
	FuzzyScore float64                    `json:"fuzzy_score"`
}

// SwitchProviderRequest represents a manual provider promotion request.
type SwitchProviderRequest struct {
	Name string `json:"name"`
}
