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
	"net/http"
	"strings"

	"github.com/wso2/mdm-deduplication-service/internal/ai_analysis/handler"
	"github.com/wso2/mdm-deduplication-service/internal/system/constants"
)

type AIAnalysisService struct {
	aiAnalysisHandler *handler.AIAnalysisHandler
}

func NewAIAnalysisService() *AIAnalysisService {
	return &AIAnalysisService{
		aiAnalysisHandler: handler.NewAIAnalysisHandler(),
	}
}

// Route handles all AI analysis endpoints.
func (s *AIAnalysisService) Route(w http.ResponseWriter, r *http.Request) {

	path := strings.TrimPrefix(r.URL.Path, constants.ApiBasePath)
	path = strings.TrimSuffix(path, "/")
	method := r.Method

	switch {
	case method == http.MethodPost && path == "/ai-analysis/analyze":
		s.aiAnalysisHandler.AnalyzeConfidence(w, r)

	case method == http.MethodGet && path == "/ai-analysis/providers":
		s.aiAnalysisHandler.GetProviders(w, r)

	case method == http.MethodPost && path == "/ai-analysis/providers/refresh":
		s.aiAnalysisHandler.RefreshHealth(w, r)

	case method == http.MethodPost && path == "/ai-analysis/providers/switch":
		s.aiAnalysisHandler.SwitchProvider(w, r)

	default:
		http.NotFound(w, r)
	}
}
