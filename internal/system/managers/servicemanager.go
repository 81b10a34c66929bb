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
	"strings"

	"github.com/wso2/mdm-deduplication-service/internal/system/services"
)

type ServiceManagerInterface interface {
	RegisterServices(apiBasePath string) error
}

type ServiceManager struct {
	mux *http.ServeMux
}

// NewServiceManager creates a new instance of ServiceManager.
func NewServiceManager(mux *http.ServeMux) ServiceManagerInterface {

	return &ServiceManager{
		mux: mux,
	}
}

// RegisterServices mounts every exposed service under the API base path
// and the unauthenticated health endpoints at the root.
func (sm *ServiceManager) RegisterServices(apiBasePath string) error {

	businessRulesService := services.NewBusinessRulesService()
	duplicatePairsService := services.NewDuplicatePairsService()
	aiAnalysisService := services.NewAIAnalysisService()
	healthService := services.NewHealthService()

	// Single dispatcher for all authenticated services.
	sm.mux.HandleFunc(apiBasePath+"/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, apiBasePath)
		path = strings.TrimSuffix(path, "/")

		switch {
		case strings.HasPrefix(path, "/business-rules"):
			businessRulesService.Route(w, r)
		case strings.HasPrefix(path, "/duplicate-pairs"):
			duplicatePairsService.Route(w, r)
		case strings.HasPrefix(path, "/ai-analysis"):
			aiAnalysisService.Route(w, r)
		default:
			http.NotFound(w, r)
		}
	})

	sm.mux.HandleFunc("/health", healthService.Route)
	sm.mux.HandleFunc("/ready", healthService.Route)
	return nil
}
