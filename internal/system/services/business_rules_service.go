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

	"github.com/wso2/mdm-deduplication-service/internal/business_rules/handler"
	"github.com/wso2/mdm-deduplication-service/internal/system/constants"
)

type BusinessRulesService struct {
	businessRulesHandler *handler.BusinessRulesHandler
}

func NewBusinessRulesService() *BusinessRulesService {
	return &BusinessRulesService{
		businessRulesHandler: handler.NewBusinessRulesHandler(),
	}
}

// Route handles all business rule lifecycle endpoints.
func (s *BusinessRulesService) Route(w http.ResponseWriter, r *http.Request) {

	path := strings.TrimPrefix(r.URL.Path, constants.ApiBasePath)
	path = strings.TrimSuffix(path, "/")
	method := r.Method

	switch {
	case method == http.MethodPost && path == "/business-rules":
		s.businessRulesHandler.CreateBusinessRule(w, r)

	case method == http.MethodGet && path == "/business-rules":
		s.businessRulesHandler.GetBusinessRules(w, r)

	case method == http.MethodPost && strings.HasPrefix(path, "/business-rules/") &&
		strings.HasSuffix(path, "/submit"):
		s.businessRulesHandler.SubmitForApproval(w, r)

	case method == http.MethodPost && strings.HasPrefix(path, "/business-rules/") &&
		strings.HasSuffix(path, "/approvals"):
		s.businessRulesHandler.RecordApproval(w, r)

	case method == http.MethodGet && strings.HasPrefix(path, "/business-rules/") &&
		strings.HasSuffix(path, "/approvals"):
		s.businessRulesHandler.GetApprovals(w, r)

	case method == http.MethodPost && strings.HasPrefix(path, "/business-rules/") &&
		strings.HasSuffix(path, "/test"):
		s.businessRulesHandler.TestBusinessRule(w, r)

	case method == http.MethodPost && strings.HasPrefix(path, "/business-rules/") &&
		strings.HasSuffix(path, "/disable"):
		s.businessRulesHandler.DisableBusinessRule(w, r)

	case method == http.MethodPost && strings.HasPrefix(path, "/business-rules/") &&
		strings.HasSuffix(path, "/enable"):
		s.businessRulesHandler.EnableBusinessRule(w, r)

	case method == http.MethodGet && strings.HasPrefix(path, "/business-rules/"):
		s.businessRulesHandler.GetBusinessRule(w, r)

	case method == http.MethodPatch && strings.HasPrefix(path, "/business-rules/"):
		s.businessRulesHandler.UpdateBusinessRule(w, r)

	case method == http.MethodDelete && strings.HasPrefix(path, "/business-rules/"):
		s.businessRulesHandler.DeleteBusinessRule(w, r)

	default:
		http.NotFound(w, r)
	}
}
