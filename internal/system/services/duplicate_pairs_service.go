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

	"github.com/wso2/mdm-deduplication-service/internal/duplicate_pairs/handler"
	"github.com/wso2/mdm-deduplication-service/internal/system/constants"
)

type DuplicatePairsService struct {
	duplicatePairsHandler *handler.DuplicatePairsHandler
}

func NewDuplicatePairsService() *DuplicatePairsService {
	return &DuplicatePairsService{
		duplicatePairsHandler: handler.NewDuplicatePairsHandler(),
	}
}

// Route handles all duplicate pair endpoints.
func (s *DuplicatePairsService) Route(w http.ResponseWriter, r *http.Request) {

	path := strings.TrimPrefix(r.URL.Path, constants.ApiBasePath)
	path = strings.TrimSuffix(path, "/")
	method := r.Method

	switch {
	case method == http.MethodPost && path == "/duplicate-pairs":
		s.duplicatePairsHandler.CreateDuplicatePair(w, r)

	case method == http.MethodGet && path == "/duplicate-pairs":
		s.duplicatePairsHandler.GetDuplicatePairs(w, r)

	case method == http.MethodPost && strings.HasPrefix(path, "/duplicate-pairs/") &&
		strings.HasSuffix(path, "/evaluate"):
		s.duplicatePairsHandler.EvaluateDuplicatePair(w, r)

	case method == http.MethodPut && strings.HasPrefix(path, "/duplicate-pairs/") &&
		strings.HasSuffix(path, "/status"):
		s.duplicatePairsHandler.UpdateDuplicatePairStatus(w, r)

	case method == http.MethodGet && strings.HasPrefix(path, "/duplicate-pairs/"):
		s.duplicatePairsHandler.GetDuplicatePair(w, r)

	default:
		http.NotFound(w, r)
	}
}
