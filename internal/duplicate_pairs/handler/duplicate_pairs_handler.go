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

package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/wso2/mdm-deduplication-service/internal/duplicate_pairs/model"
	"github.com/wso2/mdm-deduplication-service/internal/duplicate_pairs/provider"
	errors2 "github.com/wso2/mdm-deduplication-service/internal/system/errors"
	"github.com/wso2/mdm-deduplication-service/internal/system/security"
	"github.com/wso2/mdm-deduplication-service/internal/system/utils"
)

type DuplicatePairsHandler struct{}

func NewDuplicatePairsHandler() *DuplicatePairsHandler {

	return &DuplicatePairsHandler{}
}

// CreateDuplicatePair handles registering a candidate pair.
func (dph *DuplicatePairsHandler) CreateDuplicatePair(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "duplicate_pairs:create"); err != nil {
		utils.HandleError(w, err)
		return
	}

	var request model.DuplicatePairAPIRequest
	if !decodePairBody(w, r, &request, "duplicate pair") {
		return
	}

	pairService := provider.NewDuplicatePairsProvider().GetPairDecisionService()
	pair, err := pairService.CreatePair(request)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, pair)
}

// GetDuplicatePair handles fetching a single pair.
func (dph *DuplicatePairsHandler) GetDuplicatePair(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "duplicate_pairs:view"); err != nil {
		utils.HandleError(w, err)
		return
	}

	pairService := provider.NewDuplicatePairsProvider().GetPairDecisionService()
	pair, err := pairService.GetPair(PairIdFromPath(r))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, pair)
}

// GetDuplicatePairs handles listing a session's pairs.
func (dph *DuplicatePairsHandler) GetDuplicatePairs(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "duplicate_pairs:view"); err != nil {
		utils.HandleError(w, err)
		return
	}

	pairService := provider.NewDuplicatePairsProvider().GetPairDecisionService()
	pairs, err := pairService.GetPairsBySession(r.URL.Query().Get("session_id"),
		model.PairStatus(r.URL.Query().Get("status")))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, pairs)
}

// EvaluateDuplicatePair handles running the decision engine on a pair.
func (dph *DuplicatePairsHandler) EvaluateDuplicatePair(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "duplicate_pairs:evaluate"); err != nil {
		utils.HandleError(w, err)
		return
	}

	var request model.EvaluatePairRequest
	if body, err := io.ReadAll(r.Body); err == nil && len(body) > 0 {
		if err := json.Unmarshal(body, &request); err != nil {
			clientError := errors2.NewClientError(errors2.ErrorMessage{
				Code:        errors2.BAD_REQUEST.Code,
				Message:     errors2.BAD_REQUEST.Message,
				Description: utils.HandleDecodeError(err, "evaluation request"),
			}, http.StatusBadRequest)
			utils.WriteErrorResponse(w, clientError)
			return
		}
	}

	pairService := provider.NewDuplicatePairsProvider().GetPairDecisionService()
	pair, err := pairService.EvaluatePair(r.Context(), PairIdFromPath(r), request.Force)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, pair)
}

// UpdateDuplicatePairStatus handles a manual disposition.
func (dph *DuplicatePairsHandler) UpdateDuplicatePairStatus(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "duplicate_pairs:update"); err != nil {
		utils.HandleError(w, err)
		return
	}

	var request model.PairStatusUpdateRequest
	if !decodePairBody(w, r, &request, "pair status update") {
		return
	}

	pairService := provider.NewDuplicatePairsProvider().GetPairDecisionService()
	pair, err := pairService.UpdatePairStatus(PairIdFromPath(r), request.Status,
		security.GetUserIDFromRequest(r))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, pair)
}

// PairIdFromPath extracts the pair id segment following "duplicate-pairs"
// in the request path.
func PairIdFromPath(r *http.Request) string {

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	for i, part := range parts {
		if part == "duplicate-pairs" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}

func decodePairBody(w http.ResponseWriter, r *http.Request, target interface{}, entity string) bool {

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, entity),
		}, http.StatusBadRequest)
		utils.WriteErrorResponse(w, clientError)
		return false
	}
	return true
}
