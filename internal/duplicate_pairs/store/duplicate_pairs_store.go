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

package store

import (
	"encoding/json"
	"fmt"
	"time"

	aimodel "github.com/wso2/mdm-deduplication-service/internal/ai_analysis/model"
	"github.com/wso2/mdm-deduplication-service/internal/duplicate_pairs/model"
	"github.com/wso2/mdm-deduplication-service/internal/system/database/provider"
	"github.com/wso2/mdm-deduplication-service/internal/system/database/scripts"
	errors2 "github.com/wso2/mdm-deduplication-service/internal/system/errors"
	"github.com/wso2/mdm-deduplication-service/internal/system/log"
)

// DuplicatePairStoreInterface is the persistence contract of the pair
// decision engine.
type DuplicatePairStoreInterface interface {
	InsertPair(pair model.DuplicatePair) error
	GetPair(pairId string) (*model.DuplicatePair, error)
	GetPairsBySession(sessionId string, status model.PairStatus) ([]model.DuplicatePair, error)
	UpdatePairAnalysis(pair model.DuplicatePair) error
	UpdatePairStatusIfPending(pairId string, status model.PairStatus) (bool, error)
	UpdatePairStatus(pairId string, status model.PairStatus) (bool, error)
}

// DuplicatePairStore is the postgres-backed implementation.
type DuplicatePairStore struct{}

// NewDuplicatePairStore creates a new instance of DuplicatePairStore.
func NewDuplicatePairStore() DuplicatePairStoreInterface {

	return &DuplicatePairStore{}
}

// InsertPair registers a new candidate pair.
func (s *DuplicatePairStore) InsertPair(pair model.DuplicatePair) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return pairDBInitError(fmt.Sprintf("adding duplicate pair: %s", pair.PairId), err)
	}
	defer dbClient.Close()

	record1, err := json.Marshal(pair.Record1)
	if err != nil {
		return pairMarshalError("record1", err)
	}
	record2, err := json.Marshal(pair.Record2)
	if err != nil {
		return pairMarshalError("record2", err)
	}

	query := scripts.InsertDuplicatePair[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteMutation(query, pair.PairId, pair.SessionId, string(record1), string(record2),
		pair.FuzzyScore, string(pair.Status), pair.OriginalScore, pair.EnhancedScore, pair.CreatedAt,
		pair.UpdatedAt)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while adding duplicate pair: %s", pair.PairId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_DUPLICATE_PAIR.Code,
			Message:     errors2.UPDATE_DUPLICATE_PAIR.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// GetPair fetches a pair by id. Returns (nil, nil) when absent.
func (s *DuplicatePairStore) GetPair(pairId string) (*model.DuplicatePair, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return nil, pairDBInitError(fmt.Sprintf("fetching duplicate pair: %s", pairId), err)
	}
	defer dbClient.Close()

	query := scripts.GetDuplicatePairByID[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, pairId)
	if err != nil {
		return nil, pairFetchError(fmt.Sprintf("fetching duplicate pair: %s", pairId), err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return buildPairFromRow(results[0])
}

// GetPairsBySession fetches a session's pairs, optionally filtered by
// status, ordered by enhanced score descending.
func (s *DuplicatePairStore) GetPairsBySession(sessionId string,
	status model.PairStatus) ([]model.DuplicatePair, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return nil, pairDBInitError(fmt.Sprintf("fetching pairs for session: %s", sessionId), err)
	}
	defer dbClient.Close()

	dbType := provider.NewDBProvider().GetDBType()
	var results []map[string]interface{}
	if status == "" {
		results, err = dbClient.ExecuteQuery(scripts.GetDuplicatePairsBySession[dbType], sessionId)
	} else {
		results, err = dbClient.ExecuteQuery(scripts.GetDuplicatePairsBySessionAndStatus[dbType],
			sessionId, string(status))
	}
	if err != nil {
		return nil, pairFetchError(fmt.Sprintf("fetching pairs for session: %s", sessionId), err)
	}

	pairs := make([]model.DuplicatePair, 0, len(results))
	for _, row := range results {
		pair, err := buildPairFromRow(row)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, *pair)
	}
	return pairs, nil
}

// UpdatePairAnalysis stores the AI verdict and the rule-adjusted fields.
func (s *DuplicatePairStore) UpdatePairAnalysis(pair model.DuplicatePair) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return pairDBInitError(fmt.Sprintf("updating analysis for pair: %s", pair.PairId), err)
	}
	defer dbClient.Close()

	analysis, err := json.Marshal(pair.AIAnalysis)
	if err != nil {
		return pairMarshalError("AI analysis", err)
	}

	query := scripts.UpdatePairAnalysis[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteMutation(query, pair.PairId, pair.AIConfidence, pair.AIReasoning, string(analysis),
		pair.EnhancedScore, pair.EnhancedConfidence, pair.ScoreChangeReason, pair.MatchedRuleId,
		time.Now().UTC().Unix())
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while updating analysis for pair: %s", pair.PairId)
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_DUPLICATE_PAIR.Code,
			Message:     errors2.UPDATE_DUPLICATE_PAIR.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// UpdatePairStatusIfPending moves a pair only while it is still pending,
// so a decision already made by a human is never overwritten.
func (s *DuplicatePairStore) UpdatePairStatusIfPending(pairId string,
	status model.PairStatus) (bool, error) {

	return s.updateStatus(scripts.UpdatePairStatusIfPending, pairId, status)
}

// UpdatePairStatus records a manual disposition regardless of the
// current status.
func (s *DuplicatePairStore) UpdatePairStatus(pairId string, status model.PairStatus) (bool, error) {

	return s.updateStatus(scripts.UpdatePairStatus, pairId, status)
}

func (s *DuplicatePairStore) updateStatus(queryMap map[string]string, pairId string,
	status model.PairStatus) (bool, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return false, pairDBInitError(fmt.Sprintf("updating status for pair: %s", pairId), err)
	}
	defer dbClient.Close()

	query := queryMap[provider.NewDBProvider().GetDBType()]
	rowsAffected, err := dbClient.ExecuteMutation(query, pairId, string(status), time.Now().UTC().Unix())
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while updating status for pair: %s", pairId)
		return false, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_DUPLICATE_PAIR.Code,
			Message:     errors2.UPDATE_DUPLICATE_PAIR.Message,
			Description: errorMsg,
		}, err)
	}
	return rowsAffected == 1, nil
}

func buildPairFromRow(row map[string]interface{}) (*model.DuplicatePair, error) {

	pair := model.DuplicatePair{
		PairId:             asString(row["pair_id"]),
		SessionId:          asString(row["session_id"]),
		FuzzyScore:         asFloat64(row["fuzzy_score"]),
		Status:             model.PairStatus(asString(row["status"])),
		AIConfidence:       asString(row["ai_confidence"]),
		AIReasoning:        asString(row["ai_reasoning"]),
		OriginalScore:      asFloat64(row["original_score"]),
		EnhancedScore:      asFloat64(row["enhanced_score"]),
		EnhancedConfidence: asString(row["enhanced_confidence"]),
		ScoreChangeReason:  asString(row["score_change_reason"]),
		MatchedRuleId:      asString(row["matched_rule_id"]),
		CreatedAt:          asInt64(row["created_at"]),
		UpdatedAt:          asInt64(row["updated_at"]),
	}
	if err := unmarshalPairColumn(row["record1"], &pair.Record1, "record1"); err != nil {
		return nil, err
	}
	if err := unmarshalPairColumn(row["record2"], &pair.Record2, "record2"); err != nil {
		return nil, err
	}
	if raw := asString(row["ai_analysis"]); raw != "" && raw != "null" {
		var verdict aimodel.AnalysisVerdict
		if err := unmarshalPairColumn(row["ai_analysis"], &verdict, "AI analysis"); err != nil {
			return nil, err
		}
		pair.AIAnalysis = &verdict
	}
	return &pair, nil
}

func unmarshalPairColumn(value interface{}, target interface{}, what string) error {

	raw := asString(value)
	if raw == "" || raw == "null" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UNMARSHAL_JSON.Code,
			Message:     errors2.UNMARSHAL_JSON.Message,
			Description: fmt.Sprintf("Failed to parse %s column", what),
		}, err)
	}
	return nil
}

func pairDBInitError(description string, err error) error {

	log.GetLogger().Debug("Failed to get database client while "+description, log.Error(err))
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.DB_CLIENT_INIT.Code,
		Message:     errors2.DB_CLIENT_INIT.Message,
		Description: "Failed to get database client while " + description,
	}, err)
}

func pairFetchError(description string, err error) error {

	log.GetLogger().Debug("Query failed while "+description, log.Error(err))
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.FETCH_DUPLICATE_PAIR.Code,
		Message:     errors2.FETCH_DUPLICATE_PAIR.Message,
		Description: "Query failed while " + description,
	}, err)
}

func pairMarshalError(what string, err error) error {

	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.MARSHAL_JSON.Code,
		Message:     errors2.MARSHAL_JSON.Message,
		Description: fmt.Sprintf("Failed to serialize %s", what),
	}, err)
}

// Column accessors shared with the rules store shape.

func asString(value interface{}) string {

	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func asInt64(value interface{}) int64 {

	switch v := value.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}

func asFloat64(value interface{}) float64 {

	switch v := value.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case []byte:
		var parsed float64
		_, _ = fmt.Sscanf(string(v), "%f", &parsed)
		return parsed
	default:
		return 0
	}
}
