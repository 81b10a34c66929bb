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
	aimodel "github.com/wso2/mdm-deduplication-service/internal/ai_analysis/model"
	recordmodel "github.com/wso2/mdm-deduplication-service/internal/customer_records/model"
)

// PairStatus is the disposition of a candidate pair. A pair is mutable
// while pending and terminal once a decision moves it elsewhere.
type PairStatus string

const (
	PairPending      PairStatus = "pending"
	PairDuplicate    PairStatus = "duplicate"
	PairMerged       PairStatus = "merged"
	PairNotDuplicate PairStatus = "not_duplicate"
	PairSkipped      PairStatus = "skipped"
)

// AllowedPairStatuses defines the valid set of pair statuses.
var AllowedPairStatuses = map[PairStatus]bool{
	PairPending:      true,
	PairDuplicate:    true,
	PairMerged:       true,
	PairNotDuplicate: true,
	PairSkipped:      true,
}

// DuplicatePair is one candidate pair inside a deduplication session.
// OriginalScore is the upstream fuzzy-derived score and is never
// mutated; EnhancedScore carries the post-rule adjustment. AIAnalysis
// memoizes the verdict so repeat evaluations skip the providers.
type DuplicatePair struct {
	PairId             string                     `json:"pair_id"`
	SessionId          string                     `json:"session_id"`
	Record1            recordmodel.CustomerRecord `json:"record1"`
	Record2            recordmodel.CustomerRecord `json:"record2"`
	FuzzyScore         float64                    `json:"fuzzy_score"`
	Status             PairStatus                 `json:"status"`
	AIConfidence       string                     `json:"ai_confidence,omitempty"`
	AIReasoning        string                     `json:"ai_reasoning,omitempty"`
	AIAnalysis         *aimodel.AnalysisVerdict   `json:"ai_analysis,omitempty"`
	OriginalScore      float64                    `json:"original_score"`
	EnhancedScore      float64                    `json:"enhanced_score"`
	EnhancedConfidence string                     `json:"enhanced_confidence,omitempty"`
	ScoreChangeReason  string                     `json:"score_change_reason,omitempty"`
	MatchedRuleId      string                     `json:"matched_rule_id,omitempty"`
	CreatedAt          int64                      `json:"created_at"`
	UpdatedAt          int64                      `json:"updated_at"`
}

// DuplicatePairAPIRequest registers a candidate pair produced by
// upstream blocking.
type DuplicatePairAPIRequest struct {
	SessionId  string                     `json:"session_id"`
	Record1    recordmodel.CustomerRecord `json:"record1"`
	Record2    recordmodel.CustomerRecord `json:"record2"`
	FuzzyScore float64                    `json:"fuzzy_score"`
}

// EvaluatePairRequest triggers decision-engine evaluation. Force skips
// the memoized AI verdict.
type EvaluatePairRequest struct {
	Force bool `json:"force,omitempty"`
}

// PairStatusUpdateRequest records a manual disposition.
type PairStatusUpdateRequest struct {
	Status PairStatus `json:"status"`
}
