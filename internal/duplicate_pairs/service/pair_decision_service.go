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
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	aimodel "github.com/wso2/mdm-deduplication-service/internal/ai_analysis/model"
	aiservice "github.com/wso2/mdm-deduplication-service/internal/ai_analysis/service"
	rulemodel "github.com/wso2/mdm-deduplication-service/internal/business_rules/model"
	ruleservice "github.com/wso2/mdm-deduplication-service/internal/business_rules/service"
	rulestore "github.com/wso2/mdm-deduplication-service/internal/business_rules/store"
	recordmodel "github.com/wso2/mdm-deduplication-service/internal/customer_records/model"
	"github.com/wso2/mdm-deduplication-service/internal/duplicate_pairs/model"
	"github.com/wso2/mdm-deduplication-service/internal/duplicate_pairs/store"
	errors2 "github.com/wso2/mdm-deduplication-service/internal/system/errors"
	"github.com/wso2/mdm-deduplication-service/internal/system/log"
)

// PairDecisionServiceInterface defines the pair decision engine.
type PairDecisionServiceInterface interface {
	CreatePair(request model.DuplicatePairAPIRequest) (*model.DuplicatePair, error)
	GetPair(pairId string) (*model.DuplicatePair, error)
	GetPairsBySession(sessionId string, status model.PairStatus) ([]model.DuplicatePair, error)
	EvaluatePair(ctx context.Context, pairId string, force bool) (*model.DuplicatePair, error)
	UpdatePairStatus(pairId string, status model.PairStatus, actor string) (*model.DuplicatePair, error)
}

// PairDecisionService combines the AI verdict with the active rule set
// to produce each pair's enhanced confidence, score and status.
type PairDecisionService struct {
	pairStore store.DuplicatePairStoreInterface
	ruleStore rulestore.BusinessRuleStoreInterface
	analyzer  aiservice.ConfidenceAnalyzerInterface
}

// GetPairDecisionService creates a new instance of PairDecisionService.
func GetPairDecisionService() PairDecisionServiceInterface {

	return &PairDecisionService{
		pairStore: store.NewDuplicatePairStore(),
		ruleStore: rulestore.NewBusinessRuleStore(),
		analyzer:  aiservice.GetConfidenceService(),
	}
}

// NewPairDecisionService creates a decision service over explicit
// dependencies.
func NewPairDecisionService(pairStore store.DuplicatePairStoreInterface,
	ruleStore rulestore.BusinessRuleStoreInterface,
	analyzer aiservice.ConfidenceAnalyzerInterface) PairDecisionServiceInterface {

	return &PairDecisionService{
		pairStore: pairStore,
		ruleStore: ruleStore,
		analyzer:  analyzer,
	}
}

// CreatePair registers a candidate pair delivered by upstream blocking.
func (ps *PairDecisionService) CreatePair(request model.DuplicatePairAPIRequest) (*model.DuplicatePair, error) {

	if request.SessionId == "" {
		return nil, errors2.NewValidationError("session_id is required")
	}
	if len(request.Record1) == 0 || len(request.Record2) == 0 {
		return nil, errors2.NewValidationError("both records are required")
	}
	if request.FuzzyScore < 0 || request.FuzzyScore > 1 {
		return nil, errors2.NewValidationError("fuzzy_score must be within [0,1]")
	}

	now := time.Now().UTC().Unix()
	pair := model.DuplicatePair{
		PairId:        uuid.New().String(),
		SessionId:     request.SessionId,
		Record1:       request.Record1,
		Record2:       request.Record2,
		FuzzyScore:    request.FuzzyScore,
		Status:        model.PairPending,
		OriginalScore: request.FuzzyScore,
		EnhancedScore: request.FuzzyScore,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := ps.pairStore.InsertPair(pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// GetPair fetches a pair by id.
func (ps *PairDecisionService) GetPair(pairId string) (*model.DuplicatePair, error) {

	pair, err := ps.pairStore.GetPair(pairId)
	if err != nil {
		return nil, err
	}
	if pair == nil {
		return nil, pairNotFound(pairId)
	}
	return pair, nil
}

// GetPairsBySession lists a session's pairs, optionally filtered by
// status.
func (ps *PairDecisionService) GetPairsBySession(sessionId string,
	status model.PairStatus) ([]model.DuplicatePair, error) {

	if sessionId == "" {
		return nil, errors2.NewValidationError("session_id is required")
	}
	if status != "" && !model.AllowedPairStatuses[status] {
		return nil, errors2.NewValidationError(fmt.Sprintf("unknown pair status: %s", status))
	}
	return ps.pairStore.GetPairsBySession(sessionId, status)
}

// EvaluatePair resolves a pair's disposition: AI verdict (memoized on
// the pair unless forced), then the first matching active rule by
// priority. The status is only written while the pair is still pending;
// manual decisions are never overwritten.
func (ps *PairDecisionService) EvaluatePair(ctx context.Context, pairId string,
	force bool) (*model.DuplicatePair, error) {

	pair, err := ps.pairStore.GetPair(pairId)
	if err != nil {
		return nil, err
	}
	if pair == nil {
		return nil, pairNotFound(pairId)
	}

	verdict := pair.AIAnalysis
	if verdict == nil || force {
		verdict = ps.analyzer.AnalyzeWithFallback(ctx, pair.Record1, pair.Record2, pair.FuzzyScore)
	}

	activeRules, err := ps.ruleStore.GetActiveRules()
	if err != nil {
		return nil, err
	}

	decision := ApplyRules(pair.Record1, pair.Record2, pair.FuzzyScore, verdict, activeRules)

	pair.AIConfidence = string(verdict.ConfidenceLevel)
	pair.AIReasoning = verdict.Reasoning
	pair.AIAnalysis = verdict
	pair.EnhancedScore = decision.EnhancedScore
	pair.EnhancedConfidence = decision.Confidence
	pair.ScoreChangeReason = decision.Reason
	pair.MatchedRuleId = decision.MatchedRuleId

	if err := ps.pairStore.UpdatePairAnalysis(*pair); err != nil {
		return nil, err
	}

	if nextStatus, ok := statusForRecommendation(decision.Recommendation); ok {
		moved, err := ps.pairStore.UpdatePairStatusIfPending(pairId, nextStatus)
		if err != nil {
			return nil, err
		}
		if moved {
			pair.Status = nextStatus
		}
	}

	log.GetLogger().Audit(log.AuditEvent{
		ActionID:      log.ActionEvaluatePair,
		InitiatorType: log.InitiatorTypeSystem,
		TargetType:    log.TargetTypeDuplicatePair,
		TargetID:      pairId,
	})
	return pair, nil
}

// UpdatePairStatus records a manual disposition for a pair.
func (ps *PairDecisionService) UpdatePairStatus(pairId string, status model.PairStatus,
	actor string) (*model.DuplicatePair, error) {

	if !model.AllowedPairStatuses[status] {
		return nil, errors2.NewValidationError(fmt.Sprintf("unknown pair status: %s", status))
	}

	moved, err := ps.pairStore.UpdatePairStatus(pairId, status)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, pairNotFound(pairId)
	}

	log.GetLogger().Audit(log.AuditEvent{
		ActionID:      log.ActionUpdatePairStatus,
		InitiatorType: log.InitiatorTypeUser,
		InitiatorID:   actor,
		TargetType:    log.TargetTypeDuplicatePair,
		TargetID:      pairId,
	})
	return ps.GetPair(pairId)
}

// Decision is the outcome of rule application over an AI verdict.
type Decision struct {
	Recommendation string
	Confidence     string
	EnhancedScore  float64
	Reason         string
	MatchedRuleId  string
}

// ApplyRules matches the active rules, ordered by descending priority,
// against the pair. The first matching rule's action determines the
// decision; with no match the AI (or fallback) verdict stands.
func ApplyRules(record1, record2 recordmodel.CustomerRecord, fuzzyScore float64,
	verdict *aimodel.AnalysisVerdict, activeRules []rulemodel.BusinessRule) Decision {

	for _, rule := range activeRules {
		outcome := ruleservice.EvaluateRule(rule, record1, record2, fuzzyScore)
		if !outcome.Triggered {
			continue
		}

		reason := outcome.Reason
		if reason == "" {
			reason = fmt.Sprintf("adjusted by rule %q", rule.RuleName)
		}
		return Decision{
			Recommendation: outcome.Recommendation,
			Confidence:     outcome.Confidence,
			EnhancedScore:  ScoreForConfidence(outcome.Confidence),
			Reason:         reason,
			MatchedRuleId:  rule.RuleId,
		}
	}

	return Decision{
		Recommendation: string(verdict.Recommendation),
		Confidence:     string(verdict.ConfidenceLevel),
		EnhancedScore:  ScoreForConfidence(string(verdict.ConfidenceLevel)),
	}
}

// ScoreForConfidence maps a categorical confidence onto the numeric
// scale used for session-level ranking.
func ScoreForConfidence(confidence string) float64 {

	switch confidence {
	case "high":
		return 0.95
	case "medium":
		return 0.80
	default:
		return 0.60
	}
}

// statusForRecommendation translates a decision into the pair status it
// implies. Flag keeps the pair pending for manual review.
func statusForRecommendation(recommendation string) (model.PairStatus, bool) {

	switch recommendation {
	case string(aimodel.RecommendMerge):
		return model.PairDuplicate, true
	case string(aimodel.RecommendReject):
		return model.PairNotDuplicate, true
	default:
		return "", false
	}
}

func pairNotFound(pairId string) error {

	return errors2.NewNotFoundError(errors2.PAIR_NOT_FOUND,
		fmt.Sprintf("No duplicate pair exists with id: %s", pairId))
}
