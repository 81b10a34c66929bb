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

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aimodel "github.com/wso2/mdm-deduplication-service/internal/ai_analysis/model"
	rulemodel "github.com/wso2/mdm-deduplication-service/internal/business_rules/model"
	rulestore "github.com/wso2/mdm-deduplication-service/internal/business_rules/store"
	recordmodel "github.com/wso2/mdm-deduplication-service/internal/customer_records/model"
	pairmodel "github.com/wso2/mdm-deduplication-service/internal/duplicate_pairs/model"
	pairservice "github.com/wso2/mdm-deduplication-service/internal/duplicate_pairs/service"
	pairstore "github.com/wso2/mdm-deduplication-service/internal/duplicate_pairs/store"
)

// insertActiveRule seeds an already-activated rule directly through the
// store; the lifecycle path is covered separately.
func insertActiveRule(t *testing.T, store rulestore.BusinessRuleStoreInterface) rulemodel.BusinessRule {

	t.Helper()
	now := time.Now().UTC().Unix()
	rule := rulemodel.BusinessRule{
		RuleId:      uuid.New().String(),
		RuleName:    "Shared counterparty identifier",
		Description: "Merge pairs that carry the same TPI",
		Category:    rulemodel.CategoryBusinessRelationship,
		Priority:    500,
		Enabled:     true,
		Status:      rulemodel.StatusActive,
		Version:     "1.0.0",
		Condition: rulemodel.Condition{
			Kind: rulemodel.KindAll,
			Children: []rulemodel.Condition{
				{Kind: rulemodel.KindFieldEquals, Field: recordmodel.FieldTPI},
				{Kind: rulemodel.KindSimilarityAtLeast, Threshold: 0.8},
			},
		},
		Actions: []rulemodel.Action{
			{Effect: rulemodel.EffectMerge, Confidence: "high", Reason: "same counterparty identifier"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, store.InsertRule(rule))
	return rule
}

func Test_DuplicatePairDecision(t *testing.T) {

	ruleStore := rulestore.NewBusinessRuleStore()
	decisionService := pairservice.NewPairDecisionService(pairstore.NewDuplicatePairStore(), ruleStore,
		&verdictAnalyzer{verdict: aimodel.AnalysisVerdict{
			ConfidenceLevel: aimodel.ConfidenceLow,
			Recommendation:  aimodel.RecommendFlag,
			Reasoning:       "insufficient signal",
			Provider:        "openai-primary",
		}})

	rule := insertActiveRule(t, ruleStore)
	defer func() { _ = ruleStore.DeleteRuleCascade(rule.RuleId) }()

	sessionId := uuid.New().String()
	var pairId string

	t.Run("Create_pair", func(t *testing.T) {
		pair, err := decisionService.CreatePair(pairmodel.DuplicatePairAPIRequest{
			SessionId: sessionId,
			Record1: recordmodel.CustomerRecord{
				recordmodel.FieldCustomerName: "Nordwind Energie GmbH",
				recordmodel.FieldCity:         "Hamburg",
				recordmodel.FieldTPI:          "TPI-2087",
			},
			Record2: recordmodel.CustomerRecord{
				recordmodel.FieldCustomerName: "Nordwind Energie",
				recordmodel.FieldCity:         "Hamburg",
				recordmodel.FieldTPI:          "TPI-2087",
			},
			FuzzyScore: 0.91,
		})
		require.NoError(t, err)
		assert.Equal(t, pairmodel.PairPending, pair.Status)
		assert.Equal(t, 0.91, pair.OriginalScore)
		pairId = pair.PairId
	})

	t.Run("Evaluate_pair_applies_matching_rule", func(t *testing.T) {
		pair, err := decisionService.EvaluatePair(context.Background(), pairId, false)
		require.NoError(t, err)

		assert.Equal(t, rule.RuleId, pair.MatchedRuleId)
		assert.Equal(t, "high", pair.EnhancedConfidence)
		assert.Equal(t, 0.95, pair.EnhancedScore)
		assert.Equal(t, "same counterparty identifier", pair.ScoreChangeReason)
		assert.Equal(t, pairmodel.PairDuplicate, pair.Status)

		// The raw AI verdict is preserved next to the adjustment.
		assert.Equal(t, "low", pair.AIConfidence)
		assert.Equal(t, 0.91, pair.OriginalScore)
	})

	t.Run("Reevaluation_preserves_decided_status", func(t *testing.T) {
		_, err := decisionService.UpdatePairStatus(pairId, pairmodel.PairSkipped, "steward")
		require.NoError(t, err)

		pair, err := decisionService.EvaluatePair(context.Background(), pairId, true)
		require.NoError(t, err)
		assert.Equal(t, pairmodel.PairSkipped, pair.Status)
	})

	t.Run("List_pairs_by_session", func(t *testing.T) {
		pairs, err := decisionService.GetPairsBySession(sessionId, "")
		require.NoError(t, err)
		require.Len(t, pairs, 1)

		skipped, err := decisionService.GetPairsBySession(sessionId, pairmodel.PairSkipped)
		require.NoError(t, err)
		assert.Len(t, skipped, 1)
	})
}
