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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aimodel "github.com/wso2/mdm-deduplication-service/internal/ai_analysis/model"
	"github.com/wso2/mdm-deduplication-service/internal/business_rules/model"
	"github.com/wso2/mdm-deduplication-service/internal/business_rules/service"
	"github.com/wso2/mdm-deduplication-service/internal/business_rules/store"
	recordmodel "github.com/wso2/mdm-deduplication-service/internal/customer_records/model"
)

// verdictAnalyzer pins the AI layer to a fixed verdict so integration
// runs never leave the test network.
type verdictAnalyzer struct {
	verdict aimodel.AnalysisVerdict
}

func (v *verdictAnalyzer) AnalyzeWithFallback(ctx context.Context, record1, record2 recordmodel.CustomerRecord,
	fuzzyScore float64) *aimodel.AnalysisVerdict {
	verdict := v.verdict
	return &verdict
}

func (v *verdictAnalyzer) SuggestEdgeCases(ctx context.Context, category string, accuracy float64,
	failedCases []string) ([]aimodel.SuggestedTestCase, error) {
	return nil, nil
}

func (v *verdictAnalyzer) RefreshHealth(ctx context.Context) []aimodel.ProviderStatus { return nil }
func (v *verdictAnalyzer) SwitchProvider(name string) error                           { return nil }
func (v *verdictAnalyzer) ProviderStatuses() []aimodel.ProviderStatus                 { return nil }

func divisionsRuleRequest() model.BusinessRuleAPIRequest {

	return model.BusinessRuleAPIRequest{
		RuleName:    "Different divisions at same address",
		Description: "Reject pairs of distinct divisions sharing premises",
		Category:    model.CategoryBusinessRelationship,
		Priority:    100,
		Condition: model.Condition{
			Kind: model.KindAll,
			Children: []model.Condition{
				{Kind: model.KindFieldEquals, Field: recordmodel.FieldCustomerName},
				{Kind: model.KindFieldEquals, Field: recordmodel.FieldAddress},
				{Kind: model.KindFieldDiffers, Field: recordmodel.FieldTPI},
				{Kind: model.KindSimilarityAtLeast, Threshold: 0.9},
			},
		},
		Actions: []model.Action{
			{Effect: model.EffectReject, Confidence: "high", Reason: "separate divisions share premises"},
		},
	}
}

func Test_BusinessRuleLifecycle(t *testing.T) {

	ruleStore := store.NewBusinessRuleStore()
	lifecycleService := service.NewRuleLifecycleService(ruleStore)
	testingService := service.NewRuleTestingService(ruleStore, &verdictAnalyzer{})

	var ruleId string

	t.Run("Create_draft_rule", func(t *testing.T) {
		rule, err := lifecycleService.CreateRule(divisionsRuleRequest(), "alex")
		require.NoError(t, err)
		assert.Equal(t, model.StatusDraft, rule.Status)
		assert.False(t, rule.Enabled)
		ruleId = rule.RuleId
	})

	t.Run("Submission_requires_test_run", func(t *testing.T) {
		_, err := lifecycleService.SubmitForApproval(ruleId,
			model.SubmitForApprovalRequest{SubmittedBy: "alex"})
		require.Error(t, err)
	})

	t.Run("Test_rule_against_category_defaults", func(t *testing.T) {
		result, err := testingService.TestRule(ruleId)
		require.NoError(t, err)
		assert.Equal(t, 3, result.Total)
		assert.Equal(t, 67, result.Accuracy)
		assert.NotEmpty(t, result.ResultId)
	})

	t.Run("Submit_for_approval", func(t *testing.T) {
		rule, err := lifecycleService.SubmitForApproval(ruleId,
			model.SubmitForApprovalRequest{SubmittedBy: "alex", Reason: "ready"})
		require.NoError(t, err)
		assert.Equal(t, model.StatusPendingApproval, rule.Status)

		approvals, err := lifecycleService.GetApprovals(ruleId)
		require.NoError(t, err)
		require.Len(t, approvals, 3)
	})

	t.Run("Approve_all_levels_activates", func(t *testing.T) {
		for _, level := range []int{1, 2} {
			rule, err := lifecycleService.RecordApproval(ruleId, model.ApprovalDecisionRequest{
				Level: level, Approver: "approver", Decision: model.ApprovalApproved,
			})
			require.NoError(t, err)
			assert.Equal(t, model.StatusPendingApproval, rule.Status)
		}

		rule, err := lifecycleService.RecordApproval(ruleId, model.ApprovalDecisionRequest{
			Level: 3, Approver: "governance", Decision: model.ApprovalApproved,
		})
		require.NoError(t, err)
		assert.Equal(t, model.StatusActive, rule.Status)
		assert.True(t, rule.Enabled)

		active, err := lifecycleService.GetActiveRules()
		require.NoError(t, err)
		found := false
		for _, activeRule := range active {
			if activeRule.RuleId == ruleId {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("Replay_of_resolved_level_is_noop", func(t *testing.T) {
		// An approval is CAS-guarded in SQL; a second decision for an
		// already-resolved level changes nothing.
		rule, err := lifecycleService.GetRule(ruleId)
		require.NoError(t, err)
		require.Equal(t, model.StatusActive, rule.Status)

		approvals, err := lifecycleService.GetApprovals(ruleId)
		require.NoError(t, err)
		assert.Equal(t, "governance", approvals[2].Approver)
	})

	t.Run("Disable_and_enable", func(t *testing.T) {
		rule, err := lifecycleService.DisableRule(ruleId, "operator")
		require.NoError(t, err)
		assert.Equal(t, model.StatusDisabled, rule.Status)

		rule, err = lifecycleService.EnableRule(ruleId, "operator")
		require.NoError(t, err)
		assert.Equal(t, model.StatusActive, rule.Status)
	})

	t.Run("Delete_requires_matching_confirmation", func(t *testing.T) {
		err := lifecycleService.DeleteRule(ruleId, "wrong name", "alex")
		require.Error(t, err)

		err = lifecycleService.DeleteRule(ruleId, "Different divisions at same address", "alex")
		require.NoError(t, err)

		_, err = lifecycleService.GetRule(ruleId)
		require.Error(t, err)
	})
}
