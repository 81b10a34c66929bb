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
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aimodel "github.com/wso2/mdm-deduplication-service/internal/ai_analysis/model"
	rulemodel "github.com/wso2/mdm-deduplication-service/internal/business_rules/model"
	recordmodel "github.com/wso2/mdm-deduplication-service/internal/customer_records/model"
	"github.com/wso2/mdm-deduplication-service/internal/duplicate_pairs/model"
	"github.com/wso2/mdm-deduplication-service/internal/system/log"
)

func TestMain(m *testing.M) {

	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

// fakePairStore is an in-memory DuplicatePairStoreInterface.
type fakePairStore struct {
	mu    sync.Mutex
	pairs map[string]*model.DuplicatePair
}

func newFakePairStore() *fakePairStore {

	return &fakePairStore{pairs: make(map[string]*model.DuplicatePair)}
}

func (f *fakePairStore) InsertPair(pair model.DuplicatePair) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := pair
	f.pairs[pair.PairId] = &copied
	return nil
}

func (f *fakePairStore) GetPair(pairId string) (*model.DuplicatePair, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pair, ok := f.pairs[pairId]
	if !ok {
		return nil, nil
	}
	copied := *pair
	return &copied, nil
}

func (f *fakePairStore) GetPairsBySession(sessionId string,
	status model.PairStatus) ([]model.DuplicatePair, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var pairs []model.DuplicatePair
	for _, pair := range f.pairs {
		if pair.SessionId != sessionId {
			continue
		}
		if status != "" && pair.Status != status {
			continue
		}
		pairs = append(pairs, *pair)
	}
	return pairs, nil
}

func (f *fakePairStore) UpdatePairAnalysis(pair model.DuplicatePair) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.pairs[pair.PairId]
	if !ok {
		return nil
	}
	status := existing.Status
	copied := pair
	copied.Status = status
	f.pairs[pair.PairId] = &copied
	return nil
}

func (f *fakePairStore) UpdatePairStatusIfPending(pairId string, status model.PairStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pair, ok := f.pairs[pairId]
	if !ok || pair.Status != model.PairPending {
		return false, nil
	}
	pair.Status = status
	return true, nil
}

func (f *fakePairStore) UpdatePairStatus(pairId string, status model.PairStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pair, ok := f.pairs[pairId]
	if !ok {
		return false, nil
	}
	pair.Status = status
	return true, nil
}

// stubRuleStore only serves active rules; the decision engine never
// touches the rest of the store surface.
type stubRuleStore struct {
	activeRules []rulemodel.BusinessRule
}

func (s *stubRuleStore) InsertRule(rulemodel.BusinessRule) error          { return nil }
func (s *stubRuleStore) GetRule(string) (*rulemodel.BusinessRule, error)  { return nil, nil }
func (s *stubRuleStore) GetRules() ([]rulemodel.BusinessRule, error)      { return nil, nil }
func (s *stubRuleStore) UpdateRule(rulemodel.BusinessRule) (int64, error) { return 0, nil }
func (s *stubRuleStore) UpdateRuleStatus(string, rulemodel.RuleStatus, rulemodel.RuleStatus,
	bool) (bool, error) {
	return false, nil
}
func (s *stubRuleStore) ActivateRuleIfFullyApproved(string, int) (bool, error) { return false, nil }
func (s *stubRuleStore) AppendRuleMetadata(string, rulemodel.MetadataEntry) error {
	return nil
}
func (s *stubRuleStore) CreatePendingApprovals(string, []int) error { return nil }
func (s *stubRuleStore) ReopenApprovals(string) error               { return nil }
func (s *stubRuleStore) ResolveApproval(rulemodel.ApprovalRecord) (bool, error) {
	return false, nil
}
func (s *stubRuleStore) GetApprovals(string) ([]rulemodel.ApprovalRecord, error) {
	return nil, nil
}
func (s *stubRuleStore) AppendTestResult(rulemodel.TestResult) error { return nil }
func (s *stubRuleStore) GetLatestTestResult(string) (*rulemodel.TestResult, error) {
	return nil, nil
}
func (s *stubRuleStore) InsertDeployment(rulemodel.RuleDeployment) error { return nil }
func (s *stubRuleStore) DeleteRuleCascade(string) error                  { return nil }

func (s *stubRuleStore) GetActiveRules() ([]rulemodel.BusinessRule, error) {
	return s.activeRules, nil
}

// stubAnalyzer returns a fixed verdict and counts invocations.
type stubAnalyzer struct {
	verdict      aimodel.AnalysisVerdict
	analyzeCalls int
}

func (s *stubAnalyzer) AnalyzeWithFallback(ctx context.Context, record1, record2 recordmodel.CustomerRecord,
	fuzzyScore float64) *aimodel.AnalysisVerdict {
	s.analyzeCalls++
	verdict := s.verdict
	return &verdict
}

func (s *stubAnalyzer) SuggestEdgeCases(ctx context.Context, category string, accuracy float64,
	failedCases []string) ([]aimodel.SuggestedTestCase, error) {
	return nil, nil
}

func (s *stubAnalyzer) RefreshHealth(ctx context.Context) []aimodel.ProviderStatus { return nil }
func (s *stubAnalyzer) SwitchProvider(name string) error                           { return nil }
func (s *stubAnalyzer) ProviderStatuses() []aimodel.ProviderStatus                 { return nil }

func divisionsRecords() (recordmodel.CustomerRecord, recordmodel.CustomerRecord) {

	record1 := recordmodel.CustomerRecord{
		recordmodel.FieldCustomerName: "Meridian Power Trading",
		recordmodel.FieldAddress:      "12 Harbour Road",
		recordmodel.FieldCity:         "Rotterdam",
		recordmodel.FieldCountry:      "NL",
		recordmodel.FieldTPI:          "TPI-4410",
	}
	record2 := recordmodel.CustomerRecord{
		recordmodel.FieldCustomerName: "Meridian Power Trading",
		recordmodel.FieldAddress:      "12 Harbour Road",
		recordmodel.FieldCity:         "Rotterdam",
		recordmodel.FieldCountry:      "NL",
		recordmodel.FieldTPI:          "TPI-4411",
	}
	return record1, record2
}

func divisionsRule(priority int) rulemodel.BusinessRule {

	return rulemodel.BusinessRule{
		RuleId:   "rule-divisions",
		RuleName: "Different divisions at same address",
		Priority: priority,
		Status:   rulemodel.StatusActive,
		Enabled:  true,
		Condition: rulemodel.Condition{
			Kind: rulemodel.KindAll,
			Children: []rulemodel.Condition{
				{Kind: rulemodel.KindFieldEquals, Field: recordmodel.FieldCustomerName},
				{Kind: rulemodel.KindFieldDiffers, Field: recordmodel.FieldTPI},
			},
		},
		Actions: []rulemodel.Action{
			{Effect: rulemodel.EffectReject, Confidence: "high", Reason: "separate divisions"},
		},
	}
}

func mergeVerdict() aimodel.AnalysisVerdict {

	return aimodel.AnalysisVerdict{
		ConfidenceLevel: aimodel.ConfidenceHigh,
		Recommendation:  aimodel.RecommendMerge,
		Reasoning:       "records describe the same counterparty",
		Provider:        "openai-primary",
	}
}

func createPendingPair(t *testing.T, service PairDecisionServiceInterface) *model.DuplicatePair {

	t.Helper()
	record1, record2 := divisionsRecords()
	pair, err := service.CreatePair(model.DuplicatePairAPIRequest{
		SessionId:  "session-1",
		Record1:    record1,
		Record2:    record2,
		FuzzyScore: 0.92,
	})
	require.NoError(t, err)
	return pair
}

func TestCreatePairSetsOriginalScore(t *testing.T) {

	service := NewPairDecisionService(newFakePairStore(), &stubRuleStore{}, &stubAnalyzer{})
	pair := createPendingPair(t, service)

	assert.Equal(t, model.PairPending, pair.Status)
	assert.Equal(t, 0.92, pair.OriginalScore)
	assert.Equal(t, 0.92, pair.EnhancedScore)
	assert.NotEmpty(t, pair.PairId)
}

func TestCreatePairValidation(t *testing.T) {

	service := NewPairDecisionService(newFakePairStore(), &stubRuleStore{}, &stubAnalyzer{})
	record1, record2 := divisionsRecords()

	_, err := service.CreatePair(model.DuplicatePairAPIRequest{
		Record1: record1, Record2: record2, FuzzyScore: 0.5,
	})
	assert.Error(t, err)

	_, err = service.CreatePair(model.DuplicatePairAPIRequest{
		SessionId: "s", Record1: record1, FuzzyScore: 0.5,
	})
	assert.Error(t, err)

	_, err = service.CreatePair(model.DuplicatePairAPIRequest{
		SessionId: "s", Record1: record1, Record2: record2, FuzzyScore: 1.2,
	})
	assert.Error(t, err)
}

func TestEvaluatePairWithoutRulesVerdictStands(t *testing.T) {

	analyzer := &stubAnalyzer{verdict: mergeVerdict()}
	service := NewPairDecisionService(newFakePairStore(), &stubRuleStore{}, analyzer)
	pair := createPendingPair(t, service)

	evaluated, err := service.EvaluatePair(context.Background(), pair.PairId, false)
	require.NoError(t, err)

	assert.Equal(t, "high", evaluated.AIConfidence)
	assert.Equal(t, "records describe the same counterparty", evaluated.AIReasoning)
	assert.Equal(t, 0.95, evaluated.EnhancedScore)
	assert.Equal(t, "high", evaluated.EnhancedConfidence)
	assert.Empty(t, evaluated.MatchedRuleId)
	assert.Equal(t, model.PairDuplicate, evaluated.Status)

	// The upstream score survives the adjustment.
	assert.Equal(t, 0.92, evaluated.OriginalScore)
}

func TestEvaluatePairFirstMatchingRuleWins(t *testing.T) {

	flagRule := divisionsRule(300)
	flagRule.RuleId = "rule-flag"
	flagRule.Actions = []rulemodel.Action{{Effect: rulemodel.EffectFlag, Confidence: "medium"}}

	rejectRule := divisionsRule(100)

	analyzer := &stubAnalyzer{verdict: mergeVerdict()}
	service := NewPairDecisionService(newFakePairStore(),
		&stubRuleStore{activeRules: []rulemodel.BusinessRule{flagRule, rejectRule}}, analyzer)
	pair := createPendingPair(t, service)

	evaluated, err := service.EvaluatePair(context.Background(), pair.PairId, false)
	require.NoError(t, err)

	assert.Equal(t, "rule-flag", evaluated.MatchedRuleId)
	assert.Equal(t, "medium", evaluated.EnhancedConfidence)
	assert.Equal(t, 0.80, evaluated.EnhancedScore)

	// Flag leaves the pair pending for manual review.
	assert.Equal(t, model.PairPending, evaluated.Status)
}

func TestEvaluatePairRuleOverridesVerdict(t *testing.T) {

	analyzer := &stubAnalyzer{verdict: mergeVerdict()}
	service := NewPairDecisionService(newFakePairStore(),
		&stubRuleStore{activeRules: []rulemodel.BusinessRule{divisionsRule(100)}}, analyzer)
	pair := createPendingPair(t, service)

	evaluated, err := service.EvaluatePair(context.Background(), pair.PairId, false)
	require.NoError(t, err)

	assert.Equal(t, "rule-divisions", evaluated.MatchedRuleId)
	assert.Equal(t, "separate divisions", evaluated.ScoreChangeReason)
	assert.Equal(t, model.PairNotDuplicate, evaluated.Status)

	// The raw AI verdict remains visible alongside the adjusted fields.
	assert.Equal(t, "high", evaluated.AIConfidence)
	require.NotNil(t, evaluated.AIAnalysis)
	assert.Equal(t, aimodel.RecommendMerge, evaluated.AIAnalysis.Recommendation)
}

func TestEvaluatePairMemoizesVerdict(t *testing.T) {

	analyzer := &stubAnalyzer{verdict: mergeVerdict()}
	pairStore := newFakePairStore()
	service := NewPairDecisionService(pairStore, &stubRuleStore{}, analyzer)
	pair := createPendingPair(t, service)

	_, err := service.EvaluatePair(context.Background(), pair.PairId, false)
	require.NoError(t, err)
	assert.Equal(t, 1, analyzer.analyzeCalls)

	// The persisted verdict is reused on re-evaluation.
	_, err = service.EvaluatePair(context.Background(), pair.PairId, false)
	require.NoError(t, err)
	assert.Equal(t, 1, analyzer.analyzeCalls)

	// Force bypasses the memoized verdict.
	_, err = service.EvaluatePair(context.Background(), pair.PairId, true)
	require.NoError(t, err)
	assert.Equal(t, 2, analyzer.analyzeCalls)
}

func TestEvaluatePairNeverOverwritesManualDecision(t *testing.T) {

	analyzer := &stubAnalyzer{verdict: mergeVerdict()}
	pairStore := newFakePairStore()
	service := NewPairDecisionService(pairStore, &stubRuleStore{}, analyzer)
	pair := createPendingPair(t, service)

	_, err := service.UpdatePairStatus(pair.PairId, model.PairSkipped, "steward")
	require.NoError(t, err)

	evaluated, err := service.EvaluatePair(context.Background(), pair.PairId, false)
	require.NoError(t, err)

	// The merge recommendation would move a pending pair to duplicate,
	// but the manual skip decision stands.
	assert.Equal(t, model.PairSkipped, evaluated.Status)
	assert.Equal(t, "high", evaluated.AIConfidence)
}

func TestUpdatePairStatusValidation(t *testing.T) {

	service := NewPairDecisionService(newFakePairStore(), &stubRuleStore{}, &stubAnalyzer{})
	pair := createPendingPair(t, service)

	_, err := service.UpdatePairStatus(pair.PairId, "postponed", "steward")
	assert.Error(t, err)

	_, err = service.UpdatePairStatus("missing", model.PairMerged, "steward")
	assert.Error(t, err)

	updated, err := service.UpdatePairStatus(pair.PairId, model.PairMerged, "steward")
	require.NoError(t, err)
	assert.Equal(t, model.PairMerged, updated.Status)
}

func TestGetPairsBySessionFiltersStatus(t *testing.T) {

	pairStore := newFakePairStore()
	service := NewPairDecisionService(pairStore, &stubRuleStore{}, &stubAnalyzer{})

	first := createPendingPair(t, service)
	createPendingPair(t, service)

	_, err := service.UpdatePairStatus(first.PairId, model.PairNotDuplicate, "steward")
	require.NoError(t, err)

	all, err := service.GetPairsBySession("session-1", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := service.GetPairsBySession("session-1", model.PairPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	_, err = service.GetPairsBySession("", "")
	assert.Error(t, err)

	_, err = service.GetPairsBySession("session-1", "postponed")
	assert.Error(t, err)
}

func TestScoreForConfidenceBands(t *testing.T) {

	assert.Equal(t, 0.95, ScoreForConfidence("high"))
	assert.Equal(t, 0.80, ScoreForConfidence("medium"))
	assert.Equal(t, 0.60, ScoreForConfidence("low"))
	assert.Equal(t, 0.60, ScoreForConfidence(""))
}
