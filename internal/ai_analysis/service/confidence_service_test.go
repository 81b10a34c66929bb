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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wso2/mdm-deduplication-service/internal/ai_analysis/client"
	"github.com/wso2/mdm-deduplication-service/internal/ai_analysis/model"
	recordmodel "github.com/wso2/mdm-deduplication-service/internal/customer_records/model"
)

type fakeAnalysisClient struct {
	name         string
	analyzeErr   error
	verdict      *model.AnalysisVerdict
	suggestErr   error
	suggestion   string
	probeErr     error
	analyzeCalls int
	suggestCalls int
	probeCalls   int
}

func (f *fakeAnalysisClient) Analyze(_ context.Context, _, _ recordmodel.CustomerRecord,
	fuzzyScore float64) (*model.AnalysisVerdict, error) {

	f.analyzeCalls++
	if f.analyzeErr != nil {
		return nil, f.analyzeErr
	}
	verdict := *f.verdict
	verdict.Provider = f.name
	verdict.FuzzyScore = fuzzyScore
	return &verdict, nil
}

func (f *fakeAnalysisClient) Suggest(_ context.Context, _ string) (string, error) {

	f.suggestCalls++
	if f.suggestErr != nil {
		return "", f.suggestErr
	}
	return f.suggestion, nil
}

func (f *fakeAnalysisClient) Probe(_ context.Context) error {

	f.probeCalls++
	return f.probeErr
}

func testRecords() (recordmodel.CustomerRecord, recordmodel.CustomerRecord) {

	record1 := recordmodel.CustomerRecord{
		"customer_name": "Acme Energy GmbH",
		"address":       "Industriestrasse 5",
		"city":          "Hamburg",
		"country":       "DE",
		"tpi":           "TPI-1001",
	}
	record2 := recordmodel.CustomerRecord{
		"customer_name": "ACME Energy",
		"address":       "Industriestr. 5",
		"city":          "Hamburg",
		"country":       "DE",
		"tpi":           "TPI-1001",
	}
	return record1, record2
}

func newTestService(registry *ProviderRegistry,
	clients map[string]client.AnalysisClientInterface) *ConfidenceService {

	return newConfidenceServiceWithClients(registry, clients,
		time.Second, time.Second, time.Minute)
}

func TestAnalyzeUsesFirstHealthyProvider(t *testing.T) {

	registry := NewProviderRegistry(testProviderConfigs(), 3)
	registry.RecordSuccess("openai-primary")
	registry.RecordSuccess("azure-secondary")

	primary := &fakeAnalysisClient{name: "openai-primary", verdict: &model.AnalysisVerdict{
		ConfidenceLevel: model.ConfidenceHigh,
		Recommendation:  model.RecommendMerge,
		Reasoning:       "same tpi, same address",
	}}
	secondary := &fakeAnalysisClient{name: "azure-secondary", verdict: &model.AnalysisVerdict{
		ConfidenceLevel: model.ConfidenceLow,
		Recommendation:  model.RecommendReject,
	}}
	service := newTestService(registry, map[string]client.AnalysisClientInterface{
		"openai-primary":  primary,
		"azure-secondary": secondary,
	})

	record1, record2 := testRecords()
	verdict := service.AnalyzeWithFallback(context.Background(), record1, record2, 0.93)

	assert.Equal(t, "openai-primary", verdict.Provider)
	assert.Equal(t, model.ConfidenceHigh, verdict.ConfidenceLevel)
	assert.False(t, verdict.Degraded)
	assert.Equal(t, 1, primary.analyzeCalls)
	assert.Equal(t, 0, secondary.analyzeCalls)
}

func TestAnalyzeSkipsUnhealthyAndStopsAtFirstSuccess(t *testing.T) {

	registry := NewProviderRegistry(testProviderConfigs(), 3)
	registry.MarkUnhealthy("openai-primary", errors.New("quota exceeded"))
	registry.RecordSuccess("azure-secondary")
	registry.RecordSuccess("anthropic-tertiary")

	primary := &fakeAnalysisClient{name: "openai-primary", verdict: &model.AnalysisVerdict{
		ConfidenceLevel: model.ConfidenceHigh, Recommendation: model.RecommendMerge,
	}}
	secondary := &fakeAnalysisClient{name: "azure-secondary", verdict: &model.AnalysisVerdict{
		ConfidenceLevel: model.ConfidenceMedium, Recommendation: model.RecommendFlag,
	}}
	tertiary := &fakeAnalysisClient{name: "anthropic-tertiary", verdict: &model.AnalysisVerdict{
		ConfidenceLevel: model.ConfidenceHigh, Recommendation: model.RecommendMerge,
	}}
	service := newTestService(registry, map[string]client.AnalysisClientInterface{
		"openai-primary":     primary,
		"azure-secondary":    secondary,
		"anthropic-tertiary": tertiary,
	})

	record1, record2 := testRecords()
	verdict := service.AnalyzeWithFallback(context.Background(), record1, record2, 0.85)

	assert.Equal(t, "azure-secondary", verdict.Provider)
	assert.Equal(t, 0, primary.analyzeCalls, "unhealthy provider must not be invoked")
	assert.Equal(t, 1, secondary.analyzeCalls)
	assert.Equal(t, 0, tertiary.analyzeCalls, "fallback stops at the first success")
}

func TestAnalyzeFallsBackThroughChain(t *testing.T) {

	registry := NewProviderRegistry(testProviderConfigs(), 3)
	registry.RecordSuccess("openai-primary")
	registry.RecordSuccess("azure-secondary")
	registry.RecordSuccess("anthropic-tertiary")

	primary := &fakeAnalysisClient{name: "openai-primary", analyzeErr: errors.New("timeout")}
	secondary := &fakeAnalysisClient{name: "azure-secondary", analyzeErr: errors.New("503")}
	tertiary := &fakeAnalysisClient{name: "anthropic-tertiary", verdict: &model.AnalysisVerdict{
		ConfidenceLevel: model.ConfidenceMedium,
		Recommendation:  model.RecommendFlag,
	}}
	service := newTestService(registry, map[string]client.AnalysisClientInterface{
		"openai-primary":     primary,
		"azure-secondary":    secondary,
		"anthropic-tertiary": tertiary,
	})

	record1, record2 := testRecords()
	verdict := service.AnalyzeWithFallback(context.Background(), record1, record2, 0.80)

	assert.Equal(t, "anthropic-tertiary", verdict.Provider)
	assert.Equal(t, 1, primary.analyzeCalls)
	assert.Equal(t, 1, secondary.analyzeCalls)

	snapshot := service.ProviderStatuses()
	assert.Equal(t, 1, snapshot[0].ConsecutiveErrors)
	assert.Equal(t, 1, snapshot[1].ConsecutiveErrors)
	assert.Equal(t, model.HealthHealthy, snapshot[2].Health)
}

func TestAnalyzeDegradedWhenAllProvidersFail(t *testing.T) {

	registry := NewProviderRegistry(testProviderConfigs(), 3)
	failing := errors.New("unreachable")
	clients := map[string]client.AnalysisClientInterface{
		"openai-primary":     &fakeAnalysisClient{name: "openai-primary", analyzeErr: failing},
		"azure-secondary":    &fakeAnalysisClient{name: "azure-secondary", analyzeErr: failing},
		"anthropic-tertiary": &fakeAnalysisClient{name: "anthropic-tertiary", analyzeErr: failing},
	}
	service := newTestService(registry, clients)

	record1, record2 := testRecords()
	verdict := service.AnalyzeWithFallback(context.Background(), record1, record2, 0.92)

	assert.True(t, verdict.Degraded)
	assert.Equal(t, model.ConfidenceHigh, verdict.ConfidenceLevel)
	assert.Equal(t, model.RecommendMerge, verdict.Recommendation)
	assert.Empty(t, verdict.Provider)
}

func TestAnalyzeMemoizesVerdictPerPair(t *testing.T) {

	registry := NewProviderRegistry(testProviderConfigs()[:1], 3)
	registry.RecordSuccess("openai-primary")
	primary := &fakeAnalysisClient{name: "openai-primary", verdict: &model.AnalysisVerdict{
		ConfidenceLevel: model.ConfidenceHigh, Recommendation: model.RecommendMerge,
	}}
	service := newTestService(registry, map[string]client.AnalysisClientInterface{
		"openai-primary": primary,
	})

	record1, record2 := testRecords()
	first := service.AnalyzeWithFallback(context.Background(), record1, record2, 0.93)
	second := service.AnalyzeWithFallback(context.Background(), record2, record1, 0.93)

	assert.Equal(t, first, second, "record order must not affect the cache key")
	assert.Equal(t, 1, primary.analyzeCalls)
}

func TestFallbackVerdictBands(t *testing.T) {

	testCases := []struct {
		name           string
		fuzzyScore     float64
		confidence     model.ConfidenceLevel
		recommendation model.Recommendation
	}{
		{"high band lower bound", 0.90, model.ConfidenceHigh, model.RecommendMerge},
		{"high band", 0.92, model.ConfidenceHigh, model.RecommendMerge},
		{"medium band lower bound", 0.70, model.ConfidenceMedium, model.RecommendFlag},
		{"medium band", 0.85, model.ConfidenceMedium, model.RecommendFlag},
		{"low band", 0.69, model.ConfidenceLow, model.RecommendReject},
		{"zero score", 0, model.ConfidenceLow, model.RecommendReject},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			verdict := FallbackVerdict(tc.fuzzyScore)
			assert.Equal(t, tc.confidence, verdict.ConfidenceLevel)
			assert.Equal(t, tc.recommendation, verdict.Recommendation)
			assert.True(t, verdict.Degraded)
			assert.Equal(t, tc.fuzzyScore, verdict.FuzzyScore)
		})
	}
}

func TestRefreshHealthProbesAllProviders(t *testing.T) {

	registry := NewProviderRegistry(testProviderConfigs(), 3)
	primary := &fakeAnalysisClient{name: "openai-primary"}
	secondary := &fakeAnalysisClient{name: "azure-secondary", probeErr: errors.New("401")}
	tertiary := &fakeAnalysisClient{name: "anthropic-tertiary"}
	service := newTestService(registry, map[string]client.AnalysisClientInterface{
		"openai-primary":     primary,
		"azure-secondary":    secondary,
		"anthropic-tertiary": tertiary,
	})

	statuses := service.RefreshHealth(context.Background())

	assert.Equal(t, model.HealthHealthy, statuses[0].Health)
	assert.Equal(t, model.HealthUnhealthy, statuses[1].Health)
	assert.Equal(t, model.HealthHealthy, statuses[2].Health)
	assert.Equal(t, 1, primary.probeCalls)
	assert.Equal(t, 1, secondary.probeCalls)
	assert.Equal(t, 1, tertiary.probeCalls)
}

func TestRefreshHealthRecoversUnhealthyProvider(t *testing.T) {

	registry := NewProviderRegistry(testProviderConfigs()[:1], 3)
	registry.MarkUnhealthy("openai-primary", errors.New("timeout"))
	primary := &fakeAnalysisClient{name: "openai-primary"}
	service := newTestService(registry, map[string]client.AnalysisClientInterface{
		"openai-primary": primary,
	})

	statuses := service.RefreshHealth(context.Background())

	assert.Equal(t, model.HealthHealthy, statuses[0].Health)
	assert.Equal(t, 0, statuses[0].ConsecutiveErrors)
}

func TestSwitchProviderUnknownName(t *testing.T) {

	registry := NewProviderRegistry(testProviderConfigs(), 3)
	service := newTestService(registry, map[string]client.AnalysisClientInterface{})

	assert.Error(t, service.SwitchProvider("missing"))
	assert.NoError(t, service.SwitchProvider("azure-secondary"))
}

func TestSuggestEdgeCasesParsesResponse(t *testing.T) {

	registry := NewProviderRegistry(testProviderConfigs()[:1], 3)
	registry.RecordSuccess("openai-primary")
	primary := &fakeAnalysisClient{name: "openai-primary", suggestion: "```json\n" + `[
		{"name": "different divisions share address",
		 "record1": {"customer_name": "acme energy", "tpi": "TPI-1"},
		 "record2": {"customer_name": "acme energy", "tpi": "TPI-2"},
		 "fuzzy_score": 0.97,
		 "expected_recommendation": "reject",
		 "expected_confidence": "high",
		 "should_trigger": true,
		 "rationale": "same name and address but distinct tpi"},
		{"name": "bogus entry", "expected_recommendation": "approve"}
	]` + "\n```"}
	service := newTestService(registry, map[string]client.AnalysisClientInterface{
		"openai-primary": primary,
	})

	suggestions, err := service.SuggestEdgeCases(context.Background(),
		"business-relationship", 80, []string{"shared tpi"})

	assert.NoError(t, err)
	assert.Len(t, suggestions, 1, "entries with unknown enum values are dropped")
	assert.Equal(t, "different divisions share address", suggestions[0].Name)
	assert.Equal(t, model.RecommendReject, suggestions[0].ExpectedRecommendation)
	assert.True(t, suggestions[0].ShouldTrigger)
}

func TestSuggestEdgeCasesAllProvidersFail(t *testing.T) {

	registry := NewProviderRegistry(testProviderConfigs()[:1], 3)
	primary := &fakeAnalysisClient{name: "openai-primary", suggestErr: errors.New("timeout")}
	service := newTestService(registry, map[string]client.AnalysisClientInterface{
		"openai-primary": primary,
	})

	suggestions, err := service.SuggestEdgeCases(context.Background(), "geographic", 60, nil)

	assert.Error(t, err)
	assert.Nil(t, suggestions)
}
