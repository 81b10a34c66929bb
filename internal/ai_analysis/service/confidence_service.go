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
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/wso2/mdm-deduplication-service/internal/ai_analysis/client"
	"github.com/wso2/mdm-deduplication-service/internal/ai_analysis/model"
	recordmodel "github.com/wso2/mdm-deduplication-service/internal/customer_records/model"
	"github.com/wso2/mdm-deduplication-service/internal/system/cache"
	"github.com/wso2/mdm-deduplication-service/internal/system/config"
	"github.com/wso2/mdm-deduplication-service/internal/system/constants"
	apierrors "github.com/wso2/mdm-deduplication-service/internal/system/errors"
	"github.com/wso2/mdm-deduplication-service/internal/system/log"
)

// ConfidenceAnalyzerInterface defines the AI confidence analysis contract.
type ConfidenceAnalyzerInterface interface {
	AnalyzeWithFallback(ctx context.Context, record1, record2 recordmodel.CustomerRecord,
		fuzzyScore float64) *model.AnalysisVerdict
	SuggestEdgeCases(ctx context.Context, category string, accuracy float64,
		failedCases []string) ([]model.SuggestedTestCase, error)
	RefreshHealth(ctx context.Context) []model.ProviderStatus
	SwitchProvider(name string) error
	ProviderStatuses() []model.ProviderStatus
}

// ConfidenceService runs duplicate-confidence analysis over the prioritized
// provider chain and degrades to a fuzzy-score verdict when every provider
// is unavailable. AnalyzeWithFallback therefore never fails.
type ConfidenceService struct {
	registry        *ProviderRegistry
	clients         map[string]client.AnalysisClientInterface
	analysisTimeout time.Duration
	probeTimeout    time.Duration
	verdictCache    *cache.Cache
}

// NewConfidenceService builds the service from the deployment
// configuration. Providers whose client cannot be constructed (for
// example a missing API key) are kept in the registry but marked
// unhealthy so the status endpoint shows why they are skipped.
func NewConfidenceService(aiConfig config.AIConfig) *ConfidenceService {

	logger := log.GetLogger()

	configs := make([]model.ProviderConfig, 0, len(aiConfig.Providers))
	for _, p := range aiConfig.Providers {
		configs = append(configs, model.ProviderConfig{
			Name:      p.Name,
			Type:      model.ProviderType(p.Type),
			Priority:  p.Priority,
			Model:     p.Model,
			Endpoint:  p.Endpoint,
			APIKeyEnv: p.APIKeyEnv,
		})
	}

	failureThreshold := aiConfig.FailureThreshold
	if failureThreshold <= 0 {
		failureThreshold = constants.DefaultProviderFailureThreshold
	}
	registry := NewProviderRegistry(configs, failureThreshold)

	clients := make(map[string]client.AnalysisClientInterface, len(configs))
	for _, cfg := range configs {
		analysisClient, err := client.NewAnalysisClient(cfg)
		if err != nil {
			logger.Warn("AI provider client could not be initialized",
				log.String("provider", cfg.Name), log.Error(err))
			registry.MarkUnhealthy(cfg.Name, err)
			continue
		}
		clients[cfg.Name] = analysisClient
	}

	return &ConfidenceService{
		registry:        registry,
		clients:         clients,
		analysisTimeout: durationOrDefault(aiConfig.AnalysisTimeoutSecs, constants.DefaultAnalysisTimeout),
		probeTimeout:    durationOrDefault(aiConfig.ProbeTimeoutSecs, constants.DefaultProbeTimeout),
		verdictCache: cache.NewCache(
			durationOrDefault(aiConfig.AnalysisCacheTTLSecs, constants.DefaultAnalysisCacheTTL)),
	}
}

// newConfidenceServiceWithClients is the seam used by unit tests.
func newConfidenceServiceWithClients(registry *ProviderRegistry,
	clients map[string]client.AnalysisClientInterface,
	analysisTimeout, probeTimeout, cacheTTL time.Duration) *ConfidenceService {

	return &ConfidenceService{
		registry:        registry,
		clients:         clients,
		analysisTimeout: analysisTimeout,
		probeTimeout:    probeTimeout,
		verdictCache:    cache.NewCache(cacheTTL),
	}
}

// AnalyzeWithFallback resolves a confidence verdict for a record pair.
// Providers are tried in registry order; the first success wins and is
// memoized. When the whole chain fails the verdict is derived from the
// fuzzy score alone and marked degraded.
func (s *ConfidenceService) AnalyzeWithFallback(ctx context.Context,
	record1, record2 recordmodel.CustomerRecord, fuzzyScore float64) *model.AnalysisVerdict {

	logger := log.GetLogger()

	cacheKey := pairFingerprint(record1, record2, fuzzyScore)
	if cached, found := s.verdictCache.Get(cacheKey); found {
		if verdict, ok := cached.(*model.AnalysisVerdict); ok {
			return verdict
		}
	}

	for _, candidate := range s.registry.Candidates() {
		analysisClient, ok := s.clients[candidate.Name]
		if !ok {
			continue
		}

		callCtx, cancel := context.WithTimeout(ctx, s.analysisTimeout)
		verdict, err := analysisClient.Analyze(callCtx, record1, record2, fuzzyScore)
		cancel()

		if err != nil {
			if s.registry.RecordFailure(candidate.Name, err) {
				logger.Warn("AI provider marked unhealthy after consecutive failures",
					log.String("provider", candidate.Name), log.Error(err))
			} else {
				logger.Debug("AI provider call failed, trying next candidate",
					log.String("provider", candidate.Name), log.Error(err))
			}
			continue
		}

		s.registry.RecordSuccess(candidate.Name)
		s.verdictCache.Set(cacheKey, verdict)
		return verdict
	}

	logger.Warn("All AI providers unavailable, returning degraded fuzzy-score verdict",
		log.Float("fuzzyScore", fuzzyScore))
	verdict := FallbackVerdict(fuzzyScore)
	s.verdictCache.Set(cacheKey, verdict)
	return verdict
}

// FallbackVerdict derives a confidence verdict from the fuzzy score alone.
// Used when no AI provider can be reached, and flagged as degraded so the
// decision audit trail distinguishes it from a real analysis.
func FallbackVerdict(fuzzyScore float64) *model.AnalysisVerdict {

	verdict := &model.AnalysisVerdict{
		Reasoning:  "Derived from fuzzy match score; no AI provider was reachable.",
		Degraded:   true,
		FuzzyScore: fuzzyScore,
		AnalyzedAt: time.Now().UTC().Unix(),
	}
	switch {
	case fuzzyScore >= 0.90:
		verdict.ConfidenceLevel = model.ConfidenceHigh
		verdict.Recommendation = model.RecommendMerge
	case fuzzyScore >= 0.70:
		verdict.ConfidenceLevel = model.ConfidenceMedium
		verdict.Recommendation = model.RecommendFlag
	default:
		verdict.ConfidenceLevel = model.ConfidenceLow
		verdict.Recommendation = model.RecommendReject
	}
	return verdict
}

// SuggestEdgeCases asks the first reachable provider for supplementary
// edge-case test cases after a low-accuracy test run. Unlike analysis,
// this call has no degraded fallback; an error means no suggestions.
func (s *ConfidenceService) SuggestEdgeCases(ctx context.Context, category string,
	accuracy float64, failedCases []string) ([]model.SuggestedTestCase, error) {

	prompt := buildSuggestionPrompt(category, accuracy, failedCases)

	var lastErr error
	for _, candidate := range s.registry.Candidates() {
		analysisClient, ok := s.clients[candidate.Name]
		if !ok {
			continue
		}

		callCtx, cancel := context.WithTimeout(ctx, s.analysisTimeout)
		raw, err := analysisClient.Suggest(callCtx, prompt)
		cancel()

		if err != nil {
			lastErr = err
			s.registry.RecordFailure(candidate.Name, err)
			continue
		}

		suggestions, err := parseSuggestions(raw)
		if err != nil {
			lastErr = err
			continue
		}
		s.registry.RecordSuccess(candidate.Name)
		return suggestions, nil
	}
	return nil, apierrors.NewProviderUnavailableError(
		"no provider produced edge-case suggestions", lastErr)
}

// RefreshHealth probes every configured provider and returns the updated
// statuses. A successful probe resets the provider's error count; a
// failed probe marks it unhealthy immediately.
func (s *ConfidenceService) RefreshHealth(ctx context.Context) []model.ProviderStatus {

	logger := log.GetLogger()

	for _, status := range s.registry.Snapshot() {
		name := status.Config.Name
		analysisClient, ok := s.clients[name]
		if !ok {
			s.registry.MarkUnhealthy(name, fmt.Errorf("client not initialized"))
			continue
		}

		probeCtx, cancel := context.WithTimeout(ctx, s.probeTimeout)
		err := analysisClient.Probe(probeCtx)
		cancel()

		if err != nil {
			logger.Warn("AI provider probe failed", log.String("provider", name), log.Error(err))
			s.registry.MarkUnhealthy(name, err)
			continue
		}
		s.registry.RecordSuccess(name)
	}
	return s.registry.Snapshot()
}

// SwitchProvider promotes the named provider to the front of the chain.
func (s *ConfidenceService) SwitchProvider(name string) error {

	if err := s.registry.Promote(name); err != nil {
		return apierrors.NewNotFoundError(apierrors.PROVIDER_NOT_FOUND, err.Error())
	}
	return nil
}

// ProviderStatuses returns the current health view of every provider.
func (s *ConfidenceService) ProviderStatuses() []model.ProviderStatus {

	return s.registry.Snapshot()
}

// pairFingerprint builds a cache key from both records and the score.
// Record order does not matter; (A, B) and (B, A) hash the same.
func pairFingerprint(record1, record2 recordmodel.CustomerRecord, fuzzyScore float64) string {

	r1, _ := json.Marshal(record1)
	r2, _ := json.Marshal(record2)
	a, b := string(r1), string(r2)
	if a > b {
		a, b = b, a
	}
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%.4f", a, b, fuzzyScore)))
	return hex.EncodeToString(sum[:])
}

func buildSuggestionPrompt(category string, accuracy float64, failedCases []string) string {

	var sb strings.Builder
	sb.WriteString("You are a customer master-data deduplication analyst.\n")
	fmt.Fprintf(&sb, "A deduplication business rule in the %q category scored %.1f%% accuracy ", category, accuracy)
	sb.WriteString("on its test suite, below the required bar.\n")
	if len(failedCases) > 0 {
		sb.WriteString("Failed test cases: " + strings.Join(failedCases, ", ") + "\n")
	}
	sb.WriteString(`Suggest 2 to 4 additional edge-case test cases that would expose weaknesses
in such a rule. Customer records are JSON objects with keys customer_name,
address, city, country and tpi.

Respond with only a JSON array, no prose, of objects in this exact shape:
[{"name": "...", "record1": {...}, "record2": {...}, "fuzzy_score": 0.0,
"expected_recommendation": "merge|reject|flag", "expected_confidence": "high|medium|low",
"should_trigger": true, "rationale": "..."}]`)
	return sb.String()
}

// parseSuggestions validates a suggestion response. Entries with unknown
// recommendation or confidence values are dropped rather than failing
// the whole batch.
func parseSuggestions(raw string) ([]model.SuggestedTestCase, error) {

	cleaned := stripSuggestionFences(raw)

	var suggestions []model.SuggestedTestCase
	if err := json.Unmarshal([]byte(cleaned), &suggestions); err != nil {
		return nil, fmt.Errorf("malformed suggestion response: %w", err)
	}

	valid := make([]model.SuggestedTestCase, 0, len(suggestions))
	for _, s := range suggestions {
		if s.Name == "" {
			continue
		}
		if !model.AllowedRecommendations[s.ExpectedRecommendation] {
			continue
		}
		if s.ExpectedConfidence != "" && !model.AllowedConfidenceLevels[s.ExpectedConfidence] {
			continue
		}
		valid = append(valid, s)
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("suggestion response contained no usable test cases")
	}
	return valid, nil
}

func stripSuggestionFences(raw string) string {

	cleaned := strings.TrimSpace(raw)
	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	return strings.TrimSpace(cleaned)
}

func durationOrDefault(seconds int, fallback time.Duration) time.Duration {

	if seconds <= 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}
