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

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	recordmodel "github.com/wso2/mdm-deduplication-service/internal/customer_records/model"
	"github.com/wso2/mdm-deduplication-service/internal/ai_analysis/model"
)

// AnalysisClientInterface is the contract every AI provider client
// implements: a bounded analysis call, a free-form completion used for
// edge-case suggestions, and a lightweight liveness probe.
type AnalysisClientInterface interface {
	Analyze(ctx context.Context, record1, record2 recordmodel.CustomerRecord, fuzzyScore float64) (*model.AnalysisVerdict, error)
	Suggest(ctx context.Context, prompt string) (string, error)
	Probe(ctx context.Context) error
}

// NewAnalysisClient creates a client for the given provider configuration.
func NewAnalysisClient(cfg model.ProviderConfig) (AnalysisClientInterface, error) {

	switch cfg.Type {
	case model.ProviderTypeOpenAI, model.ProviderTypeAzureOpenAI:
		return NewOpenAIClient(cfg)
	case model.ProviderTypeAnthropic:
		return NewAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", cfg.Type)
	}
}

// buildAnalysisPrompt renders the two records and the upstream fuzzy score
// into the duplicate-analysis prompt shared by all providers.
func buildAnalysisPrompt(record1, record2 recordmodel.CustomerRecord, fuzzyScore float64) (string, error) {

	r1JSON, err := json.Marshal(record1)
	if err != nil {
		return "", fmt.Errorf("failed to marshal record1: %w", err)
	}
	r2JSON, err := json.Marshal(record2)
	if err != nil {
		return "", fmt.Errorf("failed to marshal record2: %w", err)
	}

	return fmt.Sprintf(`You are a customer master-data deduplication analyst.
Two customer records were flagged as candidate duplicates by a fuzzy matching
step with an overall similarity of %.2f (0 to 1).

Record A: %s
Record B: %s

Decide whether these records describe the same real-world customer. Consider
that two records with matching names and addresses but different TPI numbers
usually represent different divisions of the same company and must NOT be
merged.

Respond with only a JSON object, no prose, in this exact shape:
{"confidence_level": "high|medium|low", "recommendation": "merge|reject|flag", "reasoning": "<one or two sentences>"}`,
		fuzzyScore, string(r1JSON), string(r2JSON)), nil
}

type verdictPayload struct {
	ConfidenceLevel string `json:"confidence_level"`
	Recommendation  string `json:"recommendation"`
	Reasoning       string `json:"reasoning"`
}

// parseVerdict parses a model response into a verdict. Markdown code
// fences around the JSON are tolerated.
func parseVerdict(raw, providerName string, fuzzyScore float64) (*model.AnalysisVerdict, error) {

	cleaned := stripCodeFences(raw)

	var payload verdictPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("malformed analysis response: %w", err)
	}

	confidence := model.ConfidenceLevel(strings.ToLower(payload.ConfidenceLevel))
	recommendation := model.Recommendation(strings.ToLower(payload.Recommendation))
	if !model.AllowedConfidenceLevels[confidence] {
		return nil, fmt.Errorf("invalid confidence level in response: %q", payload.ConfidenceLevel)
	}
	if !model.AllowedRecommendations[recommendation] {
		return nil, fmt.Errorf("invalid recommendation in response: %q", payload.Recommendation)
	}

	return &model.AnalysisVerdict{
		ConfidenceLevel: confidence,
		Recommendation:  recommendation,
		Reasoning:       payload.Reasoning,
		Provider:        providerName,
		Degraded:        false,
		FuzzyScore:      fuzzyScore,
		AnalyzedAt:      time.Now().UTC().Unix(),
	}, nil
}

// stripCodeFences removes a surrounding markdown code fence, if present.
func stripCodeFences(raw string) string {

	cleaned := strings.TrimSpace(raw)
	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	return strings.TrimSpace(cleaned)
}
