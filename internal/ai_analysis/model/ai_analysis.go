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
	recordmodel "github.com/wso2/mdm-deduplication-service/internal/customer_records/model"
)

// ProviderType identifies the fixed set of supported AI provider kinds.
type ProviderType string

const (
	ProviderTypeOpenAI      ProviderType = "openai"
	ProviderTypeAzureOpenAI ProviderType = "azure_openai"
	ProviderTypeAnthropic   ProviderType = "anthropic"
)

// AllowedProviderTypes defines the valid set of provider types.
var AllowedProviderTypes = map[ProviderType]bool{
	ProviderTypeOpenAI:      true,
	ProviderTypeAzureOpenAI: true,
	ProviderTypeAnthropic:   true,
}

// ProviderHealth is the liveness state of a provider.
type ProviderHealth string

const (
	HealthUnknown   ProviderHealth = "unknown"
	HealthHealthy   ProviderHealth = "healthy"
	HealthUnhealthy ProviderHealth = "unhealthy"
)

// ConfidenceLevel is the categorical verdict of an analysis.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// Recommendation is the suggested disposition for a candidate pair.
type Recommendation string

const (
	RecommendMerge  Recommendation = "merge"
	RecommendReject Recommendation = "reject"
	RecommendFlag   Recommendation = "flag"
)

// AllowedConfidenceLevels defines the valid set of confidence levels.
var AllowedConfidenceLevels = map[ConfidenceLevel]bool{
	ConfidenceHigh:   true,
	ConfidenceMedium: true,
	ConfidenceLow:    true,
}

// AllowedRecommendations defines the valid set of recommendations.
var AllowedRecommendations = map[Recommendation]bool{
	RecommendMerge:  true,
	RecommendReject: true,
	RecommendFlag:   true,
}

// ProviderConfig is the static configuration of one provider in the
// prioritized list. Lower priority values are tried first.
type ProviderConfig struct {
	Name      string       `json:"name"`
	Type      ProviderType `json:"type"`
	Priority  int          `json:"priority"`
	Model     string       `json:"model"`
	Endpoint  string       `json:"endpoint,omitempty"`
	APIKeyEnv string       `json:"api_key_env,omitempty"`
}

// ProviderStatus is the mutable health view of one provider.
type ProviderStatus struct {
	Config            ProviderConfig `json:"config"`
	Health            ProviderHealth `json:"health"`
	ConsecutiveErrors int            `json:"consecutive_errors"`
	LastChecked       int64          `json:"last_checked"`
	LastError         string         `json:"last_error,omitempty"`
}

// AnalysisVerdict is the confidence verdict for a candidate pair. When no
// provider could be reached the verdict is derived from the fuzzy score
// alone and Degraded is set so audits can tell the two apart.
type AnalysisVerdict struct {
	ConfidenceLevel ConfidenceLevel `json:"confidence_level"`
	Recommendation  Recommendation  `json:"recommendation"`
	Reasoning       string          `json:"reasoning"`
	Provider        string          `json:"provider,omitempty"`
	Degraded        bool            `json:"degraded"`
	FuzzyScore      float64         `json:"fuzzy_score"`
	AnalyzedAt      int64           `json:"analyzed_at"`
}

// SuggestedTestCase is an AI-generated edge case attached to a low
// accuracy test run. Suggestions are advisory and never persisted as
// authoritative test cases.
type SuggestedTestCase struct {
	Name                   string                     `json:"name"`
	Record1                recordmodel.CustomerRecord `json:"record1"`
	Record2                recordmodel.CustomerRecord `json:"record2"`
	FuzzyScore             float64                    `json:"fuzzy_score"`
	ExpectedRecommendation Recommendation             `json:"expected_recommendation"`
	ExpectedConfidence     ConfidenceLevel            `json:"expected_confidence"`
	ShouldTrigger          bool                       `json:"should_trigger"`
	Rationale              string                     `json:"rationale,omitempty"`
}
