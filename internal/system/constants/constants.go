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

package constants

import "time"

// ApiBasePath is the base path every exposed service is mounted under.
const ApiBasePath = "/api/v1"

// Defaults for the AI analysis layer. Each can be overridden from the
// deployment configuration.
const (
	// DefaultProviderFailureThreshold is the number of consecutive
	// failures after which a provider is marked unhealthy.
	DefaultProviderFailureThreshold = 3

	// DefaultAnalysisTimeout bounds a single provider invocation.
	DefaultAnalysisTimeout = 30 * time.Second

	// DefaultProbeTimeout bounds a single liveness probe.
	DefaultProbeTimeout = 10 * time.Second

	// DefaultProbeInterval is how often the background worker
	// re-probes provider health.
	DefaultProbeInterval = 5 * time.Minute

	// DefaultSuggestionTimeout bounds the non-blocking edge-case
	// suggestion call made after a low-accuracy test run.
	DefaultSuggestionTimeout = 15 * time.Second

	// DefaultAnalysisCacheTTL is how long a memoized AI verdict for a
	// record pair stays valid.
	DefaultAnalysisCacheTTL = 24 * time.Hour
)

// MinimumAccuracyForSuggestions is the accuracy percentage below which
// a test run triggers AI-generated supplementary edge cases.
const MinimumAccuracyForSuggestions = 95

// InitialRuleVersion is assigned to newly drafted business rules.
const InitialRuleVersion = "1.0.0"
