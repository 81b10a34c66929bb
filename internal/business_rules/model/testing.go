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

// TestCase is one declared or auto-generated check for a rule. Input
// records may miss fields; the evaluator tolerates absence.
type TestCase struct {
	Name       string                     `json:"name"`
	Record1    recordmodel.CustomerRecord `json:"record1"`
	Record2    recordmodel.CustomerRecord `json:"record2"`
	FuzzyScore float64                    `json:"fuzzy_score"`
	Expected   ExpectedOutcome            `json:"expected"`
	Tags       []string                   `json:"tags,omitempty"`
}

// ExpectedOutcome is what a test case requires the rule to produce.
// Recommendation and confidence are only compared when the case expects
// the rule to trigger.
type ExpectedOutcome struct {
	Recommendation string `json:"recommendation,omitempty"`
	Confidence     string `json:"confidence,omitempty"`
	ShouldTrigger  bool   `json:"should_trigger"`
}

// CaseResult is the per-case detail inside a TestResult.
type CaseResult struct {
	Name                 string `json:"name"`
	Passed               bool   `json:"passed"`
	Triggered            bool   `json:"triggered"`
	ActualRecommendation string `json:"actual_recommendation,omitempty"`
	ActualConfidence     string `json:"actual_confidence,omitempty"`
	ExecutionMicros      int64  `json:"execution_micros"`
	FailureDetail        string `json:"failure_detail,omitempty"`
}

// TestResult is the aggregate outcome of one test run for a rule.
// SuggestedCases is only populated when accuracy fell below the bar and
// the AI layer was reachable; the suggestions are advisory.
type TestResult struct {
	ResultId       string                      `json:"result_id"`
	RuleId         string                      `json:"rule_id"`
	Passed         int                         `json:"passed"`
	Failed         int                         `json:"failed"`
	Total          int                         `json:"total"`
	Accuracy       int                         `json:"accuracy"`
	AvgExecutionMs float64                     `json:"avg_execution_ms"`
	CaseResults    []CaseResult                `json:"case_results"`
	SuggestedCases []aimodel.SuggestedTestCase `json:"suggested_cases,omitempty"`
	ExecutedAt     int64                       `json:"executed_at"`
}
