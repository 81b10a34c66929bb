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
	"math"
	"time"

	"github.com/google/uuid"

	aiservice "github.com/wso2/mdm-deduplication-service/internal/ai_analysis/service"
	"github.com/wso2/mdm-deduplication-service/internal/business_rules/model"
	"github.com/wso2/mdm-deduplication-service/internal/business_rules/store"
	recordmodel "github.com/wso2/mdm-deduplication-service/internal/customer_records/model"
	"github.com/wso2/mdm-deduplication-service/internal/system/constants"
	errors2 "github.com/wso2/mdm-deduplication-service/internal/system/errors"
	"github.com/wso2/mdm-deduplication-service/internal/system/log"
)

// RuleTestingServiceInterface defines the rule testing framework.
type RuleTestingServiceInterface interface {
	TestRule(ruleId string) (*model.TestResult, error)
	RunTestCases(rule model.BusinessRule) *model.TestResult
}

// RuleTestingService executes a rule's test cases and scores accuracy.
type RuleTestingService struct {
	ruleStore store.BusinessRuleStoreInterface
	analyzer  aiservice.ConfidenceAnalyzerInterface
}

// GetRuleTestingService creates a new instance of RuleTestingService.
func GetRuleTestingService() RuleTestingServiceInterface {

	return &RuleTestingService{
		ruleStore: store.NewBusinessRuleStore(),
		analyzer:  aiservice.GetConfidenceService(),
	}
}

// NewRuleTestingService creates a testing service over explicit
// dependencies.
func NewRuleTestingService(ruleStore store.BusinessRuleStoreInterface,
	analyzer aiservice.ConfidenceAnalyzerInterface) RuleTestingServiceInterface {

	return &RuleTestingService{
		ruleStore: ruleStore,
		analyzer:  analyzer,
	}
}

// TestRule loads a rule, executes its test cases and persists the
// result. A failing test case is a normal outcome; only infrastructure
// faults surface as errors.
func (ts *RuleTestingService) TestRule(ruleId string) (*model.TestResult, error) {

	rule, err := ts.ruleStore.GetRule(ruleId)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, errors2.NewNotFoundError(errors2.RULE_NOT_FOUND,
			fmt.Sprintf("No business rule exists with id: %s", ruleId))
	}

	result := ts.RunTestCases(*rule)
	if err := ts.ruleStore.AppendTestResult(*result); err != nil {
		return nil, errors2.NewExecutionError(errors2.TEST_EXECUTION,
			fmt.Sprintf("Failed to persist test result for rule: %s", ruleId), err)
	}
	return result, nil
}

// RunTestCases executes the rule's declared test cases, falling back to
// category defaults when none are declared. Every run additionally
// includes a missing-data edge case. When accuracy lands below the bar
// the AI layer is asked for supplementary suggestions; an unreachable
// AI layer simply means no suggestions.
func (ts *RuleTestingService) RunTestCases(rule model.BusinessRule) *model.TestResult {

	logger := log.GetLogger()

	testCases := rule.TestCases
	if len(testCases) == 0 {
		testCases = DefaultTestCases(rule.Category)
	}
	testCases = append(testCases, missingDataEdgeCase())

	result := &model.TestResult{
		ResultId:   uuid.New().String(),
		RuleId:     rule.RuleId,
		Total:      len(testCases),
		ExecutedAt: time.Now().UTC().Unix(),
	}

	var totalMicros int64
	for _, testCase := range testCases {
		caseResult := runCase(rule, testCase)
		totalMicros += caseResult.ExecutionMicros
		if caseResult.Passed {
			result.Passed++
		} else {
			result.Failed++
		}
		result.CaseResults = append(result.CaseResults, caseResult)
	}

	result.Accuracy = int(math.Round(float64(result.Passed) / float64(result.Total) * 100))
	result.AvgExecutionMs = float64(totalMicros) / float64(result.Total) / 1000

	if result.Accuracy < constants.MinimumAccuracyForSuggestions {
		ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultSuggestionTimeout)
		defer cancel()

		suggestions, err := ts.analyzer.SuggestEdgeCases(ctx, string(rule.Category),
			float64(result.Accuracy), failedCaseNames(result.CaseResults))
		if err != nil {
			logger.Warn("Edge-case suggestions unavailable for low-accuracy test run",
				log.String("ruleId", rule.RuleId), log.Error(err))
		} else {
			result.SuggestedCases = suggestions
		}
	}
	return result
}

// runCase evaluates one test case. A case passes when the trigger
// expectation matches; for cases expected to trigger, the actual
// recommendation and confidence must also match exactly.
func runCase(rule model.BusinessRule, testCase model.TestCase) model.CaseResult {

	start := time.Now()
	outcome := EvaluateRule(rule, testCase.Record1, testCase.Record2, testCase.FuzzyScore)
	elapsed := time.Since(start).Microseconds()

	caseResult := model.CaseResult{
		Name:                 testCase.Name,
		Triggered:            outcome.Triggered,
		ActualRecommendation: outcome.Recommendation,
		ActualConfidence:     outcome.Confidence,
		ExecutionMicros:      elapsed,
	}

	expected := testCase.Expected
	switch {
	case outcome.Triggered != expected.ShouldTrigger:
		caseResult.FailureDetail = fmt.Sprintf("expected triggered=%t, got %t",
			expected.ShouldTrigger, outcome.Triggered)
	case expected.ShouldTrigger && outcome.Recommendation != expected.Recommendation:
		caseResult.FailureDetail = fmt.Sprintf("expected recommendation=%s, got %s",
			expected.Recommendation, outcome.Recommendation)
	case expected.ShouldTrigger && outcome.Confidence != expected.Confidence:
		caseResult.FailureDetail = fmt.Sprintf("expected confidence=%s, got %s",
			expected.Confidence, outcome.Confidence)
	default:
		caseResult.Passed = true
	}
	return caseResult
}

func failedCaseNames(caseResults []model.CaseResult) []string {

	var names []string
	for _, caseResult := range caseResults {
		if !caseResult.Passed {
			names = append(names, caseResult.Name)
		}
	}
	return names
}

// DefaultTestCases returns the domain default cases for a category.
func DefaultTestCases(category model.RuleCategory) []model.TestCase {

	switch category {
	case model.CategoryBusinessRelationship, model.CategoryEnergy:
		return []model.TestCase{
			{
				Name: "different divisions at same address",
				Record1: recordmodel.CustomerRecord{
					recordmodel.FieldCustomerName: "Meridian Power Trading",
					recordmodel.FieldAddress:      "12 Harbour Road",
					recordmodel.FieldCity:         "Rotterdam",
					recordmodel.FieldCountry:      "NL",
					recordmodel.FieldTPI:          "TPI-4410",
				},
				Record2: recordmodel.CustomerRecord{
					recordmodel.FieldCustomerName: "Meridian Power Trading",
					recordmodel.FieldAddress:      "12 Harbour Road",
					recordmodel.FieldCity:         "Rotterdam",
					recordmodel.FieldCountry:      "NL",
					recordmodel.FieldTPI:          "TPI-4411",
				},
				FuzzyScore: 0.97,
				Expected: model.ExpectedOutcome{
					Recommendation: string(model.EffectReject),
					Confidence:     "high",
					ShouldTrigger:  true,
				},
				Tags: []string{"default", "divisions"},
			},
			{
				Name: "same counterparty identifier",
				Record1: recordmodel.CustomerRecord{
					recordmodel.FieldCustomerName: "Nordwind Energie GmbH",
					recordmodel.FieldAddress:      "Hafenstrasse 8",
					recordmodel.FieldCity:         "Hamburg",
					recordmodel.FieldCountry:      "DE",
					recordmodel.FieldTPI:          "TPI-2087",
				},
				Record2: recordmodel.CustomerRecord{
					recordmodel.FieldCustomerName: "Nordwind Energie",
					recordmodel.FieldAddress:      "Hafenstr. 8",
					recordmodel.FieldCity:         "Hamburg",
					recordmodel.FieldCountry:      "DE",
					recordmodel.FieldTPI:          "TPI-2087",
				},
				FuzzyScore: 0.91,
				Expected: model.ExpectedOutcome{
					Recommendation: string(model.EffectMerge),
					Confidence:     "high",
					ShouldTrigger:  true,
				},
				Tags: []string{"default", "tpi"},
			},
		}
	case model.CategoryGeographic:
		return []model.TestCase{
			{
				Name: "same name across countries",
				Record1: recordmodel.CustomerRecord{
					recordmodel.FieldCustomerName: "Stellar Logistics",
					recordmodel.FieldCity:         "Vienna",
					recordmodel.FieldCountry:      "AT",
				},
				Record2: recordmodel.CustomerRecord{
					recordmodel.FieldCustomerName: "Stellar Logistics",
					recordmodel.FieldCity:         "Warsaw",
					recordmodel.FieldCountry:      "PL",
				},
				FuzzyScore: 0.88,
				Expected: model.ExpectedOutcome{
					Recommendation: string(model.EffectReject),
					Confidence:     "medium",
					ShouldTrigger:  true,
				},
				Tags: []string{"default", "cross-country"},
			},
			{
				Name: "same city close variants",
				Record1: recordmodel.CustomerRecord{
					recordmodel.FieldCustomerName: "Stellar Logistics GmbH",
					recordmodel.FieldAddress:      "Ringstrasse 1",
					recordmodel.FieldCity:         "Vienna",
					recordmodel.FieldCountry:      "AT",
				},
				Record2: recordmodel.CustomerRecord{
					recordmodel.FieldCustomerName: "Stellar Logistics",
					recordmodel.FieldAddress:      "Ringstrasse 1",
					recordmodel.FieldCity:         "Vienna",
					recordmodel.FieldCountry:      "AT",
				},
				FuzzyScore: 0.94,
				Expected: model.ExpectedOutcome{
					Recommendation: string(model.EffectMerge),
					Confidence:     "high",
					ShouldTrigger:  true,
				},
				Tags: []string{"default", "same-city"},
			},
		}
	default:
		return []model.TestCase{
			{
				Name: "near-identical records",
				Record1: recordmodel.CustomerRecord{
					recordmodel.FieldCustomerName: "Baltic Freight Services",
					recordmodel.FieldAddress:      "Dock 14",
					recordmodel.FieldCity:         "Gdansk",
					recordmodel.FieldCountry:      "PL",
				},
				Record2: recordmodel.CustomerRecord{
					recordmodel.FieldCustomerName: "Baltic Freight Services Ltd",
					recordmodel.FieldAddress:      "Dock 14",
					recordmodel.FieldCity:         "Gdansk",
					recordmodel.FieldCountry:      "PL",
				},
				FuzzyScore: 0.95,
				Expected: model.ExpectedOutcome{
					Recommendation: string(model.EffectMerge),
					Confidence:     "high",
					ShouldTrigger:  true,
				},
				Tags: []string{"default"},
			},
			{
				Name: "unrelated companies",
				Record1: recordmodel.CustomerRecord{
					recordmodel.FieldCustomerName: "Baltic Freight Services",
					recordmodel.FieldCity:         "Gdansk",
					recordmodel.FieldCountry:      "PL",
				},
				Record2: recordmodel.CustomerRecord{
					recordmodel.FieldCustomerName: "Alpine Dairy Cooperative",
					recordmodel.FieldCity:         "Bern",
					recordmodel.FieldCountry:      "CH",
				},
				FuzzyScore: 0.31,
				Expected: model.ExpectedOutcome{
					ShouldTrigger: false,
				},
				Tags: []string{"default"},
			},
		}
	}
}

// missingDataEdgeCase is appended to every run: records with absent
// critical fields must not fire a comparison rule.
func missingDataEdgeCase() model.TestCase {

	return model.TestCase{
		Name: "records with missing critical fields",
		Record1: recordmodel.CustomerRecord{
			recordmodel.FieldCustomerName: "Orphan Record A",
		},
		Record2: recordmodel.CustomerRecord{
			recordmodel.FieldCity: "Lisbon",
		},
		FuzzyScore: 0.50,
		Expected: model.ExpectedOutcome{
			ShouldTrigger: false,
		},
		Tags: []string{"edge-case", "missing-data"},
	}
}
