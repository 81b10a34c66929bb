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

package benchmark

import (
	"fmt"
	"testing"

	aimodel "github.com/wso2/mdm-deduplication-service/internal/ai_analysis/model"
	rulemodel "github.com/wso2/mdm-deduplication-service/internal/business_rules/model"
	ruleservice "github.com/wso2/mdm-deduplication-service/internal/business_rules/service"
	recordmodel "github.com/wso2/mdm-deduplication-service/internal/customer_records/model"
	pairservice "github.com/wso2/mdm-deduplication-service/internal/duplicate_pairs/service"
)

func benchmarkRecords() (recordmodel.CustomerRecord, recordmodel.CustomerRecord) {

	record1 := recordmodel.CustomerRecord{
		recordmodel.FieldCustomerName: "Meridian Power Trading B.V.",
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

func benchmarkRule(i int) rulemodel.BusinessRule {

	return rulemodel.BusinessRule{
		RuleId:   fmt.Sprintf("rule-%d", i),
		RuleName: fmt.Sprintf("Benchmark rule %d", i),
		Priority: i,
		Status:   rulemodel.StatusActive,
		Enabled:  true,
		Condition: rulemodel.Condition{
			Kind: rulemodel.KindAll,
			Children: []rulemodel.Condition{
				{Kind: rulemodel.KindFieldEquals, Field: recordmodel.FieldCity},
				{Kind: rulemodel.KindFieldEquals, Field: recordmodel.FieldCountry},
				{Kind: rulemodel.KindFieldDiffers, Field: recordmodel.FieldTPI},
				{Kind: rulemodel.KindSimilarityAtLeast, Threshold: 0.9},
			},
		},
		Actions: []rulemodel.Action{
			{Effect: rulemodel.EffectReject, Confidence: "high"},
		},
	}
}

func BenchmarkEvaluateRule(b *testing.B) {

	rule := benchmarkRule(0)
	record1, record2 := benchmarkRecords()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ruleservice.EvaluateRule(rule, record1, record2, 0.95)
	}
}

func BenchmarkApplyRules(b *testing.B) {

	for _, ruleCount := range []int{1, 10, 50} {
		rules := make([]rulemodel.BusinessRule, 0, ruleCount)
		for i := 0; i < ruleCount; i++ {
			rules = append(rules, benchmarkRule(i))
		}
		record1, record2 := benchmarkRecords()
		verdict := &aimodel.AnalysisVerdict{
			ConfidenceLevel: aimodel.ConfidenceMedium,
			Recommendation:  aimodel.RecommendFlag,
		}

		b.Run(fmt.Sprintf("rules_%d", ruleCount), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				pairservice.ApplyRules(record1, record2, 0.95, verdict, rules)
			}
		})
	}
}

func BenchmarkNormalize(b *testing.B) {

	for i := 0; i < b.N; i++ {
		recordmodel.Normalize("  Meridian Power Trading B.V., Rotterdam  ")
	}
}
