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
	"github.com/wso2/mdm-deduplication-service/internal/business_rules/model"
	recordmodel "github.com/wso2/mdm-deduplication-service/internal/customer_records/model"
)

// EvaluationOutcome is the result of applying one rule to a record pair.
// When the rule does not trigger, the recommendation and confidence are
// empty.
type EvaluationOutcome struct {
	Triggered      bool
	Recommendation string
	Confidence     string
	Reason         string
}

// EvaluateRule applies a rule's condition to a record pair and, when it
// matches, derives the outcome from the rule's first action.
func EvaluateRule(rule model.BusinessRule, record1, record2 recordmodel.CustomerRecord,
	fuzzyScore float64) EvaluationOutcome {

	if !EvaluateCondition(rule.Condition, record1, record2, fuzzyScore) {
		return EvaluationOutcome{}
	}
	if len(rule.Actions) == 0 {
		return EvaluationOutcome{Triggered: true}
	}

	action := rule.Actions[0]
	return EvaluationOutcome{
		Triggered:      true,
		Recommendation: string(action.Effect),
		Confidence:     action.Confidence,
		Reason:         action.Reason,
	}
}

// EvaluateCondition evaluates a condition tree against a record pair.
// Absent fields are a distinct predicate state: a comparison over a
// missing field is false, while field_missing is the predicate that
// matches absence. Evaluation never panics on sparse records.
func EvaluateCondition(condition model.Condition, record1, record2 recordmodel.CustomerRecord,
	fuzzyScore float64) bool {

	switch condition.Kind {
	case model.KindAll:
		for _, child := range condition.Children {
			if !EvaluateCondition(child, record1, record2, fuzzyScore) {
				return false
			}
		}
		return len(condition.Children) > 0
	case model.KindAny:
		for _, child := range condition.Children {
			if EvaluateCondition(child, record1, record2, fuzzyScore) {
				return true
			}
		}
		return false
	case model.KindFieldEquals:
		value1, ok1 := record1.NormalizedField(condition.Field)
		value2, ok2 := record2.NormalizedField(condition.Field)
		return ok1 && ok2 && value1 == value2
	case model.KindFieldDiffers:
		value1, ok1 := record1.NormalizedField(condition.Field)
		value2, ok2 := record2.NormalizedField(condition.Field)
		return ok1 && ok2 && value1 != value2
	case model.KindFieldMissing:
		return !record1.HasField(condition.Field) || !record2.HasField(condition.Field)
	case model.KindSimilarityAtLeast:
		return fuzzyScore >= condition.Threshold
	case model.KindSimilarityBelow:
		return fuzzyScore < condition.Threshold
	default:
		return false
	}
}
