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
	"fmt"
)

// ConditionKind is the closed set of predicate kinds a rule condition
// can be built from.
type ConditionKind string

const (
	// Composite predicates over child conditions.
	KindAll ConditionKind = "all"
	KindAny ConditionKind = "any"

	// Field predicates comparing the same field across both records.
	KindFieldEquals  ConditionKind = "field_equals"
	KindFieldDiffers ConditionKind = "field_differs"
	KindFieldMissing ConditionKind = "field_missing"

	// Score predicates over the upstream fuzzy similarity.
	KindSimilarityAtLeast ConditionKind = "similarity_at_least"
	KindSimilarityBelow   ConditionKind = "similarity_below"
)

// Condition is a tagged variant forming a rule's predicate tree.
// Exactly the fields relevant to its Kind are set; Validate enforces
// this at save time so malformed rules never reach evaluation.
type Condition struct {
	Kind ConditionKind `json:"kind"`

	// Field, for the field_* kinds.
	Field string `json:"field,omitempty"`

	// Threshold, for the similarity_* kinds.
	Threshold float64 `json:"threshold,omitempty"`

	// Children, for the all/any kinds.
	Children []Condition `json:"children,omitempty"`
}

// ActionEffect is the disposition a matching rule imposes.
type ActionEffect string

const (
	EffectReject ActionEffect = "reject"
	EffectMerge  ActionEffect = "merge"
	EffectFlag   ActionEffect = "flag"
)

// AllowedActionEffects defines the valid set of action effects.
var AllowedActionEffects = map[ActionEffect]bool{
	EffectReject: true,
	EffectMerge:  true,
	EffectFlag:   true,
}

// AllowedActionConfidences defines the valid confidence values an
// action may impose.
var AllowedActionConfidences = map[string]bool{
	"high":   true,
	"medium": true,
	"low":    true,
}

// Action is one effect in a rule's ordered action sequence.
type Action struct {
	Effect     ActionEffect `json:"effect"`
	Confidence string       `json:"confidence"`
	Reason     string       `json:"reason,omitempty"`
}

// Validate checks the condition tree against its kind schemas.
func (c Condition) Validate() error {

	switch c.Kind {
	case KindAll, KindAny:
		if len(c.Children) == 0 {
			return fmt.Errorf("%s condition requires at least one child", c.Kind)
		}
		if c.Field != "" || c.Threshold != 0 {
			return fmt.Errorf("%s condition must not set field or threshold", c.Kind)
		}
		for i, child := range c.Children {
			if err := child.Validate(); err != nil {
				return fmt.Errorf("child %d: %w", i, err)
			}
		}
		return nil
	case KindFieldEquals, KindFieldDiffers, KindFieldMissing:
		if c.Field == "" {
			return fmt.Errorf("%s condition requires a field name", c.Kind)
		}
		if len(c.Children) > 0 {
			return fmt.Errorf("%s condition must not have children", c.Kind)
		}
		return nil
	case KindSimilarityAtLeast, KindSimilarityBelow:
		if c.Threshold < 0 || c.Threshold > 1 {
			return fmt.Errorf("%s condition requires a threshold in [0,1]", c.Kind)
		}
		if c.Field != "" || len(c.Children) > 0 {
			return fmt.Errorf("%s condition must not set field or children", c.Kind)
		}
		return nil
	case "":
		return fmt.Errorf("condition kind is required")
	default:
		return fmt.Errorf("unknown condition kind: %q", c.Kind)
	}
}

// Validate checks an action against the closed effect and confidence sets.
func (a Action) Validate() error {

	if !AllowedActionEffects[a.Effect] {
		return fmt.Errorf("unknown action effect: %q", a.Effect)
	}
	if !AllowedActionConfidences[a.Confidence] {
		return fmt.Errorf("unknown action confidence: %q", a.Confidence)
	}
	return nil
}
