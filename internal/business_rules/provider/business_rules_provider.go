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

package provider

import (
	"github.com/wso2/mdm-deduplication-service/internal/business_rules/service"
)

// BusinessRulesProviderInterface defines the interface for the business
// rules provider.
type BusinessRulesProviderInterface interface {
	GetRuleLifecycleService() service.RuleLifecycleServiceInterface
	GetRuleTestingService() service.RuleTestingServiceInterface
}

// BusinessRulesProvider is the default implementation of the
// BusinessRulesProviderInterface.
type BusinessRulesProvider struct{}

// NewBusinessRulesProvider creates a new instance of BusinessRulesProvider.
func NewBusinessRulesProvider() BusinessRulesProviderInterface {

	return &BusinessRulesProvider{}
}

// GetRuleLifecycleService returns the rule lifecycle service instance.
func (bp *BusinessRulesProvider) GetRuleLifecycleService() service.RuleLifecycleServiceInterface {

	return service.GetRuleLifecycleService()
}

// GetRuleTestingService returns the rule testing service instance.
func (bp *BusinessRulesProvider) GetRuleTestingService() service.RuleTestingServiceInterface {

	return service.GetRuleTestingService()
}
