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
	"github.com/wso2/mdm-deduplication-service/internal/duplicate_pairs/service"
)

// DuplicatePairsProviderInterface defines the interface for the
// duplicate pairs provider.
type DuplicatePairsProviderInterface interface {
	GetPairDecisionService() service.PairDecisionServiceInterface
}

// DuplicatePairsProvider is the default implementation of the
// DuplicatePairsProviderInterface.
type DuplicatePairsProvider struct{}

// NewDuplicatePairsProvider creates a new instance of DuplicatePairsProvider.
func NewDuplicatePairsProvider() DuplicatePairsProviderInterface {

	return &DuplicatePairsProvider{}
}

// GetPairDecisionService returns the pair decision service instance.
func (dp *DuplicatePairsProvider) GetPairDecisionService() service.PairDecisionServiceInterface {

	return service.GetPairDecisionService()
}
