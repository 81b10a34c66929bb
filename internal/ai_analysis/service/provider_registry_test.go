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
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wso2/mdm-deduplication-service/internal/ai_analysis/model"
	"github.com/wso2/mdm-deduplication-service/internal/system/log"
)

func TestMain(m *testing.M) {

	if err := log.Init("ERROR"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func testProviderConfigs() []model.ProviderConfig {

	return []model.ProviderConfig{
		{Name: "openai-primary", Type: model.ProviderTypeOpenAI, Priority: 1, Model: "gpt-4o"},
		{Name: "azure-secondary", Type: model.ProviderTypeAzureOpenAI, Priority: 2, Model: "gpt-4o"},
		{Name: "anthropic-tertiary", Type: model.ProviderTypeAnthropic, Priority: 3, Model: "claude-sonnet-4-0"},
	}
}

func TestRegistryOrdersByPriority(t *testing.T) {

	configs := []model.ProviderConfig{
		{Name: "c", Priority: 3},
		{Name: "a", Priority: 1},
		{Name: "b", Priority: 2},
	}
	registry := NewProviderRegistry(configs, 3)

	snapshot := registry.Snapshot()
	assert.Equal(t, "a", snapshot[0].Config.Name)
	assert.Equal(t, "b", snapshot[1].Config.Name)
	assert.Equal(t, "c", snapshot[2].Config.Name)
	for _, status := range snapshot {
		assert.Equal(t, model.HealthUnknown, status.Health)
	}
}

func TestCandidatesSkipUnhealthyProviders(t *testing.T) {

	registry := NewProviderRegistry(testProviderConfigs(), 3)
	registry.RecordSuccess("azure-secondary")
	registry.RecordSuccess("anthropic-tertiary")
	registry.MarkUnhealthy("openai-primary", errors.New("timeout"))

	candidates := registry.Candidates()
	assert.Len(t, candidates, 2)
	assert.Equal(t, "azure-secondary", candidates[0].Name)
	assert.Equal(t, "anthropic-tertiary", candidates[1].Name)
}

func TestCandidatesHealthyBeforeUnknown(t *testing.T) {

	registry := NewProviderRegistry(testProviderConfigs(), 3)
	registry.RecordSuccess("anthropic-tertiary")

	candidates := registry.Candidates()
	assert.Equal(t, "anthropic-tertiary", candidates[0].Name)
	assert.Equal(t, "openai-primary", candidates[1].Name)
	assert.Equal(t, "azure-secondary", candidates[2].Name)
}

func TestFailureThresholdMarksUnhealthy(t *testing.T) {

	registry := NewProviderRegistry(testProviderConfigs(), 3)
	cause := errors.New("connection refused")

	assert.False(t, registry.RecordFailure("openai-primary", cause))
	assert.False(t, registry.RecordFailure("openai-primary", cause))
	assert.True(t, registry.RecordFailure("openai-primary", cause))

	snapshot := registry.Snapshot()
	assert.Equal(t, model.HealthUnhealthy, snapshot[0].Health)
	assert.Equal(t, 3, snapshot[0].ConsecutiveErrors)
	assert.Equal(t, "connection refused", snapshot[0].LastError)
}

func TestSuccessResetsErrorCount(t *testing.T) {

	registry := NewProviderRegistry(testProviderConfigs(), 3)
	registry.RecordFailure("openai-primary", errors.New("timeout"))
	registry.RecordFailure("openai-primary", errors.New("timeout"))

	registry.RecordSuccess("openai-primary")

	snapshot := registry.Snapshot()
	assert.Equal(t, model.HealthHealthy, snapshot[0].Health)
	assert.Equal(t, 0, snapshot[0].ConsecutiveErrors)
	assert.Empty(t, snapshot[0].LastError)
}

func TestPromoteOverridesPriorityOrder(t *testing.T) {

	registry := NewProviderRegistry(testProviderConfigs(), 3)
	registry.RecordSuccess("openai-primary")
	registry.RecordSuccess("anthropic-tertiary")

	assert.NoError(t, registry.Promote("anthropic-tertiary"))

	current, ok := registry.SelectCurrent()
	assert.True(t, ok)
	assert.Equal(t, "anthropic-tertiary", current.Config.Name)

	candidates := registry.Candidates()
	assert.Equal(t, "anthropic-tertiary", candidates[0].Name)
	assert.Equal(t, "openai-primary", candidates[1].Name)
}

func TestPromoteUnknownProviderFails(t *testing.T) {

	registry := NewProviderRegistry(testProviderConfigs(), 3)
	assert.Error(t, registry.Promote("no-such-provider"))
}

func TestPromotedUnhealthyProviderIsSkipped(t *testing.T) {

	registry := NewProviderRegistry(testProviderConfigs(), 3)
	registry.RecordSuccess("openai-primary")
	assert.NoError(t, registry.Promote("anthropic-tertiary"))
	registry.MarkUnhealthy("anthropic-tertiary", errors.New("quota exceeded"))

	current, ok := registry.SelectCurrent()
	assert.True(t, ok)
	assert.Equal(t, "openai-primary", current.Config.Name)
}

func TestCompareAndSetHealth(t *testing.T) {

	registry := NewProviderRegistry(testProviderConfigs(), 3)

	assert.True(t, registry.CompareAndSetHealth("openai-primary", model.HealthUnknown, model.HealthHealthy))
	assert.False(t, registry.CompareAndSetHealth("openai-primary", model.HealthUnknown, model.HealthUnhealthy))

	snapshot := registry.Snapshot()
	assert.Equal(t, model.HealthHealthy, snapshot[0].Health)
}

func TestConcurrentHealthTransitionsApplyOnce(t *testing.T) {

	registry := NewProviderRegistry(testProviderConfigs(), 3)

	var applied int32
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if registry.CompareAndSetHealth("openai-primary", model.HealthUnknown, model.HealthUnhealthy) {
				mu.Lock()
				applied++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), applied)
}
