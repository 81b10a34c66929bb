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
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/wso2/mdm-deduplication-service/internal/ai_analysis/model"
)

// ProviderRegistry tracks the prioritized provider list and its health
// state. All health transitions happen under the registry lock with an
// expected-state check, so two concurrent probes cannot flip the same
// provider twice.
type ProviderRegistry struct {
	mu               sync.RWMutex
	providers        []*model.ProviderStatus
	failureThreshold int
	forced           string
}

// NewProviderRegistry creates a registry from the configured provider
// list, ordered by priority (lower value first).
func NewProviderRegistry(configs []model.ProviderConfig, failureThreshold int) *ProviderRegistry {

	providers := make([]*model.ProviderStatus, 0, len(configs))
	for _, cfg := range configs {
		providers = append(providers, &model.ProviderStatus{
			Config: cfg,
			Health: model.HealthUnknown,
		})
	}
	sort.SliceStable(providers, func(i, j int) bool {
		return providers[i].Config.Priority < providers[j].Config.Priority
	})

	return &ProviderRegistry{
		providers:        providers,
		failureThreshold: failureThreshold,
	}
}

// SelectCurrent returns the current provider: the forced provider if an
// operator promoted one and it is not unhealthy, otherwise the highest
// priority healthy provider. The second return value is false when no
// provider is available.
func (r *ProviderRegistry) SelectCurrent() (model.ProviderStatus, bool) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.forced != "" {
		for _, p := range r.providers {
			if p.Config.Name == r.forced && p.Health != model.HealthUnhealthy {
				return *p, true
			}
		}
	}
	for _, p := range r.providers {
		if p.Health == model.HealthHealthy {
			return *p, true
		}
	}
	return model.ProviderStatus{}, false
}

// Candidates returns the fallback order for one analysis attempt: the
// forced provider first (when set and not unhealthy), then healthy
// providers by priority, then providers whose health is still unknown.
// Unhealthy providers are skipped entirely.
func (r *ProviderRegistry) Candidates() []model.ProviderConfig {

	r.mu.RLock()
	defer r.mu.RUnlock()

	var candidates []model.ProviderConfig
	seen := map[string]bool{}

	appendIf := func(p *model.ProviderStatus) {
		if !seen[p.Config.Name] {
			seen[p.Config.Name] = true
			candidates = append(candidates, p.Config)
		}
	}

	if r.forced != "" {
		for _, p := range r.providers {
			if p.Config.Name == r.forced && p.Health != model.HealthUnhealthy {
				appendIf(p)
			}
		}
	}
	for _, p := range r.providers {
		if p.Health == model.HealthHealthy {
			appendIf(p)
		}
	}
	for _, p := range r.providers {
		if p.Health == model.HealthUnknown {
			appendIf(p)
		}
	}
	return candidates
}

// RecordFailure increments the provider's consecutive error count and
// marks it unhealthy once the failure threshold is reached. It returns
// true when this call transitioned the provider to unhealthy.
func (r *ProviderRegistry) RecordFailure(name string, cause error) bool {

	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.find(name)
	if p == nil {
		return false
	}
	p.ConsecutiveErrors++
	p.LastChecked = time.Now().UTC().Unix()
	if cause != nil {
		p.LastError = cause.Error()
	}
	if p.ConsecutiveErrors >= r.failureThreshold && p.Health != model.HealthUnhealthy {
		p.Health = model.HealthUnhealthy
		return true
	}
	return false
}

// MarkUnhealthy forces a provider unhealthy regardless of its error count,
// used when a liveness probe fails outright.
func (r *ProviderRegistry) MarkUnhealthy(name string, cause error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.find(name)
	if p == nil {
		return
	}
	p.ConsecutiveErrors++
	p.Health = model.HealthUnhealthy
	p.LastChecked = time.Now().UTC().Unix()
	if cause != nil {
		p.LastError = cause.Error()
	}
}

// RecordSuccess marks a provider healthy and resets its error count.
func (r *ProviderRegistry) RecordSuccess(name string) {

	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.find(name)
	if p == nil {
		return
	}
	p.ConsecutiveErrors = 0
	p.Health = model.HealthHealthy
	p.LastChecked = time.Now().UTC().Unix()
	p.LastError = ""
}

// CompareAndSetHealth transitions a provider's health only when its
// current state matches the expected one. Returns true when the
// transition was applied.
func (r *ProviderRegistry) CompareAndSetHealth(name string, expected, next model.ProviderHealth) bool {

	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.find(name)
	if p == nil || p.Health != expected {
		return false
	}
	p.Health = next
	p.LastChecked = time.Now().UTC().Unix()
	return true
}

// Promote forces the named provider to the front of consideration
// regardless of its configured priority. Health monitoring continues on
// all providers.
func (r *ProviderRegistry) Promote(name string) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.find(name) == nil {
		return fmt.Errorf("unknown provider: %s", name)
	}
	r.forced = name
	return nil
}

// Snapshot returns a copy of every provider's current status.
func (r *ProviderRegistry) Snapshot() []model.ProviderStatus {

	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make([]model.ProviderStatus, 0, len(r.providers))
	for _, p := range r.providers {
		snapshot = append(snapshot, *p)
	}
	return snapshot
}

func (r *ProviderRegistry) find(name string) *model.ProviderStatus {

	for _, p := range r.providers {
		if p.Config.Name == name {
			return p
		}
	}
	return nil
}
