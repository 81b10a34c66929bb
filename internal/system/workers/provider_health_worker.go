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

package workers

import (
	"context"
	"time"

	aimodel "github.com/wso2/mdm-deduplication-service/internal/ai_analysis/model"
	"github.com/wso2/mdm-deduplication-service/internal/ai_analysis/provider"
	"github.com/wso2/mdm-deduplication-service/internal/system/config"
	"github.com/wso2/mdm-deduplication-service/internal/system/constants"
	"github.com/wso2/mdm-deduplication-service/internal/system/log"
)

// StartProviderHealthWorker launches the background loop that re-probes
// every configured AI provider on a fixed interval. Unhealthy providers
// recover through this loop once their outage clears.
func StartProviderHealthWorker(ctx context.Context) {

	interval := constants.DefaultProbeInterval
	if secs := config.GetMDSRuntime().Config.AI.ProbeIntervalSecs; secs > 0 {
		interval = time.Duration(secs) * time.Second
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		// Probe once on startup so the chain has real health state
		// before the first interval elapses.
		probeProviders(ctx)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				probeProviders(ctx)
			}
		}
	}()
}

func probeProviders(ctx context.Context) {

	logger := log.GetLogger()
	analyzer := provider.NewAIAnalysisProvider().GetConfidenceService()

	statuses := analyzer.RefreshHealth(ctx)
	for _, status := range statuses {
		if status.Health == aimodel.HealthUnhealthy {
			logger.Warn("AI provider is unhealthy",
				log.String("provider", status.Config.Name),
				log.String("last_error", status.LastError))
		}
	}
	logger.Debug("Provider health probe completed", log.Int("providers", len(statuses)))
}
