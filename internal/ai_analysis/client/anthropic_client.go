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

package client

import (
	"context"
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	recordmodel "github.com/wso2/mdm-deduplication-service/internal/customer_records/model"
	"github.com/wso2/mdm-deduplication-service/internal/ai_analysis/model"
)

// AnthropicClient analyzes candidate pairs through the Anthropic
// Messages API.
type AnthropicClient struct {
	client *anthropic.Client
	config model.ProviderConfig
}

// NewAnthropicClient creates a client for an Anthropic provider.
func NewAnthropicClient(cfg model.ProviderConfig) (*AnthropicClient, error) {

	apiKeyEnv := cfg.APIKeyEnv
	if apiKeyEnv == "" {
		apiKeyEnv = "ANTHROPIC_API_KEY"
	}
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("%s environment variable not set for provider %s", apiKeyEnv, cfg.Name)
	}

	sdkClient := anthropic.NewClient(option.WithAPIKey(apiKey))

	return &AnthropicClient{
		client: &sdkClient,
		config: cfg,
	}, nil
}

// Analyze requests a duplicate-confidence verdict for the record pair.
func (c *AnthropicClient) Analyze(ctx context.Context, record1, record2 recordmodel.CustomerRecord,
	fuzzyScore float64) (*model.AnalysisVerdict, error) {

	prompt, err := buildAnalysisPrompt(record1, record2, fuzzyScore)
	if err != nil {
		return nil, err
	}

	content, err := c.complete(ctx, prompt, 1024)
	if err != nil {
		return nil, err
	}
	return parseVerdict(content, c.config.Name, fuzzyScore)
}

// Suggest sends a free-form prompt and returns the raw completion text.
func (c *AnthropicClient) Suggest(ctx context.Context, prompt string) (string, error) {

	return c.complete(ctx, prompt, 2048)
}

// Probe performs a minimal message round trip as a liveness check.
func (c *AnthropicClient) Probe(ctx context.Context) error {

	_, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.Model),
		MaxTokens: 1,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock("ping")),
		},
	})
	if err != nil {
		return fmt.Errorf("anthropic probe failed for provider %s: %w", c.config.Name, err)
	}
	return nil
}

func (c *AnthropicClient) complete(ctx context.Context, prompt string, maxTokens int64) (string, error) {

	response, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.Model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API call failed: %w", err)
	}

	var responseText string
	for _, block := range response.Content {
		if block.Type == "text" {
			responseText += block.Text
		}
	}
	if responseText == "" {
		return "", fmt.Errorf("anthropic returned no text content")
	}
	return responseText, nil
}
