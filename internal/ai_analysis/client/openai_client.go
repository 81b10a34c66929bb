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

	"github.com/sashabaranov/go-openai"

	recordmodel "github.com/wso2/mdm-deduplication-service/internal/customer_records/model"
	"github.com/wso2/mdm-deduplication-service/internal/ai_analysis/model"
)

// OpenAIClient analyzes candidate pairs through the OpenAI (or Azure
// OpenAI) chat completion API.
type OpenAIClient struct {
	client *openai.Client
	config model.ProviderConfig
}

// NewOpenAIClient creates a client for an OpenAI-compatible provider.
func NewOpenAIClient(cfg model.ProviderConfig) (*OpenAIClient, error) {

	apiKeyEnv := cfg.APIKeyEnv
	if apiKeyEnv == "" {
		apiKeyEnv = "OPENAI_API_KEY"
	}
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("%s environment variable not set for provider %s", apiKeyEnv, cfg.Name)
	}

	var sdkClient *openai.Client
	if cfg.Type == model.ProviderTypeAzureOpenAI {
		if cfg.Endpoint == "" {
			return nil, fmt.Errorf("endpoint is required for Azure OpenAI provider %s", cfg.Name)
		}
		sdkClient = openai.NewClientWithConfig(openai.DefaultAzureConfig(apiKey, cfg.Endpoint))
	} else {
		sdkClient = openai.NewClient(apiKey)
	}

	return &OpenAIClient{
		client: sdkClient,
		config: cfg,
	}, nil
}

// Analyze requests a duplicate-confidence verdict for the record pair.
func (c *OpenAIClient) Analyze(ctx context.Context, record1, record2 recordmodel.CustomerRecord,
	fuzzyScore float64) (*model.AnalysisVerdict, error) {

	prompt, err := buildAnalysisPrompt(record1, record2, fuzzyScore)
	if err != nil {
		return nil, err
	}

	content, err := c.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseVerdict(content, c.config.Name, fuzzyScore)
}

// Suggest sends a free-form prompt and returns the raw completion text.
func (c *OpenAIClient) Suggest(ctx context.Context, prompt string) (string, error) {

	return c.complete(ctx, prompt)
}

// Probe performs a lightweight liveness check against the provider.
func (c *OpenAIClient) Probe(ctx context.Context) error {

	_, err := c.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("openai probe failed for provider %s: %w", c.config.Name, err)
	}
	return nil
}

func (c *OpenAIClient) complete(ctx context.Context, prompt string) (string, error) {

	req := openai.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a customer master-data deduplication analyst."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai API call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
