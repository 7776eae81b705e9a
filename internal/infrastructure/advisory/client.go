package advisory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/estoquesaude/backend/internal/infrastructure/config"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	trendMarker          = "TENDÊNCIA:"
	recommendationMarker = "RECOMENDAÇÕES:"
)

// Input carries the free-text stock context sent to the text-generation
// service. The contract is purely textual: no structured schema.
type Input struct {
	ConsumptionHistory string
	SeasonalNotes      string
	StrategicLevels    string
}

// Result is the parsed advisory answer
type Result struct {
	Trend           string `json:"trend"`
	Recommendations string `json:"recommendations"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Client calls an external text-generation API with a fixed prompt
// template and parses the two-section answer
type Client struct {
	httpClient *resty.Client
	model      string
	logger     *zap.Logger
}

// NewClient creates an advisory client from configuration
func NewClient(cfg config.AdvisoryConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	client := resty.New().
		SetBaseURL(cfg.Endpoint).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("key", cfg.APIKey)

	return &Client{
		httpClient: client,
		model:      cfg.Model,
		logger:     logger.Named("advisory"),
	}
}

// AnalyzeTrends asks the text-generation service for a consumption-trend
// description and reorder recommendations
func (c *Client) AnalyzeTrends(ctx context.Context, input Input) (*Result, error) {
	prompt := buildPrompt(input)

	request := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	var response generateResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(request).
		SetResult(&response).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", c.model))

	if err != nil {
		c.logger.Error("advisory API call failed", zap.Error(err))
		return nil, fmt.Errorf("failed to call advisory API: %w", err)
	}
	if resp.IsError() {
		c.logger.Error("advisory API returned error",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("body", resp.String()),
		)
		return nil, fmt.Errorf("advisory API error: status %d", resp.StatusCode())
	}
	if response.Error != nil {
		return nil, fmt.Errorf("advisory API error: %s (code %d)", response.Error.Message, response.Error.Code)
	}
	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("advisory API returned no candidates")
	}

	text := response.Candidates[0].Content.Parts[0].Text
	result := parseAnswer(text)

	c.logger.Info("advisory answer received",
		zap.Int("answer_length", len(text)),
	)

	return result, nil
}

func buildPrompt(input Input) string {
	var sb strings.Builder
	sb.WriteString("Você é um analista de estoque de insumos de saúde. ")
	sb.WriteString("Com base nos dados abaixo, descreva a tendência de consumo e recomende reposições.\n\n")
	sb.WriteString("Histórico de consumo:\n")
	sb.WriteString(input.ConsumptionHistory)
	sb.WriteString("\n\nPadrões sazonais:\n")
	sb.WriteString(input.SeasonalNotes)
	sb.WriteString("\n\nNíveis estratégicos configurados:\n")
	sb.WriteString(input.StrategicLevels)
	sb.WriteString("\n\nResponda em duas seções, exatamente neste formato:\n")
	sb.WriteString(trendMarker + " <descrição da tendência>\n")
	sb.WriteString(recommendationMarker + " <recomendações de reposição>\n")
	return sb.String()
}

// parseAnswer splits the model answer into the two expected sections.
// Answers that ignore the requested format are returned whole as the
// trend with empty recommendations.
func parseAnswer(text string) *Result {
	trendIdx := strings.Index(text, trendMarker)
	recIdx := strings.Index(text, recommendationMarker)

	if trendIdx < 0 || recIdx < 0 || recIdx < trendIdx {
		return &Result{Trend: strings.TrimSpace(text)}
	}

	trend := text[trendIdx+len(trendMarker) : recIdx]
	recommendations := text[recIdx+len(recommendationMarker):]

	return &Result{
		Trend:           strings.TrimSpace(trend),
		Recommendations: strings.TrimSpace(recommendations),
	}
}
