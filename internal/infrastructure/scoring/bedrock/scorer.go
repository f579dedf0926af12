package bedrock

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/orris-inc/modgate/internal/domain/moderation"
	"github.com/orris-inc/modgate/internal/shared/logger"
	"github.com/orris-inc/modgate/internal/shared/utils/logutil"
)

const anthropicVersion = "bedrock-2023-05-31"

const systemPrompt = `You are a content moderation classifier. For every category you are given, ` +
	`estimate the probability between 0 and 1 that the content belongs to it. ` +
	`Reply with a single JSON object mapping each category name to its probability and nothing else.`

type messageRequest struct {
	AnthropicVersion string    `json:"anthropic_version"`
	MaxTokens        int       `json:"max_tokens"`
	Temperature      float64   `json:"temperature"`
	System           string    `json:"system"`
	Messages         []message `json:"messages"`
}

type message struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *imageSource `json:"source,omitempty"`
}

type imageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type messageResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

// Scorer asks a Claude model on Bedrock to classify content. Scores are taken
// from the model's reply as-is; out-of-range values are rejected downstream.
type Scorer struct {
	client     InvokeModelAPI
	modelID    string
	maxTokens  int
	categories map[moderation.ContentKind][]string
	log        logger.Interface
}

func NewScorer(client InvokeModelAPI, modelID string, maxTokens int, categories map[moderation.ContentKind][]string, log logger.Interface) *Scorer {
	if maxTokens <= 0 {
		maxTokens = 512
	}
	return &Scorer{
		client:     client,
		modelID:    modelID,
		maxTokens:  maxTokens,
		categories: categories,
		log:        log,
	}
}

func (s *Scorer) Score(ctx context.Context, content moderation.Content) (moderation.Scores, error) {
	categories := s.categories[content.Kind]
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: no categories configured for %s content", moderation.ErrScorerUnavailable, content.Kind)
	}

	body, err := json.Marshal(s.buildRequest(content, categories))
	if err != nil {
		return nil, fmt.Errorf("unable to serialize bedrock request: %w", err)
	}

	output, err := s.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(s.modelID),
		Body:        body,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("unable to invoke bedrock model: %w", err)
	}

	var resp messageResponse
	if err := json.Unmarshal(output.Body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bedrock response: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	scores, err := parseScores(text.String())
	if err != nil {
		s.log.Warnw("unparseable classifier reply",
			"model_id", s.modelID,
			"stop_reason", resp.StopReason,
			"reply", logutil.TruncateForLog(text.String(), 200),
		)
		return nil, err
	}
	return scores, nil
}

func (s *Scorer) buildRequest(content moderation.Content, categories []string) messageRequest {
	instruction := "Categories: " + strings.Join(categories, ", ") + "\n"

	var blocks []contentBlock
	switch content.Kind {
	case moderation.ContentKindImage:
		blocks = append(blocks, contentBlock{
			Type: "image",
			Source: &imageSource{
				Type:      "base64",
				MediaType: content.MediaType,
				Data:      base64.StdEncoding.EncodeToString(content.Data),
			},
		})
		blocks = append(blocks, contentBlock{Type: "text", Text: instruction + "Classify the image above."})
	default:
		blocks = append(blocks, contentBlock{
			Type: "text",
			Text: instruction + "Content:\n<content>\n" + content.Text + "\n</content>",
		})
	}

	return messageRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        s.maxTokens,
		Temperature:      0,
		System:           systemPrompt,
		Messages:         []message{{Role: "user", Content: blocks}},
	}
}

// parseScores decodes the first JSON object found in reply.
func parseScores(reply string) (moderation.Scores, error) {
	start := strings.IndexByte(reply, '{')
	if start < 0 {
		return nil, fmt.Errorf("classifier reply contains no JSON object")
	}

	var scores map[string]float64
	if err := json.NewDecoder(strings.NewReader(reply[start:])).Decode(&scores); err != nil {
		return nil, fmt.Errorf("failed to decode classifier scores: %w", err)
	}
	return moderation.Scores(scores), nil
}
