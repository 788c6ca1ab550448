// Package gemini implements the engine's collaborator interfaces (embedding,
// intent extraction, answer generation) against the Google Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/alanrezendeee/retechfin-rag/internal/logging"
	"github.com/alanrezendeee/retechfin-rag/internal/ragerror"
)

// Client wraps a genai.Client with the model names used by this service.
type Client struct {
	client          *genai.Client
	embeddingModel  string
	generationModel string
	log             logging.Logger
}

// NewClient creates a Gemini client. The API key is required.
func NewClient(ctx context.Context, apiKey, embeddingModel, generationModel string, logger logging.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		client:          client,
		embeddingModel:  embeddingModel,
		generationModel: generationModel,
		log:             logger,
	}, nil
}

// Close releases the underlying API client.
func (c *Client) Close() error {
	return c.client.Close()
}

// EmbedTexts embeds each non-empty text and returns one vector per surviving
// input, in order. All vectors share the dimension reported by the first
// response. An input list with no usable text yields EmptyInputError.
func (c *Client) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	clean := make([]string, 0, len(texts))
	for _, t := range texts {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			clean = append(clean, trimmed)
		}
	}
	if len(clean) == 0 {
		return nil, &ragerror.EmptyInputError{Count: len(texts)}
	}

	model := c.client.EmbeddingModel(c.embeddingModel)

	vectors := make([][]float32, 0, len(clean))
	dim := 0
	for _, text := range clean {
		res, err := model.EmbedContent(ctx, genai.Text(text))
		if err != nil {
			return nil, &ragerror.EmbeddingError{Text: text, Err: err}
		}
		if res.Embedding == nil || len(res.Embedding.Values) == 0 {
			return nil, &ragerror.EmbeddingError{Text: text, Err: errors.New("empty embedding returned")}
		}
		if dim == 0 {
			dim = len(res.Embedding.Values)
		} else if len(res.Embedding.Values) != dim {
			return nil, &ragerror.EmbeddingError{
				Text: text,
				Err:  fmt.Errorf("embedding dimension changed from %d to %d", dim, len(res.Embedding.Values)),
			}
		}
		vectors = append(vectors, res.Embedding.Values)
	}

	c.log.Debug("Embedded texts",
		logging.F("count", len(vectors)),
		logging.F("dim", dim))

	return vectors, nil
}

// Extract asks the model to turn a question into a structured intent object.
// The raw model output is returned untouched; the classifier is the
// validation boundary for it.
func (c *Client) Extract(ctx context.Context, question string) (string, error) {
	prompt := fmt.Sprintf(`Você é um extrator de intenção para perguntas sobre despesas pessoais.
Responda SOMENTE com um objeto JSON, sem texto adicional, no formato:
{"operation": "search|list|total|total_pago|total_pendente", "filters": {"vendor_contains": null, "reference_period": null, "status": null, "category": null}}

Regras:
- "total_pago" quando a pergunta pede o total já pago.
- "total_pendente" quando pede o total em aberto.
- "total" para somas sem recorte de status.
- "list" para pedidos de listagem, "search" para o resto.
- Preencha apenas os filtros explícitos na pergunta; os demais ficam null.

Pergunta: %s`, question)

	return c.generate(ctx, prompt)
}

// Generate produces free-form prose for the given prompt.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, prompt)
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.generationModel)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	text := responseText(resp)
	if strings.TrimSpace(text) == "" {
		return "", errors.New("gemini returned an empty response")
	}
	return text, nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}
