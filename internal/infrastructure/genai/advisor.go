package genai

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/vertexai/genai"

	"sellit/internal/domain/service"
	"sellit/pkg/errors"
)

// Advisor implements the advisory service on Gemini via Vertex AI.
type Advisor struct {
	client *genai.Client
	model  string
}

func NewAdvisor(ctx context.Context, projectID, location, model string) (*Advisor, error) {
	if projectID == "" {
		return nil, fmt.Errorf("project id is required for the advisory service")
	}

	client, err := genai.NewClient(ctx, projectID, location)
	if err != nil {
		return nil, fmt.Errorf("genai client creation failed: %w", err)
	}

	return &Advisor{client: client, model: model}, nil
}

func (a *Advisor) Close() error {
	return a.client.Close()
}

var _ service.AdvisoryService = (*Advisor)(nil)

func (a *Advisor) SuggestListing(ctx context.Context, title, condition, category string) (*service.ListingSuggestion, error) {
	model := a.client.GenerativeModel(a.model)
	model.GenerationConfig.ResponseMIMEType = "application/json"
	model.GenerationConfig.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"description":    {Type: genai.TypeString, Description: "A 2-sentence catchy description"},
			"suggestedPrice": {Type: genai.TypeNumber, Description: "Numerical value for the suggested price in Naira"},
			"intent":         {Type: genai.TypeString, Description: "A brief summary of the item analysis"},
		},
		Required: []string{"description", "suggestedPrice", "intent"},
	}

	prompt := fmt.Sprintf(
		`Generate a catchy, student-friendly description and suggest a fair second-hand price in Naira (NGN) for a "%s" %s in the %s category to be sold on a college campus.`,
		condition, title, category,
	)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, errors.Unavailable("Listing suggestion failed", err)
	}

	text := firstText(resp)
	if text == "" {
		return nil, errors.Unavailable("Listing suggestion returned no content", nil)
	}

	var suggestion service.ListingSuggestion
	if err := json.Unmarshal([]byte(text), &suggestion); err != nil {
		return nil, errors.Unavailable("Listing suggestion was not valid JSON", err)
	}
	return &suggestion, nil
}

func (a *Advisor) Advise(ctx context.Context, query string, history []service.AdviceTurn) (*service.Advice, error) {
	model := a.client.GenerativeModel(a.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(
			"You are the Sellit Assistant, a helpful AI for a college campus marketplace. " +
				"Help students find items, price their items, or give general campus shopping advice. " +
				"Be concise, friendly, and campus-savvy.",
		)},
	}

	chat := model.StartChat()
	for _, turn := range history {
		role := "user"
		if turn.Role != "user" {
			role = "model"
		}
		chat.History = append(chat.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(turn.Content)},
		})
	}

	resp, err := chat.SendMessage(ctx, genai.Text(query))
	if err != nil {
		return nil, errors.Unavailable("Advice request failed", err)
	}

	text := firstText(resp)
	if text == "" {
		text = "I'm having trouble thinking of a response. Ask me something about campus gear!"
	}

	return &service.Advice{Text: text, Sources: citations(resp)}, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			return string(text)
		}
	}
	return ""
}

func citations(resp *genai.GenerateContentResponse) []string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].CitationMetadata == nil {
		return nil
	}
	var sources []string
	for _, c := range resp.Candidates[0].CitationMetadata.Citations {
		if c.URI != "" {
			sources = append(sources, c.URI)
		}
	}
	return sources
}
