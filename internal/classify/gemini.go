package classify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"govlens/backend/internal/models"

	"google.golang.org/genai"
)

const defaultModel = "gemini-3-flash-preview"

// GeminiService implements Classifier against the Google Gemini API, with a
// JSON response schema for the routing decision and Google Search grounding
// for SOP/budget citations.
type GeminiService struct {
	client *genai.Client
	model  string
}

// NewGeminiService creates a Gemini-backed classifier.
func NewGeminiService(ctx context.Context, apiKey, model string) (*GeminiService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiService{client: client, model: model}, nil
}

// analysisSchema constrains the model output to the Classification shape.
func analysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"primaryDepartment":    {Type: genai.TypeString, Description: "The main department responsible for this issue."},
			"secondaryDepartments": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}, Description: "Other departments that might need to be involved."},
			"issueType":            {Type: genai.TypeString, Description: "Specific classification of the issue (e.g., 'Pothole Repair')."},
			"severity": {
				Type: genai.TypeString,
				Enum: []string{
					string(models.SeverityLow),
					string(models.SeverityMedium),
					string(models.SeverityHigh),
					string(models.SeverityCritical),
				},
				Description: "Calculated severity level.",
			},
			"fundingRequired":       {Type: genai.TypeBoolean, Description: "Whether special budget allocation is likely needed."},
			"estimatedCost":         {Type: genai.TypeString, Description: "Rough estimate of cost in Rupees."},
			"permissionsNeeded":     {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}, Description: "List of administrative approvals needed."},
			"interdeptCoordination": {Type: genai.TypeBoolean, Description: "Does this require multiple departments to work together?"},
			"estimatedTimeline":     {Type: genai.TypeString, Description: "Expected resolution time (e.g., '14 days')."},
			"reasoning":             {Type: genai.TypeString, Description: "Brief explanation of the assessment."},
		},
		Required: []string{
			"primaryDepartment",
			"issueType",
			"severity",
			"fundingRequired",
			"estimatedCost",
			"estimatedTimeline",
			"reasoning",
		},
	}
}

// BuildPrompt renders the classification instruction for the given evidence.
func BuildPrompt(description, transcript string) string {
	if description == "" {
		description = "Not provided"
	}
	if transcript == "" {
		transcript = "Not provided"
	}
	return fmt.Sprintf(`Analyze this civic infrastructure complaint from Andhra Pradesh, India.

TEXT DESCRIPTION: %q
AUDIO TRANSCRIPT: %q

Using the provided information (and image if available), identify the responsible department in Andhra Pradesh (e.g., Roads & Buildings, Panchayat Raj, Municipal Administration, Energy, Irrigation, etc.).
Assess the severity, estimated cost for repair based on typical government schedules in AP, and determine if inter-departmental coordination is needed.

Use Google Search to find relevant government SOPs or recent budget allocations for similar issues in Andhra Pradesh.`,
		description, transcript)
}

// Classify sends the evidence to Gemini and decodes the structured decision.
func (g *GeminiService) Classify(ctx context.Context, req Request) (models.Classification, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(BuildPrompt(req.Description, req.Transcript)),
	}

	if !req.Photo.IsZero() {
		data, err := base64.StdEncoding.DecodeString(req.Photo.Base64())
		if err != nil {
			return models.Classification{}, fmt.Errorf("invalid photo payload: %w", err)
		}
		mime := req.Photo.MimeType
		if mime == "" {
			mime = "image/jpeg"
		}
		parts = append(parts, genai.NewPartFromBytes(data, mime))
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		Tools:            []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		ResponseMIMEType: "application/json",
		ResponseSchema:   analysisSchema(),
	})
	if err != nil {
		return models.Classification{}, fmt.Errorf("Gemini analysis failed: %w", err)
	}

	var result models.Classification
	if err := json.Unmarshal([]byte(resp.Text()), &result); err != nil {
		return models.Classification{}, fmt.Errorf("unparseable Gemini response: %w", err)
	}

	result.GroundingSources = groundingSources(resp)
	return result, nil
}

// Transcribe converts an audio payload to English text. The recording may be
// in English or Telugu; the model is asked to prioritize an English
// translation for officer review.
func (g *GeminiService) Transcribe(ctx context.Context, audio models.EncodedMedia) (string, error) {
	data, err := base64.StdEncoding.DecodeString(audio.Base64())
	if err != nil {
		return "", fmt.Errorf("invalid audio payload: %w", err)
	}
	mime := audio.MimeType
	if mime == "" {
		mime = "audio/wav"
	}

	parts := []*genai.Part{
		genai.NewPartFromBytes(data, mime),
		genai.NewPartFromText("Transcribe the following audio accurately. It may be in English or Telugu. Provide the transcription in English or a transliteration if necessary, but prioritize an English translation for officer review."),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("Gemini transcription failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("empty transcription response")
	}
	return text, nil
}

// groundingSources extracts web citations attached by Google Search grounding.
func groundingSources(resp *genai.GenerateContentResponse) []models.GroundingSource {
	if len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}

	var sources []models.GroundingSource
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		sources = append(sources, models.GroundingSource{
			Title: chunk.Web.Title,
			URI:   chunk.Web.URI,
		})
	}
	return sources
}
