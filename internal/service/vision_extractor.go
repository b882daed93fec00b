package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"strings"

	"pdf-text-extractor/internal/domain"
	apperrors "pdf-text-extractor/pkg/errors"
)

// transcriptionPrompt instructs the model to return the page text and
// nothing else. Preserving the original script matters: most pages sent
// here failed native extraction because of non-Latin fonts.
const transcriptionPrompt = "Transcribe all visible text in this image. " +
	"Preserve the original script and language exactly as written. " +
	"Return only the transcription, with no commentary or formatting."

// VisionExtractor implements domain.FallbackExtractor by asking a cloud
// multimodal model to transcribe the rendered page image.
type VisionExtractor struct {
	apiKey      string
	endpoint    string
	jpegQuality int
	httpClient  *http.Client
	logger      domain.Logger
}

// NewVisionExtractor creates a new vision-backed fallback extractor.
// The API key may be empty; extraction then fails fast with a configuration
// error instead of attempting a network call.
func NewVisionExtractor(apiKey, endpoint string, jpegQuality int, logger domain.Logger) *VisionExtractor {
	if jpegQuality <= 0 || jpegQuality > 100 {
		jpegQuality = 80
	}
	return &VisionExtractor{
		apiKey:      apiKey,
		endpoint:    endpoint,
		jpegQuality: jpegQuality,
		httpClient:  &http.Client{},
		logger:      logger,
	}
}

// Request/response shapes for the Gemini-style generateContent endpoint.

type visionRequest struct {
	Contents []visionContent `json:"contents"`
}

type visionContent struct {
	Parts []visionPart `json:"parts"`
}

type visionPart struct {
	Text       string          `json:"text,omitempty"`
	InlineData *visionBlobPart `json:"inline_data,omitempty"`
}

type visionBlobPart struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type visionResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// ExtractFromImage serializes the page image as JPEG, sends it with the
// transcription prompt and returns the model's text.
func (e *VisionExtractor) ExtractFromImage(ctx context.Context, img image.Image, languageHint string) (string, error) {
	if e.apiKey == "" {
		return "", apperrors.NewConfigurationError("vision api key not configured", domain.ErrMissingAPIKey)
	}
	if img == nil {
		return "", apperrors.NewValidationError("no page image to transcribe")
	}

	var imgBuf bytes.Buffer
	if err := jpeg.Encode(&imgBuf, img, &jpeg.Options{Quality: e.jpegQuality}); err != nil {
		return "", apperrors.NewProcessingError("failed to encode page image", err)
	}

	prompt := transcriptionPrompt
	if languageHint != "" {
		prompt += " The text is likely in " + languageHint + "."
	}

	reqBody := visionRequest{
		Contents: []visionContent{{
			Parts: []visionPart{
				{Text: prompt},
				{InlineData: &visionBlobPart{
					MimeType: "image/jpeg",
					Data:     base64.StdEncoding.EncodeToString(imgBuf.Bytes()),
				}},
			},
		}},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", apperrors.NewInternalError("failed to marshal vision request", err)
	}

	url := e.endpoint + "?key=" + e.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", apperrors.NewInternalError("failed to build vision request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", apperrors.NewNetworkError("vision request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.NewNetworkError("failed to read vision response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", apperrors.NewEngineError(
			fmt.Sprintf("vision api returned status %d", resp.StatusCode),
			fmt.Errorf("%s", truncate(string(respBody), 200)),
		)
	}

	var parsed visionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", apperrors.NewEngineError("malformed vision response", err)
	}
	if parsed.Error != nil {
		return "", apperrors.NewEngineError(
			fmt.Sprintf("vision api error %d", parsed.Error.Code),
			fmt.Errorf("%s", parsed.Error.Message),
		)
	}
	if len(parsed.Candidates) == 0 {
		return "", apperrors.NewEngineError("vision response has no candidates", nil)
	}

	var sb strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}

	return strings.TrimSpace(sb.String()), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

var _ domain.FallbackExtractor = (*VisionExtractor)(nil)
