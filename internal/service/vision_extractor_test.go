package service

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"pdf-text-extractor/internal/domain"
	apperrors "pdf-text-extractor/pkg/errors"
)

func testImage() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 4, 4))
}

func TestVisionExtractor_Transcribes(t *testing.T) {
	var gotBody visionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if key := r.URL.Query().Get("key"); key != "test-key" {
			t.Errorf("api key = %q, want test-key", key)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  పిల్లి చాప మీద కూర్చుంది  "}]}}]}`))
	}))
	defer server.Close()

	e := NewVisionExtractor("test-key", server.URL, 80, &mockLogger{})
	text, err := e.ExtractFromImage(context.Background(), testImage(), "Telugu")
	if err != nil {
		t.Fatalf("ExtractFromImage() error = %v", err)
	}
	if text != "పిల్లి చాప మీద కూర్చుంది" {
		t.Errorf("text = %q, want trimmed transcription", text)
	}

	// The request must carry the instruction prompt and the JPEG payload.
	if len(gotBody.Contents) != 1 || len(gotBody.Contents[0].Parts) != 2 {
		t.Fatalf("unexpected request shape: %+v", gotBody)
	}
	prompt := gotBody.Contents[0].Parts[0].Text
	if !strings.Contains(prompt, "Transcribe all visible text") {
		t.Errorf("prompt = %q, missing transcription instruction", prompt)
	}
	if !strings.Contains(prompt, "Telugu") {
		t.Errorf("prompt = %q, missing language hint", prompt)
	}
	blob := gotBody.Contents[0].Parts[1].InlineData
	if blob == nil || blob.MimeType != "image/jpeg" || blob.Data == "" {
		t.Errorf("inline data = %+v, want base64 JPEG", blob)
	}
}

// A missing API key is a configuration error detected before any network
// call is made.
func TestVisionExtractor_MissingKeyFailsFast(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()

	e := NewVisionExtractor("", server.URL, 80, &mockLogger{})
	_, err := e.ExtractFromImage(context.Background(), testImage(), "")
	if err == nil {
		t.Fatal("ExtractFromImage() error = nil, want configuration error")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeConfiguration) {
		t.Errorf("error type = %v, want configuration", err)
	}
	if !errors.Is(err, domain.ErrMissingAPIKey) {
		t.Errorf("error cause = %v, want ErrMissingAPIKey", err)
	}
	if requests.Load() != 0 {
		t.Errorf("server received %d requests, want 0", requests.Load())
	}
}

func TestVisionExtractor_HTTPErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":429,"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	e := NewVisionExtractor("test-key", server.URL, 80, &mockLogger{})
	_, err := e.ExtractFromImage(context.Background(), testImage(), "")
	if err == nil {
		t.Fatal("ExtractFromImage() error = nil, want engine error")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeEngine) {
		t.Errorf("error type = %v, want engine", err)
	}
}

func TestVisionExtractor_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	e := NewVisionExtractor("test-key", server.URL, 80, &mockLogger{})
	_, err := e.ExtractFromImage(context.Background(), testImage(), "")
	if err == nil {
		t.Fatal("ExtractFromImage() error = nil, want engine error")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeEngine) {
		t.Errorf("error type = %v, want engine", err)
	}
}

func TestVisionExtractor_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	e := NewVisionExtractor("test-key", server.URL, 80, &mockLogger{})
	_, err := e.ExtractFromImage(context.Background(), testImage(), "")
	if err == nil {
		t.Fatal("ExtractFromImage() error = nil, want engine error")
	}
}

func TestVisionExtractor_NilImage(t *testing.T) {
	e := NewVisionExtractor("test-key", "http://unused", 80, &mockLogger{})
	_, err := e.ExtractFromImage(context.Background(), nil, "")
	if err == nil {
		t.Fatal("ExtractFromImage() error = nil, want validation error")
	}
}
