package speech

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"context"
)

const googleTTSEndpoint = "https://texttospeech.googleapis.com/v1/text:synthesize"

// GoogleSynthesizer speaks through the Google Cloud Text-to-Speech
// REST API using an API key.
type GoogleSynthesizer struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// NewGoogleSynthesizer creates a Google-backed synthesizer.
func NewGoogleSynthesizer(apiKey string) (*GoogleSynthesizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("google TTS API key is required")
	}
	return &GoogleSynthesizer{
		apiKey:   apiKey,
		endpoint: googleTTSEndpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

func (s *GoogleSynthesizer) Synthesize(ctx context.Context, text string, opts Options) ([]byte, error) {
	lang := opts.Lang
	if lang == "" {
		lang = "en-US"
	}
	rate := opts.Rate
	if rate == 0 {
		rate = 1.0
	}

	voice := map[string]any{
		"languageCode": lang,
		// Best-effort female voice preference; Google resolves the
		// concrete voice for the language.
		"ssmlGender": "FEMALE",
	}
	if opts.Voice != "" {
		voice["name"] = opts.Voice
	}

	reqBody := map[string]any{
		"input": map[string]string{"text": text},
		"voice": voice,
		"audioConfig": map[string]any{
			"audioEncoding": "MP3",
			"speakingRate":  rate,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.endpoint+"?key="+s.apiKey, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("TTS request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TTS API error %d: %s", resp.StatusCode, body)
	}

	var result struct {
		AudioContent string `json:"audioContent"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	audio, err := base64.StdEncoding.DecodeString(result.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("decode audio: %w", err)
	}
	return audio, nil
}

func (s *GoogleSynthesizer) Name() string {
	return "google"
}
