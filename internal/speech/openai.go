package speech

import (
	"context"
	"fmt"
	"io"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// openaiVoices are the voices the preference heuristic can match
// against. The default is a female voice, mirroring the product's
// voice preference; anything unmatched falls back to it.
var openaiVoices = []openai.SpeechVoice{
	openai.VoiceNova,
	openai.VoiceShimmer,
	openai.VoiceAlloy,
	openai.VoiceEcho,
	openai.VoiceFable,
	openai.VoiceOnyx,
}

const defaultOpenAIVoice = openai.VoiceNova

// OpenAISynthesizer speaks through the OpenAI speech endpoint.
// The model is multilingual, so Options.Lang is carried by the input
// text itself.
type OpenAISynthesizer struct {
	client *openai.Client
}

// NewOpenAISynthesizer creates an OpenAI-backed synthesizer.
func NewOpenAISynthesizer(apiKey string) (*OpenAISynthesizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	return &OpenAISynthesizer{client: openai.NewClient(apiKey)}, nil
}

func (s *OpenAISynthesizer) Synthesize(ctx context.Context, text string, opts Options) ([]byte, error) {
	speed := opts.Rate
	if speed == 0 {
		speed = 1.0
	}

	resp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.TTSModel1,
		Input:          text,
		Voice:          pickOpenAIVoice(opts.Voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
		Speed:          speed,
	})
	if err != nil {
		return nil, fmt.Errorf("openai speech: %w", err)
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	return data, nil
}

func (s *OpenAISynthesizer) Name() string {
	return "openai"
}

// pickOpenAIVoice matches the preference against known voice names,
// falling back to the default female voice.
func pickOpenAIVoice(pref string) openai.SpeechVoice {
	if pref == "" {
		return defaultOpenAIVoice
	}
	pref = strings.ToLower(pref)
	for _, v := range openaiVoices {
		if strings.Contains(string(v), pref) {
			return v
		}
	}
	return defaultOpenAIVoice
}
