package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/justsurfingit/jobmarket/internal/logger"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"
)

const (
	maxResumeRunes = 20000

	skillExtractionPrompt = `You are a resume screening assistant.
Extract a clean, comma-separated list of the professional and technical skills found in the resume below.
Return only the skills on a single line. Do not add commentary, numbering or markdown.

### RESUME:
%s
`
)

// LLMService wraps the Gemini client used for resume parsing.
type LLMService struct {
	Client llms.Model
	log    *zap.Logger
}

// NewLLMService returns nil, nil when no API key is configured; callers
// treat a nil service as "AI features disabled".
func NewLLMService(ctx context.Context, apiKey, model string, log *zap.Logger) (*LLMService, error) {
	if apiKey == "" {
		return nil, nil
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &LLMService{Client: llm, log: logger.OrNop(log)}, nil
}

// ExtractSkills asks the model for the skills listed in resumeText and
// returns them as one comma-separated string.
func (s *LLMService) ExtractSkills(ctx context.Context, resumeText string) (string, error) {
	if s == nil || s.Client == nil {
		return "", ErrUnavailable
	}

	resumeText = strings.TrimSpace(resumeText)
	if resumeText == "" {
		return "", invalid("resume is empty")
	}
	resumeText = truncateRunes(resumeText, maxResumeRunes)

	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client,
		fmt.Sprintf(skillExtractionPrompt, resumeText),
		llms.WithMaxTokens(200),
	)
	if err != nil {
		return "", &ServiceError{Op: "extract skills", Err: err}
	}

	skills := strings.Join(cleanSkills(strings.Split(resp, ","), 50), ", ")
	s.log.Debug("skills extracted", zap.Int("resume_runes", len([]rune(resumeText))))
	return skills, nil
}
