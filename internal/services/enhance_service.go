package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	NoDescriptionFallback = "No description generated"
	maxTitleWords         = 4
)

var (
	ErrEmptyPrompt = errors.New("prompt is required")
	ErrGeneration  = errors.New("text generation failed")
)

var (
	numberedLine = regexp.MustCompile(`(?m)^\d+[.)]\s*(.+)$`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// Generator turns a prompt into model text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type EnhanceService struct {
	gen Generator
}

func NewEnhanceService(gen Generator) *EnhanceService {
	return &EnhanceService{gen: gen}
}

func titlesPrompt(theme string) string {
	return fmt.Sprintf(`You are a professional event title generator. Create 5 engaging and memorable event titles based on the following theme:

"%s"

Guidelines:
- Each title should be 2-4 words long
- Make titles catchy and memorable
- Use action words and power verbs where appropriate
- Avoid generic terms like "Event" or "Conference"
- Ensure titles are clear and self-explanatory
- Include a mix of creative and professional tones

Return the titles in a numbered list format (1. Title).`, theme)
}

func descriptionPrompt(idea string) string {
	return fmt.Sprintf(`You are a professional event description writer. Create a compelling event description based on the following prompt:

"%s"

Guidelines:
- Write exactly 5 clear, impactful sentences
- First sentence: Hook the reader with the main value proposition
- Second sentence: Provide key details about what attendees will experience
- Third sentence: End with a clear call-to-action or benefit
- Keep each sentence concise (max 20 words)
- Use active voice and engaging language
- Avoid jargon and clichés
- Focus on benefits and outcomes

Return only the description text without any additional formatting or labels.`, idea)
}

// SuggestTitles asks the model for short titles matching theme.
func (es *EnhanceService) SuggestTitles(ctx context.Context, theme string) ([]string, error) {
	if strings.TrimSpace(theme) == "" {
		return nil, ErrEmptyPrompt
	}
	text, err := es.gen.Generate(ctx, titlesPrompt(theme))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	return ParseTitles(text), nil
}

// EnhanceDescription asks the model for a five sentence description.
func (es *EnhanceService) EnhanceDescription(ctx context.Context, idea string) (string, error) {
	if strings.TrimSpace(idea) == "" {
		return "", ErrEmptyPrompt
	}
	text, err := es.gen.Generate(ctx, descriptionPrompt(idea))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	return CleanDescription(text), nil
}

// ParseTitles pulls the items of a numbered list out of model output and
// keeps those of at most four words. It never returns nil.
func ParseTitles(text string) []string {
	titles := []string{}
	for _, m := range numberedLine.FindAllStringSubmatch(text, -1) {
		title := strings.TrimSpace(m[1])
		if title == "" {
			continue
		}
		if len(strings.Fields(title)) > maxTitleWords {
			continue
		}
		titles = append(titles, title)
	}
	return titles
}

// CleanDescription folds the text onto one line with single spaces.
func CleanDescription(text string) string {
	cleaned := strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
	if cleaned == "" {
		return NoDescriptionFallback
	}
	return cleaned
}
