package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/standapp/standapp-backend/internal/models"
)

// ErrGeneration is returned when the provider produces malformed or empty
// output, or the request fails outright. Callers surface it as a retryable
// user-facing error.
var ErrGeneration = errors.New("content generation failed")

const defaultModel = "gemini-2.5-flash"

const baseInstruction = `You are STANDAPP, an advanced psychological consulting AI assistant.
Your goal is to provide empathetic, evidence-based support for users dealing with stress, anxiety, phobias, and general mental health concerns.

GUIDELINES:
1. **Empathy First**: Always validate the user's feelings. Be warm, non-judgmental, and patient.
2. **CBT & Mindfulness**: Use principles from Cognitive Behavioral Therapy (reframing thoughts) and Mindfulness (grounding techniques).
3. **Safety Critical**: You are NOT a doctor. If a user expresses intent of self-harm, suicide, or harm to others, provide crisis resource reminders and urge them to seek professional help.
4. **Conciseness**: Keep responses digestible.`

// SystemInstruction builds the behavioral policy for a chat session in the
// user's language, optionally addressing them by name.
func SystemInstruction(language models.Language, userName string) string {
	var b strings.Builder
	b.WriteString(baseInstruction)
	b.WriteString("\n")
	if language == models.LanguageSinhala {
		b.WriteString("LANGUAGE REQUIREMENT: You MUST communicate ONLY in the Sinhala language (සිංහල). Use the Sinhala script.")
	} else {
		b.WriteString("LANGUAGE REQUIREMENT: You MUST communicate ONLY in English.")
	}
	if userName != "" {
		b.WriteString("\nThe user's name is " + userName + ". Address them by name occasionally.")
	}
	return b.String()
}

func languageRequirement(language models.Language) string {
	if language == models.LanguageSinhala {
		return "The response MUST be in Sinhala language."
	}
	return "The response MUST be in English."
}

// Generator is the gateway to the hosted generative-language API: streamed
// chat turns plus one-shot JSON plan generation.
type Generator struct {
	client *genai.Client
	model  string
}

func NewGenerator(ctx context.Context, apiKey, model string) (*Generator, error) {
	if apiKey == "" {
		return nil, errors.New("Gemini API key is required")
	}
	if model == "" {
		model = defaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Generator{client: client, model: model}, nil
}

// ChatSession is one ongoing conversation. It carries its own history on the
// provider side; it is not safe for concurrent sends.
type ChatSession struct {
	chat *genai.Chat
}

// StartChat opens a conversation primed with the STANDAPP behavioral policy.
func (g *Generator) StartChat(ctx context.Context, language models.Language, userName string) (*ChatSession, error) {
	chat, err := g.client.Chats.Create(ctx, g.model, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemInstruction(language, userName), genai.RoleUser),
		Temperature:       genai.Ptr(float32(0.7)),
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat session: %w", err)
	}
	return &ChatSession{chat: chat}, nil
}

// StreamReply appends message to the conversation and invokes onChunk for
// each incremental text fragment until the turn completes. The sequence is
// finite and not restartable; a transport failure mid-stream returns an
// error and the caller surfaces a fallback notice instead of treating it as
// fatal.
func (s *ChatSession) StreamReply(ctx context.Context, message string, onChunk func(string)) error {
	for resp, err := range s.chat.SendMessageStream(ctx, genai.Part{Text: message}) {
		if err != nil {
			return err
		}
		if text := resp.Text(); text != "" {
			onChunk(text)
		}
	}
	return nil
}

// GeneratePhobiaHierarchy requests a 5-step desensitization hierarchy for a
// fear, ordered least to most anxiety-provoking.
func (g *Generator) GeneratePhobiaHierarchy(ctx context.Context, phobia string, language models.Language) (*models.PhobiaHierarchy, error) {
	prompt := fmt.Sprintf(`Create a 5-step systematic desensitization hierarchy for someone with a fear of: %s.
%s
The steps should go from least anxiety-provoking (1) to most anxiety-provoking (5).
For each step, provide a brief description and a specific coping tip.

Return ONLY JSON in this format:
{
  "title": "...",
  "steps": [
    { "level": 1, "description": "...", "copingTip": "..." },
    ...
  ]
}`, phobia, languageRequirement(language))

	raw, err := g.generateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return ParsePhobiaHierarchy(raw)
}

// GenerateAddictionPlan requests a 30-day recovery plan broken into 4 weeks.
func (g *Generator) GenerateAddictionPlan(ctx context.Context, addiction string, language models.Language) (*models.AddictionPlan, error) {
	prompt := fmt.Sprintf(`Create a 30-Day Recovery Plan (broken down into 4 weeks) for overcoming addiction to: %s.
%s

The plan should be practical, psychological, and behavioral.

Return ONLY JSON in this format:
{
  "title": "Recovery Plan for ...",
  "weeks": [
    { "weekNumber": 1, "focus": "Brief theme of the week", "tasks": ["Task 1", "Task 2", "Task 3"] },
    ... (up to week 4)
  ]
}`, addiction, languageRequirement(language))

	raw, err := g.generateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return ParseAddictionPlan(raw)
}

func (g *Generator) generateJSON(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	return resp.Text(), nil
}

// stripCodeFence removes a surrounding ```json ... ``` block some models
// still emit even in JSON mode.
func stripCodeFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	return strings.TrimSpace(raw)
}

// ParsePhobiaHierarchy decodes and validates provider output: a title and
// exactly 5 steps with levels 1-5 ascending.
func ParsePhobiaHierarchy(raw string) (*models.PhobiaHierarchy, error) {
	raw = stripCodeFence(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty response", ErrGeneration)
	}
	var h models.PhobiaHierarchy
	if err := json.Unmarshal([]byte(raw), &h); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	if h.Title == "" || len(h.Steps) != 5 {
		return nil, fmt.Errorf("%w: expected a title and 5 steps, got %d", ErrGeneration, len(h.Steps))
	}
	for i, step := range h.Steps {
		if step.Level != i+1 {
			return nil, fmt.Errorf("%w: step levels must ascend 1-5", ErrGeneration)
		}
		if step.Description == "" {
			return nil, fmt.Errorf("%w: step %d has no description", ErrGeneration, step.Level)
		}
	}
	return &h, nil
}

// ParseAddictionPlan decodes and validates provider output: a title and
// exactly 4 weeks numbered 1-4 ascending.
func ParseAddictionPlan(raw string) (*models.AddictionPlan, error) {
	raw = stripCodeFence(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty response", ErrGeneration)
	}
	var p models.AddictionPlan
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	if p.Title == "" || len(p.Weeks) != 4 {
		return nil, fmt.Errorf("%w: expected a title and 4 weeks, got %d", ErrGeneration, len(p.Weeks))
	}
	for i, week := range p.Weeks {
		if week.WeekNumber != i+1 {
			return nil, fmt.Errorf("%w: week numbers must ascend 1-4", ErrGeneration)
		}
		if len(week.Tasks) == 0 {
			return nil, fmt.Errorf("%w: week %d has no tasks", ErrGeneration, week.WeekNumber)
		}
	}
	return &p, nil
}
