package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/skillsage/skillsage-backend/internal/domain"
	"google.golang.org/api/option"
)

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(apiKey, modelName string) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.7)

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClient) Close() {
	c.client.Close()
}

// GeneratedQuestion is one interview question produced by the model.
type GeneratedQuestion struct {
	Order         int    `json:"order"`
	Question      string `json:"question"`
	AllocatedTime int    `json:"allocated_time"`
}

// SessionSummary is the model's closing assessment of a full session.
type SessionSummary struct {
	AverageRating float64 `json:"average_rating"`
	Feedback      string  `json:"feedback"`
	Stars         string  `json:"stars"`
}

// QA pairs a question with the answer the candidate gave.
type QA struct {
	Question string
	Answer   string
}

// ScoreAnswer asks the model to evaluate a single interview answer.
// The caller is expected to substitute a degraded result on error.
func (c *GeminiClient) ScoreAnswer(ctx context.Context, question, answer string) (*domain.RoundFeedback, error) {
	prompt := fmt.Sprintf(`
		You are supervising a technical interview.
		Question asked: %q
		Candidate answer: %q

		Provide brief, constructive feedback in strict JSON format:
		{
			"feedback": "One short sentence evaluating the answer.",
			"rating": <integer between 1 and 5>,
			"tip": "One short, actionable tip to improve."
		}
	`, question, answer)

	text, err := c.generateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	raw, ok := extractJSONObject(text)
	if !ok {
		return nil, fmt.Errorf("no JSON object in model output")
	}

	var fb domain.RoundFeedback
	if err := json.Unmarshal(raw, &fb); err != nil {
		return nil, fmt.Errorf("failed to parse feedback: %w", err)
	}
	return &fb, nil
}

// GenerateQuestions produces count interview questions for a course and
// difficulty, 60 seconds allocated to each.
func (c *GeminiClient) GenerateQuestions(ctx context.Context, course, difficulty string, count int) ([]GeneratedQuestion, error) {
	prompt := fmt.Sprintf(`
		Generate %d interview questions for course: %s, difficulty: %s.
		The allocated time for each question should be exactly 60 seconds.
		The questions should be interview-style and course related.
		Do not include introductory text, just the %d questions.

		Output strictly as a JSON array only. Example:
		[
		  {"order": 1, "question": "Explain ...", "allocated_time": 60}
		]
	`, count, course, difficulty, count)

	text, err := c.generateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	raw, ok := extractJSONArray(text)
	if !ok {
		return nil, fmt.Errorf("no JSON array in model output")
	}

	var questions []GeneratedQuestion
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, fmt.Errorf("failed to parse questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("model returned no questions")
	}
	return questions, nil
}

// SummarizeSession asks the model for an overall rating of a completed
// session.
func (c *GeminiClient) SummarizeSession(ctx context.Context, pairs []QA) (*SessionSummary, error) {
	var sb strings.Builder
	sb.WriteString("You are an AI interviewer. Provide a final rating assessment.\n")
	sb.WriteString("Here are the candidate's answers:\n\n")
	for _, pair := range pairs {
		fmt.Fprintf(&sb, "Q: %s\nA: %s\n\n", pair.Question, pair.Answer)
	}
	sb.WriteString(`
		Based on the overall performance, provide a JSON output:
		{
			"average_rating": <float between 1.0 and 5.0>,
			"feedback": "One short, encouraging closing remark.",
			"stars": "***"
		}
	`)

	text, err := c.generateText(ctx, sb.String())
	if err != nil {
		return nil, err
	}

	raw, ok := extractJSONObject(text)
	if !ok {
		return nil, fmt.Errorf("no JSON object in model output")
	}

	var summary SessionSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, fmt.Errorf("failed to parse summary: %w", err)
	}
	return &summary, nil
}

// ResumeAnalysis is the model's structured review of a resume against a
// target role. The list-valued fields are kept raw and passed through to
// the client untouched.
type ResumeAnalysis struct {
	Score                 int             `json:"score"`
	Summary               string          `json:"summary"`
	Strengths             json.RawMessage `json:"strengths,omitempty"`
	Weaknesses            json.RawMessage `json:"weaknesses,omitempty"`
	MissingSkills         json.RawMessage `json:"missing_skills,omitempty"`
	FormattingSuggestions json.RawMessage `json:"formatting_suggestions,omitempty"`
	InterviewFocus        json.RawMessage `json:"interview_focus,omitempty"`
	SkillGaps             json.RawMessage `json:"skill_gaps,omitempty"`
	ATSIssues             json.RawMessage `json:"ats_issues,omitempty"`
}

// AnalyzeResume reviews resume text against a target role and experience
// level and returns a scored breakdown.
func (c *GeminiClient) AnalyzeResume(ctx context.Context, role, experience, resumeText string) (*ResumeAnalysis, error) {
	prompt := fmt.Sprintf(`
		You are an expert technical recruiter reviewing a resume for the
		role of %q at %q experience level.

		Resume text:
		%s

		Respond with strict JSON only:
		{
			"score": <integer 0-100, overall fit for the role>,
			"summary": "Two or three sentences summarizing the resume.",
			"strengths": ["..."],
			"weaknesses": ["..."],
			"missing_skills": ["..."],
			"formatting_suggestions": ["..."],
			"interview_focus": ["topics the candidate should prepare for"],
			"skill_gaps": ["..."],
			"ats_issues": ["..."]
		}
	`, role, experience, resumeText)

	text, err := c.generateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	raw, ok := extractJSONObject(text)
	if !ok {
		return nil, fmt.Errorf("no JSON object in model output")
	}

	var analysis ResumeAnalysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse analysis: %w", err)
	}
	return &analysis, nil
}

// visualizeContentLimit caps how much source material is sent to the
// model for diagram generation.
const visualizeContentLimit = 2000

// VisualizeContent turns learning material into a Mermaid diagram
// definition. The model is told to answer with raw Mermaid code only;
// stray fences are stripped defensively.
func (c *GeminiClient) VisualizeContent(ctx context.Context, content string) (string, error) {
	if len(content) > visualizeContentLimit {
		content = content[:visualizeContentLimit]
	}

	prompt := fmt.Sprintf(`
		Convert the following learning content into a Mermaid diagram.
		Use "graph TD" for processes and flows, "classDiagram" or
		"mindmap" for structures and concepts.

		Content:
		%s

		Output ONLY the raw Mermaid code. No explanations, no markdown
		fences, no surrounding text.
	`, content)

	text, err := c.generateText(ctx, prompt)
	if err != nil {
		return "", err
	}

	chart := stripMermaidFence(text)
	if chart == "" {
		return "", fmt.Errorf("model returned no diagram")
	}
	return chart, nil
}

func (c *GeminiClient) generateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no content generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

var (
	objectRe = regexp.MustCompile(`(?s)\{.*\}`)
	arrayRe  = regexp.MustCompile(`(?s)\[.*\]`)
)

// extractJSONObject pulls the first JSON object out of model output,
// tolerating markdown code fences and surrounding prose.
func extractJSONObject(text string) (json.RawMessage, bool) {
	match := objectRe.FindString(stripCodeFence(text))
	if match == "" {
		return nil, false
	}
	return json.RawMessage(match), true
}

func extractJSONArray(text string) (json.RawMessage, bool) {
	match := arrayRe.FindString(stripCodeFence(text))
	if match == "" {
		return nil, false
	}
	return json.RawMessage(match), true
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

func stripMermaidFence(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```mermaid")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
