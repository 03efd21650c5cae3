package gemini

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{
			name: "bare object",
			in:   `{"rating": 4}`,
			want: `{"rating": 4}`,
			ok:   true,
		},
		{
			name: "json code fence",
			in:   "```json\n{\"rating\": 4}\n```",
			want: `{"rating": 4}`,
			ok:   true,
		},
		{
			name: "plain code fence",
			in:   "```\n{\"rating\": 4}\n```",
			want: `{"rating": 4}`,
			ok:   true,
		},
		{
			name: "surrounding prose",
			in:   "Sure! Here is the result:\n{\"rating\": 4}\nHope that helps.",
			want: `{"rating": 4}`,
			ok:   true,
		},
		{
			name: "multiline object",
			in:   "{\n  \"feedback\": \"good\",\n  \"rating\": 5\n}",
			want: "{\n  \"feedback\": \"good\",\n  \"rating\": 5\n}",
			ok:   true,
		},
		{
			name: "no object",
			in:   "I cannot answer that.",
			ok:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, ok := extractJSONObject(tt.in)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, string(raw))
			}
		})
	}
}

func TestExtractJSONArray(t *testing.T) {
	in := "```json\n[{\"order\": 1, \"question\": \"What is a slice?\", \"allocated_time\": 60}]\n```"

	raw, ok := extractJSONArray(in)
	require.True(t, ok)

	var questions []GeneratedQuestion
	require.NoError(t, json.Unmarshal(raw, &questions))
	require.Len(t, questions, 1)
	assert.Equal(t, 1, questions[0].Order)
	assert.Equal(t, "What is a slice?", questions[0].Question)
	assert.Equal(t, 60, questions[0].AllocatedTime)
}

func TestExtractJSONArray_NoArray(t *testing.T) {
	_, ok := extractJSONArray(`{"not": "an array"}`)
	assert.False(t, ok)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("  {\"a\":1}  "))
}

func TestStripMermaidFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "mermaid fence",
			in:   "```mermaid\ngraph TD\n  A-->B\n```",
			want: "graph TD\n  A-->B",
		},
		{
			name: "plain fence",
			in:   "```\nmindmap\n  root\n```",
			want: "mindmap\n  root",
		},
		{
			name: "raw output",
			in:   "  graph TD\n  A-->B  ",
			want: "graph TD\n  A-->B",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripMermaidFence(tt.in))
		})
	}
}
