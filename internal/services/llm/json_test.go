package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	type payload struct {
		Tone  string  `json:"tone"`
		Score float64 `json:"score"`
	}

	tests := []struct {
		name     string
		response string
		wantErr  bool
		want     payload
	}{
		{
			name:     "clean json",
			response: `{"tone": "warm", "score": 0.8}`,
			want:     payload{Tone: "warm", Score: 0.8},
		},
		{
			name:     "json wrapped in prose",
			response: "Here is the analysis you asked for:\n{\"tone\": \"punchy\", \"score\": 0.5}\nLet me know if you need more.",
			want:     payload{Tone: "punchy", Score: 0.5},
		},
		{
			name:     "json in code fence",
			response: "```json\n{\"tone\": \"casual\", \"score\": 0.3}\n```",
			want:     payload{Tone: "casual", Score: 0.3},
		},
		{
			name:     "no json at all",
			response: "I could not produce the analysis.",
			wantErr:  true,
		},
		{
			name:     "malformed braces",
			response: "result: {tone: warm, score}",
			wantErr:  true,
		},
		{
			name:     "empty",
			response: "   ",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got payload
			err := ExtractJSON(tt.response, &got)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractJSONErrorNamesPrefix(t *testing.T) {
	var v map[string]interface{}
	err := ExtractJSON("The model refused to answer in JSON today.", &v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "The model refused")
}
