package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sneakerfitai/sneakerfitai/internal/config"
)

func TestParseColorTags(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    []string
		wantErr bool
	}{
		{
			name: "plain JSON array",
			text: `["black","red","gum"]`,
			want: []string{"black", "red", "gum"},
		},
		{
			name: "fenced with language tag",
			text: "```json\n[\"white\",\"navy\",\"red\"]\n```",
			want: []string{"white", "navy", "red"},
		},
		{
			name: "fenced without language tag",
			text: "```\n[\"white\",\"navy\",\"red\"]\n```",
			want: []string{"white", "navy", "red"},
		},
		{
			name: "single line fence",
			text: "```json[\"teal\",\"grey\",\"white\"]```",
			want: []string{"teal", "grey", "white"},
		},
		{
			name: "surrounding whitespace",
			text: "\n  [\"black\",\"white\",\"volt\"]  \n",
			want: []string{"black", "white", "volt"},
		},
		{
			name: "blank entries are dropped",
			text: `["black","  ","red","","gum"]`,
			want: []string{"black", "red", "gum"},
		},
		{
			name: "capped at five tags",
			text: `["a","b","c","d","e","f","g"]`,
			want: []string{"a", "b", "c", "d", "e"},
		},
		{
			name:    "prose is rejected",
			text:    "The shoe is mostly black with red accents.",
			wantErr: true,
		},
		{
			name:    "JSON object is rejected",
			text:    `{"colors":["black"]}`,
			wantErr: true,
		},
		{
			name:    "empty array is rejected",
			text:    `[]`,
			wantErr: true,
		},
		{
			name:    "only blank entries is rejected",
			text:    `[""," "]`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseColorTags(tt.text)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `["red"]`, stripCodeFence("```json\n[\"red\"]\n```"))
	assert.Equal(t, `["red"]`, stripCodeFence("```\n[\"red\"]\n```"))
	assert.Equal(t, `["red"]`, stripCodeFence(`["red"]`))
	assert.Equal(t, "plain text", stripCodeFence("plain text"))
}

func TestNewAnalyzerWithoutKeyIsDisabled(t *testing.T) {
	cfg := &config.Config{}
	analyzer := NewAnalyzer(cfg, zap.NewNop())

	tags, err := analyzer.ColorTags(t.Context(), "data:image/png;base64,aGk=")
	require.NoError(t, err)
	assert.Nil(t, tags, "a disabled analyzer yields no tags and no error")
}

func TestGenkitAnalyzerRejectsNonDataURL(t *testing.T) {
	a := &genkitAnalyzer{log: zap.NewNop()}

	_, err := a.ColorTags(t.Context(), "https://img.example.com/shoe.jpg")
	require.Error(t, err, "remote URLs are not sent to the model")
}
