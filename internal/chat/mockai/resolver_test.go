package mockai

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_Match(t *testing.T) {
	resolver := NewResolver(nil, Config{})

	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{
			name:     "Scholarship keyword",
			input:    "tell me about scholarship options",
			contains: "scholarship programs",
		},
		{
			name:     "Case insensitive",
			input:    "HELLO there",
			contains: "I'm GabAi",
		},
		{
			name:     "Substring inside a longer word",
			input:    "thanks a lot",
			contains: "You're welcome",
		},
		{
			name:     "Enrollment requirements",
			input:    "what do I need for admission",
			contains: "Form 138",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, resolver.Match(tt.input), tt.contains)
		})
	}
}

func TestResolver_FirstMatchWins(t *testing.T) {
	resolver := NewResolver(nil, Config{})

	// "where" sits in an earlier rule than "library", so the location
	// response wins even though both keywords are present.
	response := resolver.Match("Where is the library?")
	assert.Contains(t, response, "Campus Map")
	assert.NotContains(t, response, "8AM-8PM")
}

func TestResolver_Fallback(t *testing.T) {
	resolver := NewResolver(nil, Config{})
	assert.Equal(t, Fallback, resolver.Match("xyzzy 123"))
}

func TestResolver_CustomRules(t *testing.T) {
	resolver := NewResolver([]Rule{
		{Keywords: []string{"ping"}, Response: "pong"},
	}, Config{})

	assert.Equal(t, "pong", resolver.Match("ping me"))
	assert.Equal(t, Fallback, resolver.Match("scholarship"))
}

func TestResolver_ResolveWithoutDelay(t *testing.T) {
	resolver := NewResolver(nil, Config{})

	start := time.Now()
	response, err := resolver.Resolve(context.Background(), "hello")
	require.NoError(t, err)
	assert.True(t, strings.Contains(response, "GabAi"))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestResolver_ResolveHonorsCancellation(t *testing.T) {
	resolver := NewResolver(nil, Config{MinDelay: time.Minute, MaxDelay: 2 * time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := resolver.Resolve(ctx, "hello")
	assert.ErrorIs(t, err, context.Canceled)
}
