package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"stackslice/internal/mocks"
)

func TestParseHooksNumberedList(t *testing.T) {
	text := `Here are some hooks:

1. You won't believe what happened next
2. "The secret nobody talks about"
3. Wait until you hear this

This concludes the list.`

	hooks := parseHooks(text, maxHooks)
	require.Len(t, hooks, 3)
	assert.Equal(t, "You won't believe what happened next", hooks[0])
	assert.Equal(t, "The secret nobody talks about", hooks[1])
	assert.Equal(t, "Wait until you hear this", hooks[2])
}

func TestParseHooksParenthesisNumbering(t *testing.T) {
	hooks := parseHooks("1) First hook\n2) Second hook", maxHooks)
	require.Len(t, hooks, 2)
	assert.Equal(t, "First hook", hooks[0])
	assert.Equal(t, "Second hook", hooks[1])
}

func TestParseHooksSkipsProseAndEmptyRemainders(t *testing.T) {
	text := "Sure, here you go:\n1.\n2. Real hook\nJust commentary"
	hooks := parseHooks(text, maxHooks)
	require.Len(t, hooks, 1)
	assert.Equal(t, "Real hook", hooks[0])
}

func TestParseHooksRespectsLimit(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= 15; i++ {
		fmt.Fprintf(&b, "%d. Hook number %d\n", i, i)
	}
	hooks := parseHooks(b.String(), maxHooks)
	assert.Len(t, hooks, maxHooks)

	hooks = parseHooks(b.String(), 3)
	assert.Len(t, hooks, 3)
}

func TestGenerateHooksFallbackOnError(t *testing.T) {
	chat := &mocks.MockChatCompleter{}
	chat.On("ChatCompletion", mock.Anything, mock.Anything, 2000, float32(0.9)).
		Return("", errors.New("connection refused"))

	svc := newTestService(testConfig(t))
	svc.ChatCompleter = chat

	hooks := svc.generateHooks(context.Background(), "a transcript")
	require.Len(t, hooks, 5)
	assert.Equal(t, "Wait until you hear this...", hooks[0])
	assert.Equal(t, "I can't believe this...", hooks[4])
}

func TestGenerateHooksFallbackOnEmptyReply(t *testing.T) {
	chat := &mocks.MockChatCompleter{}
	chat.On("ChatCompletion", mock.Anything, mock.Anything, 2000, float32(0.9)).
		Return("No list here, just prose without numbering.", nil)

	svc := newTestService(testConfig(t))
	svc.ChatCompleter = chat

	hooks := svc.generateHooks(context.Background(), "a transcript")
	assert.Equal(t, fallbackHooks(), hooks)
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", truncateRunes("abc", 10))
	assert.Equal(t, "ab", truncateRunes("abcd", 2))
	assert.Equal(t, "hél", truncateRunes("héllo", 3))
}
