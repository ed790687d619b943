package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversationIDOrderIndependent(t *testing.T) {
	assert.Equal(t, ConversationID("a1", "b2"), ConversationID("b2", "a1"))
	assert.Equal(t, "a1_b2", ConversationID("a1", "b2"))
	assert.Equal(t, "a1_b2", ConversationID("b2", "a1"))
}

func TestConversationIDSortsLexicographically(t *testing.T) {
	assert.Equal(t, "abc_abd", ConversationID("abd", "abc"))
	assert.Equal(t, "1_2", ConversationID("2", "1"))
}

func TestConversationIDSameUser(t *testing.T) {
	// Degenerate pair still yields a deterministic key.
	assert.Equal(t, "x_x", ConversationID("x", "x"))
}
