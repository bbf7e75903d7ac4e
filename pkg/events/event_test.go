package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type turnPayload struct {
	ConversationId string `json:"conversation_id"`
	FirstMessage   string `json:"first_message"`
}

func TestEnvelopeRoundTrip(t *testing.T) {
	raw, err := NewEnvelope(CouncilTurnCompleted, turnPayload{
		ConversationId: "b7c1e2a4-0000-0000-0000-000000000001",
		FirstMessage:   "why is the sky blue?",
	})
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Equal(t, CouncilTurnCompleted, env.Type)
	assert.False(t, env.OccurredAt.IsZero())

	var got turnPayload
	require.NoError(t, env.Decode(&got))
	assert.Equal(t, "why is the sky blue?", got.FirstMessage)
}

func TestEnvelopeDecodeMismatch(t *testing.T) {
	raw, err := NewEnvelope(CouncilTurnCompleted, "just a string")
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(raw, &env))

	var got turnPayload
	assert.Error(t, env.Decode(&got))
}
