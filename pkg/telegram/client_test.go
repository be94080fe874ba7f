package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// An unconfigured client must refuse sends locally, without a network call.
func TestUnconfiguredClient(t *testing.T) {
	client := NewClient("", 0, 0)

	assert.False(t, client.Configured())
	assert.False(t, client.SendMessage(12345, "hello"))
	assert.False(t, client.SendToPrimary("hello"))
	assert.False(t, client.SendToTriggerChannel("hello"))
}

// A configured bot still drops sends when no destination chat is set.
func TestSendWithoutDestination(t *testing.T) {
	client := &Client{}

	assert.False(t, client.SendMessage(0, "hello"))
}
