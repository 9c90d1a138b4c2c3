package sse

import (
	"encoding/json"

	"github.com/osse101/LootVault_Go/internal/realtime"
)

// FormatSSEMessage formats a message for transmission
func FormatSSEMessage(msg realtime.Message) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}

	// SSE format: "id: <id>\nevent: <type>\ndata: <json>\n\n"
	out := "id: " + msg.ID + "\n"
	out += "event: " + msg.Type + "\n"
	out += "data: " + string(data) + "\n\n"

	return []byte(out), nil
}
