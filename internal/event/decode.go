package event

import "encoding/json"

// DecodePayload returns the payload as T. Payloads published in-process
// already hold T; payloads that crossed Redis or a dead-letter file arrive
// as generic JSON values and are re-encoded into T.
func DecodePayload[T any](payload any) (T, error) {
	if typed, ok := payload.(T); ok {
		return typed, nil
	}

	var out T
	raw, ok := payload.(json.RawMessage)
	if !ok {
		var err error
		if raw, err = json.Marshal(payload); err != nil {
			return out, err
		}
	}
	err := json.Unmarshal(raw, &out)
	return out, err
}
