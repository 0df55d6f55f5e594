package models

import (
	"encoding/json"
	"strings"
)

// Metadata is the loosely-typed payload attached to a chat message. The
// upstream store delivers it either as a native JSON object or as a
// JSON-encoded string; anything undecodable collapses to an empty map.
type Metadata struct {
	values map[string]interface{}
}

// NewMetadata wraps an already-decoded metadata map.
func NewMetadata(values map[string]interface{}) Metadata {
	return Metadata{values: values}
}

// UnmarshalJSON accepts both metadata shapes.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	m.values = nil

	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return nil
	}

	if trimmed[0] == '"' {
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return nil
		}
		var decoded map[string]interface{}
		if err := json.Unmarshal([]byte(encoded), &decoded); err != nil {
			return nil
		}
		m.values = decoded
		return nil
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil
	}
	m.values = decoded
	return nil
}

// MarshalJSON round-trips the decoded map.
func (m Metadata) MarshalJSON() ([]byte, error) {
	if m.values == nil {
		return []byte("null"), nil
	}
	return json.Marshal(m.values)
}

// metadataUserKeys are the candidate user-name aliases, tried in order.
var metadataUserKeys = []string{"user_name", "username"}

// UserName resolves the message author through the alias keys.
// It returns the empty string when no alias holds a non-empty string.
func (m Metadata) UserName() string {
	for _, key := range metadataUserKeys {
		if raw, ok := m.values[key]; ok {
			if name, ok := raw.(string); ok && name != "" {
				return name
			}
		}
	}
	return ""
}

// ChatMessage is one turn of a conversation with the assistant.
type ChatMessage struct {
	Role      string   `json:"role"`
	Metadata  Metadata `json:"metadata"`
	Content   string   `json:"content"`
	ThreadID  string   `json:"thread_id"`
	CreatedAt string   `json:"created_at"`
}
