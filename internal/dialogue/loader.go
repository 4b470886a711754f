package dialogue

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// rawDialogue mirrors a DialogueKit dialogue export.
type rawDialogue struct {
	ConversationID string         `json:"conversation ID" yaml:"conversation ID"`
	Conversation   []rawUtterance `json:"conversation" yaml:"conversation"`
	Metadata       rawMetadata    `json:"metadata" yaml:"metadata"`
}

type rawUtterance struct {
	Participant string  `json:"participant" yaml:"participant"`
	Utterance   string  `json:"utterance" yaml:"utterance"`
	Intent      *string `json:"intent" yaml:"intent"`
}

type rawMetadata struct {
	Error *rawError `json:"error" yaml:"error"`
}

type rawError struct {
	ErrorType string `json:"error_type" yaml:"error_type"`
	ErrorArgs any    `json:"error_args" yaml:"error_args"`
}

// LoadFile reads a dialogues file (JSON or YAML) and returns its transcripts.
// Format is detected by extension (.yaml/.yml → YAML, anything else → JSON).
func LoadFile(path string) ([]Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dialogues: %w", err)
	}
	return Load(data, filepath.Ext(path))
}

// Load parses dialogues from bytes. ext is a format hint; empty means JSON.
func Load(data []byte, ext string) ([]Transcript, error) {
	var raws []rawDialogue
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raws); err != nil {
			return nil, fmt.Errorf("parse dialogues yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &raws); err != nil {
			return nil, fmt.Errorf("parse dialogues json: %w", err)
		}
	}
	return convert(raws)
}

// Decode converts already unmarshalled DialogueKit dialogues, e.g. from a request body.
func Decode(data json.RawMessage) ([]Transcript, error) {
	return Load(data, ".json")
}

func convert(raws []rawDialogue) ([]Transcript, error) {
	transcripts := make([]Transcript, 0, len(raws))
	for i, raw := range raws {
		id := raw.ConversationID
		if id == "" {
			id = fmt.Sprintf("dialogue-%d", i)
		}

		t := Transcript{ID: id, Turns: make([]Turn, 0, len(raw.Conversation))}
		for j, u := range raw.Conversation {
			role, err := ParseRole(u.Participant)
			if err != nil {
				return nil, fmt.Errorf("dialogue %s turn %d: %w", id, j, err)
			}
			if u.Intent == nil {
				return nil, fmt.Errorf("dialogue %s turn %d: missing intent", id, j)
			}
			t.Turns = append(t.Turns, Turn{Role: role, Intent: *u.Intent, Text: u.Utterance})
		}

		if e := raw.Metadata.Error; e != nil && e.ErrorType != "" {
			t.Termination = &Termination{ErrorType: e.ErrorType}
			if e.ErrorArgs != nil {
				t.Termination.ErrorArgs = fmt.Sprint(e.ErrorArgs)
			}
		}
		transcripts = append(transcripts, t)
	}
	return transcripts, nil
}
