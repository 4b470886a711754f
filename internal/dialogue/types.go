package dialogue

import (
	"fmt"
	"strings"
)

// Role identifies who produced a turn.
type Role string

const (
	RoleAgent Role = "AGENT"
	RoleUser  Role = "USER"
)

// IntentSeparator joins simultaneous intents inside one intent label.
const IntentSeparator = "+"

// ParseRole maps a participant label to a Role. DialogueKit exports use
// AGENT/USER, simulator logs sometimes use the participant id instead.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "agent":
		return RoleAgent, nil
	case "user", "simulator":
		return RoleUser, nil
	default:
		return "", fmt.Errorf("unknown participant %q", s)
	}
}

// Prefix returns the token prefix for the role: A_ for the agent, U_ for the user.
func (r Role) Prefix() string {
	if r == RoleAgent {
		return "A_"
	}
	return "U_"
}

// Turn is a single utterance in a transcript.
type Turn struct {
	Role   Role
	Intent string // possibly composite, e.g. "inform+elicit"
	Text   string
}

// Tokens splits the intent label on "+" and prefixes every piece with the role.
func (t Turn) Tokens() []string {
	parts := strings.Split(t.Intent, IntentSeparator)
	tokens := make([]string, len(parts))
	for i, p := range parts {
		tokens[i] = t.Role.Prefix() + p
	}
	return tokens
}

// Termination describes why a conversation stopped abnormally.
type Termination struct {
	ErrorType string
	ErrorArgs string
}

// Transcript is a complete, already terminated conversation.
type Transcript struct {
	ID          string
	Turns       []Turn
	Termination *Termination // nil when the conversation ended normally
}

// ErrorType returns the termination error type and whether one is present.
func (t Transcript) ErrorType() (string, bool) {
	if t.Termination == nil || t.Termination.ErrorType == "" {
		return "", false
	}
	return t.Termination.ErrorType, true
}

// Tokens returns the role-prefixed intent tokens of every turn, in order.
func (t Transcript) Tokens() []string {
	return t.TokensBefore(len(t.Turns))
}

// TokensBefore returns the tokens of turns [0, n).
func (t Transcript) TokensBefore(n int) []string {
	if n > len(t.Turns) {
		n = len(t.Turns)
	}
	var tokens []string
	for _, turn := range t.Turns[:n] {
		tokens = append(tokens, turn.Tokens()...)
	}
	return tokens
}
