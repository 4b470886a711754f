package dialogue

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{in: "AGENT", want: RoleAgent},
		{in: "agent", want: RoleAgent},
		{in: "USER", want: RoleUser},
		{in: "simulator", want: RoleUser},
		{in: " User ", want: RoleUser},
		{in: "bot", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseRole(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTurnTokens(t *testing.T) {
	tests := []struct {
		name string
		turn Turn
		want []string
	}{
		{"agent single", Turn{Role: RoleAgent, Intent: "greet"}, []string{"A_greet"}},
		{"user single", Turn{Role: RoleUser, Intent: "ask_price"}, []string{"U_ask_price"}},
		{"composite", Turn{Role: RoleAgent, Intent: "inform+elicit"}, []string{"A_inform", "A_elicit"}},
		{"empty label", Turn{Role: RoleUser, Intent: ""}, []string{"U_"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.turn.Tokens()); diff != "" {
				t.Errorf("Tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTranscriptTokens(t *testing.T) {
	tr := Transcript{Turns: []Turn{
		{Role: RoleAgent, Intent: "greet"},
		{Role: RoleUser, Intent: "reveal+inquire"},
		{Role: RoleAgent, Intent: "recommend"},
	}}

	want := []string{"A_greet", "U_reveal", "U_inquire", "A_recommend"}
	if diff := cmp.Diff(want, tr.Tokens()); diff != "" {
		t.Errorf("Tokens mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"A_greet"}, tr.TokensBefore(1)); diff != "" {
		t.Errorf("TokensBefore(1) mismatch (-want +got):\n%s", diff)
	}
	if got := tr.TokensBefore(0); len(got) != 0 {
		t.Errorf("TokensBefore(0) = %v, want empty", got)
	}
	if got := tr.TokensBefore(10); len(got) != 4 {
		t.Errorf("TokensBefore(10) = %v, want all 4 tokens", got)
	}
}

func TestTranscriptErrorType(t *testing.T) {
	if _, ok := (Transcript{}).ErrorType(); ok {
		t.Error("expected no error type without termination")
	}
	if _, ok := (Transcript{Termination: &Termination{}}).ErrorType(); ok {
		t.Error("expected no error type for empty termination")
	}
	got, ok := Transcript{Termination: &Termination{ErrorType: "TimeoutError"}}.ErrorType()
	if !ok || got != "TimeoutError" {
		t.Errorf("ErrorType() = %q, %v; want TimeoutError, true", got, ok)
	}
}
