package breakdown

import "testing"

func TestSystemFailureDetector(t *testing.T) {
	base := transcript("c", agent("greet", "Hi"), user("ask_price", "Price?"), agent("error", ""))

	tests := []struct {
		name  string
		errTy string
		want  Sequence
	}{
		{"no termination error", "", Sequence{}},
		{"recursion sentinel", RecursionErrorType, Sequence{}},
		{"timeout", "TimeoutError", NewSequence("A_greet", "U_ask_price", "A_error")},
		{"value error", "ValueError", NewSequence("A_greet", "U_ask_price", "A_error")},
	}
	d := NewSystemFailureDetector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := base
			if tt.errTy != "" {
				tr = withError(base, tt.errTy)
			}
			if got := d.DetectBreakdown(tr); got != tt.want {
				t.Errorf("DetectBreakdown() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSystemFailureDetector_CompositeIntents(t *testing.T) {
	tr := withError(transcript("c", agent("greet+elicit", ""), user("reveal", "")), "TimeoutError")
	want := NewSequence("A_greet", "A_elicit", "U_reveal")
	if got := NewSystemFailureDetector().DetectBreakdown(tr); got != want {
		t.Errorf("DetectBreakdown() = %q, want %q", got, want)
	}
}

func TestSystemFailureAndDeafAgreeOnErrors(t *testing.T) {
	tr := withError(transcript("c",
		agent("greet", "Hello"), user("ask_price", "?"),
		agent("greet", "Hello"), user("ask_price", "?"),
		agent("greet", "Hello"),
	), "TimeoutError")

	sf := NewSystemFailureDetector().DetectBreakdown(tr)
	dd := NewDialogueOfDeafDetector(DefaultDeafThreshold).DetectBreakdown(tr)
	if sf != dd {
		t.Errorf("system failure %q and dialogue of deaf %q should report the same full sequence", sf, dd)
	}
	if sf.Len() != 5 {
		t.Errorf("expected full 5-token sequence, got %q", sf)
	}
}
