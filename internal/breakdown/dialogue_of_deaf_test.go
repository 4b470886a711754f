package breakdown

import (
	"testing"

	"github.com/MikeSquared-Agency/breakdowns/internal/dialogue"
)

func TestDialogueOfDeafDetector(t *testing.T) {
	d := NewDialogueOfDeafDetector(DefaultDeafThreshold)

	tests := []struct {
		name string
		tr   dialogue.Transcript
		want Sequence
	}{
		{
			name: "repetition after a user opening",
			tr: transcript("rep",
				user("hello", "Hi"),
				agent("greet", "Hello, how can I help?"), user("ask_price", "How much?"),
				agent("greet", "Hello, how can I help?"), user("ask_price", "How much?"),
				agent("greet", "Hello, how can I help?"),
			),
			want: NewSequence("U_hello"),
		},
		{
			name: "repetition from the first turn has nothing before it",
			tr: transcript("first",
				agent("greet", "Hello"), user("ask_price", "?"),
				agent("greet", "Hello"), user("ask_price", "?"),
				agent("greet", "Hello"),
			),
			want: Sequence{},
		},
		{
			name: "repetition later in the dialogue",
			tr: transcript("late",
				agent("greet", "Welcome"), user("ask_price", "Price?"),
				agent("elicit", "Which model?"), user("reveal", "The big one"),
				agent("elicit", "Which model?"), user("reveal", "The big one"),
				agent("elicit", "Which model?"),
			),
			want: NewSequence("A_greet", "U_ask_price"),
		},
		{
			name: "different intents",
			tr: transcript("intents",
				agent("greet", "Hello"), user("x", ""),
				agent("elicit", "Hello"), user("x", ""),
				agent("greet", "Hello"),
			),
			want: Sequence{},
		},
		{
			name: "same intent, different text",
			tr: transcript("texts",
				agent("inform", "abcdefghij"), user("x", ""),
				agent("inform", "klmnopqrst"), user("x", ""),
				agent("inform", "uvwxyz0123"),
			),
			want: Sequence{},
		},
		{
			name: "only two agent turns",
			tr: transcript("short",
				agent("greet", "Hello"), user("x", ""), agent("greet", "Hello"),
			),
			want: Sequence{},
		},
		{
			name: "consecutive same-role turns use turn lookup",
			tr: transcript("nonalt",
				user("hi", ""), user("hello", ""),
				agent("greet", "Hello"), agent("greet", "Hello"),
				user("bye", ""), agent("greet", "Hello"),
			),
			want: NewSequence("U_hi", "U_hello"),
		},
		{
			name: "composite labels compared unsplit",
			tr: transcript("composite",
				user("start", ""),
				agent("inform+elicit", "Here you go. More?"), user("x", ""),
				agent("inform+elicit", "Here you go. More?"), user("x", ""),
				agent("inform+elicit", "Here you go. More?"),
			),
			want: NewSequence("U_start"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.DetectBreakdown(tt.tr); got != tt.want {
				t.Errorf("DetectBreakdown() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDialogueOfDeafDetector_RecursionErrorRunsRepetitionScan(t *testing.T) {
	looping := withError(transcript("loop",
		user("hello", ""),
		agent("greet", "Hello"), user("x", ""),
		agent("greet", "Hello"), user("x", ""),
		agent("greet", "Hello"),
	), RecursionErrorType)

	if got := NewSystemFailureDetector().DetectBreakdown(looping); !got.Empty() {
		t.Errorf("system failure should ignore RecursionError, got %q", got)
	}
	want := NewSequence("U_hello")
	if got := NewDialogueOfDeafDetector(0).DetectBreakdown(looping); got != want {
		t.Errorf("DetectBreakdown() = %q, want %q", got, want)
	}

	calm := withError(transcript("calm", agent("greet", "Hello"), user("bye", "")), RecursionErrorType)
	if got := NewDialogueOfDeafDetector(0).DetectBreakdown(calm); !got.Empty() {
		t.Errorf("expected no breakdown without repetition, got %q", got)
	}
}

func TestDialogueOfDeafDetector_ThresholdMonotonic(t *testing.T) {
	// Each pair differs in the last character: ratio 0.75, resemblance 0.75.
	tr := transcript("near",
		user("hello", ""),
		agent("inform", "abcd"), user("x", ""),
		agent("inform", "abce"), user("x", ""),
		agent("inform", "abcf"),
	)

	thresholds := []float64{0.5, 0.75, 0.8, 0.9, 1.0}
	flagged := make([]bool, len(thresholds))
	for i, th := range thresholds {
		flagged[i] = !NewDialogueOfDeafDetector(th).DetectBreakdown(tr).Empty()
	}

	want := []bool{true, true, false, false, false}
	for i := range thresholds {
		if flagged[i] != want[i] {
			t.Errorf("threshold %.2f flagged = %v, want %v", thresholds[i], flagged[i], want[i])
		}
		if i > 0 && flagged[i] && !flagged[i-1] {
			t.Errorf("raising threshold to %.2f flagged a transcript the lower one did not", thresholds[i])
		}
	}
}

func TestNewDialogueOfDeafDetector_DefaultThreshold(t *testing.T) {
	for _, th := range []float64{0, -1, 1.5} {
		if got := NewDialogueOfDeafDetector(th).Threshold(); got != DefaultDeafThreshold {
			t.Errorf("threshold %v: got %v, want default %v", th, got, DefaultDeafThreshold)
		}
	}
	if got := NewDialogueOfDeafDetector(0.95).Threshold(); got != 0.95 {
		t.Errorf("got %v, want 0.95", got)
	}
}
