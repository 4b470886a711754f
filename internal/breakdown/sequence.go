package breakdown

import "strings"

// tokenSep never appears in an intent token, so joining on it is lossless.
const tokenSep = "\x1f"

// Sequence is an ordered, immutable run of intent tokens. It is a comparable
// value: two sequences with the same tokens in the same order are == and hash
// alike, so Sequence can key a map directly. The zero value is the empty
// sequence, meaning "no breakdown".
type Sequence struct {
	key string
}

// NewSequence builds a sequence from tokens in order.
func NewSequence(tokens ...string) Sequence {
	return Sequence{key: strings.Join(tokens, tokenSep)}
}

// Empty reports whether the sequence has no tokens.
func (s Sequence) Empty() bool { return s.key == "" }

// Len returns the number of tokens.
func (s Sequence) Len() int {
	if s.key == "" {
		return 0
	}
	return strings.Count(s.key, tokenSep) + 1
}

// Tokens returns a fresh copy of the tokens.
func (s Sequence) Tokens() []string {
	if s.key == "" {
		return nil
	}
	return strings.Split(s.key, tokenSep)
}

// String renders the tokens joined by a single space.
func (s Sequence) String() string {
	return strings.ReplaceAll(s.key, tokenSep, " ")
}

// Tally counts occurrences per distinct sequence. Keys keep the order in which
// they were first added.
type Tally struct {
	keys   []Sequence
	counts map[Sequence]int
}

// NewTally returns an empty tally.
func NewTally() *Tally {
	return &Tally{counts: make(map[Sequence]int)}
}

// Add increments the count of seq. Empty sequences are ignored.
func (t *Tally) Add(seq Sequence) {
	t.AddN(seq, 1)
}

// AddN adds n occurrences of seq.
func (t *Tally) AddN(seq Sequence, n int) {
	if seq.Empty() || n <= 0 {
		return
	}
	if _, ok := t.counts[seq]; !ok {
		t.keys = append(t.keys, seq)
	}
	t.counts[seq] += n
}

// Merge adds every count of other into t; keys unseen by t are appended in
// other's order.
func (t *Tally) Merge(other *Tally) {
	if other == nil {
		return
	}
	for _, k := range other.keys {
		t.AddN(k, other.counts[k])
	}
}

// Count returns the occurrences of seq.
func (t *Tally) Count(seq Sequence) int { return t.counts[seq] }

// Keys returns the distinct sequences in first-seen order.
func (t *Tally) Keys() []Sequence {
	keys := make([]Sequence, len(t.keys))
	copy(keys, t.keys)
	return keys
}

// Len returns the number of distinct sequences.
func (t *Tally) Len() int { return len(t.keys) }

// Total returns the sum of all counts.
func (t *Tally) Total() int {
	total := 0
	for _, c := range t.counts {
		total += c
	}
	return total
}
