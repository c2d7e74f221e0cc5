package experiment

// TrialRecord captures one completed trial. Records are immutable once
// appended to Results; the session controller owns the collection for the
// lifetime of the run.
type TrialRecord struct {
	// Block is the 1-based block index.
	Block int

	// Trial is the 0-based trial index within its block.
	Trial int

	// Actual is the number of circles shown (the condition value).
	Actual int

	// Guessed is the participant's reported count with the 0-key already
	// remapped to ten.
	Guessed int

	// Correct reports whether Guessed matches Actual.
	Correct bool

	// RT is the response time in seconds, measured from prompt onset to
	// key press. Never negative.
	RT float64
}

// Results is the ordered collection of records for one session.
type Results []TrialRecord

// ResponseKeys is the allow-list used when blocking for an answer.
const ResponseKeys = "0123456789"

// CountForKey maps a response key to the reported count. The digit 0 stands
// for ten; anything outside '0'..'9' is rejected.
func CountForKey(key rune) (int, bool) {
	if key < '0' || key > '9' {
		return 0, false
	}
	if key == '0' {
		return 10, true
	}
	return int(key - '0'), true
}
