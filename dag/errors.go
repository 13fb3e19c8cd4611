package dag

import "fmt"

// Kind classifies a structural failure detected while building or
// validating a Dag (spec §7, the C2/C4 subset — everything beyond the
// envelope-level failures already classified by envelope.Kind).
type Kind string

const (
	UnknownOpType         Kind = "UnknownOpType"
	MissingField          Kind = "MissingField"
	DanglingPredecessor   Kind = "DanglingPredecessor"
	MissingRoot           Kind = "MissingRoot"
	MultipleCreates       Kind = "MultipleCreates"
	NonCreateWithoutPreds Kind = "NonCreateWithoutPreds"
	CorruptDag            Kind = "CorruptDag"
	CycleBudgetExceeded   Kind = "CycleBudgetExceeded"
)

// Fail is the structured error shared by dag and authority; seniority,
// which also operates over an already-verified Dag, raises none of these.
type Fail struct {
	Kind Kind
	Note string
}

func (f *Fail) Error() string { return fmt.Sprintf("%s: %s", f.Kind, f.Note) }

// Failf constructs a *Fail with a formatted note.
func Failf(k Kind, format string, args ...interface{}) error {
	return &Fail{Kind: k, Note: fmt.Sprintf(format, args...)}
}
