package assembly

// Confirmer resolves confirmation-gated warnings during a batch, such as
// over-capacity batches and videos that exceed the mesh timeline.
type Confirmer interface {
	// Confirm presents prompt and reports the decision. An error means no
	// decision could be obtained at all.
	Confirm(prompt string) (bool, error)
}

// DeclineAll refuses every prompt. It is the default policy when no
// interactive channel is attached, so gated warnings escalate to errors
// instead of blocking.
type DeclineAll struct{}

// Confirm implements Confirmer.
func (DeclineAll) Confirm(string) (bool, error) { return false, nil }
