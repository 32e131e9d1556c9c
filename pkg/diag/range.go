package diag

// Ranger wraps the Range method.
type Ranger interface {
	// Range returns the byte range associated with the value.
	Range() Ranging
}

// Ranging is a byte range [From, To) within a source text. Parse nodes,
// parse errors and structure errors embed it to satisfy [Ranger].
type Ranging struct {
	From int
	To   int
}

// Range returns the Ranging itself.
func (r Ranging) Range() Ranging { return r }

// Contains reports whether the byte offset p falls inside the range. An empty
// range contains its own position.
func (r Ranging) Contains(p int) bool {
	return r.From <= p && (p < r.To || p == r.From)
}
