package payload

// Opt is an update of a nullable column: skipped unless Set, and a nil
// Value with Set clears the column.
type Opt[T any] struct {
	Set   bool
	Value *T
}

func SetTo[T any](v T) Opt[T] { return Opt[T]{Set: true, Value: &v} }

func Clear[T any]() Opt[T] { return Opt[T]{Set: true} }

// OptOf wraps an already normalized value; nil clears.
func OptOf[T any](v *T) Opt[T] { return Opt[T]{Set: true, Value: v} }
