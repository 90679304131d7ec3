package internal

import (
	"github.com/openai/openai-go/packages/param"
)

// MaybeFloat converts an optional float into an openai-go optional, leaving it
// omitted when unset.
func MaybeFloat(f *float64) param.Opt[float64] {
	if f == nil {
		return param.Opt[float64]{}
	}

	return param.NewOpt(*f)
}

func MaybeInt(i *int) param.Opt[int64] {
	if i == nil {
		return param.Opt[int64]{}
	}

	return param.NewOpt(int64(*i))
}

// NonZero returns a pointer to v unless it is the zero value.
func NonZero[T comparable](v T) *T {
	if v == *new(T) {
		return nil
	}

	return &v
}
