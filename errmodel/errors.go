package errmodel

import "fmt"

// InvalidOrientationError reports an orientation that is neither "forward"
// nor "reverse". Calls abort instead of continuing with undefined
// downstream state.
type InvalidOrientationError string

func (e InvalidOrientationError) Error() string {
	return fmt.Sprintf("invalid orientation %q: must be \"forward\" or \"reverse\"", string(e))
}

// ProfileLoadError reports a profile archive that could not be used: the
// file is unreadable, required keys are missing, or the table lengths are
// inconsistent with the recorded read length. Fatal at construction.
type ProfileLoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ProfileLoadError) Error() string {
	prefix := "error profile"
	if e.Path != "" {
		prefix = fmt.Sprintf("error profile %s", e.Path)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Reason)
}

func (e *ProfileLoadError) Unwrap() error { return e.Err }

// DegenerateProfileError reports a substitution matrix row whose three
// off-diagonal counts are all zero: no replacement distribution exists for
// that source base at that position.
type DegenerateProfileError struct {
	Position int
	Base     byte
}

func (e *DegenerateProfileError) Error() string {
	return fmt.Sprintf("degenerate substitution profile: no substitutions recorded for base %c at position %d", e.Base, e.Position)
}

// UnsupportedBaseError reports an input symbol outside {A,C,G,T}. Input
// sequences are rejected whole; no positions are mutated.
type UnsupportedBaseError struct {
	Base     byte
	Position int
}

func (e *UnsupportedBaseError) Error() string {
	return fmt.Sprintf("unsupported base %q at position %d: sequence must contain only A, C, G or T", e.Base, e.Position)
}
