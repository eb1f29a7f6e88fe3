package mutate

import "fmt"

type UnknownActionError struct {
	Kind string
}

func (e UnknownActionError) Error() string {
	return fmt.Sprintf("unknown action: %q", e.Kind)
}

// ArgError reports a malformed argument for an otherwise known action.
type ArgError struct {
	Kind   string
	Reason string
}

func (e ArgError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}
