package store

import "fmt"

type IndexError struct {
	Index int
	Len   int
}

func (e IndexError) Error() string {
	if e.Len == 0 {
		return fmt.Sprintf("item not found: %d (list is empty)", e.Index)
	}
	return fmt.Sprintf("item not found: %d (valid: 0-%d)", e.Index, e.Len-1)
}
