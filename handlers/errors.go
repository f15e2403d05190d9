package handlers

import "fmt"

func errInvalidParent(kind, id string) error {
	return fmt.Errorf("no %s with id %q in this document", kind, id)
}

func errBadNumber(field, value string) error {
	return fmt.Errorf("invalid %s %q", field, value)
}
