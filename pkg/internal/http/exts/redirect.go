package exts

import "fmt"

// RedirectError ends a handler with a 302 to Location.
type RedirectError struct {
	Location string
}

func (v *RedirectError) Error() string {
	return fmt.Sprintf("redirect to %s", v.Location)
}

func Redirect(location string) error {
	return &RedirectError{Location: location}
}
