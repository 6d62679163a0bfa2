package api

import (
	"fmt"
	"net/url"
	"strings"
)

func profileURL(name string) string {
	return fmt.Sprintf("/profile/%s/", url.PathEscape(name))
}

func postURL(id uint) string {
	return fmt.Sprintf("/posts/%d/", id)
}

// safeNextURL only lets through local paths, anything else lands on the index.
func safeNextURL(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
