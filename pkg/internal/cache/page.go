package cache

// Page is a rendered response kept by the page cache.
type Page struct {
	Status      int
	ContentType string
	Body        []byte
}

func PageKey(url string) string {
	return "page#" + url
}
