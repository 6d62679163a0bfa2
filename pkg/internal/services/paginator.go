package services

import (
	"math"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

const DefaultPageSize = 10

// PageSize is the number of items on each listing page.
func PageSize() int {
	if size := viper.GetInt("page_size"); size > 0 {
		return size
	}
	return DefaultPageSize
}

type Page[T any] struct {
	Number      int   `json:"number"`
	NumPages    int   `json:"num_pages"`
	PerPage     int   `json:"per_page"`
	Count       int64 `json:"count"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
	Data        []T   `json:"data"`
}

type Paginator struct {
	Count   int64
	PerPage int
}

// NumPages is never below one, an empty listing still has a first page.
func (v Paginator) NumPages() int {
	if v.Count <= 0 || v.PerPage <= 0 {
		return 1
	}
	return int(math.Ceil(float64(v.Count) / float64(v.PerPage)))
}

// Number resolves a raw page parameter. Values that are not integers
// fall back to the first page, out of range values to the last one.
// Surrounding whitespace is allowed, decimal notation is not.
func (v Paginator) Number(raw string) int {
	number, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	if number < 1 || number > v.NumPages() {
		return v.NumPages()
	}
	return number
}

// Offset of the first item on the given page.
func (v Paginator) Offset(number int) int {
	return (number - 1) * v.PerPage
}

func (v Paginator) Page(number int) Page[struct{}] {
	return Page[struct{}]{
		Number:      number,
		NumPages:    v.NumPages(),
		PerPage:     v.PerPage,
		Count:       v.Count,
		HasNext:     number < v.NumPages(),
		HasPrevious: number > 1,
	}
}

func WithData[T any](page Page[struct{}], data []T) Page[T] {
	if data == nil {
		data = []T{}
	}
	return Page[T]{
		Number:      page.Number,
		NumPages:    page.NumPages,
		PerPage:     page.PerPage,
		Count:       page.Count,
		HasNext:     page.HasNext,
		HasPrevious: page.HasPrevious,
		Data:        data,
	}
}
