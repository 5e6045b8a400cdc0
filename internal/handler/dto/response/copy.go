package response

import (
	"github.com/jinzhu/copier"
)

// copyView fills a response DTO from a read model by field name.
func copyView[T any](src any) *T {
	dst := new(T)
	if err := copier.CopyWithOption(dst, src, copier.Option{DeepCopy: true}); err != nil {
		panic("response: cannot copy view: " + err.Error())
	}
	return dst
}

func copyList[T any, V any](items []*V) []*T {
	out := make([]*T, len(items))
	for i, it := range items {
		out[i] = copyView[T](it)
	}
	return out
}

type Page[T any] struct {
	Items      []*T   `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
}
