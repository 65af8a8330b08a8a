package apiclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Shape records which of the two list encodings the backend used.
type Shape int

const (
	ShapeUnknown Shape = iota
	// ShapeArray is a bare JSON array.
	ShapeArray
	// ShapeWrapped is an object carrying the array under "data".
	ShapeWrapped
)

func (s Shape) String() string {
	switch s {
	case ShapeArray:
		return "array"
	case ShapeWrapped:
		return "wrapped"
	}
	return "unknown"
}

var errUnknownShape = errors.New("list response is neither an array nor a data envelope")

// ListEnvelope decodes a list endpoint that may answer with either shape.
type ListEnvelope[T any] struct {
	Shape Shape
	Items []T
}

func (e *ListEnvelope[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		e.Shape, e.Items = ShapeArray, nil
		return nil
	}

	switch trimmed[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		e.Shape, e.Items = ShapeArray, items
		return nil
	case '{':
		var wrapped struct {
			Data *[]T `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return err
		}
		if wrapped.Data == nil {
			return fmt.Errorf("%w: object without data field", errUnknownShape)
		}
		e.Shape, e.Items = ShapeWrapped, *wrapped.Data
		return nil
	}
	return errUnknownShape
}
