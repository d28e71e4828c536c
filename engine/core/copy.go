package core

import (
	"fmt"

	"github.com/mohae/deepcopy"
)

// deepCopyMap returns a deep copy of the provided map[string]any.
func deepCopyMap(m map[string]any) (map[string]any, error) {
	copiedInterface := deepcopy.Copy(m)
	copied, ok := copiedInterface.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("failed to copy map")
	}
	return copied, nil
}

// DeepCopy creates a deep copy of the supplied value. It has special handling
// for Document (and its pointer form) so the copy retains the concrete type
// instead of devolving into the plain map returned by the deepcopy library.
func DeepCopy[T any](v T) (T, error) {
	var zero T

	switch src := any(v).(type) {
	case Document:
		return deepCopyDocument(src, zero)
	case *Document:
		return deepCopyDocumentPtr(src, zero)
	default:
		return deepCopyGeneric(v, zero)
	}
}

// deepCopyDocument deep-copies a Document value and returns it as type T.
func deepCopyDocument[T any](src Document, zero T) (T, error) {
	if src == nil {
		return zero, nil
	}
	copied, err := deepCopyMap(map[string]any(src))
	if err != nil {
		return zero, fmt.Errorf("failed to copy Document type: %w", err)
	}
	dst := Document(copied)
	result, ok := any(dst).(T)
	if !ok {
		return zero, fmt.Errorf("failed to cast Document to type %T", zero)
	}
	return result, nil
}

// deepCopyDocumentPtr deep-copies a *Document and returns it as type T.
func deepCopyDocumentPtr[T any](src *Document, zero T) (T, error) {
	if src == nil || *src == nil {
		return zero, nil
	}
	copied, err := deepCopyMap(map[string]any(*src))
	if err != nil {
		return zero, fmt.Errorf("failed to copy *Document type: %w", err)
	}
	dst := Document(copied)
	result, ok := any(&dst).(T)
	if !ok {
		return zero, fmt.Errorf("failed to cast *Document to type %T", zero)
	}
	return result, nil
}

// deepCopyGeneric copies values that need no special handling.
func deepCopyGeneric[T any](v T, zero T) (T, error) {
	copied := deepcopy.Copy(v)
	result, ok := copied.(T)
	if !ok {
		return zero, fmt.Errorf("failed to cast copied value to type %T", zero)
	}
	return result, nil
}
