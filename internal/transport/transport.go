// Package transport contains the request/response collaborator the state engines depend on.
// Every response is wrapped in a {"data": T} envelope; paginated reads carry data as a
// two-element [items, total] tuple which only Page knows about.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNoFiles      = errors.New("multipart upload without files")
)

// Transport issues request/response exchanges against the platform API.
// out receives the decoded "data" member of the envelope; a nil out discards the body.
type Transport interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body any, out any) error
	PostMultipart(ctx context.Context, path string, form Multipart, out any) error
	Patch(ctx context.Context, path string, body any, out any) error
	Delete(ctx context.Context, path string) error
}

// File is a single file part of a multipart upload.
type File struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

// Multipart is a multipart/form-data body: every file is written under Field.
// Field "file" is used by single-file endpoints, "attachments" by the repeatable one.
type Multipart struct {
	Field  string
	Files  []File
	Values map[string]string
}

// Envelope is the wire wrapper of every response.
type Envelope[T any] struct {
	Data T `json:"data"`
}

// Page is a paginated collection as returned on the wire: [items, total].
type Page[T any] struct {
	Items []T
	Total int
}

func (p *Page[T]) UnmarshalJSON(b []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(b, &tuple); err != nil {
		return fmt.Errorf("decode page tuple: %w", err)
	}
	if len(tuple) != 2 {
		return fmt.Errorf("decode page tuple: expected 2 elements, got %d", len(tuple))
	}
	var items []T
	if err := json.Unmarshal(tuple[0], &items); err != nil {
		return fmt.Errorf("decode page items: %w", err)
	}
	var total int
	if err := json.Unmarshal(tuple[1], &total); err != nil {
		return fmt.Errorf("decode page total: %w", err)
	}
	if items == nil {
		items = []T{}
	}
	p.Items = items
	p.Total = total
	return nil
}

func (p Page[T]) MarshalJSON() ([]byte, error) {
	items := p.Items
	if items == nil {
		items = []T{}
	}
	return json.Marshal([]any{items, p.Total})
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream status %d", e.Code)
	}
	return fmt.Sprintf("upstream status %d: %s", e.Code, e.Message)
}

func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Code == 404
	case ErrUnauthorized:
		return e.Code == 401 || e.Code == 403
	}
	return false
}
