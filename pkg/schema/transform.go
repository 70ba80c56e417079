package schema

import (
	"context"
	"fmt"
)

// Fetcher materializes a remote URI into bytes. The client provides an
// HTTP-backed implementation; tests substitute their own.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, url string) ([]byte, error)

// Fetch implements the Fetcher interface
func (f FetcherFunc) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f(ctx, url)
}

// File is a file-shaped output value: either a pending remote reference or
// an already materialized byte payload. Callers force resolution explicitly
// with Bytes; there is no transparent proxying.
type File struct {
	// URL of the remote content.
	URL string

	fetcher Fetcher
	body    []byte
	fetched bool
}

// NewFile returns a pending remote reference resolved through fetcher.
func NewFile(url string, fetcher Fetcher) *File {
	return &File{URL: url, fetcher: fetcher}
}

// Resolved reports whether the content has been materialized.
func (f *File) Resolved() bool {
	return f.fetched
}

// Bytes materializes the remote content, downloading it on first use. The
// result is memoized: subsequent calls return the same bytes without
// re-fetching.
func (f *File) Bytes(ctx context.Context) ([]byte, error) {
	if f.fetched {
		return f.body, nil
	}
	if f.fetcher == nil {
		return nil, fmt.Errorf("no fetcher configured for %s", f.URL)
	}

	body, err := f.fetcher.Fetch(ctx, f.URL)
	if err != nil {
		return nil, fmt.Errorf("error fetching %s: %w", f.URL, err)
	}

	f.body = body
	f.fetched = true
	return f.body, nil
}

// Transform converts a raw output value into its richer representation based
// on the schema classification: URI-shaped values become pending *File
// references, object properties are transformed individually, and everything
// else passes through untouched. Transform itself performs no I/O; downloads
// happen only when a caller forces a File.
func Transform(value interface{}, out *Output, fetcher Fetcher) interface{} {
	if value == nil || out == nil {
		return value
	}

	switch Classify(out) {
	case KindScalarURI:
		if s, ok := value.(string); ok {
			return NewFile(s, fetcher)
		}
		return value

	case KindListURI:
		list, ok := value.([]interface{})
		if !ok {
			return value
		}
		transformed := make([]interface{}, len(list))
		for i, item := range list {
			if s, ok := item.(string); ok {
				transformed[i] = NewFile(s, fetcher)
			} else {
				transformed[i] = item
			}
		}
		return transformed

	case KindObject:
		obj, ok := value.(map[string]interface{})
		if !ok {
			return value
		}
		transformed := make(map[string]interface{}, len(obj))
		for key, item := range obj {
			// Only named properties are transformed; unknown keys pass through.
			if prop, ok := out.Properties[key]; ok {
				transformed[key] = Transform(item, &prop, fetcher)
			} else {
				transformed[key] = item
			}
		}
		return transformed

	default:
		return value
	}
}
