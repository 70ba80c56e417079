package types

// Page is the paginated list envelope used by the Infera API. Next and
// Previous are opaque cursor URLs; an empty Next means the listing is
// exhausted.
type Page[T any] struct {
	Results  []T    `json:"results"`
	Next     string `json:"next,omitempty"`
	Previous string `json:"previous,omitempty"`
}
