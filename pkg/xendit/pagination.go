package xendit

import (
	"context"
	"encoding/json"
	"iter"
	"net/url"
	"strconv"
)

// Pagination defaults.
const (
	DefaultMaxPages = 100
)

// Query parameter names used for cursor pagination.
const (
	QueryLimit    = "limit"
	QueryAfterID  = "after_id"
	QueryBeforeID = "before_id"
)

// Getter is the part of the HTTP transport the pagination helpers need.
type Getter interface {
	Get(ctx context.Context, path string, query url.Values) (*Response, error)
}

// Transport is the HTTP capability used by the endpoint functions.
type Transport interface {
	Getter
	Post(ctx context.Context, path string, body interface{}) (*Response, error)
	Patch(ctx context.Context, path string, body interface{}) (*Response, error)
}

// PageLink is a navigation link returned with some list responses.
type PageLink struct {
	Href   string `json:"href"             yaml:"href"`
	Rel    string `json:"rel"              yaml:"rel"`
	Method string `json:"method,omitempty" yaml:"method,omitempty"`
}

// Page is one page of a cursor-paginated collection.
type Page[T any] struct {
	Data       []T        `json:"data"                  yaml:"data"`
	HasMore    bool       `json:"has_more"              yaml:"has_more"`
	AfterID    string     `json:"after_id,omitempty"    yaml:"after_id,omitempty"`
	BeforeID   string     `json:"before_id,omitempty"   yaml:"before_id,omitempty"`
	TotalCount *int       `json:"total_count,omitempty" yaml:"total_count,omitempty"`
	Links      []PageLink `json:"links,omitempty"       yaml:"links,omitempty"`
}

// nextCursor fills AfterID from the "next" link when the API only returned links.
func (p *Page[T]) nextCursor() {
	if p.AfterID != "" || !p.HasMore {
		return
	}

	for _, link := range p.Links {
		if link.Rel != "next" {
			continue
		}

		parsed, err := url.Parse(link.Href)
		if err != nil {
			continue
		}

		if afterID := parsed.Query().Get(QueryAfterID); afterID != "" {
			p.AfterID = afterID

			return
		}
	}
}

// ListOptions are the query options sent to a collection endpoint.
type ListOptions struct {
	// Limit is the page size; 0 leaves it to the API.
	Limit int
	// AfterID requests the page following this cursor.
	AfterID string
	// BeforeID requests the page preceding this cursor.
	BeforeID string
	// Filters holds endpoint-specific filters. Repeated values are sent as
	// repeated query entries.
	Filters url.Values
}

// ToValues converts the options to query parameters.
func (o *ListOptions) ToValues() url.Values {
	values := url.Values{}
	if o == nil {
		return values
	}

	if o.Limit > 0 {
		values.Set(QueryLimit, strconv.Itoa(o.Limit))
	}

	if o.AfterID != "" {
		values.Set(QueryAfterID, o.AfterID)
	}

	if o.BeforeID != "" {
		values.Set(QueryBeforeID, o.BeforeID)
	}

	for key, entries := range o.Filters {
		for _, entry := range entries {
			values.Add(key, entry)
		}
	}

	return values
}

// Merge returns a copy of o with the non-zero fields of override applied.
// Filters are merged per key, with override's entries replacing o's.
func (o *ListOptions) Merge(override *ListOptions) ListOptions {
	var merged ListOptions
	if o != nil {
		merged = *o
		merged.Filters = cloneValues(o.Filters)
	}

	if override == nil {
		return merged
	}

	if override.Limit > 0 {
		merged.Limit = override.Limit
	}

	if override.AfterID != "" {
		merged.AfterID = override.AfterID
	}

	if override.BeforeID != "" {
		merged.BeforeID = override.BeforeID
	}

	for key, entries := range override.Filters {
		if merged.Filters == nil {
			merged.Filters = url.Values{}
		}

		merged.Filters[key] = append([]string(nil), entries...)
	}

	return merged
}

func cloneValues(values url.Values) url.Values {
	if values == nil {
		return nil
	}

	cloned := make(url.Values, len(values))
	for key, entries := range values {
		cloned[key] = append([]string(nil), entries...)
	}

	return cloned
}

// PaginationOptions bounds the work done by FetchAllPages and IterateItems.
type PaginationOptions struct {
	// MaxPages caps the number of pages fetched; 0 means DefaultMaxPages.
	MaxPages int
	// MaxItems caps the number of items returned; 0 means unbounded.
	MaxItems int
}

// DefaultPaginationOptions returns the default pagination bounds.
func DefaultPaginationOptions() *PaginationOptions {
	return &PaginationOptions{
		MaxPages: DefaultMaxPages,
	}
}

func (o *PaginationOptions) resolve() PaginationOptions {
	resolved := *DefaultPaginationOptions()
	if o == nil {
		return resolved
	}

	if o.MaxPages > 0 {
		resolved.MaxPages = o.MaxPages
	}

	if o.MaxItems > 0 {
		resolved.MaxItems = o.MaxItems
	}

	return resolved
}

// FetchPage fetches and decodes a single page.
func FetchPage[T any](ctx context.Context, getter Getter, path string, opts *ListOptions) (*Page[T], error) {
	if getter == nil {
		return nil, MapError(ErrNilTransport)
	}

	resp, err := getter.Get(ctx, path, opts.ToValues())
	if err != nil {
		return nil, MapError(err)
	}

	var page Page[T]

	err = json.Unmarshal(resp.Body, &page)
	if err != nil {
		return nil, NewResponseShapeError("page", err)
	}

	if page.Data == nil {
		page.Data = []T{}
	}

	page.nextCursor()

	return &page, nil
}

// Paginator walks a collection one page at a time. It is ACTIVE until a
// page reports no further pages, then EXHAUSTED until Reset.
//
// A Paginator is not safe for concurrent use.
type Paginator[T any] struct {
	getter    Getter
	path      string
	initial   ListOptions
	current   ListOptions
	exhausted bool
}

// NewPaginator creates a paginator starting from opts.
func NewPaginator[T any](getter Getter, path string, opts *ListOptions) *Paginator[T] {
	initial := opts.Merge(nil)

	return &Paginator[T]{
		getter:  getter,
		path:    path,
		initial: initial,
		current: initial.Merge(nil),
	}
}

// Next fetches the next page. Once exhausted it returns an empty page and
// done=true without a network call. A failed fetch leaves the cursor
// unchanged, so calling Next again retries the same page.
func (p *Paginator[T]) Next(ctx context.Context) (*Page[T], bool, error) {
	if p.exhausted {
		return &Page[T]{Data: []T{}}, true, nil
	}

	page, err := FetchPage[T](ctx, p.getter, p.path, &p.current)
	if err != nil {
		return nil, false, err
	}

	if page.HasMore && page.AfterID != "" {
		p.current.AfterID = page.AfterID
	} else {
		p.exhausted = true
	}

	return page, p.exhausted, nil
}

// Reset restarts the walk from the construction options merged with override.
func (p *Paginator[T]) Reset(override *ListOptions) {
	p.current = p.initial.Merge(override)
	p.exhausted = false
}

// HasMore reports whether further pages may exist.
func (p *Paginator[T]) HasMore() bool {
	return !p.exhausted
}

// FetchAllPages eagerly collects items until MaxPages pages have been
// fetched, MaxItems items collected, or the collection ends. The result is
// truncated to MaxItems.
func FetchAllPages[T any](ctx context.Context, getter Getter, path string, opts *ListOptions, popts *PaginationOptions) ([]T, error) {
	bounds := popts.resolve()
	paginator := NewPaginator[T](getter, path, opts)
	items := make([]T, 0)

	for range bounds.MaxPages {
		page, done, err := paginator.Next(ctx)
		if err != nil {
			return nil, err
		}

		items = append(items, page.Data...)

		if bounds.MaxItems > 0 && len(items) >= bounds.MaxItems {
			return items[:bounds.MaxItems], nil
		}

		if done {
			break
		}
	}

	return items, nil
}

// IteratePages returns a lazy sequence of pages. Each pull performs one
// fetch. The sequence shares one Paginator, so ranging over it again resumes
// where the previous range stopped instead of starting over.
func IteratePages[T any](ctx context.Context, getter Getter, path string, opts *ListOptions) iter.Seq2[*Page[T], error] {
	paginator := NewPaginator[T](getter, path, opts)

	return func(yield func(*Page[T], error) bool) {
		for paginator.HasMore() {
			page, _, err := paginator.Next(ctx)
			if err != nil {
				yield(nil, err)

				return
			}

			if !yield(page, nil) {
				return
			}
		}
	}
}

// IterateItems returns a lazy sequence of items across pages, stopping after
// popts.MaxItems items when set or after popts.MaxPages pages have been
// fetched (DefaultMaxPages when unset), the same bounds FetchAllPages uses.
// A new page is fetched only once the current page's items are used up.
func IterateItems[T any](ctx context.Context, getter Getter, path string, opts *ListOptions, popts *PaginationOptions) iter.Seq2[T, error] {
	bounds := popts.resolve()
	maxItems := bounds.MaxItems
	paginator := NewPaginator[T](getter, path, opts)
	count := 0
	pages := 0

	return func(yield func(T, error) bool) {
		for paginator.HasMore() {
			if maxItems > 0 && count >= maxItems {
				return
			}

			if pages >= bounds.MaxPages {
				return
			}

			pages++

			page, _, err := paginator.Next(ctx)
			if err != nil {
				var zero T

				yield(zero, err)

				return
			}

			for _, item := range page.Data {
				if maxItems > 0 && count >= maxItems {
					return
				}

				if !yield(item, nil) {
					return
				}

				count++
			}
		}
	}
}
