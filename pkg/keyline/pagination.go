package keyline

import (
	"context"
	"errors"
)

// PageFunc fetches one numbered page of resources. Implementations close
// over a resource client and its kind-specific filters, for example:
//
//	fetch := func(ctx context.Context, page keyline.PageOptions) (*keyline.ListResponse[keyline.License], error) {
//		return client.Licenses().List(ctx, &keyline.LicenseListOptions{
//			ListOptions: keyline.ListOptions{Page: page},
//		})
//	}
type PageFunc[T any] func(ctx context.Context, page PageOptions) (*ListResponse[T], error)

// PaginationOptions bound a multi-page walk. PageSize selects the per-page
// size (0 leaves the server default); MaxPages caps the number of fetched
// pages (0 means unlimited).
type PaginationOptions struct {
	PageSize int
	MaxPages int
}

// PageIterator walks a paginated list item by item, fetching pages lazily.
// Iteration follows meta.pages.next and additionally stops on a page
// shorter than the requested size, so servers that keep advertising a next
// link on the final page do not cause an extra round trip.
type PageIterator[T any] struct {
	ctx      context.Context
	fetch    PageFunc[T]
	pageSize int
	page     int
	buffer   []T
	index    int
	done     bool
}

// NewPageIterator creates an iterator over the list served by fetch,
// starting at page one. A pageSize of 0 leaves the server default in place.
func NewPageIterator[T any](ctx context.Context, fetch PageFunc[T], pageSize int) *PageIterator[T] {
	return &PageIterator[T]{
		ctx:      ctx,
		fetch:    fetch,
		pageSize: pageSize,
		page:     1,
	}
}

// HasNext reports whether another item may be available. It is optimistic
// before the first fetch; a subsequent Next returns ErrNoMorePages when the
// list turns out to be exhausted.
func (it *PageIterator[T]) HasNext() bool {
	if it.index < len(it.buffer) {
		return true
	}

	return !it.done
}

// Next returns the next item, fetching the next page when the current one
// is consumed. It returns ErrNoMorePages once the list is exhausted.
func (it *PageIterator[T]) Next() (T, error) {
	var zero T

	for it.index >= len(it.buffer) {
		if it.done {
			return zero, ErrNoMorePages
		}

		err := it.fetchPage()
		if err != nil {
			return zero, err
		}
	}

	item := it.buffer[it.index]
	it.index++

	return item, nil
}

// All drains the iterator and returns every remaining item.
func (it *PageIterator[T]) All() ([]T, error) {
	var items []T

	for it.HasNext() {
		item, err := it.Next()
		if errors.Is(err, ErrNoMorePages) {
			break
		}

		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, nil
}

// ForEach applies fn to every remaining item, stopping on the first error
// fn returns.
func (it *PageIterator[T]) ForEach(fn func(item T) error) error {
	for it.HasNext() {
		item, err := it.Next()
		if errors.Is(err, ErrNoMorePages) {
			return nil
		}

		if err != nil {
			return err
		}

		err = fn(item)
		if err != nil {
			return err
		}
	}

	return nil
}

func (it *PageIterator[T]) fetchPage() error {
	response, err := it.fetch(it.ctx, PageOptions{Size: it.pageSize, Number: it.page})
	if err != nil {
		it.done = true

		return err
	}

	it.buffer = response.Data
	it.index = 0
	it.page++

	if lastPage(response, it.pageSize) {
		it.done = true
	}

	return nil
}

// FetchAll walks every page and returns the concatenated items. Options may
// cap the walk; a nil options walks everything at the server default size.
func FetchAll[T any](ctx context.Context, fetch PageFunc[T], options *PaginationOptions) ([]T, error) {
	pageSize, maxPages := 0, 0
	if options != nil {
		pageSize, maxPages = options.PageSize, options.MaxPages
	}

	var items []T

	for page := 1; maxPages == 0 || page <= maxPages; page++ {
		response, err := fetch(ctx, PageOptions{Size: pageSize, Number: page})
		if err != nil {
			return nil, err
		}

		items = append(items, response.Data...)

		if lastPage(response, pageSize) {
			break
		}
	}

	return items, nil
}

// PageResult is one page delivered by StreamPages. Err is set on the final
// result when a fetch failed; the channel closes afterwards.
type PageResult[T any] struct {
	Items []T
	Meta  ListMeta
	Err   error
}

// StreamPages fetches pages sequentially and delivers each over the
// returned channel. The channel closes after the last page, the first fetch
// error, or context cancellation.
func StreamPages[T any](ctx context.Context, fetch PageFunc[T], options *PaginationOptions) <-chan PageResult[T] {
	pageSize, maxPages := 0, 0
	if options != nil {
		pageSize, maxPages = options.PageSize, options.MaxPages
	}

	results := make(chan PageResult[T])

	go func() {
		defer close(results)

		for page := 1; maxPages == 0 || page <= maxPages; page++ {
			response, err := fetch(ctx, PageOptions{Size: pageSize, Number: page})
			if err != nil {
				select {
				case results <- PageResult[T]{Err: err}:
				case <-ctx.Done():
				}

				return
			}

			select {
			case results <- PageResult[T]{Items: response.Data, Meta: response.Meta}:
			case <-ctx.Done():
				return
			}

			if lastPage(response, pageSize) {
				return
			}
		}
	}()

	return results
}

// lastPage reports whether response is the final page of its list: the
// server advertised no next page, the page was empty, or it came back
// shorter than the requested size.
func lastPage[T any](response *ListResponse[T], pageSize int) bool {
	if !response.HasNext() || len(response.Data) == 0 {
		return true
	}

	return pageSize > 0 && len(response.Data) < pageSize
}
