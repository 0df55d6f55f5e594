package repository

import "context"

const defaultPageSize = 1000

// FetchPage produces one page of rows starting at offset. Implementations
// translate the offset into an inclusive [offset, offset+limit-1] range on
// the remote table.
type FetchPage[T any] func(ctx context.Context, offset, limit int) ([]T, error)

// ScanAll drains every page until the producer returns a short or empty
// page, which is the only termination signal the remote offers. The short
// page bound also protects against a misbehaving remote feeding pages
// forever.
func ScanAll[T any](ctx context.Context, pageSize int, fetch FetchPage[T]) ([]T, error) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	var rows []T
	for offset := 0; ; offset += pageSize {
		batch, err := fetch(ctx, offset, pageSize)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}
		rows = append(rows, batch...)
		if len(batch) < pageSize {
			break
		}
	}
	return rows, nil
}
