package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pagedFake(rows []int) FetchPage[int] {
	return func(_ context.Context, offset, limit int) ([]int, error) {
		if offset >= len(rows) {
			return nil, nil
		}
		end := offset + limit
		if end > len(rows) {
			end = len(rows)
		}
		return rows[offset:end], nil
	}
}

func TestScanAllDrainsMultiplePages(t *testing.T) {
	rows := make([]int, 0, 25)
	for i := 0; i < 25; i++ {
		rows = append(rows, i)
	}

	got, err := ScanAll(context.Background(), 10, pagedFake(rows))
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestScanAllStopsOnShortPage(t *testing.T) {
	calls := 0
	fetch := func(_ context.Context, offset, limit int) ([]int, error) {
		calls++
		return []int{1, 2, 3}, nil
	}

	got, err := ScanAll(context.Background(), 10, fetch)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.Equal(t, 1, calls)
}

func TestScanAllStopsOnEmptyFirstPage(t *testing.T) {
	got, err := ScanAll(context.Background(), 10, pagedFake(nil))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestScanAllPropagatesFetchError(t *testing.T) {
	boom := errors.New("transport down")
	fetch := func(_ context.Context, offset, limit int) ([]int, error) {
		if offset > 0 {
			return nil, boom
		}
		page := make([]int, limit)
		return page, nil
	}

	_, err := ScanAll(context.Background(), 5, fetch)
	assert.ErrorIs(t, err, boom)
}

func TestScanAllDefaultsPageSize(t *testing.T) {
	var seenLimit int
	fetch := func(_ context.Context, offset, limit int) ([]int, error) {
		seenLimit = limit
		return nil, nil
	}
	_, err := ScanAll(context.Background(), 0, fetch)
	require.NoError(t, err)
	assert.Equal(t, defaultPageSize, seenLimit)
}
