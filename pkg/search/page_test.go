package search

import (
	"testing"
)

func sequence(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func TestPaginateBounds(t *testing.T) {
	tests := []struct {
		name       string
		length     int
		pageNumber int
		pageSize   int
		wantFirst  int
		wantLen    int
		wantMore   bool
	}{
		{name: "first page of many", length: 10, pageNumber: 1, pageSize: 3, wantFirst: 0, wantLen: 3, wantMore: true},
		{name: "middle page", length: 10, pageNumber: 2, pageSize: 3, wantFirst: 3, wantLen: 3, wantMore: true},
		{name: "final partial page", length: 10, pageNumber: 4, pageSize: 3, wantFirst: 9, wantLen: 1, wantMore: false},
		{name: "exact final page", length: 9, pageNumber: 3, pageSize: 3, wantFirst: 6, wantLen: 3, wantMore: false},
		{name: "page size larger than collection", length: 3, pageNumber: 1, pageSize: 50, wantFirst: 0, wantLen: 3, wantMore: false},
		{name: "page number below one is treated as one", length: 5, pageNumber: 0, pageSize: 2, wantFirst: 0, wantLen: 2, wantMore: true},
		{name: "negative page number", length: 5, pageNumber: -3, pageSize: 2, wantFirst: 0, wantLen: 2, wantMore: true},
		{name: "offset past the end is empty", length: 10, pageNumber: 5, pageSize: 3, wantLen: 0, wantMore: false},
		{name: "offset exactly at the end is empty", length: 9, pageNumber: 4, pageSize: 3, wantLen: 0, wantMore: false},
		{name: "empty collection", length: 0, pageNumber: 1, pageSize: 3, wantLen: 0, wantMore: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			items := sequence(tc.length)
			page := Paginate(items, tc.pageNumber, tc.pageSize)

			if len(page.Items) != tc.wantLen {
				t.Fatalf("got %d items, want %d", len(page.Items), tc.wantLen)
			}
			for i, v := range page.Items {
				if v != tc.wantFirst+i {
					t.Fatalf("items = %v, want contiguous run starting at %d", page.Items, tc.wantFirst)
				}
			}
			if page.HasMore != tc.wantMore {
				t.Errorf("HasMore = %v, want %v", page.HasMore, tc.wantMore)
			}
			if page.Total != tc.length {
				t.Errorf("Total = %d, want %d", page.Total, tc.length)
			}
		})
	}
}

func TestPaginateDoesNotMutateInput(t *testing.T) {
	items := sequence(10)
	Paginate(items, 2, 3)
	for i, v := range items {
		if v != i {
			t.Fatalf("input was mutated: %v", items)
		}
	}
}

func TestPaginateNormalizesPageMetadata(t *testing.T) {
	page := Paginate(sequence(4), 0, 0)
	if page.PageNumber != 1 {
		t.Errorf("PageNumber = %d, want 1", page.PageNumber)
	}
	if page.PageSize != DefaultPageSize {
		t.Errorf("PageSize = %d, want default %d", page.PageSize, DefaultPageSize)
	}
}
