package domain

import "testing"

func TestOffsetLimitRequiresBothPageParameters(t *testing.T) {
	five := 5
	three := 3

	offset, limit := SearchParams{}.OffsetLimit()
	if offset != nil || limit != nil {
		t.Fatal("expected nil offset and limit when unpaginated")
	}

	offset, limit = SearchParams{PageNumber: &three}.OffsetLimit()
	if offset != nil || limit != nil {
		t.Fatal("page number alone must not paginate")
	}

	offset, limit = SearchParams{PageSize: &five}.OffsetLimit()
	if offset != nil || limit != nil {
		t.Fatal("page size alone must not paginate")
	}

	offset, limit = SearchParams{PageNumber: &three, PageSize: &five}.OffsetLimit()
	if offset == nil || *offset != 10 {
		t.Fatalf("expected offset 10, got %v", offset)
	}
	if limit == nil || *limit != 5 {
		t.Fatalf("expected limit 5, got %v", limit)
	}
}

func TestInt64ListContains(t *testing.T) {
	list := Int64List{3, 5, 8}
	if !list.Contains(5) {
		t.Fatal("expected membership of 5")
	}
	if list.Contains(4) {
		t.Fatal("did not expect membership of 4")
	}
}
