package imposition

import (
	"encoding/json"
	"testing"
)

func TestPageRefString(t *testing.T) {
	if got := Page(3).String(); got != "3" {
		t.Errorf("Page(3).String() = %q", got)
	}
	if got := Blank().String(); got != "blank" {
		t.Errorf("Blank().String() = %q", got)
	}
}

func TestPageRefJSON(t *testing.T) {
	data, err := json.Marshal([]PageRef{Page(0), Blank(), Page(7)})
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if got := string(data); got != `[0,"blank",7]` {
		t.Errorf("JSON = %s", got)
	}
}

func TestPageRangeCoversDocument(t *testing.T) {
	pages := PageRange(3)
	if len(pages) != 3 {
		t.Fatalf("len = %d", len(pages))
	}
	for i, ref := range pages {
		if ref.IsBlank() || ref.Index() != i {
			t.Errorf("pages[%d] = %v", i, ref)
		}
	}
	if len(PageRange(0)) != 0 {
		t.Error("PageRange(0) should be empty")
	}
}

func TestPagePanicsOnNegativeIndex(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	Page(-1)
}
