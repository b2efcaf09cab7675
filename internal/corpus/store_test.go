package corpus

import (
	"testing"

	"github.com/hyperjump/kensaku/internal/models"
)

func TestNewStoreAssignsIndices(t *testing.T) {
	store := NewStore([]models.Document{
		{Title: "First", Body: "one"},
		{Title: "Second", Body: "two"},
		{Title: "Third", Body: "three"},
	})
	if store.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", store.Len())
	}
	for i := 0; i < store.Len(); i++ {
		doc := store.Get(i)
		if doc == nil {
			t.Fatalf("Get(%d) = nil", i)
		}
		if doc.Index != i {
			t.Errorf("Get(%d).Index = %d, want %d", i, doc.Index, i)
		}
	}
}

func TestStoreGetOutOfRange(t *testing.T) {
	store := NewStore([]models.Document{{Title: "only", Body: "doc"}})
	if store.Get(-1) != nil {
		t.Error("Get(-1) should be nil")
	}
	if store.Get(1) != nil {
		t.Error("Get(1) should be nil")
	}
}

func TestDocumentText(t *testing.T) {
	doc := models.Document{Title: "Cats and Dogs", Body: "Cats are great pets."}
	if got := doc.Text(); got != "Cats and Dogs Cats are great pets." {
		t.Errorf("Text() = %q", got)
	}
}

func TestEmptyStore(t *testing.T) {
	store := NewStore(nil)
	if store.Len() != 0 {
		t.Errorf("Len() = %d, want 0", store.Len())
	}
	if store.Get(0) != nil {
		t.Error("Get(0) on empty store should be nil")
	}
}
