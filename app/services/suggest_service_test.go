package services

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/election-directory/app/config"
)

func TestSuggestService_Suggest(t *testing.T) {
	ss := NewSuggestService(newTestStore(t), zap.NewNop())

	cases := []struct {
		name      string
		query     string
		wantFirst string
	}{
		{"exact substring", "nguyen", "e1"},
		{"accented input", "Nguyễn", "e1"},
		{"typo in token", "nguyne", "e1"},
		{"other candidate", "binh", "e2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ss.Suggest(context.Background(), "qh15", tc.query, 5)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) == 0 {
				t.Fatalf("no suggestions for %q", tc.query)
			}
			if got[0].EntryID != tc.wantFirst {
				t.Errorf("first suggestion = %s (%q), want %s", got[0].EntryID, got[0].Name, tc.wantFirst)
			}
		})
	}
}

func TestSuggestService_NoMatchForDistantQuery(t *testing.T) {
	ss := NewSuggestService(newTestStore(t), zap.NewNop())

	got, err := ss.Suggest(context.Background(), "qh15", "xyzqwertyuiop", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("distant query matched: %+v", got)
	}
}

func TestSuggestService_EmptyQuery(t *testing.T) {
	ss := NewSuggestService(newTestStore(t), zap.NewNop())

	got, err := ss.Suggest(context.Background(), "qh15", "   ", 5)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatalf("blank query returned %+v", got)
	}
}

func TestSuggestService_LimitFromConfig(t *testing.T) {
	oldLimit := config.C.Directory.SuggestLimit
	config.C.Directory.SuggestLimit = 1
	t.Cleanup(func() { config.C.Directory.SuggestLimit = oldLimit })

	ss := NewSuggestService(newTestStore(t), zap.NewNop())

	// "n" matches both fixture names; the configured limit keeps one.
	got, err := ss.Suggest(context.Background(), "qh15", "n", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d suggestions, want configured limit 1", len(got))
	}
}
