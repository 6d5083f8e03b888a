package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path"
	"strconv"
	"testing"
)

// fakeEventsAPI serves a minimal Events list/delete surface with cursor
// pagination over the live event set, the way the real API behaves: a page
// token is an offset into whatever is left, so deleting while paging skips
// events.
type fakeEventsAPI struct {
	events   []string
	pageSize int
}

func (f *fakeEventsAPI) handler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodDelete {
		id := path.Base(r.URL.Path)
		for i, ev := range f.events {
			if ev == id {
				f.events = append(f.events[:i], f.events[i+1:]...)
				break
			}
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	offset := 0
	if tok := r.URL.Query().Get("pageToken"); tok != "" {
		offset, _ = strconv.Atoi(tok)
	}
	end := offset + f.pageSize
	if end > len(f.events) {
		end = len(f.events)
	}

	items := []map[string]string{}
	for _, id := range f.events[offset:end] {
		items = append(items, map[string]string{"id": id})
	}
	resp := map[string]interface{}{"items": items}
	if end < len(f.events) {
		resp["nextPageToken"] = strconv.Itoa(end)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func TestGoogleClearDeletesAcrossPages(t *testing.T) {
	api := &fakeEventsAPI{
		events:   []string{"e1", "e2", "e3", "e4", "e5"},
		pageSize: 2,
	}
	srv := httptest.NewServer(http.HandlerFunc(api.handler))
	defer srv.Close()

	sink, err := NewGoogleCalendarSink(context.Background(), srv.Client())
	if err != nil {
		t.Fatalf("NewGoogleCalendarSink error: %v", err)
	}
	sink.service.BasePath = srv.URL + "/"

	if err := sink.Clear("cal"); err != nil {
		t.Fatalf("Clear error: %v", err)
	}

	// Deleting mid-pagination would shift the cursor past survivors; the
	// whole set must be gone.
	if len(api.events) != 0 {
		t.Errorf("%d events left after Clear: %v", len(api.events), api.events)
	}
}
