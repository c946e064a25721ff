package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/flowtop/flowtop/internal/fileflows"
)

func TestStore_UpdateAndSnapshot(t *testing.T) {
	var s Store

	data := &fileflows.Snapshot{
		Authenticated: true,
		Version:       "24.08.1.3421",
		Status:        &fileflows.ServerStatus{Queue: 5, Processed: 100},
	}

	before := time.Now()
	s.Update(data, nil)

	snap := s.Snapshot()
	if !snap.HasData() {
		t.Fatal("HasData() = false after successful update")
	}
	if snap.Data.Version != "24.08.1.3421" || snap.Data.Status.Queue != 5 {
		t.Fatalf("snapshot data = %#v", snap.Data)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update(&fileflows.Snapshot{Version: "v1", Status: &fileflows.ServerStatus{Queue: 3}}, nil)

	before := time.Now()
	origErr := errors.New("boom")
	s.Update(nil, origErr)

	snap := s.Snapshot()
	if !snap.HasData() || snap.Data.Version != "v1" || snap.Data.Status.Queue != 3 {
		t.Fatalf("data changed on error: %#v", snap.Data)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatal("Snapshot should clone error instance")
	}
}

func TestStore_WholesaleReplacement(t *testing.T) {
	var s Store

	s.Update(&fileflows.Snapshot{
		Nodes: []fileflows.Node{{Name: "a"}, {Name: "b"}},
	}, nil)
	s.Update(&fileflows.Snapshot{
		Nodes: []fileflows.Node{{Name: "c"}},
	}, nil)

	snap := s.Snapshot()
	if len(snap.Data.Nodes) != 1 || snap.Data.Nodes[0].Name != "c" {
		t.Fatalf("nodes = %#v, want only the latest cycle's entries", snap.Data.Nodes)
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("zero-value store: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Update(nil, errors.New("fail 1"))
	if snap = s.Snapshot(); snap.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("after 1 failure: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Update(nil, errors.New("fail 2"))
	if snap = s.Snapshot(); snap.ConsecutiveFailures != 2 || !snap.IsOffline() {
		t.Fatalf("after 2 failures: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Update(nil, errors.New("fail 3"))
	if snap = s.Snapshot(); snap.ConsecutiveFailures != 3 || !snap.IsOffline() {
		t.Fatalf("after 3 failures: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Update(&fileflows.Snapshot{}, nil)
	if snap = s.Snapshot(); snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("after success: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}
}
