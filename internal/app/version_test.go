package app

import "testing"

func TestBuildVersion(t *testing.T) {
	want := Version + " (commit: " + Commit + ", built: " + BuildTime + ")"
	if got := BuildVersion(); got != want {
		t.Errorf("BuildVersion() = %q, want %q", got, want)
	}
}

func TestUserAgent(t *testing.T) {
	if got, want := UserAgent(), "tezaurs-gateway/"+Version; got != want {
		t.Errorf("UserAgent() = %q, want %q", got, want)
	}
}
