package bind

import (
	"net/url"
	"testing"

	"webconfig/internal/schema"
	"webconfig/internal/store"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	sc, err := schema.Build(`[
		{"name":"led","label":"LED","type":4,"default":"0"},
		{"name":"ssid","label":"WLAN","default":"home"},
		{"name":"mode","label":"Mode","type":8,"default":"a","options":[{"v":"a","l":"A"},{"v":"b","l":"B"}]}
	]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return store.New(sc, "node")
}

func TestSubmission_CheckboxPresent(t *testing.T) {
	s := newStore(t)

	Submission(url.Values{"led": {"on"}}, s)

	if got := s.String("led"); got != "1" {
		t.Fatalf("led = %q, want 1", got)
	}
}

func TestSubmission_CheckboxAbsent(t *testing.T) {
	s := newStore(t)
	i, _ := s.IndexOf("led")
	s.SetValue(i, "1")

	Submission(url.Values{"ssid": {"office"}}, s)

	if got := s.String("led"); got != "0" {
		t.Fatalf("led = %q, want 0", got)
	}
}

func TestSubmission_PartialKeepsValues(t *testing.T) {
	s := newStore(t)

	Submission(url.Values{"mode": {"b"}}, s)

	if s.String("mode") != "b" {
		t.Errorf("mode = %q", s.String("mode"))
	}
	if s.String("ssid") != "home" {
		t.Errorf("ssid must keep its value, got %q", s.String("ssid"))
	}
	if s.Identity() != "node" {
		t.Errorf("identity must keep its value, got %q", s.Identity())
	}
}

func TestSubmission_IdentityAndUnknownFields(t *testing.T) {
	s := newStore(t)

	Submission(url.Values{"apName": {"garage"}, "bogus": {"x"}, "ssid": {""}}, s)

	if s.Identity() != "garage" {
		t.Errorf("identity = %q", s.Identity())
	}
	if s.String("ssid") != "" {
		t.Errorf("an empty submitted value must be stored, got %q", s.String("ssid"))
	}
	if s.Count() != 3 {
		t.Errorf("unknown fields must not add parameters")
	}
}

func TestRequests(t *testing.T) {
	if SaveRequested(url.Values{"ssid": {"x"}}) {
		t.Errorf("no save without SAVE or RST")
	}
	if !SaveRequested(url.Values{"SAVE": {""}}) || RestartRequested(url.Values{"SAVE": {""}}) {
		t.Errorf("SAVE must save without restart")
	}
	if !SaveRequested(url.Values{"RST": {""}}) || !RestartRequested(url.Values{"RST": {""}}) {
		t.Errorf("RST must save and restart")
	}
}
