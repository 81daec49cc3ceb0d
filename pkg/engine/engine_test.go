package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/zeitgate-dev/zeitgate/pkg/api"
	"github.com/zeitgate-dev/zeitgate/pkg/cache"
	"github.com/zeitgate-dev/zeitgate/pkg/provider"
)

// mockProvider is a configurable test provider.
type mockProvider struct {
	name        string
	patterns    []string
	pointOnly   bool
	timemap     api.TimeMap
	listErr     error
	lookupCalls int
	listCalls   int
}

func (m *mockProvider) Name() string      { return m.name }
func (m *mockProvider) Patterns() []string { return m.patterns }
func (m *mockProvider) Capabilities() provider.Capabilities {
	return provider.Capabilities{PointOnly: m.pointOnly}
}

func (m *mockProvider) Lookup(ctx context.Context, uri string, at time.Time) (api.Memento, error) {
	m.lookupCalls++
	if len(m.timemap) == 0 {
		return api.Memento{}, api.NewNoMementoError(uri)
	}
	best, _ := Closest(m.timemap, at)
	return best, nil
}

func (m *mockProvider) ListAll(ctx context.Context, uri string) (api.TimeMap, error) {
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.timemap, nil
}

func newTestEngine(t *testing.T, providers ...provider.Provider) *Engine {
	t.Helper()
	reg, err := provider.NewRegistry(providers...)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	e, err := New(reg, cache.New(cache.DefaultConfig()), Config{
		BaseURL:    "http://gate.example",
		GatePrefix: "timegate",
		MapPrefix:  "timemap",
	})
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	return e
}

func sampleTimeMap() api.TimeMap {
	return api.TimeMap{
		mem("http://archive.example/2020/page", "2020-01-01T00:00:00Z"),
		mem("http://archive.example/2021/page", "2021-01-01T00:00:00Z"),
		mem("http://archive.example/2022/page", "2022-01-01T00:00:00Z"),
	}
}

func TestNewValidation(t *testing.T) {
	reg, _ := provider.NewRegistry(&mockProvider{name: "p", patterns: []string{"http://"}})

	if _, err := New(nil, cache.New(cache.DefaultConfig()), Config{}); err == nil {
		t.Error("expected error for nil registry")
	}
	if _, err := New(reg, nil, Config{}); err == nil {
		t.Error("expected error for nil cache")
	}
	e, err := New(reg, cache.New(cache.DefaultConfig()), Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.DateFormat() != api.DefaultDateFormat {
		t.Errorf("expected default date format, got %q", e.DateFormat())
	}
}

func TestNegotiateMemento(t *testing.T) {
	p := &mockProvider{
		name:     "archive",
		patterns: []string{`http://archive\.example/.*`, `http://example\.org/.*`},
		timemap:  sampleTimeMap(),
	}
	e := newTestEngine(t, p)

	res, err := e.NegotiateMemento(context.Background(), &api.GateRequest{
		Resource:       "http://example.org/page",
		AcceptDatetime: "Thu, 15 Apr 2021 00:00:00 GMT",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Memento.URI != "http://archive.example/2021/page" {
		t.Errorf("expected the 2021 snapshot, got %s", res.Memento.URI)
	}
	if res.Resource != "http://example.org/page" {
		t.Errorf("unexpected normalized resource %q", res.Resource)
	}
	want := "http://gate.example/timemap/http://example.org/page"
	if res.TimeMapURL != want {
		t.Errorf("TimeMapURL = %q, want %q", res.TimeMapURL, want)
	}
}

func TestNegotiateMementoNormalizesResource(t *testing.T) {
	p := &mockProvider{
		name:     "archive",
		patterns: []string{`http://example\.org/.*`},
		timemap:  sampleTimeMap(),
	}
	e := newTestEngine(t, p)

	// Scheme-less path segment gets the http:// prefix before routing.
	res, err := e.NegotiateMemento(context.Background(), &api.GateRequest{
		Resource:       "example.org/page",
		AcceptDatetime: "Thu, 15 Apr 2021 00:00:00 GMT",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Resource != "http://example.org/page" {
		t.Errorf("expected scheme coercion, got %q", res.Resource)
	}
}

func TestNegotiateMementoBadTime(t *testing.T) {
	p := &mockProvider{name: "archive", patterns: []string{"http://"}, timemap: sampleTimeMap()}
	e := newTestEngine(t, p)

	_, err := e.NegotiateMemento(context.Background(), &api.GateRequest{
		Resource:       "http://example.org/page",
		AcceptDatetime: "not a date at all %%",
	})
	assertKind(t, err, api.ErrorKindTimeParse)
	if p.listCalls != 0 {
		t.Error("time parse failure must not reach the provider")
	}
}

func TestNegotiateMementoBadResource(t *testing.T) {
	e := newTestEngine(t, &mockProvider{name: "archive", patterns: []string{"http://"}})

	_, err := e.NegotiateMemento(context.Background(), &api.GateRequest{
		Resource:       "http://",
		AcceptDatetime: "Thu, 15 Apr 2021 00:00:00 GMT",
	})
	assertKind(t, err, api.ErrorKindURIParse)
}

func TestNegotiateMementoNoRoute(t *testing.T) {
	e := newTestEngine(t, &mockProvider{
		name:     "narrow",
		patterns: []string{`http://only\.example/.*`},
		timemap:  sampleTimeMap(),
	})

	_, err := e.NegotiateMemento(context.Background(), &api.GateRequest{
		Resource:       "http://elsewhere.example/page",
		AcceptDatetime: "Thu, 15 Apr 2021 00:00:00 GMT",
	})
	assertKind(t, err, api.ErrorKindNoRoute)
}

func TestNegotiateMementoEmptyTimeline(t *testing.T) {
	e := newTestEngine(t, &mockProvider{name: "archive", patterns: []string{"http://"}})

	_, err := e.NegotiateMemento(context.Background(), &api.GateRequest{
		Resource:       "http://example.org/page",
		AcceptDatetime: "Thu, 15 Apr 2021 00:00:00 GMT",
	})
	assertKind(t, err, api.ErrorKindNoMemento)
}

func TestNegotiateMementoProviderFailure(t *testing.T) {
	cause := errors.New("backend down")
	e := newTestEngine(t, &mockProvider{
		name:     "archive",
		patterns: []string{"http://"},
		listErr:  cause,
	})

	_, err := e.NegotiateMemento(context.Background(), &api.GateRequest{
		Resource:       "http://example.org/page",
		AcceptDatetime: "Thu, 15 Apr 2021 00:00:00 GMT",
	})
	assertKind(t, err, api.ErrorKindProvider)
	if !errors.Is(err, cause) {
		t.Error("provider error should wrap the backend cause")
	}
}

func TestNegotiateMementoPointOnly(t *testing.T) {
	p := &mockProvider{
		name:      "point",
		patterns:  []string{"http://"},
		pointOnly: true,
		timemap:   sampleTimeMap(),
	}
	e := newTestEngine(t, p)

	res, err := e.NegotiateMemento(context.Background(), &api.GateRequest{
		Resource:       "http://example.org/page",
		AcceptDatetime: "Thu, 15 Apr 2021 00:00:00 GMT",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.lookupCalls != 1 || p.listCalls != 0 {
		t.Errorf("point-only flow must use Lookup, not ListAll (lookup=%d list=%d)",
			p.lookupCalls, p.listCalls)
	}
	if res.TimeMapURL != "" {
		t.Errorf("point-only result must not advertise a timemap, got %q", res.TimeMapURL)
	}
}

func TestNegotiateMementoStrictTime(t *testing.T) {
	reg, _ := provider.NewRegistry(&mockProvider{
		name: "archive", patterns: []string{"http://"}, timemap: sampleTimeMap(),
	})
	e, err := New(reg, cache.New(cache.DefaultConfig()), Config{
		BaseURL: "http://gate.example", GatePrefix: "timegate", MapPrefix: "timemap",
		StrictTime: true,
	})
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	// Exact layout passes.
	if _, err := e.NegotiateMemento(context.Background(), &api.GateRequest{
		Resource:       "http://example.org/page",
		AcceptDatetime: "Thu, 15 Apr 2021 00:00:00 GMT",
	}); err != nil {
		t.Errorf("exact layout rejected: %v", err)
	}

	// Anything else is rejected in strict mode.
	_, err = e.NegotiateMemento(context.Background(), &api.GateRequest{
		Resource:       "http://example.org/page",
		AcceptDatetime: "2021-04-15",
	})
	assertKind(t, err, api.ErrorKindTimeParse)
}

func TestListTimeMap(t *testing.T) {
	tm := sampleTimeMap()
	p := &mockProvider{name: "archive", patterns: []string{"http://"}, timemap: tm}
	e := newTestEngine(t, p)

	res, err := e.ListTimeMap(context.Background(), &api.MapRequest{
		Resource: "http://example.org/page",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.TimeMap) != len(tm) {
		t.Errorf("expected %d mementos, got %d", len(tm), len(res.TimeMap))
	}
	if res.TimeGateURL != "http://gate.example/timegate/http://example.org/page" {
		t.Errorf("unexpected TimeGateURL %q", res.TimeGateURL)
	}
	if res.SelfURL != "http://gate.example/timemap/http://example.org/page" {
		t.Errorf("unexpected SelfURL %q", res.SelfURL)
	}
}

func TestListTimeMapEmptyTimelineSucceeds(t *testing.T) {
	e := newTestEngine(t, &mockProvider{name: "archive", patterns: []string{"http://"}})

	res, err := e.ListTimeMap(context.Background(), &api.MapRequest{
		Resource: "http://example.org/page",
	})
	if err != nil {
		t.Fatalf("an empty timeline is a valid listing, got error: %v", err)
	}
	if len(res.TimeMap) != 0 {
		t.Errorf("expected empty timemap, got %d entries", len(res.TimeMap))
	}
}

func TestListTimeMapSkipsPointOnlyProviders(t *testing.T) {
	point := &mockProvider{
		name: "point", patterns: []string{"http://"}, pointOnly: true, timemap: sampleTimeMap(),
	}
	full := &mockProvider{
		name: "full", patterns: []string{"http://"}, timemap: sampleTimeMap(),
	}
	e := newTestEngine(t, point, full)

	if _, err := e.ListTimeMap(context.Background(), &api.MapRequest{
		Resource: "http://example.org/page",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if point.listCalls != 0 {
		t.Error("listing must never reach a point-only provider")
	}
	if full.listCalls != 1 {
		t.Errorf("expected one listing on the full provider, got %d", full.listCalls)
	}
}

func TestListTimeMapUsesCache(t *testing.T) {
	p := &mockProvider{name: "archive", patterns: []string{"http://"}, timemap: sampleTimeMap()}
	e := newTestEngine(t, p)

	for i := 0; i < 3; i++ {
		if _, err := e.ListTimeMap(context.Background(), &api.MapRequest{
			Resource: "http://example.org/page",
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if p.listCalls != 1 {
		t.Errorf("expected one backend fetch across repeat listings, got %d", p.listCalls)
	}
}

func assertKind(t *testing.T, err error, kind api.ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	var gateErr *api.GateError
	if !errors.As(err, &gateErr) {
		t.Fatalf("expected GateError, got %T: %v", err, err)
	}
	if gateErr.Kind != kind {
		t.Errorf("expected kind %s, got %s (%v)", kind, gateErr.Kind, err)
	}
}
