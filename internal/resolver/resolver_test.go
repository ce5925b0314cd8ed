package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/dodyw/sholat-live/internal/geocode"
	"github.com/dodyw/sholat-live/internal/model"
)

type fakeStore struct {
	locations map[string]*model.Location
	gets      int
	creates   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{locations: map[string]*model.Location{}}
}

func (f *fakeStore) GetLocation(name string) (*model.Location, error) {
	f.gets++
	if loc, ok := f.locations[name]; ok {
		return loc, nil
	}
	for _, loc := range f.locations {
		for _, a := range loc.Aliases {
			if a == name {
				return loc, nil
			}
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateLocation(loc *model.Location) (*model.Location, error) {
	f.creates++
	if existing, ok := f.locations[loc.Name]; ok {
		return existing, nil
	}
	f.locations[loc.Name] = loc
	return loc, nil
}

func (f *fakeStore) ListLocations() ([]model.Location, error) { return nil, nil }

func (f *fakeStore) GetPrayerTimes(city, date string) (*model.PrayerTimes, error) {
	return nil, nil
}

func (f *fakeStore) UpsertPrayerTimes(entry *model.PrayerTimes) error { return nil }

type fakeGeocoder struct {
	result *geocode.Result
	err    error
	calls  int
}

func (f *fakeGeocoder) Search(_ context.Context, _ string) (*geocode.Result, error) {
	f.calls++
	return f.result, f.err
}

type fakeTimezones struct{ name string }

func (f *fakeTimezones) TimezoneFor(_, _ float64) string { return f.name }

func TestResolveBuiltinSkipsStoreAndGeocoder(t *testing.T) {
	store := newFakeStore()
	geo := &fakeGeocoder{}
	r := New(store, geo, &fakeTimezones{name: "Asia/Jakarta"})

	loc, err := r.Resolve(context.Background(), "Banda Aceh")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc == nil || loc.Name != "bandaaceh" {
		t.Fatalf("got %+v, want bandaaceh", loc)
	}
	if store.gets != 0 || geo.calls != 0 {
		t.Errorf("built-in city must not hit store (%d gets) or geocoder (%d calls)", store.gets, geo.calls)
	}
}

func TestResolveBuiltinAlias(t *testing.T) {
	r := New(newFakeStore(), &fakeGeocoder{}, &fakeTimezones{name: "Asia/Jakarta"})

	loc, err := r.Resolve(context.Background(), "jogja")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc == nil || loc.Name != "yogyakarta" {
		t.Fatalf("alias jogja should resolve to yogyakarta, got %+v", loc)
	}
}

func TestResolveFromStore(t *testing.T) {
	store := newFakeStore()
	store.locations["dubai"] = &model.Location{
		Name: "dubai", DisplayName: "Dubai",
		Latitude: 25.2048, Longitude: 55.2708, Timezone: "Asia/Dubai",
	}
	geo := &fakeGeocoder{}
	r := New(store, geo, &fakeTimezones{name: "Asia/Jakarta"})

	loc, err := r.Resolve(context.Background(), "dubai")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc == nil || loc.Timezone != "Asia/Dubai" {
		t.Fatalf("got %+v, want stored dubai record", loc)
	}
	if geo.calls != 0 {
		t.Errorf("store hit must not invoke geocoder, got %d calls", geo.calls)
	}
}

func TestResolveGeocodesAndPersists(t *testing.T) {
	store := newFakeStore()
	geo := &fakeGeocoder{result: &geocode.Result{
		DisplayName: "Cairo, Egypt", Latitude: 30.0444, Longitude: 31.2357, PlaceType: "city",
	}}
	r := New(store, geo, &fakeTimezones{name: "Africa/Cairo"})

	loc, err := r.Resolve(context.Background(), "cairo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc == nil {
		t.Fatal("expected a resolved location")
	}
	if loc.Timezone != "Africa/Cairo" {
		t.Errorf("timezone = %q, want Africa/Cairo", loc.Timezone)
	}
	if store.creates != 1 {
		t.Errorf("resolved city must be persisted once, got %d creates", store.creates)
	}

	// second resolve comes from the store, not the geocoder
	if _, err := r.Resolve(context.Background(), "cairo"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if geo.calls != 1 {
		t.Errorf("second resolve must be served from the store, got %d geocoder calls", geo.calls)
	}
}

func TestResolveRejectedGeocodeIsNotPersisted(t *testing.T) {
	store := newFakeStore()
	// the geocoder returns nil for non-city results
	geo := &fakeGeocoder{result: nil}
	r := New(store, geo, &fakeTimezones{name: "Asia/Jakarta"})

	loc, err := r.Resolve(context.Background(), "jalan sudirman")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc != nil {
		t.Fatalf("expected not found, got %+v", loc)
	}
	if store.creates != 0 {
		t.Errorf("nothing may be persisted on rejection, got %d creates", store.creates)
	}
}

func TestResolveInternationalFallback(t *testing.T) {
	store := newFakeStore()
	geo := &fakeGeocoder{err: errors.New("network down")}
	r := New(store, geo, &fakeTimezones{name: "Asia/Jakarta"})

	loc, err := r.Resolve(context.Background(), "tokyo")
	if err != nil {
		t.Fatalf("geocoder failure must degrade, not propagate: %v", err)
	}
	if loc == nil || loc.Timezone != "Asia/Tokyo" {
		t.Fatalf("got %+v, want the built-in tokyo override", loc)
	}
	if store.creates != 1 {
		t.Errorf("override result must be persisted, got %d creates", store.creates)
	}
}

func TestResolveUpstreamFailureDegradesToNotFound(t *testing.T) {
	store := newFakeStore()
	geo := &fakeGeocoder{err: errors.New("timeout")}
	r := New(store, geo, &fakeTimezones{name: "Asia/Jakarta"})

	loc, err := r.Resolve(context.Background(), "atlantis")
	if err != nil {
		t.Fatalf("upstream failure must degrade, not propagate: %v", err)
	}
	if loc != nil {
		t.Fatalf("expected not found, got %+v", loc)
	}
}

func TestDisplayTitle(t *testing.T) {
	tests := []struct{ in, want string }{
		{"banda aceh", "Banda Aceh"},
		{"medan", "Medan"},
		{"çanakkale", "Çanakkale"},
	}
	for _, tt := range tests {
		if got := displayTitle(tt.in); got != tt.want {
			t.Errorf("displayTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
