package attr

import (
	"slices"
	"testing"

	"github.com/matzehuels/netdraw/pkg/geo"
)

func TestValueFallsBackToDefault(t *testing.T) {
	r := NewRegistry()

	if got := Value(r, NumLanes); got != 1 {
		t.Errorf("NumLanes default = %d, want 1", got)
	}
	if got := Value(r, EdgeID); got != -1 {
		t.Errorf("EdgeID default = %d, want -1", got)
	}
	if got := Value(r, RoadGeometry); got != nil {
		t.Errorf("RoadGeometry default = %v, want nil", got)
	}
	if got := Value[int](nil, Length); got != 0 {
		t.Errorf("nil registry Length = %d, want 0", got)
	}
}

func TestProvideUsesAccessor(t *testing.T) {
	r := NewRegistry()
	cur := 10
	Provide(r, Length, func() int { return cur })
	Provide(r, LatLng, func() geo.LatLng { return geo.LatLng{Lat: 1, Lng: 2} })

	if got := Value(r, Length); got != 10 {
		t.Errorf("Length = %d, want 10", got)
	}
	cur = 25
	if got := Value(r, Length); got != 25 {
		t.Errorf("Length after update = %d, want 25 (accessor must be evaluated lazily)", got)
	}
	if got := Value(r, LatLng); got != (geo.LatLng{Lat: 1, Lng: 2}) {
		t.Errorf("LatLng = %v", got)
	}
}

func TestProvideTwicePanics(t *testing.T) {
	r := NewRegistry()
	Provide(r, Capacity, func() int { return 1 })
	defer func() {
		if recover() == nil {
			t.Error("second Provide should panic")
		}
	}()
	Provide(r, Capacity, func() int { return 2 })
}

func TestCustomAttribute(t *testing.T) {
	toll := New("toll", 0.0)
	r := NewRegistry()
	if got := Value(r, toll); got != 0.0 {
		t.Errorf("toll default = %v", got)
	}
	Provide(r, toll, func() float64 { return 2.5 })
	if got := Value(r, toll); got != 2.5 {
		t.Errorf("toll = %v, want 2.5", got)
	}
}

func TestProvidesAndNames(t *testing.T) {
	r := NewRegistry()
	Provide(r, TravelTime, func() int { return 0 })
	Provide(r, Capacity, func() int { return 0 })

	if !r.Provides("capacity") || r.Provides("num_lanes") {
		t.Error("Provides reports wrong bindings")
	}
	if got, want := r.Names(), []string{"capacity", "travel_time"}; !slices.Equal(got, want) {
		t.Errorf("Names = %v, want %v", got, want)
	}
	var nilReg *Registry
	if nilReg.Provides("capacity") || nilReg.Names() != nil {
		t.Error("nil registry should provide nothing")
	}
}
