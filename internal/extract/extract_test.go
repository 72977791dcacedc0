package extract

import (
	"errors"
	"testing"
)

func TestElements_ResolvesWayPoints(t *testing.T) {
	raw := []byte(`{"elements":[
		{"type":"node","id":1,"lat":51.0,"lon":10.0},
		{"type":"node","id":2,"lat":51.1,"lon":10.1},
		{"type":"way","id":100,"nodes":[1,2],"tags":{"building":"yes"}}
	]}`)

	els, err := Elements(raw)
	if err != nil {
		t.Fatalf("Elements: %v", err)
	}
	if len(els) != 1 {
		t.Fatalf("len=%d want 1", len(els))
	}
	el := els[0]
	if el.ID != 100 {
		t.Fatalf("id=%d want 100", el.ID)
	}
	if len(el.Points) != 2 {
		t.Fatalf("points=%d want 2", len(el.Points))
	}
	if el.Points[0].Lat != 51.0 || el.Points[0].Lon != 10.0 {
		t.Fatalf("point[0]=%+v", el.Points[0])
	}
	if v, ok := el.Tags.Get("building"); !ok || v != "yes" {
		t.Fatalf("tags not carried through: %+v", el.Tags)
	}
}

func TestElements_DropsUnresolvableRefs(t *testing.T) {
	raw := []byte(`{"elements":[
		{"type":"node","id":1,"lat":51.0,"lon":10.0},
		{"type":"way","id":100,"nodes":[1,999]}
	]}`)

	els, err := Elements(raw)
	if err != nil {
		t.Fatalf("Elements: %v", err)
	}
	if len(els) != 1 {
		t.Fatalf("len=%d want 1", len(els))
	}
	if got := len(els[0].Points); got != 1 {
		t.Fatalf("points=%d want exactly 1", got)
	}
}

func TestElements_DropsWayWithNoResolvedPoints(t *testing.T) {
	raw := []byte(`{"elements":[
		{"type":"node","id":1,"lat":51.0,"lon":10.0},
		{"type":"way","id":100,"nodes":[998,999]},
		{"type":"way","id":101,"nodes":[1]}
	]}`)

	els, err := Elements(raw)
	if err != nil {
		t.Fatalf("Elements: %v", err)
	}
	if len(els) != 1 || els[0].ID != 101 {
		t.Fatalf("got %+v, want only way 101", els)
	}
}

func TestElements_OutputFollowsWayOrder(t *testing.T) {
	raw := []byte(`{"elements":[
		{"type":"way","id":7,"nodes":[1]},
		{"type":"node","id":1,"lat":1,"lon":1},
		{"type":"way","id":3,"nodes":[1]},
		{"type":"way","id":5,"nodes":[1]}
	]}`)

	els, err := Elements(raw)
	if err != nil {
		t.Fatalf("Elements: %v", err)
	}
	want := []int64{7, 3, 5}
	if len(els) != len(want) {
		t.Fatalf("len=%d want %d", len(els), len(want))
	}
	for i, id := range want {
		if els[i].ID != id {
			t.Fatalf("order: got %d at %d, want %d", els[i].ID, i, id)
		}
	}
}

func TestElements_IgnoresOtherRecordTypes(t *testing.T) {
	raw := []byte(`{"elements":[
		{"type":"node","id":1,"lat":1,"lon":1},
		{"type":"relation","id":50},
		{"type":"way","id":2,"nodes":[1]}
	]}`)

	els, err := Elements(raw)
	if err != nil {
		t.Fatalf("Elements: %v", err)
	}
	if len(els) != 1 || els[0].ID != 2 {
		t.Fatalf("got %+v", els)
	}
}

func TestElements_EmptyListIsNotAnError(t *testing.T) {
	els, err := Elements([]byte(`{"elements":[]}`))
	if err != nil {
		t.Fatalf("Elements: %v", err)
	}
	if len(els) != 0 {
		t.Fatalf("len=%d want 0", len(els))
	}
}

func TestElements_MalformedPayload(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"invalid json", `{"elements":`},
		{"missing elements key", `{"foo":[]}`},
		{"wrong top-level type", `[1,2,3]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Elements([]byte(tc.raw))
			if !errors.Is(err, ErrMalformedPayload) {
				t.Fatalf("err=%v want ErrMalformedPayload", err)
			}
		})
	}
}
