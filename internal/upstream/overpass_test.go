package upstream

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Ruilesser/HackTheChange2025/internal/core/model"
)

func testBBox() model.BBox {
	return model.BBox{X1: 10.0, Y1: 51.0, X2: 10.2, Y2: 51.1, SRID: "EPSG:4326"}
}

func TestBuildQuery(t *testing.T) {
	q := BuildQuery(testBBox())

	if !strings.HasPrefix(q, "[out:json]") {
		t.Fatalf("query must request json output: %s", q)
	}
	// overpass wants south,west,north,east
	if !strings.Contains(q, "(51.000000,10.000000,51.100000,10.200000)") {
		t.Fatalf("bbox order wrong: %s", q)
	}
	if !strings.Contains(q, `way["building"]`) {
		t.Fatalf("missing building selector: %s", q)
	}
	if !strings.HasSuffix(q, "out body;>;out skel qt;") {
		t.Fatalf("missing recursion/output statements: %s", q)
	}
}

func TestQueryBBox(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		_, _ = w.Write([]byte(`{"elements":[]}`))
	}))
	defer srv.Close()

	c, err := New(nil, srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	raw, err := c.QueryBBox(context.Background(), testBBox())
	if err != nil {
		t.Fatalf("QueryBBox: %v", err)
	}
	if string(raw) != `{"elements":[]}` {
		t.Fatalf("raw=%s", raw)
	}

	form, err := url.ParseQuery(gotBody)
	if err != nil {
		t.Fatalf("parse form: %v", err)
	}
	if data := form.Get("data"); !strings.Contains(data, `way["building"]`) {
		t.Fatalf("posted data=%q", data)
	}
}

func TestQueryBBox_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c, err := New(nil, srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = c.QueryBBox(context.Background(), testBBox())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Fatalf("err=%v, want status in message", err)
	}
}
