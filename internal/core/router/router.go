package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Ruilesser/HackTheChange2025/internal/core/model"
	"github.com/Ruilesser/HackTheChange2025/internal/core/observability"
)

// widest bbox span accepted per axis, in degrees; larger windows make
// the Overpass interpreter time out
const maxBBoxSpan = 1.0

// receives validated feature requests and serves them
type FeatureHandler interface {
	HandleFeatures(ctx context.Context, w http.ResponseWriter, r *http.Request, q model.FeatureRequest)
}

// validates input query params and calls the handler
func HandleFeatures(logger *slog.Logger, h FeatureHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}

		q, err := ParseFeatureRequest(r)
		if err != nil {
			logger.Debug("bad feature request", "err", err)
			http.Error(sw, err.Error(), http.StatusBadRequest)
			observability.ObserveHTTP(r.Method, "/features", http.StatusBadRequest, time.Since(start).Seconds())
			return
		}

		h.HandleFeatures(r.Context(), sw, r, q)
		observability.ObserveHTTP(r.Method, "/features", sw.code, time.Since(start).Seconds())
	}
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

func ParseFeatureRequest(r *http.Request) (model.FeatureRequest, error) {
	rawBBox := strings.TrimSpace(r.URL.Query().Get("bbox"))
	if rawBBox == "" {
		return model.FeatureRequest{}, errors.New("missing required parameter: bbox")
	}
	bb, err := parseBBOX(rawBBox)
	if err != nil {
		return model.FeatureRequest{}, fmt.Errorf("invalid bbox: %w", err)
	}

	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	switch format {
	case "":
		format = "json"
	case "json", "geojson":
	default:
		return model.FeatureRequest{}, fmt.Errorf("unsupported format %q (json or geojson)", format)
	}

	return model.FeatureRequest{BBox: bb, Format: format}, nil
}

func parseBBOX(bboxParam string) (model.BBox, error) {
	parts := strings.Split(bboxParam, ",")
	if len(parts) != 5 {
		return model.BBox{}, errors.New("expected 5 comma-separated values: x1,y1,x2,y2,EPSG:4326")
	}
	xMin, err := parseFloat(parts[0])
	if err != nil {
		return model.BBox{}, fmt.Errorf("x1: %w", err)
	}
	yMin, err := parseFloat(parts[1])
	if err != nil {
		return model.BBox{}, fmt.Errorf("y1: %w", err)
	}
	xMax, err := parseFloat(parts[2])
	if err != nil {
		return model.BBox{}, fmt.Errorf("x2: %w", err)
	}
	yMax, err := parseFloat(parts[3])
	if err != nil {
		return model.BBox{}, fmt.Errorf("y2: %w", err)
	}

	srid := strings.ToUpper(strings.TrimSpace(parts[4]))
	if srid != "EPSG:4326" {
		return model.BBox{}, fmt.Errorf("only EPSG:4326 is supported (got %q)", srid)
	}

	if !(xMin >= -180 && xMin <= 180 && xMax >= -180 && xMax <= 180) {
		return model.BBox{}, errors.New("longitude must be in [-180,180]")
	}
	if !(yMin >= -90 && yMin <= 90 && yMax >= -90 && yMax <= 90) {
		return model.BBox{}, errors.New("latitude must be in [-90,90]")
	}
	if xMax <= xMin || yMax <= yMin {
		return model.BBox{}, errors.New("coordinates must satisfy x2>x1 and y2>y1")
	}
	if xMax-xMin > maxBBoxSpan || yMax-yMin > maxBBoxSpan {
		return model.BBox{}, fmt.Errorf("bbox span must not exceed %.1f degrees per axis", maxBBoxSpan)
	}
	return model.BBox{X1: xMin, Y1: yMin, X2: xMax, Y2: yMax, SRID: srid}, nil
}

func parseFloat(v string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("parse float: %w", err)
	}
	return f, nil
}
