package predictor

import (
	"context"
	"encoding/json"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func sample() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 640, 360))
	for y := 0; y < 360; y++ {
		for x := 0; x < 640; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 200, B: 200, A: 255})
		}
	}
	return img
}

func TestFeatures(t *testing.T) {
	gray := Features(sample())
	require.Equal(t, image.Rect(0, 0, FeatureSide, FeatureSide), gray.Bounds())

	px := Pixels(gray)
	require.Len(t, px, FeatureSide*FeatureSide)
	require.InDelta(t, 200, px[len(px)/2], 1)
}

func TestHTTPPredictor_Predict(t *testing.T) {
	var (
		method, auth string
		req          predictRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"score": 72.5}`))
	}))
	defer srv.Close()

	p := NewHTTPPredictor(srv.URL, "secret", time.Second)
	score, err := p.Predict(context.Background(), sample())
	require.NoError(t, err)
	require.Equal(t, 72.5, score)

	require.Equal(t, http.MethodPost, method)
	require.Equal(t, "Bearer secret", auth)
	require.Equal(t, FeatureSide, req.Width)
	require.Len(t, req.Pixels, FeatureSide*FeatureSide)
}

func TestHTTPPredictor_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{}`},
		{"malformed", http.StatusOK, `not json`},
		{"missing score", http.StatusOK, `{"value": 3}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewHTTPPredictor(srv.URL, "", time.Second).Predict(context.Background(), sample())
			require.Error(t, err)
		})
	}
}

func TestHTTPPredictor_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := NewHTTPPredictor(srv.URL, "", 5*time.Second).Predict(ctx, sample())
	require.Error(t, err)
}

func TestNopPredictor(t *testing.T) {
	_, err := NopPredictor{}.Predict(context.Background(), sample())
	require.ErrorIs(t, err, ErrNotConfigured)
}
