package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/collections/internal/config"
	"github.com/okian/collections/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewHandler(t *testing.T) {
	Convey("Given the products defaults", t, func() {
		cfg := config.New(context.Background(), configOptions()...)
		So(cfg.CORSEnabled, ShouldBeTrue)
		So(cfg.Addr, ShouldEqual, ":3000")
		So(cfg.EnvPrefix(), ShouldEqual, "PRODUCTS_")

		h := newHandler(context.Background(), cfg, logger.Nop())

		Convey("When listing products", func() {
			req := httptest.NewRequest(http.MethodGet, "/products", http.NoBody)
			req.Header.Set("Origin", "http://example.com")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			Convey("Then the seed should be served with CORS headers", func() {
				var got []map[string]any
				So(w.Code, ShouldEqual, http.StatusOK)
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(len(got), ShouldEqual, 3)
				So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "*")
			})
		})

		Convey("When the posts route is requested", func() {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts", http.NoBody))

			Convey("Then it should not be mounted", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When the docs are requested", func() {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.yaml", http.NoBody))

			Convey("Then the document should be served", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(strings.Contains(w.Body.String(), "/products"), ShouldBeTrue)
			})
		})
	})

	Convey("Given seeding disabled", t, func() {
		cfg := config.New(context.Background(), configOptions()...)
		cfg.Seed = false
		h := newHandler(context.Background(), cfg, logger.Nop())

		Convey("Then the collection should start empty", func() {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products", http.NoBody))
			So(w.Code, ShouldEqual, http.StatusOK)
			So(strings.TrimSpace(w.Body.String()), ShouldEqual, "[]")
		})
	})
}
