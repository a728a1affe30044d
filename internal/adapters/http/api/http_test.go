package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/collections/internal/adapters/http/api"
	"github.com/okian/collections/internal/adapters/repository"
	service "github.com/okian/collections/internal/app"
	"github.com/okian/collections/internal/domain/model"
	"github.com/okian/collections/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func newProducts() *service.ProductService {
	store := repository.NewMemoryStore(
		repository.WithName[model.Product](service.ProductsCollection),
		repository.WithSeed(model.SeedProducts()...),
	)
	return service.NewProductService(store, service.WithLogger(logger.Nop()))
}

func newPosts() *service.PostService {
	store := repository.NewMemoryStore(
		repository.WithName[model.Post](service.PostsCollection),
		repository.WithSeed(model.SeedPosts()...),
	)
	return service.NewPostService(store, service.WithLogger(logger.Nop()))
}

func newHandler(opts ...api.Option) http.Handler {
	opts = append(opts, api.WithLogger(logger.Nop()))
	server := api.NewServer(opts...)
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return server.Handler(mux)
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(w *httptest.ResponseRecorder) string {
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		return ""
	}
	return body["error"]
}

func decodeProducts(w *httptest.ResponseRecorder) []model.Product {
	var out []model.Product
	So(json.Unmarshal(w.Body.Bytes(), &out), ShouldBeNil)
	return out
}

func TestProductsAPI(t *testing.T) {
	Convey("Given the products API with seed data", t, func() {
		h := newHandler(api.WithProducts(newProducts()), api.WithCORS(true))

		Convey("When listing products", func() {
			w := do(h, http.MethodGet, "/products", "")

			Convey("Then it should return the seed as JSON", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldStartWith, "application/json")
				So(decodeProducts(w), ShouldResemble, model.SeedProducts())
			})
		})

		Convey("When creating a valid product", func() {
			w := do(h, http.MethodPost, "/products", `{"name":"Monitor","price":199}`)

			Convey("Then it should return 201 with the next id", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)
				So(strings.TrimSpace(w.Body.String()), ShouldEqual, `{"id":4,"name":"Monitor","price":199}`)
			})
		})

		Convey("When creating invalid products", func() {
			cases := []string{
				`{"name":"Monitor","price":0}`,
				`{"name":"Monitor"}`,
				`{"price":10}`,
				`{"name":"","price":10}`,
				`{"name":"Monitor","price":"ten"}`,
				`{"name":42,"price":10}`,
				`not json`,
				``,
			}

			Convey("Then each should be rejected with the fixed message", func() {
				for _, body := range cases {
					w := do(h, http.MethodPost, "/products", body)
					So(w.Code, ShouldEqual, http.StatusBadRequest)
					So(decodeError(w), ShouldEqual, "Nome e prezzo sono obbligatori")
				}
				So(len(decodeProducts(do(h, http.MethodGet, "/products", ""))), ShouldEqual, 3)
			})
		})

		Convey("When creating a product with a negative price", func() {
			w := do(h, http.MethodPost, "/products", `{"name":"Refund","price":-5}`)

			Convey("Then it should be created", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)
				So(strings.TrimSpace(w.Body.String()), ShouldEqual, `{"id":4,"name":"Refund","price":-5}`)
			})
		})

		Convey("When the body is too large", func() {
			big := `{"name":"` + strings.Repeat("x", 200<<10) + `","price":1}`
			w := do(h, http.MethodPost, "/products", big)
			So(w.Code, ShouldEqual, http.StatusRequestEntityTooLarge)
		})

		Convey("When deleting a present product", func() {
			w := do(h, http.MethodDelete, "/products/2", "")

			Convey("Then it should return 204 with an empty body and the product should be gone", func() {
				So(w.Code, ShouldEqual, http.StatusNoContent)
				So(w.Body.Len(), ShouldEqual, 0)
				for _, p := range decodeProducts(do(h, http.MethodGet, "/products", "")) {
					So(p.ID, ShouldNotEqual, 2)
				}
			})
		})

		Convey("When deleting with a trailing non-digit suffix", func() {
			w := do(h, http.MethodDelete, "/products/2abc", "")

			Convey("Then the leading integer should be used", func() {
				So(w.Code, ShouldEqual, http.StatusNoContent)
				So(decodeProducts(do(h, http.MethodGet, "/products", "")), ShouldResemble, []model.Product{
					{ID: 1, Name: "Laptop", Price: 999},
					{ID: 3, Name: "Tablet", Price: 399},
				})
			})
		})

		Convey("When deleting with a fractional id", func() {
			w := do(h, http.MethodDelete, "/products/2.5", "")

			Convey("Then product 2 should be removed", func() {
				So(w.Code, ShouldEqual, http.StatusNoContent)
				So(len(decodeProducts(do(h, http.MethodGet, "/products", ""))), ShouldEqual, 2)
			})
		})

		Convey("When deleting absent or non-numeric ids", func() {
			for _, target := range []string{"/products/99", "/products/abc", "/products/-1", "/products/x2"} {
				w := do(h, http.MethodDelete, target, "")
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(decodeError(w), ShouldEqual, "Prodotto non trovato")
			}

			Convey("Then the collection should be unchanged", func() {
				So(decodeProducts(do(h, http.MethodGet, "/products", "")), ShouldResemble, model.SeedProducts())
			})
		})

		Convey("When running the documented scenario", func() {
			created := do(h, http.MethodPost, "/products", `{"name":"Monitor","price":199}`)
			deleted := do(h, http.MethodDelete, "/products/2", "")
			listed := do(h, http.MethodGet, "/products", "")

			Convey("Then the final list should be 1, 3, 4", func() {
				So(created.Code, ShouldEqual, http.StatusCreated)
				So(deleted.Code, ShouldEqual, http.StatusNoContent)
				So(decodeProducts(listed), ShouldResemble, []model.Product{
					{ID: 1, Name: "Laptop", Price: 999},
					{ID: 3, Name: "Tablet", Price: 399},
					{ID: 4, Name: "Monitor", Price: 199},
				})
			})
		})

		Convey("When using an unsupported method", func() {
			w := do(h, http.MethodPut, "/products", `{}`)
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
		})

		Convey("When the posts routes are requested", func() {
			w := do(h, http.MethodGet, "/api/posts", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestProductsCORS(t *testing.T) {
	Convey("Given the products API with CORS for all origins", t, func() {
		h := newHandler(api.WithProducts(newProducts()), api.WithCORS(true))

		Convey("When a cross-origin GET arrives", func() {
			req := httptest.NewRequest(http.MethodGet, "/products", http.NoBody)
			req.Header.Set("Origin", "https://shop.example")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			Convey("Then every origin should be allowed", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "*")
			})
		})

		Convey("When a preflight for DELETE arrives", func() {
			req := httptest.NewRequest(http.MethodOptions, "/products/1", http.NoBody)
			req.Header.Set("Origin", "https://shop.example")
			req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			Convey("Then it should be answered by the CORS layer", func() {
				So(w.Code, ShouldBeIn, []int{http.StatusOK, http.StatusNoContent})
				So(w.Header().Get("Access-Control-Allow-Methods"), ShouldContainSubstring, http.MethodDelete)
			})
		})
	})

	Convey("Given the posts API without CORS", t, func() {
		h := newHandler(api.WithPosts(newPosts()))

		req := httptest.NewRequest(http.MethodGet, "/api/posts", http.NoBody)
		req.Header.Set("Origin", "https://blog.example")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		So(w.Code, ShouldEqual, http.StatusOK)
		So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "")
	})
}

func TestPostsAPI(t *testing.T) {
	Convey("Given the posts API with seed data", t, func() {
		h := newHandler(api.WithPosts(newPosts()))

		Convey("When listing posts", func() {
			w := do(h, http.MethodGet, "/api/posts", "")

			Convey("Then it should return the seed", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(strings.TrimSpace(w.Body.String()), ShouldEqual, `[{"id":1,"title":"Primo post"},{"id":2,"title":"Secondo post"}]`)
			})
		})

		Convey("When creating a titled post", func() {
			w := do(h, http.MethodPost, "/api/posts", `{"title":"Terzo"}`)

			Convey("Then it should return 201 with id 3", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)
				So(strings.TrimSpace(w.Body.String()), ShouldEqual, `{"id":3,"title":"Terzo"}`)
			})
		})

		Convey("When creating a post without a title", func() {
			w := do(h, http.MethodPost, "/api/posts", `{}`)

			Convey("Then the title should be absent", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)
				So(strings.TrimSpace(w.Body.String()), ShouldEqual, `{"id":3}`)
			})
		})

		Convey("When creating a post with a non-string title", func() {
			w := do(h, http.MethodPost, "/api/posts", `{"title":123}`)

			Convey("Then the title should be stored as sent", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)
				So(strings.TrimSpace(w.Body.String()), ShouldEqual, `{"id":3,"title":123}`)
				So(do(h, http.MethodGet, "/api/posts", "").Body.String(), ShouldContainSubstring, `{"id":3,"title":123}`)
			})
		})

		Convey("When creating a post with an object title", func() {
			w := do(h, http.MethodPost, "/api/posts", `{"title":{"it":"Terzo"}}`)
			So(w.Code, ShouldEqual, http.StatusCreated)
			So(strings.TrimSpace(w.Body.String()), ShouldEqual, `{"id":3,"title":{"it":"Terzo"}}`)
		})

		Convey("When creating a post with an empty body", func() {
			w := do(h, http.MethodPost, "/api/posts", "")
			So(w.Code, ShouldEqual, http.StatusCreated)
		})

		Convey("When the body is malformed", func() {
			w := do(h, http.MethodPost, "/api/posts", `{"title":`)

			Convey("Then it should be a bad request and nothing stored", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decodeError(w), ShouldEqual, "Richiesta non valida")
				So(strings.Count(do(h, http.MethodGet, "/api/posts", "").Body.String(), `"id"`), ShouldEqual, 2)
			})
		})
	})
}

func TestOperationalRoutes(t *testing.T) {
	Convey("Given a server hosting both collections", t, func() {
		h := newHandler(api.WithProducts(newProducts()), api.WithPosts(newPosts()))

		Convey("When requesting /healthz", func() {
			w := do(h, http.MethodGet, "/healthz", "")

			Convey("Then it should report ok and both collections", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var body struct {
					Status      string          `json:"status"`
					Collections []service.Stats `json:"collections"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.Status, ShouldEqual, "ok")
				So(body.Collections, ShouldResemble, []service.Stats{
					{Collection: "products", Records: 3, NextID: 4},
					{Collection: "posts", Records: 2, NextID: 3},
				})
			})
		})

		Convey("When requesting /stats after a create", func() {
			do(h, http.MethodPost, "/api/posts", `{"title":"Terzo"}`)
			w := do(h, http.MethodGet, "/stats", "")

			Convey("Then the posts counter should have moved", func() {
				var stats []service.Stats
				So(json.Unmarshal(w.Body.Bytes(), &stats), ShouldBeNil)
				So(stats[1], ShouldResemble, service.Stats{Collection: "posts", Records: 3, NextID: 4})
			})
		})

		Convey("When requesting /metrics", func() {
			do(h, http.MethodGet, "/products", "")
			w := do(h, http.MethodGet, "/metrics", "")

			Convey("Then it should expose collection metrics", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "collections_http_requests_total")
				So(w.Body.String(), ShouldContainSubstring, "collections_collection_records")
			})
		})

		Convey("When an unknown path is requested", func() {
			w := do(h, http.MethodGet, "/unknown", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestRequestID(t *testing.T) {
	Convey("Given the middleware chain", t, func() {
		h := newHandler(api.WithPosts(newPosts()))

		Convey("When no request id is sent", func() {
			w := do(h, http.MethodGet, "/api/posts", "")

			Convey("Then one should be generated", func() {
				So(len(w.Header().Get(api.RequestIDHeader)), ShouldEqual, 36)
			})
		})

		Convey("When a request id is sent", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/posts", http.NoBody)
			req.Header.Set(api.RequestIDHeader, "abc-123")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			Convey("Then it should be echoed back", func() {
				So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "abc-123")
			})
		})
	})
}

type failingProducts struct{ *service.ProductService }

func (failingProducts) Create(context.Context, service.ProductInput) (model.Product, error) {
	return model.Product{}, errors.New("disk on fire")
}

func (failingProducts) Delete(context.Context, int) error { return errors.New("disk on fire") }

type panickingPosts struct{ *service.PostService }

func (panickingPosts) List(context.Context) []model.Post { panic("boom") }

func TestUnexpectedFailures(t *testing.T) {
	Convey("Given dependencies that fail unexpectedly", t, func() {
		h := newHandler(
			api.WithProducts(failingProducts{newProducts()}),
			api.WithPosts(panickingPosts{newPosts()}),
		)

		Convey("Then unclassified errors should become 500", func() {
			So(do(h, http.MethodPost, "/products", `{"name":"a","price":1}`).Code, ShouldEqual, http.StatusInternalServerError)
			So(do(h, http.MethodDelete, "/products/1", "").Code, ShouldEqual, http.StatusInternalServerError)
		})

		Convey("And panics should be recovered as 500", func() {
			So(do(h, http.MethodGet, "/api/posts", "").Code, ShouldEqual, http.StatusInternalServerError)
		})
	})
}
