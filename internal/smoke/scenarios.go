package smoke

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
)

const (
	msgProductRequired = "Nome e prezzo sono obbligatori"
	msgProductNotFound = "Prodotto non trovato"
)

// checker accumulates failures instead of stopping at the first one.
type checker struct {
	report *Report
}

func (c *checker) expect(check string, want, got any) bool {
	c.report.Checks++
	if want == got {
		return true
	}
	c.report.Failures = append(c.report.Failures, mismatch(check, want, got))
	return false
}

func (c *checker) fail(check string, err error) {
	c.report.Checks++
	c.report.Failures = append(c.report.Failures, check+": "+err.Error())
}

// productsScenario expects a freshly seeded products service: list, create Monitor,
// delete id 2, list again, then the two error paths.
func productsScenario(ctx context.Context, cl *client, chk *checker, base string) {
	url := base + "/products"

	var seeded []Product
	if status, body, err := cl.do(ctx, http.MethodGet, url, nil); err != nil {
		chk.fail("list products", err)
		return
	} else if chk.expect("list products status", http.StatusOK, status) {
		if err := json.Unmarshal(body, &seeded); err != nil {
			chk.fail("list products body", err)
			return
		}
		chk.expect("seeded product ids", "[1 2 3]", idsOf(seeded))
	}

	status, body, err := cl.do(ctx, http.MethodPost, url, map[string]any{"name": "Monitor", "price": 199})
	if err != nil {
		chk.fail("create product", err)
		return
	}
	if chk.expect("create product status", http.StatusCreated, status) {
		var created Product
		if err := json.Unmarshal(body, &created); err != nil {
			chk.fail("create product body", err)
		} else {
			chk.expect("created product", Product{ID: 4, Name: "Monitor", Price: 199}, created)
		}
	}

	status, _, err = cl.do(ctx, http.MethodDelete, url+"/2", nil)
	if err != nil {
		chk.fail("delete product", err)
		return
	}
	chk.expect("delete product status", http.StatusNoContent, status)

	status, body, err = cl.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		chk.fail("list products after delete", err)
		return
	}
	var after []Product
	if chk.expect("list after delete status", http.StatusOK, status) {
		if err := json.Unmarshal(body, &after); err != nil {
			chk.fail("list after delete body", err)
		} else {
			chk.expect("product ids after delete", "[1 3 4]", idsOf(after))
		}
	}

	status, body, err = cl.do(ctx, http.MethodPost, url, map[string]any{"name": "Mouse"})
	if err != nil {
		chk.fail("create product without price", err)
		return
	}
	chk.expect("missing price status", http.StatusBadRequest, status)
	chk.expect("missing price message", msgProductRequired, errorMessage(body))

	status, body, err = cl.do(ctx, http.MethodDelete, url+"/99", nil)
	if err != nil {
		chk.fail("delete absent product", err)
		return
	}
	chk.expect("absent product status", http.StatusNotFound, status)
	chk.expect("absent product message", msgProductNotFound, errorMessage(body))
}

// postsScenario expects a freshly seeded posts service: list, create "Terzo", list again.
func postsScenario(ctx context.Context, cl *client, chk *checker, base string) {
	url := base + "/api/posts"

	status, body, err := cl.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		chk.fail("list posts", err)
		return
	}
	var seeded []Post
	if chk.expect("list posts status", http.StatusOK, status) {
		if err := json.Unmarshal(body, &seeded); err != nil {
			chk.fail("list posts body", err)
		} else {
			chk.expect("seeded post count", 2, len(seeded))
		}
	}

	status, body, err = cl.do(ctx, http.MethodPost, url, map[string]any{"title": "Terzo"})
	if err != nil {
		chk.fail("create post", err)
		return
	}
	if chk.expect("create post status", http.StatusCreated, status) {
		var created Post
		if err := json.Unmarshal(body, &created); err != nil {
			chk.fail("create post body", err)
		} else {
			chk.expect("created post id", 3, created.ID)
			chk.expect("created post title", "Terzo", titleOf(created))
		}
	}

	status, body, err = cl.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		chk.fail("list posts after create", err)
		return
	}
	var after []Post
	if chk.expect("list after create status", http.StatusOK, status) {
		if err := json.Unmarshal(body, &after); err != nil {
			chk.fail("list after create body", err)
		} else {
			chk.expect("post count after create", len(seeded)+1, len(after))
		}
	}
}

func idsOf(products []Product) string {
	ids := make([]int, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	slices.Sort(ids)
	return fmt.Sprint(ids)
}

func titleOf(p Post) string {
	if len(p.Title) == 0 {
		return "<absent>"
	}
	var s string
	if err := json.Unmarshal(p.Title, &s); err != nil {
		return string(p.Title)
	}
	return s
}

func errorMessage(body []byte) string {
	var e errorBody
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	return e.Error
}
