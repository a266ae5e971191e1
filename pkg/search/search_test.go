package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeES(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return &Client{ES: es, Index: "products"}
}

func TestClient_Search(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	c := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		_, _ = io.WriteString(w, `{"hits":{"total":{"value":2},"hits":[{"_id":"a"},{"_id":"b"}]}}`)
	})

	total, ids, err := c.Search(context.Background(), "mangue", 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, []string{"a", "b"}, ids)
	assert.Equal(t, "/products/_search", gotPath)
	assert.EqualValues(t, 20, gotBody["size"])
}

func TestClient_IndexProduct(t *testing.T) {
	var gotMethod, gotPath string

	c := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		_, _ = io.WriteString(w, `{"result":"created"}`)
	})

	err := c.IndexProduct(context.Background(), Document{ID: "p1", Name: "Oignons"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.True(t, strings.HasSuffix(gotPath, "/p1"), gotPath)
}

func TestClient_DeleteProduct_NotFoundIsOK(t *testing.T) {
	c := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"result":"not_found"}`)
	})

	assert.NoError(t, c.DeleteProduct(context.Background(), "missing"))
}

func TestNop_SearchDisabled(t *testing.T) {
	_, _, err := Nop{}.Search(context.Background(), "x", 0, 10)
	assert.ErrorIs(t, err, ErrDisabled)
}
