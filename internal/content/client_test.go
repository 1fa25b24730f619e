package content

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-admin-api/internal/config"
)

func testClient(url string) *Client {
	return New(config.ContentConfig{BaseURL: url, Dataset: "production", APIVersion: "2024-01-01"})
}

func TestFetchReturnsResultEnvelope(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"result": []map[string]any{{"_id": "cinema_1"}},
		})
	}))
	defer srv.Close()

	res, err := testClient(srv.URL).Fetch(context.Background(), ListQuery(TypeCinema, "dateJoin", "desc"))
	require.NoError(t, err)
	assert.Equal(t, `*[_type == "cinema"] | order(dateJoin desc)`, gotQuery)
	assert.Equal(t, "cinema_1", res.Get("0._id").String())
}

func TestFetchSurfacesStoreErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"description":"unable to parse query"}}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Fetch(context.Background(), "nonsense")
	var rerr *RemoteError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "fetch", rerr.Op)
	assert.Equal(t, http.StatusBadRequest, rerr.Status)
	assert.Contains(t, rerr.Msg, "unable to parse query")
}

func TestMutateSendsEnvelopeAndCredential(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"transactionId":"tx1"}`))
	}))
	defer srv.Close()

	client := testClient(srv.URL).WithCredential("sekrit")
	require.NoError(t, client.Delete(context.Background(), "event42"))

	assert.Equal(t, "Bearer sekrit", gotAuth)
	muts, ok := gotBody["mutations"].([]any)
	require.True(t, ok)
	require.Len(t, muts, 1)
	del := muts[0].(map[string]any)["delete"].(map[string]any)
	assert.Equal(t, "event42", del["id"])
}

func TestWithCredentialEmptyKeepsClientAnonymous(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"result":[]}`))
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	assert.Same(t, client, client.WithCredential(""))
	_, err := client.Fetch(context.Background(), CountQuery(TypeEvent))
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestUploadAssetReturnsDocumentURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "image/png", r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"document":{"url":"https://cdn.example/img.png"}}`))
	}))
	defer srv.Close()

	url, err := testClient(srv.URL).UploadAsset(context.Background(), "img.png", "image/png", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/img.png", url)
}
