package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/iliyamo/cinema-admin-api/internal/config"
)

// RemoteError describes a failed call to the content store.  Op is one
// of "fetch", "mutate" or "upload"; Status holds the HTTP status when
// the store answered at all (0 for transport failures).  The message is
// human-readable and safe to surface to the caller.
type RemoteError struct {
	Op     string
	Status int
	Msg    string
}

func (e *RemoteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("content store %s failed (status %d): %s", e.Op, e.Status, e.Msg)
	}
	return fmt.Sprintf("content store %s failed: %s", e.Op, e.Msg)
}

// Client talks to the content store over HTTP.  The zero credential is
// valid: unauthenticated clients can read public datasets but every
// mutation is rejected by the store.  Use WithCredential to attach the
// session's bearer token for write operations.
type Client struct {
	base       string
	dataset    string
	apiVersion string
	credential string
	httpc      *http.Client
}

// New builds a Client from configuration.  No credential is attached;
// reads work for public datasets and writes will be refused upstream.
func New(cfg config.ContentConfig) *Client {
	return &Client{
		base:       strings.TrimRight(cfg.BaseURL, "/"),
		dataset:    cfg.Dataset,
		apiVersion: cfg.APIVersion,
		httpc:      &http.Client{Timeout: 15 * time.Second},
	}
}

// WithCredential returns a copy of the client that sends the given
// bearer credential.  An empty credential returns the receiver
// unchanged, so preview sessions keep hitting the store anonymously.
func (c *Client) WithCredential(token string) *Client {
	if token == "" {
		return c
	}
	cp := *c
	cp.credential = token
	return &cp
}

func (c *Client) queryURL(query string) string {
	return fmt.Sprintf("%s/%s/data/query/%s?query=%s",
		c.base, c.apiVersion, c.dataset, url.QueryEscape(query))
}

func (c *Client) mutateURL() string {
	return fmt.Sprintf("%s/%s/data/mutate/%s", c.base, c.apiVersion, c.dataset)
}

func (c *Client) assetURL() string {
	return fmt.Sprintf("%s/%s/assets/images/%s", c.base, c.apiVersion, c.dataset)
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	if c.credential != "" {
		req.Header.Set("Authorization", "Bearer "+c.credential)
	}
	req.Header.Set("Accept", "application/json")
	return c.httpc.Do(req)
}

// Fetch runs a query string against the store and returns the `result`
// field of the response envelope.  The result is untyped on purpose;
// decode.go converts it into entity records with constraint checks.
func (c *Client) Fetch(ctx context.Context, query string) (gjson.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.queryURL(query), nil)
	if err != nil {
		return gjson.Result{}, &RemoteError{Op: "fetch", Msg: err.Error()}
	}
	resp, err := c.do(req)
	if err != nil {
		return gjson.Result{}, &RemoteError{Op: "fetch", Msg: err.Error()}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, &RemoteError{Op: "fetch", Msg: err.Error()}
	}
	if resp.StatusCode != http.StatusOK {
		return gjson.Result{}, &RemoteError{Op: "fetch", Status: resp.StatusCode, Msg: errorMessage(body)}
	}
	return gjson.GetBytes(body, "result"), nil
}

// mutation is a single entry in the store's mutation envelope.  Exactly
// one field is set per entry.
type mutation struct {
	Create          any               `json:"create,omitempty"`
	CreateOrReplace any               `json:"createOrReplace,omitempty"`
	Delete          map[string]string `json:"delete,omitempty"`
}

func (c *Client) mutate(ctx context.Context, m mutation) error {
	payload, err := json.Marshal(map[string]any{"mutations": []mutation{m}})
	if err != nil {
		return &RemoteError{Op: "mutate", Msg: err.Error()}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.mutateURL(), bytes.NewReader(payload))
	if err != nil {
		return &RemoteError{Op: "mutate", Msg: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.do(req)
	if err != nil {
		return &RemoteError{Op: "mutate", Msg: err.Error()}
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return &RemoteError{Op: "mutate", Status: resp.StatusCode, Msg: errorMessage(body)}
	}
	return nil
}

// Create inserts a new document; the store rejects duplicates of an
// existing id.
func (c *Client) Create(ctx context.Context, doc any) error {
	return c.mutate(ctx, mutation{Create: doc})
}

// CreateOrReplace upserts a document by id.
func (c *Client) CreateOrReplace(ctx context.Context, doc any) error {
	return c.mutate(ctx, mutation{CreateOrReplace: doc})
}

// Delete removes the document with the given id.  Deleting a missing id
// is not an error at the store; callers needing existence checks query
// first.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.mutate(ctx, mutation{Delete: map[string]string{"id": id}})
}

// UploadAsset streams a binary image to the store's asset endpoint and
// returns the publicly retrievable URL of the stored asset.
func (c *Client) UploadAsset(ctx context.Context, filename string, contentType string, r io.Reader) (string, error) {
	u := c.assetURL()
	if filename != "" {
		u += "?filename=" + url.QueryEscape(filename)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, r)
	if err != nil {
		return "", &RemoteError{Op: "upload", Msg: err.Error()}
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := c.do(req)
	if err != nil {
		return "", &RemoteError{Op: "upload", Msg: err.Error()}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &RemoteError{Op: "upload", Msg: err.Error()}
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", &RemoteError{Op: "upload", Status: resp.StatusCode, Msg: errorMessage(body)}
	}
	assetURL := gjson.GetBytes(body, "document.url").String()
	if assetURL == "" {
		assetURL = gjson.GetBytes(body, "url").String()
	}
	if assetURL == "" {
		return "", &RemoteError{Op: "upload", Status: resp.StatusCode, Msg: "asset response carried no url"}
	}
	return assetURL, nil
}

// errorMessage extracts a readable message from a store error body,
// falling back to the raw body when the shape is unexpected.
func errorMessage(body []byte) string {
	for _, path := range []string{"error.description", "error.message", "message"} {
		if v := gjson.GetBytes(body, path).String(); v != "" {
			return v
		}
	}
	s := strings.TrimSpace(string(body))
	if s == "" {
		return "no error detail"
	}
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}

// UploadMultipartImage is a convenience for handlers receiving a
// multipart form file: it validates the part is an image and forwards
// the stream to UploadAsset.
func (c *Client) UploadMultipartImage(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	ct := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "image/") {
		return "", &RemoteError{Op: "upload", Msg: "must be an image file"}
	}
	f, err := fh.Open()
	if err != nil {
		return "", &RemoteError{Op: "upload", Msg: err.Error()}
	}
	defer f.Close()
	return c.UploadAsset(ctx, fh.Filename, ct, f)
}
