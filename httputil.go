package tracker

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"

	"github.com/etnz/tracker/date"
)

// UserAgent is sent with every request to market data sources, some of them
// reject the Go default one.
const UserAgent = "Mozilla/5.0 (X11; Linux x86_64) pft/1.0"

// diskCache implements a simple disk cache for HTTP responses.
type diskCache struct {
	base   http.RoundTripper
	dir    string
	period date.Period
	today  func() date.Date
}

// RoundTrip implements the http.RoundTripper interface. Entries are keyed by
// the current period identifier, so they expire when the period changes.
func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	rangeID := date.NewRange(c.today(), c.period).Identifier(c.period)
	key := fmt.Sprintf("%s %s %s", rangeID, req.Method, req.URL.String())
	key = fmt.Sprintf("pft-%s-%x", c.period, sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}

	if err := c.put(key, resp); err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

// get retrieves a cached response from disk.
func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(c.dir, key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache. The response body remains readable.
func (c *diskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, key), content, 0o644)
}

// NewCachingClient returns an http.Client that caches successful responses
// in the temp dir for the current period (e.g. date.Daily).
func NewCachingClient(period date.Period) *http.Client {
	return &http.Client{Transport: &diskCache{
		base:   http.DefaultTransport,
		dir:    os.TempDir(),
		period: period,
		today:  date.Today,
	}}
}

// GetJSON performs an HTTP GET request and unmarshals the JSON response into data.
func GetJSON(ctx context.Context, client *http.Client, addr string, data any) error {
	resp, err := Get(ctx, client, addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}

// Get performs an HTTP GET request and checks its status. The caller closes
// the response body.
func Get(ctx context.Context, client *http.Client, addr string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", UserAgent)
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &StatusError{Host: resp.Request.URL.Host, Path: resp.Request.URL.Path, Status: resp.Status, Code: resp.StatusCode}
	}
	return resp, nil
}

// StatusError is returned by Get when the server answers with a non 200 status.
type StatusError struct {
	Host, Path, Status string
	Code               int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("cannot http GET %v%v: %v", e.Host, e.Path, e.Status)
}
