package client

import (
	"bytes"
	"io"
	"net/http"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestClient(rt roundTripFunc) *http.Client {
	return &http.Client{Transport: rt}
}

// jsonResponse builds an *http.Response carrying a JSON body.
func jsonResponse(status int, body string) *http.Response {
	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		Header:     header,
	}
}

// stubClient returns a Client whose transport is replaced by fn.
func stubClient(fn roundTripFunc) *Client {
	c := New(Config{BaseURL: "https://console.example.com"})
	c.httpClient = newTestClient(fn)
	return c
}
