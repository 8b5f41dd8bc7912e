// File: internal/services/chat/endpoint.go
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Endpoint is the external chat completion collaborator.
type Endpoint interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// HTTPEndpoint talks to a chat backend over HTTP per the POST /chat
// contract. The client carries no timeout of its own: a request resolves or
// fails on the transport's terms, or on the caller's context.
type HTTPEndpoint struct {
	baseURL string
	client  *http.Client
}

func NewHTTPEndpoint(baseURL string) *HTTPEndpoint {
	return &HTTPEndpoint{
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

func (e *HTTPEndpoint) Send(ctx context.Context, req *Request) (*Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, NewEndpointError("send", "failed to encode request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return nil, NewEndpointError("send", "failed to build request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, NewEndpointError("send", "request failed", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		io.Copy(io.Discard, httpResp.Body)
		return nil, NewEndpointError("send",
			fmt.Sprintf("endpoint returned status %d", httpResp.StatusCode), nil)
	}

	var resp Response
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, NewEndpointError("send", "failed to decode response", err)
	}
	return &resp, nil
}
