package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"collabcore/internal/config"
)

// httpTransport implements Transport over the platform REST API.
// It is safe for concurrent use by multiple goroutines.
type httpTransport struct {
	base         *url.URL
	client       *http.Client
	token        string
	maxErrorBody int64
}

var _ Transport = (*httpTransport)(nil)

// NewHTTP creates a REST transport. Timeouts are owned here, not by the engines.
func NewHTTP(cfg config.UpstreamConfig) (Transport, error) {
	return newHTTP(cfg, otelhttp.NewTransport(http.DefaultTransport))
}

func newHTTP(cfg config.UpstreamConfig, rt http.RoundTripper) (*httpTransport, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("upstream base url is required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("parse upstream base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("unsupported upstream scheme %q", base.Scheme)
	}
	maxBody := int64(cfg.MaxErrorBodyKB) * 1024
	if maxBody <= 0 {
		maxBody = 4096
	}
	return &httpTransport{
		base:         base,
		client:       &http.Client{Transport: rt, Timeout: cfg.Timeout()},
		token:        cfg.Token,
		maxErrorBody: maxBody,
	}, nil
}

func (t *httpTransport) Get(ctx context.Context, path string, query url.Values, out any) error {
	req, err := t.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return t.do(req, out)
}

func (t *httpTransport) Post(ctx context.Context, path string, body any, out any) error {
	r, err := jsonBody(body)
	if err != nil {
		return err
	}
	req, err := t.newRequest(ctx, http.MethodPost, path, nil, r)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return t.do(req, out)
}

func (t *httpTransport) Patch(ctx context.Context, path string, body any, out any) error {
	r, err := jsonBody(body)
	if err != nil {
		return err
	}
	req, err := t.newRequest(ctx, http.MethodPatch, path, nil, r)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return t.do(req, out)
}

func (t *httpTransport) Delete(ctx context.Context, path string) error {
	req, err := t.newRequest(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		return err
	}
	return t.do(req, nil)
}

// PostMultipart streams the form through a pipe; file contents are never buffered whole.
func (t *httpTransport) PostMultipart(ctx context.Context, path string, form Multipart, out any) error {
	if len(form.Files) == 0 {
		return ErrNoFiles
	}
	field := form.Field
	if field == "" {
		field = "file"
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeMultipart(mw, field, form))
	}()

	req, err := t.newRequest(ctx, http.MethodPost, path, nil, pr)
	if err != nil {
		pr.Close()
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	err = t.do(req, out)
	// unblock the writer goroutine if the request ended early
	pr.Close()
	return err
}

func writeMultipart(mw *multipart.Writer, field string, form Multipart) error {
	for k, v := range form.Values {
		if err := mw.WriteField(k, v); err != nil {
			return err
		}
	}
	for _, f := range form.Files {
		if f.Reader == nil {
			return fmt.Errorf("file %q has no content", f.Name)
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			escapeQuotes(field), escapeQuotes(f.Name)))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := mw.CreatePart(h)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return fmt.Errorf("copy file %q: %w", f.Name, err)
		}
	}
	return mw.Close()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func jsonBody(body any) (io.Reader, error) {
	if body == nil {
		return bytes.NewReader([]byte("{}")), nil
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return bytes.NewReader(b), nil
}

func (t *httpTransport) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	ref, err := url.Parse(strings.TrimLeft(path, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse path %q: %w", path, err)
	}
	u := t.base.ResolveReference(ref)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}
	return req, nil
}

func (t *httpTransport) do(req *http.Request, out any) error {
	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp, t.maxErrorBody)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	var env Envelope[json.RawMessage]
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	if len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response, limit int64) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, limit))
	se := &StatusError{Code: resp.StatusCode}

	var body struct {
		Message any `json:"message"`
		Error   any `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		se.Message = messageOf(body.Message)
		if se.Message == "" {
			se.Message = messageOf(body.Error)
		}
	}
	if se.Message == "" {
		se.Message = strings.TrimSpace(string(raw))
	}
	return se
}

// messageOf flattens the shapes the API uses for messages: a string, a list of
// validation strings, or an object carrying its own message.
func messageOf(v any) string {
	switch m := v.(type) {
	case string:
		return m
	case []any:
		parts := make([]string, 0, len(m))
		for _, p := range m {
			if s := messageOf(p); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "; ")
	case map[string]any:
		return messageOf(m["message"])
	}
	return ""
}
