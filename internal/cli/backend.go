package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hyperjump/kotae/internal/bot"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/storage"
)

// Backend is what commands talk to: an in-process bot or a running server.
type Backend interface {
	Respond(ctx context.Context, query string) (*models.Response, error)
	Suggest(ctx context.Context, partial string) (*models.SuggestResponse, error)
	Records(ctx context.Context) (*models.RecordsResponse, error)
	Add(ctx context.Context, in models.RecordInput) (int, error)
	Status(ctx context.Context) (*models.Status, error)
	Close() error
}

type localBackend struct {
	bot   *bot.Bot
	store storage.Storage
}

// NewLocalBackend serves commands from b, closing store on Close.
func NewLocalBackend(b *bot.Bot, store storage.Storage) Backend {
	return &localBackend{bot: b, store: store}
}

func (l *localBackend) Respond(_ context.Context, query string) (*models.Response, error) {
	resp := l.bot.Respond(query)
	return &resp, nil
}

func (l *localBackend) Suggest(_ context.Context, partial string) (*models.SuggestResponse, error) {
	return &models.SuggestResponse{Query: partial, Suggestions: l.bot.Suggest(partial)}, nil
}

func (l *localBackend) Records(context.Context) (*models.RecordsResponse, error) {
	records := l.bot.Records()
	return &models.RecordsResponse{Records: records, Total: len(records)}, nil
}

func (l *localBackend) Add(ctx context.Context, in models.RecordInput) (int, error) {
	return l.bot.Append(ctx, in)
}

func (l *localBackend) Status(ctx context.Context) (*models.Status, error) {
	st := l.bot.Status(ctx)
	return &st, nil
}

func (l *localBackend) Close() error {
	if l.store == nil {
		return nil
	}
	return l.store.Close()
}

type httpBackend struct {
	baseURL string
	client  *http.Client
}

// NewHTTPBackend talks to a kotae server at serverURL.
func NewHTTPBackend(serverURL string) Backend {
	return &httpBackend{
		baseURL: strings.TrimRight(serverURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (h *httpBackend) Respond(ctx context.Context, query string) (*models.Response, error) {
	var out models.Response
	if err := h.do(ctx, http.MethodPost, "/api/v1/respond", models.RespondRequest{Query: query}, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *httpBackend) Suggest(ctx context.Context, partial string) (*models.SuggestResponse, error) {
	var out models.SuggestResponse
	path := "/api/v1/suggest?q=" + url.QueryEscape(partial)
	if err := h.do(ctx, http.MethodGet, path, nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *httpBackend) Records(ctx context.Context) (*models.RecordsResponse, error) {
	var out models.RecordsResponse
	if err := h.do(ctx, http.MethodGet, "/api/v1/records", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *httpBackend) Add(ctx context.Context, in models.RecordInput) (int, error) {
	var out struct {
		Position int `json:"position"`
	}
	if err := h.do(ctx, http.MethodPost, "/api/v1/records", in, http.StatusCreated, &out); err != nil {
		return 0, err
	}
	return out.Position, nil
}

func (h *httpBackend) Status(ctx context.Context) (*models.Status, error) {
	var out models.Status
	if err := h.do(ctx, http.MethodGet, "/api/v1/status", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *httpBackend) Close() error { return nil }

func (h *httpBackend) do(ctx context.Context, method, path string, body interface{}, want int, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != want {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
