// Package client is a thin HTTP client for the review-planner API, used by
// the reviewctl command line tool.
package client

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

	"github.com/google/uuid"

	api "github.com/qualinet/review-planner/api/v1alpha1"
)

type Client struct {
	baseURL    string
	actorID    string
	actorRole  string
	httpClient *http.Client
}

type Option func(*Client)

// WithActor sets the identity forwarded on every request.
func WithActor(id, role string) Option {
	return func(c *Client) {
		c.actorID = id
		c.actorRole = role
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Error is returned for any non-2xx response, carrying the decoded body.
type Error struct {
	StatusCode int
	Response   api.Error
}

func (e *Error) Error() string {
	if len(e.Response.Failures) > 0 {
		return fmt.Sprintf("%s (status %d): %s", e.Response.Message, e.StatusCode, strings.Join(e.Response.Failures, "; "))
	}
	return fmt.Sprintf("%s (status %d)", e.Response.Message, e.StatusCode)
}

func (c *Client) CreateReview(ctx context.Context, form api.ReviewCreateForm) (*api.Review, error) {
	return c.review(ctx, http.MethodPost, "/api/v1/reviews", form)
}

func (c *Client) GetReview(ctx context.Context, id uuid.UUID) (*api.Review, error) {
	return c.review(ctx, http.MethodGet, fmt.Sprintf("/api/v1/reviews/%s", id), nil)
}

// ListFilter narrows down ListReviews. Zero values are omitted.
type ListFilter struct {
	Status       string
	Stage        string
	ReviewerID   string
	MemberFirmID string
	Overdue      bool
}

func (c *Client) ListReviews(ctx context.Context, filter ListFilter) (*api.ReviewList, error) {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.Stage != "" {
		query.Set("stage", filter.Stage)
	}
	if filter.ReviewerID != "" {
		query.Set("reviewerId", filter.ReviewerID)
	}
	if filter.MemberFirmID != "" {
		query.Set("memberFirmId", filter.MemberFirmID)
	}
	if filter.Overdue {
		query.Set("overdue", "true")
	}

	path := "/api/v1/reviews"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	list := &api.ReviewList{}
	if err := c.do(ctx, http.MethodGet, path, nil, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) Assign(ctx context.Context, id uuid.UUID, form api.AssignForm) (*api.Review, error) {
	return c.review(ctx, http.MethodPost, fmt.Sprintf("/api/v1/reviews/%s/assign", id), form)
}

func (c *Client) AcceptByReviewer(ctx context.Context, id uuid.UUID) (*api.Review, error) {
	return c.review(ctx, http.MethodPost, fmt.Sprintf("/api/v1/reviews/%s/acceptance/reviewer", id), nil)
}

func (c *Client) AcceptByFirm(ctx context.Context, id uuid.UUID) (*api.Review, error) {
	return c.review(ctx, http.MethodPost, fmt.Sprintf("/api/v1/reviews/%s/acceptance/firm", id), nil)
}

func (c *Client) Reject(ctx context.Context, id uuid.UUID, form api.RejectForm) (*api.Review, error) {
	return c.review(ctx, http.MethodPost, fmt.Sprintf("/api/v1/reviews/%s/rejection", id), form)
}

func (c *Client) StartWork(ctx context.Context, id uuid.UUID) (*api.Review, error) {
	return c.review(ctx, http.MethodPost, fmt.Sprintf("/api/v1/reviews/%s/start", id), nil)
}

func (c *Client) SubmitRating(ctx context.Context, id uuid.UUID, form api.RatingForm) (*api.Review, error) {
	return c.review(ctx, http.MethodPost, fmt.Sprintf("/api/v1/reviews/%s/rating", id), form)
}

func (c *Client) Verify(ctx context.Context, id uuid.UUID, form api.VerificationForm) (*api.Review, error) {
	return c.review(ctx, http.MethodPost, fmt.Sprintf("/api/v1/reviews/%s/verification", id), form)
}

func (c *Client) Finalize(ctx context.Context, id uuid.UUID, form api.FinalReviewForm) (*api.Review, error) {
	return c.review(ctx, http.MethodPost, fmt.Sprintf("/api/v1/reviews/%s/finalization", id), form)
}

func (c *Client) RequestRevision(ctx context.Context, id uuid.UUID, form api.RevisionForm) (*api.Review, error) {
	return c.review(ctx, http.MethodPost, fmt.Sprintf("/api/v1/reviews/%s/revision", id), form)
}

func (c *Client) ListDocuments(ctx context.Context, id uuid.UUID) (*api.DocumentList, error) {
	list := &api.DocumentList{}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/reviews/%s/documents", id), nil, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) AttachDocument(ctx context.Context, id uuid.UUID, form api.DocumentCreateForm) (*api.Document, error) {
	document := &api.Document{}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/reviews/%s/documents", id), form, document); err != nil {
		return nil, err
	}
	return document, nil
}

func (c *Client) review(ctx context.Context, method, path string, body any) (*api.Review, error) {
	review := &api.Review{}
	if err := c.do(ctx, method, path, body, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.actorID != "" {
		req.Header.Set("X-Actor-Id", c.actorID)
		req.Header.Set("X-Actor-Role", c.actorRole)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr.Response); err != nil {
			apiErr.Response.Message = resp.Status
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
