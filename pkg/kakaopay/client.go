package kakaopay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to KakaoPay's one-time payment API: a "ready" call that opens a
// transaction and returns a redirect URL, and an "approve" call that settles it
// once the user comes back with a pg_token.
type Client struct {
	baseURL    string
	adminKey   string
	cid        string
	httpClient *http.Client
}

func NewClient(baseURL, adminKey, cid string) *Client {
	return &Client{
		baseURL:    baseURL,
		adminKey:   adminKey,
		cid:        cid,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type ReadyRequest struct {
	OrderID     string
	UserID      string
	ItemName    string
	Amount      int
	ApprovalURL string
	CancelURL   string
	FailURL     string
}

type ReadyResponse struct {
	TID               string `json:"tid"`
	NextRedirectPCURL string `json:"next_redirect_pc_url"`
}

type ApproveRequest struct {
	TID     string
	OrderID string
	UserID  string
	PGToken string
}

// Ready opens a payment transaction. The returned tid must be stored by the
// caller; approve is impossible without it.
func (c *Client) Ready(ctx context.Context, req ReadyRequest) (*ReadyResponse, error) {
	form := url.Values{
		"cid":              {c.cid},
		"partner_order_id": {req.OrderID},
		"partner_user_id":  {req.UserID},
		"item_name":        {req.ItemName},
		"quantity":         {"1"},
		"total_amount":     {strconv.Itoa(req.Amount)},
		"tax_free_amount":  {"0"},
		"approval_url":     {req.ApprovalURL},
		"cancel_url":       {req.CancelURL},
		"fail_url":         {req.FailURL},
	}

	var resp ReadyResponse
	if err := c.post(ctx, "/v1/payment/ready", form, &resp); err != nil {
		return nil, err
	}
	if resp.TID == "" {
		return nil, fmt.Errorf("kakaopay ready: response missing tid")
	}
	return &resp, nil
}

// Approve settles a transaction opened by Ready.
func (c *Client) Approve(ctx context.Context, req ApproveRequest) error {
	form := url.Values{
		"cid":              {c.cid},
		"tid":              {req.TID},
		"partner_order_id": {req.OrderID},
		"partner_user_id":  {req.UserID},
		"pg_token":         {req.PGToken},
	}
	return c.post(ctx, "/v1/payment/approve", form, nil)
}

func (c *Client) post(ctx context.Context, path string, form url.Values, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("kakaopay request: %w", err)
	}
	httpReq.Header.Set("Authorization", "KakaoAK "+c.adminKey)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("kakaopay %s: %w", path, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(httpResp.Body, 1024))
		return fmt.Errorf("kakaopay %s: status %d: %s", path, httpResp.StatusCode, strings.TrimSpace(string(body)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(httpResp.Body).Decode(out); err != nil {
		return fmt.Errorf("kakaopay %s: decode response: %w", path, err)
	}
	return nil
}
