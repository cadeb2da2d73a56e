package token

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

	tokendto "github.com/radieske/betting-protocol-poc/internal/betting/token/dto"
)

// Client fala com o token-service. Implementa engine.Token: Account é a
// conta de custódia, usada como spender nos pulls e como origem dos
// payouts.
type Client struct {
	BaseURL string
	Account string
	HTTP    *http.Client
}

func New(base, account string) *Client {
	return &Client{
		BaseURL: base,
		Account: account,
		HTTP:    &http.Client{Timeout: 2 * time.Second},
	}
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		// corpo carrega a reason estável do token-service
		b, _ := io.ReadAll(res.Body)
		return fmt.Errorf("token%s http %d: %s", path, res.StatusCode, strings.TrimSpace(string(b)))
	}
	return nil
}

// TransferFrom puxa fundos do holder para o destinatário usando a
// allowance concedida à conta de custódia
func (c *Client) TransferFrom(ctx context.Context, from, to string, amountCents int64) error {
	return c.post(ctx, "/token/transfer-from", tokendto.TransferFromRequest{
		SpenderID:   c.Account,
		FromUserID:  from,
		ToUserID:    to,
		AmountCents: amountCents,
	})
}

// Transfer move fundos da conta de custódia para o destinatário
func (c *Client) Transfer(ctx context.Context, to string, amountCents int64) error {
	return c.post(ctx, "/token/transfer", tokendto.TransferRequest{
		FromUserID:  c.Account,
		ToUserID:    to,
		AmountCents: amountCents,
	})
}

// BalanceOf consulta o saldo de uma conta no token-service
func (c *Client) BalanceOf(ctx context.Context, account string) (int64, error) {
	u := c.BaseURL + "/token/balance?userId=" + url.QueryEscape(account)
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	res, err := c.HTTP.Do(req)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return 0, fmt.Errorf("token balance http %d", res.StatusCode)
	}
	var out tokendto.BalanceResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return 0, err
	}
	return out.BalanceCents, nil
}
