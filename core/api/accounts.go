package api

import (
	"context"
	"encoding/json"
)

// Note is a private note attached to an account.
type Note struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Data      string `json:"note"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

// Account is the brief account projection used throughout the tool.
type Account struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Notes       []Note `json:"notes"`
}

// SelfID returns the id of the invoking account, fetching it once.
func (c *Client) SelfID(ctx context.Context) (string, error) {
	if c.selfID != "" {
		return c.selfID, nil
	}

	var out struct {
		Account Account `json:"account"`
	}
	if err := c.getJSON(ctx, "/account/me", nil, &out); err != nil {
		return "", err
	}
	c.selfID = out.Account.ID
	return c.selfID, nil
}

// AccountsByIDs resolves a batch of account ids. Ids that no longer resolve
// simply do not appear in the result; there is no per-id error.
func (c *Client) AccountsByIDs(ctx context.Context, ids []string) ([]Account, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []Account
	if err := c.getJSON(ctx, "/account", params{"ids": ids}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AccountsByUsernames resolves a batch of usernames.
func (c *Client) AccountsByUsernames(ctx context.Context, usernames []string) ([]Account, error) {
	if len(usernames) == 0 {
		return nil, nil
	}
	var out []Account
	if err := c.getJSON(ctx, "/account", params{"usernames": usernames}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AccountRaw returns the unprojected account payload as the remote service
// sent it. Used by the info command with --raw.
func (c *Client) AccountRaw(ctx context.Context, idOrUsername string, byID bool) (json.RawMessage, error) {
	p := params{"usernames": []string{idOrUsername}}
	if byID {
		p = params{"ids": []string{idOrUsername}}
	}
	var out []json.RawMessage
	if err := c.getJSON(ctx, "/account", p, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return out[0], nil
}
