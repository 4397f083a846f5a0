package api

import (
	"context"
	"fmt"
)

// Following returns one page of account ids the user follows.
// An empty page signals the end of the collection.
func (c *Client) Following(ctx context.Context, limit, offset int) ([]string, error) {
	selfID, err := c.SelfID(ctx)
	if err != nil {
		return nil, err
	}

	var out []struct {
		AccountID string `json:"accountId"`
	}
	p := params{
		"before": 0,
		"after":  0,
		"limit":  limit,
		"offset": offset,
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/account/%s/following", selfID), p, &out); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(out))
	for _, entry := range out {
		ids = append(ids, entry.AccountID)
	}
	return ids, nil
}

// Follow adds the account to the user's follow graph.
func (c *Client) Follow(ctx context.Context, accountID string) error {
	return c.postJSON(ctx, fmt.Sprintf("/account/%s/followers", accountID), nil, nil)
}

// Unfollow removes the account from the user's follow graph.
func (c *Client) Unfollow(ctx context.Context, accountID string) error {
	return c.postJSON(ctx, fmt.Sprintf("/account/%s/followers/remove", accountID), nil, nil)
}
