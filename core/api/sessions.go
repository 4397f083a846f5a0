package api

import "context"

// Subscription is one active paid subscription.
type Subscription struct {
	ID        string `json:"id"`
	AccountID string `json:"accountId"`
}

// Session is one authenticated device session.
type Session struct {
	ID string `json:"id"`
}

// Subscriptions returns all active subscriptions.
func (c *Client) Subscriptions(ctx context.Context) ([]Subscription, error) {
	var out struct {
		Subscriptions []Subscription `json:"subscriptions"`
	}
	if err := c.getJSON(ctx, "/subscriptions", nil, &out); err != nil {
		return nil, err
	}
	return out.Subscriptions, nil
}

// Unsubscribe cancels an active subscription.
func (c *Client) Unsubscribe(ctx context.Context, subscriptionID string) error {
	return c.postJSON(ctx, "/subscriptions/cancel", map[string]string{"subscriptionId": subscriptionID}, nil)
}

// Sessions lists the authenticated device sessions, the invoking session
// first.
func (c *Client) Sessions(ctx context.Context) ([]Session, error) {
	var out []Session
	if err := c.getJSON(ctx, "/account/sessions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CloseSession terminates a device session.
func (c *Client) CloseSession(ctx context.Context, sessionID string) error {
	return c.postJSON(ctx, "/account/sessions/close", map[string]string{"sessionId": sessionID}, nil)
}
