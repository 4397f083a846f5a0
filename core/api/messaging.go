package api

import "context"

// Group is one chat thread between the user and a partner account.
type Group struct {
	ID        string `json:"id"`
	PartnerID string `json:"partnerAccountId"`
}

// Message is one message within a chat thread.
type Message struct {
	ID       string `json:"id"`
	SenderID string `json:"senderId"`
}

// Groups returns one page of the user's chat threads.
func (c *Client) Groups(ctx context.Context, limit, offset int) ([]Group, error) {
	p := params{
		"limit":  limit,
		"offset": offset,
	}
	var out struct {
		Groups []Group `json:"groups"`
	}
	if err := c.getJSON(ctx, "/messaging/groups", p, &out); err != nil {
		return nil, err
	}
	return out.Groups, nil
}

// Messages returns one page of a thread's messages, newest first. A non-empty
// before id restricts the page to messages older than it.
func (c *Client) Messages(ctx context.Context, groupID, before string, limit int) ([]Message, error) {
	p := params{
		"groupId": groupID,
		"limit":   limit,
	}
	if before != "" {
		p["before"] = before
	}
	var out struct {
		Messages []Message `json:"messages"`
	}
	if err := c.getJSON(ctx, "/message", p, &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

// DeleteMessage removes a single message the user sent.
func (c *Client) DeleteMessage(ctx context.Context, messageID string) error {
	return c.postJSON(ctx, "/message/delete", map[string]string{"messageId": messageID}, nil)
}
