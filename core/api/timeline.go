package api

import "context"

// Post is one timeline post as seen from the notification feed.
type Post struct {
	ID        string `json:"id"`
	AccountID string `json:"accountId"`
}

// TimelineBefore returns one page of the user's timeline feed. The feed uses
// a before-cursor rather than offsets: pass the last seen post id to get the
// next page, or an empty string for the newest page.
func (c *Client) TimelineBefore(ctx context.Context, accountID, before string, limit int) ([]Post, error) {
	p := params{"limit": limit}
	if before != "" {
		p["before"] = before
	}
	var out struct {
		Posts []Post `json:"posts"`
	}
	if err := c.getJSON(ctx, "/timelinenew/"+accountID, p, &out); err != nil {
		return nil, err
	}
	return out.Posts, nil
}

// DeletePost removes a post authored by the user. Deleting a post that is
// already gone yields ErrNotFound, which callers treat as success.
func (c *Client) DeletePost(ctx context.Context, postID string) error {
	return c.postJSON(ctx, "/post/delete", map[string]string{"postId": postID}, nil)
}
