package api

import "context"

// noteContentType is the remote content type discriminator for account notes.
const noteContentType = 12000

// AddNote attaches a note to an account and returns the new note id.
func (c *Client) AddNote(ctx context.Context, accountID, title, data string) (string, error) {
	body := map[string]any{
		"contentId":   accountID,
		"contentType": noteContentType,
		"title":       title,
		"data":        data,
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := c.postJSON(ctx, "/notes", body, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// DeleteNote removes a note from an account.
func (c *Client) DeleteNote(ctx context.Context, accountID, noteID string) error {
	body := map[string]any{
		"contentId":   accountID,
		"contentType": noteContentType,
		"id":          noteID,
	}
	return c.postJSON(ctx, "/notes/delete", body, nil)
}
