package api

import "context"

// Album is one collection in the user's vault.
type Album struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// AlbumItem is one purchased or saved media entry inside an album.
type AlbumItem struct {
	ID        string `json:"id"`
	AccountID string `json:"accountId"`
}

// Albums returns all vault collections.
func (c *Client) Albums(ctx context.Context) ([]Album, error) {
	var out struct {
		Albums []Album `json:"albums"`
	}
	if err := c.getJSON(ctx, "/uservault/albumsnew", params{"accountId": ""}, &out); err != nil {
		return nil, err
	}
	return out.Albums, nil
}

// AlbumContent returns one page of an album's entries.
func (c *Client) AlbumContent(ctx context.Context, albumID string, limit, offset int) ([]AlbumItem, error) {
	p := params{
		"albumId": albumID,
		"limit":   limit,
		"offset":  offset,
	}
	var out []AlbumItem
	if err := c.getJSON(ctx, "/uservault/album/content", p, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteAlbumContent removes the given entries from an album.
func (c *Client) DeleteAlbumContent(ctx context.Context, albumID string, itemIDs []string) error {
	if len(itemIDs) == 0 {
		return nil
	}
	body := map[string]any{
		"albumId":         albumID,
		"albumContentIds": itemIDs,
	}
	return c.postJSON(ctx, "/uservault/album/content/delete", body, nil)
}
