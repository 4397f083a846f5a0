package api

import "context"

// ListInfo describes a curated account list without its members.
type ListInfo struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Lists returns all the user's curated lists.
func (c *Client) Lists(ctx context.Context) ([]ListInfo, error) {
	var out []ListInfo
	if err := c.getJSON(ctx, "/lists/account", params{"itemId": ""}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListItems returns the account ids belonging to a list.
func (c *Client) ListItems(ctx context.Context, listID string) ([]string, error) {
	var out []struct {
		ID string `json:"id"`
	}
	if err := c.getJSON(ctx, "/lists/items", params{"listId": listID}, &out); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(out))
	for _, entry := range out {
		ids = append(ids, entry.ID)
	}
	return ids, nil
}

// CreateList creates a list with the given label and returns its id.
func (c *Client) CreateList(ctx context.Context, label string) (string, error) {
	body := map[string]string{
		"label":       label,
		"description": "",
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := c.postJSON(ctx, "/lists", body, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// DeleteList removes a whole list.
func (c *Client) DeleteList(ctx context.Context, listID string) error {
	return c.postJSON(ctx, "/lists/remove", map[string]string{"listId": listID}, nil)
}

type listCommand struct {
	ListItem struct {
		ID     string `json:"id"`
		ListID string `json:"listId"`
	} `json:"listItem"`
	Type int `json:"type"`
}

// AddListItems adds the given accounts to a list in one call.
func (c *Client) AddListItems(ctx context.Context, listID string, accountIDs []string) error {
	if len(accountIDs) == 0 {
		return nil
	}

	commands := make([]listCommand, 0, len(accountIDs))
	for _, accountID := range accountIDs {
		cmd := listCommand{Type: 1}
		cmd.ListItem.ID = accountID
		cmd.ListItem.ListID = listID
		commands = append(commands, cmd)
	}
	return c.postJSON(ctx, "/lists/commands", map[string]any{"listCommands": commands}, nil)
}

// RemoveListItems removes the given accounts from a list in one call.
func (c *Client) RemoveListItems(ctx context.Context, listID string, accountIDs []string) error {
	if len(accountIDs) == 0 {
		return nil
	}
	body := map[string]any{
		"listId":      listID,
		"listItemIds": accountIDs,
	}
	return c.postJSON(ctx, "/lists/items/remove", body, nil)
}
