package api

import (
	"context"
	"encoding/json"
)

// Payment is one wallet transaction attributed to an account.
// Price is the remote fixed-point integer (real value = Price / 1000).
type Payment struct {
	AccountID     string `json:"accountId"`
	TransactionID string `json:"transactionId"`
	CreatedAt     int64  `json:"createdAt"`
	Price         int64  `json:"price"`
}

// Payments returns one page of the wallet transaction ledger. Balance
// purchases carry no product order and are skipped; tips attribute to the
// productId, everything else to the accountId inside the order metadata.
func (c *Client) Payments(ctx context.Context, limit, offset int) ([]Payment, error) {
	var out []struct {
		TransactionID string `json:"transactionId"`
		ProductOrder  *struct {
			Items struct {
				ProductID    string `json:"productId"`
				ProductPrice int64  `json:"productPrice"`
				CreatedAt    int64  `json:"createdAt"`
				Metadata     string `json:"metadata"`
			} `json:"items"`
		} `json:"productOrder"`
	}

	p := params{
		"before": 0,
		"after":  0,
		"limit":  limit,
		"offset": offset,
	}
	if err := c.getJSON(ctx, "/account/wallets/transactions", p, &out); err != nil {
		return nil, err
	}

	payments := make([]Payment, 0, len(out))
	for _, entry := range out {
		if entry.ProductOrder == nil { // balance purchase, not attributable
			continue
		}
		items := entry.ProductOrder.Items

		accountID := items.ProductID // a tip
		if items.Metadata != "" {
			var meta struct {
				AccountID string `json:"accountId"`
			}
			if err := json.Unmarshal([]byte(items.Metadata), &meta); err == nil && meta.AccountID != "" {
				accountID = meta.AccountID
			}
		}

		payments = append(payments, Payment{
			AccountID:     accountID,
			TransactionID: entry.TransactionID,
			CreatedAt:     items.CreatedAt,
			Price:         items.ProductPrice,
		})
	}
	return payments, nil
}
