package gateway

import (
	"context"
	"encoding/json"
	"time"

	"github.com/batorigb/kinotv/internal/client/models"
)

// purchaseDoc mirrors a document of the purchases collection. The movieId
// attribute overloads content ids and bundle sentinels; models.ParseTarget
// untangles it.
type purchaseDoc struct {
	ID        string    `json:"$id"`
	UserID    string    `json:"userId"`
	MovieID   string    `json:"movieId"`
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (d purchaseDoc) toModel() models.Purchase {
	return models.Purchase{
		ID:        d.ID,
		UserID:    d.UserID,
		Target:    models.ParseTarget(d.MovieID),
		Status:    d.Status,
		ExpiresAt: d.ExpiresAt,
	}
}

// PurchasesByUser lists the user's active grants. Filtering happens server
// side: only status=PAID documents whose expiry is still in the future at
// query time are returned, so a purchase already expired relative to "now"
// is excluded rather than returned and filtered locally.
func (c *Client) PurchasesByUser(ctx context.Context, userID string) ([]models.Purchase, error) {
	queries := []Query{
		Equal("userId", userID),
		Equal("status", models.StatusPaid),
		GreaterThan("expiresAt", time.Now().UTC().Format(time.RFC3339)),
	}
	raw, err := c.listDocuments(ctx, c.cfg.PurchasesCollectionID, queries)
	if err != nil {
		c.log.Error(ctx, "purchase listing failed", "userId", userID, "error", err)
		return nil, err
	}

	purchases := make([]models.Purchase, 0, len(raw))
	for _, r := range raw {
		var d purchaseDoc
		if err := json.Unmarshal(r, &d); err != nil {
			return nil, &ParseError{Path: "purchases", Err: err}
		}
		purchases = append(purchases, d.toModel())
	}
	return purchases, nil
}
