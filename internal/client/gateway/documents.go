package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// documentList is the envelope of a collection list response. Documents stay
// raw here; each operation decodes them into its own DTO.
type documentList struct {
	Total     int               `json:"total"`
	Documents []json.RawMessage `json:"documents"`
}

func (c *Client) collectionPath(collectionID string) string {
	return fmt.Sprintf("/v1/databases/%s/collections/%s/documents", c.cfg.DatabaseID, collectionID)
}

func (c *Client) listDocuments(ctx context.Context, collectionID string, queries []Query) ([]json.RawMessage, error) {
	var list documentList
	path := c.collectionPath(collectionID)
	if err := c.do(ctx, http.MethodGet, path, encodeQueries(queries), nil, &list); err != nil {
		return nil, err
	}
	return list.Documents, nil
}

func (c *Client) getDocument(ctx context.Context, collectionID, documentID string, out any) error {
	path := c.collectionPath(collectionID) + "/" + documentID
	return c.do(ctx, http.MethodGet, path, nil, nil, out)
}

type createDocumentRequest struct {
	DocumentID string `json:"documentId"`
	Data       any    `json:"data"`
}

func (c *Client) createDocument(ctx context.Context, collectionID, documentID string, data, out any) error {
	path := c.collectionPath(collectionID)
	return c.do(ctx, http.MethodPost, path, nil, createDocumentRequest{DocumentID: documentID, Data: data}, out)
}

type updateDocumentRequest struct {
	Data any `json:"data"`
}

func (c *Client) updateDocument(ctx context.Context, collectionID, documentID string, data any) error {
	path := c.collectionPath(collectionID) + "/" + documentID
	return c.do(ctx, http.MethodPatch, path, nil, updateDocumentRequest{Data: data}, nil)
}
