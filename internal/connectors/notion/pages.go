package notion

import (
	"context"
	"net/http"
)

// searchRequest is the /search request payload. Results are restricted to
// pages and sorted by last edited time, newest first.
type searchRequest struct {
	Filter      searchFilter `json:"filter"`
	Sort        searchSort   `json:"sort"`
	StartCursor string       `json:"start_cursor,omitempty"`
}

type searchFilter struct {
	Value    string `json:"value"`
	Property string `json:"property"`
}

type searchSort struct {
	Direction string `json:"direction"`
	Timestamp string `json:"timestamp"`
}

type searchResponse struct {
	Results []struct {
		ID     string `json:"id"`
		Object string `json:"object"`
	} `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

// SearchPageIDs returns the IDs of every page shared with the integration,
// following pagination cursors until exhausted.
func (c *Client) SearchPageIDs(ctx context.Context) ([]string, error) {
	var ids []string
	cursor := ""

	for {
		req := searchRequest{
			Filter: searchFilter{Value: "page", Property: "object"},
			Sort:   searchSort{Direction: "descending", Timestamp: "last_edited_time"},
		}
		req.StartCursor = cursor

		var resp searchResponse
		if err := c.do(ctx, http.MethodPost, "/search", req, &resp); err != nil {
			return nil, err
		}

		for _, result := range resp.Results {
			if result.Object == "page" {
				ids = append(ids, result.ID)
			}
		}

		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		cursor = resp.NextCursor
	}

	return ids, nil
}

// pageResponse carries only the properties needed to extract a title.
type pageResponse struct {
	Properties map[string]struct {
		Type  string     `json:"type"`
		Title []richText `json:"title"`
	} `json:"properties"`
}

// PageTitle resolves a page's title by scanning its properties for the one
// of type "title". Pages without one are reported as "Untitled".
func (c *Client) PageTitle(ctx context.Context, pageID string) (string, error) {
	var resp pageResponse
	if err := c.do(ctx, http.MethodGet, "/pages/"+pageID, nil, &resp); err != nil {
		return "", err
	}

	for _, prop := range resp.Properties {
		if prop.Type != "title" {
			continue
		}
		if title := joinRichText(prop.Title); title != "" {
			return title, nil
		}
		break
	}
	return "Untitled", nil
}

// Me validates the token by fetching the integration's own bot user.
func (c *Client) Me(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/users/me", nil, nil)
}
