package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// richText is the fragment shape shared by every rich-text bearing block.
type richText struct {
	PlainText string `json:"plain_text"`
}

func joinRichText(fragments []richText) string {
	var b strings.Builder
	for _, f := range fragments {
		b.WriteString(f.PlainText)
	}
	return b.String()
}

// apiBlock is one child block. The type-specific payload lives under a key
// named after the block type, so the whole object is kept for projection.
type apiBlock struct {
	Type           string    `json:"type"`
	LastEditedTime time.Time `json:"last_edited_time"`

	raw map[string]json.RawMessage
}

func (b *apiBlock) UnmarshalJSON(data []byte) error {
	type header apiBlock
	var h header
	if err := json.Unmarshal(data, &h); err != nil {
		return err
	}
	*b = apiBlock(h)
	return json.Unmarshal(data, &b.raw)
}

type blockChildrenResponse struct {
	Results    []apiBlock `json:"results"`
	HasMore    bool       `json:"has_more"`
	NextCursor string     `json:"next_cursor"`
}

// BlockChildren returns a block's children, following pagination cursors
// until exhausted.
func (c *Client) BlockChildren(ctx context.Context, blockID string) ([]apiBlock, error) {
	var blocks []apiBlock
	cursor := ""

	for {
		path := "/blocks/" + blockID + "/children"
		if cursor != "" {
			path += "?start_cursor=" + url.QueryEscape(cursor)
		}

		var resp blockChildrenResponse
		if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
			return nil, err
		}

		blocks = append(blocks, resp.Results...)

		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		cursor = resp.NextCursor
	}

	return blocks, nil
}

// blockText projects a block to plain text by its type. Rich-text bearing
// blocks flatten to their concatenated plain text; images and code get
// placeholders; unknown types degrade to a generic placeholder naming the
// type rather than failing the fetch.
func blockText(block apiBlock) string {
	var payload struct {
		RichText []richText `json:"rich_text"`
	}
	hasRichText := false
	if data, ok := block.raw[block.Type]; ok {
		if err := json.Unmarshal(data, &payload); err == nil && payload.RichText != nil {
			hasRichText = true
		}
	}

	switch {
	case block.Type == "code":
		return "[Code]\n" + joinRichText(payload.RichText)
	case block.Type == "image":
		return "[Image]"
	case hasRichText:
		return joinRichText(payload.RichText)
	default:
		return fmt.Sprintf("[%s block]", block.Type)
	}
}
