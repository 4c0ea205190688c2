package secop

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"
)

const (
	contentType     = "application/json"
	contentEncoding = "gzip, deflate, br"
)

// Item is a raw feed record before normalization into a Tender.
type Item map[string]any

// GetItems makes GET requests to the open data API and returns items from all
// pages. Socrata pages with $limit/$offset; the loop stops on the first short
// page.
func (c *Client) GetItems(fullURL string, q url.Values) ([]Item, error) {
	var items []Item

	limit := pageSize
	if raw := q.Get("$limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid $limit value: %q", raw)
		}
		limit = parsed
	}
	q.Set("$limit", strconv.Itoa(limit))

	offset := 0
	for {
		q.Set("$offset", strconv.Itoa(offset))

		var page []Item
		if err := c.getJSON(fullURL, q, &page); err != nil {
			return nil, err
		}

		items = append(items, page...)

		if len(page) < limit {
			break
		}

		offset += limit
		c.logger.Debug("additional request needed", zap.String("reason", fmt.Sprintf(
			"got a full page of %d items, continuing at offset %d", limit, offset),
		))
	}

	return items, nil
}

func (c *Client) request(req *http.Request) (*http.Response, error) {
	c.logger.Debug("make request", zap.String("url", req.URL.String()))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	if c.appToken != "" {
		req.Header.Set("X-App-Token", c.appToken)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept-Encoding", contentEncoding)

	return req
}

func (c *Client) getJSON(fullURL string, q url.Values, target interface{}) error {
	req, err := http.NewRequestWithContext(c.ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)
	if q != nil {
		req.URL.RawQuery = q.Encode()
	}

	resp, err := c.request(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	var gzipReader *gzip.Reader
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err = gzip.NewReader(resp.Body)
		if err != nil {
			return err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	if target == nil {
		return nil
	}

	if err := json.Unmarshal(data, target); err != nil {
		return err
	}

	return nil
}
