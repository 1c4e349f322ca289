package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	v1 "github.com/ardanlabs/ledger/business/web/v1"
)

// call sends a request to the node and decodes the response. Any status
// outside of the 2xx range is returned as an error carrying the message
// the node answered with.
func call(ctx context.Context, method string, url string, dataSend any, dataRecv any) error {
	var body io.Reader
	if dataSend != nil {
		data, err := json.Marshal(dataSend)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	if dataSend != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var er v1.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&er); err != nil || er.Error == "" {
			return fmt.Errorf("%s %s: status %d", method, url, resp.StatusCode)
		}

		msg := er.Error
		for field, problem := range er.Fields {
			msg += fmt.Sprintf(", %s: %s", field, problem)
		}
		return fmt.Errorf("%s %s: status %d: %s", method, url, resp.StatusCode, msg)
	}

	if resp.StatusCode == http.StatusNoContent || dataRecv == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dataRecv); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

// endpoint joins the base url of the node with the specified path.
func endpoint(base string, path string) string {
	return strings.TrimSuffix(base, "/") + path
}
