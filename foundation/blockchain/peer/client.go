package peer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// basePath is the root of the node to node api.
const basePath = "/v1/node"

// Client provides access to the node api of other peers.
type Client struct {
	http *http.Client
}

// NewClient constructs a client whose requests are bound by the
// specified timeout. A zero timeout means no timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		http: &http.Client{Timeout: timeout},
	}
}

// FetchChain retrieves the full chain the peer is advertising. Any
// transport, status or decoding problem is returned as an error.
func (c *Client) FetchChain(ctx context.Context, pr Peer) ([]database.Block, error) {
	url := pr.URL(basePath + "/chain")

	var chain []database.Block
	if err := c.send(ctx, http.MethodGet, url, nil, &chain); err != nil {
		return nil, fmt.Errorf("%s: %w", pr.Host, err)
	}

	return chain, nil
}

// QueryStatus retrieves the status of the peer.
func (c *Client) QueryStatus(ctx context.Context, pr Peer) (Status, error) {
	url := pr.URL(basePath + "/status")

	var status Status
	if err := c.send(ctx, http.MethodGet, url, nil, &status); err != nil {
		return Status{}, fmt.Errorf("%s: %w", pr.Host, err)
	}

	return status, nil
}

// =============================================================================

// send is a helper function to send an HTTP request to a node.
func (c *Client) send(ctx context.Context, method string, url string, dataSend any, dataRecv any) error {
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

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if resp.StatusCode != http.StatusOK {
		msg, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		return fmt.Errorf("status %d: %w", resp.StatusCode, errors.New(string(msg)))
	}

	if dataRecv != nil {
		if err := json.NewDecoder(resp.Body).Decode(dataRecv); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
