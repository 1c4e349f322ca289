// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ardanlabs/ledger/business/sys/validate"
	v1 "github.com/ardanlabs/ledger/business/web/v1"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// Chain returns the full chain.
func (h Handlers) Chain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.Chain(), http.StatusOK)
}

// LastBlock returns the most recent block or no content if nothing has
// been mined yet.
func (h Handlers) LastBlock(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	block, exists := h.State.LastBlock()
	if !exists {
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}

	return web.Respond(ctx, w, block, http.StatusOK)
}

// Valid reports if the local chain passes validation.
func (h Handlers) Valid(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := validity{
		Valid:  h.State.IsValid(),
		Length: len(h.State.Chain()),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Mine performs the proof of work for the next block, rewards this node
// and returns the block that was added.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.Log.Infow("mine", "traceid", v.TraceID, "pending", len(h.State.Pending()))

	block, err := h.State.Mine(ctx)
	if err != nil {
		return fmt.Errorf("mining block: %w", err)
	}

	return web.Respond(ctx, w, block, http.StatusCreated)
}

// Pending returns the transactions waiting for the next block.
func (h Handlers) Pending(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.Pending(), http.StatusOK)
}

// StageTransaction adds a new transaction to the pending pool.
func (h Handlers) StageTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var ntx newTx
	if err := web.Decode(r, &ntx); err != nil {
		return v1.BadRequest(err)
	}

	if err := validate.Check(ntx); err != nil {
		return fmt.Errorf("validating data: %w", err)
	}

	tx := ntx.toTx()

	h.Log.Infow("stage tran", "traceid", v.TraceID, "tx", tx)

	index, err := h.State.StageTransaction(tx)
	if err != nil {
		return v1.BadRequest(err)
	}

	resp := staged{
		Message: fmt.Sprintf("transaction will be added to block %d", index),
		Index:   index,
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// RegisterNodes adds the specified hosts to the known peers and signals the
// worker to reconcile the chain with them.
func (h Handlers) RegisterNodes(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var rn registerNodes
	if err := web.Decode(r, &rn); err != nil {
		return v1.BadRequest(err)
	}

	if err := validate.Check(rn); err != nil {
		return fmt.Errorf("validating data: %w", err)
	}

	h.State.RegisterPeer(rn.Nodes...)

	if h.State.Worker != nil {
		h.State.Worker.SignalResolve()
	}

	known := h.State.KnownPeers()
	resp := registered{
		Message:    "new nodes have been added",
		TotalNodes: make([]string, len(known)),
	}
	for i, pr := range known {
		resp.TotalNodes[i] = pr.Host
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// Resolve runs the consensus algorithm against every known peer and
// returns the chain this node holds afterwards.
func (h Handlers) Resolve(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	replaced, chain := h.State.ResolveConflicts(ctx)

	resp := resolved{
		Message:  "our chain is authoritative",
		Replaced: replaced,
		Chain:    chain,
	}
	if replaced {
		resp.Message = "our chain was replaced"
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
