package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ardanlabs/ledger/app/services/node/handlers"
	v1 "github.com/ardanlabs/ledger/business/web/v1"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
	"github.com/ardanlabs/ledger/foundation/blockchain/pow"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/events"
	"go.uber.org/zap"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

type node struct {
	state   *state.State
	public  http.Handler
	private http.Handler
}

func newNode(t *testing.T, nodeID string) node {
	engine, err := pow.New(pow.Config{Difficulty: 1, Workers: 2, BatchSize: 64})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the engine: %v", failed, err)
	}

	st, err := state.New(state.Config{
		NodeID:      nodeID,
		Reward:      1,
		VerifyProof: true,
		Engine:      engine,
		Fetcher:     peer.NewClient(time.Second),
	})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the ledger: %v", failed, err)
	}

	cfg := handlers.MuxConfig{
		Shutdown: make(chan os.Signal, 1),
		Log:      zap.NewNop().Sugar(),
		State:    st,
		Evts:     events.New(),
	}

	return node{
		state:   st,
		public:  handlers.PublicMux(cfg),
		private: handlers.PrivateMux(cfg),
	}
}

func call(h http.Handler, method string, path string, body string) *httptest.ResponseRecorder {
	var r *http.Request
	switch body {
	case "":
		r = httptest.NewRequest(method, path, nil)
	default:
		r = httptest.NewRequest(method, path, strings.NewReader(body))
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	return w
}

// =============================================================================

func Test_StageTransaction(t *testing.T) {
	type table struct {
		name   string
		body   string
		status int
		field  string
	}

	tt := []table{
		{name: "valid", body: `{"sender":"alice","recipient":"bob","amount":5}`, status: http.StatusCreated},
		{name: "zero", body: `{"sender":"alice","recipient":"bob","amount":0}`, status: http.StatusCreated},
		{name: "noamount", body: `{"sender":"alice","recipient":"bob"}`, status: http.StatusBadRequest, field: "amount"},
		{name: "nosender", body: `{"recipient":"bob","amount":1}`, status: http.StatusBadRequest, field: "sender"},
		{name: "negative", body: `{"sender":"alice","recipient":"bob","amount":-1}`, status: http.StatusBadRequest},
		{name: "unknown", body: `{"sender":"alice","recipient":"bob","amount":1,"tip":2}`, status: http.StatusBadRequest},
		{name: "broken", body: `{"sender":`, status: http.StatusBadRequest},
	}

	t.Log("Given the need to stage transactions over the public api.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen handling a %s payload.", testID, tst.name)
				{
					n := newNode(t, "node")

					w := call(n.public, http.MethodPost, "/v1/transactions", tst.body)
					if w.Code != tst.status {
						t.Logf("\t%s\tTest %d:\tgot: %d %s", failed, testID, w.Code, w.Body.String())
						t.Logf("\t%s\tTest %d:\texp: %d", failed, testID, tst.status)
						t.Fatalf("\t%s\tTest %d:\tShould get the expected status code.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get the expected status code.", success, testID)

					if tst.status != http.StatusCreated {
						var er v1.ErrorResponse
						if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
							t.Fatalf("\t%s\tTest %d:\tShould be able to decode the error: %v", failed, testID, err)
						}
						if tst.field != "" {
							if _, exists := er.Fields[tst.field]; !exists {
								t.Logf("\t%s\tTest %d:\tgot: %v", failed, testID, er.Fields)
								t.Fatalf("\t%s\tTest %d:\tShould name the %q field.", failed, testID, tst.field)
							}
						}
						if len(n.state.Pending()) != 0 {
							t.Fatalf("\t%s\tTest %d:\tShould not stage a rejected transaction.", failed, testID)
						}
						t.Logf("\t%s\tTest %d:\tShould reject the transaction.", success, testID)
						return
					}

					var resp struct {
						Index uint64 `json:"index"`
					}
					if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to decode the response: %v", failed, testID, err)
					}
					if resp.Index != 1 {
						t.Logf("\t%s\tTest %d:\tgot: %d", failed, testID, resp.Index)
						t.Logf("\t%s\tTest %d:\texp: %d", failed, testID, 1)
						t.Fatalf("\t%s\tTest %d:\tShould target the first block.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould target the first block.", success, testID)
				}
			}

			t.Run(tst.name, f)
		}
	}
}

func Test_MineFlow(t *testing.T) {
	t.Log("Given the need to mine blocks over the public api.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen mining a block with one staged transaction.", testID)
		{
			n := newNode(t, "node-a")

			if w := call(n.public, http.MethodGet, "/v1/blocks/last", ""); w.Code != http.StatusNoContent {
				t.Logf("\t%s\tTest %d:\tgot: %d", failed, testID, w.Code)
				t.Fatalf("\t%s\tTest %d:\tShould get no content for an empty chain.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould get no content for an empty chain.", success, testID)

			call(n.public, http.MethodPost, "/v1/transactions", `{"sender":"alice","recipient":"bob","amount":5}`)

			w := call(n.public, http.MethodPost, "/v1/blocks", "")
			if w.Code != http.StatusCreated {
				t.Logf("\t%s\tTest %d:\tgot: %d %s", failed, testID, w.Code, w.Body.String())
				t.Fatalf("\t%s\tTest %d:\tShould be able to mine a block.", failed, testID)
			}

			var block database.Block
			if err := json.Unmarshal(w.Body.Bytes(), &block); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to decode the block: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to mine a block.", success, testID)

			if block.Index != 1 || len(block.Transactions) != 2 {
				t.Logf("\t%s\tTest %d:\tgot: index[%d] trans[%d]", failed, testID, block.Index, len(block.Transactions))
				t.Fatalf("\t%s\tTest %d:\tShould hold the staged and reward transactions.", failed, testID)
			}
			reward := database.NewTx(state.RewardSender, "node-a", 1)
			if block.Transactions[1] != reward {
				t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, block.Transactions[1])
				t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, reward)
				t.Fatalf("\t%s\tTest %d:\tShould reward this node last.", failed, testID)
			}
			if !block.PreviousHash.Equal(database.ZeroHash()) {
				t.Fatalf("\t%s\tTest %d:\tShould link the first block to the zero hash.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould hold the staged and reward transactions.", success, testID)

			w = call(n.public, http.MethodGet, "/v1/blocks/valid", "")
			var valid struct {
				Valid  bool `json:"valid"`
				Length int  `json:"length"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &valid); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to decode validity: %v", failed, testID, err)
			}
			if !valid.Valid || valid.Length != 1 {
				t.Logf("\t%s\tTest %d:\tgot: %+v", failed, testID, valid)
				t.Fatalf("\t%s\tTest %d:\tShould report a valid chain of one block.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould report a valid chain of one block.", success, testID)

			w = call(n.public, http.MethodGet, "/v1/transactions", "")
			if strings.TrimSpace(w.Body.String()) != "[]" {
				t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, w.Body.String())
				t.Fatalf("\t%s\tTest %d:\tShould empty the pending pool.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould empty the pending pool.", success, testID)

			w = call(n.private, http.MethodGet, "/v1/node/chain", "")
			var chain []database.Block
			if err := json.Unmarshal(w.Body.Bytes(), &chain); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to decode the chain: %v", failed, testID, err)
			}
			if len(chain) != 1 || !chain[0].Hash().Equal(block.Hash()) {
				t.Fatalf("\t%s\tTest %d:\tShould serve the same chain to peers.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould serve the same chain to peers.", success, testID)
		}
	}
}

func Test_Nodes(t *testing.T) {
	t.Log("Given the need to register peers and reconcile with them.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen a registered peer holds a longer chain.", testID)
		{
			remote := newNode(t, "node-b")
			for i := 0; i < 3; i++ {
				if w := call(remote.public, http.MethodPost, "/v1/blocks", ""); w.Code != http.StatusCreated {
					t.Fatalf("\t%s\tTest %d:\tShould be able to mine on the remote: %s", failed, testID, w.Body.String())
				}
			}

			srv := httptest.NewServer(remote.private)
			defer srv.Close()

			local := newNode(t, "node-a")
			call(local.public, http.MethodPost, "/v1/blocks", "")

			w := call(local.public, http.MethodPost, "/v1/nodes/register", `{"nodes":["`+srv.URL+`","`+srv.URL+`"]}`)
			if w.Code != http.StatusCreated {
				t.Logf("\t%s\tTest %d:\tgot: %d %s", failed, testID, w.Code, w.Body.String())
				t.Fatalf("\t%s\tTest %d:\tShould be able to register the peer.", failed, testID)
			}

			var reg struct {
				TotalNodes []string `json:"total_nodes"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &reg); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to decode the response: %v", failed, testID, err)
			}
			if len(reg.TotalNodes) != 2 {
				t.Logf("\t%s\tTest %d:\tgot: %v", failed, testID, reg.TotalNodes)
				t.Fatalf("\t%s\tTest %d:\tShould keep every registered address.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould keep every registered address.", success, testID)

			w = call(local.public, http.MethodGet, "/v1/nodes/resolve", "")
			var res struct {
				Replaced bool             `json:"replaced"`
				Chain    []database.Block `json:"chain"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to decode the resolution: %v", failed, testID, err)
			}
			if !res.Replaced || len(res.Chain) != 3 {
				t.Logf("\t%s\tTest %d:\tgot: replaced[%v] length[%d]", failed, testID, res.Replaced, len(res.Chain))
				t.Fatalf("\t%s\tTest %d:\tShould adopt the longer chain.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould adopt the longer chain.", success, testID)

			w = call(local.public, http.MethodGet, "/v1/nodes/resolve", "")
			if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to decode the resolution: %v", failed, testID, err)
			}
			if res.Replaced {
				t.Fatalf("\t%s\tTest %d:\tShould keep a chain of equal length.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould keep a chain of equal length.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen the register payload is missing the nodes.", testID)
		{
			n := newNode(t, "node-a")

			w := call(n.public, http.MethodPost, "/v1/nodes/register", `{}`)
			if w.Code != http.StatusBadRequest {
				t.Logf("\t%s\tTest %d:\tgot: %d", failed, testID, w.Code)
				t.Fatalf("\t%s\tTest %d:\tShould reject the payload.", failed, testID)
			}
			if len(n.state.KnownPeers()) != 0 {
				t.Fatalf("\t%s\tTest %d:\tShould not register anything.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould reject the payload.", success, testID)
		}
	}
}
