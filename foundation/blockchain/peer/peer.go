// Package peer maintains the peer related information such as the list
// of known peers, their status and the client used to talk to them.
package peer

import (
	"strings"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// Peer represents information about a Node in the network.
type Peer struct {
	Host string `json:"host"`
}

// New contructs a new info value.
func New(host string) Peer {
	return Peer{
		Host: host,
	}
}

// Match validates if the specified host matches this node.
func (p Peer) Match(host string) bool {
	return p.Host == host
}

// URL returns the url for the specified path on this peer. A host that
// already carries a scheme is used as is.
func (p Peer) URL(path string) string {
	host := strings.TrimSuffix(p.Host, "/")
	if !strings.Contains(host, "://") {
		host = "http://" + host
	}

	return host + path
}

// String implements the fmt.Stringer interface.
func (p Peer) String() string {
	return p.Host
}

// =============================================================================

// Status represents information about the status
// of any given peer.
type Status struct {
	LatestBlockHash  database.Hash `json:"latest_block_hash"`
	LatestBlockIndex uint64        `json:"latest_block_index"`
	Pending          int           `json:"pending"`
	KnownPeers       []Peer        `json:"known_peers"`
}

// =============================================================================

// List maintains the ordered list of registered peers. The list is append
// only and does not remove duplicates. A list is not safe for concurrent
// use, the owner is expected to guard it.
type List struct {
	peers []Peer
}

// Add appends the peer to the list.
func (l *List) Add(peer Peer) {
	l.peers = append(l.peers, peer)
}

// Len returns the number of registered peers.
func (l *List) Len() int {
	return len(l.peers)
}

// Copy returns a copy of the registered peers, skipping any entry that
// matches the specified host.
func (l *List) Copy(host string) []Peer {
	peers := make([]Peer, 0, len(l.peers))
	for _, peer := range l.peers {
		if host != "" && peer.Match(host) {
			continue
		}
		peers = append(peers, peer)
	}

	return peers
}
