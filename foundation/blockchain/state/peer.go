package state

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
)

// RegisterPeer adds the specified hosts to the list of known peers. Hosts
// are appended as given, no duplicate check or reachability probe happens.
func (s *State) RegisterPeer(hosts ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, host := range hosts {
		s.peers.Add(peer.New(host))
		s.evHandler("state: RegisterPeer: peer[%s] total[%d]", host, s.peers.Len())
	}
}

// KnownPeers returns a copy of the registered peers in registration order.
func (s *State) KnownPeers() []peer.Peer {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.peers.Copy("")
}
