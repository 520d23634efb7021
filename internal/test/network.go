package test

import (
	"sync"

	"github.com/taurusgroup/ec-threshold/pkg/party"
)

// Network is an in-memory transport between parties, delivering encoded messages.
type Network struct {
	parties          party.IDSlice
	listenChannels   map[party.ID]chan []byte
	closedListenChan chan []byte
	mtx              sync.Mutex
}

// NewNetwork returns a network connecting the given parties, including 0 for the combiner if present.
func NewNetwork(parties []party.ID) *Network {
	closed := make(chan []byte)
	close(closed)
	ids := make(party.IDSlice, len(parties))
	copy(ids, parties)
	n := &Network{
		parties:          ids,
		listenChannels:   make(map[party.ID]chan []byte, len(parties)),
		closedListenChan: closed,
	}
	for _, id := range ids {
		n.listenChannels[id] = make(chan []byte, len(ids)*len(ids))
	}
	return n
}

// Next returns the channel on which id receives its messages.
func (n *Network) Next(id party.ID) <-chan []byte {
	n.mtx.Lock()
	defer n.mtx.Unlock()
	c, ok := n.listenChannels[id]
	if !ok {
		return n.closedListenChan
	}
	return c
}

// Send delivers data to the party to, and returns false if it has left the network
// or its buffer is full. Send never blocks.
func (n *Network) Send(to party.ID, data []byte) bool {
	n.mtx.Lock()
	defer n.mtx.Unlock()
	c, ok := n.listenChannels[to]
	if !ok {
		return false
	}
	select {
	case c <- data:
		return true
	default:
		return false
	}
}

// Done removes id from the network and closes its channel.
func (n *Network) Done(id party.ID) {
	n.mtx.Lock()
	defer n.mtx.Unlock()
	if c, ok := n.listenChannels[id]; ok {
		close(c)
		delete(n.listenChannels, id)
	}
	n.parties = n.parties.Remove(id)
}
