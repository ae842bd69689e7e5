package codec

import "github.com/numinit/open-waveform-format/owf"

// Node is the sum type passed to a Visitor: exactly one of Channel,
// Namespace, Signal, Event, or Alarm is non-nil, matching the entity the
// decoder just finished reading the fixed/string portion of. This
// replaces the reference's shared "reader context" struct plus an
// out-of-band type tag, which couples every visitor to knowing which
// struct slot is valid for a given tag; here the compiler enforces it.
type Node struct {
	Channel   *owf.Channel
	Namespace *owf.Namespace
	Signal    *owf.Signal
	Event     *owf.Event
	Alarm     *owf.Alarm
}

// Visitor is invoked exactly once per node, top-down, pre-order, before
// the node's children (if any) are processed. Returning false instructs
// the decoder to skip the remainder of the current frame — every
// descendant still within it — but continue at the next sibling.
// Returning true recurses normally. This applies to Channel and Namespace
// nodes only: for Signal, Event and Alarm nodes the return value is
// ignored and decoding continues with the next sibling in the group.
type Visitor func(Node) bool

func channelNode(c *owf.Channel) Node     { return Node{Channel: c} }
func namespaceNode(n *owf.Namespace) Node { return Node{Namespace: n} }
func signalNode(s *owf.Signal) Node       { return Node{Signal: s} }
func eventNode(e *owf.Event) Node         { return Node{Event: e} }
func alarmNode(a *owf.Alarm) Node         { return Node{Alarm: a} }
