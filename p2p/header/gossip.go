package header

import (
	"context"

	pubsub "github.com/libp2p/go-libp2p-pubsub"
)

// GossipTopic is the pubsub topic NewBlock announcements are published on —
// peers fetch the full header via the stream protocol when they only
// receive the light (ID-only) variant.
const GossipTopic = "/starknet/newblock/1"

// Gossip wraps a pubsub topic handle, publishing and receiving NewBlock
// announcements.
type Gossip struct {
	topic *pubsub.Topic
	sub   *pubsub.Subscription
}

// JoinGossip subscribes ps to GossipTopic.
func JoinGossip(ps *pubsub.PubSub) (*Gossip, error) {
	topic, err := ps.Join(GossipTopic)
	if err != nil {
		return nil, err
	}
	sub, err := topic.Subscribe()
	if err != nil {
		topic.Close()
		return nil, err
	}
	return &Gossip{topic: topic, sub: sub}, nil
}

// Publish announces n to the topic.
func (g *Gossip) Publish(ctx context.Context, n *NewBlock) error {
	encoded, err := EncodeNewBlock(n)
	if err != nil {
		return err
	}
	return g.topic.Publish(ctx, encoded)
}

// Next blocks until the next NewBlock announcement arrives, skipping any
// announcement this peer itself published.
func (g *Gossip) Next(ctx context.Context, self string) (*NewBlock, error) {
	for {
		msg, err := g.sub.Next(ctx)
		if err != nil {
			return nil, err
		}
		if msg.ReceivedFrom.String() == self {
			continue
		}
		n, err := DecodeNewBlock(msg.Data)
		if err != nil {
			continue
		}
		return n, nil
	}
}

// Close leaves the topic.
func (g *Gossip) Close() error {
	g.sub.Cancel()
	return g.topic.Close()
}
