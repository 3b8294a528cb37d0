package header

import (
	"context"
	"errors"

	"github.com/archivenode/starknet-gateway/blockchain"
)

// Walk answers a BlockHeadersRequest against reader, invoking emit once per
// header in iteration order and exactly once more with Fin() to terminate
// the stream, per the protocol's "Header+ Fin" response grammar. The walk
// stops early — short of Limit — when the store runs out of data; the
// responder still always emits Fin, even on an empty result set.
//
// The bounded-walk shape (accumulate while walking, stop at a count cap or
// a missing entry, never error out of a short read) mirrors the trie
// range-scan helper this package's iteration logic was adapted from.
func Walk(ctx context.Context, reader blockchain.Reader, req BlockHeadersRequest, emit func(BlockHeadersResponse) error) error {
	start, err := startNumber(ctx, reader, req.Iteration.Start)
	if err != nil {
		return emit(Fin())
	}

	step := req.Iteration.Step
	if step == 0 {
		step = 1
	}

	number := start
	for count := uint64(0); count < req.Iteration.Limit; count++ {
		h, err := reader.HeaderByNumber(ctx, number)
		if err != nil {
			if errors.Is(err, blockchain.ErrNotFound) {
				break
			}
			return err
		}

		if err := emit(HeaderResponse(h)); err != nil {
			return err
		}

		if req.Iteration.Direction == Backward {
			if number < step {
				break
			}
			number -= step
		} else {
			number += step
		}
	}

	return emit(Fin())
}

func startNumber(ctx context.Context, reader blockchain.Reader, s Start) (uint64, error) {
	if s.Hash == nil {
		return s.Number, nil
	}
	block, err := reader.BlockByHash(ctx, s.Hash)
	if err != nil {
		return 0, err
	}
	return block.Number, nil
}
