package pow

import (
	"context"
	"math"
	"time"

	"github.com/kaspanet/minichain/domain/chain/model"
	"github.com/pkg/errors"
)

var (
	// ErrBudgetExhausted is returned when no qualifying nonce was found
	// within the allowed number of attempts.
	ErrBudgetExhausted = errors.New("no qualifying nonce found within the mining budget")

	// ErrNonceSpaceExhausted is returned when every nonce was tried.
	ErrNonceSpaceExhausted = errors.New("nonce space exhausted")
)

// cancellationCheckInterval is how many attempts run between two checks of
// the context.
const cancellationCheckInterval = 1 << 12

// Result describes a successful search.
type Result struct {
	Hash     *model.DomainHash
	Nonce    uint64
	Attempts uint64
	Duration time.Duration
}

// Mine searches nonces starting at zero, incrementing by one, until the
// hash satisfies the header's difficulty. maxAttempts bounds the number of
// hashes computed; zero means unbounded. On success the header's Nonce is
// left at the winning value. On failure it is left at the last nonce tried.
func Mine(ctx context.Context, state *MinerState, maxAttempts uint64) (*Result, error) {
	start := time.Now()
	header := state.header
	header.Nonce = 0

	var attempts uint64
	for {
		if maxAttempts != 0 && attempts >= maxAttempts {
			return nil, errors.Wrapf(ErrBudgetExhausted, "difficulty %d, %d attempts", header.Difficulty, attempts)
		}
		if attempts%cancellationCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		hash := state.Hash()
		attempts++
		if CheckProofOfWork(hash, header.Difficulty) {
			return &Result{
				Hash:     hash,
				Nonce:    header.Nonce,
				Attempts: attempts,
				Duration: time.Since(start),
			}, nil
		}

		if header.Nonce == math.MaxUint64 {
			return nil, errors.Wrapf(ErrNonceSpaceExhausted, "difficulty %d", header.Difficulty)
		}
		header.Nonce++
	}
}
