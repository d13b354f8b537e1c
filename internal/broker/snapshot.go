package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	apperrors "options-strategist/internal/errors"
	"options-strategist/internal/models"
)

// SnapshotProvider serves option chains from a JSON snapshot file,
// letting every command run offline against captured market data.
type SnapshotProvider struct {
	path string
}

// NewSnapshotProvider creates a provider backed by the given file.
func NewSnapshotProvider(path string) *SnapshotProvider {
	return &SnapshotProvider{path: path}
}

// GetOptionChain loads the snapshot. The symbol must match the captured
// chain when both are set; expiry is ignored since a snapshot holds
// exactly one.
func (p *SnapshotProvider) GetOptionChain(ctx context.Context, symbol string, expiry time.Time) (*models.OptionChain, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, apperrors.NewChainError(symbol, fmt.Sprintf("failed to read snapshot %s", p.path), err)
	}

	var chain models.OptionChain
	if err := json.Unmarshal(data, &chain); err != nil {
		return nil, apperrors.NewChainError(symbol, "failed to decode snapshot", err)
	}

	if symbol != "" && chain.Symbol != "" && chain.Symbol != symbol {
		return nil, apperrors.NewChainError(symbol,
			fmt.Sprintf("snapshot holds %s, not %s", chain.Symbol, symbol), apperrors.ErrSymbolNotFound)
	}
	if len(chain.Strikes) == 0 {
		return nil, apperrors.NewChainError(symbol, "snapshot has no strikes", apperrors.ErrEmptyChain)
	}

	sort.Slice(chain.Strikes, func(i, j int) bool { return chain.Strikes[i].Strike < chain.Strikes[j].Strike })

	if chain.LotSize == 0 {
		chain.LotSize = LotSizeFor(chain.Symbol)
	}
	if chain.DaysToExpiry == 0 && !chain.Expiry.IsZero() {
		chain.DaysToExpiry = daysToExpiry(chain.Expiry)
	}

	return &chain, nil
}

// WriteSnapshot saves a chain as a JSON snapshot for later offline use.
func WriteSnapshot(path string, chain *models.OptionChain) error {
	data, err := json.MarshalIndent(chain, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

var _ ChainProvider = (*SnapshotProvider)(nil)
