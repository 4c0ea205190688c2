package bidder

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// ContractRecord is one historical contract executed by the bidder.
type ContractRecord struct {
	Value       float64  `json:"value"`
	ExecutedAt  string   `json:"executed_at,omitempty"`
	Codes       []string `json:"codes"`
	Description string   `json:"description,omitempty"`
}

// LoadContracts reads historical contracts from a JSON file. Entries that do
// not decode or carry no classification codes are skipped individually so a
// single malformed record never discards the whole history.
func LoadContracts(path string, logger *zap.Logger) ([]ContractRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading contracts file: %w", err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing contracts file %q: %w", path, err)
	}

	contracts := make([]ContractRecord, 0, len(raw))
	for idx, entry := range raw {
		var contract ContractRecord
		if err := json.Unmarshal(entry, &contract); err != nil {
			if logger != nil {
				logger.Debug("skipping malformed contract entry",
					zap.Int("index", idx),
					zap.Error(err),
				)
			}
			continue
		}
		if len(contract.Codes) == 0 {
			if logger != nil {
				logger.Debug("skipping contract entry without codes", zap.Int("index", idx))
			}
			continue
		}
		contracts = append(contracts, contract)
	}

	return contracts, nil
}
