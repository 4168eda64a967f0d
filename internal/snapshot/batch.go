package snapshot

import "fmt"

// SplitBatches splits pool ids into consecutive batches of at most batchSize.
func SplitBatches(ids []string, batchSize int) ([][]string, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be greater than zero")
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("at least one pool id is required")
	}

	batches := make([][]string, 0, (len(ids)+batchSize-1)/batchSize)
	for start := 0; start < len(ids); start += batchSize {
		end := start + batchSize
		if end > len(ids) {
			end = len(ids)
		}
		batches = append(batches, ids[start:end])
	}
	return batches, nil
}
