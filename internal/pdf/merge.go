package pdf

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Merge concatenates the flattened template with each single-page
// annex, in list order, and serializes the result. A malformed input
// fails the whole merge.
func Merge(flattened []byte, annexes [][]byte) ([]byte, error) {
	readers := make([]io.ReadSeeker, 0, len(annexes)+1)
	readers = append(readers, bytes.NewReader(flattened))
	for _, annex := range annexes {
		readers = append(readers, bytes.NewReader(annex))
	}

	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, newConfiguration()); err != nil {
		return nil, fmt.Errorf("merge document: %w", err)
	}
	return out.Bytes(), nil
}
