package content

import (
	"encoding/json"
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// Fingerprint returns a content address for the model: a CIDv1 (raw codec)
// over the sha2-256 multihash of its canonical JSON encoding. Map keys are
// sorted by the encoder, so equal models always share a fingerprint.
func Fingerprint(m Model) (cid.Cid, error) {
	payload, err := json.Marshal(normalise(m))
	if err != nil {
		return cid.Undef, fmt.Errorf("content: encode model: %w", err)
	}
	sum, err := multihash.Sum(payload, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, fmt.Errorf("content: hash model: %w", err)
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}
