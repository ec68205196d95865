package metadata

import (
	"encoding/json"

	"github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"
	"github.com/pkg/errors"

	"github.com/tapexyz/tape-publisher/pkg/model"
)

// ContentID returns the CIDv1 of the metadata content. The metadata id is
// left out so identical drafts produce identical content ids.
func ContentID(meta *model.PublicationMetadata) (cid.Cid, error) {
	stripped := *meta
	stripped.MetadataID = ""
	data, err := json.Marshal(&stripped)
	if err != nil {
		return cid.Undef, errors.Wrap(err, "error marshalling metadata")
	}
	hash, err := mh.Sum(data, mh.SHA2_256, -1)
	if err != nil {
		return cid.Undef, errors.Wrap(err, "error hashing metadata")
	}
	return cid.NewCidV1(cid.Raw, hash), nil
}
