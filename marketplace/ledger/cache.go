package ledger

import (
	"context"
	"time"

	"github.com/curio/marketplace/lib/errors"
	cache "github.com/patrickmn/go-cache"
)

// metadataCache holds recently read metadata records for public read
// endpoints. Mutations never consult it; Save invalidates.
var metadataCache = cache.New(1*time.Minute, 5*time.Minute)

// LoadCachedMetadataByNftMint loads a metadata record going through the read
// cache. Intended for resource rendering only.
func LoadCachedMetadataByNftMint(
	ctx context.Context,
	nftMint string,
) (*Metadata, error) {
	if cached, found := metadataCache.Get(nftMint); found {
		metadata := cached.(Metadata)
		return &metadata, nil
	}

	metadata, err := LoadMetadataByNftMint(ctx, nftMint)
	if err != nil {
		return nil, errors.Trace(err)
	} else if metadata == nil {
		return nil, nil
	}

	metadataCache.Set(nftMint, *metadata, cache.DefaultExpiration)

	return metadata, nil
}

func invalidateMetadata(
	nftMint string,
) {
	metadataCache.Delete(nftMint)
}
