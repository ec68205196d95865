package submission

import (
	"context"

	log "github.com/golang/glog"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/tapexyz/tape-publisher/pkg/model"
)

const (
	defaultCacheSize = 512
)

// NewPublicationCache returns an LRU cache of size publications filled from
// fetcher. A size <= 0 uses the default size.
func NewPublicationCache(fetcher PublicationFetcher, size int) (*PublicationCache, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, errors.Wrap(err, "error creating publication cache")
	}
	return &PublicationCache{fetcher: fetcher, cache: cache}, nil
}

// PublicationCache keeps recently created publications so they can be shown
// before the API indexes them everywhere
type PublicationCache struct {
	fetcher PublicationFetcher
	cache   *lru.Cache
}

// FetchAndCache fetches the publication and writes it to the cache. A
// publication that is not found yet is not an error.
func (p *PublicationCache) FetchAndCache(ctx context.Context, publicationID string) error {
	pub, err := p.fetcher.Publication(ctx, publicationID)
	if err == model.ErrNoPersisterResults {
		log.Infof("Publication %v not found yet, not caching", publicationID)
		return nil
	}
	if err != nil {
		return err
	}
	p.cache.Add(publicationID, pub)
	return nil
}

// Publication returns the cached publication, fetching and caching it on a
// miss
func (p *PublicationCache) Publication(ctx context.Context, publicationID string) (
	*model.Publication, error) {
	if pub, ok := p.Get(publicationID); ok {
		return pub, nil
	}
	pub, err := p.fetcher.Publication(ctx, publicationID)
	if err != nil {
		return nil, err
	}
	p.cache.Add(publicationID, pub)
	return pub, nil
}

// Get returns a cached publication
func (p *PublicationCache) Get(publicationID string) (*model.Publication, bool) {
	val, ok := p.cache.Get(publicationID)
	if !ok {
		return nil, false
	}
	return val.(*model.Publication), true
}

// Len returns the number of cached publications
func (p *PublicationCache) Len() int {
	return p.cache.Len()
}
