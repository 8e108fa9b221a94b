package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"hitechhomes/internal/model"
	"hitechhomes/internal/repository"
)

// PropertyStore is the read-only query capability the chatbot needs from the
// persistence layer.
type PropertyStore interface {
	FindProperties(ctx context.Context, f model.PropertyFilter) ([]model.Property, error)
	RecentProperties(ctx context.Context, limit int) ([]model.Property, error)
}

var _ PropertyStore = (*repository.PostgresRepository)(nil)

// genericKeywords trigger a "browse recent listings" response when the
// message carries no extractable filters.
var genericKeywords = []string{"property", "house", "flat", "apartment", "show", "available"}

// RecentLister serves the unconditional recent-listings queries through a
// read-through cache, shared by the primary search and the suggester.
type RecentLister struct {
	store  PropertyStore
	cache  repository.Cache
	ttlSec int
}

// NewRecentLister creates a cached recent-listings reader
func NewRecentLister(store PropertyStore, cache repository.Cache, ttlSec int) *RecentLister {
	if cache == nil {
		cache = repository.NoopCache{}
	}
	return &RecentLister{store: store, cache: cache, ttlSec: ttlSec}
}

// Recent returns the newest listings, capped at limit
func (r *RecentLister) Recent(ctx context.Context, limit int) ([]model.Property, error) {
	key := fmt.Sprintf("recent:%d", limit)
	var cached []model.Property
	if ok, _ := r.cache.Get(ctx, key, &cached); ok {
		return cached, nil
	}

	properties, err := r.store.RecentProperties(ctx, limit)
	if err != nil {
		return nil, err
	}
	_ = r.cache.Set(ctx, key, properties, r.ttlSec)
	return properties, nil
}

// PropertySearch answers a chat message with exact matches from the store
type PropertySearch struct {
	store      PropertyStore
	recent     *RecentLister
	log        zerolog.Logger
	maxResults int
}

// NewPropertySearch creates the primary search stage
func NewPropertySearch(store PropertyStore, recent *RecentLister, log zerolog.Logger, maxResults int) *PropertySearch {
	return &PropertySearch{store: store, recent: recent, log: log, maxResults: maxResults}
}

// Search extracts an intent from the message and queries the store, newest
// first. An empty intent with no generic keyword means the message is not a
// property query at all, so no implicit browse happens. Store failures degrade
// to zero results rather than failing the request.
func (s *PropertySearch) Search(ctx context.Context, message string) []model.Property {
	intent := ExtractIntent(message)

	if intent.IsEmpty() {
		if !containsGenericKeyword(message) {
			return nil
		}
		properties, err := s.recent.Recent(ctx, s.maxResults)
		if err != nil {
			s.log.Warn().Err(err).Msg("recent listings lookup failed, treating as no results")
			return nil
		}
		return properties
	}

	filter := model.PropertyFilter{
		BHK:      intent.BHK,
		PriceMin: intent.MinPrice,
		PriceMax: intent.MaxPrice,
		City:     intent.City,
		Sort:     model.SortNewest,
		Limit:    s.maxResults,
	}

	properties, err := s.store.FindProperties(ctx, filter)
	if err != nil {
		s.log.Warn().Err(err).Str("message", message).Msg("property search failed, treating as no results")
		return nil
	}
	return properties
}

func containsGenericKeyword(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range genericKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
