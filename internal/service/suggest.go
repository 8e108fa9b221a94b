package service

import (
	"context"

	"github.com/rs/zerolog"

	"hitechhomes/internal/model"
)

// Suggester produces alternative listings when the primary search found
// nothing. It re-derives its own intent from the message and walks a fixed
// chain of relaxation strategies, returning the first non-empty result.
type Suggester struct {
	store      PropertyStore
	recent     *RecentLister
	log        zerolog.Logger
	maxResults int
}

// NewSuggester creates the alternative-suggestion stage
func NewSuggester(store PropertyStore, recent *RecentLister, log zerolog.Logger, maxResults int) *Suggester {
	return &Suggester{store: store, recent: recent, log: log, maxResults: maxResults}
}

type strategy struct {
	name          string
	preconditions func() bool
	run           func(ctx context.Context) ([]model.Property, error)
}

// Suggest walks the relaxation chain in order. Each strategy is capped at
// maxResults and succeeds with one or more listings. The terminal strategy
// has no preconditions, so once reached the chain only comes back empty on a
// store failure, which is absorbed here.
func (s *Suggester) Suggest(ctx context.Context, message string) []model.Property {
	intent := ExtractIntent(message)

	strategies := []strategy{
		{
			// same BHK, budget stretched by 20%
			name:          "relaxed_price",
			preconditions: func() bool { return intent.BHK != nil && intent.MaxPrice != nil },
			run: func(ctx context.Context) ([]model.Property, error) {
				relaxed := *intent.MaxPrice * 1.2
				return s.store.FindProperties(ctx, model.PropertyFilter{
					BHK:      intent.BHK,
					PriceMax: &relaxed,
					City:     intent.City,
					Sort:     model.SortPriceAsc,
					Limit:    s.maxResults,
				})
			},
		},
		{
			// one bedroom up or down, budget unrelaxed
			name:          "adjacent_bhk",
			preconditions: func() bool { return intent.BHK != nil && intent.MaxPrice != nil },
			run: func(ctx context.Context) ([]model.Property, error) {
				return s.store.FindProperties(ctx, model.PropertyFilter{
					BHKIn:    []int{*intent.BHK - 1, *intent.BHK + 1},
					PriceMax: intent.MaxPrice,
					City:     intent.City,
					Sort:     model.SortBHKPriceAsc,
					Limit:    s.maxResults,
				})
			},
		},
		{
			// same BHK in the same city, any price
			name:          "same_city_any_price",
			preconditions: func() bool { return intent.BHK != nil && intent.City != nil },
			run: func(ctx context.Context) ([]model.Property, error) {
				return s.store.FindProperties(ctx, model.PropertyFilter{
					BHK:   intent.BHK,
					City:  intent.City,
					Sort:  model.SortPriceAsc,
					Limit: s.maxResults,
				})
			},
		},
		{
			// budget stretched by 30%, any BHK and city
			name:          "any_bhk_stretched_price",
			preconditions: func() bool { return intent.MaxPrice != nil },
			run: func(ctx context.Context) ([]model.Property, error) {
				stretched := *intent.MaxPrice * 1.3
				return s.store.FindProperties(ctx, model.PropertyFilter{
					PriceMax: &stretched,
					Sort:     model.SortPriceAsc,
					Limit:    s.maxResults,
				})
			},
		},
		{
			// terminal: newest listings, unconditional
			name:          "recent",
			preconditions: func() bool { return true },
			run: func(ctx context.Context) ([]model.Property, error) {
				return s.recent.Recent(ctx, s.maxResults)
			},
		},
	}

	for _, st := range strategies {
		if !st.preconditions() {
			continue
		}
		properties, err := st.run(ctx)
		if err != nil {
			s.log.Warn().Err(err).Str("strategy", st.name).Msg("alternative suggestion lookup failed")
			return nil
		}
		if len(properties) > 0 {
			return properties
		}
	}

	return nil
}
