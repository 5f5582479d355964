package identify

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/seedgo/internal/openlibrary"
	"github.com/vmunix/seedgo/internal/tmdb"
	"github.com/vmunix/seedgo/pkg/release"
)

// Service is one identification backend consulted for video releases.
type Service interface {
	Name() string
	Search(ctx context.Context, q Query) ([]Candidate, error)
}

// ExternalIDSource maps an accepted TMDB id to its sibling identifiers.
// *tmdb.Client satisfies this.
type ExternalIDSource interface {
	GetExternalIDs(ctx context.Context, media tmdb.MediaType, tmdbID int64) (*tmdb.ExternalIDs, error)
}

// BookSource is the bibliographic backend for ebook releases.
// *openlibrary.Client satisfies this.
type BookSource interface {
	Search(ctx context.Context, title, author string, limit int) ([]openlibrary.Work, error)
}

const defaultThreshold = 0.85

// Resolver fans a release out to identification services and reconciles
// their candidates into an IdentitySet.
type Resolver struct {
	services  []Service
	external  ExternalIDSource
	books     BookSource
	threshold float64
	logger    *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithThreshold sets the acceptance threshold for candidate confidence.
func WithThreshold(t float64) ResolverOption {
	return func(r *Resolver) {
		r.threshold = t
	}
}

// WithExternalIDs enables IMDb/TVDB enrichment from an accepted TMDB id.
func WithExternalIDs(src ExternalIDSource) ResolverOption {
	return func(r *Resolver) {
		r.external = src
	}
}

// WithBooks sets the bibliographic backend for ebook releases.
func WithBooks(src BookSource) ResolverOption {
	return func(r *Resolver) {
		r.books = src
	}
}

// WithLogger sets the resolver's logger.
func WithLogger(l *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = l.With("component", "identify")
	}
}

// NewResolver creates a Resolver over the given services.
func NewResolver(services []Service, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		services:  services,
		threshold: defaultThreshold,
		logger:    slog.Default().With("component", "identify"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve builds the identity set for a classified release. Unresolved
// identifier kinds are not errors; the returned set simply omits them.
// Resolution fails only when every consulted service is unreachable.
func (r *Resolver) Resolve(ctx context.Context, rel *release.Release) (*IdentitySet, error) {
	switch {
	case rel.Type.IsVideo():
		return r.resolveVideo(ctx, rel)
	case rel.Type == release.TypeEBook:
		return r.resolveBook(ctx, rel)
	default:
		return NewIdentitySet(), nil
	}
}

func (r *Resolver) resolveVideo(ctx context.Context, rel *release.Release) (*IdentitySet, error) {
	set := NewIdentitySet()
	if len(r.services) == 0 {
		r.logger.Warn("no identification services configured", "release", rel.Name)
		return set, nil
	}

	info := release.ParseName(rel.Name)
	q := Query{Title: info.Title, Year: info.Year, Season: info.Season, Type: rel.Type}

	// Fan out; a failing service contributes no candidates but does not
	// cancel its siblings.
	results := make([][]Candidate, len(r.services))
	errs := make([]error, len(r.services))
	var g errgroup.Group
	for i, svc := range r.services {
		g.Go(func() error {
			cands, err := svc.Search(ctx, q)
			if err != nil {
				r.logger.Warn("identification service failed",
					"service", svc.Name(), "query", q.String(), "error", err)
				errs[i] = err
				return nil
			}
			results[i] = cands
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}
	if failed == len(r.services) {
		return nil, fmt.Errorf("%w: %d service(s) failed for %s", ErrAllServicesUnreachable, failed, q)
	}

	r.reconcile(set, q, results)
	r.enrichExternalIDs(ctx, set, rel.Type)
	return set, nil
}

type scoredCandidate struct {
	Candidate
	confidence float64
}

// reconcile applies the acceptance rule per identifier kind: a single
// above-threshold value is accepted outright; several distinct values
// tie-break by edit distance to the parsed title and are marked ambiguous.
func (r *Resolver) reconcile(set *IdentitySet, q Query, results [][]Candidate) {
	byKind := make(map[Kind]map[string]scoredCandidate)
	for _, cands := range results {
		for _, c := range cands {
			conf := release.Similarity(q.Title, c.Title)
			if conf < r.threshold {
				continue
			}
			values := byKind[c.Kind]
			if values == nil {
				values = make(map[string]scoredCandidate)
				byKind[c.Kind] = values
			}
			if prev, ok := values[c.Value]; !ok || conf > prev.confidence {
				values[c.Value] = scoredCandidate{Candidate: c, confidence: conf}
			}
		}
	}

	for kind, values := range byKind {
		best := pickCandidate(q.Title, values)
		set.Set(kind, Identifier{
			Value:      best.Value,
			Confidence: best.confidence,
			Query:      q.String(),
			Ambiguous:  len(values) > 1,
		})
		if len(values) > 1 {
			r.logger.Warn("ambiguous identifier accepted by edit distance",
				"kind", string(kind), "value", best.Value, "candidates", len(values))
		}
	}
}

// pickCandidate chooses among distinct above-threshold values: smallest
// edit distance to the parsed title, then highest confidence, then value
// order for determinism.
func pickCandidate(parsedTitle string, values map[string]scoredCandidate) scoredCandidate {
	var best scoredCandidate
	bestDist := -1
	for _, sc := range values {
		dist := release.EditDistance(parsedTitle, sc.Title)
		switch {
		case bestDist < 0,
			dist < bestDist,
			dist == bestDist && sc.confidence > best.confidence,
			dist == bestDist && sc.confidence == best.confidence && sc.Value < best.Value:
			best = sc
			bestDist = dist
		}
	}
	return best
}

// enrichExternalIDs chains an accepted TMDB id through the external-id
// endpoint to fill IMDb/TVDB when the services themselves did not.
func (r *Resolver) enrichExternalIDs(ctx context.Context, set *IdentitySet, ct release.ContentType) {
	if r.external == nil {
		return
	}
	tmdbID, ok := set.Resolved(KindTMDB)
	if !ok {
		return
	}
	_, haveIMDB := set.Resolved(KindIMDB)
	_, haveTVDB := set.Resolved(KindTVDB)
	if haveIMDB && haveTVDB {
		return
	}

	numeric, err := strconv.ParseInt(tmdbID.Value, 10, 64)
	if err != nil {
		return
	}
	media := tmdb.MediaMovie
	if ct != release.TypeMovie {
		media = tmdb.MediaTV
	}

	ids, err := r.external.GetExternalIDs(ctx, media, numeric)
	if err != nil {
		// Enrichment is best-effort; the tmdb id alone is still useful.
		r.logger.Warn("external id lookup failed", "tmdb_id", tmdbID.Value, "error", err)
		return
	}

	derived := Identifier{
		Confidence: tmdbID.Confidence,
		Query:      fmt.Sprintf("tmdb:%s external_ids", tmdbID.Value),
		Ambiguous:  tmdbID.Ambiguous,
	}
	if !haveIMDB && ids.IMDbID != "" {
		derived.Value = ids.IMDbID
		set.Set(KindIMDB, derived)
	}
	if !haveTVDB && ids.TVDBID != 0 {
		derived.Value = strconv.FormatInt(ids.TVDBID, 10)
		set.Set(KindTVDB, derived)
	}
}

func (r *Resolver) resolveBook(ctx context.Context, rel *release.Release) (*IdentitySet, error) {
	set := NewIdentitySet()
	if r.books == nil {
		r.logger.Warn("no bibliographic service configured", "release", rel.Name)
		return set, nil
	}

	author, title := splitBookName(rel.Name)
	works, err := r.books.Search(ctx, title, author, 10)
	if err != nil {
		return nil, fmt.Errorf("%w: bibliographic lookup for %q: %v", ErrAllServicesUnreachable, title, err)
	}

	values := make(map[string]scoredCandidate)
	for _, w := range works {
		conf := release.Similarity(title, w.Title)
		if conf < r.threshold {
			continue
		}
		if prev, ok := values[w.Key]; !ok || conf > prev.confidence {
			values[w.Key] = scoredCandidate{
				Candidate:  Candidate{Kind: KindOpenLibrary, Value: w.Key, Title: w.Title, Year: w.FirstPublishYear},
				confidence: conf,
			}
		}
	}
	if len(values) == 0 {
		return set, nil
	}

	best := pickCandidate(title, values)
	set.Set(KindOpenLibrary, Identifier{
		Value:      best.Value,
		Confidence: best.confidence,
		Query:      fmt.Sprintf("ebook:%q author=%q", title, author),
		Ambiguous:  len(values) > 1,
	})
	return set, nil
}

// splitBookName parses the "Author - Title" release convention; names
// without a separator are treated as bare titles.
func splitBookName(name string) (author, title string) {
	if a, t, ok := strings.Cut(name, " - "); ok {
		return strings.TrimSpace(a), strings.TrimSpace(t)
	}
	return "", strings.TrimSpace(name)
}
