// Package upload drives the staged pipeline from classification through
// per-target submission, isolating failures per tracker target.
package upload

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vmunix/seedgo/internal/config"
	"github.com/vmunix/seedgo/internal/identify"
	"github.com/vmunix/seedgo/internal/tracker"
	"github.com/vmunix/seedgo/pkg/release"
	"github.com/vmunix/seedgo/pkg/torrent"
)

// Job is one release's submission lifecycle. Owned exclusively by the
// orchestrator run driving it; reported once all targets are terminal.
type Job struct {
	ID         uuid.UUID
	Release    *release.Release
	Identity   *identify.IdentitySet
	State      State
	Outcomes   map[string]TargetOutcome
	Overall    Overall
	StartedAt  time.Time
	FinishedAt time.Time

	mu sync.Mutex
}

func (j *Job) setOutcome(target string, o TargetOutcome) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Outcomes[target] = o
}

// Resolver produces the identity set for a classified release.
type Resolver interface {
	Resolve(ctx context.Context, rel *release.Release) (*identify.IdentitySet, error)
}

// Target is the per-tracker contract consumed by the orchestrator.
// *tracker.Target satisfies this.
type Target interface {
	Name() string
	AnnounceURL() string
	SourceTag() string
	PrivateOnly() bool
	CategoryFor(ct release.ContentType) (config.CategoryMapping, bool)
	Preflight(ctx context.Context, q tracker.PreflightQuery) ([]tracker.Duplicate, error)
	Submit(ctx context.Context, p *tracker.Payload) error
}

// Recorder persists finished jobs. Persistence failures never affect the
// job outcome.
type Recorder interface {
	RecordJob(ctx context.Context, job *Job) error
}

// Orchestrator sequences one release through the upload pipeline.
type Orchestrator struct {
	resolver      Resolver
	builder       ArtifactBuilder
	prober        release.TrackProber
	recorder      Recorder
	preflightOnly bool
	logger        *slog.Logger
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithProber sets the media-track prober used during classification.
func WithProber(p release.TrackProber) OrchestratorOption {
	return func(o *Orchestrator) {
		o.prober = p
	}
}

// WithRecorder persists finished jobs to a history store.
func WithRecorder(r Recorder) OrchestratorOption {
	return func(o *Orchestrator) {
		o.recorder = r
	}
}

// WithPreflightOnly stops the pipeline after Preflight and reports
// without building or submitting.
func WithPreflightOnly(on bool) OrchestratorOption {
	return func(o *Orchestrator) {
		o.preflightOnly = on
	}
}

// WithLogger sets the orchestrator's logger.
func WithLogger(l *slog.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		o.logger = l.With("component", "upload")
	}
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(resolver Resolver, builder ArtifactBuilder, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		resolver: resolver,
		builder:  builder,
		logger:   slog.Default().With("component", "upload"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run drives one release through the pipeline. A returned error is fatal
// (classification or resolution); per-target failures are recorded in
// the job's outcomes instead.
func (o *Orchestrator) Run(ctx context.Context, rel *release.Release, targets []Target, override release.ContentType) (*Job, error) {
	job := &Job{
		ID:        uuid.New(),
		Release:   rel,
		State:     StateClassifying,
		Outcomes:  make(map[string]TargetOutcome, len(targets)),
		StartedAt: time.Now(),
	}
	for _, t := range targets {
		job.Outcomes[t.Name()] = TargetOutcome{Kind: OutcomePending}
	}

	ct, err := release.Classify(ctx, rel, o.prober, override)
	if err != nil {
		job.State = StateFailed
		job.Overall = OverallFailed
		job.FinishedAt = time.Now()
		return job, fmt.Errorf("classifying %s: %w", rel.Name, err)
	}
	rel.Type = ct
	o.logger.Info("classified", "release", rel.Name, "type", ct.String())

	job.Identity = identify.NewIdentitySet()
	if ct.IsVideo() || ct == release.TypeEBook {
		job.State = StateResolving
		ids, err := o.resolver.Resolve(ctx, rel)
		if err != nil {
			job.State = StateFailed
			job.Overall = OverallFailed
			job.FinishedAt = time.Now()
			return job, fmt.Errorf("resolving %s: %w", rel.Name, err)
		}
		job.Identity = ids
	}

	job.State = StatePreflight
	pending := o.preflight(ctx, job, targets)

	if o.preflightOnly {
		o.finish(ctx, job, true)
		return job, nil
	}

	if len(pending) == 0 {
		// Every target is already terminal; no artifact work.
		o.finish(ctx, job, false)
		return job, nil
	}

	job.State = StateBuilding
	artifacts, err := o.builder.Build(ctx, rel, job.Identity)
	if err != nil {
		for _, t := range pending {
			job.setOutcome(t.Name(), TargetOutcome{Kind: OutcomeFailed, Reason: fmt.Sprintf("artifact build: %v", err)})
		}
		o.finish(ctx, job, false)
		return job, nil
	}

	job.State = StateSubmitting
	o.submit(ctx, job, pending, artifacts)

	o.finish(ctx, job, false)
	return job, nil
}

// preflight runs the duplicate check per target and returns the targets
// still pending submission.
func (o *Orchestrator) preflight(ctx context.Context, job *Job, targets []Target) []Target {
	info := release.ParseName(job.Release.Name)
	q := tracker.PreflightQuery{
		Name:       job.Release.Name,
		Season:     info.Season,
		Episode:    info.Episode,
		HasEpisode: info.HasEpisode,
	}
	if id, ok := job.Identity.Resolved(identify.KindTMDB); ok {
		q.TMDBID = id.Value
	}

	var pending []Target
	for _, t := range targets {
		if _, ok := t.CategoryFor(job.Release.Type); !ok {
			job.setOutcome(t.Name(), TargetOutcome{
				Kind:   OutcomeSkipped,
				Reason: fmt.Sprintf("no category mapping for %s", job.Release.Type),
			})
			continue
		}

		dupes, err := t.Preflight(ctx, q)
		if err != nil {
			job.setOutcome(t.Name(), TargetOutcome{Kind: OutcomeFailed, Reason: fmt.Sprintf("preflight: %v", err)})
			continue
		}
		if len(dupes) > 0 {
			o.logger.Info("duplicate found at preflight",
				"release", job.Release.Name, "tracker", t.Name(), "existing", dupes[0].Name)
			job.setOutcome(t.Name(), TargetOutcome{Kind: OutcomeSkipped, Reason: "duplicate"})
			continue
		}
		pending = append(pending, t)
	}
	return pending
}

// submit fans the shared artifacts out to the pending targets. Targets
// fail independently; no submission blocks or rolls back another.
func (o *Orchestrator) submit(ctx context.Context, job *Job, targets []Target, artifacts *Artifacts) {
	var g errgroup.Group
	for _, t := range targets {
		g.Go(func() error {
			payload, err := o.payloadFor(job, t, artifacts)
			if err != nil {
				job.setOutcome(t.Name(), TargetOutcome{Kind: OutcomeFailed, Reason: err.Error()})
				return nil
			}
			if err := t.Submit(ctx, payload); err != nil {
				o.logger.Error("submission failed", "tracker", t.Name(), "error", err)
				job.setOutcome(t.Name(), TargetOutcome{Kind: OutcomeFailed, Reason: err.Error()})
				return nil
			}
			job.setOutcome(t.Name(), TargetOutcome{Kind: OutcomeSucceeded})
			return nil
		})
	}
	_ = g.Wait()
}

// payloadFor specializes the shared artifacts for one target: announce
// URL, source tag and private flag differ per tracker and change the
// info-hash, so the torrent is re-encoded per target.
func (o *Orchestrator) payloadFor(job *Job, t Target, artifacts *Artifacts) (*tracker.Payload, error) {
	info := *artifacts.Info
	if tag := t.SourceTag(); tag != "" {
		extra := make(map[string]any, len(info.Extra)+1)
		for k, v := range info.Extra {
			extra[k] = v
		}
		extra["source"] = tag
		info.Extra = extra
	}
	info.Private = t.PrivateOnly()

	mi := &torrent.MetaInfo{Announce: t.AnnounceURL(), Info: info}
	data, err := mi.Encode()
	if err != nil {
		return nil, fmt.Errorf("encoding torrent: %v", err)
	}

	category, _ := t.CategoryFor(job.Release.Type)
	nameInfo := release.ParseName(job.Release.Name)

	p := &tracker.Payload{
		Name:         job.Release.Name,
		TorrentData:  data,
		Description:  artifacts.Description,
		MediaInfo:    artifacts.MediaInfo,
		NFO:          artifacts.NFO,
		Category:     category,
		ResolutionID: tracker.ResolutionID(job.Release.Name),
		Season:       nameInfo.Season,
		Episode:      nameInfo.Episode,
		HasSeason:    nameInfo.HasSeason,
		HasEpisode:   nameInfo.HasEpisode,
		Episodic:     job.Release.Type == release.TypeTVShow || job.Release.Type == release.TypeBoxset,
	}
	if id, ok := job.Identity.Resolved(identify.KindTMDB); ok {
		p.TMDBID = id.Value
	}
	if id, ok := job.Identity.Resolved(identify.KindIMDB); ok {
		p.IMDBID = id.Value
	}
	if id, ok := job.Identity.Resolved(identify.KindTVDB); ok {
		p.TVDBID = id.Value
	}
	return p, nil
}

// finish marks the job terminal, derives the overall outcome and records
// it. In preflight-only mode pending targets stay pending and the job
// reports the preflight findings only.
func (o *Orchestrator) finish(ctx context.Context, job *Job, preflightOnly bool) {
	job.FinishedAt = time.Now()
	if preflightOnly {
		job.State = StatePreflight
		job.Overall = reduceOutcomes(job.Outcomes)
		if job.Overall == OverallPending {
			job.Overall = OverallSucceeded
		}
	} else {
		job.State = StateDone
		job.Overall = reduceOutcomes(job.Outcomes)
	}

	o.logger.Info("job finished",
		"job", job.ID.String(), "release", job.Release.Name,
		"overall", job.Overall.String(), "state", job.State.String())

	if o.recorder != nil {
		if err := o.recorder.RecordJob(ctx, job); err != nil {
			o.logger.Warn("history write failed", "job", job.ID.String(), "error", err)
		}
	}
}
