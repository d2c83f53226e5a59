package service

import (
	"context"
	"fmt"
	"time"

	"prospector/internal/core/explain"
	"prospector/internal/core/feature"
	"prospector/internal/core/parse"
	"prospector/internal/core/score"
	"prospector/internal/platform/logger"
	analyticsdom "prospector/internal/services/analytics/domain"
	prospectsdom "prospector/internal/services/prospects/domain"
	"prospector/internal/services/scans/domain"
)

// Checkpoint percent bands per stage. Batched stages interpolate within
// their band; percent never decreases inside one run
const (
	pctQueued     = 0
	pctPickedUp   = 5
	pctExtractLo  = 10
	pctExtractHi  = 20
	pctDetectLo   = 25
	pctDetectHi   = 40
	pctScoreLo    = 45
	pctScoreHi    = 75
	pctSaveLo     = 80
	pctSaveHi     = 95
	pctCompleted  = 100
)

// process drives one leased job through the state machine. Failure is
// forward-only: earlier batches stay persisted and the job records its last
// good percent with a descriptive message
func (s *Svc) process(ctx context.Context, j domain.LeasedJob) error {
	log := logger.Named("scan-pipeline").With().Str("job_id", j.ID).Logger()

	lastPct := pctQueued
	ck := func(stage domain.Stage, pct int, msg string) error {
		if pct < lastPct {
			pct = lastPct
		}
		lastPct = pct
		return s.storage.Checkpoint(ctx, j.ID, stage, pct, msg)
	}
	fail := func(msg string) error {
		log.Warn().Str("reason", msg).Msg("scan failed")
		if err := s.storage.MarkFailed(ctx, j.ID); err != nil {
			return err
		}
		return s.storage.Checkpoint(ctx, j.ID, domain.StageFailed, lastPct, msg)
	}

	if err := ck(domain.StageQueued, pctPickedUp, "picked up by worker"); err != nil {
		return err
	}

	// extracting
	if err := ck(domain.StageExtracting, pctExtractLo, "parsing input"); err != nil {
		return err
	}
	format, err := parse.ParseFormat(j.Format)
	if err != nil {
		return fail(err.Error())
	}
	cands, err := parse.Parse(j.RawInput, format)
	if err != nil {
		return fail(fmt.Sprintf("parse input: %v", err))
	}
	cands = dedupeByName(cands)
	if len(cands) == 0 {
		return fail("no prospect data found in input")
	}
	if err := ck(domain.StageExtracting, pctExtractHi,
		fmt.Sprintf("%d candidates extracted", len(cands))); err != nil {
		return err
	}

	// detecting: heuristic features per candidate, insight for the first few
	vectors := make([]feature.Vector, len(cands))
	nb := (len(cands) + s.cfg.BatchSize - 1) / s.cfg.BatchSize
	if err := ck(domain.StageDetecting, pctDetectLo, "keyword detection"); err != nil {
		return err
	}
	for b := 0; b < nb; b++ {
		lo, hi := b*s.cfg.BatchSize, (b+1)*s.cfg.BatchSize
		if hi > len(cands) {
			hi = len(cands)
		}
		for i := lo; i < hi; i++ {
			v := s.d.Extractor.FromSnippet(cands[i].Snippet)
			if i < s.cfg.EnrichLimit {
				v = s.enrichInto(ctx, &log, cands[i].Snippet, v)
			}
			vectors[i] = v
		}
		if err := ck(domain.StageDetecting, bandPct(pctDetectLo, pctDetectHi, b+1, nb),
			fmt.Sprintf("batch %d/%d detected", b+1, nb)); err != nil {
			return err
		}
	}

	// scoring
	model, err := s.d.Weights.Get(ctx, j.UserID)
	if err != nil {
		return fail(fmt.Sprintf("load weights: %v", err))
	}
	if err := ck(domain.StageScoring, pctScoreLo,
		fmt.Sprintf("scoring with weights v%d", model.Version)); err != nil {
		return err
	}
	records := make([]prospectsdom.ScoreRecord, len(cands))
	now := time.Now().UTC()
	for b := 0; b < nb; b++ {
		lo, hi := b*s.cfg.BatchSize, (b+1)*s.cfg.BatchSize
		if hi > len(cands) {
			hi = len(cands)
		}
		for i := lo; i < hi; i++ {
			res, err := score.Compute(vectors[i], model.Weights)
			if err != nil {
				// corrupted weight store; surfaced, never silently renormalized
				return fail(fmt.Sprintf("score candidate %q: %v", cands[i].Name, err))
			}
			records[i] = prospectsdom.ScoreRecord{
				UserID:       j.UserID,
				JobID:        j.ID,
				Name:         cands[i].Name,
				Score:        res.Score,
				Bucket:       string(res.Bucket),
				Tags:         explain.Tags(vectors[i]),
				Features:     vectors[i],
				Weights:      model.Weights,
				ModelVersion: score.ModelVersion,
				CalculatedAt: now,
			}
		}
		if err := ck(domain.StageScoring, bandPct(pctScoreLo, pctScoreHi, b+1, nb),
			fmt.Sprintf("batch %d/%d scored", b+1, nb)); err != nil {
			return err
		}
	}
	if len(records) == 0 {
		return fail("no prospects scored")
	}

	// saving
	if err := ck(domain.StageSaving, pctSaveLo, "persisting results"); err != nil {
		return err
	}
	promotes := make([]prospectsdom.Promote, len(cands))
	for i, c := range cands {
		promotes[i] = prospectsdom.Promote{Name: c.Name, Snippet: c.Snippet, SourceLine: c.SourceLine}
	}
	rows, err := s.d.Prospects.PromoteBatch(ctx, j.UserID, promotes)
	if err != nil {
		return fail(fmt.Sprintf("persist prospects: %v", err))
	}
	byName := make(map[string]string, len(rows))
	for _, p := range rows {
		byName[p.Name] = p.ID
	}
	for i := range records {
		records[i].ProspectID = byName[records[i].Name]
	}
	if err := s.d.Prospects.SaveScores(ctx, records); err != nil {
		return fail(fmt.Sprintf("persist scores: %v", err))
	}
	if err := ck(domain.StageSaving, pctSaveHi,
		fmt.Sprintf("%d prospects saved", len(records))); err != nil {
		return err
	}

	// analytics sink is best effort; never fails the job
	if s.d.Sink != nil {
		events := make([]analyticsdom.ScoreEvent, len(records))
		for i, r := range records {
			events[i] = analyticsdom.ScoreEvent{
				At:           now,
				JobID:        j.ID,
				UserID:       j.UserID,
				ProspectID:   r.ProspectID,
				Score:        r.Score,
				Bucket:       r.Bucket,
				ModelVersion: r.ModelVersion,
			}
		}
		if err := s.d.Sink.WriteScoreEvents(ctx, events); err != nil {
			log.Warn().Err(err).Msg("score events not written")
		}
	}

	// completed
	var tally prospectsdom.Tally
	tally.Total = len(records)
	for _, r := range records {
		switch score.Bucket(r.Bucket) {
		case score.BucketHot:
			tally.Hot++
		case score.BucketWarm:
			tally.Warm++
		default:
			tally.Cold++
		}
	}
	if err := s.storage.CompleteJob(ctx, j.ID, tally.Total, tally.Hot, tally.Warm, tally.Cold); err != nil {
		return fail(fmt.Sprintf("finalize job: %v", err))
	}
	if err := ck(domain.StageCompleted, pctCompleted,
		fmt.Sprintf("scan completed: %d total, %d hot, %d warm, %d cold",
			tally.Total, tally.Hot, tally.Warm, tally.Cold)); err != nil {
		return err
	}

	log.Info().
		Int("total", tally.Total).
		Int("hot", tally.Hot).
		Int("warm", tally.Warm).
		Int("cold", tally.Cold).
		Msg("scan completed")
	return nil
}

// enrichInto folds external insight into a heuristic vector. Timeouts and
// service errors degrade to the heuristic features, never to a job failure
func (s *Svc) enrichInto(
	ctx context.Context,
	log *logger.Logger,
	snippet string,
	v feature.Vector,
) feature.Vector {
	if s.d.Enricher == nil {
		return v
	}
	in, err := s.d.Enricher.Enrich(ctx, snippet)
	if err != nil {
		log.Debug().Err(err).Msg("enrichment skipped")
		return v
	}
	if in.Empty() {
		return v
	}
	p := feature.Profile{
		PainPoints: in.PainPoints,
		Interests:  in.Interests,
		LifeEvents: in.LifeEvents,
	}
	ev := []feature.Event{{At: time.Now().UTC(), Sentiment: in.Sentiment}}
	return v.Merge(s.d.Extractor.Extract(p, ev))
}

// bandPct interpolates a batch checkpoint within a stage's percent band
func bandPct(lo, hi, done, total int) int {
	if total <= 0 {
		return hi
	}
	return lo + (hi-lo)*done/total
}

func dedupeByName(xs []parse.Candidate) []parse.Candidate {
	idx := make(map[string]int, len(xs))
	out := make([]parse.Candidate, 0, len(xs))
	for _, c := range xs {
		if i, seen := idx[c.Name]; seen {
			out[i] = c
			continue
		}
		idx[c.Name] = len(out)
		out = append(out, c)
	}
	return out
}
