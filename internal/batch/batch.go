// Package batch runs the solver and verifier across a level corpus. Each
// level is an independent, share-nothing job, so the corpus is processed
// on an in-process worker pool instead of spawning a process per level.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/NNTin/gsnake-levels/internal/level"
	"github.com/NNTin/gsnake-levels/internal/solver"
	"github.com/NNTin/gsnake-levels/internal/verifier"
)

// Options controls a corpus run.
type Options struct {
	LevelsRoot string
	// Workers bounds concurrent per-level jobs; 0 means GOMAXPROCS.
	Workers int
	// MaxDepth is the solver's depth bound (solve runs only).
	MaxDepth int
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Result is the outcome of one per-level job.
type Result struct {
	Difficulty string
	File       string
	LevelPath  string
	Passed     bool
	Skipped    bool // verify runs: level has no playback yet
	Moves      int
	Duration   time.Duration
	Err        error
}

// Outcome renders the result as a short classification string, the form
// recorded in the run history store.
func (r Result) Outcome() string {
	switch {
	case r.Skipped:
		return "skipped"
	case r.Passed:
		return "passed"
	case r.Err != nil:
		return r.Err.Error()
	default:
		return "failed"
	}
}

// Summary aggregates a slice of results.
type Summary struct {
	Passed  int
	Failed  int
	Skipped int
}

// Summarize counts passed, failed, and skipped results.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		switch {
		case r.Skipped:
			s.Skipped++
		case r.Passed:
			s.Passed++
		default:
			s.Failed++
		}
	}
	return s
}

// job is one indexed level scheduled for a worker.
type job struct {
	difficulty string
	entry      level.MetaEntry
	levelPath  string
}

// collect walks the difficulty indexes under the levels root and lists
// every indexed level file. Folders without an index are skipped.
func collect(levelsRoot string) ([]job, error) {
	var jobs []job
	for _, difficulty := range level.Difficulties {
		metaPath := filepath.Join(levelsRoot, difficulty, level.MetadataFile)
		if _, err := os.Stat(metaPath); err != nil {
			continue
		}
		meta, err := level.LoadMetadata(metaPath)
		if err != nil {
			return nil, err
		}
		for _, entry := range meta.Levels {
			if entry.File == "" {
				continue
			}
			jobs = append(jobs, job{
				difficulty: difficulty,
				entry:      entry,
				levelPath:  filepath.Join(levelsRoot, difficulty, entry.File),
			})
		}
	}
	return jobs, nil
}

// run fans the jobs out over a bounded worker pool and collects results
// in job order. Cancelling ctx aborts in-flight solves without affecting
// levels that already finished.
func run(ctx context.Context, opts Options, jobs []job, fn func(context.Context, job) Result) ([]Result, error) {
	results := make([]Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			results[i] = fn(gctx, j)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// VerifyAll replays every indexed level's playback and updates the solved
// flags in the difficulty indexes. Levels without a playback file are
// skipped, not failed: they simply have not been solved yet.
func VerifyAll(ctx context.Context, opts Options) ([]Result, error) {
	jobs, err := collect(opts.LevelsRoot)
	if err != nil {
		return nil, err
	}
	results, err := run(ctx, opts, jobs, verifyOne)
	if err != nil {
		return nil, err
	}
	if err := writeSolvedFlags(opts.LevelsRoot, jobs, results); err != nil {
		return nil, err
	}
	return results, nil
}

func verifyOne(_ context.Context, j job) Result {
	res := Result{Difficulty: j.difficulty, File: j.entry.File, LevelPath: j.levelPath}
	start := time.Now()
	defer func() { res.Duration = time.Since(start) }()

	lv, err := level.Load(j.levelPath)
	if err != nil {
		res.Err = err
		return res
	}
	playbackPath, err := level.PlaybackPath(j.levelPath)
	if err != nil {
		res.Err = err
		return res
	}
	if _, err := os.Stat(playbackPath); err != nil {
		res.Skipped = true
		return res
	}
	moves, err := level.LoadPlayback(playbackPath)
	if err != nil {
		res.Err = err
		return res
	}
	v := verifier.Verify(lv.InitialState(), moves)
	res.Moves = v.Moves
	if !v.Passed {
		res.Err = fmt.Errorf("verify %s: %s", j.entry.File, v)
		log.Warn("verification failed", "level", j.levelPath, "at", v.FailIndex, "reason", v.Reason.String())
		return res
	}
	res.Passed = true
	return res
}

// GenerateAll solves every indexed level from scratch, writes the found
// playbacks, and updates the solved flags. Levels the solver exhausts
// within the depth bound come back failed with solver.ErrExhausted.
func GenerateAll(ctx context.Context, opts Options) ([]Result, error) {
	jobs, err := collect(opts.LevelsRoot)
	if err != nil {
		return nil, err
	}
	results, err := run(ctx, opts, jobs, func(ctx context.Context, j job) Result {
		return solveOne(ctx, j, opts.MaxDepth)
	})
	if err != nil {
		return nil, err
	}
	if err := writeSolvedFlags(opts.LevelsRoot, jobs, results); err != nil {
		return nil, err
	}
	return results, nil
}

func solveOne(ctx context.Context, j job, maxDepth int) Result {
	res := Result{Difficulty: j.difficulty, File: j.entry.File, LevelPath: j.levelPath}
	start := time.Now()
	defer func() { res.Duration = time.Since(start) }()

	lv, err := level.Load(j.levelPath)
	if err != nil {
		res.Err = err
		return res
	}
	moves, err := solver.Solve(ctx, lv.InitialState(), maxDepth)
	if err != nil {
		res.Err = err
		log.Warn("solve failed", "level", j.levelPath, "err", err)
		return res
	}
	res.Moves = len(moves)
	playbackPath, err := level.PlaybackPath(j.levelPath)
	if err != nil {
		res.Err = err
		return res
	}
	if err := level.WritePlayback(playbackPath, moves); err != nil {
		res.Err = err
		return res
	}
	log.Debug("solved", "level", j.levelPath, "moves", len(moves), "elapsed", time.Since(start))
	res.Passed = true
	return res
}

// writeSolvedFlags folds results back into the difficulty indexes. It
// runs after the parallel phase so each index file has one writer.
func writeSolvedFlags(levelsRoot string, jobs []job, results []Result) error {
	for _, difficulty := range level.Difficulties {
		metaPath := filepath.Join(levelsRoot, difficulty, level.MetadataFile)
		if _, err := os.Stat(metaPath); err != nil {
			continue
		}
		meta, err := level.LoadMetadata(metaPath)
		if err != nil {
			return err
		}
		updated := false
		for i, j := range jobs {
			if j.difficulty != difficulty || results[i].Skipped {
				continue
			}
			if meta.MarkSolved(j.entry.File, results[i].Passed) {
				updated = true
			}
		}
		if !updated {
			continue
		}
		if err := meta.Save(metaPath); err != nil {
			return err
		}
	}
	return nil
}
