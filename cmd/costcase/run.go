package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/dgallion1/costcase/internal/casestudy"
	"github.com/dgallion1/costcase/internal/config"
	"github.com/dgallion1/costcase/internal/outstore"
	"github.com/dgallion1/costcase/internal/parser"
	"github.com/dgallion1/costcase/internal/pipeline"
	"github.com/dgallion1/costcase/internal/report"
)

func runGenerate(ctx context.Context, cfg config.Config, log *slog.Logger, out io.Writer, asJSON bool) error {
	in, p, err := cfg.Study()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.RenderTimeout)
	defer cancel()

	store, err := outstore.Open(ctx, cfg.Store)
	if err != nil {
		return err
	}

	start := time.Now()
	job := pipeline.NewJob(cfg.OutputKey)
	w := pipeline.NewWorker(store, log, report.Options{Font: cfg.Font, Charts: cfg.Charts, Log: log})
	log.Info("starting costcase", "job_id", job.ID, "driver", store.Driver(), "plan_volume", in.PlanVolume, "case_file", cfg.CaseFile)
	procErr := w.Process(ctx, job, in, p)

	snap := job.Snapshot()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			return err
		}
	}
	if procErr != nil {
		return procErr
	}
	log.Info("generate complete",
		"elapsed", time.Since(start).Round(time.Millisecond).String(),
		"key", snap.Key,
		"size", snap.Size,
		"etag", snap.ETag)
	return nil
}

func runSummary(cfg config.Config, out io.Writer) error {
	s, err := study(cfg)
	if err != nil {
		return err
	}
	printSummary(out, s)
	return nil
}

func runVolumes(cfg config.Config, out io.Writer) error {
	s, err := study(cfg)
	if err != nil {
		return err
	}
	printVolumes(out, s)
	return nil
}

func runInspect(path string, out io.Writer) error {
	p, err := parser.ForFile(path)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	tree, err := p.Parse(f, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	fmt.Fprintln(out, tree.Outline())
	return nil
}

// runInspectStored prints the outline of a stored object. Head picks the
// parser before the object is downloaded.
func runInspectStored(ctx context.Context, store outstore.Store, key string, out io.Writer) error {
	info, err := store.Head(ctx, key)
	if err != nil {
		return err
	}
	p, err := parser.ForFile(info.Key)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	_, rc, err := store.Get(ctx, key)
	if err != nil {
		return err
	}
	defer rc.Close()

	tree, err := p.Parse(rc, path.Base(info.Key))
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	fmt.Fprintln(out, tree.Outline())
	return nil
}

func runReports(ctx context.Context, store outstore.Store, prefix string, out io.Writer) error {
	infos, err := store.List(ctx, prefix)
	if err != nil {
		return err
	}
	printReports(out, infos)
	return nil
}

// runDelete removes keys from the store. A missing key is reported and
// skipped.
func runDelete(ctx context.Context, store outstore.Store, log *slog.Logger, keys []string, out io.Writer) error {
	for _, key := range keys {
		ok, err := store.Delete(ctx, key)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(out, "%s: not found\n", key)
			continue
		}
		log.Info("report deleted", "driver", store.Driver(), "key", key)
		fmt.Fprintf(out, "%s: deleted\n", key)
	}
	return nil
}

func study(cfg config.Config) (*casestudy.Study, error) {
	in, p, err := cfg.Study()
	if err != nil {
		return nil, err
	}
	return casestudy.Run(in, p)
}
