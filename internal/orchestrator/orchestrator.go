// Package orchestrator owns the job lifecycle: validate, lay out, render,
// upload, probe, report. It is the only component that moves a job between
// states.
package orchestrator

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"mediaforge/internal/config"
	"mediaforge/internal/jobs"
	"mediaforge/internal/layout"
	"mediaforge/internal/pkg/errors"
	"mediaforge/internal/pkg/logger"
	"mediaforge/internal/ports"
	"mediaforge/internal/render"
	"mediaforge/internal/worker"
)

// Engine is the transcoding surface the orchestrator drives. Satisfied by
// the ffmpeg engine; tests substitute fakes.
type Engine interface {
	FontFile(name string) string
	Compose(ctx context.Context, plan render.Plan, outputPath string) error
	Duration(ctx context.Context, path string) (float64, error)
	Bitrate(ctx context.Context, path string) (int64, error)
	Encoder(ctx context.Context, path string) (string, error)
	Thumbnail(ctx context.Context, videoPath, outPath string) error
}

type Deps struct {
	Engine     Engine
	Storage    ports.StorageProvider
	Store      jobs.Store
	Pool       *worker.Pool
	HTTPClient *http.Client
	TempDir    string
	KeyPrefix  string
	Retry      config.Retry
	Log        *logger.Logger
}

type Orchestrator struct {
	engine     Engine
	storage    ports.StorageProvider
	store      jobs.Store
	pool       *worker.Pool
	httpClient *http.Client
	tempDir    string
	keyPrefix  string
	retryCfg   config.Retry
	log        *logger.Logger
}

func New(d Deps) *Orchestrator {
	log := d.Log
	if log == nil {
		log = logger.NewDefault()
	}
	httpClient := d.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Minute}
	}
	tempDir := d.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &Orchestrator{
		engine:     d.Engine,
		storage:    d.Storage,
		store:      d.Store,
		pool:       d.Pool,
		httpClient: httpClient,
		tempDir:    tempDir,
		keyPrefix:  d.KeyPrefix,
		retryCfg:   d.Retry,
		log:        log.WithComponent("orchestrator"),
	}
}

// Submit validates the request and admits it into the worker pool. The
// returned job always carries an identifier and a status; the task is the
// future handle, nil when the request never entered processing.
func (o *Orchestrator) Submit(ctx context.Context, req *TitleRequest) (*jobs.Job, *worker.Task, error) {
	req.normalize()
	job := jobs.New(req.ID)

	if err := req.validate(); err != nil {
		job.Transition(jobs.StatusError)
		job.Error = err.Error()
		return job, nil, err
	}

	runCtx := ctx
	if req.Async {
		// Async jobs outlive the request; keep its values, drop its cancel.
		runCtx = context.WithoutCancel(ctx)
	}

	task, err := o.pool.Submit(runCtx, func(jobCtx context.Context) (*jobs.Job, error) {
		return o.process(jobCtx, job, req)
	})
	if err != nil {
		job.Transition(jobs.StatusError)
		job.Error = err.Error()
		return job, nil, err
	}

	if req.Async {
		if err := o.store.Put(ctx, job); err != nil {
			o.log.FromContext(ctx).WithJobID(job.ID).LogError(ctx, "failed to track async job", err)
		}
	}
	return job, task, nil
}

// Forget drops a finished synchronous job from tracking once its response
// has been written.
func (o *Orchestrator) Forget(ctx context.Context, jobID string) {
	_ = o.store.Delete(ctx, jobID)
}

// Lookup fetches a tracked job by id.
func (o *Orchestrator) Lookup(ctx context.Context, jobID string) (*jobs.Job, error) {
	return o.store.Get(ctx, jobID)
}

func (o *Orchestrator) process(ctx context.Context, job *jobs.Job, req *TitleRequest) (*jobs.Job, error) {
	log := o.log.FromContext(ctx).WithJobID(job.ID)

	job.Transition(jobs.StatusProcessing)
	o.track(ctx, job, req)

	start := time.Now()
	if err := o.run(ctx, job, req, log); err != nil {
		return o.fail(ctx, job, req, err, log), err
	}

	job.Transition(jobs.StatusSuccess)
	o.track(ctx, job, req)
	log.Info("job completed",
		"url", job.OutputURL,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return job, nil
}

func (o *Orchestrator) run(ctx context.Context, job *jobs.Job, req *TitleRequest, log *logger.Logger) error {
	// Layout is deterministic and fast; it runs once, never retried.
	profile := layout.Classify(req.Title)
	font := req.FontName
	if font == "" {
		font = profile.DefaultFont
	}

	lay := layout.SplitText(req.Title, req.MaxLines, profile)
	if len(lay.Lines) == 0 {
		return errors.ValidationField("title", "title contains no renderable text")
	}
	if lay.CapExceeded {
		job.AddWarning(fmt.Sprintf("requested max_lines=%d could not be honored; rendered %d lines", req.MaxLines, len(lay.Lines)))
	}

	canvas := layout.Size(lay, req.FontSize, req.multiplier, req.paddingTop, req.alignment)
	if canvas.Expanded {
		log.Debug("padding auto-expanded",
			"requested", req.paddingTop,
			"band_height", canvas.BandHeight,
		)
	}

	workDir, err := os.MkdirTemp(o.tempDir, "mediaforge-"+job.ID+"-")
	if err != nil {
		return errors.Wrap(err, "orchestrator.workdir", "create working directory")
	}
	defer os.RemoveAll(workDir)

	inputPath := filepath.Join(workDir, "input.mp4")
	if err := retry(ctx, o.retryCfg.Attempts, o.retryCfg.Backoff, func() error {
		return o.download(ctx, req.VideoURL, inputPath)
	}); err != nil {
		return err
	}

	plan := render.BuildPlan(inputPath, req.Placement, profile, lay, canvas, render.Style{
		FontFile:    o.engine.FontFile(font),
		FontColor:   req.FontColor,
		BorderColor: req.BorderColor,
		BorderWidth: req.borderWidth,
		BandColor:   req.PaddingColor,
		ShadowColor: shadowColor,
	})

	outputPath := filepath.Join(workDir, "output.mp4")
	log.Info("starting render",
		"script", string(profile.Script),
		"lines", len(lay.Lines),
		"band_height", canvas.BandHeight,
	)
	if err := retry(ctx, o.retryCfg.Attempts, o.retryCfg.Backoff, func() error {
		return o.engine.Compose(ctx, plan, outputPath)
	}); err != nil {
		return err
	}

	objectKey := o.keyPrefix + "output_" + job.ID + ".mp4"
	url, err := o.upload(ctx, outputPath, objectKey, "video/mp4")
	if err != nil {
		return err
	}
	job.OutputURL = url

	o.probeMetadata(ctx, job, req, outputPath, workDir, log)
	return nil
}

// upload pushes a local file to the storage backend, reopening it on each
// retry attempt since the reader is consumed.
func (o *Orchestrator) upload(ctx context.Context, path, objectKey, contentType string) (string, error) {
	var url string
	err := retry(ctx, o.retryCfg.Attempts, o.retryCfg.Backoff, func() error {
		f, err := os.Open(path)
		if err != nil {
			return errors.WrapWithCode(err, errors.CodeStorage, "orchestrator.upload", "open artifact")
		}
		defer f.Close()

		st, err := f.Stat()
		if err != nil {
			return errors.WrapWithCode(err, errors.CodeStorage, "orchestrator.upload", "stat artifact")
		}

		out, err := o.storage.PutObject(ctx, ports.PutObjectInput{
			ObjectKey:   objectKey,
			ContentType: contentType,
			Reader:      f,
			Size:        st.Size(),
		})
		if err != nil {
			return errors.WrapWithCode(err, errors.CodeStorage, "orchestrator.upload", "upload artifact")
		}
		url = out.URL
		return nil
	})
	return url, err
}

// probeMetadata computes the requested metadata fields concurrently. The
// output artifact is immutable at this point, so the probes are independent
// read-only operations; any single failure drops its field only.
func (o *Orchestrator) probeMetadata(ctx context.Context, job *jobs.Job, req *TitleRequest, outputPath, workDir string, log *logger.Logger) {
	var mu sync.Mutex
	set := func(key string, value any) {
		mu.Lock()
		defer mu.Unlock()
		job.SetMetadata(key, value)
	}

	g, gctx := errgroup.WithContext(ctx)

	if req.Metadata.Filesize {
		g.Go(func() error {
			if st, err := os.Stat(outputPath); err == nil {
				set("filesize", st.Size())
			} else {
				log.Warn("filesize probe failed", "error", err.Error())
			}
			return nil
		})
	}
	if req.Metadata.Duration {
		g.Go(func() error {
			if d, err := o.engine.Duration(gctx, outputPath); err == nil {
				set("duration", d)
			} else {
				log.Warn("duration probe failed", "error", err.Error())
			}
			return nil
		})
	}
	if req.Metadata.Bitrate {
		g.Go(func() error {
			if b, err := o.engine.Bitrate(gctx, outputPath); err == nil {
				set("bitrate", b)
			} else {
				log.Warn("bitrate probe failed", "error", err.Error())
			}
			return nil
		})
	}
	if req.Metadata.Encoder {
		g.Go(func() error {
			if enc, err := o.engine.Encoder(gctx, outputPath); err == nil {
				set("encoder", enc)
			} else {
				log.Warn("encoder probe failed", "error", err.Error())
			}
			return nil
		})
	}
	if req.Metadata.Thumbnail {
		g.Go(func() error {
			thumbPath := filepath.Join(workDir, "thumbnail.jpg")
			if err := o.engine.Thumbnail(gctx, outputPath, thumbPath); err != nil {
				log.Warn("thumbnail extraction failed", "error", err.Error())
				return nil
			}
			thumbKey := o.keyPrefix + "thumbnail_" + job.ID + ".jpg"
			url, err := o.upload(gctx, thumbPath, thumbKey, "image/jpeg")
			if err != nil {
				log.Warn("thumbnail upload failed", "error", err.Error())
				return nil
			}
			set("thumbnail_url", url)
			return nil
		})
	}

	_ = g.Wait()
}

func (o *Orchestrator) download(ctx context.Context, url, dst string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Validationf("invalid video_url: %v", err)
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "orchestrator.download", "fetch source video")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Newf(errors.CodeUnavailable, "fetch source video: http %d", resp.StatusCode)
	}

	f, err := os.Create(dst)
	if err != nil {
		return errors.Wrap(err, "orchestrator.download", "create input file")
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "orchestrator.download", "read source video")
	}
	return nil
}

// fail moves the job to its terminal error state with a caller-safe message.
func (o *Orchestrator) fail(ctx context.Context, job *jobs.Job, req *TitleRequest, cause error, log *logger.Logger) *jobs.Job {
	msg := cause.Error()
	if ctx.Err() == context.DeadlineExceeded {
		msg = "job exceeded its processing time budget"
	}
	if len(msg) > 2000 {
		msg = msg[:2000]
	}

	job.Transition(jobs.StatusError)
	job.Error = msg
	o.track(ctx, job, req)

	log.Error("job failed",
		"code", string(errors.GetCode(cause)),
		"error", msg,
	)
	return job
}

// track persists job state for async callers. Synchronous jobs stay
// request-scoped and are never written to the store.
func (o *Orchestrator) track(ctx context.Context, job *jobs.Job, req *TitleRequest) {
	if !req.Async {
		return
	}
	// State updates must land even when the job context is already done.
	putCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := o.store.Put(putCtx, job); err != nil {
		o.log.WithJobID(job.ID).LogError(ctx, "failed to persist job state", err)
	}
}
