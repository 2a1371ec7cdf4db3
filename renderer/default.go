package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/achilleasa/rtow/frame"
	"github.com/achilleasa/rtow/log"
	"github.com/achilleasa/rtow/scene"
	"github.com/achilleasa/rtow/tracer"
)

// Number of progress messages logged per frame.
const progressSteps = 10

// The default renderer splits the frame into blocks and hands them out to a
// pool of CPU tracers. A tracer receives its next block as soon as it reports
// the previous one as done.
type defaultRenderer struct {
	logger log.Logger

	options   Options
	scene     *scene.Scene
	scheduler tracer.BlockScheduler
	tracers   []tracer.Tracer
	fb        *frame.Buffer

	stats FrameStats
}

// Create a renderer for the scene. The scene camera must match the frame
// dimensions in opts.
func NewDefault(sc *scene.Scene, opts Options) (Renderer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if sc.Camera == nil {
		return nil, ErrCameraNotDefined
	}
	if uint32(sc.Camera.Width) != opts.FrameW || uint32(sc.Camera.Height) != opts.FrameH {
		return nil, fmt.Errorf("%w: camera is %vx%v; frame is %dx%d", ErrCameraMismatch, sc.Camera.Width, sc.Camera.Height, opts.FrameW, opts.FrameH)
	}

	scheduler, err := tracer.NewScheduler(opts.Scheduler, opts.BlockSize)
	if err != nil {
		return nil, err
	}

	fb, err := frame.NewBuffer(opts.FrameW, opts.FrameH)
	if err != nil {
		return nil, err
	}

	r := &defaultRenderer{
		logger:    log.New("renderer"),
		options:   opts,
		scene:     sc,
		scheduler: scheduler,
		fb:        fb,
	}

	for i := 0; i < opts.Workers(); i++ {
		r.tracers = append(r.tracers, tracer.NewCPU(fmt.Sprintf("cpu-%d", i)))
	}
	if len(r.tracers) == 0 {
		return nil, ErrNoTracers
	}

	r.logger.Debugf("attached %d tracers; scheduler: %s", len(r.tracers), scheduler)
	return r, nil
}

// Shutdown renderer and any attached tracer.
func (r *defaultRenderer) Close() {
	for _, tr := range r.tracers {
		tr.Close()
	}
	r.tracers = nil
}

// Get the frame buffer.
func (r *defaultRenderer) Frame() *frame.Buffer {
	return r.fb
}

// Get render statistics.
func (r *defaultRenderer) Stats() FrameStats {
	return r.stats
}

// Render frame.
func (r *defaultRenderer) Render(ctx context.Context) error {
	if len(r.tracers) == 0 {
		return ErrNoTracers
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrInterrupted, err)
	}

	start := time.Now()
	settings := r.options.tracerSettings()
	for _, tr := range r.tracers {
		if err := tr.Setup(r.scene, r.fb, settings); err != nil {
			return fmt.Errorf("renderer: could not setup tracer %s: %w", tr.Id(), err)
		}
	}

	blocks := r.scheduler.Schedule(r.options.FrameW, r.options.FrameH)
	doneChan := make(chan tracer.BlockRequest, len(r.tracers))
	errChan := make(chan error, len(r.tracers))

	var renderErr error
	nextBlock := 0
	dispatch := func(trIndex int) bool {
		if renderErr != nil || ctx.Err() != nil || nextBlock >= len(blocks) {
			return false
		}
		block := blocks[nextBlock]
		nextBlock++
		r.tracers[trIndex].Enqueue(tracer.BlockRequest{
			Block:           block,
			SamplesPerPixel: r.options.SamplesPerPixel,
			Seed:            tracer.BlockSeed(r.options.Seed, block.Index),
			TracerIndex:     trIndex,
			DoneChan:        doneChan,
			ErrChan:         errChan,
		})
		return true
	}

	pending := 0
	for trIndex := range r.tracers {
		if dispatch(trIndex) {
			pending++
		}
	}

	completed := 0
	progressEvery := len(blocks) / progressSteps
	if progressEvery == 0 {
		progressEvery = 1
	}
	for pending > 0 {
		select {
		case req := <-doneChan:
			pending--
			completed++
			if completed%progressEvery == 0 || completed == len(blocks) {
				r.logger.Infof("rendered %d/%d blocks (%02.1f %%)", completed, len(blocks), 100*float32(completed)/float32(len(blocks)))
			}
			if dispatch(req.TracerIndex) {
				pending++
			}
		case err := <-errChan:
			pending--
			if renderErr == nil {
				renderErr = err
			}
		}
	}

	r.collectStats(time.Since(start))

	if renderErr != nil {
		return renderErr
	}
	if completed < len(blocks) {
		return fmt.Errorf("%w: %d of %d blocks rendered", ErrInterrupted, completed, len(blocks))
	}
	return nil
}

// Aggregate tracer stats for the last frame.
func (r *defaultRenderer) collectStats(renderTime time.Duration) {
	framePixels := float32(r.options.FrameW) * float32(r.options.FrameH)
	r.stats = FrameStats{
		Tracers:    make([]TracerStat, len(r.tracers)),
		RenderTime: renderTime,
	}
	for index, tr := range r.tracers {
		trStats := tr.Stats()
		r.stats.Tracers[index] = TracerStat{
			Id:           tr.Id(),
			Blocks:       trStats.Blocks,
			Pixels:       trStats.Pixels,
			FramePercent: 100 * float32(trStats.Pixels) / framePixels,
			Samples:      trStats.Samples,
			NaNSamples:   trStats.NaNSamples,
			RenderTime:   trStats.RenderTime,
		}
		r.stats.Blocks += trStats.Blocks
		r.stats.Samples += trStats.Samples
		r.stats.NaNSamples += trStats.NaNSamples
	}
}
