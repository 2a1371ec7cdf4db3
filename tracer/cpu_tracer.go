package tracer

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/achilleasa/rtow/frame"
	"github.com/achilleasa/rtow/log"
	"github.com/achilleasa/rtow/scene"
	"github.com/achilleasa/rtow/types"
)

type cpuTracer struct {
	logger log.Logger

	sync.Mutex
	wg sync.WaitGroup

	// The tracer id.
	id string

	// A channel for receiving block requests from the renderer.
	blockReqChan chan BlockRequest

	// A channel for signaling the worker to exit.
	closeChan chan struct{}

	// Stats for blocks traced since the last setup.
	stats *Stats

	settings   Settings
	integrator *Integrator
	tone       frame.ToneCurve
	camera     *scene.Camera
	fb         *frame.Buffer
}

// Create a tracer that samples blocks on the calling machine's CPU.
func NewCPU(id string) Tracer {
	return &cpuTracer{
		logger:       log.New(id),
		id:           id,
		blockReqChan: make(chan BlockRequest, 1),
		stats:        &Stats{},
	}
}

// Get tracer id.
func (tr *cpuTracer) Id() string {
	return tr.id
}

// Attach the tracer to a scene and an output buffer.
func (tr *cpuTracer) Setup(sc *scene.Scene, fb *frame.Buffer, settings Settings) error {
	tr.Lock()
	defer tr.Unlock()

	if sc == nil || sc.Camera == nil || fb == nil {
		return ErrNotSetup
	}

	if settings.TMin == 0 {
		settings.TMin = DefaultTMin
	}
	if settings.TMax == 0 {
		settings.TMax = DefaultTMax
	}

	tr.settings = settings
	tr.integrator = &Integrator{
		Scene:        sc,
		MaxBounces:   settings.MaxBounces,
		TMin:         settings.TMin,
		TMax:         settings.TMax,
		ShadeNormals: settings.ShadeNormals,
	}
	tr.tone = frame.ToneCurve{Gamma: settings.Gamma}
	tr.camera = sc.Camera
	tr.fb = fb
	tr.stats = &Stats{}

	if tr.closeChan == nil {
		tr.startWorker()
	}

	return nil
}

// Shutdown the tracer worker.
func (tr *cpuTracer) Close() {
	tr.Lock()
	defer tr.Unlock()

	if tr.closeChan != nil {
		tr.closeChan <- struct{}{}

		// wait for worker to ack close
		<-tr.closeChan
		close(tr.closeChan)
		tr.closeChan = nil
		tr.wg.Wait()
	}

	tr.integrator = nil
	tr.camera = nil
	tr.fb = nil
}

// Enqueue block request.
func (tr *cpuTracer) Enqueue(blockReq BlockRequest) {
	tr.blockReqChan <- blockReq
}

// Retrieve stats for the blocks traced since the last setup.
func (tr *cpuTracer) Stats() *Stats {
	return tr.stats
}

// Spawn a go-routine to process block requests.
func (tr *cpuTracer) startWorker() {
	tr.closeChan = make(chan struct{})
	closeChan := tr.closeChan

	readyChan := make(chan struct{})
	tr.wg.Add(1)
	go func() {
		defer tr.wg.Done()
		close(readyChan)
		for {
			select {
			case blockReq := <-tr.blockReqChan:
				start := time.Now()
				if err := tr.renderBlock(&blockReq); err != nil {
					blockReq.ErrChan <- err
					continue
				}
				tr.stats.Blocks++
				tr.stats.Pixels += blockReq.Pixels()
				tr.stats.RenderTime += time.Since(start)

				blockReq.DoneChan <- blockReq
			case <-closeChan:
				// Ack close
				closeChan <- struct{}{}
				return
			}
		}
	}()

	// Wait for go-routine to start
	<-readyChan
}

// Sample every pixel in the block, average the samples, apply the tone curve
// and store the result in the frame buffer.
func (tr *cpuTracer) renderBlock(req *BlockRequest) error {
	if tr.integrator == nil {
		return ErrNotSetup
	}
	if req.SamplesPerPixel == 0 {
		return ErrNoSamples
	}
	if req.W == 0 || req.H == 0 || req.X+req.W > tr.fb.Width || req.Y+req.H > tr.fb.Height {
		return ErrBadBlock
	}

	rng := rand.New(rand.NewSource(req.Seed))
	spp := req.SamplesPerPixel

	var gridN uint32
	if tr.settings.Stratify {
		gridN = uint32(math.Sqrt(float64(spp)))
	}

	for y := req.Y; y < req.Y+req.H; y++ {
		for x := req.X; x < req.X+req.W; x++ {
			var sum types.Vec3
			for s := uint32(0); s < spp; s++ {
				dx, dy := sampleOffset(s, gridN, rng)
				ray := tr.camera.Unproject(types.XY(float64(x)+dx, float64(y)+dy))

				col := tr.integrator.RayColor(ray, rng)
				if col.HasNaN() {
					tr.logger.Warningf("sample %d of pixel (%d, %d) at (%.3f, %.3f) is NaN", s, x, y, float64(x)+dx, float64(y)+dy)
					tr.stats.NaNSamples++
				}
				sum = sum.Add(col)
			}
			tr.stats.Samples += uint64(spp)

			tr.fb.Set(x, y, tr.tone.Apply(sum.Div(float64(spp))))
		}
	}

	return nil
}

// Get the sub-pixel offset for sample s. With a non-zero grid size the first
// gridN² samples are jittered inside the cells of a gridN x gridN grid; the
// rest are uniform over the pixel.
func sampleOffset(s, gridN uint32, rng *rand.Rand) (float64, float64) {
	if s < gridN*gridN {
		inv := 1 / float64(gridN)
		cx, cy := s%gridN, s/gridN
		return (float64(cx) + rng.Float64()) * inv, (float64(cy) + rng.Float64()) * inv
	}
	return rng.Float64(), rng.Float64()
}
