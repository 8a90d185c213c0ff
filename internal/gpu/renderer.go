package gpu

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/mandelbrot/frame"
	"github.com/gogpu/mandelbrot/viewport"
)

var (
	// ErrRendererClosed is returned when recording with a destroyed renderer.
	ErrRendererClosed = errors.New("gpu: renderer closed")

	// ErrParamsSize is returned by WriteParams for data that does not match
	// the renderer's uniform layout.
	ErrParamsSize = errors.New("gpu: params size does not match precision")

	// ErrGPUTimeout is returned by Submit when the GPU does not finish the
	// frame in time.
	ErrGPUTimeout = errors.New("gpu: timed out waiting for submission")
)

// submitTimeout bounds the per-frame completion wait.
const submitTimeout = 5 * time.Second

// pollInterval is the sleep between completion polls.
const pollInterval = 50 * time.Microsecond

// Renderer draws the fractal kernel as a full-screen quad. It owns the
// shader, pipeline, parameter buffer, and bind group of one precision
// variant. Renderer implements frame.Renderer.
//
// Renderer is not safe for concurrent use.
type Renderer struct {
	device    hal.Device
	queue     hal.Queue
	precision viewport.Precision
	format    gputypes.TextureFormat

	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline
	params        hal.Buffer
	bindGroup     hal.BindGroup

	timeout time.Duration
}

var _ frame.Renderer = (*Renderer)(nil)

// NewRenderer builds the pipeline for precision p targeting format. The
// kernel is validated with naga first, so a device or compiler without
// shader-f64 support fails here rather than at draw time.
func NewRenderer(device hal.Device, queue hal.Queue, format gputypes.TextureFormat, p viewport.Precision) (*Renderer, error) {
	if device == nil || queue == nil {
		return nil, fmt.Errorf("%w: nil device or queue", ErrNoDevice)
	}
	r := &Renderer{
		device:    device,
		queue:     queue,
		precision: p,
		format:    format,
		timeout:   submitTimeout,
	}
	if err := r.createPipeline(); err != nil {
		r.Destroy()
		return nil, err
	}
	if err := r.createParams(); err != nil {
		r.Destroy()
		return nil, err
	}
	slogger().Debug("gpu: renderer ready", "precision", p, "format", format)
	return r, nil
}

// Precision returns the kernel variant the renderer was built with.
func (r *Renderer) Precision() viewport.Precision {
	return r.precision
}

func (r *Renderer) createPipeline() error {
	if _, err := CompileShader(r.precision); err != nil {
		return err
	}

	label := "mandelbrot_" + r.precision.String()
	shader, err := r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label + "_shader",
		Source: hal.ShaderSource{WGSL: ShaderSource(r.precision)},
	})
	if err != nil {
		return fmt.Errorf("create %s shader: %w", r.precision, err)
	}
	r.shader = shader

	uniformLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: label + "_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create uniform layout: %w", err)
	}
	r.uniformLayout = uniformLayout

	pipeLayout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            label + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout

	pipeline, err := r.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  label + "_pipeline",
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.shader,
			EntryPoint: VertexEntryPoint,
		},
		Fragment: &hal.FragmentState{
			Module:     r.shader,
			EntryPoint: FragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    r.format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create %s render pipeline: %w", r.precision, err)
	}
	r.pipeline = pipeline
	return nil
}

func (r *Renderer) createParams() error {
	size := uint64(viewport.UniformSize(r.precision))
	params, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "mandelbrot_params",
		Size:  size,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create params buffer: %w", err)
	}
	r.params = params

	bindGroup, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "mandelbrot_params_bind",
		Layout: r.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: r.params.NativeHandle(), Offset: 0, Size: size,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("create params bind group: %w", err)
	}
	r.bindGroup = bindGroup
	return nil
}

// WriteParams writes an encoded viewport.Uniform to the parameter buffer.
// Data of the wrong size for the renderer's precision is rejected with
// ErrParamsSize.
func (r *Renderer) WriteParams(data []byte) error {
	if r.params == nil {
		return ErrRendererClosed
	}
	if n := viewport.UniformSize(r.precision); len(data) != n {
		return fmt.Errorf("%w: %d bytes for %s, want %d", ErrParamsSize, len(data), r.precision, n)
	}
	if err := r.queue.WriteBuffer(r.params, 0, data); err != nil {
		return fmt.Errorf("write params buffer: %w", err)
	}
	return nil
}

// Record encodes one frame into img: clear to black, bind the parameter
// buffer at group 0 and draw the six vertices of the full-screen quad.
func (r *Renderer) Record(img frame.Image) (frame.Pass, error) {
	if r.pipeline == nil {
		return nil, ErrRendererClosed
	}
	if img.View == nil {
		return nil, fmt.Errorf("record: nil surface view")
	}

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "mandelbrot_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("mandelbrot_frame"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "mandelbrot_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       img.View,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 1},
		}},
	})
	rp.SetPipeline(r.pipeline)
	rp.SetBindGroup(0, r.bindGroup, nil)
	rp.Draw(6, 1, 0, 0)
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	return &pass{r: r, cmd: cmdBuf}, nil
}

// pass is a recorded command buffer waiting for submission.
type pass struct {
	r   *Renderer
	cmd hal.CommandBuffer
}

// Submit queues the command buffer and waits for the GPU to finish it
// before the surface image is presented. The command buffer is freed only
// once the GPU is done with it.
func (p *pass) Submit() error {
	r := p.r
	index, err := r.queue.Submit([]hal.CommandBuffer{p.cmd})
	if err != nil {
		r.device.FreeCommandBuffer(p.cmd)
		return fmt.Errorf("submit: %w", err)
	}
	if err := r.wait(index); err != nil {
		return err
	}
	r.device.FreeCommandBuffer(p.cmd)
	return nil
}

// wait polls the queue until submission index has completed.
func (r *Renderer) wait(index uint64) error {
	deadline := time.Now().Add(r.timeout)
	for r.queue.PollCompleted() < index {
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: submission %d after %v", ErrGPUTimeout, index, r.timeout)
		}
		time.Sleep(pollInterval)
	}
	return nil
}

// Destroy releases all GPU resources in reverse creation order. It is safe
// to call more than once.
func (r *Renderer) Destroy() {
	if r.device == nil {
		return
	}
	if r.bindGroup != nil {
		r.device.DestroyBindGroup(r.bindGroup)
		r.bindGroup = nil
	}
	if r.params != nil {
		r.device.DestroyBuffer(r.params)
		r.params = nil
	}
	if r.pipeline != nil {
		r.device.DestroyRenderPipeline(r.pipeline)
		r.pipeline = nil
	}
	if r.pipeLayout != nil {
		r.device.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
	if r.uniformLayout != nil {
		r.device.DestroyBindGroupLayout(r.uniformLayout)
		r.uniformLayout = nil
	}
	if r.shader != nil {
		r.device.DestroyShaderModule(r.shader)
		r.shader = nil
	}
}
