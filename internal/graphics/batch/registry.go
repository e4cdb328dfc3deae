package batch

// Reserved material identifiers.
const (
	DefaultGlowID      = -1
	DefaultBillboardID = -2
)

// Pass selects one of the registry's batch lists.
type Pass int

const (
	PassOpaque Pass = iota
	PassDepth
	PassGlow
	passCount
)

func (p Pass) String() string {
	switch p {
	case PassOpaque:
		return "opaque"
	case PassDepth:
		return "depth"
	case PassGlow:
		return "glow"
	}
	return "unknown"
}

// Options configures the reserved identifiers of a Registry.
type Options struct {
	// Opaque enqueues with this identifier are routed to the glow pass.
	GlowID int
	// The batch with this identifier draws last in the opaque pass and is
	// depth sorted when billboard sorting is enabled.
	BillboardID int
}

// DefaultOptions returns the default reserved identifiers.
func DefaultOptions() Options {
	return Options{GlowID: DefaultGlowID, BillboardID: DefaultBillboardID}
}

// Registry routes queued drawables into per-pass, per-material batches.
// Batches live for one frame; every Drain empties its lists.
type Registry struct {
	opts   Options
	passes [passCount][]*Batch
	sorter sorter
}

func NewRegistry(opts Options) *Registry {
	return &Registry{opts: opts}
}

// Options returns the reserved identifiers.
func (r *Registry) Options() Options { return r.opts }

// EnqueueOpaque queues d for the opaque pass, or the glow pass when id is
// the glow identifier.
func (r *Registry) EnqueueOpaque(d Drawable, id int) {
	if id == r.opts.GlowID {
		r.EnqueueGlow(d, id)
		return
	}
	r.enqueue(PassOpaque, d, id)
}

// EnqueueDepth queues d for the depth pre-pass of the glow target.
func (r *Registry) EnqueueDepth(d Drawable, id int) {
	r.enqueue(PassDepth, d, id)
}

// EnqueueGlow queues d for the glow pass.
func (r *Registry) EnqueueGlow(d Drawable, id int) {
	r.enqueue(PassGlow, d, id)
}

func (r *Registry) enqueue(p Pass, d Drawable, id int) {
	if d == nil {
		return
	}
	r.find(p, id).Add(d)
}

// find returns the batch for id in pass p, creating it if needed.
func (r *Registry) find(p Pass, id int) *Batch {
	for _, b := range r.passes[p] {
		if b.id == id {
			return b
		}
	}
	b := newBatch(id)
	b.sorter = &r.sorter
	r.passes[p] = append(r.passes[p], b)
	return b
}

// Batches returns the batches of pass p in iteration order.
func (r *Registry) Batches(p Pass) []*Batch { return r.passes[p] }

// Len returns the number of batches in pass p.
func (r *Registry) Len(p Pass) int { return len(r.passes[p]) }

// Reset drops every queued drawable without drawing.
func (r *Registry) Reset() {
	for p := range r.passes {
		r.clear(Pass(p))
	}
}

func (r *Registry) clear(p Pass) {
	clear(r.passes[p])
	r.passes[p] = r.passes[p][:0]
}

// DrainOpaque draws and clears the opaque pass. The billboard batch is
// drawn after every other opaque batch.
func (r *Registry) DrainOpaque(ctx *Context) error {
	defer r.clear(PassOpaque)

	ctx.BillboardID = r.opts.BillboardID
	r.moveBillboardLast()
	return drain(r.passes[PassOpaque], ctx, false)
}

// DrainGlow draws and clears the depth pass, then the glow pass.
// Both lists are empty on return, even when a batch fails.
func (r *Registry) DrainGlow(ctx *Context) error {
	defer r.clear(PassGlow)

	ctx.BillboardID = r.opts.BillboardID
	err := drain(r.passes[PassDepth], ctx, true)
	r.clear(PassDepth)
	if err != nil {
		return err
	}
	return drain(r.passes[PassGlow], ctx, false)
}

func (r *Registry) moveBillboardLast() {
	bs := r.passes[PassOpaque]
	for i, b := range bs {
		if b.id != r.opts.BillboardID {
			continue
		}
		copy(bs[i:], bs[i+1:])
		bs[len(bs)-1] = b
		return
	}
}

func drain(bs []*Batch, ctx *Context, depth bool) error {
	for _, b := range bs {
		if err := drawBatch(b, ctx, depth); err != nil {
			return err
		}
	}
	return nil
}

func drawBatch(b *Batch, ctx *Context, depth bool) error {
	var err error
	if depth {
		err = b.BeginDepth(ctx)
	} else {
		err = b.BeginOpaque(ctx)
	}
	if err != nil {
		return err
	}
	defer b.End()

	if depth {
		return b.SubmitDepth(ctx)
	}
	return b.Submit(ctx)
}
