package carousel

import (
	"math"
	"sync"
	"time"

	"smarthost/pkg/sanitizer"
)

type State int

const (
	Idle State = iota
	Advancing
	Paused
)

func (s State) String() string {
	switch s {
	case Advancing:
		return "advancing"
	case Paused:
		return "paused"
	default:
		return "idle"
	}
}

const (
	DefaultInterval     = 5000 * time.Millisecond
	DefaultResumeDelay  = 1000 * time.Millisecond
	defaultVisibleCards = 4

	MediumBreakpoint = 768
	WideBreakpoint   = 1280
)

// VisibleCardsFor maps a viewport width to the number of cards shown at once.
func VisibleCardsFor(viewportWidth float64) int {
	switch {
	case viewportWidth >= WideBreakpoint:
		return 4
	case viewportWidth >= MediumBreakpoint:
		return 2
	default:
		return 1
	}
}

// TotalSlides is the number of pagination dots for itemCount cards.
func TotalSlides(itemCount, visibleCards int) int {
	if itemCount <= 0 || visibleCards <= 0 {
		return 0
	}
	return (itemCount + visibleCards - 1) / visibleCards
}

type Option func(*Carousel)

func WithInterval(d time.Duration) Option {
	return func(c *Carousel) { c.interval = d }
}

func WithResumeDelay(d time.Duration) Option {
	return func(c *Carousel) { c.resumeDelay = d }
}

func WithAutoScroll(enabled bool) Option {
	return func(c *Carousel) { c.autoScroll = enabled }
}

// WithOnScroll registers a callback invoked with every new scroll offset.
// It runs outside the carousel lock.
func WithOnScroll(fn func(position float64)) Option {
	return func(c *Carousel) { c.onScroll = fn }
}

type Carousel struct {
	mu sync.Mutex

	scheduler   Scheduler
	interval    time.Duration
	resumeDelay time.Duration
	autoScroll  bool
	onScroll    func(float64)

	itemCount    int
	visibleCards int
	clientWidth  float64
	scrollWidth  float64
	maxScroll    float64
	position     float64

	started     bool
	interacting bool
	state       State
	pending     func() bool
	generation  uint64
}

func New(itemCount int, scheduler Scheduler, opts ...Option) *Carousel {
	if scheduler == nil {
		scheduler = TimerScheduler{}
	}
	c := &Carousel{
		scheduler:    scheduler,
		interval:     DefaultInterval,
		resumeDelay:  DefaultResumeDelay,
		autoScroll:   true,
		itemCount:    itemCount,
		visibleCards: defaultVisibleCards,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start enables timers. Until Start is called the carousel only tracks geometry.
func (c *Carousel) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started = true
	c.reevaluate()
}

// Stop cancels any pending timer and returns to Idle.
func (c *Carousel) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started = false
	c.cancelPending()
	c.state = Idle
}

// Resize records new viewport and strip measurements.
func (c *Carousel) Resize(viewportWidth, clientWidth, scrollWidth float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.visibleCards = VisibleCardsFor(viewportWidth)
	c.clientWidth = clientWidth
	c.scrollWidth = scrollWidth
	c.maxScroll = math.Max(scrollWidth-clientWidth, 0)
	c.reevaluate()
}

// SetItemCount updates the number of cards, e.g. after a reload.
func (c *Carousel) SetItemCount(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.itemCount = n
	c.reevaluate()
}

func (c *Carousel) PointerEnter() { c.interactionStart() }
func (c *Carousel) PointerLeave() { c.interactionEnd() }
func (c *Carousel) TouchStart()   { c.interactionStart() }
func (c *Carousel) TouchEnd()     { c.interactionEnd() }

func (c *Carousel) interactionStart() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.interacting = true
	c.cancelPending()
	c.state = Paused
}

func (c *Carousel) interactionEnd() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.interacting {
		return
	}
	c.cancelPending()
	if !c.started {
		c.interacting = false
		c.reevaluate()
		return
	}
	c.schedule(c.resumeDelay, c.resumeLocked)
}

// ResumeElapsed clears the interaction flag once the resume delay has passed.
func (c *Carousel) ResumeElapsed() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resumeLocked()
}

// Tick advances one card width, or wraps to the start when already at the end.
// Ticks outside the Advancing state are ignored.
func (c *Carousel) Tick() {
	c.mu.Lock()
	pos, moved := c.tickLocked()
	c.mu.Unlock()

	if moved {
		c.notify(pos)
	}
}

func (c *Carousel) resumeLocked() (float64, bool) {
	c.cancelPending()
	c.interacting = false
	c.reevaluate()
	return c.position, false
}

func (c *Carousel) tickLocked() (float64, bool) {
	if c.state != Advancing {
		return c.position, false
	}

	c.cancelPending()
	if c.position >= c.maxScroll {
		c.position = 0
	} else {
		c.position = math.Min(c.position+c.cardWidth(), c.maxScroll)
	}
	c.schedule(c.interval, c.tickLocked)
	return c.position, true
}

func (c *Carousel) ScrollLeft() {
	c.scrollTo(func() float64 { return math.Max(c.position-c.cardWidth(), 0) })
}

func (c *Carousel) ScrollRight() {
	c.scrollTo(func() float64 { return math.Min(c.position+c.cardWidth(), c.maxScroll) })
}

// ScrollToSlide jumps to the offset proportional to slide index i.
// Out of range indexes are clamped.
func (c *Carousel) ScrollToSlide(i int) {
	c.scrollTo(func() float64 {
		total := TotalSlides(c.itemCount, c.visibleCards)
		if total == 0 {
			return 0
		}
		i = sanitizer.Clamp(i, 0, total-1)
		return c.scrollWidth / float64(total) * float64(i)
	})
}

// SetScrollPosition records a position reached by native scrolling.
func (c *Carousel) SetScrollPosition(pos float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = pos
}

func (c *Carousel) scrollTo(target func() float64) {
	c.mu.Lock()
	c.position = target()
	pos := c.position
	if c.state == Advancing {
		c.cancelPending()
		c.schedule(c.interval, c.tickLocked)
	}
	c.mu.Unlock()

	c.notify(pos)
}

func (c *Carousel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Carousel) Position() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *Carousel) VisibleCards() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visibleCards
}

func (c *Carousel) TotalSlides() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return TotalSlides(c.itemCount, c.visibleCards)
}

// CurrentSlide is the slide whose offset the position has reached.
func (c *Carousel) CurrentSlide() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := TotalSlides(c.itemCount, c.visibleCards)
	if total == 0 || c.scrollWidth <= 0 {
		return 0
	}
	slide := int(math.Floor(c.position*float64(total)/c.scrollWidth + 1e-9))
	return sanitizer.Clamp(slide, 0, total-1)
}

func (c *Carousel) CanScrollLeft() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position > 0
}

func (c *Carousel) CanScrollRight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position < c.maxScroll
}

func (c *Carousel) cardWidth() float64 {
	if c.visibleCards == 0 {
		return 0
	}
	return c.clientWidth / float64(c.visibleCards)
}

func (c *Carousel) eligible() bool {
	return c.autoScroll && c.itemCount > c.visibleCards
}

// reevaluate settles the state after any input change. Callers hold mu.
func (c *Carousel) reevaluate() {
	switch {
	case c.interacting:
		c.state = Paused
	case !c.started || !c.eligible():
		c.cancelPending()
		c.state = Idle
	case c.state != Advancing || c.pending == nil:
		c.cancelPending()
		c.state = Advancing
		c.schedule(c.interval, c.tickLocked)
	}
}

// schedule replaces the single pending timer. fire runs with mu held; a
// timer superseded by a later schedule or cancel is dropped.
func (c *Carousel) schedule(d time.Duration, fire func() (float64, bool)) {
	c.generation++
	gen := c.generation
	c.pending = c.scheduler.AfterFunc(d, func() {
		c.mu.Lock()
		if gen != c.generation {
			c.mu.Unlock()
			return
		}
		pos, moved := fire()
		c.mu.Unlock()

		if moved {
			c.notify(pos)
		}
	})
}

func (c *Carousel) cancelPending() {
	c.generation++
	if c.pending != nil {
		c.pending()
		c.pending = nil
	}
}

func (c *Carousel) notify(pos float64) {
	if c.onScroll != nil {
		c.onScroll(pos)
	}
}
