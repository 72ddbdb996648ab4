package carousel

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"
)

type fakeTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
}

type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, fn func()) func() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &fakeTimer{delay: d, fn: fn}
	s.timers = append(s.timers, t)
	return func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		wasActive := !t.stopped
		t.stopped = true
		return wasActive
	}
}

// pending returns the live timers.
func (s *fakeScheduler) pending() []*fakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*fakeTimer
	for _, t := range s.timers {
		if !t.stopped {
			out = append(out, t)
		}
	}
	return out
}

// fire runs the single live timer and fails if there is not exactly one.
func (s *fakeScheduler) fire(t *testing.T) time.Duration {
	t.Helper()

	live := s.pending()
	if len(live) != 1 {
		t.Fatalf("expected exactly one pending timer, got %d", len(live))
	}
	timer := live[0]

	s.mu.Lock()
	timer.stopped = true
	s.mu.Unlock()

	timer.fn()
	return timer.delay
}

// newWideCarousel builds a 9-card carousel on a wide screen: 4 visible cards,
// 300px per card, max scroll 1500px.
func newWideCarousel(opts ...Option) (*Carousel, *fakeScheduler) {
	sched := &fakeScheduler{}
	c := New(9, sched, opts...)
	c.Resize(1280, 1200, 2700)
	return c, sched
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestVisibleCardsFor(t *testing.T) {
	tests := []struct {
		width float64
		want  int
	}{
		{375, 1},
		{767, 1},
		{768, 2},
		{1279, 2},
		{1280, 4},
		{1920, 4},
	}

	for _, tt := range tests {
		if got := VisibleCardsFor(tt.width); got != tt.want {
			t.Errorf("VisibleCardsFor(%v) = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestTotalSlides(t *testing.T) {
	tests := []struct {
		items, visible, want int
	}{
		{9, 4, 3},
		{8, 4, 2},
		{1, 4, 1},
		{0, 4, 0},
		{5, 1, 5},
	}

	for _, tt := range tests {
		if got := TotalSlides(tt.items, tt.visible); got != tt.want {
			t.Errorf("TotalSlides(%d, %d) = %d, want %d", tt.items, tt.visible, got, tt.want)
		}
	}
}

func TestCarousel_ScrollToSlide(t *testing.T) {
	c, _ := newWideCarousel()

	if got := c.TotalSlides(); got != 3 {
		t.Fatalf("TotalSlides() = %d, want 3", got)
	}

	c.ScrollToSlide(2)
	if got, want := c.Position(), 2.0/3.0*2700; !almostEqual(got, want) {
		t.Errorf("Position() after ScrollToSlide(2) = %v, want %v", got, want)
	}
	if got := c.CurrentSlide(); got != 2 {
		t.Errorf("CurrentSlide() = %d, want 2", got)
	}

	c.ScrollToSlide(99)
	if got := c.CurrentSlide(); got != 2 {
		t.Errorf("CurrentSlide() after out of range jump = %d, want 2", got)
	}

	c.ScrollToSlide(0)
	if got := c.Position(); got != 0 {
		t.Errorf("Position() after ScrollToSlide(0) = %v, want 0", got)
	}
}

func TestCarousel_ManualScrolling(t *testing.T) {
	c, _ := newWideCarousel()

	if c.CanScrollLeft() {
		t.Error("CanScrollLeft() at start should be false")
	}
	if !c.CanScrollRight() {
		t.Error("CanScrollRight() at start should be true")
	}

	c.ScrollLeft()
	if got := c.Position(); got != 0 {
		t.Errorf("ScrollLeft() at start moved to %v, want 0", got)
	}

	for i := 0; i < 10; i++ {
		c.ScrollRight()
	}
	if got := c.Position(); got != 1500 {
		t.Errorf("ScrollRight() past the end = %v, want clamp at 1500", got)
	}
	if c.CanScrollRight() {
		t.Error("CanScrollRight() at max should be false")
	}

	c.ScrollLeft()
	if got := c.Position(); got != 1200 {
		t.Errorf("ScrollLeft() = %v, want 1200", got)
	}
}

func TestCarousel_AutoAdvance(t *testing.T) {
	var scrolled []float64
	c, sched := newWideCarousel(WithOnScroll(func(p float64) { scrolled = append(scrolled, p) }))

	if got := c.State(); got != Idle {
		t.Fatalf("State() before Start = %v, want idle", got)
	}

	c.Start()
	if got := c.State(); got != Advancing {
		t.Fatalf("State() after Start = %v, want advancing", got)
	}

	want := []float64{300, 600, 900, 1200, 1500, 0, 300}
	for i, w := range want {
		if d := sched.fire(t); d != DefaultInterval {
			t.Fatalf("tick %d scheduled after %v, want %v", i, d, DefaultInterval)
		}
		if got := c.Position(); got != w {
			t.Fatalf("tick %d position = %v, want %v", i, got, w)
		}
	}

	if len(scrolled) != len(want) {
		t.Errorf("OnScroll called %d times, want %d", len(scrolled), len(want))
	}
}

func TestCarousel_PauseAndResume(t *testing.T) {
	c, sched := newWideCarousel()
	c.Start()
	sched.fire(t)

	c.PointerEnter()
	if got := c.State(); got != Paused {
		t.Fatalf("State() after PointerEnter = %v, want paused", got)
	}
	if n := len(sched.pending()); n != 0 {
		t.Fatalf("pending timers while hovering = %d, want 0", n)
	}

	c.Tick()
	if got := c.Position(); got != 300 {
		t.Errorf("Tick() while interacting moved to %v, want 300", got)
	}

	c.PointerLeave()
	if got := c.State(); got != Paused {
		t.Errorf("State() right after PointerLeave = %v, want paused", got)
	}
	c.Tick()
	if got := c.Position(); got != 300 {
		t.Errorf("Tick() during resume delay moved to %v, want 300", got)
	}

	if d := sched.fire(t); d != DefaultResumeDelay {
		t.Fatalf("resume scheduled after %v, want %v", d, DefaultResumeDelay)
	}
	if got := c.State(); got != Advancing {
		t.Fatalf("State() after resume = %v, want advancing", got)
	}

	sched.fire(t)
	if got := c.Position(); got != 600 {
		t.Errorf("first tick after resume = %v, want exactly one card width to 600", got)
	}
}

func TestCarousel_TouchCancelsPendingResume(t *testing.T) {
	c, sched := newWideCarousel()
	c.Start()

	c.TouchStart()
	c.TouchEnd()
	resume := sched.pending()
	if len(resume) != 1 {
		t.Fatalf("pending after TouchEnd = %d, want 1", len(resume))
	}

	c.TouchStart()
	resume[0].fn()

	if got := c.State(); got != Paused {
		t.Errorf("State() = %v, want paused: a superseded resume must not unpause", got)
	}
}

func TestCarousel_WrapsAfterInteraction(t *testing.T) {
	c, sched := newWideCarousel()
	c.Start()
	c.ScrollToSlide(2)

	c.PointerEnter()
	c.PointerLeave()
	sched.fire(t)
	sched.fire(t)

	if got := c.Position(); got != 0 {
		t.Errorf("tick at max scroll = %v, want wrap to 0", got)
	}
}

func TestCarousel_IdleWhenEverythingFits(t *testing.T) {
	tests := []struct {
		name  string
		items int
		opts  []Option
	}{
		{"fewer items than visible cards", 3, nil},
		{"exactly the visible cards", 4, nil},
		{"auto scroll disabled", 9, []Option{WithAutoScroll(false)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sched := &fakeScheduler{}
			c := New(tt.items, sched, tt.opts...)
			c.Resize(1280, 1200, 1200)
			c.Start()

			if got := c.State(); got != Idle {
				t.Errorf("State() = %v, want idle", got)
			}
			if n := len(sched.pending()); n != 0 {
				t.Errorf("pending timers = %d, want 0", n)
			}
		})
	}
}

func TestCarousel_ResizeChangesEligibility(t *testing.T) {
	sched := &fakeScheduler{}
	c := New(3, sched)
	c.Resize(1280, 1200, 1200)
	c.Start()
	if got := c.State(); got != Idle {
		t.Fatalf("State() wide = %v, want idle", got)
	}

	c.Resize(375, 375, 1125)
	if got := c.VisibleCards(); got != 1 {
		t.Fatalf("VisibleCards() = %d, want 1", got)
	}
	if got := c.State(); got != Advancing {
		t.Fatalf("State() narrow = %v, want advancing", got)
	}
	if n := len(sched.pending()); n != 1 {
		t.Errorf("pending timers = %d, want 1", n)
	}
}

func TestCarousel_ManualScrollRestartsInterval(t *testing.T) {
	c, sched := newWideCarousel()
	c.Start()
	first := sched.pending()

	c.ScrollRight()
	if !first[0].stopped {
		t.Error("manual scroll should cancel the pending tick")
	}
	if n := len(sched.pending()); n != 1 {
		t.Errorf("pending timers = %d, want 1", n)
	}

	first[0].fn()
	if got := c.Position(); got != 300 {
		t.Errorf("stale tick moved carousel to %v, want 300", got)
	}
}

func TestCarousel_Stop(t *testing.T) {
	c, sched := newWideCarousel()
	c.Start()
	c.Stop()

	if got := c.State(); got != Idle {
		t.Errorf("State() after Stop = %v, want idle", got)
	}
	if n := len(sched.pending()); n != 0 {
		t.Errorf("pending timers after Stop = %d, want 0", n)
	}
}

func TestRun_RealTimer(t *testing.T) {
	moved := make(chan float64, 1)
	c := New(9, TimerScheduler{},
		WithInterval(5*time.Millisecond),
		WithOnScroll(func(p float64) {
			select {
			case moved <- p:
			default:
			}
		}),
	)
	c.Resize(1280, 1200, 2700)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		Run(ctx, c)
		close(done)
	}()

	select {
	case p := <-moved:
		if p != 300 {
			t.Errorf("first tick position = %v, want 300", p)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("carousel never advanced")
	}

	cancel()
	<-done
	if got := c.State(); got != Idle {
		t.Errorf("State() after Run returns = %v, want idle", got)
	}
}
