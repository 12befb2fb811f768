package projector

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period before a search term is committed.
const DefaultDebounce = 350 * time.Millisecond

// Debouncer delays a value until no new input arrived for the quiet period.
// Every Input cancels the pending one; a value equal to the last emitted one is dropped.
type Debouncer struct {
	delay time.Duration
	emit  func(string)

	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64
	last    string
	emitted bool
	stopped bool
}

func NewDebouncer(delay time.Duration, emit func(string)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay, emit: emit}
}

// Input arms (or re-arms) the timer with v.
func (d *Debouncer) Input(v string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.seq++
	seq := d.seq
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() { d.fire(seq, v) })
}

func (d *Debouncer) fire(seq uint64, v string) {
	d.mu.Lock()
	if seq != d.seq || d.stopped || (d.emitted && v == d.last) {
		d.mu.Unlock()
		return
	}
	d.last = v
	d.emitted = true
	d.mu.Unlock()
	d.emit(v)
}

// Commit records v as emitted by a path that bypassed the quiet period, such as
// a direct search. Any pending input is discarded.
func (d *Debouncer) Commit(v string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
	}
	d.last = v
	d.emitted = true
}

// Stop discards any pending input; later inputs are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}
