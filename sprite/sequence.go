package sprite

const defaultFPS = 12

// FrameSequence is an ordered list of sheet regions plus playback state.
//
// Templates built by the catalog are shared read-only; game code must
// animate clones, never templates. Clone always zeroes playback state:
// an entity spawned mid-way through another entity's loop still starts
// its animation at frame 0, stopped.
type FrameSequence struct {
	frames []Region
	sheet  *ImageSheet
	fps    float64
	loop   bool

	frame    int
	elapsed  float64 // milliseconds accumulated toward the next frame
	playing  bool
	finished bool
}

// NewFrameSequence creates a stopped sequence over frames drawn from
// sheet. fps defaults to 12 if not positive.
func NewFrameSequence(sheet *ImageSheet, frames []Region, fps float64, loop bool) *FrameSequence {
	if fps <= 0 {
		fps = defaultFPS
	}
	return &FrameSequence{
		frames: frames,
		sheet:  sheet,
		fps:    fps,
		loop:   loop,
	}
}

// Sheet returns the sheet the sequence's regions belong to.
func (q *FrameSequence) Sheet() *ImageSheet { return q.sheet }

// Len returns the number of frames.
func (q *FrameSequence) Len() int { return len(q.frames) }

// FPS returns the playback rate in frames per second.
func (q *FrameSequence) FPS() float64 { return q.fps }

// Loop reports whether the sequence wraps at the end.
func (q *FrameSequence) Loop() bool { return q.loop }

// FrameDuration returns the per-frame duration in milliseconds.
func (q *FrameSequence) FrameDuration() float64 { return 1000 / q.fps }

// Playing reports whether Advance consumes time.
func (q *FrameSequence) Playing() bool { return q.playing }

// Finished reports whether a non-looping sequence has reached and
// clamped at its last frame. Looping sequences never finish.
func (q *FrameSequence) Finished() bool { return q.finished }

// Frame returns the current frame index.
func (q *FrameSequence) Frame() int { return q.frame }

// SetFrame jumps to a frame index, clamped to the valid range, and
// clears the sub-frame accumulator.
func (q *FrameSequence) SetFrame(i int) {
	if len(q.frames) == 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= len(q.frames) {
		i = len(q.frames) - 1
	}
	q.frame = i
	q.elapsed = 0
}

// Play starts or resumes playback and clears the finished flag.
func (q *FrameSequence) Play() {
	q.playing = true
	q.finished = false
}

// Pause suspends playback, preserving the frame index and accumulator.
func (q *FrameSequence) Pause() {
	q.playing = false
}

// Reset rewinds to frame 0 with a zeroed accumulator, in any state.
func (q *FrameSequence) Reset() {
	q.frame = 0
	q.elapsed = 0
	q.finished = false
}

// Stop pauses and rewinds.
func (q *FrameSequence) Stop() {
	q.Pause()
	q.Reset()
}

// Advance consumes dt milliseconds of playback. It is a no-op unless
// playing. Whole frame durations are consumed one at a time so that a
// large dt (a backgrounded window, a debugger pause) steps exactly
// floor(dt/frameDuration) frames, wrapping as many times as needed for
// looping sequences. A non-looping sequence clamps at the last frame,
// sets finished, stops, and drops any remaining time.
func (q *FrameSequence) Advance(dt float64) {
	if !q.playing || len(q.frames) == 0 {
		return
	}
	q.elapsed += dt
	d := q.FrameDuration()
	for q.elapsed >= d {
		q.elapsed -= d
		q.frame++
		if q.frame < len(q.frames) {
			continue
		}
		if q.loop {
			q.frame = 0
			continue
		}
		q.frame = len(q.frames) - 1
		q.finished = true
		q.playing = false
		q.elapsed = 0
		return
	}
}

// CurrentRegion returns the region for the current frame. Defined in
// every state.
func (q *FrameSequence) CurrentRegion() Region {
	return q.frames[q.frame]
}

// Clone returns an independent instance sharing the immutable frame list
// and owning sheet, with fresh zeroed playback state.
func (q *FrameSequence) Clone() *FrameSequence {
	return &FrameSequence{
		frames: q.frames,
		sheet:  q.sheet,
		fps:    q.fps,
		loop:   q.loop,
	}
}
