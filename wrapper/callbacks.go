package wrapper

import "unsafe"

// Host callbacks in Go form. The cgo layer adapts the host's C function
// pointers to these; a nil func means the host withdrew the callback.
type (
	// EnvironmentFunc is retro_environment_t.
	EnvironmentFunc func(cmd uint32, data unsafe.Pointer) bool

	// VideoRefreshFunc is retro_video_refresh_t. data is nil for a dupe.
	VideoRefreshFunc func(data []byte, width, height uint, pitch uintptr)

	// AudioSampleFunc is retro_audio_sample_t.
	AudioSampleFunc func(left, right int16)

	// AudioSampleBatchFunc is retro_audio_sample_batch_t. samples holds
	// interleaved stereo frames; it returns the frames consumed.
	AudioSampleBatchFunc func(samples []int16) uint

	// InputPollFunc is retro_input_poll_t.
	InputPollFunc func()

	// InputStateFunc is retro_input_state_t.
	InputStateFunc func(port, device, index, id uint) int16
)

// slot holds one host callback. registered records that the matching
// retro_set_* entry point was called at all, even with nil.
type slot[T any] struct {
	fn         T
	registered bool
	present    bool
}

func (s *slot[T]) set(fn T, present bool) {
	s.fn = fn
	s.present = present
	s.registered = true
}

// get returns the callback and whether it can be called.
func (s *slot[T]) get() (T, bool) {
	return s.fn, s.present
}

// registry holds the per-frame host callbacks.
type registry struct {
	video       slot[VideoRefreshFunc]
	audioSample slot[AudioSampleFunc]
	audioBatch  slot[AudioSampleBatchFunc]
	inputPoll   slot[InputPollFunc]
	inputState  slot[InputStateFunc]
}

// ready reports whether every callback run needs has been registered. A
// registered nil still counts; its use is skipped.
func (r *registry) ready() bool {
	return r.video.registered &&
		r.inputPoll.registered &&
		r.inputState.registered &&
		(r.audioSample.registered || r.audioBatch.registered)
}

func (r *registry) pollInput() {
	if fn, ok := r.inputPoll.get(); ok {
		fn()
	}
}

func (r *registry) inputStateOf(port, device, index, id uint) int16 {
	if fn, ok := r.inputState.get(); ok {
		return fn(port, device, index, id)
	}
	return 0
}

func (r *registry) refreshVideo(data []byte, width, height uint, pitch uintptr) bool {
	if fn, ok := r.video.get(); ok {
		fn(data, width, height, pitch)
		return true
	}
	return false
}

// writeAudio hands interleaved stereo samples to the host, preferring the
// batch callback.
func (r *registry) writeAudio(samples []int16) {
	if len(samples) < 2 {
		return
	}
	if fn, ok := r.audioBatch.get(); ok {
		for len(samples) >= 2 {
			n := fn(samples)
			if n == 0 {
				return
			}
			consumed := int(n) * 2
			if consumed >= len(samples) {
				return
			}
			samples = samples[consumed:]
		}
		return
	}
	if fn, ok := r.audioSample.get(); ok {
		for i := 0; i+1 < len(samples); i += 2 {
			fn(samples[i], samples[i+1])
		}
	}
}
