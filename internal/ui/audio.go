package ui

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SoundType represents different sound effects.
type SoundType int

const (
	SoundMove SoundType = iota
	SoundCapture
	SoundChain // Multi-jump
	SoundPromote
	SoundInvalid
	SoundGameEnd
)

const sampleRate = 44100

// AudioManager plays procedurally generated sound effects.
type AudioManager struct {
	context *audio.Context
	sounds  map[SoundType][]byte
	enabled bool
	volume  float64
}

// NewAudioManager creates an audio manager. Only one may exist per process.
func NewAudioManager() *AudioManager {
	am := &AudioManager{
		context: audio.NewContext(sampleRate),
		enabled: true,
		volume:  0.5,
	}
	am.sounds = map[SoundType][]byte{
		SoundMove:    synth(0.08, click(440, 0.3)),
		SoundCapture: synth(0.12, click(330, 0.5)),
		SoundChain:   concat(synth(0.07, click(330, 0.5)), silence(0.04), synth(0.07, click(370, 0.45)), silence(0.04), synth(0.09, click(415, 0.4))),
		SoundPromote: concat(synth(0.09, tone(523.25, 0.35)), synth(0.09, tone(659.25, 0.35)), synth(0.16, tone(783.99, 0.35))),
		SoundInvalid: synth(0.1, buzz(150, 0.3)),
		SoundGameEnd: synth(0.4, chord(0.5, 261.63, 329.63, 392.00)),
	}
	return am
}

// voice returns a sample in [-1, 1] at time t seconds, progress in [0, 1).
type voice func(t, progress float64) float64

// synth renders a voice to 16-bit little-endian stereo PCM.
func synth(duration float64, v voice) []byte {
	samples := int(sampleRate * duration)
	data := make([]byte, samples*4)
	for i := 0; i < samples; i++ {
		t := float64(i) / sampleRate
		s := v(t, t/duration)
		s = math.Max(-1, math.Min(1, s))
		val := int16(s * 32767)
		data[i*4] = byte(val)
		data[i*4+1] = byte(val >> 8)
		data[i*4+2] = byte(val)
		data[i*4+3] = byte(val >> 8)
	}
	return data
}

func silence(duration float64) []byte {
	return make([]byte, int(sampleRate*duration)*4)
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// click is a wooden knock: a decaying sine with a little noise.
func click(freq, amplitude float64) voice {
	return func(t, _ float64) float64 {
		noise := (math.Sin(t*sampleRate*0.3) + math.Sin(t*sampleRate*0.7)) * 0.3
		return (math.Sin(2*math.Pi*freq*t) + noise) * math.Exp(-t*30) * amplitude
	}
}

// tone has a short attack and a linear decay.
func tone(freq, amplitude float64) voice {
	return func(t, p float64) float64 {
		env := 1 - (p-0.1)/0.9
		if p < 0.1 {
			env = p / 0.1
		}
		return math.Sin(2*math.Pi*freq*t) * env * amplitude
	}
}

func buzz(freq, amplitude float64) voice {
	return func(t, p float64) float64 {
		wave := math.Sin(2*math.Pi*freq*t) + 0.3*math.Sin(4*math.Pi*freq*t)
		return wave * (1 - p) * amplitude * 0.5
	}
}

func chord(amplitude float64, freqs ...float64) voice {
	return func(t, p float64) float64 {
		env := 1.0
		switch {
		case p < 0.1:
			env = p / 0.1
		case p > 0.7:
			env = (1 - p) / 0.3
		}
		sum := 0.0
		for _, f := range freqs {
			sum += math.Sin(2 * math.Pi * f * t)
		}
		return sum / float64(len(freqs)) * env * amplitude
	}
}

// Play plays a sound effect. Overlapping calls mix.
func (am *AudioManager) Play(sound SoundType) {
	if !am.enabled {
		return
	}
	data, ok := am.sounds[sound]
	if !ok {
		return
	}
	player := am.context.NewPlayerFromBytes(data)
	player.SetVolume(am.volume)
	player.Play()
}

// SetEnabled enables or disables audio.
func (am *AudioManager) SetEnabled(enabled bool) {
	am.enabled = enabled
}

// IsEnabled returns whether audio is enabled.
func (am *AudioManager) IsEnabled() bool {
	return am.enabled
}
