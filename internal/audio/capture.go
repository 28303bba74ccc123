package audio

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gen2brain/malgo"
)

// Source is the consumer-side view of a capture stream: drain whatever has
// been buffered since the last call, at SampleRate().
type Source interface {
	Drain() []int16
	SampleRate() int
}

// Config for microphone capture.
type Config struct {
	Device         string        // substring match on device name, empty = default
	BlockDuration  time.Duration // callback period
	BufferDuration time.Duration // bound on buffered audio between drains
}

func DefaultConfig() Config {
	return Config{
		BlockDuration:  250 * time.Millisecond,
		BufferDuration: 10 * time.Second,
	}
}

// Capture owns the microphone stream. The device runs at its native sample
// rate, mono s16; the data callback appends into a bounded Buffer and
// returns immediately. Transcription never happens on the device thread.
type Capture struct {
	config Config

	mu      sync.Mutex
	ctx     *malgo.AllocatedContext
	device  *malgo.Device
	buffer  *Buffer
	rate    int
	name    string
	running bool
}

func NewCapture(config Config) *Capture {
	if config.BlockDuration <= 0 {
		config.BlockDuration = 250 * time.Millisecond
	}
	if config.BufferDuration <= 0 {
		config.BufferDuration = 10 * time.Second
	}
	return &Capture{config: config}
}

func NewDefaultCapture() *Capture { return NewCapture(DefaultConfig()) }

// Start opens the default input device. Failure here is fatal to the
// caller; there is no silent retry.
func (c *Capture) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return fmt.Errorf("already capturing")
	}

	mctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return fmt.Errorf("init audio context: %w", err)
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceConfig.Capture.Format = malgo.FormatS16
	deviceConfig.Capture.Channels = 1
	deviceConfig.SampleRate = 0 // 0 = device native rate
	deviceConfig.PeriodSizeInMilliseconds = uint32(c.config.BlockDuration.Milliseconds())

	name := "default"
	if c.config.Device != "" {
		info, err := findDevice(mctx, c.config.Device)
		if err != nil {
			_ = mctx.Uninit()
			return err
		}
		deviceConfig.Capture.DeviceID = info.ID.Pointer()
		name = info.Name()
	}

	// The buffer is created once the device reports its actual rate, so the
	// callback closes over a pointer that is filled in before Start.
	var buffer *Buffer

	callbacks := malgo.DeviceCallbacks{
		Data: func(outputSamples, inputSamples []byte, frameCount uint32) {
			if buffer != nil {
				buffer.Append(decodeS16LE(inputSamples))
			}
		},
	}

	device, err := malgo.InitDevice(mctx.Context, deviceConfig, callbacks)
	if err != nil {
		_ = mctx.Uninit()
		return fmt.Errorf("open input device: %w", err)
	}

	rate := int(device.SampleRate())
	if rate <= 0 {
		rate = 44100
	}
	buffer = NewBuffer(rate, c.config.BufferDuration)

	if err := device.Start(); err != nil {
		device.Uninit()
		_ = mctx.Uninit()
		return fmt.Errorf("start input device: %w", err)
	}

	if name == "default" {
		name = defaultDeviceName(mctx)
	}

	c.ctx = mctx
	c.device = device
	c.buffer = buffer
	c.rate = rate
	c.name = name
	c.running = true

	log.Printf("capture: input device %q at %d Hz, %v blocks", c.name, c.rate, c.config.BlockDuration)
	return nil
}

// Stop tears the stream down. Safe to call more than once; every exit path
// of the listener goes through here so the device is always released.
func (c *Capture) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return
	}
	c.running = false

	if c.device != nil {
		c.device.Stop()
		c.device.Uninit()
		c.device = nil
	}
	if c.ctx != nil {
		_ = c.ctx.Uninit()
		c.ctx = nil
	}
	log.Printf("capture: stopped")
}

func (c *Capture) Drain() []int16 {
	c.mu.Lock()
	buffer := c.buffer
	c.mu.Unlock()
	if buffer == nil {
		return nil
	}
	return buffer.Drain()
}

// SampleRate reports the device's native rate. Valid after Start.
func (c *Capture) SampleRate() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rate
}

// DeviceName reports the capture device name for diagnostics.
func (c *Capture) DeviceName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.name
}

func (c *Capture) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// findDevice matches the configured name as a case-insensitive substring
// of a capture device name.
func findDevice(mctx *malgo.AllocatedContext, want string) (malgo.DeviceInfo, error) {
	infos, err := mctx.Devices(malgo.Capture)
	if err != nil {
		return malgo.DeviceInfo{}, fmt.Errorf("enumerate capture devices: %w", err)
	}
	for _, info := range infos {
		if strings.Contains(strings.ToLower(info.Name()), strings.ToLower(want)) {
			return info, nil
		}
	}
	return malgo.DeviceInfo{}, fmt.Errorf("no capture device matching %q", want)
}

func defaultDeviceName(mctx *malgo.AllocatedContext) string {
	infos, err := mctx.Devices(malgo.Capture)
	if err != nil || len(infos) == 0 {
		return "default"
	}
	for _, info := range infos {
		if info.IsDefault != 0 {
			return info.Name()
		}
	}
	return infos[0].Name()
}

// decodeS16LE converts raw little-endian s16 bytes from the device callback
// into samples. A trailing odd byte is ignored.
func decodeS16LE(data []byte) []int16 {
	samples := make([]int16, len(data)/2)
	for i := range samples {
		samples[i] = int16(data[2*i]) | int16(data[2*i+1])<<8
	}
	return samples
}
