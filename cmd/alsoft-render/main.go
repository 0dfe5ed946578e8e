package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/Kiku-git/openal-soft"
)

func main() {
	outFile := flag.String("o", "render.wav", "Output WAV file")
	seconds := flag.Float64("seconds", 2.0, "Duration to render")
	sampleRate := flag.Int("rate", 44100, "Output sample rate")
	layoutName := flag.String("layout", "stereo", "Output layout: mono, stereo, quad, 5.1, 7.1")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: alsoft-render [options]\n\nRenders a single test source at a fixed position through the mixing pipeline to a WAV file.\n\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	layout, err := parseLayout(*layoutName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := render(*outFile, *sampleRate, layout, *seconds); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("wrote %s\n", *outFile)
}

func parseLayout(name string) (alsoft.ChannelLayout, error) {
	switch name {
	case "mono":
		return alsoft.LayoutMono, nil
	case "stereo":
		return alsoft.LayoutStereo, nil
	case "quad":
		return alsoft.LayoutQuad, nil
	case "5.1":
		return alsoft.Layout51, nil
	case "7.1":
		return alsoft.Layout71, nil
	default:
		return 0, fmt.Errorf("unknown layout %q", name)
	}
}

func render(outPath string, sampleRate int, layout alsoft.ChannelLayout, seconds float64) error {
	device := alsoft.NewDevice(sampleRate, layout, alsoft.SampleInt16, 32)
	ctx := alsoft.NewContext(device)

	src := makeToneBuffer(sampleRate, 440, 1.0)
	queue := &alsoft.BufferQueueItem{Buffer: src, Looping: true}

	props := alsoft.DefaultVoiceProps()
	props.Position = alsoft.Vec3{X: 3, Y: 0, Z: -3}
	props.RefDistance = 1
	props.MaxDistance = 50
	props.RolloffFactor = 1

	sourceID := ctx.NewSourceID()
	if !ctx.Play(sourceID, queue, &props) {
		return fmt.Errorf("no voices available")
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	backend := alsoft.NewWavBackend(f, sampleRate, device.Channels, 16)
	if err := backend.Start(ctx); err != nil {
		return err
	}
	defer backend.Close()

	totalFrames := int(seconds * float64(sampleRate))
	quanta := (totalFrames + alsoft.BUFFERSIZE - 1) / alsoft.BUFFERSIZE
	return backend.RenderQuanta(quanta)
}

// makeToneBuffer synthesizes a mono sine wave buffer for the demo.
func makeToneBuffer(sampleRate int, freqHz, seconds float64) *alsoft.Buffer {
	n := int(float64(sampleRate) * seconds)
	data := make([]float32, n)
	for i := range data {
		t := float64(i) / float64(sampleRate)
		data[i] = float32(math.Sin(2*math.Pi*freqHz*t)) * 0.5
	}
	return &alsoft.Buffer{Format: alsoft.FormatMono, Channels: 1, SampleRate: sampleRate, Data: data}
}
