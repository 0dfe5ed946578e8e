package alsoft

// bufferload.go - format loaders (§4.3's buffer data model, §9): each
// loader decodes a whole file into an in-memory Buffer of interleaved
// float32 PCM, wiring a different decoder from the pack per format.

import (
	"io"

	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	aac "github.com/llehouerou/go-aac"

	mp3 "github.com/hajimehoshi/go-mp3"
	vorbis "github.com/jfreymuth/oggvorbis"
)

// LoadWav decodes a RIFF/WAVE file via go-audio/wav into a Buffer.
func LoadWav(r io.ReadSeeker) (*Buffer, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, newError(ParamInvalid, "LoadWav", io.ErrUnexpectedEOF)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, newError(ParamInvalid, "LoadWav", err)
	}
	return bufferFromIntBuffer(buf), nil
}

// LoadAiff decodes an AIFF/AIFC file via go-audio/aiff.
func LoadAiff(r io.ReadSeeker) (*Buffer, error) {
	dec := aiff.NewDecoder(r)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, newError(ParamInvalid, "LoadAiff", err)
	}
	return bufferFromIntBuffer(buf), nil
}

// LoadMp3 decodes an MP3 stream via hajimehoshi/go-mp3, always
// producing 16-bit stereo PCM per that decoder's fixed output format.
func LoadMp3(r io.Reader) (*Buffer, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, newError(ParamInvalid, "LoadMp3", err)
	}
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, newError(ParamInvalid, "LoadMp3", err)
	}
	data := make([]float32, len(raw)/2)
	for i := range data {
		v := int16(uint16(raw[2*i]) | uint16(raw[2*i+1])<<8)
		data[i] = float32(v) / 32768
	}
	return &Buffer{Format: FormatStereo, Channels: 2, SampleRate: dec.SampleRate(), Data: data}, nil
}

// LoadOggVorbis decodes an Ogg Vorbis stream via jfreymuth/oggvorbis.
func LoadOggVorbis(r io.Reader) (*Buffer, error) {
	data, format, err := vorbis.ReadAll(r)
	if err != nil {
		return nil, newError(ParamInvalid, "LoadOggVorbis", err)
	}
	bufFormat := FormatMono
	if format.Channels == 2 {
		bufFormat = FormatStereo
	} else {
		bufFormat = FormatMultiChannel
	}
	return &Buffer{Format: bufFormat, Channels: format.Channels, SampleRate: format.SampleRate, Data: data}, nil
}

// LoadAac decodes a raw ADTS AAC elementary stream via
// llehouerou/go-aac: SimpleInit sniffs the sample rate/channel count
// from the first ADTS header, then Decode is called repeatedly over
// the remaining bytes, advancing by FrameInfo.BytesConsumed each call
// until the stream is exhausted.
func LoadAac(raw []byte) (*Buffer, error) {
	dec := aac.NewDecoder()
	defer dec.Close()

	sampleRate, channels, err := dec.SimpleInit(raw)
	if err != nil {
		return nil, newError(ParamInvalid, "LoadAac", err)
	}

	var data []float32
	pos := 0
	for pos < len(raw) {
		out, info, err := dec.Decode(raw[pos:])
		if err != nil {
			return nil, newError(ParamInvalid, "LoadAac", err)
		}
		if info == nil || info.BytesConsumed == 0 {
			break
		}
		if samples, ok := out.([]int16); ok {
			for _, s := range samples {
				data = append(data, float32(s)/32768)
			}
		}
		pos += int(info.BytesConsumed)
	}

	bufFormat := FormatMono
	if channels == 2 {
		bufFormat = FormatStereo
	} else {
		bufFormat = FormatMultiChannel
	}
	return &Buffer{Format: bufFormat, Channels: int(channels), SampleRate: int(sampleRate), Data: data}, nil
}

// bufferFromIntBuffer converts a go-audio IntBuffer (as produced by
// both the wav and aiff decoders) into normalized float32 PCM.
func bufferFromIntBuffer(buf *audio.IntBuffer) *Buffer {
	format := FormatMono
	switch buf.Format.NumChannels {
	case 1:
		format = FormatMono
	case 2:
		format = FormatStereo
	default:
		format = FormatMultiChannel
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = 16
	}
	fullScale := float32(int(1) << uint(bitDepth-1))

	data := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		data[i] = float32(v) / fullScale
	}

	return &Buffer{
		Format:     format,
		Channels:   buf.Format.NumChannels,
		SampleRate: buf.Format.SampleRate,
		Data:       data,
	}
}
