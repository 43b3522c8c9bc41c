package speech

import (
	"encoding/binary"
	"fmt"
	"os"
)

// writeWAV wraps little-endian PCM samples in a RIFF/WAVE container
func writeWAV(path string, pcm []byte, sampleRate, channels, bitsPerSample int) error {
	if len(pcm) == 0 {
		return fmt.Errorf("no audio samples")
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	blockAlign := channels * bitsPerSample / 8
	header := struct {
		ChunkID       [4]byte
		ChunkSize     uint32
		Format        [4]byte
		Subchunk1ID   [4]byte
		Subchunk1Size uint32
		AudioFormat   uint16
		NumChannels   uint16
		SampleRate    uint32
		ByteRate      uint32
		BlockAlign    uint16
		BitsPerSample uint16
		Subchunk2ID   [4]byte
		Subchunk2Size uint32
	}{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     uint32(36 + len(pcm)),
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1,
		NumChannels:   uint16(channels),
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate * blockAlign),
		BlockAlign:    uint16(blockAlign),
		BitsPerSample: uint16(bitsPerSample),
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: uint32(len(pcm)),
	}

	if err := binary.Write(f, binary.LittleEndian, header); err != nil {
		return err
	}
	if _, err := f.Write(pcm); err != nil {
		return err
	}
	return f.Close()
}
