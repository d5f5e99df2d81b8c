package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dhowden/tag"
	"github.com/go-audio/wav"
)

type AudioMetadata struct {
	Duration        time.Duration `json:"duration,omitempty"`
	SampleRate      int           `json:"sample_rate,omitempty"`
	Channels        int           `json:"channels,omitempty"`
	BitDepth        int           `json:"bit_depth,omitempty"`
	Format          string        `json:"format,omitempty"`
	Title           string        `json:"title,omitempty"`
	Artist          string        `json:"artist,omitempty"`
	Genre           string        `json:"genre,omitempty"`
	HasEmbeddedTags bool          `json:"has_embedded_tags,omitempty"`

	// Fingerprint flags samples that are probably the same recording under two names.
	Fingerprint string `json:"fingerprint,omitempty"`
}

type AudioAnalyzer struct {
}

func NewAudioAnalyzer() *AudioAnalyzer {
	return &AudioAnalyzer{}
}

// AnalyzeFile reads whatever metadata the file offers. Missing tags are not
// an error; an unreadable file is.
func (aa *AudioAnalyzer) AnalyzeFile(filePath string) (*AudioMetadata, error) {
	meta := &AudioMetadata{}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "opening sample")
	}
	defer file.Close()

	_ = aa.readEmbeddedTags(file, meta) // untagged samples are the norm

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "rewinding sample")
	}

	ext := strings.ToLower(filepath.Ext(filePath))
	if ext == ".wav" || ext == ".wave" {
		if err := aa.analyzeWAV(file, meta); err != nil {
			return nil, errors.Wrap(err, "reading WAV header")
		}
	} else if meta.Format == "" && ext != "" {
		meta.Format = strings.ToUpper(ext[1:])
	}

	meta.Fingerprint = aa.generateFingerprint(meta)
	return meta, nil
}

func (aa *AudioAnalyzer) readEmbeddedTags(r io.ReadSeeker, meta *AudioMetadata) error {
	m, err := tag.ReadFrom(r)
	if err != nil {
		return err
	}

	meta.HasEmbeddedTags = true
	meta.Title = m.Title()
	meta.Artist = m.Artist()
	meta.Genre = m.Genre()
	if ft := m.FileType(); ft != tag.UnknownFileType {
		meta.Format = string(ft)
	}
	return nil
}

func (aa *AudioAnalyzer) analyzeWAV(r io.ReadSeeker, meta *AudioMetadata) error {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return errors.New("invalid WAV file")
	}

	meta.Format = "WAV"
	meta.SampleRate = int(decoder.SampleRate)
	meta.Channels = int(decoder.NumChans)
	meta.BitDepth = int(decoder.BitDepth)

	// Duration() on the decoder counts the header bytes too; use the PCM payload.
	frameSize := int64(decoder.BitDepth/8) * int64(decoder.NumChans)
	if err := decoder.FwdToPCM(); err == nil && frameSize > 0 && decoder.SampleRate > 0 {
		frames := decoder.PCMLen() / frameSize
		meta.Duration = time.Duration(frames) * time.Second / time.Duration(decoder.SampleRate)
	}
	return nil
}

// GenerateAudioTags summarises metadata for the preview and manifest.
func (aa *AudioAnalyzer) GenerateAudioTags(meta *AudioMetadata) []string {
	tags := []string{}

	if meta.Duration > 0 {
		switch {
		case meta.Duration < time.Second:
			tags = append(tags, "one-shot")
		case meta.Duration < 30*time.Second:
			tags = append(tags, "short")
		default:
			tags = append(tags, "long")
		}
	}

	switch {
	case meta.Channels == 1:
		tags = append(tags, "mono")
	case meta.Channels == 2:
		tags = append(tags, "stereo")
	case meta.Channels > 2:
		tags = append(tags, fmt.Sprintf("%dch", meta.Channels))
	}

	if meta.SampleRate > 0 {
		tags = append(tags, fmt.Sprintf("%dkHz", meta.SampleRate/1000))
	}
	if meta.BitDepth > 0 {
		tags = append(tags, fmt.Sprintf("%dbit", meta.BitDepth))
	}

	if meta.HasEmbeddedTags && meta.Genre != "" {
		tags = append(tags, "genre:"+strings.ToLower(meta.Genre))
	}

	return tags
}

// generateFingerprint hashes the properties that survive a rename. Two files
// with the same fingerprint are very likely copies of one sample.
func (aa *AudioAnalyzer) generateFingerprint(meta *AudioMetadata) string {
	fpData := fmt.Sprintf("%d|%d|%d|%d|%s|%s",
		meta.SampleRate,
		meta.Channels,
		meta.BitDepth,
		meta.Duration.Milliseconds(),
		meta.Format,
		meta.Title,
	)

	hash := sha256.Sum256([]byte(fpData))
	return hex.EncodeToString(hash[:16])
}
