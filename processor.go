package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/schollz/progressbar/v3"
)

// Outcome is what happened to one file in a batch.
type Outcome string

const (
	OutcomeWouldRename Outcome = "would_rename"
	OutcomeRenamed     Outcome = "renamed"
	OutcomeUnchanged   Outcome = "unchanged"
	OutcomeInvalid     Outcome = "invalid"
	OutcomeFailed      Outcome = "failed"
)

// SampleFile tracks one file from scan to rename.
type SampleFile struct {
	OriginalPath string         `json:"original_path"`
	OriginalStem string         `json:"original_stem"`
	Ext          string         `json:"ext,omitempty"`
	Instrument   string         `json:"instrument,omitempty"`
	NewStem      string         `json:"new_stem,omitempty"`
	NewPath      string         `json:"new_path,omitempty"`
	Outcome      Outcome        `json:"outcome"`
	Error        string         `json:"error,omitempty"`
	Tags         []string       `json:"tags,omitempty"`
	AudioMeta    *AudioMetadata `json:"audio_metadata,omitempty"`
}

const manifestName = "manifest.json"

type RenameProcessor struct {
	config        Config
	settings      *Settings
	files         []SampleFile
	audioAnalyzer *AudioAnalyzer
	fingerprints  map[string][]int // fingerprint -> file indices
	logger        *slog.Logger
	out           io.Writer // report
	progressOut   io.Writer // progress bars
}

func NewRenameProcessor(config Config, settings *Settings, logger *slog.Logger) *RenameProcessor {
	progressOut := io.Writer(os.Stderr)
	if config.Quiet {
		progressOut = io.Discard
	}
	return &RenameProcessor{
		config:        config,
		settings:      settings,
		files:         make([]SampleFile, 0),
		audioAnalyzer: NewAudioAnalyzer(),
		fingerprints:  make(map[string][]int),
		logger:        logger,
		out:           os.Stdout,
		progressOut:   progressOut,
	}
}

// Process runs one batch. Per-file problems end up in the report; only a
// folder that can't be read is returned as an error.
func (p *RenameProcessor) Process() error {
	p.logger.Debug("scanning folder", "folder", p.config.Folder)

	if err := p.scanFiles(); err != nil {
		return errors.Wrap(err, "scanning folder")
	}
	p.logger.Debug("found files", "count", len(p.files))

	p.planFiles()

	if p.config.Analyze {
		p.analyzeFiles()
	}

	if p.config.Write {
		p.applyChanges()
	}

	p.displayReport()

	if p.config.Write && p.config.Manifest {
		if err := p.createManifest(); err != nil {
			return errors.Wrap(err, "writing manifest")
		}
	}
	return nil
}

// scanFiles lists regular files directly inside the folder. Hidden files and
// our own manifest are ignored.
func (p *RenameProcessor) scanFiles() error {
	entries, err := os.ReadDir(p.config.Folder)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() || strings.HasPrefix(name, ".") || name == manifestName {
			continue
		}
		if !p.extensionAllowed(filepath.Ext(name)) {
			continue
		}

		ext := filepath.Ext(name)
		p.files = append(p.files, SampleFile{
			OriginalPath: filepath.Join(p.config.Folder, name),
			OriginalStem: strings.TrimSuffix(name, ext),
			Ext:          ext,
		})
	}
	return nil
}

func (p *RenameProcessor) extensionAllowed(ext string) bool {
	if len(p.settings.Extensions) == 0 {
		return true
	}
	ext = strings.ToLower(ext)
	for _, allowed := range p.settings.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func (p *RenameProcessor) planFiles() {
	for i := range p.files {
		p.planFile(&p.files[i])
	}
}

func (p *RenameProcessor) planFile(sf *SampleFile) {
	newStem, inst, err := RenameStem(sf.OriginalStem, p.settings.Instruments)
	if inst != nil {
		sf.Instrument = inst.Prefix
	}

	switch {
	case errors.Is(err, ErrNoMatch), errors.Is(err, ErrNoSynthesis):
		sf.Outcome = OutcomeInvalid
		p.logger.Debug("no match", "file", sf.OriginalStem)
		return
	case err != nil:
		// alias table out of sync with the matcher; don't guess a name
		p.fail(sf, err)
		return
	case newStem == sf.OriginalStem:
		sf.Outcome = OutcomeUnchanged
		return
	}

	sf.NewStem = newStem
	sf.NewPath = filepath.Join(filepath.Dir(sf.OriginalPath), newStem+sf.Ext)
	sf.Outcome = OutcomeWouldRename
	p.logger.Debug("planned rename", "file", sf.OriginalStem, "instrument", sf.Instrument, "new", newStem)
}

func (p *RenameProcessor) fail(sf *SampleFile, err error) {
	sf.Outcome = OutcomeFailed
	sf.Error = err.Error()
	p.logger.Error("file failed", "file", sf.OriginalStem, "error", err)
}

// analyzeFiles reads audio metadata and tags files that share a fingerprint.
func (p *RenameProcessor) analyzeFiles() {
	if len(p.files) == 0 {
		return
	}

	bar := p.newBar(len(p.files), "Analyzing samples")
	for i := range p.files {
		sf := &p.files[i]
		meta, err := p.audioAnalyzer.AnalyzeFile(sf.OriginalPath)
		bar.Add(1)
		if err != nil {
			p.logger.Debug("skipping analysis", "file", sf.OriginalStem, "error", err)
			continue
		}

		sf.AudioMeta = meta
		sf.Tags = append(sf.Tags, p.audioAnalyzer.GenerateAudioTags(meta)...)
		if meta.Fingerprint != "" {
			p.fingerprints[meta.Fingerprint] = append(p.fingerprints[meta.Fingerprint], i)
		}
	}
	bar.Finish()

	p.detectDuplicates()
}

// detectDuplicates tags files with matching fingerprints
func (p *RenameProcessor) detectDuplicates() {
	groups := 0
	for _, indices := range p.fingerprints {
		if len(indices) < 2 {
			continue
		}
		groups++
		for _, idx := range indices {
			p.files[idx].Tags = append(p.files[idx].Tags, "duplicate")
		}
	}
	if groups > 0 {
		p.logger.Warn("possible duplicate samples", "groups", groups)
	}
}

// applyChanges moves every planned file, one at a time. The existence check
// in deconflictPath and the move itself are not atomic, so nothing else may
// touch the folder while this runs.
func (p *RenameProcessor) applyChanges() {
	total := 0
	for _, sf := range p.files {
		if sf.Outcome == OutcomeWouldRename {
			total++
		}
	}
	if total == 0 {
		return
	}

	bar := p.newBar(total, "Renaming samples")
	for i := range p.files {
		sf := &p.files[i]
		if sf.Outcome != OutcomeWouldRename {
			continue
		}
		p.applyFile(sf)
		bar.Add(1)
	}
	bar.Finish()
}

func (p *RenameProcessor) applyFile(sf *SampleFile) {
	dst, err := deconflictPath(sf.NewPath, p.settings.MaxConflicts)
	if err != nil {
		p.fail(sf, err)
		return
	}
	if err := renameFile(sf.OriginalPath, dst); err != nil {
		p.fail(sf, err)
		return
	}

	sf.NewPath = dst
	sf.NewStem = strings.TrimSuffix(filepath.Base(dst), sf.Ext)
	sf.Outcome = OutcomeRenamed
}

func (p *RenameProcessor) newBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.progressOut),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(p.progressOut)
		}),
	)
}

func (p *RenameProcessor) createManifest() error {
	manifestPath := filepath.Join(p.config.Folder, manifestName)

	manifest := map[string]interface{}{
		"total_files": len(p.files),
		"outcomes":    p.outcomeCounts(),
		"files":       p.files,
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(manifestPath, data, 0644); err != nil {
		return err
	}

	p.logger.Info("wrote manifest", "path", manifestPath)
	return nil
}

func (p *RenameProcessor) outcomeCounts() map[Outcome]int {
	counts := make(map[Outcome]int)
	for _, sf := range p.files {
		counts[sf.Outcome]++
	}
	return counts
}
