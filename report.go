package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
)

// displayReport prints renames first, then invalid and failed files, then a
// one-line summary.
func (p *RenameProcessor) displayReport() {
	label := "Would rename:"
	if p.config.Write {
		label = "Wrote:"
	}

	for _, sf := range p.files {
		if sf.Outcome != OutcomeRenamed && sf.Outcome != OutcomeWouldRename {
			continue
		}
		fmt.Fprintf(p.out, "%s %s -> %s\n", color.GreenString(label), sf.OriginalStem, sf.NewStem)
		if line := describeAudio(sf); line != "" {
			fmt.Fprintf(p.out, "    %s\n", line)
		}
	}

	for _, sf := range p.files {
		if sf.Outcome == OutcomeInvalid {
			fmt.Fprintf(p.out, "%s %s\n", color.YellowString("invalid name"), sf.OriginalStem)
		}
	}

	for _, sf := range p.files {
		if sf.Outcome == OutcomeFailed {
			fmt.Fprintf(p.out, "%s %s: %s\n", color.RedString("failed"), sf.OriginalStem, sf.Error)
		}
	}

	counts := p.outcomeCounts()
	renamed, verb := counts[OutcomeRenamed], "renamed"
	if !p.config.Write {
		renamed, verb = counts[OutcomeWouldRename], "would rename"
	}
	fmt.Fprintf(p.out, "\n%d %s, %d unchanged, %d invalid, %d failed\n",
		renamed, verb, counts[OutcomeUnchanged], counts[OutcomeInvalid], counts[OutcomeFailed])
}

func describeAudio(sf SampleFile) string {
	var parts []string
	if meta := sf.AudioMeta; meta != nil && meta.Duration > 0 {
		parts = append(parts, meta.Duration.Round(time.Millisecond).String())
	}
	if len(sf.Tags) > 0 {
		parts = append(parts, strings.Join(sf.Tags, ", "))
	}
	if len(parts) == 0 {
		return ""
	}
	return color.HiBlackString(strings.Join(parts, " | "))
}
