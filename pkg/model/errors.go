package model

import (
	"fmt"
	"strings"
)

// PairingError is returned when a non-empty reverse read list does not
// have the same length as the forward read list. Both lists appear in the
// message so the operator can see which side is short.
type PairingError struct {
	Forward []string
	Reverse []string
}

func (e *PairingError) Error() string {
	return fmt.Sprintf(
		"forward and reverse read lists are of different length; forward: %s; reverse: %s",
		strings.Join(e.Forward, ", "), strings.Join(e.Reverse, ", "))
}

// UnmatchedSamplesError reports both sides of a failed file/sample match:
// run prefixes in the sample mapping that no input file claimed, and input
// files whose run prefix had no mapping entry. Either side alone means the
// file naming and the sample metadata disagree.
type UnmatchedSamplesError struct {
	Prefixes []string // mapping entries left unconsumed
	Files    []string // forward files with no mapping entry
}

func (e *UnmatchedSamplesError) Error() string {
	var parts []string
	if len(e.Prefixes) > 0 {
		parts = append(parts, fmt.Sprintf(
			"run_prefix values with no matching file: %s", strings.Join(e.Prefixes, ", ")))
	}
	if len(e.Files) > 0 {
		parts = append(parts, fmt.Sprintf(
			"files with no matching run_prefix: %s", strings.Join(e.Files, ", ")))
	}
	return "sample names and file names do not match; " + strings.Join(parts, "; ")
}
