// Package detect sniffs an input file to tell which kind of test output it holds.
package detect

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/dkoosis/parsetest/pkg/testlog"
)

// Format represents a recognized input format.
type Format int

const (
	Unknown    Format = iota
	ConsoleLog        // runner console log with result markers
	GoTestJSON        // go test -json NDJSON stream
	SARIF             // SARIF 2.1.0 JSON document
)

func (f Format) String() string {
	switch f {
	case ConsoleLog:
		return "console log"
	case GoTestJSON:
		return "go test -json"
	case SARIF:
		return "SARIF"
	default:
		return "unknown"
	}
}

// sniffBytes is how much of a file SniffFile looks at.
const sniffBytes = 64 << 10

// Sniff examines the first bytes of input to determine format.
func Sniff(data []byte) Format {
	data = bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(data) == 0 {
		return Unknown
	}

	if data[0] == '{' {
		// SARIF is a complete JSON document; go test -json is NDJSON (one object per line)
		if isSARIF(data) {
			return SARIF
		}
		if isGoTestJSON(data) {
			return GoTestJSON
		}
	}

	if hasMarkers(data) {
		return ConsoleLog
	}
	return Unknown
}

// SniffFile sniffs the head of the file at path.
func SniffFile(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return Unknown, err
	}
	defer f.Close()

	head, err := io.ReadAll(io.LimitReader(f, sniffBytes))
	if err != nil {
		return Unknown, err
	}
	return Sniff(head), nil
}

func hasMarkers(data []byte) bool {
	for _, marker := range []string{testlog.ClassMarker, testlog.PassedMarker, testlog.SkippedMarker, testlog.FailedMarker} {
		if bytes.Contains(data, []byte(marker)) {
			return true
		}
	}
	return false
}

func isSARIF(data []byte) bool {
	var probe struct {
		Version string            `json:"version"`
		Runs    []json.RawMessage `json:"runs"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}
	return probe.Version != "" && probe.Runs != nil
}

func isGoTestJSON(data []byte) bool {
	firstLine, _, _ := bytes.Cut(data, []byte("\n"))

	var event struct {
		Action  string `json:"Action"`
		Package string `json:"Package"`
	}
	if err := json.Unmarshal(firstLine, &event); err != nil {
		return false
	}

	validActions := map[string]bool{
		"start": true, "run": true, "pause": true, "cont": true,
		"pass": true, "bench": true, "fail": true, "output": true, "skip": true,
	}
	return validActions[event.Action]
}
