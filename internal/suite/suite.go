// Package suite defines the test suite manifest model shared by the
// generator and the verifier.
package suite

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/renameio/v2"
)

// Codec selects which checksum-extraction policy applies to a suite.
type Codec string

const (
	H264 Codec = "H.264"
	H265 Codec = "H.265"
)

// TestVector pairs an input bitstream with the checksum of its decoded
// reference output. Result stays empty until resolution fills it in.
type TestVector struct {
	Name       string `json:"name"`
	Source     string `json:"source"`
	SourceHash string `json:"source_hash"`
	Input      string `json:"input"`
	Result     string `json:"result"`
}

// TestSuite is the manifest written as <name>.json. It owns its vectors;
// order follows the directory listing the suite was scraped from.
type TestSuite struct {
	Path        string        `json:"path"`
	Name        string        `json:"name"`
	Codec       Codec         `json:"codec"`
	Description string        `json:"description"`
	TestVectors []*TestVector `json:"test_vectors"`
}

// WriteJSON persists the manifest atomically. A partially written manifest
// must never be observable, so the temp file is fsynced and renamed in place.
func (ts *TestSuite) WriteJSON(path string) error {
	raw, err := json.MarshalIndent(ts, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal suite %s: %w", ts.Name, err)
	}

	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("create pending manifest %s: %w", path, err)
	}
	defer func() {
		_ = pending.Cleanup()
	}()

	if _, err := pending.Write(raw); err != nil {
		return fmt.Errorf("write manifest %s: %w", path, err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace manifest %s: %w", path, err)
	}
	return nil
}

// ReadJSON loads a manifest previously written by WriteJSON.
func ReadJSON(path string) (*TestSuite, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	ts := &TestSuite{}
	if err := json.Unmarshal(raw, ts); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return ts, nil
}
