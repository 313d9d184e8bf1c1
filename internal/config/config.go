// Package config defines which conformance sites get scraped into suites.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Suite describes one conformance listing to turn into a manifest.
type Suite struct {
	// Name is the listing directory on the site, e.g. "HEVC_v1".
	Name string `yaml:"name"`
	// SuiteName names the manifest, e.g. "JCT-VC-HEVC_V1".
	SuiteName   string `yaml:"suite_name"`
	Codec       string `yaml:"codec"`
	Description string `yaml:"description"`
	// Base is the URL the listing's href values are relative to.
	Base string `yaml:"base"`
	// Site is the draft-conformance directory holding the listing.
	Site string `yaml:"site"`
}

type Config struct {
	Suites []Suite `yaml:"suites"`
}

// Load reads a YAML config from path into out.
func Load(path string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

const (
	baseURL = "https://www.itu.int/"
	h265URL = baseURL + "wftp3/av-arch/jctvc-site/bitstream_exchange/draft_conformance/"
	h264URL = baseURL + "wftp3/av-arch/jvt-site/draft_conformance/"
)

// Default returns the two ITU draft-conformance suites.
func Default() Config {
	return Config{
		Suites: []Suite{
			{
				Name:        "HEVC_v1",
				SuiteName:   "JCT-VC-HEVC_V1",
				Codec:       "H.265",
				Description: "JCT-VC HEVC version 1",
				Base:        baseURL,
				Site:        h265URL,
			},
			{
				Name:        "AVCv1",
				SuiteName:   "JVT-AVC_V1",
				Codec:       "H.264",
				Description: "JVT AVC version 1",
				Base:        baseURL,
				Site:        h264URL,
			},
		},
	}
}
