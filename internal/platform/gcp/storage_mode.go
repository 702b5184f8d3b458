package gcp

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

type Mode string

const (
	ModeGCS         Mode = "gcs"
	ModeGCSEmulator Mode = "gcs_emulator"
)

type Config struct {
	Mode          Mode
	Bucket        string
	EmulatorHost  string
	PublicBaseURL string
	CDNDomain     string
}

// ConfigFromEnv reads GCS_MODE, GCS_BUCKET_NAME, STORAGE_EMULATOR_HOST,
// GCS_PUBLIC_BASE_URL and GCS_CDN_DOMAIN. An emulator host with no explicit
// mode selects the emulator.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		Bucket:        strings.TrimSpace(os.Getenv("GCS_BUCKET_NAME")),
		EmulatorHost:  strings.TrimRight(strings.TrimSpace(os.Getenv("STORAGE_EMULATOR_HOST")), "/"),
		PublicBaseURL: strings.TrimRight(strings.TrimSpace(os.Getenv("GCS_PUBLIC_BASE_URL")), "/"),
		CDNDomain:     strings.TrimSpace(os.Getenv("GCS_CDN_DOMAIN")),
	}
	raw := strings.ToLower(strings.TrimSpace(os.Getenv("GCS_MODE")))
	switch Mode(raw) {
	case "":
		cfg.Mode = ModeGCS
		if cfg.EmulatorHost != "" {
			cfg.Mode = ModeGCSEmulator
		}
	case ModeGCS, ModeGCSEmulator:
		cfg.Mode = Mode(raw)
	default:
		return cfg, fmt.Errorf("invalid GCS_MODE=%q (allowed: %q, %q)", raw, ModeGCS, ModeGCSEmulator)
	}
	return cfg, cfg.Validate()
}

func (cfg Config) Validate() error {
	if cfg.Bucket == "" {
		return fmt.Errorf("missing env var GCS_BUCKET_NAME")
	}
	if cfg.Mode != ModeGCS && cfg.Mode != ModeGCSEmulator {
		return fmt.Errorf("invalid GCS mode %q", cfg.Mode)
	}
	if cfg.PublicBaseURL != "" && !isAbsoluteURL(cfg.PublicBaseURL) {
		return fmt.Errorf("invalid GCS_PUBLIC_BASE_URL=%q; expected absolute URL", cfg.PublicBaseURL)
	}
	if cfg.Mode != ModeGCSEmulator {
		return nil
	}
	if cfg.EmulatorHost == "" {
		return fmt.Errorf("GCS_MODE=%q requires STORAGE_EMULATOR_HOST", ModeGCSEmulator)
	}
	if !isAbsoluteURL(cfg.EmulatorHost) {
		return fmt.Errorf("invalid STORAGE_EMULATOR_HOST=%q; expected absolute URL like http://fake-gcs:4443", cfg.EmulatorHost)
	}
	return nil
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && strings.TrimSpace(u.Scheme) != "" && strings.TrimSpace(u.Host) != ""
}
