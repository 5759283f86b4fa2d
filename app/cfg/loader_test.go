package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	// Test default version
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}

	// Test that version is at least "dev" or "unknown"
	version := GetVersion()
	if version != "dev" && version != "unknown" {
		// This is fine, version could be set at build time
		t.Logf("Version: %s", version)
	}
}

func TestConfigFields(t *testing.T) {
	// Create a config instance to test field access
	cfg := &Cfg{
		BlobDriver:     "fs",
		DataDir:        "./data",
		DataKey:        "dining_info.json",
		S3Bucket:       "dining-data",
		S3Region:       "us-west-1",
		S3Endpoint:     "http://localhost:9000",
		S3PathStyle:    true,
		Port:           "8080",
		SourcesFile:    "./sources.yml",
		ScrapeInterval: 3600,
		Once:           true,
		HTTPTimeout:    30,
		HTTPRetries:    2,
		UserAgent:      "Test Agent",
		Timezone:       "America/Los_Angeles",
		Debug:          true,
		Version:        "test-version",
	}

	// Test direct field access
	if cfg.BlobDriver != "fs" {
		t.Errorf("Expected blob driver 'fs', got '%s'", cfg.BlobDriver)
	}
	if cfg.DataDir != "./data" {
		t.Errorf("Expected data dir './data', got '%s'", cfg.DataDir)
	}
	if cfg.DataKey != "dining_info.json" {
		t.Errorf("Expected data key 'dining_info.json', got '%s'", cfg.DataKey)
	}
	if cfg.S3Bucket != "dining-data" {
		t.Errorf("Expected S3 bucket 'dining-data', got '%s'", cfg.S3Bucket)
	}
	if cfg.S3Region != "us-west-1" {
		t.Errorf("Expected S3 region 'us-west-1', got '%s'", cfg.S3Region)
	}
	if cfg.S3Endpoint != "http://localhost:9000" {
		t.Errorf("Expected S3 endpoint 'http://localhost:9000', got '%s'", cfg.S3Endpoint)
	}
	if !cfg.S3PathStyle {
		t.Error("Expected path-style addressing to be enabled")
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.SourcesFile != "./sources.yml" {
		t.Errorf("Expected sources file './sources.yml', got '%s'", cfg.SourcesFile)
	}
	if cfg.ScrapeInterval != 3600 {
		t.Errorf("Expected scrape interval 3600, got %d", cfg.ScrapeInterval)
	}
	if !cfg.Once {
		t.Error("Expected once mode to be enabled")
	}
	if cfg.HTTPTimeout != 30 {
		t.Errorf("Expected HTTP timeout 30, got %d", cfg.HTTPTimeout)
	}
	if cfg.HTTPRetries != 2 {
		t.Errorf("Expected HTTP retries 2, got %d", cfg.HTTPRetries)
	}
	if cfg.UserAgent != "Test Agent" {
		t.Errorf("Expected user agent 'Test Agent', got '%s'", cfg.UserAgent)
	}
	if cfg.Timezone != "America/Los_Angeles" {
		t.Errorf("Expected timezone 'America/Los_Angeles', got '%s'", cfg.Timezone)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
	if cfg.Version != "test-version" {
		t.Errorf("Expected version 'test-version', got '%s'", cfg.Version)
	}
}
