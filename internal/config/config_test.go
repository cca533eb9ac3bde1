package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Port:              "8081",
		SocrataBaseURL:    "https://www.datos.gov.co/resource",
		SocrataResourceID: "u3qu-swda",
		InflationBaseYear: 2023,
		GeoJSONPath:       "./data/colombia.geo.json",
		SQLiteDBPath:      "./inversiones.db",
		RefreshInterval:   24 * time.Hour,
		DataBackend:       "socrata",
	}
}

func TestValidateOK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestValidateErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad port", func(c *Config) { c.Port = "nope" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "invalid port"},
		{"bad base url", func(c *Config) { c.SocrataBaseURL = "ftp://x" }, "Socrata base URL"},
		{"empty resource", func(c *Config) { c.SocrataResourceID = " " }, "resource ID"},
		{"implausible base year", func(c *Config) { c.InflationBaseYear = 42 }, "base year"},
		{"bad backend", func(c *Config) { c.DataBackend = "oracle" }, "invalid data backend"},
		{"bad amqp scheme", func(c *Config) { c.AMQPURL = "http://broker" }, "AMQP URL scheme"},
		{"amqp without queue", func(c *Config) { c.AMQPURL = "amqp://guest@localhost/"; c.AMQPQueue = "" }, "queue name"},
		{"tiny interval", func(c *Config) { c.RefreshInterval = time.Second }, "refresh interval"},
		{"sheet without name", func(c *Config) { c.GoogleSpreadsheetID = "abc"; c.GoogleSheetName = "" }, "sheet name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8081" {
		t.Errorf("default port = %s", cfg.Port)
	}
	if cfg.SocrataResourceID != "u3qu-swda" {
		t.Errorf("default resource = %s", cfg.SocrataResourceID)
	}
	if cfg.InflationBaseYear != 2023 {
		t.Errorf("default base year = %d", cfg.InflationBaseYear)
	}
	if cfg.DataBackend != "socrata" {
		t.Errorf("default backend = %s", cfg.DataBackend)
	}
}
