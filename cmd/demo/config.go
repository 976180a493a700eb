package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config structure for YAML configuration
type Config struct {
	Cities []struct {
		Name string  `yaml:"name"`
		Lat  float64 `yaml:"lat"`
		Lon  float64 `yaml:"lon"`
	} `yaml:"cities"`
	Nearby struct {
		RadiusMeters float64 `yaml:"radius_meters"`
		MaxResults   int     `yaml:"max_results"`
	} `yaml:"nearby"`
	Batch struct {
		Points int `yaml:"points"`
	} `yaml:"batch"`
}

func loadConfig(path string) (Config, error) {
	config := defaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config: %w", err)
	}

	if config.Nearby.RadiusMeters <= 0 {
		config.Nearby.RadiusMeters = 100
	}
	if config.Nearby.MaxResults <= 0 {
		config.Nearby.MaxResults = 10
	}
	if config.Batch.Points <= 0 {
		config.Batch.Points = 100000
	}

	return config, nil
}

func defaultConfig() Config {
	var config Config
	config.Cities = []struct {
		Name string  `yaml:"name"`
		Lat  float64 `yaml:"lat"`
		Lon  float64 `yaml:"lon"`
	}{
		{"New York", 40.7128, -74.0060},
		{"London", 51.5074, -0.1278},
		{"Tokyo", 35.6762, 139.6503},
		{"Sydney", -33.8688, 151.2093},
		{"Reykjavik", 64.1466, -21.9426},
	}
	config.Nearby.RadiusMeters = 100
	config.Nearby.MaxResults = 10
	config.Batch.Points = 100000
	return config
}
