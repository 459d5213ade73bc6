package main

import (
	"os"

	"github.com/bundlecache/bundlecache"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port        int            `yaml:"port"`
	AssetRoot   string         `yaml:"assetRoot"`
	ClientCache bool           `yaml:"clientCache"`
	Bundles     []ConfigBundle `yaml:"bundles"`
}

type ConfigBundle struct {
	Route       string             `yaml:"route"`
	ContentType string             `yaml:"contentType"`
	Files       []string           `yaml:"files"`
	Steps       []bundlecache.Step `yaml:"steps"`
}

func getConfig(filename string) (Config, error) {
	var config Config
	configBytes, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	err = yaml.Unmarshal(configBytes, &config)
	return config, err
}

func (c Config) bundles() []bundlecache.Bundle {
	bundles := make([]bundlecache.Bundle, 0, len(c.Bundles))
	for _, b := range c.Bundles {
		bundles = append(bundles, bundlecache.Bundle{
			Route:       b.Route,
			ContentType: b.ContentType,
			Files:       b.Files,
			Steps:       b.Steps,
		})
	}
	return bundles
}
