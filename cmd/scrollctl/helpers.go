package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	appenhance "scrollforge/internal/app/enhance"
)

// loadRequest reads an evaluation request from path, sniffing the format by
// extension: .yaml/.yml is parsed as YAML, everything else as JSON.
func loadRequest(path string) (appenhance.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return appenhance.Request{}, fmt.Errorf("read request %s: %w", path, err)
	}

	var req appenhance.Request
	if isYAMLPath(path) {
		if err := yaml.Unmarshal(data, &req); err != nil {
			return appenhance.Request{}, fmt.Errorf("parse yaml request %s: %w", path, err)
		}
		return req, nil
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return appenhance.Request{}, fmt.Errorf("parse json request %s: %w", path, err)
	}
	return req, nil
}

func isYAMLPath(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}
