package config

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// MembershipEnums represents the enum configuration for the registry.
// Member types, statuses and their display labels are configurable via YAML
// so deployments can localize or extend them without a rebuild.
type MembershipEnums struct {
	MemberTypes  []string          `yaml:"memberTypes"`
	Statuses     []string          `yaml:"statuses"`
	StatusLabels map[string]string `yaml:"statusLabels"`

	// Maps for O(1) validation lookups (initialized from slices)
	memberTypesMap map[string]struct{}
	statusesMap    map[string]struct{}

	// initOnce ensures thread-safe lazy initialization of maps
	initOnce sync.Once
}

// Config holds the membership service configuration file contents
type Config struct {
	Enums MembershipEnums `yaml:"enums"`
}

var (
	// DefaultEnums provides default enum values if the config file is not found.
	// The labels match what the member-facing portal renders (pt-BR).
	DefaultEnums = MembershipEnums{
		MemberTypes: []string{
			"owner",
			"affiliate",
		},
		Statuses: []string{
			"active",
			"inactive",
			"pending",
			"expired",
		},
		StatusLabels: map[string]string{
			"active":   "Ativo",
			"inactive": "Inativo",
			"pending":  "Pendente",
			"expired":  "Expirado",
		},
	}
)

// LoadEnums loads enum configuration from a YAML file.
// If the file is not found or cannot be read, returns default enums.
func LoadEnums(configPath string) (*MembershipEnums, error) {
	if configPath == "" {
		configPath = "config/enums.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return GetDefaultEnums(), nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		slog.Warn("Failed to parse config file, using defaults", "path", configPath, "error", err)
		return GetDefaultEnums(), nil
	}

	// Use defaults for any missing enum sections
	enums := &config.Enums
	if len(enums.MemberTypes) == 0 {
		enums.MemberTypes = DefaultEnums.MemberTypes
	}
	if len(enums.Statuses) == 0 {
		enums.Statuses = DefaultEnums.Statuses
	}
	if len(enums.StatusLabels) == 0 {
		enums.StatusLabels = DefaultEnums.StatusLabels
	}

	enums.InitializeMaps()

	return enums, nil
}

// GetDefaultEnums creates a new MembershipEnums instance with default values.
// Slices and maps are copied to avoid sharing references with the global DefaultEnums.
func GetDefaultEnums() *MembershipEnums {
	labels := make(map[string]string, len(DefaultEnums.StatusLabels))
	for k, v := range DefaultEnums.StatusLabels {
		labels[k] = v
	}
	enums := &MembershipEnums{
		MemberTypes:  append([]string(nil), DefaultEnums.MemberTypes...),
		Statuses:     append([]string(nil), DefaultEnums.Statuses...),
		StatusLabels: labels,
	}
	enums.InitializeMaps()
	return enums
}

// InitializeMaps builds the lookup maps from the configured slices
func (e *MembershipEnums) InitializeMaps() {
	e.initOnce.Do(func() {
		e.memberTypesMap = make(map[string]struct{}, len(e.MemberTypes))
		for _, t := range e.MemberTypes {
			e.memberTypesMap[t] = struct{}{}
		}
		e.statusesMap = make(map[string]struct{}, len(e.Statuses))
		for _, s := range e.Statuses {
			e.statusesMap[s] = struct{}{}
		}
	})
}

// IsValidMemberType reports whether t is a configured member type
func (e *MembershipEnums) IsValidMemberType(t string) bool {
	_, ok := e.memberTypesMap[t]
	return ok
}

// IsValidStatus reports whether s is a configured status
func (e *MembershipEnums) IsValidStatus(s string) bool {
	_, ok := e.statusesMap[s]
	return ok
}

// LabelFor returns the display label for a status, falling back to the
// raw status value when no label is configured
func (e *MembershipEnums) LabelFor(status string) string {
	if label, ok := e.StatusLabels[status]; ok {
		return label
	}
	return status
}
