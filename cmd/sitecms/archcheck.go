package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-faster/errors"
	"github.com/roblaszczak/go-cleanarch/cleanarch"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// archConfig is the layout of .gocleanarch.yml.
type archConfig struct {
	Root              string   `yaml:"root"`
	IgnoreTests       bool     `yaml:"ignore_tests"`
	IgnorePackages    []string `yaml:"ignore_packages"`
	SharedModules     []string `yaml:"shared_modules"`
	AllowedViolations []string `yaml:"allow_violations"`
	Aliases           struct {
		Domain         []string `yaml:"domain"`
		Application    []string `yaml:"application"`
		Interfaces     []string `yaml:"interfaces"`
		Infrastructure []string `yaml:"infrastructure"`
	} `yaml:"aliases"`
}

var layerDefaults = map[cleanarch.Layer][]string{
	cleanarch.LayerDomain:         {"domain", "entities"},
	cleanarch.LayerApplication:    {"services"},
	cleanarch.LayerInterfaces:     {"presentation", "controllers"},
	cleanarch.LayerInfrastructure: {"infrastructure", "persistence"},
}

func newArchCheckCmd() *cobra.Command {
	var (
		configPath string
		debug      bool
	)
	cmd := &cobra.Command{
		Use:   "archcheck",
		Short: "Check that module layers only depend inwards",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadArchConfig(configPath)
			if err != nil {
				return err
			}
			root, err := filepath.Abs(cfg.Root)
			if err != nil {
				return err
			}
			if debug {
				cleanarch.Log.SetOutput(os.Stderr)
			}

			validator := cleanarch.NewValidator(cfg.aliases())
			ok, violations, err := validator.Validate(root, cfg.IgnoreTests, cfg.IgnorePackages)
			if err != nil {
				return errors.Wrap(err, "go-cleanarch")
			}
			var failed int
			for _, v := range violations {
				if cfg.allowed(v.Error()) {
					continue
				}
				failed++
				fmt.Fprintln(cmd.ErrOrStderr(), v.Error())
			}
			if !ok && failed > 0 {
				return fmt.Errorf("%d layer violations", failed)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "layers ok")
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", ".gocleanarch.yml", "config file")
	cmd.Flags().BoolVar(&debug, "debug", false, "print go-cleanarch debug output")
	return cmd
}

func loadArchConfig(path string) (*archConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	cfg := &archConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	if cfg.Root == "" {
		cfg.Root = "."
	}
	return cfg, nil
}

func (c *archConfig) aliases() map[string]cleanarch.Layer {
	custom := map[cleanarch.Layer][]string{
		cleanarch.LayerDomain:         c.Aliases.Domain,
		cleanarch.LayerApplication:    c.Aliases.Application,
		cleanarch.LayerInterfaces:     c.Aliases.Interfaces,
		cleanarch.LayerInfrastructure: c.Aliases.Infrastructure,
	}
	out := map[string]cleanarch.Layer{}
	for layer, defaults := range layerDefaults {
		names := defaults
		if len(custom[layer]) > 0 {
			names = custom[layer]
		}
		for _, name := range names {
			if name != "" {
				out[name] = layer
			}
		}
	}
	return out
}

var crossModulePattern = regexp.MustCompile(`between ([\w-]+) and ([\w-]+) modules`)

// allowed reports whether a violation message is waived by the config:
// either it crosses into a shared module or it matches an allow pattern.
func (c *archConfig) allowed(msg string) bool {
	if m := crossModulePattern.FindStringSubmatch(msg); len(m) == 3 {
		for _, shared := range c.SharedModules {
			shared = strings.TrimSpace(shared)
			if shared != "" && (m[1] == shared || m[2] == shared) {
				return true
			}
		}
	}
	for _, pattern := range c.AllowedViolations {
		if pattern != "" && strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
