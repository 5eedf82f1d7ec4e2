// Package bfconfig loads the settings that govern one driver run: how many
// steps to budget, which detectors are enabled, and how much history each
// detector may retain per loop.
package bfconfig

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	cp "github.com/jinzhu/copier"
)

type DriverConfig struct {
	StepBudget        uint64 `toml:"step_budget"`
	FSCDEnabled       bool   `toml:"fscd_enabled"`
	LSDEnabled        bool   `toml:"lsd_enabled"`
	PerLoopHistoryCap uint64 `toml:"per_loop_history_cap"`
}

func Default() *DriverConfig {
	return &DriverConfig{
		StepBudget:        1_000_000,
		FSCDEnabled:       true,
		LSDEnabled:        true,
		PerLoopHistoryCap: 0,
	}
}

func Load(path string) (*DriverConfig, error) {
	conffile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bfconfig: unable to open %s: %w", path, err)
	}
	defer conffile.Close()

	config := Default()
	if _, err := toml.NewDecoder(conffile).Decode(config); err != nil {
		return nil, fmt.Errorf("bfconfig: failed to decode %s: %w", path, err)
	}
	return config, nil
}

func (c *DriverConfig) Clone() *DriverConfig {
	clone := &DriverConfig{}
	cp.Copy(clone, c)
	return clone
}
