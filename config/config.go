// Copyright 2025 The Synergy Network Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package config defines the node's on-disk configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
	"github.com/spf13/viper"
	"gitlab.com/synergy-network/snrg/protocol"
)

const (
	configDir  = "config"
	configFile = "snrg.toml"
)

type StorageType string

const (
	MemoryStorage StorageType = "memory"
	BadgerStorage StorageType = "badger"
)

type Config struct {
	// RootDir is the node's working directory. It is set by Load, not read
	// from the file.
	RootDir string `toml:"-" mapstructure:"-"`

	Storage Storage `toml:"storage" mapstructure:"storage"`
	API     API     `toml:"api" mapstructure:"api"`
	Logging Logging `toml:"logging" mapstructure:"logging"`
	Genesis Genesis `toml:"genesis" mapstructure:"genesis"`
}

type Storage struct {
	Type StorageType `toml:"type" mapstructure:"type"`
	Path string      `toml:"path" mapstructure:"path"`
}

type API struct {
	ListenAddress string `toml:"listen-address" mapstructure:"listen-address"`
}

type Logging struct {
	Level string `toml:"level" mapstructure:"level"`
	Trace bool   `toml:"trace" mapstructure:"trace"`
}

// Genesis fixes the network's accounts, supply, and reward-rate table. These
// values are read once at first start; changing them after the genesis mint
// has no effect on minted state.
type Genesis struct {
	Treasury      protocol.AccountID    `toml:"treasury" mapstructure:"treasury"`
	StakingPool   protocol.AccountID    `toml:"staking-pool" mapstructure:"staking-pool"`
	SwapEndpoint  protocol.AccountID    `toml:"swap-endpoint" mapstructure:"swap-endpoint"`
	ReserveFunder protocol.AccountID    `toml:"reserve-funder" mapstructure:"reserve-funder"`
	TotalSupply   uint64                `toml:"total-supply" mapstructure:"total-supply"`
	RewardTiers   []protocol.RewardTier `toml:"reward-tiers" mapstructure:"reward-tiers"`
}

func Default() *Config {
	c := new(Config)
	c.Storage.Type = BadgerStorage
	c.Storage.Path = filepath.Join("data", "snrg.db")
	c.API.ListenAddress = "http://0.0.0.0:26660"
	c.Logging.Level = "info"
	c.Genesis.Treasury = "snrg-treasury"
	c.Genesis.StakingPool = "snrg-staking-pool"
	c.Genesis.SwapEndpoint = "snrg-swap"
	c.Genesis.ReserveFunder = "snrg-treasury"
	c.Genesis.TotalSupply = protocol.DefaultTotalSupply
	c.Genesis.RewardTiers = protocol.DefaultRewardTiers
	return c
}

func MakeAbsolute(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func Load(dir string) (*Config, error) {
	file := filepath.Join(dir, configDir, configFile)

	v := viper.New()
	v.SetConfigFile(file)
	err := v.ReadInConfig()
	if err != nil {
		return nil, fmt.Errorf("read %s: %v", file, err)
	}

	c := Default()
	err = v.Unmarshal(c)
	if err != nil {
		return nil, fmt.Errorf("unmarshal %s: %v", file, err)
	}

	c.RootDir = dir
	return c, nil
}

func Store(dir string, c *Config) error {
	err := os.MkdirAll(filepath.Join(dir, configDir), 0755)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(dir, configDir, configFile))
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}
