// Copyright 2025 The Synergy Network Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gitlab.com/synergy-network/snrg/config"
	"gitlab.com/synergy-network/snrg/internal/api"
	"gitlab.com/synergy-network/snrg/internal/core"
	"gitlab.com/synergy-network/snrg/internal/events"
	"gitlab.com/synergy-network/snrg/internal/ledger"
	"gitlab.com/synergy-network/snrg/internal/logging"
	"gitlab.com/synergy-network/snrg/internal/rescue"
	"gitlab.com/synergy-network/snrg/internal/staking"
	"gitlab.com/synergy-network/snrg/pkg/database/keyvalue"
	"gitlab.com/synergy-network/snrg/pkg/database/keyvalue/badger"
	"gitlab.com/synergy-network/snrg/pkg/database/keyvalue/memory"
)

var cmdRun = &cobra.Command{
	Use:   "run",
	Short: "Run the node",
	Run:   runNode,
	Args:  cobra.NoArgs,
}

func init() {
	cmdMain.AddCommand(cmdRun)
}

func runNode(_ *cobra.Command, _ []string) {
	c, err := config.Load(flagMain.WorkDir)
	checkf(err, "load configuration from %q", flagMain.WorkDir)

	logger, err := logging.NewLogger(os.Stderr, c.Logging.Level, c.Logging.Trace)
	check(err)

	store, err := openStore(c)
	check(err)
	defer func() { check(store.Close()) }()

	bus := events.NewBus(logger)
	clock := core.SystemClock{}

	l, err := ledger.New(store, ledger.Params{
		SupplyCap:    c.Genesis.TotalSupply,
		Treasury:     c.Genesis.Treasury,
		StakingPool:  c.Genesis.StakingPool,
		SwapEndpoint: c.Genesis.SwapEndpoint,
	}, logger, bus)
	checkf(err, "create ledger")

	registry := rescue.New(store, clock, l, logger, bus)
	l.SetRescuePolicy(registry)

	engine, err := staking.New(store, clock, l, staking.Params{
		Treasury:      c.Genesis.Treasury,
		Pool:          c.Genesis.StakingPool,
		ReserveFunder: c.Genesis.ReserveFunder,
		Tiers:         c.Genesis.RewardTiers,
	}, logger, bus)
	checkf(err, "create staking engine")

	// Execute the genesis mint on first start
	minted, err := l.Minted()
	checkf(err, "query genesis state")
	if !minted {
		checkf(l.Mint(c.Genesis.Treasury, c.Genesis.TotalSupply), "genesis mint")
		logger.Info("Genesis mint executed", "account", c.Genesis.Treasury, "amount", c.Genesis.TotalSupply)
	}

	jrpc, err := api.NewJrpc(api.Options{
		Logger:  logger,
		Ledger:  l,
		Rescue:  registry,
		Staking: engine,
	})
	checkf(err, "create API")

	listener, err := listenHttpUrl(c.API.ListenAddress)
	checkf(err, "listen on %q", c.API.ListenAddress)

	server := &http.Server{Handler: jrpc.NewMux(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		err := server.Serve(listener)
		if err != nil && err != http.ErrServerClosed {
			logger.Error("API server failed", "error", err)
		}
	}()
	logger.Info("Node running", "listen", c.API.ListenAddress, "storage", c.Storage.Type)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	<-sigs

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	check(server.Shutdown(ctx))
}

func openStore(c *config.Config) (keyvalue.Store, error) {
	switch c.Storage.Type {
	case config.MemoryStorage:
		return memory.New(), nil
	case config.BadgerStorage:
		return badger.New(config.MakeAbsolute(c.RootDir, c.Storage.Path))
	default:
		return nil, fmt.Errorf("unknown storage type %q", c.Storage.Type)
	}
}

// listenHttpUrl takes a string such as `http://localhost:123` and creates a
// TCP listener.
func listenHttpUrl(s string) (net.Listener, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("invalid address: %v", err)
	}

	if u.Path != "" && u.Path != "/" {
		return nil, fmt.Errorf("invalid address: path is not empty")
	}

	switch u.Scheme {
	case "tcp", "http":
		// Ok
	default:
		return nil, fmt.Errorf("invalid address: unsupported scheme %q", u.Scheme)
	}

	return net.Listen("tcp", u.Host)
}
