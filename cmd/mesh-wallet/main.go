// Cartera Mesh
// Copyright (C) 2026 cartera-mesh
//
// This file is part of Cartera Mesh.
//
// Cartera Mesh is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Cartera Mesh is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Cartera Mesh. If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cartera-mesh/gomesh/client"
	"github.com/cartera-mesh/gomesh/config"
	"github.com/cartera-mesh/gomesh/metrics"
	"github.com/cartera-mesh/gomesh/namespace"
	"github.com/cartera-mesh/gomesh/store"
)

var (
	cfgPath   string
	storePath string
	pairURI   string

	rootCmd = &cobra.Command{
		Use:   "mesh-wallet",
		Short: "Cartera Mesh wallet CLI - accept pairings and auto-approve sessions",
		Long: `mesh-wallet drives the wallet side of a pairing/session exchange: it
imports a dapp-issued pairing URI, listens for session proposals over the
relay, and grants the namespaces it was told to via --grant.`,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Import a pairing URI and serve proposals until interrupted",
		RunE:  runServe,
	}
)

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "./mesh-wallet.db", "path to the local key/value store")
	serveCmd.Flags().StringVar(&pairURI, "pair", "", "pairing URI produced by mesh-dapp pair")
	_ = serveCmd.MarkFlagRequired("pair")
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// autoGrant is a WalletSettlementHandler that grants whatever namespaces the
// dapp proposed unchanged; a real wallet would surface them to a user first.
type autoGrant struct{}

func (autoGrant) Settlement(_ context.Context, req client.SessionProposeRequest) (namespace.Namespaces, error) {
	metrics.SessionsActive.Inc()
	return req.Namespaces, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	kv, err := store.Open(cfg.Storage.Type, storePath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	c, err := client.New(ctx, cfg, kv, client.Options{Settlement: autoGrant{}})
	if err != nil {
		return fmt.Errorf("start client: %w", err)
	}
	defer c.Close()

	if err := c.PairFromURI(ctx, pairURI); err != nil {
		return fmt.Errorf("import pairing: %w", err)
	}

	fmt.Println("mesh-wallet: listening for session proposals, ctrl-c to stop")
	<-ctx.Done()
	return nil
}
