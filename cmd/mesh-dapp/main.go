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
	"time"

	"github.com/spf13/cobra"

	"github.com/cartera-mesh/gomesh/client"
	"github.com/cartera-mesh/gomesh/config"
	"github.com/cartera-mesh/gomesh/pairing"
	"github.com/cartera-mesh/gomesh/store"
)

var (
	cfgPath    string
	storePath  string
	rootCmd    = &cobra.Command{
		Use:   "mesh-dapp",
		Short: "Cartera Mesh dapp CLI - pair with a wallet and propose sessions",
		Long: `mesh-dapp drives the dapp side of a pairing/session exchange: it
generates a pairing URI, waits for a wallet to connect over the relay, and
proposes sessions for the caller to approve namespaces against.`,
	}

	pairCmd = &cobra.Command{
		Use:   "pair",
		Short: "Generate a new pairing and print its shareable URI",
		RunE:  runPair,
	}

	proposeCmd = &cobra.Command{
		Use:   "propose",
		Short: "Propose a session on the active pairing and wait for settlement",
		RunE:  runPropose,
	}
)

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "./mesh-dapp.db", "path to the local key/value store")
	rootCmd.AddCommand(pairCmd, proposeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newClient(ctx context.Context) (*client.Client, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	kv, err := store.Open(cfg.Storage.Type, storePath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return client.New(ctx, cfg, kv, client.Options{})
}

func runPair(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	c, err := newClient(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	uri, err := c.Pair(ctx, pairing.Metadata{Methods: []string{"eth_sendTransaction", "personal_sign"}})
	if err != nil {
		return fmt.Errorf("pair: %w", err)
	}
	fmt.Println(uri)
	return nil
}

func runPropose(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	c, err := newClient(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	sess, err := c.Propose(ctx, 60*time.Second)
	if err != nil {
		return fmt.Errorf("propose: %w", err)
	}
	fmt.Printf("session settled on topic %s\n", sess.Topic())
	return nil
}
