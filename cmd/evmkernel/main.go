// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Command evmkernel is a thin driver exercising this module's library
// packages end to end: it is not a node, only a way to run a bytecode
// snippet or check one header against its parent from the command line.
package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/dsnet/golib/unitconv"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/urfave/cli/v2"

	"github.com/coreweave-chain/evmkernel/chain"
	"github.com/coreweave-chain/evmkernel/state"
	"github.com/coreweave-chain/evmkernel/vm"
)

func main() {
	log.SetDefault(log.NewLogger(log.NewTerminalHandler(os.Stderr, true)))

	app := &cli.App{
		Name:      "evmkernel",
		Usage:     "run bytecode or validate a header against its parent",
		Copyright: "(c) 2024 Fantom Foundation",
		Commands: []*cli.Command{
			&runCmd,
			&validateHeaderCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

var runCmd = cli.Command{
	Name:      "run",
	Usage:     "execute a hex-encoded bytecode snippet against a synthetic state",
	ArgsUsage: " ",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "code", Usage: "hex-encoded bytecode to run (0x optional)"},
		&cli.StringFlag{Name: "input", Usage: "hex-encoded call data"},
		&cli.Int64Flag{Name: "gas", Usage: "gas made available to the call", Value: math.MaxInt32},
	},
	Action: doRun,
}

var validateHeaderCmd = cli.Command{
	Name:      "validate-header",
	Usage:     "check a header JSON fixture against its parent",
	ArgsUsage: " ",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "parent", Usage: "path to the parent header JSON fixture", Required: true},
		&cli.StringFlag{Name: "header", Usage: "path to the candidate header JSON fixture", Required: true},
	},
	Action: doValidateHeader,
}

// doRun executes a hex-encoded bytecode snippet against a synthetic state
// whose only account is the target holding that code, reporting the
// output and gas used.
func doRun(c *cli.Context) error {
	code, err := decodeHex(c.String("code"))
	if err != nil {
		return fmt.Errorf("invalid -code: %w", err)
	}
	input, err := decodeHex(c.String("input"))
	if err != nil {
		return fmt.Errorf("invalid -input: %w", err)
	}
	gas := c.Int64("gas")

	st := state.New(nil)
	var caller, target vm.Address
	target[19] = 0x01
	st.CreateAccount(target)
	st.SetCode(target, code)

	evm := vm.NewEVM(st)
	root := vm.NewFrame(vm.CallKindCall, 0,
		&vm.BlockContext{GetHash: func(uint64) vm.Hash { return vm.Hash{} }},
		&vm.TransactionContext{Origin: caller, GasPrice: uint256.NewInt(0)},
	)
	root.Gas = vm.Gas(gas)

	output, gasLeft, success := evm.Call(root, vm.CallParams{
		Kind:        vm.CallKindCall,
		Caller:      caller,
		Address:     target,
		CodeAddress: target,
		Value:       uint256.NewInt(0),
		Input:       input,
		Gas:         vm.Gas(gas),
	})

	log.Info("run complete",
		"success", success,
		"gasUsed", unitconv.FormatPrefix(float64(gas-int64(gasLeft)), unitconv.SI, 2),
		"output", hex.EncodeToString(output),
	)
	if !success {
		return fmt.Errorf("call failed")
	}
	return nil
}

// doValidateHeader reads two JSON-encoded chain.Header fixtures and
// reports whether the second validates against the first as its parent.
func doValidateHeader(c *cli.Context) error {
	parent, err := readHeader(c.String("parent"))
	if err != nil {
		return fmt.Errorf("failed to read parent header: %w", err)
	}
	header, err := readHeader(c.String("header"))
	if err != nil {
		return fmt.Errorf("failed to read candidate header: %w", err)
	}

	if err := chain.ValidateHeader(header, parent); err != nil {
		return fmt.Errorf("header invalid: %w", err)
	}
	log.Info("header valid", "number", header.Number, "hash", header.Hash())
	return nil
}

func readHeader(path string) (*chain.Header, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var h chain.Header
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func decodeHex(s string) ([]byte, error) {
	if len(s) >= 2 && s[:2] == "0x" {
		s = s[2:]
	}
	if s == "" {
		return nil, nil
	}
	return hex.DecodeString(s)
}
