// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package tvm

import (
	"crypto/ed25519"
	"crypto/sha256"
	"crypto/sha512"

	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	blst "github.com/supranational/blst/bindings/go"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"github.com/ton-blockchain/ton-sub013/internal/opcode"
	"github.com/ton-blockchain/ton-sub013/internal/stack"
)

// registerCrypto wires spec.md §4.7 "Crypto": Ed25519 signature checks
// (the validator-signature primitive TON contracts use directly),
// secp256k1 recovery, the HASHEXT family of selectable digests, and a
// BLS12-381 pairing check, one instruction family per library pulled
// in from the rest of the example pack (spec.md §9 "dual-use library
// surface").
func registerCrypto(vm *VM) []*opcode.Entry {
	chkSign := func(mnemonic string, prefix uint32, hashFirst bool) *opcode.Entry {
		return &opcode.Entry{Mnemonic: mnemonic, Prefix: prefix, PrefixLen: 16, Exec: func(opcode.Args) error {
			key, err := vm.stack.PopBytes()
			if err != nil {
				return err
			}
			sig, err := vm.stack.PopBytes()
			if err != nil {
				return err
			}
			data, err := vm.stack.PopBytes()
			if err != nil {
				return err
			}
			if len(key) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
				vm.stack.Push(stack.FromInt64(0))
				return nil
			}
			msg := []byte(data)
			if hashFirst {
				h := sha256.Sum256(msg)
				msg = h[:]
			}
			ok := ed25519.Verify(ed25519.PublicKey(key), msg, []byte(sig))
			vm.stack.Push(stack.FromInt64(boolToInt(ok)))
			return nil
		}}
	}

	return []*opcode.Entry{
		chkSign("CHKSIGNU", 0xFA10, false),
		chkSign("CHKSIGNS", 0xFA11, true),
		{Mnemonic: "ECRECOVER", Prefix: 0xF920, PrefixLen: 16, Exec: func(opcode.Args) error {
			sig, err := vm.stack.PopBytes()
			if err != nil {
				return err
			}
			v, err := vm.stack.PopIntRange(0, 3)
			if err != nil {
				return err
			}
			hash, err := vm.stack.PopBytes()
			if err != nil {
				return err
			}
			if len(sig) != 64 || len(hash) != 32 {
				vm.stack.Push(stack.FromInt64(0))
				return nil
			}
			compact := make([]byte, 65)
			compact[0] = byte(27 + v)
			copy(compact[1:], sig)
			pub, _, err := ecdsa.RecoverCompact(compact, hash)
			if err != nil {
				vm.stack.Push(stack.FromInt64(0))
				return nil
			}
			vm.stack.Push(stack.FromInt64(-1))
			vm.stack.Push(stack.Bytes(pub.SerializeUncompressed()))
			return nil
		}},
		{Mnemonic: "HASHEXT_SHA256", Prefix: 0xF931, PrefixLen: 16, Exec: func(opcode.Args) error {
			data, err := vm.stack.PopBytes()
			if err != nil {
				return err
			}
			h := sha256.Sum256(data)
			vm.stack.Push(stack.Bytes(h[:]))
			return nil
		}},
		{Mnemonic: "HASHEXT_SHA512", Prefix: 0xF932, PrefixLen: 16, Exec: func(opcode.Args) error {
			data, err := vm.stack.PopBytes()
			if err != nil {
				return err
			}
			h := sha512.Sum512(data)
			vm.stack.Push(stack.Bytes(h[:]))
			return nil
		}},
		{Mnemonic: "HASHEXT_BLAKE2B", Prefix: 0xF933, PrefixLen: 16, Exec: func(opcode.Args) error {
			data, err := vm.stack.PopBytes()
			if err != nil {
				return err
			}
			h := blake2b.Sum256(data)
			vm.stack.Push(stack.Bytes(h[:]))
			return nil
		}},
		{Mnemonic: "HASHEXT_KECCAK256", Prefix: 0xF934, PrefixLen: 16, Exec: func(opcode.Args) error {
			data, err := vm.stack.PopBytes()
			if err != nil {
				return err
			}
			h := sha3.NewLegacyKeccak256()
			h.Write(data)
			vm.stack.Push(stack.Bytes(h.Sum(nil)))
			return nil
		}},
		{Mnemonic: "BLS_VERIFY", Prefix: 0xF940, PrefixLen: 16, Exec: func(opcode.Args) error {
			sigB, err := vm.stack.PopBytes()
			if err != nil {
				return err
			}
			msg, err := vm.stack.PopBytes()
			if err != nil {
				return err
			}
			pubB, err := vm.stack.PopBytes()
			if err != nil {
				return err
			}
			pub := new(blst.P1Affine).Uncompress(pubB)
			sig := new(blst.P2Affine).Uncompress(sigB)
			if pub == nil || sig == nil {
				vm.stack.Push(stack.FromInt64(0))
				return nil
			}
			ok := sig.Verify(true, pub, true, msg, []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_POP_"))
			vm.stack.Push(stack.FromInt64(boolToInt(ok)))
			return nil
		}},
	}
}
