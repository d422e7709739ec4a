// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package keypair - password protected ed25519 signer key file
//
// the private key is encrypted with AES-CBC under an Argon2i hash of
// the password; the public key is stored in clear so the file can be
// identified without the password
package keypair

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"io"
	"io/ioutil"
	"os"

	"github.com/bitmark-inc/go-argon2"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/mintauth/fault"
	"github.com/bitmark-inc/mintauth/util"
)

// File - the stored form
type File struct {
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
	Salt       Salt   `json:"salt"`
}

// message signed to check a decrypted key
var checkMessage = []byte("mintauth signer key check")

// Generate - new random key encrypted with password
func Generate(password string) (*File, ed25519.PrivateKey, error) {
	_, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		return nil, nil, err
	}
	f, err := Encrypt(privateKey, password)
	if nil != err {
		return nil, nil, err
	}
	return f, privateKey, nil
}

// Encrypt - protect an existing private key
func Encrypt(privateKey ed25519.PrivateKey, password string) (*File, error) {
	if ed25519.PrivateKeySize != len(privateKey) {
		return nil, fault.InvalidPrivateKey
	}
	if "" == password {
		return nil, fault.InvalidPassword
	}

	salt, err := MakeSalt()
	if nil != err {
		return nil, err
	}
	key, err := generateKey(password, salt)
	if nil != err {
		return nil, err
	}
	ciphertext, err := encryptPrivateKey(privateKey, key)
	if nil != err {
		return nil, err
	}

	return &File{
		PublicKey:  hex.EncodeToString(privateKey.Public().(ed25519.PublicKey)),
		PrivateKey: hex.EncodeToString(ciphertext),
		Salt:       *salt,
	}, nil
}

// PublicKeyBytes - the clear public key
func (f *File) PublicKeyBytes() (ed25519.PublicKey, error) {
	publicKey, err := hex.DecodeString(f.PublicKey)
	if nil != err || ed25519.PublicKeySize != len(publicKey) {
		return nil, fault.InvalidPublicKey
	}
	return publicKey, nil
}

// Decrypt - recover the private key, a wrong password gives
// fault.InvalidPassword
func (f *File) Decrypt(password string) (ed25519.PrivateKey, error) {
	publicKey, err := f.PublicKeyBytes()
	if nil != err {
		return nil, err
	}
	ciphertext, err := hex.DecodeString(f.PrivateKey)
	if nil != err {
		return nil, fault.InvalidPrivateKey
	}

	key, err := generateKey(password, &f.Salt)
	if nil != err {
		return nil, err
	}
	plaintext, err := decryptPrivateKey(ciphertext, key)
	if nil != err {
		return nil, err
	}
	privateKey := ed25519.PrivateKey(plaintext)

	// the embedded public half is only right if decryption was
	if !bytes.Equal(publicKey, plaintext[ed25519.PrivateKeySize-ed25519.PublicKeySize:]) {
		return nil, fault.InvalidPassword
	}
	signature := ed25519.Sign(privateKey, checkMessage)
	if !ed25519.Verify(publicKey, checkMessage, signature) {
		return nil, fault.InvalidPassword
	}
	return privateKey, nil
}

// Save - write a new key file, never overwrites
func Save(name string, f *File) error {
	if util.EnsureFileExists(name) {
		return fault.KeyFileExists
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if nil != err {
		return err
	}
	return util.WriteFileAtomic(name, append(data, '\n'), 0o600)
}

// Load - read a key file
func Load(name string) (*File, error) {
	data, err := ioutil.ReadFile(name)
	if os.IsNotExist(err) {
		return nil, fault.KeyFileNotFound
	}
	if nil != err {
		return nil, err
	}
	f := &File{}
	err = json.Unmarshal(data, f)
	if nil != err {
		return nil, err
	}
	return f, nil
}

func generateKey(password string, salt *Salt) ([]byte, error) {
	ctx := &argon2.Context{
		Iterations:  5,
		Memory:      1 << 16,
		Parallelism: 4,
		HashLen:     32,
		Mode:        argon2.ModeArgon2i,
		Version:     argon2.Version13,
	}
	return argon2.Hash(ctx, []byte(password), salt.Bytes())
}

func encryptPrivateKey(plaintext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if nil != err {
		return nil, err
	}

	ciphertext := make([]byte, aes.BlockSize+ed25519.PrivateKeySize)
	iv := ciphertext[:aes.BlockSize]
	if _, err := io.ReadFull(rand.Reader, iv); nil != err {
		return nil, err
	}
	mode := cipher.NewCBCEncrypter(block, iv)
	mode.CryptBlocks(ciphertext[aes.BlockSize:], plaintext)
	return ciphertext, nil
}

func decryptPrivateKey(ciphertext []byte, key []byte) ([]byte, error) {
	if aes.BlockSize+ed25519.PrivateKeySize != len(ciphertext) {
		return nil, fault.InvalidPrivateKey
	}
	block, err := aes.NewCipher(key)
	if nil != err {
		return nil, err
	}

	plaintext := make([]byte, ed25519.PrivateKeySize)
	mode := cipher.NewCBCDecrypter(block, ciphertext[:aes.BlockSize])
	mode.CryptBlocks(plaintext, ciphertext[aes.BlockSize:])
	return plaintext, nil
}
