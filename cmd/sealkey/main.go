// sealkey manages the encrypted signer keystore (.cwt) read by the relay at startup.
// Usage: go run ./cmd/sealkey seal --out signer.cwt --account 0x... --chain SN_SEPOLIA
package main

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/paymesh/paymesh-server/internal/config"
	"github.com/paymesh/paymesh-server/internal/crypto"
	"github.com/paymesh/paymesh-server/internal/model"
	"github.com/paymesh/paymesh-server/starknet"

	"github.com/skip2/go-qrcode"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "sealkey",
		Usage: "create and inspect PayMesh signer keystores",
		Commands: []*cli.Command{
			sealCommand,
			inspectCommand,
			verifyCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var fileFlag = &cli.StringFlag{
	Name:     "file",
	Aliases:  []string{"f"},
	Usage:    "keystore file (.cwt)",
	Required: true,
}

var sealCommand = &cli.Command{
	Name:  "seal",
	Usage: "encrypt a signer private key into a new keystore",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file (.cwt)", Required: true},
		&cli.StringFlag{Name: "account", Usage: "account contract address the key signs for", Required: true},
		&cli.StringFlag{Name: "chain", Usage: "chain id: SN_MAIN or SN_SEPOLIA", Required: true},
	},
	Action: func(c *cli.Context) error {
		account := c.String("account")
		if !starknet.IsValidAddress(account) {
			return fmt.Errorf("invalid account address %q", account)
		}
		chain := c.String("chain")
		if chain != starknet.ChainMainnet && chain != starknet.ChainSepolia {
			return fmt.Errorf("unsupported chain id %q", chain)
		}

		// Key is read from the terminal so it never lands in shell history
		rawKey, err := config.PromptForPassword("Private key (hex): ")
		if err != nil {
			return err
		}
		key, err := starknet.ParsePrivateKey(string(rawKey))
		clear(rawKey)
		if err != nil {
			return err
		}
		keyBytes := key.FillBytes(make([]byte, 32))
		defer clear(keyBytes)

		password, err := readNewPassword()
		if err != nil {
			return err
		}
		defer clear(password)

		qr, err := generateQRCode(account)
		if err != nil {
			return fmt.Errorf("failed to generate QR code: %w", err)
		}

		err = crypto.SealSigner(c.String("out"), chain, account, qr, &model.SignerData{
			PrivateKey: keyBytes,
			CreatedAt:  time.Now().Format(time.RFC3339),
		}, password)
		if err != nil {
			return err
		}

		fmt.Printf("sealed signer for %s on %s into %s\n", account, chain, c.String("out"))
		return nil
	},
}

var inspectCommand = &cli.Command{
	Name:  "inspect",
	Usage: "print the public header of a keystore",
	Flags: []cli.Flag{fileFlag},
	Action: func(c *cli.Context) error {
		header, err := crypto.ReadKeystore(c.String("file"))
		if err != nil {
			return err
		}
		fmt.Printf("network: %s\naddress: %s\n", header.Network, header.Address)
		return nil
	},
}

var verifyCommand = &cli.Command{
	Name:  "verify",
	Usage: "check that a keystore decrypts with the given password",
	Flags: []cli.Flag{fileFlag},
	Action: func(c *cli.Context) error {
		password, err := config.PromptForPassword("Keystore password: ")
		if err != nil {
			return err
		}
		defer clear(password)

		header, signerData, err := crypto.OpenSigner(c.String("file"), password)
		if err != nil {
			return err
		}
		defer clear(signerData.PrivateKey)

		fmt.Printf("ok: signer for %s on %s, created %s\n", header.Address, header.Network, signerData.CreatedAt)
		return nil
	},
}

// readNewPassword prompts twice and requires both entries to match
func readNewPassword() ([]byte, error) {
	password, err := config.PromptForPassword("New keystore password: ")
	if err != nil {
		return nil, err
	}
	confirm, err := config.PromptForPassword("Repeat password: ")
	if err != nil {
		clear(password)
		return nil, err
	}
	defer clear(confirm)

	if !bytes.Equal(password, confirm) {
		clear(password)
		return nil, errors.New("passwords do not match")
	}
	return password, nil
}

// generateQRCode generates a QR code of the account address in base64,
// so the account can be funded for fees by scanning the keystore header
func generateQRCode(address string) (string, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
