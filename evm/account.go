package evm

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/AlexZinkM/cdp-wallet/internal/model"

	"github.com/skip2/go-qrcode"
)

// Account returns the managed account with its network details and a QR code
// of the address.
func (w *Wallet) Account(ctx context.Context) (*model.AccountResponse, error) {
	account, err := w.accounts.Resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account: %w", err)
	}

	qrCode, err := generateQRCode(account.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	return &model.AccountResponse{
		Address:  account.Address,
		Kind:     string(account.Kind),
		Network:  w.chain.Name,
		ChainID:  w.chain.ChainID,
		Provider: w.provider,
		QR:       qrCode,
	}, nil
}

// generateQRCode generates QR code of address in base64
func generateQRCode(address string) (string, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	// Get PNG image
	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	// Encode to base64
	return base64.StdEncoding.EncodeToString(png), nil
}

// TerminalQR renders address as a QR code made of block characters.
func TerminalQR(address string) (string, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}
	return qr.ToSmallString(false), nil
}
