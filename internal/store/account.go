package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/AlexZinkM/cdp-wallet/internal/common"
	"github.com/AlexZinkM/cdp-wallet/internal/model"
	"github.com/AlexZinkM/cdp-wallet/internal/walleterr"

	"go.uber.org/zap"
)

// AccountCreator asks the custody provider for a fresh server account.
type AccountCreator interface {
	CreateAccount(ctx context.Context) (string, error)
}

// AccountStore maps the managed account to its persisted address.
// The file is not locked: two processes creating the first account at the
// same time may both create one, and the last write wins.
type AccountStore struct {
	filePath string
	creator  AccountCreator
	logger   *zap.Logger

	mu      sync.Mutex
	account *model.Account
}

// NewAccountStore creates a store backed by a single-line text file.
func NewAccountStore(filePath string, creator AccountCreator, logger *zap.Logger) *AccountStore {
	return &AccountStore{filePath: filePath, creator: creator, logger: logger}
}

// Resolve returns the persisted account, creating and persisting one when the
// file is absent, empty or malformed. Once resolved the account is memoised.
func (s *AccountStore) Resolve(ctx context.Context) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.account != nil {
		return *s.account, nil
	}

	address, err := s.read()
	switch {
	case err == nil:
		s.logger.Debug("Using existing account", zap.String("address", address), zap.String("file", s.filePath))
		return s.remember(address), nil
	case walleterr.Is(err, walleterr.KindMalformedPersistedState):
		// recovered locally by creating a new account
		s.logger.Warn("Saved address is malformed, creating a new account", zap.Error(err))
	case errors.Is(err, os.ErrNotExist):
		s.logger.Info("No saved address, creating a new account", zap.String("file", s.filePath))
	default:
		return model.Account{}, err
	}

	address, err = s.creator.CreateAccount(ctx)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}
	if !common.IsAddress(address) {
		return model.Account{}, walleterr.Newf(walleterr.KindTransport, "custody provider returned invalid address %q", address)
	}

	if err := os.WriteFile(s.filePath, []byte(address), 0600); err != nil {
		return model.Account{}, walleterr.Wrap(walleterr.KindInternal, "failed to save address", err)
	}
	s.logger.Info("New account created", zap.String("address", address), zap.String("file", s.filePath))

	return s.remember(address), nil
}

func (s *AccountStore) remember(address string) model.Account {
	s.account = &model.Account{Address: address, Kind: model.AccountKindServerCustodial}
	return *s.account
}

// read loads and validates the saved address.
func (s *AccountStore) read() (string, error) {
	fileData, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		return "", walleterr.Wrap(walleterr.KindInternal, "failed to read address file", err)
	}

	// Skip UTF-8 BOM if present
	fileData = bytes.TrimPrefix(fileData, []byte{0xEF, 0xBB, 0xBF})

	address := strings.TrimSpace(string(fileData))
	if address == "" {
		return "", walleterr.New(walleterr.KindMalformedPersistedState, "address file is empty")
	}
	if !common.IsAddress(address) {
		return "", walleterr.Newf(walleterr.KindMalformedPersistedState, "saved address %q has wrong format", address)
	}
	return address, nil
}
