package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/Breathless11/Tamamla/internal/client/models"
	"github.com/Breathless11/Tamamla/internal/common"
	"github.com/Breathless11/Tamamla/internal/cryptox"
	"github.com/Breathless11/Tamamla/internal/dbx"
	"github.com/Breathless11/Tamamla/internal/logging"
)

// MinPasswordLength is counted in characters, not bytes.
const MinPasswordLength = 6

// AccountDirectory registers, authenticates and removes local accounts.
type AccountDirectory struct {
	*base
	tasks  *TaskStore
	params cryptox.Params
	logger logging.Logger

	decoyOnce   sync.Once
	decoyDigest string
}

// Register creates an account for username. The password is stored only as
// an argon2id digest.
func (a *AccountDirectory) Register(ctx context.Context, username string, password []byte) error {
	if strings.TrimSpace(username) == "" {
		return common.ErrEmptyUsername
	}
	if utf8.RuneCount(password) < MinPasswordLength {
		return common.ErrPasswordTooShort
	}

	digest := cryptox.DigestPassword(password, a.params)

	a.mu.Lock()
	defer a.mu.Unlock()

	err := a.rm.Accounts(a.db).Add(ctx, models.Account{Username: username, CredentialDigest: digest})
	switch {
	case errors.Is(err, common.ErrDuplicateUsername):
		return err
	case err != nil:
		return storageFailure(ctx, a.logger, "register", err)
	}

	a.logger.Info(ctx, "account registered", "username", username)
	return nil
}

// Authenticate checks the credentials. Unknown usernames and wrong passwords
// both yield common.ErrInvalidCredentials and cost the same digest work.
func (a *AccountDirectory) Authenticate(ctx context.Context, username string, password []byte) (*models.Account, error) {
	a.mu.Lock()
	acc, err := a.rm.Accounts(a.db).Find(ctx, username)
	a.mu.Unlock()

	switch {
	case errors.Is(err, common.ErrNotFound):
		_, _ = cryptox.VerifyPassword(a.decoy(), password)
		return nil, common.ErrInvalidCredentials
	case err != nil:
		return nil, storageFailure(ctx, a.logger, "authenticate", err)
	}

	ok, err := cryptox.VerifyPassword(acc.CredentialDigest, password)
	if err != nil {
		a.logger.Error(ctx, "stored credential digest is unreadable", "username", username, "error", err)
		return nil, common.ErrInvalidCredentials
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}
	return acc, nil
}

// DeleteAccount removes username and every task it owns. The account and task
// records are removed in one transaction; reminders are cancelled after it
// commits.
func (a *AccountDirectory) DeleteAccount(ctx context.Context, username string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.rm.Accounts(a.db).Find(ctx, username); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return err
		}
		return storageFailure(ctx, a.logger, "delete account", err)
	}

	list, err := a.rm.Tasks(a.db).ListByUser(ctx, username)
	if err != nil {
		return storageFailure(ctx, a.logger, "delete account", err)
	}
	err = dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := a.rm.Accounts(tx).Remove(ctx, username); err != nil {
			return err
		}
		return a.rm.Tasks(tx).DeleteUser(ctx, username)
	})
	if err != nil {
		return storageFailure(ctx, a.logger, "delete account", err)
	}
	a.tasks.cancelReminders(ctx, list)

	a.logger.Info(ctx, "account deleted", "username", username, "tasks", len(list))
	return nil
}

// ConfirmPassword checks that the user typed the same password twice.
func (a *AccountDirectory) ConfirmPassword(password, confirmation []byte) error {
	if subtle.ConstantTimeCompare(password, confirmation) != 1 {
		return common.ErrPasswordMismatch
	}
	return nil
}

func (a *AccountDirectory) decoy() string {
	a.decoyOnce.Do(func() {
		a.decoyDigest = cryptox.DigestPassword(common.GenerateRandByteArray(16), a.params)
	})
	return a.decoyDigest
}
