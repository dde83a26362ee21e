package cli

import (
	"context"
	"fmt"

	"github.com/Breathless11/Tamamla/internal/common"
)

// Register prompts for a username and the password twice, then creates the
// account. The password buffers are wiped before returning.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Choose a username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirmation, err := getPassword("Repeat password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirmation)

	if err := a.accounts.ConfirmPassword(password, confirmation); err != nil {
		return err
	}
	if err := a.accounts.Register(ctx, userName, password); err != nil {
		return err
	}

	printlnFn("Account created, you can log in now.")
	return nil
}

// Login authenticates and remembers the user across restarts. Attempts are
// throttled by the App's rate limiter.
func (a *App) Login(ctx context.Context) error {
	if !a.limiter.Allow() {
		a.logger.Warn(ctx, "login throttled")
		return errTooManyAttempts
	}

	userName, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	acc, err := a.accounts.Authenticate(ctx, userName, password)
	if err != nil {
		a.logger.Info(ctx, "login unsuccessful")
		return err
	}

	a.userName = acc.Username
	if err := a.session.SetCurrent(ctx, acc.Username); err != nil {
		a.logger.Warn(ctx, "login will not be remembered", "error", err)
	}

	printlnFn(fmt.Sprintf("Logged in as %s.", acc.Username))
	return nil
}

// Logout forgets the remembered login.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.SetCurrent(ctx, ""); err != nil {
		return err
	}
	a.userName = ""
	printlnFn("Logged out.")
	return nil
}

// DeleteAccount removes the logged-in account and all its tasks after the
// user retypes the username.
func (a *App) DeleteAccount(ctx context.Context) error {
	confirm, err := getSimpleText(a.reader,
		fmt.Sprintf("This deletes %s and all tasks. Type the username to confirm", a.userName), a.out)
	if err != nil {
		return err
	}
	if confirm != a.userName {
		return errNotConfirmed
	}

	if err := a.accounts.DeleteAccount(ctx, a.userName); err != nil {
		return err
	}
	if err := a.session.SetCurrent(ctx, ""); err != nil {
		a.logger.Warn(ctx, "failed to clear session of deleted account", "error", err)
	}
	a.userName = ""

	printlnFn("Account deleted.")
	return nil
}
