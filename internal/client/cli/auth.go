package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/batorigb/kinotv/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the sign-up fields and creates an account. On success
// the user is signed in immediately. The password byte slice is wiped before
// returning.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your name", os.Stdout)
	if err != nil {
		return err
	}

	phone, err := getSimpleText(a.reader, "Enter phone number", os.Stdout)
	if err != nil {
		return err
	}

	registrationID, err := getSimpleText(a.reader, "Enter registration number", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.auth.SignUp(ctx, name, phone, registrationID, password)
	if err != nil {
		return err
	}

	a.user = user
	fmt.Printf("Account created. Welcome, %s!\n", user.Name)
	return nil
}

// Login prompts for credentials and authenticates. The password is wiped
// before returning.
func (a *App) Login(ctx context.Context) error {
	identifier, err := getSimpleText(a.reader, "Enter phone number or email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.auth.SignIn(ctx, identifier, password)
	if err != nil {
		return err
	}

	a.user = user
	fmt.Printf("Welcome, %s!\n", user.Name)
	return nil
}

// Logout ends the remote session and drops the signed-in user. When the
// platform call fails the user stays signed in; retrying later is safer than
// pretending the session is gone.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Not logged in.")
		return nil
	}
	if err := a.auth.SignOut(ctx); err != nil {
		return err
	}
	a.user = nil
	fmt.Println("Logged out.")
	return nil
}

// ResetPassword runs the forgotten-password workflow: identity verification
// by registration number, then the new password.
func (a *App) ResetPassword(ctx context.Context) error {
	registrationID, err := getSimpleText(a.reader, "Enter registration number", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.ResetPassword(ctx, registrationID, password); err != nil {
		return err
	}

	fmt.Println("Password changed. You can log in now.")
	return nil
}

// Whoami prints the signed-in account.
func (a *App) Whoami(_ context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Not logged in.")
		return nil
	}
	fmt.Printf("%s\nphone: %s\nemail: %s\n", a.user.Name, a.user.Phone, a.user.Email)
	return nil
}
