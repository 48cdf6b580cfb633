package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/mitrakurir/internal/client/models"
)

// execIface is the command surface the shell dispatches to. App satisfies it.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	getStatus(ctx context.Context) string
	Register(ctx context.Context, in registerInput) error
	VerifyOTP(ctx context.Context, in verifyInput) error
	Login(ctx context.Context, in loginInput) error
	ForgotPassword(ctx context.Context, in forgotInput) error
	ResetPassword(ctx context.Context, in resetInput) error
	ChangePassword(ctx context.Context) error
	ShowProfile(ctx context.Context) error
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate, interactive bool) error
	UploadDocument(ctx context.Context, in uploadInput) error
	ListDocuments(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
}

// runREPL reads commands from reader until EOF, "exit" or "quit". Command
// errors are printed and the loop continues.
//
//	Logged out: register, verify, login, forgot, reset, status, help, exit
//	Logged in:  profile, edit, upload, docs, passwd, verify, status, logout, help, exit
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "mitra %s> ", a.getStatus(ctx))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		var cmdErr error
		switch cmd := parts[0]; cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				fmt.Fprintln(w, "Available commands: profile, edit, upload, docs, passwd, verify, status, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: register, verify, login, forgot, reset, status, exit")
			}
		case "register":
			cmdErr = a.Register(ctx, registerInput{})
		case "verify", "verify-otp":
			cmdErr = a.VerifyOTP(ctx, verifyInput{})
		case "login":
			cmdErr = a.Login(ctx, loginInput{})
		case "forgot", "forgot-password":
			cmdErr = a.ForgotPassword(ctx, forgotInput{})
		case "reset", "reset-password":
			cmdErr = a.ResetPassword(ctx, resetInput{})
		case "passwd", "change-password":
			cmdErr = a.ChangePassword(ctx)
		case "profile":
			cmdErr = a.ShowProfile(ctx)
		case "edit":
			cmdErr = a.UpdateProfile(ctx, models.ProfileUpdate{}, true)
		case "upload":
			in := uploadInput{}
			if len(parts) > 1 {
				in.Kind = parts[1]
			}
			if len(parts) > 2 {
				in.File = parts[2]
			}
			cmdErr = a.UploadDocument(ctx, in)
		case "docs", "documents":
			cmdErr = a.ListDocuments(ctx)
		case "status":
			cmdErr = a.Status(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(w, "Error:", cmdErr)
		}
		if err != nil {
			return
		}
	}
}
