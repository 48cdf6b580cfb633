package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/mitrakurir/internal/buildinfo"
	"github.com/dmitrijs2005/mitrakurir/internal/client/models"
)

// AppFactory builds the App a command runs against. Commands that need no
// App (version) never call it.
type AppFactory func(ctx context.Context, in io.Reader, out io.Writer) (*App, error)

// NewRootCommand creates the mitra command tree. Config flags (-c, -a, -d,
// -t, -l) are consumed before cobra sees the arguments.
func NewRootCommand(factory AppFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mitra",
		Short: "Courier partner client",
		Long: `Client for the courier-partner platform: account registration and OTP
verification, login, password recovery, profile and document management.

Config flags accepted before or after the subcommand:
  -c, -config <file>   JSON config file
  -a <url>             API base URL
  -d <path>            local database path
  -t <seconds>         request timeout
  -l <level>           log level (-4 debug, 0 info, 4 warn, 8 error)`,
		SilenceUsage: true,
	}

	cmd.AddCommand(
		newRegisterCommand(factory),
		newVerifyOTPCommand(factory),
		newLoginCommand(factory),
		newForgotPasswordCommand(factory),
		newResetPasswordCommand(factory),
		newChangePasswordCommand(factory),
		newProfileCommand(factory),
		newDocumentsCommand(factory),
		newLogoutCommand(factory),
		newStatusCommand(factory),
		newShellCommand(factory),
		newVersionCommand(),
	)
	return cmd
}

func withApp(cmd *cobra.Command, factory AppFactory, fn func(ctx context.Context, a *App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := factory(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

func newRegisterCommand(factory AppFactory) *cobra.Command {
	in := registerInput{}
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a partner account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, factory, func(ctx context.Context, a *App) error {
				return a.Register(ctx, in)
			})
		},
	}
	cmd.Flags().StringVarP(&in.Name, "name", "n", "", "full name")
	cmd.Flags().StringVarP(&in.Email, "email", "e", "", "email address")
	cmd.Flags().StringVarP(&in.Phone, "phone", "p", "", "phone number")
	return cmd
}

func newVerifyOTPCommand(factory AppFactory) *cobra.Command {
	in := verifyInput{}
	cmd := &cobra.Command{
		Use:   "verify-otp [code]",
		Short: "Verify the account with the emailed OTP code",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				in.OTP = args[0]
			}
			return withApp(cmd, factory, func(ctx context.Context, a *App) error {
				return a.VerifyOTP(ctx, in)
			})
		},
	}
	cmd.Flags().StringVarP(&in.Email, "email", "e", "", "email address (defaults to the pending one)")
	return cmd
}

func newLoginCommand(factory AppFactory) *cobra.Command {
	in := loginInput{}
	cmd := &cobra.Command{
		Use:   "login [email-or-phone]",
		Short: "Log in and cache the session and profile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				in.Identifier = args[0]
			}
			return withApp(cmd, factory, func(ctx context.Context, a *App) error {
				return a.Login(ctx, in)
			})
		},
	}
	return cmd
}

func newForgotPasswordCommand(factory AppFactory) *cobra.Command {
	in := forgotInput{}
	return &cobra.Command{
		Use:   "forgot-password [email-or-phone]",
		Short: "Request a password reset code",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				in.EmailOrPhone = args[0]
			}
			return withApp(cmd, factory, func(ctx context.Context, a *App) error {
				return a.ForgotPassword(ctx, in)
			})
		},
	}
}

func newResetPasswordCommand(factory AppFactory) *cobra.Command {
	in := resetInput{}
	cmd := &cobra.Command{
		Use:   "reset-password [code]",
		Short: "Set a new password with the reset code",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				in.OTP = args[0]
			}
			return withApp(cmd, factory, func(ctx context.Context, a *App) error {
				return a.ResetPassword(ctx, in)
			})
		},
	}
	cmd.Flags().StringVarP(&in.EmailOrPhone, "email", "e", "", "email or phone (defaults to the pending one)")
	return cmd
}

func newChangePasswordCommand(factory AppFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "change-password",
		Short: "Change the password of the logged-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, factory, func(ctx context.Context, a *App) error {
				return a.ChangePassword(ctx)
			})
		},
	}
}

func newProfileCommand(factory AppFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit the partner profile",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the cached profile, then refresh it from the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, factory, func(ctx context.Context, a *App) error {
				return a.ShowProfile(ctx)
			})
		},
	}

	var (
		name, address, birthDate, bank, photo string
		interactive                           bool
	)
	update := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields; unset flags are left unchanged",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			upd := models.ProfileUpdate{Photo: photo}
			set := func(flag string, v string) *string {
				if !cmd.Flags().Changed(flag) {
					return nil
				}
				return &v
			}
			upd.Name = set("name", name)
			upd.Address = set("address", address)
			upd.BirthDate = set("birth-date", birthDate)
			upd.BankAccount = set("bank-account", bank)
			return withApp(cmd, factory, func(ctx context.Context, a *App) error {
				return a.UpdateProfile(ctx, upd, interactive)
			})
		},
	}
	update.Flags().StringVarP(&name, "name", "n", "", "full name")
	update.Flags().StringVar(&address, "address", "", "address")
	update.Flags().StringVarP(&birthDate, "birth-date", "b", "", "birth date, YYYY-MM-DD")
	update.Flags().StringVar(&bank, "bank-account", "", "bank account")
	update.Flags().StringVarP(&photo, "photo", "f", "", "photo file path or file:// URI")
	update.Flags().BoolVarP(&interactive, "interactive", "i", false, "prompt for fields not given as flags")

	cmd.AddCommand(show, update)
	return cmd
}

func newDocumentsCommand(factory AppFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "documents",
		Aliases: []string{"docs"},
		Short:   "Upload and list partner documents",
	}

	upload := &cobra.Command{
		Use:   "upload <kind> <file>",
		Short: "Upload a document (e.g. KTP, SIM, STNK)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, factory, func(ctx context.Context, a *App) error {
				return a.UploadDocument(ctx, uploadInput{Kind: args[0], File: args[1]})
			})
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List uploaded documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, factory, func(ctx context.Context, a *App) error {
				return a.ListDocuments(ctx)
			})
		},
	}

	cmd.AddCommand(upload, list)
	return cmd
}

func newLogoutCommand(factory AppFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear the local session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, factory, func(ctx context.Context, a *App) error {
				return a.Logout(ctx)
			})
		},
	}
}

func newStatusCommand(factory AppFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the cached session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, factory, func(ctx context.Context, a *App) error {
				return a.Status(ctx)
			})
		},
	}
}

func newShellCommand(factory AppFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, factory, func(ctx context.Context, a *App) error {
				a.printf("Mitra shell (type 'help' for commands)\n")
				runREPL(ctx, a, a.reader, a.out)
				return nil
			})
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	}
}
