package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"studentpoints_client/internals/features/auth/dto"
)

func newPasswordCommand(l *loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Mật khẩu tài khoản",
	}

	var req dto.ChangePasswordRequest
	change := &cobra.Command{
		Use:   "change",
		Short: "Đổi mật khẩu (6-12 ký tự)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := l.App()
			if err != nil {
				return err
			}

			res := app.Passwords.ChangePassword(cmd.Context(), req)
			if !res.Success {
				return res.Err()
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✅", res.Message)
			return nil
		},
	}
	f := change.Flags()
	f.StringVar(&req.OldPassword, "old", "", "mật khẩu hiện tại")
	f.StringVar(&req.NewPassword, "new", "", "mật khẩu mới")
	f.StringVar(&req.ConfirmPassword, "confirm", "", "nhập lại mật khẩu mới")

	cmd.AddCommand(change)
	return cmd
}
