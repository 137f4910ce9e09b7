package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"studentpoints_client/internals/constants"
	helper "studentpoints_client/internals/helpers"
)

func newLoginCommand(l *loader) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Đăng nhập và lưu phiên trên thiết bị",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := l.App()
			if err != nil {
				return err
			}

			sess, err := app.Session.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✅", constants.MsgLoginSucceeded)
			fmt.Fprintln(cmd.OutOrStdout(), "user_id:", sess.UserID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "mã sinh viên")
	cmd.Flags().StringVarP(&password, "password", "p", "", "mật khẩu")
	return cmd
}

func newLogoutCommand(l *loader) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Xoá phiên đăng nhập trên thiết bị",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := l.App()
			if err != nil {
				return err
			}
			app.Session.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), constants.MsgLogoutSucceeded)
			return nil
		},
	}
}

func newWhoamiCommand(l *loader) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Hiển thị phiên đăng nhập hiện tại",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := l.App()
			if err != nil {
				return err
			}

			sess, err := app.Session.Current(cmd.Context())
			if err != nil {
				return err
			}
			if !sess.LoggedIn() {
				return helper.NewError(helper.KindUnauthenticated, constants.MsgNotLoggedIn)
			}

			expires := "-"
			if sess.ExpiresAt != nil {
				expires = sess.ExpiresAt.Local().Format("02/01/2006 15:04")
				if sess.IsExpired(time.Now()) {
					expires += " (hết hạn)"
				}
			}
			studentID := sess.StudentID
			if studentID == "" {
				studentID = "-"
			}

			renderPairs(cmd.OutOrStdout(), [][]string{
				{"user_id", sess.UserID},
				{"student_id", studentID},
				{"Hết hạn", expires},
			})
			return nil
		},
	}
}
