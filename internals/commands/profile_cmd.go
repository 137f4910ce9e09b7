package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"studentpoints_client/internals/features/profiles/dto"
	"studentpoints_client/internals/features/profiles/model"
	profileVM "studentpoints_client/internals/features/profiles/viewmodel"
	helper "studentpoints_client/internals/helpers"
)

func newProfileCommand(l *loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Thông tin sinh viên",
	}
	cmd.AddCommand(newProfileShowCommand(l), newProfileSaveCommand(l))
	return cmd
}

func newProfileShowCommand(l *loader) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Hiển thị thông tin sinh viên đang đăng nhập",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := l.App()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			vm := profileVM.NewProfileViewModel(app.Profiles, app.Session, app.Log)
			res := retryRead(ctx, l.flags.retries, func() helper.Result[model.StudentProfile] { return vm.Load(ctx) })
			if !res.Success {
				return res.Err()
			}
			renderProfile(cmd.OutOrStdout(), vm.View())
			return nil
		},
	}
}

// flag → field form
var profileFlags = []struct {
	flag, field, usage string
}{
	{"dob", dto.FieldDateOfBirth, "ngày sinh dd/mm/yyyy"},
	{"gender", dto.FieldGender, "Nam | Nữ"},
	{"email", dto.FieldEmail, "email"},
	{"phone", dto.FieldPhone, "số điện thoại (9-12 chữ số)"},
	{"address", dto.FieldContactAddress, "địa chỉ liên hệ"},
	{"avatar", dto.FieldAvatar, "ảnh đại diện (đường dẫn cục bộ, không upload)"},
}

func newProfileSaveCommand(l *loader) *cobra.Command {
	values := make(map[string]*string, len(profileFlags))

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Cập nhật thông tin sinh viên (chỉ các trường được truyền)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := l.App()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			vm := profileVM.NewProfileViewModel(app.Profiles, app.Session, app.Log)
			if res := vm.Load(ctx); !res.Success {
				return res.Err()
			}

			for _, pf := range profileFlags {
				if !cmd.Flags().Changed(pf.flag) {
					continue
				}
				if err := vm.Stage(pf.field, *values[pf.flag]); err != nil {
					return err
				}
			}

			res := vm.Save(ctx)
			if !res.Success {
				return res.Err()
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✅", res.Message)
			renderProfile(cmd.OutOrStdout(), vm.View())
			return nil
		},
	}

	for _, pf := range profileFlags {
		values[pf.flag] = cmd.Flags().String(pf.flag, "", pf.usage)
	}
	return cmd
}

func renderProfile(out io.Writer, v profileVM.ProfileView) {
	monitor := "Không"
	if v.IsClassMonitor {
		monitor = "Có"
	}
	renderPairs(out, [][]string{
		{"Mã sinh viên", v.StudentNumber},
		{"Họ tên", v.FullName},
		{"Lớp", v.ClassName},
		{"Khoa", v.Faculty},
		{"Giới tính", v.Gender},
		{"Ngày sinh", v.DateOfBirth},
		{"Email", v.Email},
		{"Số điện thoại", v.Phone},
		{"Địa chỉ", v.ContactAddress},
		{"Ảnh đại diện", v.AvatarURI},
		{"Lớp trưởng", monitor},
	})
}
