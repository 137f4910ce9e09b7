package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"studentpoints_client/internals/constants"
	"studentpoints_client/internals/features/evidences/dto"
	"studentpoints_client/internals/features/evidences/model"
	evidenceRepo "studentpoints_client/internals/features/evidences/repository"
	"studentpoints_client/internals/features/evidences/viewmodel"
	profileVM "studentpoints_client/internals/features/profiles/viewmodel"
	helper "studentpoints_client/internals/helpers"
)

func newEvidenceCommand(l *loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "evidence",
		Aliases: []string{"evidences", "ev"},
		Short:   "Minh chứng hoạt động",
	}
	cmd.AddCommand(
		newEvidenceListCommand(l),
		newEvidenceShowCommand(l),
		newEvidenceSubmitCommand(l),
		newEvidenceUpdateCommand(l),
	)
	return cmd
}

// studentEvidences: sumber koleksi yang dibatasi ke satu mahasiswa.
type studentEvidences struct {
	*evidenceRepo.EvidenceRepository
	studentID string
}

func (s studentEvidences) ListAll(ctx context.Context) helper.Result[[]model.Evidence] {
	return s.ListByStudent(ctx, s.studentID)
}

/* ===============================
   LIST
=================================*/

func newEvidenceListCommand(l *loader) *cobra.Command {
	var (
		title  string
		status string
		order  string
		mine   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Danh sách minh chứng (lọc theo tiêu đề, trạng thái, sắp xếp theo ngày nộp)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			criteria, err := parseCriteria(title, status, order)
			if err != nil {
				return err
			}

			app, err := l.App()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			var source viewmodel.EvidenceSource = app.Evidences
			if mine {
				studentID, err := ensureStudentID(ctx, app)
				if err != nil {
					return err
				}
				source = studentEvidences{EvidenceRepository: app.Evidences, studentID: studentID}
			}

			vm := viewmodel.NewSubmissionViewModel(source, viewmodel.WithLogger(app.Log))
			defer vm.Close()

			res := retryRead(ctx, l.flags.retries, func() helper.Result[[]model.Evidence] { return vm.Fetch(ctx) })
			if !res.Success {
				return res.Err()
			}

			snap := vm.SetFilter(criteria)
			renderEvidences(cmd.OutOrStdout(), snap.View)
			if snap.Total != len(snap.View) {
				fmt.Fprintf(cmd.OutOrStdout(), "(%d/%d minh chứng khớp bộ lọc)\n", len(snap.View), snap.Total)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&title, "title", "", "tiêu đề chứa chuỗi (không phân biệt hoa thường)")
	f.StringVar(&status, "status", string(dto.StatusAll), "all | approved | pending")
	f.StringVar(&order, "sort", string(dto.SortNewest), "newest | oldest")
	f.BoolVar(&mine, "mine", false, "chỉ minh chứng của sinh viên đang đăng nhập")
	return cmd
}

func parseCriteria(title, status, order string) (dto.FilterCriteria, error) {
	fields := map[string]string{}

	s, ok := dto.ParseStatusFilter(status)
	if !ok {
		fields["status"] = constants.FieldMsgInvalid
	}
	o, ok := dto.ParseSortOrder(order)
	if !ok {
		fields["sort"] = constants.FieldMsgInvalid
	}
	if len(fields) > 0 {
		return dto.FilterCriteria{}, &helper.AppError{Kind: helper.KindValidationFailed, Message: constants.MsgValidationFailed, Fields: fields}
	}
	return dto.FilterCriteria{TitleContains: title, Status: s, SortOrder: o}, nil
}

// ensureStudentID memakai student_id yang tersimpan; kalau belum ada, profil dimuat
// (yang sekaligus menyimpannya).
func ensureStudentID(ctx context.Context, app *App) (string, error) {
	sess, err := app.Session.Current(ctx)
	if err != nil {
		return "", err
	}
	if !sess.LoggedIn() {
		return "", helper.NewError(helper.KindUnauthenticated, constants.MsgNotLoggedIn)
	}
	if sess.StudentID != "" {
		return sess.StudentID, nil
	}

	res := profileVM.NewProfileViewModel(app.Profiles, app.Session, app.Log).Load(ctx)
	if !res.Success {
		return "", res.Err()
	}
	return res.Data.ID, nil
}

/* ===============================
   SHOW
=================================*/

func newEvidenceShowCommand(l *loader) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Chi tiết một minh chứng",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := l.App()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			res := retryRead(ctx, l.flags.retries, func() helper.Result[model.Evidence] {
				return app.Evidences.Get(ctx, args[0])
			})
			if !res.Success {
				return res.Err()
			}
			renderEvidence(cmd.OutOrStdout(), res.Data)
			return nil
		},
	}
}

/* ===============================
   SUBMIT
=================================*/

func newEvidenceSubmitCommand(l *loader) *cobra.Command {
	var draft dto.SubmitDraft

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Nộp minh chứng mới",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := l.App()
			if err != nil {
				return err
			}

			res := app.Evidences.Submit(cmd.Context(), draft)
			if !res.Success {
				return res.Err()
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✅", res.Message)
			renderEvidence(cmd.OutOrStdout(), res.Data)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&draft.Title, "title", "", "tên hoạt động")
	f.StringVar(&draft.Link, "link", "", "link minh chứng")
	f.Float64Var(&draft.Points, "points", 0, "số điểm tự đánh giá (> 0)")
	return cmd
}

/* ===============================
   UPDATE
=================================*/

func newEvidenceUpdateCommand(l *loader) *cobra.Command {
	var (
		title     string
		link      string
		selfPoint float64
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Sửa tiêu đề, link hoặc điểm tự đánh giá của minh chứng",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch dto.UpdatePatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("link") {
				patch.FileURL = &link
			}
			if cmd.Flags().Changed("self-point") {
				patch.SelfPoint = &selfPoint
			}

			app, err := l.App()
			if err != nil {
				return err
			}

			vm := viewmodel.NewSubmissionViewModel(app.Evidences, viewmodel.WithLogger(app.Log))
			defer vm.Close()

			res := vm.Update(cmd.Context(), args[0], patch)
			if !res.Success {
				return res.Err()
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✅", res.Message)
			renderEvidence(cmd.OutOrStdout(), res.Data)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&title, "title", "", "tiêu đề mới")
	f.StringVar(&link, "link", "", "link minh chứng mới")
	f.Float64Var(&selfPoint, "self-point", 0, "điểm tự đánh giá mới (> 0)")
	return cmd
}
