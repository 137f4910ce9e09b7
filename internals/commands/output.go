package commands

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"studentpoints_client/internals/features/evidences/model"
	helper "studentpoints_client/internals/helpers"
)

// ErrorMessage: pesan untuk pengguna. AppError → pesan + error per field (urut nama field).
func ErrorMessage(err error) string {
	var ae *helper.AppError
	if !errors.As(err, &ae) {
		return err.Error()
	}

	var b strings.Builder
	b.WriteString(ae.Message)
	keys := make([]string, 0, len(ae.Fields))
	for k := range ae.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "\n  - %s: %s", k, ae.Fields[k])
	}
	return b.String()
}

func points(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func renderEvidences(out io.Writer, items []model.Evidence) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"ID", "Tiêu đề", "Trạng thái", "Ngày nộp", "Điểm tự đánh giá"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)

	for _, e := range items {
		table.Append([]string{e.ID, e.Title, e.Status.Label(), e.SubmittedAt.Display(), points(e.SelfPoint)})
	}
	table.SetFooter([]string{"", "", "", "Tổng", strconv.Itoa(len(items))})
	table.Render()
}

func renderEvidence(out io.Writer, e model.Evidence) {
	verified := "-"
	if e.IsVerified() {
		verified = e.VerifiedAt.Display()
	}

	table := tablewriter.NewWriter(out)
	table.SetAutoWrapText(false)
	table.AppendBulk([][]string{
		{"ID", e.ID},
		{"Tiêu đề", e.Title},
		{"Trạng thái", e.Status.Label()},
		{"Link", e.FileURL},
		{"Sinh viên", e.SubmitterName()},
		{"Ngày nộp", e.SubmittedAt.Display()},
		{"Ngày duyệt", verified},
		{"Điểm tự đánh giá", points(e.SelfPoint)},
		{"Điểm lớp", points(e.ClassPoint)},
		{"Điểm khoa", points(e.FacultyPoint)},
	})
	table.Render()
}

func renderPairs(out io.Writer, rows [][]string) {
	table := tablewriter.NewWriter(out)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}
