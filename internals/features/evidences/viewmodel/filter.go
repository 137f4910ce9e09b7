package viewmodel

import (
	"sort"

	"studentpoints_client/internals/features/evidences/dto"
	"studentpoints_client/internals/features/evidences/model"
	helper "studentpoints_client/internals/helpers"
)

// ApplyFilter menghasilkan view turunan dari koleksi penuh. Fungsi murni:
// input sama → urutan output sama. Input tidak diubah.
//
//  1. judul mengandung TitleContains (case-fold, NFC); kosong = semua
//  2. status persis sama kecuali filter "all"
//  3. urut tanggal submitted_at per hari (newest turun, oldest naik); seri tetap urutan input.
//     Tanggal yang tidak bisa di-parse dianggap "hari ini", jadi paling baru.
func ApplyFilter(items []model.Evidence, c dto.FilterCriteria) []model.Evidence {
	c = c.Normalize()

	out := make([]model.Evidence, 0, len(items))
	for _, e := range items {
		if !helper.ContainsFolded(e.Title, c.TitleContains) {
			continue
		}
		if c.Status != dto.StatusAll && string(e.Status) != string(c.Status) {
			continue
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if c.SortOrder == dto.SortOldest {
			return newer(out[j], out[i])
		}
		return newer(out[i], out[j])
	})
	return out
}

// newer: a lebih baru dari b (resolusi hari).
func newer(a, b model.Evidence) bool {
	ad, aok := a.SubmittedAt.Day()
	bd, bok := b.SubmittedAt.Day()
	switch {
	case !aok:
		return bok
	case !bok:
		return false
	default:
		return ad.After(bd)
	}
}
