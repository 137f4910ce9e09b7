package viewmodel

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"

	"studentpoints_client/internals/features/evidences/dto"
	"studentpoints_client/internals/features/evidences/model"
	"studentpoints_client/internals/helpers/datefmt"
)

func ev(id, title string, status model.Status, submitted string) model.Evidence {
	return model.Evidence{
		ID:          id,
		Title:       title,
		Status:      status,
		SubmittedAt: datefmt.ParseTimestamp(submitted),
	}
}

func ids(items []model.Evidence) []string {
	out := make([]string, 0, len(items))
	for _, e := range items {
		out = append(out, e.ID)
	}
	return out
}

func TestApplyFilterSeminarScenario(t *testing.T) {
	items := []model.Evidence{
		ev("a", "Seminar A", model.StatusApproved, "01/01/2024"),
		ev("b", "Seminar B", model.StatusPending, "05/01/2024"),
	}

	got := ApplyFilter(items, dto.FilterCriteria{TitleContains: "seminar", Status: dto.StatusPending, SortOrder: dto.SortNewest})
	require.Len(t, got, 1)
	assert.Equal(t, "Seminar B", got[0].Title)
}

func TestApplyFilterSortOrders(t *testing.T) {
	items := []model.Evidence{
		ev("mid", "x", model.StatusPending, "10/02/2024"),
		ev("old", "x", model.StatusPending, "2023-12-31T23:00:00Z"),
		ev("new", "x", model.StatusPending, "1/3/2024"),
	}

	assert.Equal(t, []string{"new", "mid", "old"}, ids(ApplyFilter(items, dto.FilterCriteria{SortOrder: dto.SortNewest})))
	assert.Equal(t, []string{"old", "mid", "new"}, ids(ApplyFilter(items, dto.FilterCriteria{SortOrder: dto.SortOldest})))
}

func TestApplyFilterStableTies(t *testing.T) {
	items := []model.Evidence{
		ev("1", "a", model.StatusPending, "01/01/2024"),
		ev("2", "b", model.StatusPending, "02/01/2024"),
		ev("3", "c", model.StatusPending, "01/01/2024"),
		ev("4", "d", model.StatusPending, "2024-01-01"),
	}

	assert.Equal(t, []string{"2", "1", "3", "4"}, ids(ApplyFilter(items, dto.DefaultCriteria())))
	assert.Equal(t, []string{"1", "3", "4", "2"}, ids(ApplyFilter(items, dto.FilterCriteria{SortOrder: dto.SortOldest})))
}

func TestApplyFilterSameDayKeepsInputOrder(t *testing.T) {
	items := []model.Evidence{
		ev("early", "x", model.StatusPending, "2024-01-05T08:00:00Z"),
		ev("late", "x", model.StatusPending, "2024-01-05T17:00:00Z"),
		ev("dmy", "x", model.StatusPending, "05/01/2024"),
	}

	assert.Equal(t, []string{"early", "late", "dmy"}, ids(ApplyFilter(items, dto.FilterCriteria{SortOrder: dto.SortNewest})))
	assert.Equal(t, []string{"early", "late", "dmy"}, ids(ApplyFilter(items, dto.FilterCriteria{SortOrder: dto.SortOldest})))
}

func TestApplyFilterUnparseableDateSortsNewest(t *testing.T) {
	items := []model.Evidence{
		ev("ok", "x", model.StatusPending, "01/01/2020"),
		ev("bad", "x", model.StatusPending, "kemarin"),
		ev("future", "x", model.StatusPending, "01/01/2030"),
		ev("empty", "x", model.StatusPending, ""),
	}

	assert.Equal(t, []string{"bad", "empty", "future", "ok"}, ids(ApplyFilter(items, dto.DefaultCriteria())))
	assert.Equal(t, []string{"ok", "future", "bad", "empty"}, ids(ApplyFilter(items, dto.FilterCriteria{SortOrder: dto.SortOldest})))
}

func TestApplyFilterFoldsVietnamese(t *testing.T) {
	decomposed := norm.NFD.String("Hiến máu nhân đạo")
	items := []model.Evidence{
		ev("1", decomposed, model.StatusApproved, "01/01/2024"),
		ev("2", "Mùa hè xanh", model.StatusPending, "02/01/2024"),
	}

	got := ApplyFilter(items, dto.FilterCriteria{TitleContains: "  HIẾN MÁU "})
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestApplyFilterUnknownStatusMatchesOnlyAll(t *testing.T) {
	items := []model.Evidence{ev("r", "x", model.Status("rejected"), "01/01/2024")}

	assert.Len(t, ApplyFilter(items, dto.FilterCriteria{Status: dto.StatusAll}), 1)
	assert.Empty(t, ApplyFilter(items, dto.FilterCriteria{Status: dto.StatusPending}))
	assert.Empty(t, ApplyFilter(items, dto.FilterCriteria{Status: dto.StatusApproved}))
}

func TestApplyFilterDoesNotMutateInput(t *testing.T) {
	items := []model.Evidence{
		ev("1", "a", model.StatusPending, "01/01/2024"),
		ev("2", "b", model.StatusPending, "02/01/2024"),
	}
	_ = ApplyFilter(items, dto.DefaultCriteria())
	assert.Equal(t, []string{"1", "2"}, ids(items))
}

// Sound + complete + deterministik pada koleksi acak.
func TestApplyFilterProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	titles := []string{"Seminar", "seminar AI", "Hiến máu", "Mùa hè xanh", "SEMINAR khởi nghiệp", "Workshop"}
	statuses := []model.Status{model.StatusPending, model.StatusApproved, "rejected"}

	items := make([]model.Evidence, 0, 60)
	for i := 0; i < 60; i++ {
		items = append(items, ev(
			fmt.Sprint(i),
			titles[r.Intn(len(titles))],
			statuses[r.Intn(len(statuses))],
			fmt.Sprintf("%02d/0%d/2024", 1+r.Intn(5), 1+r.Intn(3)),
		))
	}

	for _, needle := range []string{"", "seminar", "HIẾN", "xanh", "none"} {
		for _, status := range []dto.StatusFilter{dto.StatusAll, dto.StatusPending, dto.StatusApproved} {
			for _, order := range []dto.SortOrder{dto.SortNewest, dto.SortOldest} {
				c := dto.FilterCriteria{TitleContains: needle, Status: status, SortOrder: order}
				got := ApplyFilter(items, c)

				// deterministik
				assert.Equal(t, ids(got), ids(ApplyFilter(items, c)))

				matches := func(e model.Evidence) bool {
					titleOK := strings.Contains(strings.ToLower(e.Title), strings.ToLower(strings.TrimSpace(needle)))
					statusOK := status == dto.StatusAll || string(e.Status) == string(status)
					return titleOK && statusOK
				}

				// sound
				for _, e := range got {
					assert.True(t, matches(e), "%v leaked for %+v", e.ID, c)
				}
				// complete
				want := 0
				for _, e := range items {
					if matches(e) {
						want++
					}
				}
				assert.Len(t, got, want, "%+v", c)

				// urut + stabil
				pos := map[string]int{}
				for i, e := range items {
					pos[e.ID] = i
				}
				for i := 1; i < len(got); i++ {
					a, b := got[i-1], got[i]
					ad, _ := a.SubmittedAt.Day()
					bd, _ := b.SubmittedAt.Day()
					if ad.Equal(bd) {
						assert.Less(t, pos[a.ID], pos[b.ID])
						continue
					}
					if order == dto.SortNewest {
						assert.True(t, ad.After(bd))
					} else {
						assert.True(t, ad.Before(bd))
					}
				}
			}
		}
	}
}
