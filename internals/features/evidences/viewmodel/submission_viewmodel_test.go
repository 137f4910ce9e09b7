package viewmodel

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentpoints_client/internals/constants"
	"studentpoints_client/internals/features/evidences/dto"
	"studentpoints_client/internals/features/evidences/model"
	helper "studentpoints_client/internals/helpers"
)

type stubSource struct {
	mu      sync.Mutex
	calls   map[string]int
	list    func() helper.Result[[]model.Evidence]
	submit  func(dto.SubmitDraft) helper.Result[model.Evidence]
	update  func(string, map[string]any) helper.Result[model.Evidence]
	partial map[string]any
}

func newStub() *stubSource {
	return &stubSource{calls: map[string]int{}}
}

func (s *stubSource) count(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *stubSource) ListAll(context.Context) helper.Result[[]model.Evidence] {
	s.mu.Lock()
	s.calls["list"]++
	s.mu.Unlock()
	return s.list()
}

func (s *stubSource) Submit(_ context.Context, d dto.SubmitDraft) helper.Result[model.Evidence] {
	s.mu.Lock()
	s.calls["submit"]++
	s.mu.Unlock()
	return s.submit(d)
}

func (s *stubSource) Update(_ context.Context, id string, partial map[string]any) helper.Result[model.Evidence] {
	s.mu.Lock()
	s.calls["update"]++
	s.partial = partial
	s.mu.Unlock()
	return s.update(id, partial)
}

func seeded() []model.Evidence {
	return []model.Evidence{
		ev("a", "Seminar A", model.StatusApproved, "01/01/2024"),
		ev("b", "Seminar B", model.StatusPending, "05/01/2024"),
	}
}

func listOK(items []model.Evidence) func() helper.Result[[]model.Evidence] {
	return func() helper.Result[[]model.Evidence] { return helper.Ok(items) }
}

func TestFetchTransitions(t *testing.T) {
	stub := newStub()
	stub.list = listOK(seeded())
	vm := NewSubmissionViewModel(stub)

	var states []FetchState
	cancel := vm.Subscribe(func(s Snapshot) { states = append(states, s.State) })
	defer cancel()

	assert.Equal(t, StateIdle, vm.Snapshot().State)

	res := vm.Fetch(context.Background())
	require.True(t, res.Success)

	snap := vm.Snapshot()
	assert.Equal(t, StateReady, snap.State)
	assert.Equal(t, 2, snap.Total)
	assert.Equal(t, []string{"b", "a"}, ids(snap.View))
	assert.Equal(t, []FetchState{StateLoading, StateReady}, states)
}

func TestFetchFailureIsRetryable(t *testing.T) {
	stub := newStub()
	stub.list = func() helper.Result[[]model.Evidence] {
		return helper.Fail[[]model.Evidence](helper.KindNetworkUnavailable, constants.MsgConnectionFailed)
	}
	vm := NewSubmissionViewModel(stub)

	res := vm.Fetch(context.Background())
	assert.False(t, res.Success)

	snap := vm.Snapshot()
	assert.Equal(t, StateFailed, snap.State)
	assert.Equal(t, MessageError, snap.MessageType)
	assert.Equal(t, constants.MsgConnectionFailed, snap.Message)
	assert.True(t, snap.Retryable)
	assert.Zero(t, snap.Total)

	stub.list = listOK(seeded())
	require.True(t, vm.Fetch(context.Background()).Success)
	snap = vm.Snapshot()
	assert.Equal(t, StateReady, snap.State)
	assert.Empty(t, snap.Message)
}

func TestRefreshFailureKeepsCollection(t *testing.T) {
	stub := newStub()
	stub.list = listOK(seeded())
	vm := NewSubmissionViewModel(stub)
	require.True(t, vm.Fetch(context.Background()).Success)

	stub.list = func() helper.Result[[]model.Evidence] {
		return helper.Fail[[]model.Evidence](helper.KindServerError, "boom")
	}
	vm.Fetch(context.Background())

	assert.Equal(t, []string{"a", "b"}, ids(vm.Items()))
}

func TestSubmitPrependsOnce(t *testing.T) {
	stub := newStub()
	stub.list = listOK(seeded())
	stub.submit = func(d dto.SubmitDraft) helper.Result[model.Evidence] {
		e := ev("new", d.Title, model.StatusPending, "2024-06-01T10:00:00Z")
		return helper.OkWithMessage(e, constants.MsgEvidenceSubmitted)
	}
	vm := NewSubmissionViewModel(stub)
	require.True(t, vm.Fetch(context.Background()).Success)
	before := vm.Items()

	res := vm.Submit(context.Background(), dto.SubmitDraft{Title: "Hiến máu", Link: "https://x", Points: 3})
	require.True(t, res.Success)

	after := vm.Items()
	require.Len(t, after, len(before)+1)
	assert.Equal(t, "new", after[0].ID)
	assert.Equal(t, model.StatusPending, after[0].Status)
	assert.Equal(t, before, after[1:])

	snap := vm.Snapshot()
	assert.Equal(t, StateReady, snap.State)
	assert.False(t, snap.Submitting)
	assert.Equal(t, MessageSuccess, snap.MessageType)
	assert.Equal(t, constants.MsgEvidenceSubmitted, snap.Message)
}

func TestSubmitFailureLeavesCollection(t *testing.T) {
	stub := newStub()
	stub.list = listOK(seeded())
	stub.submit = func(dto.SubmitDraft) helper.Result[model.Evidence] {
		return helper.Fail[model.Evidence](helper.KindServerError, constants.MsgEvidenceSubmitFailed)
	}
	vm := NewSubmissionViewModel(stub)
	require.True(t, vm.Fetch(context.Background()).Success)
	before := vm.Items()

	res := vm.Submit(context.Background(), dto.SubmitDraft{Title: "x", Link: "y", Points: 1})
	assert.False(t, res.Success)
	assert.Equal(t, before, vm.Items())
	assert.Equal(t, MessageError, vm.Snapshot().MessageType)
}

// fetch & submit bersamaan: yang selesai terakhir menang, tanpa merge.
func TestConcurrentFetchAndSubmitLastWriterWins(t *testing.T) {
	newVM := func(release chan struct{}, server []model.Evidence) (*SubmissionViewModel, *stubSource) {
		stub := newStub()
		first := true
		stub.list = func() helper.Result[[]model.Evidence] {
			if first {
				first = false
				return helper.Ok(seeded())
			}
			<-release
			return helper.Ok(server)
		}
		stub.submit = func(dto.SubmitDraft) helper.Result[model.Evidence] {
			return helper.Ok(ev("new", "Mới", model.StatusPending, "2024-06-01"))
		}
		vm := NewSubmissionViewModel(stub)
		require.True(t, vm.Fetch(context.Background()).Success)
		return vm, stub
	}

	t.Run("fetch resolves last", func(t *testing.T) {
		release := make(chan struct{})
		vm, _ := newVM(release, []model.Evidence{ev("z", "Z", model.StatusApproved, "01/02/2024")})

		done := make(chan struct{})
		go func() {
			vm.Fetch(context.Background())
			close(done)
		}()
		require.Eventually(t, func() bool { return vm.Snapshot().State == StateLoading }, time.Second, time.Millisecond)

		require.True(t, vm.Submit(context.Background(), dto.SubmitDraft{Title: "Mới", Link: "l", Points: 1}).Success)
		assert.Equal(t, []string{"new", "a", "b"}, ids(vm.Items()))

		close(release)
		<-done
		assert.Equal(t, []string{"z"}, ids(vm.Items()))
		assert.Equal(t, StateReady, vm.Snapshot().State)
	})

	t.Run("submit resolves last", func(t *testing.T) {
		release := make(chan struct{})
		vm, _ := newVM(release, []model.Evidence{ev("z", "Z", model.StatusApproved, "01/02/2024")})
		close(release)
		require.True(t, vm.Fetch(context.Background()).Success)

		require.True(t, vm.Submit(context.Background(), dto.SubmitDraft{Title: "Mới", Link: "l", Points: 1}).Success)
		assert.Equal(t, []string{"new", "z"}, ids(vm.Items()))
	})
}

func TestSubmitDeduplicatesFetchedRecord(t *testing.T) {
	stub := newStub()
	created := ev("new", "Mới", model.StatusPending, "2024-06-01")
	stub.list = listOK([]model.Evidence{ev("a", "A", model.StatusApproved, "01/01/2024"), created})
	stub.submit = func(dto.SubmitDraft) helper.Result[model.Evidence] { return helper.Ok(created) }

	vm := NewSubmissionViewModel(stub)
	require.True(t, vm.Fetch(context.Background()).Success)
	require.True(t, vm.Submit(context.Background(), dto.SubmitDraft{Title: "Mới", Link: "l", Points: 1}).Success)

	assert.Equal(t, []string{"new", "a"}, ids(vm.Items()))
}

func TestUpdateReplacesInPlace(t *testing.T) {
	stub := newStub()
	stub.list = listOK(seeded())
	stub.update = func(id string, partial map[string]any) helper.Result[model.Evidence] {
		e := ev(id, partial["title"].(string), model.StatusApproved, "01/01/2024")
		return helper.OkWithMessage(e, constants.MsgEvidenceUpdated)
	}
	vm := NewSubmissionViewModel(stub)
	require.True(t, vm.Fetch(context.Background()).Success)

	title := "  Seminar A (sửa) "
	res := vm.Update(context.Background(), "a", dto.UpdatePatch{Title: &title})
	require.True(t, res.Success)

	assert.Equal(t, map[string]any{"title": "Seminar A (sửa)"}, stub.partial)
	got, ok := vm.Evidence("a")
	require.True(t, ok)
	assert.Equal(t, "Seminar A (sửa)", got.Title)
	assert.Equal(t, []string{"a", "b"}, ids(vm.Items()))
}

func TestUpdateRejectedLocally(t *testing.T) {
	stub := newStub()
	stub.list = listOK(seeded())
	vm := NewSubmissionViewModel(stub)
	require.True(t, vm.Fetch(context.Background()).Success)
	before := vm.Items()

	blank := "  "
	zero := 0.0

	res := vm.Update(context.Background(), "a", dto.UpdatePatch{})
	assert.Equal(t, helper.KindValidationFailed, res.Kind)

	res = vm.Update(context.Background(), "a", dto.UpdatePatch{Title: &blank})
	assert.Equal(t, helper.KindValidationFailed, res.Kind)
	assert.Contains(t, res.Fields, "title")

	res = vm.Update(context.Background(), "a", dto.UpdatePatch{SelfPoint: &zero})
	assert.Equal(t, constants.MsgPointsNotPositive, res.Message)

	assert.Zero(t, stub.count("update"))
	assert.Equal(t, before, vm.Items())
}

func TestUpdateEditGate(t *testing.T) {
	stub := newStub()
	stub.list = listOK(seeded())
	vm := NewSubmissionViewModel(stub, WithEditPermission(false))
	require.True(t, vm.Fetch(context.Background()).Success)

	title := "x"
	res := vm.Update(context.Background(), "a", dto.UpdatePatch{Title: &title})
	assert.False(t, res.Success)
	assert.Equal(t, constants.MsgEvidenceEditForbidden, res.Message)
	assert.Zero(t, stub.count("update"))
	assert.False(t, vm.CanEdit())
}

func TestUpdateFailureLeavesCollection(t *testing.T) {
	stub := newStub()
	stub.list = listOK(seeded())
	stub.update = func(string, map[string]any) helper.Result[model.Evidence] {
		return helper.Fail[model.Evidence](helper.KindNotFound, constants.MsgNotFound)
	}
	vm := NewSubmissionViewModel(stub)
	require.True(t, vm.Fetch(context.Background()).Success)
	before := vm.Items()

	title := "x"
	res := vm.Update(context.Background(), "a", dto.UpdatePatch{Title: &title})
	assert.Equal(t, helper.KindNotFound, res.Kind)
	assert.Equal(t, before, vm.Items())
}

func TestFilterDoesNotTouchFetchState(t *testing.T) {
	stub := newStub()
	stub.list = listOK(seeded())
	vm := NewSubmissionViewModel(stub)
	require.True(t, vm.Fetch(context.Background()).Success)

	snap := vm.SetFilter(dto.FilterCriteria{TitleContains: "seminar", Status: dto.StatusPending, SortOrder: dto.SortNewest})
	assert.Equal(t, StateReady, snap.State)
	assert.Equal(t, []string{"b"}, ids(snap.View))
	assert.Equal(t, 2, snap.Total)

	snap = vm.SetSortOrder(dto.SortOldest)
	assert.Equal(t, dto.SortOldest, snap.Criteria.SortOrder)
	assert.Equal(t, dto.StatusPending, snap.Criteria.Status)

	snap = vm.SetStatusFilter("bogus")
	assert.Equal(t, dto.StatusAll, snap.Criteria.Status)
}

func TestResetFilterIdempotent(t *testing.T) {
	stub := newStub()
	stub.list = listOK(seeded())
	vm := NewSubmissionViewModel(stub)
	require.True(t, vm.Fetch(context.Background()).Success)

	vm.SetTitleFilter("A")
	first := vm.ResetFilter()
	second := vm.SetFilter(dto.FilterCriteria{TitleContains: "", Status: dto.StatusAll, SortOrder: dto.SortNewest})

	assert.Equal(t, dto.DefaultCriteria(), first.Criteria)
	assert.Equal(t, ids(first.View), ids(second.View))
	assert.Equal(t, []string{"b", "a"}, ids(first.View))
}

func TestCloseDropsLateResults(t *testing.T) {
	release := make(chan struct{})
	stub := newStub()
	stub.list = func() helper.Result[[]model.Evidence] {
		<-release
		return helper.Ok(seeded())
	}
	vm := NewSubmissionViewModel(stub)

	calls := 0
	var mu sync.Mutex
	vm.Subscribe(func(Snapshot) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	done := make(chan struct{})
	go func() {
		vm.Fetch(context.Background())
		close(done)
	}()
	require.Eventually(t, func() bool { return vm.Snapshot().State == StateLoading }, time.Second, time.Millisecond)

	vm.Close()
	close(release)
	<-done

	assert.Empty(t, vm.Items())
	assert.Equal(t, StateLoading, vm.Snapshot().State)
	mu.Lock()
	assert.Equal(t, 1, calls)
	mu.Unlock()

	assert.False(t, vm.Fetch(context.Background()).Success)
}

func TestSubscribeCancel(t *testing.T) {
	stub := newStub()
	stub.list = listOK(seeded())
	vm := NewSubmissionViewModel(stub)

	calls := 0
	cancel := vm.Subscribe(func(Snapshot) { calls++ })
	vm.ResetFilter()
	cancel()
	vm.ResetFilter()

	assert.Equal(t, 1, calls)
}
