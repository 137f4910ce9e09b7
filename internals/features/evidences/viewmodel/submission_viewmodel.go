// file: internals/features/evidences/viewmodel/submission_viewmodel.go
//
// State layar pengajuan evidence: koleksi otoritatif + filter + state fetch/submit.
// Semua transisi state lewat mutex; pemanggilan repository di luar lock,
// jadi fetch dan submit boleh berjalan bersamaan (hasil yang selesai terakhir menang).
package viewmodel

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"studentpoints_client/internals/constants"
	"studentpoints_client/internals/features/evidences/dto"
	"studentpoints_client/internals/features/evidences/model"
	helper "studentpoints_client/internals/helpers"
)

type FetchState string

const (
	StateIdle    FetchState = "idle"
	StateLoading FetchState = "loading"
	StateReady   FetchState = "ready"
	StateFailed  FetchState = "failed"
)

type MessageType string

const (
	MessageNone    MessageType = ""
	MessageError   MessageType = "error"
	MessageSuccess MessageType = "success"
)

type EvidenceSource interface {
	ListAll(ctx context.Context) helper.Result[[]model.Evidence]
	Submit(ctx context.Context, draft dto.SubmitDraft) helper.Result[model.Evidence]
	Update(ctx context.Context, id string, partial map[string]any) helper.Result[model.Evidence]
}

// Snapshot: salinan state untuk dirender. Aman dipegang setelah state berubah.
type Snapshot struct {
	State       FetchState
	Submitting  bool
	Updating    bool
	View        []model.Evidence
	Total       int
	Criteria    dto.FilterCriteria
	Message     string
	MessageType MessageType
	Retryable   bool
}

type SubmissionViewModel struct {
	repo    EvidenceSource
	log     *zap.Logger
	canEdit bool

	mu          sync.Mutex
	state       FetchState
	submitting  int
	updating    int
	items       []model.Evidence
	criteria    dto.FilterCriteria
	view        []model.Evidence
	message     string
	messageType MessageType
	retryable   bool
	closed      bool
	listeners   map[int]func(Snapshot)
	nextID      int
}

type Option func(*SubmissionViewModel)

// WithEditPermission: gerbang edit di sisi klien (hanya petunjuk UX; server tetap yang memutuskan).
func WithEditPermission(canEdit bool) Option {
	return func(vm *SubmissionViewModel) { vm.canEdit = canEdit }
}

func WithLogger(log *zap.Logger) Option {
	return func(vm *SubmissionViewModel) { vm.log = helper.OrNop(log) }
}

func NewSubmissionViewModel(repo EvidenceSource, opts ...Option) *SubmissionViewModel {
	vm := &SubmissionViewModel{
		repo:      repo,
		log:       zap.NewNop(),
		canEdit:   true,
		state:     StateIdle,
		criteria:  dto.DefaultCriteria(),
		view:      []model.Evidence{},
		listeners: map[int]func(Snapshot){},
	}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

/* ===============================
   FETCH
=================================*/

// Fetch: Idle/Ready/Failed → Loading → Ready | Failed. Gagal tidak menyentuh koleksi.
func (vm *SubmissionViewModel) Fetch(ctx context.Context) helper.Result[[]model.Evidence] {
	if !vm.transition(func() {
		vm.state = StateLoading
		vm.clearMessageLocked()
	}) {
		return helper.Fail[[]model.Evidence](helper.KindServerError, constants.MsgEvidenceListFailed)
	}

	res := vm.repo.ListAll(ctx)

	vm.transition(func() {
		if res.Success {
			vm.items = cloneItems(res.Data)
			vm.state = StateReady
			vm.recomputeLocked()
			return
		}
		vm.state = StateFailed
		vm.setMessageLocked(res.Message, MessageError, res.Retryable())
	})
	if !res.Success {
		vm.log.Warn("fetch evidences failed", zap.String("kind", string(res.Kind)))
	}
	return res
}

/* ===============================
   SUBMIT
=================================*/

// Submit: record baru masuk ke kepala koleksi HANYA setelah server mengonfirmasi.
// Gagal (lokal maupun server) = koleksi tidak berubah.
func (vm *SubmissionViewModel) Submit(ctx context.Context, draft dto.SubmitDraft) helper.Result[model.Evidence] {
	if !vm.transition(func() {
		vm.submitting++
		vm.clearMessageLocked()
	}) {
		return helper.Fail[model.Evidence](helper.KindServerError, constants.MsgEvidenceSubmitFailed)
	}

	res := vm.repo.Submit(ctx, draft)

	vm.transition(func() {
		vm.submitting--
		if !res.Success {
			vm.setMessageLocked(res.Message, MessageError, res.Retryable())
			return
		}
		vm.items = prepend(vm.items, res.Data)
		vm.recomputeLocked()
		vm.setMessageLocked(res.Message, MessageSuccess, false)
	})
	return res
}

/* ===============================
   UPDATE
=================================*/

// Update mengganti record di tempat (posisi tetap) setelah server mengonfirmasi.
func (vm *SubmissionViewModel) Update(ctx context.Context, id string, patch dto.UpdatePatch) helper.Result[model.Evidence] {
	if !vm.canEdit {
		res := helper.Fail[model.Evidence](helper.KindValidationFailed, constants.MsgEvidenceEditForbidden)
		vm.transition(func() { vm.setMessageLocked(res.Message, MessageError, false) })
		return res
	}
	if patch.IsEmpty() {
		return helper.ValidationResult[model.Evidence](map[string]string{"_": constants.FieldMsgRequired}, constants.MsgMissingFields)
	}
	if fields := patch.Validate(); fields != nil {
		msg := constants.MsgMissingFields
		if _, bad := fields["self_point"]; bad && len(fields) == 1 {
			msg = constants.MsgPointsNotPositive
		}
		res := helper.ValidationResult[model.Evidence](fields, msg)
		vm.transition(func() { vm.setMessageLocked(res.Message, MessageError, false) })
		return res
	}

	if !vm.transition(func() {
		vm.updating++
		vm.clearMessageLocked()
	}) {
		return helper.Fail[model.Evidence](helper.KindServerError, constants.MsgEvidenceUpdateFailed)
	}

	res := vm.repo.Update(ctx, id, patch.Fields())

	vm.transition(func() {
		vm.updating--
		if !res.Success {
			vm.setMessageLocked(res.Message, MessageError, res.Retryable())
			return
		}
		vm.items = replace(vm.items, res.Data)
		vm.recomputeLocked()
		vm.setMessageLocked(res.Message, MessageSuccess, false)
	})
	return res
}

func (vm *SubmissionViewModel) CanEdit() bool { return vm.canEdit }

/* ===============================
   FILTER
=================================*/

func (vm *SubmissionViewModel) SetFilter(c dto.FilterCriteria) Snapshot {
	vm.transition(func() {
		vm.criteria = c.Normalize()
		vm.recomputeLocked()
	})
	return vm.Snapshot()
}

func (vm *SubmissionViewModel) SetTitleFilter(title string) Snapshot {
	c := vm.Criteria()
	c.TitleContains = title
	return vm.SetFilter(c)
}

func (vm *SubmissionViewModel) SetStatusFilter(s dto.StatusFilter) Snapshot {
	c := vm.Criteria()
	c.Status = s
	return vm.SetFilter(c)
}

func (vm *SubmissionViewModel) SetSortOrder(o dto.SortOrder) Snapshot {
	c := vm.Criteria()
	c.SortOrder = o
	return vm.SetFilter(c)
}

// ResetFilter kembali ke {"", all, newest}; koleksi penuh tidak disentuh.
func (vm *SubmissionViewModel) ResetFilter() Snapshot {
	return vm.SetFilter(dto.DefaultCriteria())
}

/* ===============================
   READ
=================================*/

func (vm *SubmissionViewModel) Criteria() dto.FilterCriteria {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.criteria
}

func (vm *SubmissionViewModel) View() []model.Evidence {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return cloneItems(vm.view)
}

// Items: koleksi otoritatif (urutan sisip).
func (vm *SubmissionViewModel) Items() []model.Evidence {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return cloneItems(vm.items)
}

func (vm *SubmissionViewModel) Evidence(id string) (model.Evidence, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	for _, e := range vm.items {
		if e.ID == id {
			return e, true
		}
	}
	return model.Evidence{}, false
}

func (vm *SubmissionViewModel) Snapshot() Snapshot {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.snapshotLocked()
}

/* ===============================
   Observers & lifecycle
=================================*/

// Subscribe mendaftarkan listener; dipanggil setelah setiap transisi (di luar lock).
func (vm *SubmissionViewModel) Subscribe(fn func(Snapshot)) (cancel func()) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.closed || fn == nil {
		return func() {}
	}
	id := vm.nextID
	vm.nextID++
	vm.listeners[id] = fn
	return func() {
		vm.mu.Lock()
		delete(vm.listeners, id)
		vm.mu.Unlock()
	}
}

// Close: layar ditutup. Hasil yang datang sesudahnya dibuang, listener tidak dipanggil lagi.
func (vm *SubmissionViewModel) Close() {
	vm.mu.Lock()
	vm.closed = true
	vm.listeners = map[int]func(Snapshot){}
	vm.mu.Unlock()
}

// transition menjalankan mutasi di bawah lock lalu memberi tahu listener.
// false kalau view model sudah ditutup (mutasi tidak dijalankan).
func (vm *SubmissionViewModel) transition(mutate func()) bool {
	vm.mu.Lock()
	if vm.closed {
		vm.mu.Unlock()
		return false
	}
	mutate()
	snap := vm.snapshotLocked()
	fns := make([]func(Snapshot), 0, len(vm.listeners))
	for _, fn := range vm.listeners {
		fns = append(fns, fn)
	}
	vm.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
	return true
}

func (vm *SubmissionViewModel) snapshotLocked() Snapshot {
	return Snapshot{
		State:       vm.state,
		Submitting:  vm.submitting > 0,
		Updating:    vm.updating > 0,
		View:        cloneItems(vm.view),
		Total:       len(vm.items),
		Criteria:    vm.criteria,
		Message:     vm.message,
		MessageType: vm.messageType,
		Retryable:   vm.retryable,
	}
}

func (vm *SubmissionViewModel) recomputeLocked() {
	vm.view = ApplyFilter(vm.items, vm.criteria)
}

func (vm *SubmissionViewModel) setMessageLocked(msg string, t MessageType, retryable bool) {
	vm.message, vm.messageType, vm.retryable = msg, t, retryable
}

func (vm *SubmissionViewModel) clearMessageLocked() {
	vm.setMessageLocked("", MessageNone, false)
}

/* ===============================
   slice helpers
=================================*/

func cloneItems(in []model.Evidence) []model.Evidence {
	out := make([]model.Evidence, len(in))
	copy(out, in)
	return out
}

// prepend menaruh e di kepala; record dengan id sama (mis. sudah ikut di hasil fetch) dibuang
// supaya tetap muncul tepat sekali.
func prepend(items []model.Evidence, e model.Evidence) []model.Evidence {
	out := make([]model.Evidence, 0, len(items)+1)
	out = append(out, e)
	for _, it := range items {
		if it.ID != e.ID {
			out = append(out, it)
		}
	}
	return out
}

func replace(items []model.Evidence, e model.Evidence) []model.Evidence {
	out := cloneItems(items)
	for i := range out {
		if out[i].ID == e.ID {
			out[i] = e
		}
	}
	return out
}
