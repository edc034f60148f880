package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bhbank/credit-backend/internal/domain/entity"
	repo "github.com/bhbank/credit-backend/internal/domain/repository"
)

// In-memory fakes for the repository interfaces. They reproduce the store
// semantics the services depend on: unique constraints, conditional updates,
// not-found sentinels.

type fakeUserRepo struct {
	users  map[string]*entity.User // by id
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return repo.ErrDuplicateEmail
		}
		if existing.CIN == u.CIN {
			return repo.ErrDuplicateCIN
		}
	}
	f.nextID++
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByCIN(_ context.Context, cin string) (*entity.User, error) {
	for _, u := range f.users {
		if u.CIN == cin {
			return u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repo.ErrNotFound
}

type fakeCreditRepo struct {
	apps   map[string]*entity.CreditApplication
	nextID int
}

func newFakeCreditRepo() *fakeCreditRepo {
	return &fakeCreditRepo{apps: map[string]*entity.CreditApplication{}}
}

func (f *fakeCreditRepo) Create(_ context.Context, a *entity.CreditApplication) error {
	f.nextID++
	a.ID = fmt.Sprintf("credit-%d", f.nextID)
	cp := *a
	f.apps[a.ID] = &cp
	return nil
}

func (f *fakeCreditRepo) GetByID(_ context.Context, id string) (*entity.CreditApplication, error) {
	a, ok := f.apps[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeCreditRepo) List(_ context.Context, filter repo.CreditFilter) ([]*entity.CreditApplication, error) {
	var out []*entity.CreditApplication
	for _, a := range f.apps {
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(a.Personal.LastName), strings.ToLower(filter.Search)) {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeCreditRepo) ListByCIN(_ context.Context, cin string) ([]*entity.CreditApplication, error) {
	var out []*entity.CreditApplication
	for _, a := range f.apps {
		if a.Personal.CIN == cin {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeCreditRepo) UpdateStatus(_ context.Context, id string, status entity.CreditStatus, reason string) (*entity.CreditApplication, error) {
	a, ok := f.apps[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if a.Status != entity.StatusPending {
		return nil, repo.ErrConflict
	}
	a.Status = status
	a.RejectionReason = reason
	cp := *a
	return &cp, nil
}

func (f *fakeCreditRepo) MarkEmailSent(_ context.Context, id string) error {
	a, ok := f.apps[id]
	if !ok {
		return repo.ErrNotFound
	}
	a.EmailSent = true
	a.ContractStatus = entity.ContractSent
	return nil
}

func (f *fakeCreditRepo) UpdateContractStatus(_ context.Context, id string, status entity.ContractStatus) error {
	a, ok := f.apps[id]
	if !ok {
		return repo.ErrNotFound
	}
	a.ContractStatus = status
	return nil
}

type fakePublisher struct {
	jobs []any
	err  error
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, body)
	return nil
}

type fakeReclamationRepo struct {
	recs   map[string]*entity.Reclamation
	nextID int
}

func newFakeReclamationRepo() *fakeReclamationRepo {
	return &fakeReclamationRepo{recs: map[string]*entity.Reclamation{}}
}

func (f *fakeReclamationRepo) Create(_ context.Context, r *entity.Reclamation) error {
	f.nextID++
	r.ID = fmt.Sprintf("rec-%d", f.nextID)
	cp := *r
	f.recs[r.ID] = &cp
	return nil
}

func (f *fakeReclamationRepo) GetByID(_ context.Context, id string) (*entity.Reclamation, error) {
	r, ok := f.recs[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReclamationRepo) List(_ context.Context, search string) ([]*entity.Reclamation, error) {
	var out []*entity.Reclamation
	for _, r := range f.recs {
		if search != "" && !strings.Contains(strings.ToLower(r.Name), strings.ToLower(search)) {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeReclamationRepo) Reply(_ context.Context, id, response string) (*entity.Reclamation, error) {
	r, ok := f.recs[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if r.Status != entity.ReclamationUnanswered {
		return nil, repo.ErrConflict
	}
	r.Response = response
	r.Status = entity.ReclamationAnswered
	cp := *r
	return &cp, nil
}

type fakeChatRepo struct {
	messages  []*entity.ChatMessage
	corpus    []entity.QAPair
	corpusErr error
	recordErr error
}

func (f *fakeChatRepo) Record(_ context.Context, m *entity.ChatMessage) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	cp := *m
	f.messages = append(f.messages, &cp)
	return nil
}

func (f *fakeChatRepo) List(_ context.Context, limit, offset int) ([]*entity.ChatMessage, error) {
	if offset >= len(f.messages) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.messages) {
		end = len(f.messages)
	}
	return f.messages[offset:end], nil
}

func (f *fakeChatRepo) Corpus(_ context.Context) ([]entity.QAPair, error) {
	if f.corpusErr != nil {
		return nil, f.corpusErr
	}
	return f.corpus, nil
}

func (f *fakeChatRepo) AddQAPair(_ context.Context, q *entity.QAPair) error {
	q.ID = fmt.Sprintf("qa-%d", len(f.corpus)+1)
	f.corpus = append(f.corpus, *q)
	return nil
}

var errFakeDown = errors.New("store unavailable")
