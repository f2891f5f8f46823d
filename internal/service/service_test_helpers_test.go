package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"mufessir/internal/entity"
	"mufessir/internal/repository/contract"
	"mufessir/internal/repository/specification"
	"mufessir/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// noopLogger satisfies logger.ILogger for tests.
type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

// fakeStore is the shared in-memory state behind every fake repository, so a
// unit of work built from one factory sees one consistent world.
type fakeStore struct {
	users    map[uuid.UUID]*entity.User
	resets   []*entity.PasswordReset
	verses   map[string]*entity.Verse
	scholars map[string]*entity.Scholar
	tafsirs  map[string]*entity.Tafsir

	searches []*entity.Search
	results  []*entity.SearchResult

	// scripted similarity search behavior
	similar    []*contract.ScoredTafsir
	similarErr error

	mu         sync.Mutex
	sentEmails []string
}

func (s *fakeStore) emails() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.sentEmails))
	copy(out, s.sentEmails)
	return out
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[uuid.UUID]*entity.User),
		verses:   make(map[string]*entity.Verse),
		scholars: make(map[string]*entity.Scholar),
		tafsirs:  make(map[string]*entity.Tafsir),
	}
}

type fakeFactory struct{ store *fakeStore }

func (f *fakeFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: f.store}
}

func newFakeFactory(store *fakeStore) unitofwork.RepositoryFactory {
	return &fakeFactory{store: store}
}

type fakeUow struct{ store *fakeStore }

func (u *fakeUow) Begin(context.Context) error { return nil }
func (u *fakeUow) Commit() error               { return nil }
func (u *fakeUow) Rollback() error             { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository       { return &fakeUserRepo{store: u.store} }
func (u *fakeUow) VerseRepository() contract.VerseRepository     { return &fakeVerseRepo{store: u.store} }
func (u *fakeUow) ScholarRepository() contract.ScholarRepository { return &fakeScholarRepo{store: u.store} }
func (u *fakeUow) TafsirRepository() contract.TafsirRepository   { return &fakeTafsirRepo{store: u.store} }
func (u *fakeUow) SearchRepository() contract.SearchRepository   { return &fakeSearchRepo{store: u.store} }

// --- users ---

type fakeUserRepo struct{ store *fakeStore }

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.store.users[user.Id] = user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.store.users[user.Id] = user
	return nil
}

func (r *fakeUserRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByEmail:
			for _, u := range r.store.users {
				if strings.EqualFold(u.Email, s.Email) {
					return u, nil
				}
			}
			return nil, nil
		case specification.ByID:
			return r.store.users[s.ID], nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return int64(len(r.store.users)), nil
}

func (r *fakeUserRepo) ResetQuota(_ context.Context, userId uuid.UUID, quota int, resetAt time.Time) error {
	if u, found := r.store.users[userId]; found {
		u.DailyQuota = quota
		u.QuotaResetAt = resetAt
	}
	return nil
}

func (r *fakeUserRepo) DecrementQuota(_ context.Context, userId uuid.UUID) error {
	if u, found := r.store.users[userId]; found && u.DailyQuota > 0 {
		u.DailyQuota--
	}
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, userId uuid.UUID, hash string) error {
	if u, found := r.store.users[userId]; found {
		u.PasswordHash = hash
	}
	return nil
}

func (r *fakeUserRepo) CreatePasswordReset(_ context.Context, reset *entity.PasswordReset) error {
	r.store.resets = append(r.store.resets, reset)
	return nil
}

func (r *fakeUserRepo) FindPasswordReset(_ context.Context, specs ...specification.Specification) (*entity.PasswordReset, error) {
	var userId uuid.UUID
	unusedOnly := false
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByUserID:
			userId = s.UserID
		case specification.UnusedResets:
			unusedOnly = true
		}
	}

	matches := make([]*entity.PasswordReset, 0)
	for _, reset := range r.store.resets {
		if reset.UserId != userId {
			continue
		}
		if unusedOnly && reset.Used {
			continue
		}
		matches = append(matches, reset)
	}
	if len(matches) == 0 {
		return nil, nil
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].CreatedAt.After(matches[j].CreatedAt) })
	return matches[0], nil
}

func (r *fakeUserRepo) MarkResetUsed(_ context.Context, id uuid.UUID) error {
	for _, reset := range r.store.resets {
		if reset.Id == id {
			reset.Used = true
		}
	}
	return nil
}

// --- verses ---

type fakeVerseRepo struct{ store *fakeStore }

func (r *fakeVerseRepo) Create(_ context.Context, verse *entity.Verse) error {
	r.store.verses[verse.Id] = verse
	return nil
}

func (r *fakeVerseRepo) CreateBulk(ctx context.Context, verses []*entity.Verse) error {
	for _, v := range verses {
		r.store.verses[v.Id] = v
	}
	return nil
}

func (r *fakeVerseRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Verse, error) {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByStringID:
			return r.store.verses[s.ID], nil
		case specification.BySurahVerse:
			for _, v := range r.store.verses {
				if v.SurahNumber == s.SurahNumber && v.VerseNumber == s.VerseNumber {
					return v, nil
				}
			}
			return nil, nil
		}
	}
	return nil, nil
}

func (r *fakeVerseRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Verse, error) {
	all := make([]*entity.Verse, 0, len(r.store.verses))
	for _, v := range r.store.verses {
		all = append(all, v)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].SurahNumber != all[j].SurahNumber {
			return all[i].SurahNumber < all[j].SurahNumber
		}
		return all[i].VerseNumber < all[j].VerseNumber
	})
	for _, spec := range specs {
		if s, ok := spec.(specification.BySurah); ok {
			kept := all[:0]
			for _, v := range all {
				if v.SurahNumber == s.SurahNumber {
					kept = append(kept, v)
				}
			}
			all = kept
		}
	}
	for _, spec := range specs {
		if p, ok := spec.(specification.Pagination); ok {
			if p.Offset < len(all) {
				all = all[p.Offset:]
			} else {
				all = nil
			}
			if p.Limit > 0 && len(all) > p.Limit {
				all = all[:p.Limit]
			}
		}
	}
	return all, nil
}

func (r *fakeVerseRepo) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	count := int64(0)
	for _, v := range r.store.verses {
		matches := true
		for _, spec := range specs {
			if s, ok := spec.(specification.BySurah); ok && v.SurahNumber != s.SurahNumber {
				matches = false
			}
		}
		if matches {
			count++
		}
	}
	return count, nil
}

// --- scholars ---

type fakeScholarRepo struct{ store *fakeStore }

func (r *fakeScholarRepo) Create(_ context.Context, scholar *entity.Scholar) error {
	r.store.scholars[scholar.Id] = scholar
	return nil
}

func (r *fakeScholarRepo) CreateBulk(_ context.Context, scholars []*entity.Scholar) error {
	for _, s := range scholars {
		r.store.scholars[s.Id] = s
	}
	return nil
}

func (r *fakeScholarRepo) FindOne(context.Context, ...specification.Specification) (*entity.Scholar, error) {
	return nil, nil
}

func (r *fakeScholarRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.Scholar, error) {
	all := make([]*entity.Scholar, 0, len(r.store.scholars))
	for _, s := range r.store.scholars {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

func (r *fakeScholarRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return int64(len(r.store.scholars)), nil
}

// --- tafsirs ---

type fakeTafsirRepo struct{ store *fakeStore }

func (r *fakeTafsirRepo) Create(_ context.Context, tafsir *entity.Tafsir) error {
	r.store.tafsirs[tafsir.Id] = tafsir
	return nil
}

func (r *fakeTafsirRepo) CreateBulk(_ context.Context, tafsirs []*entity.Tafsir) error {
	for _, t := range tafsirs {
		r.store.tafsirs[t.Id] = t
	}
	return nil
}

func (r *fakeTafsirRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Tafsir, error) {
	for _, spec := range specs {
		if s, ok := spec.(specification.ByStringID); ok {
			return r.store.tafsirs[s.ID], nil
		}
	}
	return nil, nil
}

func (r *fakeTafsirRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.Tafsir, error) {
	all := make([]*entity.Tafsir, 0, len(r.store.tafsirs))
	for _, t := range r.store.tafsirs {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Id < all[j].Id })
	return all, nil
}

func (r *fakeTafsirRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return int64(len(r.store.tafsirs)), nil
}

func (r *fakeTafsirRepo) scored(tafsirs []*entity.Tafsir) []*contract.ScoredTafsir {
	out := make([]*contract.ScoredTafsir, 0, len(tafsirs))
	for _, t := range tafsirs {
		out = append(out, &contract.ScoredTafsir{Tafsir: t, Scholar: r.store.scholars[t.ScholarId]})
	}
	return out
}

func (r *fakeTafsirRepo) FindForVerse(_ context.Context, verseId string, specs ...specification.Specification) ([]*contract.ScoredTafsir, error) {
	limit := 0
	for _, spec := range specs {
		if p, ok := spec.(specification.Pagination); ok {
			limit = p.Limit
		}
	}
	matches := make([]*entity.Tafsir, 0)
	for _, t := range r.store.tafsirs {
		if t.VerseId == verseId {
			matches = append(matches, t)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Id < matches[j].Id })
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return r.scored(matches), nil
}

func (r *fakeTafsirRepo) FindSample(_ context.Context, limit int, _ ...specification.Specification) ([]*contract.ScoredTafsir, error) {
	all := make([]*entity.Tafsir, 0, len(r.store.tafsirs))
	for _, t := range r.store.tafsirs {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Id < all[j].Id })
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return r.scored(all), nil
}

func (r *fakeTafsirRepo) SearchSimilarWithScore(context.Context, []float32, string, int, float64, ...specification.Specification) ([]*contract.ScoredTafsir, error) {
	if r.store.similarErr != nil {
		return nil, r.store.similarErr
	}
	return r.store.similar, nil
}

func (r *fakeTafsirRepo) FindMissingEmbeddings(_ context.Context, limit int) ([]*entity.Tafsir, error) {
	missing := make([]*entity.Tafsir, 0)
	for _, t := range r.store.tafsirs {
		if len(t.Embedding) == 0 {
			missing = append(missing, t)
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i].Id < missing[j].Id })
	if limit > 0 && len(missing) > limit {
		missing = missing[:limit]
	}
	return missing, nil
}

func (r *fakeTafsirRepo) UpdateEmbedding(_ context.Context, id string, embedding []float32) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if t, found := r.store.tafsirs[id]; found {
		t.Embedding = embedding
	}
	return nil
}

// --- searches ---

type fakeSearchRepo struct{ store *fakeStore }

func (r *fakeSearchRepo) Create(_ context.Context, search *entity.Search) error {
	r.store.searches = append(r.store.searches, search)
	return nil
}

func (r *fakeSearchRepo) FindOne(context.Context, ...specification.Specification) (*entity.Search, error) {
	return nil, nil
}

func (r *fakeSearchRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.Search, error) {
	return r.store.searches, nil
}

func (r *fakeSearchRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return int64(len(r.store.searches)), nil
}

func (r *fakeSearchRepo) CreateResult(_ context.Context, result *entity.SearchResult) error {
	r.store.results = append(r.store.results, result)
	return nil
}

func (r *fakeSearchRepo) FindLatestCached(_ context.Context, cacheKey string, since time.Time) (*contract.CachedResult, error) {
	var newest *entity.Search
	for _, s := range r.store.searches {
		if s.Query.CacheKey != cacheKey || s.CreatedAt.Before(since) {
			continue
		}
		if newest == nil || s.CreatedAt.After(newest.CreatedAt) {
			newest = s
		}
	}
	if newest == nil {
		return nil, nil
	}
	var latest *entity.SearchResult
	for _, res := range r.store.results {
		if res.SearchId != newest.Id {
			continue
		}
		if latest == nil || res.CreatedAt.After(latest.CreatedAt) {
			latest = res
		}
	}
	if latest == nil {
		return nil, nil
	}
	return &contract.CachedResult{Search: newest, Result: latest}, nil
}

// --- mail ---

type fakeEmailService struct{ store *fakeStore }

func (f *fakeEmailService) SendResetCode(toEmail, code string) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	f.store.sentEmails = append(f.store.sentEmails, toEmail+":"+code)
	return nil
}
