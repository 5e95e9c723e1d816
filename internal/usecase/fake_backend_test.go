package usecase

import (
	"context"
	"sync"

	"github.com/fadilmartias/cv-dashboard/internal/model"
	"github.com/fadilmartias/cv-dashboard/internal/session"
)

// fakeBackend records calls and answers from scripted fields.
type fakeBackend struct {
	mu sync.Mutex

	listResult []model.CVRecord
	listErr    error
	listCalls  int

	uploadReceipt model.UploadReceipt
	uploadErr     error
	uploadTags    [][]string
	zipReceipt    model.ZipReceipt
	zipErr        error
	zipCalls      int

	statuses    []model.StatusReport
	statusErr   error
	statusCalls int

	searchResults []model.SearchResult
	searchErr     error
	searchQueries []string
	searchHook    func()

	deleteErr error
	deleted   []string

	loginToken string
	loginErr   error
	registered []string
}

func (f *fakeBackend) Login(_ context.Context, email, password string) (string, error) {
	return f.loginToken, f.loginErr
}

func (f *fakeBackend) Register(_ context.Context, name, email, password string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registered = append(f.registered, email)
	return "User registered successfully", nil
}

func (f *fakeBackend) ListCVs(context.Context, session.Session) ([]model.CVRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]model.CVRecord{}, f.listResult...), nil
}

func (f *fakeBackend) UploadCV(_ context.Context, _ session.Session, _ model.Upload, tags []string) (model.UploadReceipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploadTags = append(f.uploadTags, tags)
	return f.uploadReceipt, f.uploadErr
}

func (f *fakeBackend) UploadZip(context.Context, session.Session, model.Upload) (model.ZipReceipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.zipCalls++
	return f.zipReceipt, f.zipErr
}

func (f *fakeBackend) CVStatus(_ context.Context, _ session.Session, id string) (model.StatusReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	if f.statusErr != nil {
		return model.StatusReport{}, f.statusErr
	}
	if len(f.statuses) == 0 {
		return model.StatusReport{JobID: id, Status: model.StatusParsing}, nil
	}
	r := f.statuses[0]
	f.statuses = f.statuses[1:]
	r.JobID = id
	return r, nil
}

func (f *fakeBackend) SearchCVs(_ context.Context, _ session.Session, rawQuery string) ([]model.SearchResult, error) {
	f.mu.Lock()
	f.searchQueries = append(f.searchQueries, rawQuery)
	hook := f.searchHook
	results, err := f.searchResults, f.searchErr
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	return results, err
}

func (f *fakeBackend) DeleteCV(_ context.Context, _ session.Session, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func (f *fakeBackend) FetchPreview(context.Context, string) ([]byte, error) {
	return []byte("%PDF"), nil
}

func (f *fakeBackend) PreviewURL(s string) string { return "http://backend/cv/preview/" + s }

func (f *fakeBackend) DownloadURL(s string) string { return "http://backend/cv/download/" + s }

func (f *fakeBackend) calls() (list, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, f.statusCalls
}
