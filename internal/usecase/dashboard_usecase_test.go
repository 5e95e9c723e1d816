package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/fadilmartias/cv-dashboard/internal/logger"
	"github.com/fadilmartias/cv-dashboard/internal/model"
	"github.com/fadilmartias/cv-dashboard/internal/poller"
	"github.com/fadilmartias/cv-dashboard/internal/repository"
	"github.com/fadilmartias/cv-dashboard/internal/session"
	"github.com/fadilmartias/cv-dashboard/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorkspace(t *testing.T) *repository.Workspace {
	t.Helper()
	ws := repository.NewWorkspace(session.FromToken("opaque"), time.Now())
	t.Cleanup(ws.Teardown)
	return ws
}

func newDashboard(backend *fakeBackend) *DashboardUsecase {
	return NewDashboardUsecase(backend, poller.New(time.Millisecond, 30, logger.Discard()), logger.Discard(), time.UTC)
}

func dashboardState(ws *repository.Workspace) repository.DashboardState {
	var d repository.DashboardState
	ws.View(func(st repository.State) {
		d = st.Dashboard
		d.CVs = append([]model.CVRecord{}, st.Dashboard.CVs...)
	})
	return d
}

func TestUploadSingleFilePrependsAndPolls(t *testing.T) {
	backend := &fakeBackend{
		uploadReceipt: model.UploadReceipt{CVID: "cv-1", Status: model.StatusUploaded},
		statuses: []model.StatusReport{
			{Status: model.StatusParsing},
			{Status: model.StatusCompleted},
		},
		listResult: []model.CVRecord{{FileRef: model.FileRef{ID: "cv-1", Name: "Jane"}, Status: model.StatusCompleted}},
	}
	uc := newDashboard(backend)
	ws := newWorkspace(t)
	ws.Update(func(st *repository.State) {
		st.Dashboard.CVs = []model.CVRecord{{FileRef: model.FileRef{ID: "old"}}}
	})

	require.NoError(t, uc.StageFile(ws, model.Upload{Filename: "resume.pdf", Content: []byte("%PDF")}))
	assert.True(t, uc.AddTag(ws, "backend"))
	assert.True(t, uc.AddTag(ws, "go"))
	assert.False(t, uc.AddTag(ws, " go "))

	require.NoError(t, uc.Upload(context.Background(), ws))

	require.Len(t, backend.uploadTags, 1)
	assert.Equal(t, []string{"backend", "go"}, backend.uploadTags[0])

	d := dashboardState(ws)
	require.Len(t, d.CVs, 2)
	assert.Equal(t, "cv-1", d.CVs[0].ID)
	assert.Equal(t, "resume.pdf", d.CVs[0].StoredFilename)
	assert.Equal(t, []string{"backend", "go"}, d.CVs[0].Tags)
	assert.Equal(t, MsgUploadSuccess, d.Message)
	assert.Nil(t, d.Staged)
	assert.Equal(t, 0, d.Tags.Len())

	assert.Eventually(t, func() bool {
		return dashboardState(ws).Message == MsgParsingComplete
	}, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool {
		list, _ := backend.calls()
		return list == 1
	}, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool {
		cvs := dashboardState(ws).CVs
		return len(cvs) == 1 && cvs[0].Name == "Jane"
	}, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return ws.ActivePollers() == 0 }, time.Second, 5*time.Millisecond)
}

func TestUploadZipIgnoresTags(t *testing.T) {
	backend := &fakeBackend{
		zipReceipt: model.ZipReceipt{Uploaded: []model.ZipEntry{{CVID: "1"}, {CVID: "2"}, {CVID: "3"}}},
	}
	uc := newDashboard(backend)
	ws := newWorkspace(t)

	require.NoError(t, uc.StageFile(ws, model.Upload{Filename: "batch.zip"}))
	uc.AddTag(ws, "x")
	require.NoError(t, uc.Upload(context.Background(), ws))

	assert.Equal(t, 1, backend.zipCalls)
	assert.Empty(t, backend.uploadTags)
	list, _ := backend.calls()
	assert.Equal(t, 1, list)

	d := dashboardState(ws)
	assert.Equal(t, "ZIP uploaded! 3 CVs parsing...", d.Message)
	assert.Nil(t, d.Staged)
	assert.Equal(t, 0, d.Tags.Len())
	assert.Equal(t, 0, ws.ActivePollers())
}

func TestUploadFailureKeepsSelection(t *testing.T) {
	backend := &fakeBackend{uploadErr: util.BackendError("x", 400, "Only PDF, DOC, DOCX allowed")}
	uc := newDashboard(backend)
	ws := newWorkspace(t)

	require.NoError(t, uc.StageFile(ws, model.Upload{Filename: "notes.txt"}))
	uc.AddTag(ws, "keep")
	err := uc.Upload(context.Background(), ws)
	require.Error(t, err)
	assert.Equal(t, "Only PDF, DOC, DOCX allowed", util.Message(err, ""))

	d := dashboardState(ws)
	assert.Equal(t, MsgUploadFailed, d.Message)
	require.NotNil(t, d.Staged)
	assert.Equal(t, "notes.txt", d.Staged.Filename)
	assert.Equal(t, []string{"keep"}, d.Tags.Values())
	assert.Empty(t, d.CVs)
	assert.False(t, d.Uploading)
}

func TestUploadWithoutFile(t *testing.T) {
	uc := newDashboard(&fakeBackend{})
	err := uc.Upload(context.Background(), newWorkspace(t))
	assert.True(t, util.IsCode(err, util.CodeInvalidArgument))
}

func TestParsingErrorMessage(t *testing.T) {
	uc := newDashboard(&fakeBackend{})
	ws := newWorkspace(t)
	ws.Update(func(st *repository.State) {
		st.Dashboard.CVs = []model.CVRecord{{FileRef: model.FileRef{ID: "a"}}, {FileRef: model.FileRef{ID: "b"}}}
	})

	uc.onStatus(ws, "a")(model.StatusParsing, "")
	d := dashboardState(ws)
	assert.Equal(t, model.StatusParsing, d.CVs[0].Status)
	assert.Empty(t, d.Message)

	uc.onStatus(ws, "b")(model.StatusError, "")
	d = dashboardState(ws)
	assert.Equal(t, "Parsing failed: Unknown error", d.Message)
	assert.Equal(t, model.StatusError, d.CVs[1].Status)
	assert.Equal(t, model.StatusParsing, d.CVs[0].Status)

	uc.onStatus(ws, "a")(model.StatusError, "corrupt file")
	assert.Equal(t, "Parsing failed: corrupt file", dashboardState(ws).Message)
}

func TestTeardownStopsUploadPoller(t *testing.T) {
	backend := &fakeBackend{uploadReceipt: model.UploadReceipt{CVID: "cv-1"}}
	uc := NewDashboardUsecase(backend, poller.New(time.Hour, 30, logger.Discard()), logger.Discard(), time.UTC)
	ws := repository.NewWorkspace(session.FromToken("opaque"), time.Now())

	require.NoError(t, uc.StageFile(ws, model.Upload{Filename: "a.pdf"}))
	require.NoError(t, uc.Upload(context.Background(), ws))
	assert.Equal(t, 1, ws.ActivePollers())

	ws.Teardown()
	assert.Eventually(t, func() bool { return ws.ActivePollers() == 0 }, time.Second, 5*time.Millisecond)
	_, status := backend.calls()
	assert.Equal(t, 0, status)
}

func TestRefreshFailureKeepsList(t *testing.T) {
	backend := &fakeBackend{listErr: util.E(util.CodeUnavailable, "x", "backend unreachable", nil)}
	uc := newDashboard(backend)
	ws := newWorkspace(t)
	ws.Update(func(st *repository.State) {
		st.Dashboard.CVs = []model.CVRecord{{FileRef: model.FileRef{ID: "a"}}}
	})

	assert.Error(t, uc.Refresh(context.Background(), ws))
	assert.Len(t, dashboardState(ws).CVs, 1)
}

func TestDeleteRefreshes(t *testing.T) {
	backend := &fakeBackend{}
	uc := newDashboard(backend)
	ws := newWorkspace(t)
	ws.Update(func(st *repository.State) {
		st.Dashboard.CVs = []model.CVRecord{{FileRef: model.FileRef{ID: "a"}}}
	})

	require.NoError(t, uc.Delete(context.Background(), ws, "a"))
	assert.Equal(t, []string{"a"}, backend.deleted)
	assert.Empty(t, dashboardState(ws).CVs)

	assert.True(t, util.IsCode(uc.Delete(context.Background(), ws, " "), util.CodeInvalidArgument))
}

func TestDashboardViewAndTags(t *testing.T) {
	uc := newDashboard(&fakeBackend{})
	ws := newWorkspace(t)
	uc.AddTag(ws, "a")
	uc.AddTag(ws, "b")
	assert.True(t, uc.RemoveTag(ws, "a"))
	assert.False(t, uc.RemoveTag(ws, "zzz"))

	view := uc.View(ws, 1, 20)
	assert.Equal(t, []string{"b"}, view.Tags.Values())
	assert.Empty(t, view.Rows)

	assert.Error(t, uc.StageFile(ws, model.Upload{}))
}
