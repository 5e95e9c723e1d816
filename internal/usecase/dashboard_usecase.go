package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fadilmartias/cv-dashboard/internal/dto"
	"github.com/fadilmartias/cv-dashboard/internal/model"
	"github.com/fadilmartias/cv-dashboard/internal/poller"
	"github.com/fadilmartias/cv-dashboard/internal/repository"
	"github.com/fadilmartias/cv-dashboard/internal/service"
	"github.com/fadilmartias/cv-dashboard/internal/util"
	"github.com/sirupsen/logrus"
)

const (
	MsgUploadSuccess   = "Upload successful! Parsing in background..."
	MsgUploadFailed    = "Upload failed."
	MsgParsingComplete = "Parsing complete!"
	msgZipUploaded     = "ZIP uploaded! %d CVs parsing..."
	msgParsingFailed   = "Parsing failed: %s"
)

type DashboardUsecase struct {
	backend service.BackendServiceInterface
	poller  *poller.Poller
	log     *logrus.Logger
	loc     *time.Location
	now     func() time.Time
}

func NewDashboardUsecase(backend service.BackendServiceInterface, p *poller.Poller, log *logrus.Logger, loc *time.Location) *DashboardUsecase {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardUsecase{backend: backend, poller: p, log: log, loc: loc, now: time.Now}
}

// View renders one page of the current list without calling the backend.
func (uc *DashboardUsecase) View(ws *repository.Workspace, page, pageSize int) dto.DashboardViewDTO {
	var view dto.DashboardViewDTO
	ws.View(func(st repository.State) {
		d := st.Dashboard
		view = dto.NewDashboardView(d.Message, d.Staged, model.NewTagSet(d.Tags.Values()...), d.Uploading, d.CVs, page, pageSize, uc.loc)
	})
	return view
}

// Refresh replaces the list with the backend's. On failure the list is left
// as it was.
func (uc *DashboardUsecase) Refresh(ctx context.Context, ws *repository.Workspace) error {
	cvs, err := uc.backend.ListCVs(ctx, ws.Session())
	if err != nil {
		uc.log.WithError(err).WithField("workspace_id", ws.ID()).Warn("failed to refresh CV list")
		return err
	}
	ws.Update(func(st *repository.State) {
		st.Dashboard.ReplaceCVs(cvs)
	})
	return nil
}

func (uc *DashboardUsecase) StageFile(ws *repository.Workspace, file model.Upload) error {
	if strings.TrimSpace(file.Filename) == "" {
		return util.E(util.CodeInvalidArgument, "DashboardUsecase.StageFile", "file name is required", nil)
	}
	ws.Update(func(st *repository.State) {
		st.Dashboard.Staged = &file
	})
	return nil
}

func (uc *DashboardUsecase) AddTag(ws *repository.Workspace, tag string) bool {
	var added bool
	ws.Update(func(st *repository.State) {
		added = st.Dashboard.Tags.Add(tag)
	})
	return added
}

func (uc *DashboardUsecase) RemoveTag(ws *repository.Workspace, tag string) bool {
	var removed bool
	ws.Update(func(st *repository.State) {
		removed = st.Dashboard.Tags.Remove(tag)
	})
	return removed
}

// Upload submits the staged file. Archives go to the batch endpoint without
// tags; anything else is uploaded with the pending tags, shown at the head of
// the list and watched by a poller until parsing ends.
func (uc *DashboardUsecase) Upload(ctx context.Context, ws *repository.Workspace) error {
	const op = "DashboardUsecase.Upload"

	var (
		staged *model.Upload
		tags   []string
		busy   bool
	)
	ws.Update(func(st *repository.State) {
		busy = st.Dashboard.Uploading
		if busy || st.Dashboard.Staged == nil {
			return
		}
		file := *st.Dashboard.Staged
		staged = &file
		tags = st.Dashboard.Tags.Values()
		st.Dashboard.Uploading = true
	})
	if busy {
		return util.E(util.CodeInvalidArgument, op, "an upload is already in progress", nil)
	}
	if staged == nil {
		return util.E(util.CodeInvalidArgument, op, "no file selected", nil)
	}

	entry := uc.log.WithFields(logrus.Fields{
		"workspace_id": ws.ID(),
		"filename":     staged.Filename,
	})

	if staged.IsZip() {
		receipt, err := uc.backend.UploadZip(ctx, ws.Session(), *staged)
		if err != nil {
			uc.uploadFailed(ws, entry, err)
			return err
		}
		ws.Update(func(st *repository.State) {
			st.Dashboard.Message = fmt.Sprintf(msgZipUploaded, len(receipt.Uploaded))
			st.Dashboard.Staged = nil
			st.Dashboard.Tags.Clear()
			st.Dashboard.Uploading = false
		})
		entry.WithField("count", len(receipt.Uploaded)).Info("archive uploaded")
		_ = uc.Refresh(ctx, ws)
		return nil
	}

	receipt, err := uc.backend.UploadCV(ctx, ws.Session(), *staged, tags)
	if err != nil {
		uc.uploadFailed(ws, entry, err)
		return err
	}

	ws.Update(func(st *repository.State) {
		st.Dashboard.Message = MsgUploadSuccess
		st.Dashboard.PrependCV(model.CVRecord{
			FileRef: model.FileRef{
				ID:               receipt.CVID,
				OriginalFilename: staged.Filename,
				StoredFilename:   staged.Filename,
			},
			Status:     model.StatusUploaded,
			Tags:       tags,
			UploadedAt: uc.now().UTC(),
		})
		st.Dashboard.Staged = nil
		st.Dashboard.Tags.Clear()
		st.Dashboard.Uploading = false
	})
	entry.WithField("cv_id", receipt.CVID).Info("CV uploaded")

	uc.watch(ws, receipt.CVID)
	return nil
}

func (uc *DashboardUsecase) uploadFailed(ws *repository.Workspace, entry *logrus.Entry, err error) {
	entry.WithError(err).Warn("upload failed")
	ws.Update(func(st *repository.State) {
		st.Dashboard.Message = MsgUploadFailed
		st.Dashboard.Uploading = false
	})
}

// watch polls the job in the background. The run is bound to the workspace
// context so teardown stops it.
func (uc *DashboardUsecase) watch(ws *repository.Workspace, cvID string) {
	fetch := func(ctx context.Context, id string) (model.StatusReport, error) {
		return uc.backend.CVStatus(ctx, ws.Session(), id)
	}
	h := uc.poller.Start(ws.Context(), cvID, fetch, uc.onStatus(ws, cvID))
	if !ws.Track(h) {
		return
	}

	go func() {
		outcome := h.Wait()
		ws.Untrack(h)
		if outcome.Exhausted {
			uc.log.WithFields(logrus.Fields{
				"workspace_id": ws.ID(),
				"cv_id":        cvID,
				"last_status":  outcome.Last,
			}).Warn("parsing status still inconclusive after polling")
		}
	}()
}

func (uc *DashboardUsecase) onStatus(ws *repository.Workspace, cvID string) poller.UpdateFunc {
	return func(status model.Status, errMsg string) {
		ws.Update(func(st *repository.State) {
			st.Dashboard.ApplyStatus(cvID, status, errMsg)
			switch status {
			case model.StatusCompleted:
				st.Dashboard.Message = MsgParsingComplete
			case model.StatusError:
				if errMsg == "" {
					errMsg = "Unknown error"
				}
				st.Dashboard.Message = fmt.Sprintf(msgParsingFailed, errMsg)
			}
		})
		if status == model.StatusCompleted {
			_ = uc.Refresh(ws.Context(), ws)
		}
	}
}

// Delete removes the CV on the backend and reloads the list.
func (uc *DashboardUsecase) Delete(ctx context.Context, ws *repository.Workspace, cvID string) error {
	if strings.TrimSpace(cvID) == "" {
		return util.E(util.CodeInvalidArgument, "DashboardUsecase.Delete", "cv id is required", nil)
	}
	if err := uc.backend.DeleteCV(ctx, ws.Session(), cvID); err != nil {
		return err
	}
	uc.log.WithFields(logrus.Fields{"workspace_id": ws.ID(), "cv_id": cvID}).Info("CV deleted")
	_ = uc.Refresh(ctx, ws)
	return nil
}
