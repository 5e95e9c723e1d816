package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/fadilmartias/cv-dashboard/internal/config"
	"github.com/fadilmartias/cv-dashboard/internal/model"
	"github.com/fadilmartias/cv-dashboard/internal/session"
	"github.com/fadilmartias/cv-dashboard/internal/util"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

type BackendServiceInterface interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, name, email, password string) (string, error)
	ListCVs(ctx context.Context, sess session.Session) ([]model.CVRecord, error)
	UploadCV(ctx context.Context, sess session.Session, file model.Upload, tags []string) (model.UploadReceipt, error)
	UploadZip(ctx context.Context, sess session.Session, file model.Upload) (model.ZipReceipt, error)
	CVStatus(ctx context.Context, sess session.Session, cvID string) (model.StatusReport, error)
	SearchCVs(ctx context.Context, sess session.Session, rawQuery string) ([]model.SearchResult, error)
	DeleteCV(ctx context.Context, sess session.Session, cvID string) error
	FetchPreview(ctx context.Context, storedFilename string) ([]byte, error)
	PreviewURL(storedFilename string) string
	DownloadURL(storedFilename string) string
}

// BackendService talks to the remote CV backend. Every call that needs a
// credential takes the session explicitly.
type BackendService struct {
	client  *resty.Client
	baseURL string
	log     *logrus.Logger
	now     func() time.Time
}

func NewBackendService(cfg *config.BackendConfig, log *logrus.Logger) *BackendService {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	return &BackendService{
		client:  client,
		baseURL: cfg.BaseURL,
		log:     log,
		now:     time.Now,
	}
}

func (s *BackendService) request(ctx context.Context) *resty.Request {
	return s.client.R().
		SetContext(ctx).
		SetHeader("X-Request-Id", uuid.NewString())
}

func (s *BackendService) authorized(ctx context.Context, op string, sess session.Session) (*resty.Request, error) {
	if !sess.Authenticated(s.now()) {
		return nil, util.E(util.CodeUnauthenticated, op, "login required", nil)
	}
	token, _ := sess.Token()
	return s.request(ctx).SetAuthToken(token), nil
}

// check turns transport failures and non-2xx answers into AppErrors. The
// user-facing message comes from the backend "detail" field when present.
func (s *BackendService) check(op string, resp *resty.Response, err error) error {
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return util.E(util.CodeUnavailable, op, "request cancelled", err)
		}
		return util.E(util.CodeUnavailable, op, "backend unreachable", err)
	}
	if resp.IsError() {
		detail := gjson.GetBytes(resp.Body(), "detail")
		msg := ""
		if detail.Type == gjson.String {
			msg = detail.String()
		}
		s.log.WithFields(logrus.Fields{
			"op":     op,
			"status": resp.StatusCode(),
			"body":   truncate(resp.String(), 512),
		}).Warn("backend returned an error")
		return util.BackendError(op, resp.StatusCode(), msg)
	}
	return nil
}

func (s *BackendService) Login(ctx context.Context, email, password string) (string, error) {
	const op = "BackendService.Login"
	resp, err := s.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"email": email, "password": password}).
		Post("/auth/login")
	if err := s.check(op, resp, err); err != nil {
		return "", err
	}

	token := gjson.GetBytes(resp.Body(), "access_token").String()
	if token == "" {
		return "", util.E(util.CodeBackend, op, "login response carried no token", nil)
	}
	return token, nil
}

func (s *BackendService) Register(ctx context.Context, name, email, password string) (string, error) {
	const op = "BackendService.Register"
	resp, err := s.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"name": name, "email": email, "password": password}).
		Post("/auth/register")
	if err := s.check(op, resp, err); err != nil {
		return "", err
	}
	return gjson.GetBytes(resp.Body(), "msg").String(), nil
}

// ListCVs returns an empty list when the payload is not an array.
func (s *BackendService) ListCVs(ctx context.Context, sess session.Session) ([]model.CVRecord, error) {
	const op = "BackendService.ListCVs"
	req, err := s.authorized(ctx, op, sess)
	if err != nil {
		return nil, err
	}
	resp, err := req.Get("/list-cvs")
	if err := s.check(op, resp, err); err != nil {
		return nil, err
	}

	body := gjson.ParseBytes(resp.Body())
	cvs := []model.CVRecord{}
	if !body.IsArray() {
		s.log.WithField("op", op).Warn("expected an array of CVs, treating as empty")
		return cvs, nil
	}
	body.ForEach(func(_, item gjson.Result) bool {
		if item.IsObject() {
			cvs = append(cvs, parseCVRecord(item))
		}
		return true
	})
	return cvs, nil
}

func (s *BackendService) UploadCV(ctx context.Context, sess session.Session, file model.Upload, tags []string) (model.UploadReceipt, error) {
	const op = "BackendService.UploadCV"
	req, err := s.authorized(ctx, op, sess)
	if err != nil {
		return model.UploadReceipt{}, err
	}
	if tags == nil {
		tags = []string{}
	}
	encodedTags, err := json.Marshal(tags)
	if err != nil {
		return model.UploadReceipt{}, util.E(util.CodeInternal, op, "cannot encode tags", err)
	}

	resp, err := req.
		SetFileReader("file", file.Filename, bytes.NewReader(file.Content)).
		SetFormData(map[string]string{"tags": string(encodedTags)}).
		Post("/upload-cv")
	if err := s.check(op, resp, err); err != nil {
		return model.UploadReceipt{}, err
	}

	body := gjson.ParseBytes(resp.Body())
	receipt := model.UploadReceipt{
		CVID:    body.Get("cv_id").String(),
		Status:  model.Status(body.Get("status").String()),
		Message: body.Get("message").String(),
	}
	if receipt.CVID == "" {
		return model.UploadReceipt{}, util.E(util.CodeBackend, op, "upload response carried no cv_id", nil)
	}
	return receipt, nil
}

// UploadZip sends the archive on its own; batch entries never carry tags.
func (s *BackendService) UploadZip(ctx context.Context, sess session.Session, file model.Upload) (model.ZipReceipt, error) {
	const op = "BackendService.UploadZip"
	req, err := s.authorized(ctx, op, sess)
	if err != nil {
		return model.ZipReceipt{}, err
	}

	resp, err := req.
		SetFileReader("file", file.Filename, bytes.NewReader(file.Content)).
		Post("/upload-zip")
	if err := s.check(op, resp, err); err != nil {
		return model.ZipReceipt{}, err
	}

	body := gjson.ParseBytes(resp.Body())
	receipt := model.ZipReceipt{
		Message:  body.Get("message").String(),
		Uploaded: []model.ZipEntry{},
	}
	for _, item := range body.Get("uploaded").Array() {
		receipt.Uploaded = append(receipt.Uploaded, model.ZipEntry{
			CVID:             item.Get("cv_id").String(),
			OriginalFilename: item.Get("original_filename").String(),
			Status:           model.Status(item.Get("status").String()),
		})
	}
	return receipt, nil
}

func (s *BackendService) CVStatus(ctx context.Context, sess session.Session, cvID string) (model.StatusReport, error) {
	const op = "BackendService.CVStatus"
	req, err := s.authorized(ctx, op, sess)
	if err != nil {
		return model.StatusReport{}, err
	}
	resp, err := req.
		SetPathParam("id", cvID).
		Get("/cv-status/{id}")
	if err := s.check(op, resp, err); err != nil {
		return model.StatusReport{}, err
	}

	body := gjson.ParseBytes(resp.Body())
	report := model.StatusReport{
		JobID:  cvID,
		Status: model.Status(body.Get("status").String()),
		Error:  body.Get("error").String(),
	}
	if report.Status == "" {
		report.Status = model.StatusUnknown
	}
	return report, nil
}

// SearchCVs issues one search. rawQuery is sent verbatim; a missing or
// non-array "results" field yields an empty list.
func (s *BackendService) SearchCVs(ctx context.Context, sess session.Session, rawQuery string) ([]model.SearchResult, error) {
	const op = "BackendService.SearchCVs"
	req, err := s.authorized(ctx, op, sess)
	if err != nil {
		return nil, err
	}
	resp, err := req.
		SetHeader("Content-Type", "application/json").
		Get("/search-cvs?" + rawQuery)
	if err := s.check(op, resp, err); err != nil {
		return nil, err
	}

	results := []model.SearchResult{}
	field := gjson.GetBytes(resp.Body(), "results")
	if !field.IsArray() {
		return results, nil
	}
	field.ForEach(func(_, item gjson.Result) bool {
		if item.IsObject() {
			results = append(results, parseSearchResult(item))
		}
		return true
	})
	return results, nil
}

func (s *BackendService) DeleteCV(ctx context.Context, sess session.Session, cvID string) error {
	const op = "BackendService.DeleteCV"
	req, err := s.authorized(ctx, op, sess)
	if err != nil {
		return err
	}
	resp, err := req.
		SetPathParam("id", cvID).
		Delete("/cv/{id}")
	return s.check(op, resp, err)
}

func (s *BackendService) FetchPreview(ctx context.Context, storedFilename string) ([]byte, error) {
	const op = "BackendService.FetchPreview"
	resp, err := s.request(ctx).
		SetHeader("Accept", "application/pdf").
		SetPathParam("filename", storedFilename).
		Get("/cv/preview/{filename}")
	if err := s.check(op, resp, err); err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

func (s *BackendService) PreviewURL(storedFilename string) string {
	return s.baseURL + "/cv/preview/" + url.PathEscape(storedFilename)
}

func (s *BackendService) DownloadURL(storedFilename string) string {
	return s.baseURL + "/cv/download/" + url.PathEscape(storedFilename)
}

func parseCVRecord(item gjson.Result) model.CVRecord {
	cv := model.CVRecord{
		FileRef: model.FileRef{
			ID:               item.Get("id").String(),
			OriginalFilename: item.Get("filename").String(),
			StoredFilename:   item.Get("stored_filename").String(),
			Name:             item.Get("name").String(),
		},
		Status: model.Status(item.Get("status").String()),
		Error:  item.Get("error").String(),
		Tags:   tagArray(item.Get("tags")),
	}
	if cv.Status == "" {
		cv.Status = model.StatusUnknown
	}
	if t, ok := model.ParseTimestamp(item.Get("uploaded_at").String()); ok {
		cv.UploadedAt = t
	}
	return cv
}

func parseSearchResult(item gjson.Result) model.SearchResult {
	r := model.SearchResult{
		FileRef: model.FileRef{
			ID:               item.Get("_id").String(),
			OriginalFilename: item.Get("original_filename").String(),
			StoredFilename:   item.Get("stored_filename").String(),
			Name:             item.Get("name").String(),
		},
		MatchScore:      item.Get("match_score").Float(),
		Email:           item.Get("email").String(),
		Phone:           item.Get("phone").String(),
		Location:        item.Get("location").String(),
		CurrentCompany:  item.Get("current_company").String(),
		CurrentPosition: item.Get("current_position").String(),
		LastEducation:   item.Get("last_education").String(),
		GraduationBatch: int(item.Get("graduation_batch").Int()),
		Skills:          stringArray(item.Get("skills")),
		Tags:            tagArray(item.Get("tags")),
	}
	if t, ok := model.ParseTimestamp(item.Get("upload_time").String()); ok {
		r.UploadTime = &t
	}
	return r
}

// stringArray keeps the string members of a JSON array; anything else yields
// an empty slice.
func stringArray(v gjson.Result) []string {
	out := []string{}
	if !v.IsArray() {
		return out
	}
	for _, e := range v.Array() {
		if e.Type == gjson.String && strings.TrimSpace(e.Str) != "" {
			out = append(out, e.Str)
		}
	}
	return out
}

// tagArray is stringArray trimmed and deduplicated in first-seen order.
func tagArray(v gjson.Result) []string {
	return model.NewTagSet(stringArray(v)...).Values()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
