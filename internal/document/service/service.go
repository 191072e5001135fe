package service

import (
	"context"
	"errors"
	"time"

	"github.com/docshare/docshare/backend/go-services/internal/apperr"
	"github.com/docshare/docshare/backend/go-services/internal/document"
	"github.com/docshare/docshare/backend/go-services/internal/document/repository"
	"github.com/docshare/docshare/backend/go-services/internal/models"
	"github.com/docshare/docshare/backend/go-services/internal/subjects"
	"github.com/docshare/docshare/backend/go-services/internal/users"
	"github.com/docshare/docshare/backend/go-services/pkg/logger"
	"github.com/docshare/docshare/backend/go-services/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// Service defines the document operations used by the handler layer.
// Every failure is an *apperr.Error. Single-document operations return a nil
// document, not an error, when the id does not exist.
type Service interface {
	ListApproved(ctx context.Context, page document.Page) ([]*document.View, error)
	Create(ctx context.Context, in document.CreateInput, authorID string) (*document.Document, error)
	CreateByAdmin(ctx context.Context, in document.AdminCreateInput, authorID string) (*document.Document, error)
	Update(ctx context.Context, id string, in document.UpdateInput) (*document.Document, error)
	Delete(ctx context.Context, id string) (*document.Document, error)
	Get(ctx context.Context, id string) (*document.View, error)
	ListByAdmin(ctx context.Context, f document.Filter, page document.Page) ([]*document.View, error)
	ListBySubject(ctx context.Context, subjectID string) (*document.BySubject, error)
	Approve(ctx context.Context, id string, in document.ApproveInput) (*document.Document, error)
}

// AuthorLookup resolves author references.
type AuthorLookup interface {
	AuthorsByIDs(ctx context.Context, ids []string) ([]*models.Author, error)
}

// SubjectLookup resolves subject references.
type SubjectLookup interface {
	Get(ctx context.Context, id string) (*models.Subject, error)
	SummariesByIDs(ctx context.Context, ids []string) ([]*models.SubjectSummary, error)
}

// Archiver keeps a copy of deleted documents.
type Archiver interface {
	Archive(ctx context.Context, d *document.Document) error
}

// Options tune the service. The zero value uses document.DefaultPaging and
// returns pre-update snapshots from Update and Approve.
type Options struct {
	Paging        document.Paging
	ReturnUpdated bool
	Archiver      Archiver
}

type documentService struct {
	docs          repository.Repository
	authors       AuthorLookup
	subjects      SubjectLookup
	paging        document.Paging
	returnUpdated bool
	archiver      Archiver
}

// New returns a Service over the given repositories.
func New(docs repository.Repository, authors AuthorLookup, subjectRepo SubjectLookup, opts Options) Service {
	paging := opts.Paging
	if paging.DefaultPageSize <= 0 {
		paging = document.DefaultPaging
	}
	return &documentService{
		docs:          docs,
		authors:       authors,
		subjects:      subjectRepo,
		paging:        paging,
		returnUpdated: opts.ReturnUpdated,
		archiver:      opts.Archiver,
	}
}

// NewMemoryService returns a Service backed entirely by in-memory repositories.
func NewMemoryService() Service {
	return New(repository.NewMemoryRepo(), users.NewMemoryUserRepository(), subjects.NewMemoryRepository(), Options{})
}

// track records the outcome and latency of op once the returned func runs.
func track(op string) func(*error) {
	start := time.Now()
	return func(errp *error) {
		outcome := metrics.OutcomeOK
		if *errp != nil {
			outcome = metrics.OutcomeError
		}
		metrics.DocumentOps.WithLabelValues(op, outcome).Inc()
		metrics.DocumentOpDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}

func kindOf(err error) apperr.Kind {
	if errors.Is(err, document.ErrValidation) {
		return apperr.KindValidation
	}
	return apperr.KindPersistence
}

func (s *documentService) ListApproved(ctx context.Context, page document.Page) (out []*document.View, err error) {
	defer track("list_approved")(&err)
	page = page.Normalize(s.paging)

	out, err = s.list(ctx, document.Approved(""), page.Skip(), page.Limit())
	if err != nil {
		logger.Errorf("error while listing approved documents: %v", err)
		return nil, apperr.BadRequest(apperr.KindPersistence, err)
	}
	logger.Infof("listed approved documents (page=%d size=%d count=%d)", page.CurrentPage, page.PageSize, len(out))
	return out, nil
}

func (s *documentService) Create(ctx context.Context, in document.CreateInput, authorID string) (d *document.Document, err error) {
	defer track("create")(&err)
	d, err = s.create(ctx, in, nil, authorID)
	if err != nil {
		logger.Errorf("error while creating document: %v", err)
		return nil, apperr.BadRequestWithCause(kindOf(err), err)
	}
	logger.Infof("created document %s", d.ID)
	return d, nil
}

func (s *documentService) CreateByAdmin(ctx context.Context, in document.AdminCreateInput, authorID string) (d *document.Document, err error) {
	defer track("create_admin")(&err)
	d, err = s.create(ctx, in.CreateInput, in.IsApproved, authorID)
	if err != nil {
		logger.Errorf("error while creating document by admin: %v", err)
		return nil, apperr.BadRequestWithCause(kindOf(err), err)
	}
	logger.Infof("created document %s by admin", d.ID)
	return d, nil
}

// create attaches the caller as author; input fields never override it.
func (s *documentService) create(ctx context.Context, in document.CreateInput, approved *bool, authorID string) (*document.Document, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	d := &document.Document{
		Title:       in.Title,
		Description: in.Description,
		Content:     in.Content,
		Subject:     in.Subject,
		Author:      authorID,
	}
	if approved != nil {
		d.IsApproved = *approved
	}
	if err := s.docs.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *documentService) Update(ctx context.Context, id string, in document.UpdateInput) (d *document.Document, err error) {
	defer track("update")(&err)
	if err = in.Validate(); err != nil {
		logger.Errorf("error while updating document %s: %v", id, err)
		return nil, apperr.BadRequestWithCause(apperr.KindValidation, err)
	}
	c := repository.Changes{Title: in.Title, Description: in.Description, Content: in.Content}
	d, err = s.docs.Update(ctx, id, c, s.returnUpdated)
	if errors.Is(err, repository.ErrNotFound) {
		logger.Infof("update document %s: not found", id)
		return nil, nil
	}
	if err != nil {
		logger.Errorf("error while updating document %s: %v", id, err)
		return nil, apperr.BadRequest(apperr.KindPersistence, err)
	}
	logger.Infof("updated document %s", id)
	return d, nil
}

func (s *documentService) Delete(ctx context.Context, id string) (d *document.Document, err error) {
	defer track("delete")(&err)
	d, err = s.docs.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		logger.Infof("delete document %s: not found", id)
		return nil, nil
	}
	if err != nil {
		logger.Errorf("error while deleting document %s: %v", id, err)
		return nil, apperr.BadRequest(apperr.KindPersistence, err)
	}
	if s.archiver != nil {
		// the delete has already happened; a failed archive is only reported
		if aerr := s.archiver.Archive(ctx, d); aerr != nil {
			logger.Warnf("archive deleted document %s: %v", id, aerr)
		}
	}
	logger.Infof("deleted document %s", id)
	return d, nil
}

func (s *documentService) Get(ctx context.Context, id string) (v *document.View, err error) {
	defer track("get")(&err)
	var d *document.Document
	d, err = s.docs.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		logger.Infof("get document %s: not found", id)
		return nil, nil
	}
	if err == nil {
		var views []*document.View
		views, err = s.populate(ctx, []*document.Document{d})
		if err == nil {
			v = views[0]
		}
	}
	if err != nil {
		logger.Errorf("error while getting document %s: %v", id, err)
		return nil, apperr.BadRequestWithCause(apperr.KindPersistence, err)
	}
	logger.Infof("got document %s", id)
	return v, nil
}

func (s *documentService) ListByAdmin(ctx context.Context, f document.Filter, page document.Page) (out []*document.View, err error) {
	defer track("list_admin")(&err)
	page = page.Normalize(s.paging)

	out, err = s.list(ctx, f, page.Skip(), page.Limit())
	if err != nil {
		logger.Errorf("error while listing documents by admin: %v", err)
		return nil, apperr.BadRequest(apperr.KindPersistence, err)
	}
	logger.Infof("listed documents by admin (page=%d size=%d count=%d)", page.CurrentPage, page.PageSize, len(out))
	return out, nil
}

// ListBySubject fetches the subject's approved documents and the subject
// record concurrently. The two reads are not taken from a common snapshot.
func (s *documentService) ListBySubject(ctx context.Context, subjectID string) (res *document.BySubject, err error) {
	defer track("list_by_subject")(&err)

	var (
		docs    []*document.View
		subject *models.Subject
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var lerr error
		docs, lerr = s.list(gctx, document.Approved(subjectID), 0, 0)
		return lerr
	})
	g.Go(func() error {
		var serr error
		subject, serr = s.subjects.Get(gctx, subjectID)
		return serr
	})
	if err = g.Wait(); err != nil {
		logger.Errorf("error while listing documents of subject %s: %v", subjectID, err)
		return nil, apperr.BadRequest(apperr.KindPersistence, err)
	}
	logger.Infof("listed documents of subject %s (count=%d)", subjectID, len(docs))
	return &document.BySubject{Documents: docs, Subject: subject}, nil
}

func (s *documentService) Approve(ctx context.Context, id string, in document.ApproveInput) (d *document.Document, err error) {
	defer track("approve")(&err)
	if err = in.Validate(); err != nil {
		logger.Errorf("error while approving document %s: %v", id, err)
		return nil, apperr.BadRequestWithCause(apperr.KindValidation, err)
	}
	d, err = s.docs.Update(ctx, id, repository.Changes{IsApproved: in.IsApproved}, s.returnUpdated)
	if errors.Is(err, repository.ErrNotFound) {
		logger.Infof("approve document %s: not found", id)
		return nil, nil
	}
	if err != nil {
		logger.Errorf("error while approving document %s: %v", id, err)
		return nil, apperr.BadRequest(apperr.KindPersistence, err)
	}
	logger.Infof("set approval of document %s to %t", id, *in.IsApproved)
	return d, nil
}

func (s *documentService) list(ctx context.Context, f document.Filter, skip, limit int64) ([]*document.View, error) {
	docs, err := s.docs.Find(ctx, f, skip, limit)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, docs)
}
