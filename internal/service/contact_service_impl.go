package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/leadform/backend/internal/metrics"
	"github.com/leadform/backend/internal/model"
	"github.com/leadform/backend/internal/notify"
	"github.com/leadform/backend/internal/repository"
)

const notifyTimeout = 15 * time.Second

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo     repository.ContactRepository
	notifier notify.Notifier
	metrics  *metrics.Metrics
}

// NewContactService creates a ContactService backed by the given repository.
// m may be nil.
func NewContactService(repo repository.ContactRepository, notifier notify.Notifier, m *metrics.Metrics) ContactService {
	return &contactServiceImpl{repo: repo, notifier: notifier, metrics: m}
}

func (s *contactServiceImpl) Submit(ctx context.Context, in ContactInput) (*model.Contact, error) {
	contact, err := in.validate()
	if err != nil {
		s.countSubmission(metrics.ResultInvalid)
		return nil, err
	}

	if err := s.repo.Save(ctx, contact); err != nil {
		s.countSubmission(metrics.ResultError)
		return nil, fmt.Errorf("save contact: %w", err)
	}
	s.countSubmission(metrics.ResultSuccess)

	s.notify(ctx, contact)
	return contact, nil
}

// notify sends the owner notification. The stored contact stands even
// when the send fails or is not configured.
func (s *contactServiceImpl) notify(ctx context.Context, contact *model.Contact) {
	if s.notifier == nil {
		s.countNotification(metrics.ResultNotConfigured)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	err := s.notifier.NotifyContact(ctx, contact)
	switch {
	case err == nil:
		s.countNotification(metrics.ResultSuccess)
	case errors.Is(err, notify.ErrNotConfigured):
		slog.Warn("contact notification skipped: email not configured", "contact_id", contact.ID)
		s.countNotification(metrics.ResultNotConfigured)
	default:
		slog.Warn("contact notification failed", "contact_id", contact.ID, "error", err)
		s.countNotification(metrics.ResultError)
	}
}

func (s *contactServiceImpl) List(ctx context.Context, q ListQuery) (*model.ContactPage, error) {
	page := min(max(q.Page, 1), MaxPage)
	limit := min(max(q.Limit, 1), MaxLimit)

	opts := model.ContactListOptions{
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
	if status := model.ContactStatus(q.Status); status.Valid() {
		opts.Status = status
	}

	contacts, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	if contacts == nil {
		contacts = []*model.Contact{}
	}

	return &model.ContactPage{
		Contacts: contacts,
		Pagination: model.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: (total + limit - 1) / limit,
		},
	}, nil
}

func (s *contactServiceImpl) Get(ctx context.Context, id string) (*model.Contact, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	return s.repo.FindByID(ctx, uid.String())
}

func (s *contactServiceImpl) UpdateStatus(ctx context.Context, id string, status *string) (*model.Contact, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var next *model.ContactStatus
	if status != nil && *status != "" {
		st := model.ContactStatus(*status)
		if !st.Valid() {
			return nil, ErrInvalidStatus
		}
		next = &st
	}

	contact, err := s.repo.UpdateStatus(ctx, uid.String(), next)
	if err != nil {
		return nil, err
	}
	if next != nil && s.metrics != nil {
		s.metrics.StatusUpdates.WithLabelValues(string(*next)).Inc()
	}
	return contact, nil
}

func (s *contactServiceImpl) countSubmission(result string) {
	if s.metrics != nil {
		s.metrics.Submissions.WithLabelValues(result).Inc()
	}
}

func (s *contactServiceImpl) countNotification(result string) {
	if s.metrics != nil {
		s.metrics.Notifications.WithLabelValues(result).Inc()
	}
}
