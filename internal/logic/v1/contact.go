package v1

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/yogawell/member-service/internal/core/domain"
	"github.com/yogawell/member-service/middleware"
)

// ContactService implements the business logic for contact-us messages.
type ContactService struct {
	repo domain.ContactRepository
}

// NewContactService creates a contact service on the given repository.
func NewContactService(repo domain.ContactRepository) *ContactService {
	return &ContactService{repo: repo}
}

// Create stores a new contact message keyed by phone number.
func (s *ContactService) Create(ctx context.Context, req domain.CreateContactRequest) (*domain.Contact, error) {
	ctx, span := middleware.StartSpan(ctx, "contact.create", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("contact.phone_no", req.PhoneNo),
	))
	defer span.End()

	contact, err := s.repo.Insert(ctx, &domain.Contact{
		Name:    req.Name,
		Email:   req.Email,
		PhoneNo: req.PhoneNo,
		Message: req.Message,
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int64("contact.id", contact.ID))
	return contact, nil
}

// List returns all contact messages.
func (s *ContactService) List(ctx context.Context) ([]domain.Contact, error) {
	ctx, span := middleware.StartSpan(ctx, "contact.list", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	contacts, err := s.repo.List(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("contact.count", len(contacts)))
	return contacts, nil
}

// Get returns the contact message for a phone number.
func (s *ContactService) Get(ctx context.Context, phoneNo string) (*domain.Contact, error) {
	ctx, span := middleware.StartSpan(ctx, "contact.get", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("contact.phone_no", phoneNo),
	))
	defer span.End()

	contact, err := s.repo.Get(ctx, phoneNo)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return contact, nil
}

// Update fully replaces the mutable fields of a contact message.
func (s *ContactService) Update(ctx context.Context, phoneNo string, req domain.UpdateContactRequest) (*domain.Contact, error) {
	ctx, span := middleware.StartSpan(ctx, "contact.update", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("contact.phone_no", phoneNo),
	))
	defer span.End()

	contact, err := s.repo.Update(ctx, phoneNo, domain.ContactUpdate{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return contact, nil
}

// Patch replaces only the supplied fields of a contact message.
func (s *ContactService) Patch(ctx context.Context, phoneNo string, req domain.PatchContactRequest) (*domain.Contact, error) {
	ctx, span := middleware.StartSpan(ctx, "contact.patch", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("contact.phone_no", phoneNo),
	))
	defer span.End()

	contact, err := s.repo.Patch(ctx, phoneNo, req.Patch())
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return contact, nil
}

// Delete removes a contact message.
func (s *ContactService) Delete(ctx context.Context, phoneNo string) error {
	ctx, span := middleware.StartSpan(ctx, "contact.delete", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("contact.phone_no", phoneNo),
	))
	defer span.End()

	if err := s.repo.Delete(ctx, phoneNo); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}
