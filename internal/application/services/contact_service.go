package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/casadecultura/backend/internal/domain/entities"
	"github.com/casadecultura/backend/internal/infrastructure/logger"
	"github.com/casadecultura/backend/internal/ports"
)

// emailRx is the local@domain sanity check applied to addresses that
// arrive through paths without handler-level validation (CLI, direct
// service calls).
var emailRx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ErrInvalidEmail reports a syntactically invalid email address.
var ErrInvalidEmail = fmt.Errorf("invalid email address")

// ContactService handles the contact document and the message inbox
type ContactService struct {
	contactRepo ports.ContactRepository
	messageRepo ports.MessageRepository
	logger      *logger.Logger
}

// NewContactService creates a new contact service
func NewContactService(contactRepo ports.ContactRepository, messageRepo ports.MessageRepository, logger *logger.Logger) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		messageRepo: messageRepo,
		logger:      logger,
	}
}

// GetContact returns the contact document, materializing the default on
// first access
func (s *ContactService) GetContact(ctx context.Context) (*entities.ContactInfo, error) {
	return s.contactRepo.Get(ctx)
}

// UpdateContact overwrites the contact document wholesale
func (s *ContactService) UpdateContact(ctx context.Context, req ports.UpdateContactRequest) (*entities.ContactInfo, error) {
	info := &entities.ContactInfo{
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Hours:       req.Hours,
		SocialMedia: req.SocialMedia,
	}

	if err := s.contactRepo.Update(ctx, info); err != nil {
		return nil, err
	}

	s.logger.Info("Contact info updated")

	return info, nil
}

// SubmitMessage records a message from the public contact form
func (s *ContactService) SubmitMessage(ctx context.Context, req ports.CreateMessageRequest) (*entities.ContactMessage, error) {
	if !emailRx.MatchString(req.Email) {
		return nil, ErrInvalidEmail
	}

	msg := &entities.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   req.Email,
		Message: req.Message,
	}

	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.logger.Info("Contact message received", "message_id", msg.ID, "from", msg.Email)

	return msg, nil
}

// ListMessages returns the inbox, newest first
func (s *ContactService) ListMessages(ctx context.Context) ([]entities.ContactMessage, error) {
	return s.messageRepo.ListAll(ctx)
}

// GetMessage retrieves a message by ID
func (s *ContactService) GetMessage(ctx context.Context, id int) (*entities.ContactMessage, error) {
	return s.messageRepo.GetByID(ctx, id)
}

// UpdateMessage flips the read/responded flags
func (s *ContactService) UpdateMessage(ctx context.Context, id int, upd ports.MessageUpdate) (*entities.ContactMessage, error) {
	return s.messageRepo.Update(ctx, id, upd)
}

// DeleteMessage removes a message from the inbox entirely
func (s *ContactService) DeleteMessage(ctx context.Context, id int) error {
	removed, err := s.messageRepo.Delete(ctx, id)
	if err != nil {
		return err
	}

	s.logger.Info("Contact message deleted", "message_id", removed.ID)

	return nil
}
