package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casadecultura/backend/internal/adapters/repository"
	"github.com/casadecultura/backend/internal/domain/entities"
	"github.com/casadecultura/backend/internal/infrastructure/datastore"
	"github.com/casadecultura/backend/internal/infrastructure/logger"
	"github.com/casadecultura/backend/internal/ports"
)

func newContactService(t *testing.T) *ContactService {
	t.Helper()

	root := t.TempDir()
	store := datastore.New(logger.NewNop())
	contactRepo := repository.NewContactRepository(store, filepath.Join(root, "contact.json"))
	messageRepo := repository.NewMessageRepository(store, filepath.Join(root, "messages.json"))

	return NewContactService(contactRepo, messageRepo, logger.NewNop())
}

func TestSubmitMessageTrimsNameAndStartsUnread(t *testing.T) {
	svc := newContactService(t)
	ctx := context.Background()

	msg, err := svc.SubmitMessage(ctx, ports.CreateMessageRequest{
		Name:    "  Maria Silva  ",
		Email:   "maria@example.com",
		Message: "Gostaria de informações sobre as oficinas.",
	})
	require.NoError(t, err)

	assert.Equal(t, "Maria Silva", msg.Name)
	assert.False(t, msg.Read)
	assert.False(t, msg.Responded)
}

func TestSubmitMessageRejectsBadEmail(t *testing.T) {
	svc := newContactService(t)
	ctx := context.Background()

	for _, email := range []string{"", "sem-arroba", "a@b", "a @b.com", "a@b .com"} {
		_, err := svc.SubmitMessage(ctx, ports.CreateMessageRequest{
			Name:    "Maria",
			Email:   email,
			Message: "Olá",
		})
		assert.ErrorIs(t, err, ErrInvalidEmail, "email %q", email)
	}
}

func TestGetMessageByID(t *testing.T) {
	svc := newContactService(t)
	ctx := context.Background()

	submitted, err := svc.SubmitMessage(ctx, ports.CreateMessageRequest{
		Name:    "Maria",
		Email:   "maria@example.com",
		Message: "Olá",
	})
	require.NoError(t, err)

	got, err := svc.GetMessage(ctx, submitted.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria", got.Name)
	assert.Equal(t, "Olá", got.Message)

	_, err = svc.GetMessage(ctx, submitted.ID+1)
	assert.ErrorIs(t, err, entities.ErrMessageNotFound)
}

func TestUpdateContactPersists(t *testing.T) {
	svc := newContactService(t)
	ctx := context.Background()

	_, err := svc.UpdateContact(ctx, ports.UpdateContactRequest{
		Email:   "novo@casadecultura.org",
		Phone:   "(11) 1234-5678",
		Address: "Av. Central, 1",
		Hours:   "Seg-Sex: 10h as 17h",
	})
	require.NoError(t, err)

	got, err := svc.GetContact(ctx)
	require.NoError(t, err)
	assert.Equal(t, "novo@casadecultura.org", got.Email)
}
