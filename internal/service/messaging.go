package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/agrilink/internal/models"
	"github.com/Skotchmaster/agrilink/internal/repo"
	"github.com/Skotchmaster/agrilink/pkg/events"
)

type MessagingService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

func (s *MessagingService) ListConversations(ctx context.Context, sess Session) ([]models.Conversation, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}

	if sess.IsProducer() {
		p, err := s.Repo.GetProducerByUserID(ctx, sess.UserID)
		if err == nil {
			return s.Repo.ListConversationsForProducer(ctx, p.ID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return s.Repo.ListConversationsForConsumer(ctx, sess.UserID)
}

// StartConversation returns the caller's conversation with the producer,
// creating it on first contact. The bool reports creation.
func (s *MessagingService) StartConversation(ctx context.Context, sess Session, producerID uuid.UUID) (*models.Conversation, bool, error) {
	if err := requireSession(sess); err != nil {
		return nil, false, err
	}
	if producerID == uuid.Nil {
		return nil, false, newErr(ErrValidation, "producer_id requis")
	}

	producer, err := s.Repo.GetProducer(ctx, producerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, newErr(ErrNotFound, "Producteur introuvable")
	}
	if err != nil {
		return nil, false, err
	}
	if producer.UserID == sess.UserID {
		return nil, false, newErr(ErrValidation, "Impossible de s'ecrire a soi-meme")
	}

	return s.Repo.GetOrCreateConversation(ctx, sess.UserID, producerID)
}

// participant loads the conversation and checks the caller takes part in it.
func (s *MessagingService) participant(ctx context.Context, sess Session, id uuid.UUID) (*models.Conversation, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	conv, err := s.Repo.GetConversation(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newErr(ErrNotFound, "Conversation introuvable")
	}
	if err != nil {
		return nil, err
	}

	if conv.ConsumerID == sess.UserID {
		return conv, nil
	}
	if conv.Producer != nil && conv.Producer.UserID == sess.UserID {
		return conv, nil
	}
	return nil, newErr(ErrForbidden, "Non autorise")
}

func (s *MessagingService) ListMessages(ctx context.Context, sess Session, conversationID uuid.UUID) ([]models.Message, error) {
	if _, err := s.participant(ctx, sess, conversationID); err != nil {
		return nil, err
	}
	return s.Repo.ListMessagesAndMarkRead(ctx, conversationID, sess.UserID)
}

func (s *MessagingService) SendMessage(ctx context.Context, sess Session, conversationID uuid.UUID, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, newErr(ErrValidation, "Message vide")
	}
	conv, err := s.participant(ctx, sess, conversationID)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		ConversationID: conversationID,
		SenderID:       sess.UserID,
		Content:        content,
	}
	if err := s.Repo.AddMessage(ctx, msg); err != nil {
		return nil, err
	}

	recipient := conv.ConsumerID
	if recipient == sess.UserID && conv.Producer != nil {
		recipient = conv.Producer.UserID
	}
	publish(ctx, s.Events, events.TopicMessages, conversationID.String(), map[string]any{
		"type":            "message_sent",
		"conversation_id": conversationID,
		"message_id":      msg.ID,
		"sender_id":       msg.SenderID,
		"recipient_id":    recipient,
	})
	return msg, nil
}
