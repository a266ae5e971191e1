package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/agrilink/internal/models"
)

func (r *GormRepo) conversationQuery(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Preload("Consumer").
		Preload("Producer").
		Order("last_message_at IS NULL").
		Order("last_message_at DESC")
}

func (r *GormRepo) ListConversationsForConsumer(ctx context.Context, consumerID uuid.UUID) ([]models.Conversation, error) {
	var out []models.Conversation
	if err := r.conversationQuery(ctx).Where("consumer_id = ?", consumerID).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepo) ListConversationsForProducer(ctx context.Context, producerID uuid.UUID) ([]models.Conversation, error) {
	var out []models.Conversation
	if err := r.conversationQuery(ctx).Where("producer_id = ?", producerID).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetOrCreateConversation returns the conversation for the pair, creating it
// on first contact. The bool reports whether it was created.
func (r *GormRepo) GetOrCreateConversation(ctx context.Context, consumerID, producerID uuid.UUID) (*models.Conversation, bool, error) {
	db := r.DB.WithContext(ctx)
	conv := models.Conversation{ConsumerID: consumerID, ProducerID: producerID}

	res := db.Where("consumer_id = ? AND producer_id = ?", consumerID, producerID).FirstOrCreate(&conv)
	if res.Error != nil {
		if !errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return nil, false, res.Error
		}
		// lost the insert race; the row exists now
		if err := db.Where("consumer_id = ? AND producer_id = ?", consumerID, producerID).First(&conv).Error; err != nil {
			return nil, false, err
		}
		return &conv, false, nil
	}
	return &conv, res.RowsAffected > 0, nil
}

func (r *GormRepo) GetConversation(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	var conv models.Conversation
	if err := r.DB.WithContext(ctx).Preload("Producer").Where("id = ?", id).First(&conv).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

// ListMessagesAndMarkRead returns the messages oldest first, then flags as
// read every message in the conversation not sent by readerID. The returned
// slice reflects the state before the flag update.
func (r *GormRepo) ListMessagesAndMarkRead(ctx context.Context, conversationID, readerID uuid.UUID) ([]models.Message, error) {
	db := r.DB.WithContext(ctx)

	var msgs []models.Message
	if err := db.Where("conversation_id = ?", conversationID).Order("created_at ASC").Find(&msgs).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, readerID, false).
		Update("is_read", true).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *GormRepo) AddMessage(ctx context.Context, msg *models.Message) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		return tx.Model(&models.Conversation{}).
			Where("id = ?", msg.ConversationID).
			Updates(map[string]any{"last_message": msg.Content, "last_message_at": msg.CreatedAt}).Error
	})
}
