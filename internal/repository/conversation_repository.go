package repository

import (
	"context"
	"errors"
	"time"

	"CoinVestAPI/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RecentMessageLimit caps how many messages each conversation read returns.
const RecentMessageLimit = 50

// ErrNotParticipant is returned when a sender is neither the admin nor the
// user the conversation belongs to.
var ErrNotParticipant = errors.New("sender is not a participant of the conversation")

type ConversationRepository struct {
	pool *pgxpool.Pool
}

func NewConversationRepository(pool *pgxpool.Pool) *ConversationRepository {
	return &ConversationRepository{
		pool: pool,
	}
}

const conversationColumns = `c.id, c.user_id, c.admin_id, c.last_message, c.last_message_at, c.unread_count, c.created_at,
	u.id, u.name, u.email`

func scanConversationRow(row pgx.Row) (*model.ConversationSummary, error) {
	var s model.ConversationSummary
	err := row.Scan(
		&s.Conversation.ID,
		&s.Conversation.UserID,
		&s.Conversation.AdminID,
		&s.Conversation.LastMessage,
		&s.Conversation.LastMessageAt,
		&s.Conversation.UnreadCount,
		&s.Conversation.CreatedAt,
		&s.User.ID,
		&s.User.Name,
		&s.User.Email,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListForAdmin returns every conversation assigned to the admin, excluding
// any row whose user is the admin itself, newest activity first. Two round
// trips total: one for the conversations, one windowed query for up to
// RecentMessageLimit messages per conversation.
func (r *ConversationRepository) ListForAdmin(ctx context.Context, adminID uuid.UUID) ([]model.ConversationSummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+conversationColumns+`
		FROM conversations c
		JOIN users u ON u.id = c.user_id
		WHERE c.admin_id = $1 AND c.user_id <> $1
		ORDER BY c.last_message_at DESC NULLS LAST, c.id DESC`,
		adminID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]model.ConversationSummary, 0)
	index := make(map[uuid.UUID]int)
	ids := make([]uuid.UUID, 0)

	for rows.Next() {
		s, err := scanConversationRow(rows)
		if err != nil {
			return nil, err
		}
		s.Messages = make([]model.Message, 0)
		index[s.Conversation.ID] = len(summaries)
		ids = append(ids, s.Conversation.ID)
		summaries = append(summaries, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return summaries, nil
	}

	msgs, err := r.recentMessages(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, m := range msgs {
		i := index[m.ConversationID]
		summaries[i].Messages = append(summaries[i].Messages, m)
	}

	return summaries, nil
}

// GetForUser returns the conversation between the admin and one user, or
// pgx.ErrNoRows when none exists yet.
func (r *ConversationRepository) GetForUser(ctx context.Context, adminID, userID uuid.UUID) (*model.ConversationSummary, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+conversationColumns+`
		FROM conversations c
		JOIN users u ON u.id = c.user_id
		WHERE c.admin_id = $1 AND c.user_id = $2 AND c.user_id <> $1`,
		adminID, userID,
	)

	s, err := scanConversationRow(row)
	if err != nil {
		return nil, err
	}

	s.Messages, err = r.recentMessages(ctx, []uuid.UUID{s.Conversation.ID})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *ConversationRepository) Create(ctx context.Context, adminID, userID uuid.UUID) (*model.ConversationSummary, error) {
	id := uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO conversations (id, user_id, admin_id, created_at)
		VALUES ($1, $2, $3, $4)`,
		id, userID, adminID, time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		SELECT `+conversationColumns+`
		FROM conversations c
		JOIN users u ON u.id = c.user_id
		WHERE c.id = $1`,
		id,
	)
	s, err := scanConversationRow(row)
	if err != nil {
		return nil, err
	}
	s.Messages = make([]model.Message, 0)
	return s, nil
}

// CreateMessage inserts the message and updates the parent conversation's
// denormalized fields in one transaction. The unread counter moves with a
// store-side expression so concurrent sends never lose increments: reset to
// zero when the admin is the sender, incremented by one otherwise. An
// admin-sent message is born read.
func (r *ConversationRepository) CreateMessage(ctx context.Context, adminID, conversationID uuid.UUID, content string, senderID uuid.UUID) (*model.Message, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var convUserID uuid.UUID
	err = tx.QueryRow(ctx,
		`SELECT user_id FROM conversations WHERE id = $1`, conversationID,
	).Scan(&convUserID)
	if err != nil {
		return nil, err
	}

	fromAdmin := senderID == adminID
	if !fromAdmin && senderID != convUserID {
		return nil, ErrNotParticipant
	}

	recipientID := adminID
	if fromAdmin {
		recipientID = convUserID
	}

	msg := &model.Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		SenderID:       senderID,
		RecipientID:    recipientID,
		Content:        content,
		IsRead:         fromAdmin,
		CreatedAt:      time.Now().UTC(),
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO messages (id, conversation_id, sender_id, recipient_id, content, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		msg.ID, msg.ConversationID, msg.SenderID, msg.RecipientID, msg.Content, msg.IsRead, msg.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE conversations
		SET last_message = $2,
			last_message_at = $3,
			unread_count = CASE WHEN $4 THEN 0 ELSE unread_count + 1 END
		WHERE id = $1`,
		conversationID, msg.Content, msg.CreatedAt, fromAdmin,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return msg, nil
}

// MarkMessagesRead marks every message in the conversation not sent by
// userID as read and resets the unread counter, even when no message rows
// changed.
func (r *ConversationRepository) MarkMessagesRead(ctx context.Context, conversationID, userID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM conversations WHERE id = $1)`, conversationID,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return pgx.ErrNoRows
	}

	_, err = tx.Exec(ctx, `
		UPDATE messages SET is_read = TRUE
		WHERE conversation_id = $1 AND sender_id <> $2 AND is_read = FALSE`,
		conversationID, userID,
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE conversations SET unread_count = 0 WHERE id = $1`, conversationID,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *ConversationRepository) recentMessages(ctx context.Context, conversationIDs []uuid.UUID) ([]model.Message, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, conversation_id, sender_id, recipient_id, content, is_read, created_at
		FROM (
			SELECT m.*, ROW_NUMBER() OVER (
				PARTITION BY m.conversation_id
				ORDER BY m.created_at DESC, m.id DESC
			) AS rn
			FROM messages m
			WHERE m.conversation_id = ANY($1)
		) recent
		WHERE rn <= $2
		ORDER BY conversation_id, created_at DESC, id DESC`,
		conversationIDs, RecentMessageLimit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]model.Message, 0)
	for rows.Next() {
		var m model.Message
		err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.RecipientID, &m.Content, &m.IsRead, &m.CreatedAt)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
