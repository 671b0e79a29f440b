package api

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/papercomputeco/recall/pkg/eventstream"
	"github.com/papercomputeco/recall/pkg/store"
)

const (
	// DefaultListLimit is the number of messages returned when the caller
	// does not pass an explicit limit.
	DefaultListLimit = 20

	// DefaultMessageType is recorded when a producer does not tag its message.
	DefaultMessageType = "insight"
)

// ErrorResponse is the JSON body for all non-2xx responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ListResponse contains the messages returned by the list endpoint,
// newest first.
type ListResponse struct {
	Messages []*store.Message `json:"messages"`
	Count    int              `json:"count"`
}

// DeleteResponse reports the outcome of a single-message delete. Deleting an
// absent id is not an error; Deleted reports whether a row was removed.
type DeleteResponse struct {
	Deleted bool  `json:"deleted"`
	ID      int64 `json:"id"`
}

// ClearResponse reports the outcome of a full clear.
type ClearResponse struct {
	DeletedCount int64 `json:"deleted_count"`
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleListMessages returns up to limit messages, newest first.
func (s *Server) handleListMessages(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", DefaultListLimit)
	offset := c.QueryInt("offset", 0)

	messages, err := s.storer.List(c.Context(), limit, offset)
	if err != nil {
		var verr store.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: verr.Error()})
		}
		s.logger.Error("listing messages", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to list messages"})
	}

	return c.JSON(ListResponse{Messages: messages, Count: len(messages)})
}

// handleCreateMessage persists a new message and returns it with its
// assigned id.
func (s *Server) handleCreateMessage(c *fiber.Ctx) error {
	var msg store.Message
	if err := c.BodyParser(&msg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid JSON body"})
	}

	// IDs are always store-assigned.
	msg.ID = 0
	if msg.Type == "" {
		msg.Type = DefaultMessageType
	}

	created, err := s.storer.Create(c.Context(), msg)
	if err != nil {
		var verr store.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: verr.Error()})
		}
		s.logger.Error("creating message", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to store message"})
	}

	s.publishStored(c.Context(), created)

	return c.Status(fiber.StatusCreated).JSON(created)
}

// handleDeleteMessage removes a single message by id.
func (s *Server) handleDeleteMessage(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "message id must be an integer"})
	}

	deleted, err := s.storer.Delete(c.Context(), id)
	if err != nil {
		s.logger.Error("deleting message", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to delete message"})
	}

	return c.JSON(DeleteResponse{Deleted: deleted, ID: id})
}

// handleClearMessages removes all messages.
func (s *Server) handleClearMessages(c *fiber.Ctx) error {
	count, err := s.storer.Clear(c.Context())
	if err != nil {
		s.logger.Error("clearing messages", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to clear messages"})
	}

	return c.JSON(ClearResponse{DeletedCount: count})
}

// publishStored emits an InsightStoredEvent for a persisted message.
// Publish failures are logged and swallowed; event delivery never affects
// the HTTP response.
func (s *Server) publishStored(ctx context.Context, msg *store.Message) {
	event := &eventstream.InsightStoredEvent{
		SchemaVersion: eventstream.SchemaVersionV1,
		EventType:     eventstream.EventTypeInsightStored,
		EventID:       uuid.NewString(),
		EmittedAt:     time.Now().UTC(),
		Source: eventstream.EventSource{
			SessionID: msg.SessionID,
			Repo:      msg.Repo,
		},
		Message: *msg,
	}

	if err := s.publisher.PublishInsight(ctx, event); err != nil {
		s.logger.Warn("publishing insight event",
			"event_id", event.EventID,
			"error", err,
		)
	}
}
