package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/agrilink/internal/service"
	"github.com/Skotchmaster/agrilink/internal/transport"
)

type MessagingHandler struct {
	Messaging *service.MessagingService
}

func (h *MessagingHandler) ListConversations(c echo.Context) error {
	out, err := h.Messaging.ListConversations(c.Request().Context(), sessionFrom(c))
	if err != nil {
		return fail(c, "list_conversations_error", err)
	}
	return ok(c, http.StatusOK, out)
}

func (h *MessagingHandler) StartConversation(c echo.Context) error {
	var req transport.StartConversationRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	conv, created, err := h.Messaging.StartConversation(c.Request().Context(), sessionFrom(c), req.ProducerID)
	if err != nil {
		return fail(c, "start_conversation_error", err)
	}
	if created {
		return ok(c, http.StatusCreated, conv)
	}
	return ok(c, http.StatusOK, conv)
}

func (h *MessagingHandler) ListMessages(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	msgs, err := h.Messaging.ListMessages(c.Request().Context(), sessionFrom(c), id)
	if err != nil {
		return fail(c, "list_messages_error", err)
	}
	return ok(c, http.StatusOK, msgs)
}

func (h *MessagingHandler) SendMessage(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req transport.SendMessageRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	msg, err := h.Messaging.SendMessage(c.Request().Context(), sessionFrom(c), id, req.Content)
	if err != nil {
		return fail(c, "send_message_error", err)
	}
	return ok(c, http.StatusCreated, msg)
}
