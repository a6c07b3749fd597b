package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/flamecloud/flamecloud-api/internal/api/dto"
	"github.com/flamecloud/flamecloud-api/internal/auth"
	"github.com/flamecloud/flamecloud-api/internal/service"
	apperrors "github.com/flamecloud/flamecloud-api/pkg/util"
)

// ChatHandler manages chat endpoints. Clients poll these on a short timer;
// there is no push channel.
type ChatHandler struct {
	service *service.ChatService
}

// NewChatHandler constructs handler.
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{service: chatService}
}

// SendMessage POST /api/chat/send.
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	msg, err := h.service.SendMessage(c.UserContext(), principal.User, req.ReceiverID, req.Message)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewChatMessageResponse(msg)})
}

// LoadConversation GET /api/chat/messages/:otherUserId. Marks messages from
// the other party as read.
func (h *ChatHandler) LoadConversation(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	msgs, err := h.service.LoadConversation(c.UserContext(), principal.User, c.Params("otherUserId"))
	if err != nil {
		return err
	}
	items := make([]dto.ChatMessageResponse, 0, len(msgs))
	for i := range msgs {
		items = append(items, dto.NewChatMessageResponse(&msgs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListPeers GET /api/chat/users.
func (h *ChatHandler) ListPeers(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	peers, err := h.service.ListPeers(c.UserContext(), principal.User)
	if err != nil {
		return err
	}
	items := make([]dto.ChatPeerResponse, 0, len(peers))
	for i := range peers {
		items = append(items, dto.NewChatPeerResponse(&peers[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// UnreadCount GET /api/chat/unread.
func (h *ChatHandler) UnreadCount(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	count, err := h.service.UnreadCount(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.UnreadCountResponse{Count: count}})
}
