package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/erazemk/najdeno/internal/model"
	"github.com/erazemk/najdeno/internal/store"
)

// MessagesHandler handles message thread endpoints.
type MessagesHandler struct {
	DB *sql.DB
}

type sendMessageRequest struct {
	ItemID     string `json:"itemId"`
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
}

// Send handles POST /api/messages.
func (h *MessagesHandler) Send(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req sendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ItemID == "" || req.ReceiverID == "" || req.Content == "" {
		jsonError(w, http.StatusBadRequest, "itemId, receiverId, and content required")
		return
	}
	if req.SenderID != "" && req.SenderID != claims.UserID {
		jsonError(w, http.StatusForbidden, "cannot send messages as another user")
		return
	}
	if req.ReceiverID == claims.UserID {
		jsonError(w, http.StatusBadRequest, "cannot message yourself")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, req.ItemID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	receiver, err := store.GetUser(r.Context(), h.DB, req.ReceiverID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if receiver == nil {
		jsonError(w, http.StatusNotFound, "receiver not found")
		return
	}

	msg, err := store.CreateMessage(r.Context(), h.DB, req.ItemID, claims.UserID, req.ReceiverID, req.Content)
	if err != nil {
		slog.Error("failed to create message", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to send message")
		return
	}

	jsonResponse(w, http.StatusCreated, msg)
}

// ListForItem handles GET /api/messages/item/{id}. The thread is private
// to the item's owner, its claimant, and anyone already in the thread.
func (h *MessagesHandler) ListForItem(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	itemID := r.PathValue("id")

	item, err := store.GetItem(r.Context(), h.DB, itemID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	allowed := item.OwnerID == claims.UserID ||
		(item.ClaimantID != nil && *item.ClaimantID == claims.UserID)
	if !allowed {
		allowed, err = store.IsThreadParticipant(r.Context(), h.DB, itemID, claims.UserID)
		if err != nil {
			jsonError(w, http.StatusInternalServerError, "internal error")
			return
		}
	}
	if !allowed {
		jsonError(w, http.StatusForbidden, "not a participant in this thread")
		return
	}

	messages, err := store.ListItemMessages(r.Context(), h.DB, itemID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list messages")
		return
	}
	if messages == nil {
		messages = []model.Message{}
	}
	jsonResponse(w, http.StatusOK, messages)
}

// ListForUser handles GET /api/messages/user/{id}.
func (h *MessagesHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	userID := r.PathValue("id")

	if userID != claims.UserID {
		jsonError(w, http.StatusForbidden, "cannot read another user's messages")
		return
	}

	messages, err := store.ListUserMessages(r.Context(), h.DB, userID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list messages")
		return
	}
	if messages == nil {
		messages = []model.Message{}
	}
	jsonResponse(w, http.StatusOK, messages)
}

// ListUnread handles GET /api/messages/user/{id}/unread.
func (h *MessagesHandler) ListUnread(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	userID := r.PathValue("id")

	if userID != claims.UserID {
		jsonError(w, http.StatusForbidden, "cannot read another user's messages")
		return
	}

	messages, err := store.ListUnreadMessages(r.Context(), h.DB, userID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list messages")
		return
	}
	if messages == nil {
		messages = []model.Message{}
	}
	jsonResponse(w, http.StatusOK, messages)
}

// MarkRead handles PUT /api/messages/{id}/read. Only the receiver may
// mark a message read; repeating the call is harmless.
func (h *MessagesHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id := r.PathValue("id")

	msg, err := store.GetMessage(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if msg == nil {
		jsonError(w, http.StatusNotFound, "message not found")
		return
	}
	if msg.ReceiverID != claims.UserID {
		jsonError(w, http.StatusForbidden, "only the receiver can mark a message read")
		return
	}

	updated, err := store.MarkMessageRead(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to mark message read")
		return
	}
	jsonResponse(w, http.StatusOK, updated)
}
