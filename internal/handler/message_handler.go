package handler

import (
	"net/http"

	"github.com/waldy-ctt/TFLH-BE/internal/service"
)

type MessageHandler struct {
	messageService service.MessageService
}

func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	convID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid conversation id")
		return
	}

	messages, err := h.messageService.List(convID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	convID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid conversation id")
		return
	}
	var request struct {
		UserID    uint   `json:"user_id"`
		Content   string `json:"content"`
		ReplyToID *uint  `json:"reply_to_id"`
	}
	if !decodeBody(w, r, &request) {
		return
	}

	msg, err := h.messageService.Send(convID, request.UserID, request.Content, request.ReplyToID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	msgID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid message id")
		return
	}
	var request struct {
		UserID uint `json:"user_id"`
	}
	if !decodeBody(w, r, &request) {
		return
	}

	if err := h.messageService.Delete(msgID, request.UserID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *MessageHandler) React(w http.ResponseWriter, r *http.Request) {
	msgID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid message id")
		return
	}
	var request struct {
		UserID uint   `json:"user_id"`
		Emoji  string `json:"emoji"`
	}
	if !decodeBody(w, r, &request) {
		return
	}

	added, err := h.messageService.ToggleReaction(msgID, request.UserID, request.Emoji)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	action := "added"
	if !added {
		action = "removed"
	}
	writeJSON(w, http.StatusOK, map[string]string{"action": action})
}
