package handler

import (
	"net/http"
	"strconv"

	"github.com/waldy-ctt/TFLH-BE/internal/service"
)

type ConversationHandler struct {
	conversationService service.ConversationService
	moderationService   service.ModerationService
}

func NewConversationHandler(
	conversationService service.ConversationService,
	moderationService service.ModerationService,
) *ConversationHandler {
	return &ConversationHandler{
		conversationService: conversationService,
		moderationService:   moderationService,
	}
}

func (h *ConversationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Name      string `json:"name"`
		CreatedBy uint   `json:"created_by"`
		MemberIDs []uint `json:"member_ids"`
	}
	if !decodeBody(w, r, &request) {
		return
	}

	conv, err := h.conversationService.Create(request.Name, request.CreatedBy, request.MemberIDs)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conv)
}

func (h *ConversationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseUint(r.URL.Query().Get("user_id"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "user_id required")
		return
	}

	convs, err := h.conversationService.List(uint(userID))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, convs)
}

func (h *ConversationHandler) Rename(w http.ResponseWriter, r *http.Request) {
	convID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid conversation id")
		return
	}
	var request struct {
		Name   string `json:"name"`
		UserID uint   `json:"user_id"`
	}
	if !decodeBody(w, r, &request) {
		return
	}

	if err := h.conversationService.Rename(convID, request.UserID, request.Name); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *ConversationHandler) Members(w http.ResponseWriter, r *http.Request) {
	convID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid conversation id")
		return
	}

	members, err := h.conversationService.Members(convID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *ConversationHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	convID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid conversation id")
		return
	}
	var request struct {
		UserID    uint  `json:"user_id"`
		AddedByID *uint `json:"added_by_id"`
	}
	if !decodeBody(w, r, &request) {
		return
	}

	if err := h.conversationService.AddMember(convID, request.UserID, request.AddedByID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *ConversationHandler) Leave(w http.ResponseWriter, r *http.Request) {
	convID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid conversation id")
		return
	}
	var request struct {
		UserID uint `json:"user_id"`
	}
	if !decodeBody(w, r, &request) {
		return
	}

	if err := h.conversationService.Leave(convID, request.UserID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *ConversationHandler) VoteKick(w http.ResponseWriter, r *http.Request) {
	convID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid conversation id")
		return
	}
	var request struct {
		TargetUserID uint `json:"target_user_id"`
		VoterUserID  uint `json:"voter_user_id"`
		Vote         bool `json:"vote"`
	}
	if !decodeBody(w, r, &request) {
		return
	}

	kicked, err := h.moderationService.VoteKick(convID, request.TargetUserID, request.VoterUserID, request.Vote)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true, "kicked": kicked})
}

func (h *ConversationHandler) KickVotes(w http.ResponseWriter, r *http.Request) {
	convID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid conversation id")
		return
	}
	targetID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid target user id")
		return
	}

	votes, totalMembers, err := h.moderationService.KickVotes(convID, targetID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"votes": votes, "totalMembers": totalMembers})
}

func (h *ConversationHandler) VoteDelete(w http.ResponseWriter, r *http.Request) {
	convID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid conversation id")
		return
	}
	var request struct {
		VoterUserID uint `json:"voter_user_id"`
		Vote        bool `json:"vote"`
	}
	if !decodeBody(w, r, &request) {
		return
	}

	deleted, err := h.moderationService.VoteDelete(convID, request.VoterUserID, request.Vote)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true, "deleted": deleted})
}

func (h *ConversationHandler) DeleteVotes(w http.ResponseWriter, r *http.Request) {
	convID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid conversation id")
		return
	}

	votes, totalMembers, err := h.moderationService.DeleteVotes(convID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"votes": votes, "totalMembers": totalMembers})
}
