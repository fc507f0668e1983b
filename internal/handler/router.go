package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter assembles the full route table.
func NewRouter(
	auth *AuthHandler,
	users *UserHandler,
	conversations *ConversationHandler,
	messages *MessageHandler,
	ws *WSHandler,
) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/signup", auth.SignUp).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/signin", auth.SignIn).Methods("POST", "OPTIONS")

	r.HandleFunc("/api/users", users.List).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/users/search", users.Search).Methods("GET", "OPTIONS")

	r.HandleFunc("/api/conversations", conversations.Create).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/conversations", conversations.List).Methods("GET")
	r.HandleFunc("/api/conversations/{id:[0-9]+}", conversations.Rename).Methods("PUT", "OPTIONS")
	r.HandleFunc("/api/conversations/{id:[0-9]+}/members", conversations.Members).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/conversations/{id:[0-9]+}/members", conversations.AddMember).Methods("POST")
	r.HandleFunc("/api/conversations/{id:[0-9]+}/leave", conversations.Leave).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/conversations/{id:[0-9]+}/kick", conversations.VoteKick).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/conversations/{id:[0-9]+}/kick/{userId:[0-9]+}", conversations.KickVotes).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/conversations/{id:[0-9]+}/delete-vote", conversations.VoteDelete).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/conversations/{id:[0-9]+}/delete-vote", conversations.DeleteVotes).Methods("GET")

	r.HandleFunc("/api/conversations/{id:[0-9]+}/messages", messages.List).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/conversations/{id:[0-9]+}/messages", messages.Send).Methods("POST")
	r.HandleFunc("/api/messages/{id:[0-9]+}", messages.Delete).Methods("DELETE", "OPTIONS")
	r.HandleFunc("/api/messages/{id:[0-9]+}/react", messages.React).Methods("POST", "OPTIONS")

	r.HandleFunc("/ws", ws.Connect).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not Found")
	})

	return r
}
