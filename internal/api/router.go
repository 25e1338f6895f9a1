package api

import (
	"database/sql"
	"net/http"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	itemsHandler := &ItemsHandler{DB: db}
	messagesHandler := &MessagesHandler{DB: db}
	logsHandler := &LogsHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret, db)

	// Public: account creation, login, and browsing the directory.
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/items", itemsHandler.List)
	mux.HandleFunc("GET /api/items/{id}", itemsHandler.Get)
	mux.HandleFunc("GET /api/items/{id}/image", itemsHandler.GetImage)

	// Authenticated auth routes.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))

	// Items: mutation and lifecycle require a logged-in user.
	mux.Handle("POST /api/items", authMW(http.HandlerFunc(itemsHandler.Create)))
	mux.Handle("PUT /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Update)))
	mux.Handle("DELETE /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Delete)))
	mux.Handle("PUT /api/items/{id}/claim", authMW(http.HandlerFunc(itemsHandler.Claim)))
	mux.Handle("PUT /api/items/{id}/unclaim", authMW(http.HandlerFunc(itemsHandler.Unclaim)))
	mux.Handle("PUT /api/items/{id}/resolve", authMW(http.HandlerFunc(itemsHandler.Resolve)))
	mux.Handle("PUT /api/items/{id}/unresolve", authMW(http.HandlerFunc(itemsHandler.Unresolve)))
	mux.Handle("PUT /api/items/{id}/image", authMW(http.HandlerFunc(itemsHandler.UploadImage)))

	// Messages (all private to participants).
	mux.Handle("POST /api/messages", authMW(http.HandlerFunc(messagesHandler.Send)))
	mux.Handle("GET /api/messages/item/{id}", authMW(http.HandlerFunc(messagesHandler.ListForItem)))
	mux.Handle("GET /api/messages/user/{id}", authMW(http.HandlerFunc(messagesHandler.ListForUser)))
	mux.Handle("GET /api/messages/user/{id}/unread", authMW(http.HandlerFunc(messagesHandler.ListUnread)))
	mux.Handle("PUT /api/messages/{id}/read", authMW(http.HandlerFunc(messagesHandler.MarkRead)))

	// Activity feed.
	mux.Handle("GET /api/logs", authMW(http.HandlerFunc(logsHandler.List)))
	mux.Handle("POST /api/logs", authMW(http.HandlerFunc(logsHandler.Create)))

	return mux
}
