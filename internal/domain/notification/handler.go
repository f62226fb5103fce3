package notification

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/studiora/studiora-api/internal/pkg/jwt"
	"github.com/studiora/studiora-api/internal/pkg/response"
)

type Handler struct {
	hub      *Hub
	jwt      *jwt.Service
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, jwtService *jwt.Service) *Handler {
	return &Handler{
		hub: hub,
		jwt: jwtService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin is enforced by the CORS layer on the REST side;
			// the socket carries its own token so any origin may dial.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Serve handles GET /ws?token=<access token>. Browsers cannot set an
// Authorization header on a websocket dial, so the token rides the query.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		response.Unauthorized(w, "Missing token")
		return
	}

	claims, err := h.jwt.ValidateAccessToken(token)
	if err != nil {
		response.Unauthorized(w, "Invalid or expired token")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	c := &client{
		userID: claims.UserID,
		conn:   conn,
		send:   make(chan Message, sendBufferSize),
	}
	h.hub.register(c)

	log.Debug().Str("user_id", claims.UserID.String()).Msg("websocket connected")

	go c.writePump(h.hub)
	go c.readPump(h.hub)
}
