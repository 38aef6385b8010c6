package webserver

import (
	"log"
	"net/http"
	"sync"

	"github.com/civiguard/civiguard/src/api/notify"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Live streams critical-case notifications to dashboard websockets. Each
// socket is one Notifier subscriber; the shared change-feed connection is
// opened by the first socket and closed when the last one disconnects.
type Live struct {
	notifier *notify.Notifier
	upgrader websocket.Upgrader
}

func NewLive(n *notify.Notifier) *Live {
	return &Live{
		notifier: n,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The JWT middleware already authenticated the request.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (l *Live) Critical(c *gin.Context) {
	conn, err := l.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("live: upgrade: %v", err)
		return
	}

	var writeMu sync.Mutex
	unsub, err := l.notifier.Subscribe(func(cc notify.CriticalCase) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(cc); err != nil {
			log.Printf("live: write: %v", err)
		}
	})
	if err != nil {
		log.Printf("live: subscribe: %v", err)
		conn.Close()
		return
	}

	// Block on the read side to notice the peer going away, then release
	// the subscription. Unsubscribing twice is harmless.
	go func() {
		defer unsub()
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
