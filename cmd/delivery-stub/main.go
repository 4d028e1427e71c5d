// Command delivery-stub runs a stand-in Delivery Pipeline backend for local
// demos: login, the notification REST subset, the push channel, and an
// event-injection endpoint for firing REFRESH_PROJECTS / URGENT_ALERT /
// ONBOARDING_SUBMISSION frames at connected users.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/subramaniyam22/Delivery-Pipeline-sub002/internal/api"
	"github.com/subramaniyam22/Delivery-Pipeline-sub002/internal/logging"
	"github.com/subramaniyam22/Delivery-Pipeline-sub002/internal/stub"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:8080", "Listen address")
	secret := flag.String("secret", "delivery-stub-secret", "JWT signing secret")
	flag.Parse()

	log := logging.New(os.Stderr, slog.LevelDebug)
	srv := stub.New(*secret, log)

	// Demo fixture: one account with a little history.
	userID := uuid.NewString()
	srv.AddUser("demo", "demo", userID)
	srv.Seed(userID,
		api.NotificationRecord{
			ID:        uuid.NewString(),
			Message:   "Milestone 2 review scheduled",
			Type:      "INFO",
			CreatedAt: time.Now().Add(-2 * time.Hour),
			IsRead:    true,
		},
		api.NotificationRecord{
			ID:        uuid.NewString(),
			Message:   "Client flagged delivery slippage on Atlas",
			Type:      "URGENT_ALERT",
			CreatedAt: time.Now().Add(-30 * time.Minute),
		},
	)
	defer srv.Close()

	log.Info("stub backend listening", "addr", *addr, "user", "demo/demo")
	if err := http.ListenAndServe(*addr, srv.Handler()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
