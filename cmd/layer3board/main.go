package main

import (
	"context"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"github.com/enaqx/layer3board/internal/api"
	"github.com/enaqx/layer3board/internal/cache"
	"github.com/enaqx/layer3board/internal/config"
	"github.com/enaqx/layer3board/internal/controller"
	"github.com/enaqx/layer3board/internal/layer3"
	"github.com/enaqx/layer3board/internal/onchain"
	"github.com/enaqx/layer3board/internal/types"
	"github.com/enaqx/layer3board/internal/websocket"
	"github.com/enaqx/layer3board/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	logger.SetLevel(logger.INFO)
	if err := logger.EnableFileLogging("./logs"); err != nil {
		logger.Warn("File logging disabled: %v", err)
	}

	logger.Info("Layer3 board server starting...")

	httpClient := &http.Client{Timeout: 30 * time.Second}

	store := cache.NewLeaderboard()
	layer3Client := layer3.NewClient(layer3.RouteDirect, layer3.WithHTTPClient(httpClient))
	onchainClient := onchain.NewClient(onchain.WithHTTPClient(httpClient))

	leaderboardCtrl := controller.NewLeaderboard(layer3Client, store)
	defer leaderboardCtrl.Close()

	wsManager := websocket.NewManager()
	go wsManager.Run()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go runRefresher(ctx, leaderboardCtrl, wsManager)

	h := api.NewHandler(store, onchainClient, httpClient)
	r := api.SetupRouter(h, wsManager)

	addr := config.ListenAddr()
	logger.Info("Listening on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatal("Failed to run server: %v", err)
	}
}

// runRefresher keeps the leaderboard cache warm and pushes each successful
// refresh to websocket clients.
func runRefresher(ctx context.Context, ctrl *controller.Controller[[]types.LeaderboardUser], wsManager *websocket.Manager) {
	updates := ctrl.Watch()
	go func() {
		for snap := range updates {
			if snap.Err != nil || snap.Loading || snap.Refreshing || !snap.HasData {
				continue
			}
			if err := wsManager.BroadcastLeaderboard(snap.Data); err != nil {
				logger.Error("Failed to broadcast leaderboard: %v", err)
			}
		}
	}()

	ctrl.Load(ctx)

	ticker := time.NewTicker(config.RefreshInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ctrl.Refresh(ctx)
			if snap := ctrl.Snapshot(); snap.Err != nil {
				logger.Warn("Leaderboard refresh failed, serving cached data: %v", snap.Err)
			}
		}
	}
}
