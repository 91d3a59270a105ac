package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/saeidalz13/battleship-duel/api"
	"github.com/saeidalz13/battleship-duel/db"
	"github.com/saeidalz13/battleship-duel/db/sqlc"
	mb "github.com/saeidalz13/battleship-duel/models/battleship"
	mc "github.com/saeidalz13/battleship-duel/models/connection"
)

func main() {
	if os.Getenv("STAGE") != api.StageProd {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("no .env file loaded:", err)
		}
	}
	serverOpts := []api.Option{api.WithStage(os.Getenv("STAGE"))}
	if port := os.Getenv("PORT"); port != "" {
		serverOpts = append(serverOpts, api.WithPort(port))
	}

	bgm := mb.NewBattleshipGameManager()
	go bgm.CleanupPeriodically()

	bsm := mc.NewBattleshipSessionManager(mc.WithOpponentFinder(bgm))
	go bsm.CleanupPeriodically()

	var opts []api.RequestProcessorOption
	if psqlUrl := os.Getenv("DATABASE_URL"); psqlUrl != "" {
		conn := db.MustConnectToDb(psqlUrl, os.Getenv("MIGRATIONS_DIR"))
		defer conn.Close()

		dbManager := sqlc.NewDbManager(conn)
		opts = append(opts,
			api.WithGameStore(dbManager.Games),
			api.WithLobbyStore(dbManager.Lobby),
			api.WithAnalytics(dbManager.Analytics),
		)
	} else {
		log.Println("DATABASE_URL is not set; games are kept in memory only")
	}

	rp := api.NewRequestProcessor(bsm, bgm, opts...)
	server := api.NewServer(rp, serverOpts...)

	if err := server.ListenAndServe(); err != nil {
		log.Println(err)
	}
}
