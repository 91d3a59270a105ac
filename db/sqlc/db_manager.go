package sqlc

import (
	"database/sql"
	"time"
)

const (
	QuerierCtxTimeout = time.Second * 10
)

type DbManager struct {
	Analytics *AnalyticsManager
	Games     *GamesManager
	Lobby     *LobbyManager
}

func NewDbManager(db *sql.DB) DbManager {
	queries := New(db)
	return DbManager{
		Analytics: NewAnalyticsManager(queries),
		Games:     NewGamesManager(db),
		Lobby:     NewLobbyManager(queries),
	}
}
