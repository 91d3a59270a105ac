package sqlc

import (
	"context"
	"net"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sqlc-dev/pqtype"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsCounters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	am := NewAnalyticsManager(New(db))
	serverIp := pqtype.Inet{
		IPNet: net.IPNet{IP: net.ParseIP("127.0.0.1"), Mask: net.CIDRMask(32, 32)},
		Valid: true,
	}

	mock.ExpectExec(regexp.QuoteMeta(incrementGamesCreatedCount)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(incrementChallengesSentCount)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(getGamesCreatedCount)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"games_created"}).AddRow(3))

	ctx := context.Background()
	require.NoError(t, am.IncrementGamesCreatedCount(ctx, serverIp))
	require.NoError(t, am.IncrementChallengesSentCount(ctx, serverIp))

	count, err := am.GetGamesCreatedCount(ctx, serverIp)
	require.NoError(t, err)
	require.Equal(t, int64(3), count)
	require.NoError(t, mock.ExpectationsWereMet())
}
