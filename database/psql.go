package database

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const schemaLogChannels = `
CREATE TABLE IF NOT EXISTS log_channels (
	guild_id   TEXT PRIMARY KEY,
	channel_id BIGINT NOT NULL
);
`

// PsqlDB is a postgres-backed implementation of DB.
type PsqlDB struct {
	pool *sqlx.DB
	log  *zap.Logger
}

func NewPSQLDatabase(connStr string, log *zap.Logger) (*PsqlDB, error) {
	pool, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		log.Error("unable to connect to db", zap.Error(err))
		return nil, err
	}

	if _, err := pool.Exec(schemaLogChannels); err != nil {
		log.Error("unable to ensure schema", zap.Error(err))
		return nil, err
	}

	return &PsqlDB{
		pool: pool,
		log:  log,
	}, nil
}

func (p *PsqlDB) Get(guildID string) (int64, error) {
	var channelID int64
	err := p.pool.Get(&channelID, "SELECT channel_id FROM log_channels WHERE guild_id=$1;", guildID)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return channelID, nil
}

func (p *PsqlDB) Set(guildID string, channelID int64) error {
	_, err := p.pool.Exec(
		"INSERT INTO log_channels (guild_id, channel_id) VALUES ($1, $2) ON CONFLICT (guild_id) DO UPDATE SET channel_id = $2;",
		guildID, channelID)
	return err
}

func (p *PsqlDB) Clear(guildID string) error {
	res, err := p.pool.Exec("DELETE FROM log_channels WHERE guild_id=$1;", guildID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PsqlDB) Close() error {
	return p.pool.Close()
}
