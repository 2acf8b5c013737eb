package connection

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rebelice/uuidview/internal/models"
)

// Pool wraps pgxpool with our configuration
type Pool struct {
	pool   *pgxpool.Pool
	config models.ConnectionConfig
}

// NewPool creates a new connection pool
func NewPool(ctx context.Context, config models.ConnectionConfig) (*Pool, error) {
	connString := buildConnectionString(config)

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection config: %w", err)
	}

	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Pool{
		pool:   pool,
		config: config,
	}, nil
}

// Close closes the connection pool
func (p *Pool) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// Config returns the configuration the pool was opened with
func (p *Pool) Config() models.ConnectionConfig {
	return p.config
}

// Query executes a query
func (p *Pool) Query(ctx context.Context, sql string, args ...interface{}) ([]map[string]interface{}, error) {
	result, err := p.QueryWithColumns(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	rows := make([]map[string]interface{}, len(result.Rows))
	for i, row := range result.Rows {
		rows[i] = row
	}
	return rows, nil
}

// QueryWithColumns executes a query and returns column names in order
func (p *Pool) QueryWithColumns(ctx context.Context, sql string, args ...interface{}) (*models.ResultSet, error) {
	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fieldDescriptions := rows.FieldDescriptions()

	columns := make([]string, len(fieldDescriptions))
	for i, fd := range fieldDescriptions {
		columns[i] = fd.Name
	}

	var results []models.Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}

		row := make(models.Row, len(columns))
		for i, name := range columns {
			row[name] = values[i]
		}
		results = append(results, row)
	}

	return &models.ResultSet{
		Columns: columns,
		Rows:    results,
	}, rows.Err()
}

// buildConnectionString creates a PostgreSQL connection string
func buildConnectionString(config models.ConnectionConfig) string {
	sslMode := config.SSLMode
	if sslMode == "" {
		sslMode = "prefer"
	}

	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s database=%s sslmode=%s",
		config.Host,
		config.Port,
		config.User,
		config.Database,
		sslMode,
	)

	if config.Password != "" {
		connStr += fmt.Sprintf(" password=%s", config.Password)
	}

	return connStr
}
