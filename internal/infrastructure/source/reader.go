package source

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	domain "github.com/mohammadpnp/cohort-sync/internal/domain/cohort"
	"github.com/mohammadpnp/cohort-sync/internal/infrastructure/textcodec"
)

type Connector struct {
	cfg     Config
	charset textcodec.Charset
}

// NewConnector reads the roster described by cfg. charset is the encoding of
// the stored roster text, used only for SQL_ASCII servers.
func NewConnector(cfg Config, charset textcodec.Charset) *Connector {
	if cfg.Columns == (Columns{}) {
		cfg.Columns = DefaultColumns()
	}
	return &Connector{cfg: cfg, charset: charset}
}

func (c *Connector) Connect(ctx context.Context) (domain.RecordSource, error) {
	connConfig, err := pgx.ParseConfig(c.cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("%w: parse config: %v", domain.ErrSourceConnect, err)
	}

	conn, err := pgx.ConnectConfig(ctx, connConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceConnect, err)
	}
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("%w: ping: %v", domain.ErrSourceConnect, err)
	}

	return &Reader{
		conn:       conn,
		query:      BuildQuery(c.cfg.Schema, c.cfg.Table, c.cfg.Columns),
		normalizer: NormalizerFor(conn.PgConn().ParameterStatus("server_encoding"), c.charset),
	}, nil
}

// BuildQuery renders the roster projection. Every column is read as text.
func BuildQuery(schema, table string, columns Columns) string {
	projection := make([]string, 0, 8)
	for _, col := range columns.list() {
		projection = append(projection, pgx.Identifier{col}.Sanitize()+"::text")
	}

	from := pgx.Identifier{table}
	if schema != "" {
		from = pgx.Identifier{schema, table}
	}

	return "SELECT " + strings.Join(projection, ", ") + " FROM " + from.Sanitize()
}

type Reader struct {
	conn       *pgx.Conn
	query      string
	normalizer *textcodec.FieldNormalizer
}

func (r *Reader) Records(ctx context.Context) iter.Seq2[domain.SourceRecord, error] {
	return func(yield func(domain.SourceRecord, error) bool) {
		rows, err := r.conn.Query(ctx, r.query)
		if err != nil {
			yield(domain.SourceRecord{}, fmt.Errorf("%w: %v", domain.ErrSourceQuery, err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var cols [8]pgtype.Text
			if err := rows.Scan(&cols[0], &cols[1], &cols[2], &cols[3], &cols[4], &cols[5], &cols[6], &cols[7]); err != nil {
				yield(domain.SourceRecord{}, fmt.Errorf("%w: scan row: %v", domain.ErrSourceQuery, err))
				return
			}

			record, err := r.toRecord(cols)
			if err != nil {
				yield(domain.SourceRecord{}, fmt.Errorf("%w: %v", domain.ErrSourceQuery, err))
				return
			}
			if !yield(record, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(domain.SourceRecord{}, fmt.Errorf("%w: %v", domain.ErrSourceQuery, err))
		}
	}
}

func (r *Reader) toRecord(cols [8]pgtype.Text) (domain.SourceRecord, error) {
	var values [8]string
	for i, col := range cols {
		if !col.Valid {
			continue
		}
		value := col.String
		if r.normalizer != nil {
			var err error
			if value, err = r.normalizer.Normalize(value); err != nil {
				return domain.SourceRecord{}, fmt.Errorf("normalize column %d: %w", i, err)
			}
		}
		values[i] = value
	}

	return domain.SourceRecord{
		GroupExternalID: values[0],
		GroupCode:       values[1],
		GroupLabel:      values[2],
		UserExternalID:  values[3],
		UserSurname:     values[4],
		UserGivenName:   values[5],
		UserDN:          values[6],
		UserLogin:       values[7],
	}, nil
}

func (r *Reader) Close(ctx context.Context) error {
	return r.conn.Close(ctx)
}
