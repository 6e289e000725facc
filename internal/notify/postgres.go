package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-wrap-credits/internal/logger"
)

// PGNotifier uses Postgres NOTIFY for publishing and a dedicated pooled
// connection running LISTEN for every subscription.
type PGNotifier struct {
	db      *sqlx.DB
	pool    *pgxpool.Pool
	channel string
}

// NewPGNotifier publishes through db and listens on connections taken from pool.
func NewPGNotifier(db *sqlx.DB, pool *pgxpool.Pool) *PGNotifier {
	return &PGNotifier{db: db, pool: pool, channel: Channel}
}

// Publish sends NOTIFY with the task id as payload.
func (n *PGNotifier) Publish(ctx context.Context, taskID uuid.UUID) error {
	const query = `SELECT pg_notify($1, $2)`

	_, err := n.db.ExecContext(ctx, query, n.channel, taskID.String())
	logger.Query(query, []any{n.channel, taskID}, nil, err)
	return err
}

// Subscribe acquires a connection and runs LISTEN on it. The connection stays
// out of the pool until Close.
func (n *PGNotifier) Subscribe(ctx context.Context, taskID uuid.UUID) (Subscription, error) {
	conn, err := n.pool.Acquire(ctx)
	if err != nil {
		logger.Log.Errorw("failed to acquire listen connection", "error", err)
		return nil, err
	}

	ident := pgx.Identifier{n.channel}.Sanitize()
	if _, err := conn.Exec(ctx, "LISTEN "+ident); err != nil {
		logger.Log.Errorw("failed to listen", "channel", n.channel, "error", err)
		conn.Release()
		return nil, err
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	s := &pgSubscription{
		conn:    conn,
		ident:   ident,
		cancel:  cancel,
		events:  make(chan struct{}, 1),
		done:    make(chan struct{}),
		channel: n.channel,
		payload: taskID.String(),
	}
	go s.loop(loopCtx)

	logger.Log.Debugw("listening for task updates", "task_id", taskID)
	return s, nil
}

type pgSubscription struct {
	conn    *pgxpool.Conn
	ident   string
	cancel  context.CancelFunc
	events  chan struct{}
	done    chan struct{}
	channel string
	payload string
	once    sync.Once
}

func (s *pgSubscription) Events() <-chan struct{} {
	return s.events
}

func (s *pgSubscription) loop(ctx context.Context) {
	defer close(s.done)
	defer close(s.events)

	for {
		msg, err := s.conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() == nil {
				logger.Log.Errorw("listen connection failed", "channel", s.channel, "error", err)
			}
			return
		}
		if msg.Channel == s.channel && msg.Payload == s.payload {
			signal(s.events)
		}
	}
}

// Close stops listening and returns the connection to the pool. It is safe to call more than once.
func (s *pgSubscription) Close() error {
	var err error
	s.once.Do(func() {
		s.cancel()
		<-s.done

		if !s.conn.Conn().IsClosed() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if _, err = s.conn.Exec(ctx, "UNLISTEN "+s.ident); err != nil {
				logger.Log.Warnw("failed to unlisten", "channel", s.channel, "error", err)
			}
		}
		s.conn.Release()
	})
	return err
}
