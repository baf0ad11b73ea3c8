package logger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	sinkBuffer    = 4096
	sinkBatch     = 64
	sinkInterval  = 2 * time.Second
	sinkRetention = 30 * 24 * time.Hour
)

// Entry is one log line as stored in MongoDB. The request fields written by
// middleware.Logger are lifted out of Attrs so the collection can be
// queried by request, route or user without scanning.
type Entry struct {
	Time      time.Time `bson:"time"`
	Level     string    `bson:"level"`
	Msg       string    `bson:"msg"`
	RequestID string    `bson:"request_id,omitempty"`
	Route     string    `bson:"route,omitempty"`
	Status    int64     `bson:"status,omitempty"`
	UserID    uint64    `bson:"user_id,omitempty"`
	Attrs     bson.M    `bson:"attrs,omitempty"`
}

// set stores attr a on e, promoting the well-known request keys.
func (e *Entry) set(group string, a slog.Attr) {
	v := a.Value.Resolve()
	if group == "" {
		switch a.Key {
		case "request_id":
			e.RequestID = v.String()
			return
		case "route":
			e.Route = v.String()
			return
		case "status":
			if v.Kind() == slog.KindInt64 {
				e.Status = v.Int64()
				return
			}
		case "user_id":
			if v.Kind() == slog.KindUint64 {
				e.UserID = v.Uint64()
				return
			}
			if v.Kind() == slog.KindInt64 && v.Int64() >= 0 {
				e.UserID = uint64(v.Int64())
				return
			}
		}
	}
	if e.Attrs == nil {
		e.Attrs = bson.M{}
	}
	e.Attrs[group+a.Key] = v.Any()
}

// mongoSink owns the connection and the goroutine writing batches; every
// MongoHandler derived through WithAttrs/WithGroup shares one.
type mongoSink struct {
	client  *mongo.Client
	col     *mongo.Collection
	entries chan Entry
	quit    chan struct{}
	exited  chan struct{}
	once    sync.Once
	dropped int64
	mu      sync.Mutex
}

// MongoHandler is an slog.Handler writing to a MongoDB collection. Handle
// only enqueues; a full buffer drops the entry and counts it.
type MongoHandler struct {
	sink  *mongoSink
	min   slog.Level
	attrs []slog.Attr
	group string
}

// NewMongoHandler connects to uri and starts the batch writer for
// db.collection. Entries expire after 30 days via a TTL index.
func NewMongoHandler(uri, db, collection string, min slog.Level) (*MongoHandler, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetAppName("automart").
		SetServerSelectionTimeout(5*time.Second).
		SetMaxPoolSize(4))
	if err != nil {
		return nil, fmt.Errorf("logger: mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("logger: mongo ping: %w", err)
	}

	col := client.Database(db).Collection(collection)
	_, err = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "time", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(sinkRetention / time.Second)),
		},
		{Keys: bson.D{{Key: "request_id", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "time", Value: -1}}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("logger: mongo indexes: %w", err)
	}

	s := &mongoSink{
		client:  client,
		col:     col,
		entries: make(chan Entry, sinkBuffer),
		quit:    make(chan struct{}),
		exited:  make(chan struct{}),
	}
	go s.run()
	return &MongoHandler{sink: s, min: min}, nil
}

func (h *MongoHandler) Enabled(_ context.Context, l slog.Level) bool { return l >= h.min }

func (h *MongoHandler) Handle(_ context.Context, r slog.Record) error {
	e := h.entry(r)
	select {
	case h.sink.entries <- e:
	default:
		h.sink.mu.Lock()
		h.sink.dropped++
		h.sink.mu.Unlock()
	}
	return nil
}

// entry converts r, with the handler's bound attrs, into an Entry.
func (h *MongoHandler) entry(r slog.Record) Entry {
	e := Entry{Time: r.Time.UTC(), Level: r.Level.String(), Msg: r.Message}
	for _, a := range h.attrs {
		e.set("", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		e.set(h.group, a)
		return true
	})
	return e
}

func (h *MongoHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	out := *h
	out.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	out.attrs = append(out.attrs, h.attrs...)
	for _, a := range attrs {
		out.attrs = append(out.attrs, slog.Attr{Key: h.group + a.Key, Value: a.Value})
	}
	return &out
}

func (h *MongoHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	out := *h
	out.group = h.group + name + "."
	return &out
}

// Close stops the writer after flushing what is buffered, then disconnects.
func (h *MongoHandler) Close() {
	h.sink.close()
}

func (s *mongoSink) run() {
	defer close(s.exited)

	tick := time.NewTicker(sinkInterval)
	defer tick.Stop()

	var pending []interface{}
	write := func() {
		if len(pending) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, err := s.col.InsertMany(ctx, pending, options.InsertMany().SetOrdered(false))
		cancel()
		if err != nil {
			// The sink cannot log through itself; stderr via the base handler.
			slog.New(baseHandler()).Warn("logger: mongo write failed", "entries", len(pending), "error", err)
		}
		pending = pending[:0]
	}

	for {
		select {
		case e := <-s.entries:
			pending = append(pending, e)
			if len(pending) == sinkBatch {
				write()
			}
		case <-tick.C:
			s.reportDropped()
			write()
		case <-s.quit:
			for {
				select {
				case e := <-s.entries:
					pending = append(pending, e)
				default:
					write()
					return
				}
			}
		}
	}
}

func (s *mongoSink) reportDropped() {
	s.mu.Lock()
	n := s.dropped
	s.dropped = 0
	s.mu.Unlock()
	if n > 0 {
		slog.New(baseHandler()).Warn("logger: mongo buffer full, entries dropped", "count", n)
	}
}

func (s *mongoSink) close() {
	s.once.Do(func() {
		close(s.quit)
		<-s.exited
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.client.Disconnect(ctx)
	})
}

// MultiHandler sends each record to every handler that accepts its level.
type MultiHandler []slog.Handler

func NewMultiHandler(hs ...slog.Handler) MultiHandler { return MultiHandler(hs) }

func (m MultiHandler) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range m {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (m MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	var first error
	for _, h := range m {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(MultiHandler, len(m))
	for i, h := range m {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (m MultiHandler) WithGroup(name string) slog.Handler {
	out := make(MultiHandler, len(m))
	for i, h := range m {
		out[i] = h.WithGroup(name)
	}
	return out
}
