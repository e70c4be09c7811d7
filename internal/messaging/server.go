package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

// NatsServer embeds a NATS server in-process. Plain pub/sub carries
// game events to sessions; JetStream key-value buckets back the cloud
// save store and the leaderboard.
type NatsServer struct {
	ns   *server.Server
	conn *nats.Conn
	js   nats.JetStreamContext

	mu      sync.RWMutex
	buckets map[string]nats.KeyValue

	startupTimeout time.Duration
	host           string
	port           int
	storeDir       string
}

func NewNatsServer(opts ...NatsServerOpt) (*NatsServer, error) {
	s := &NatsServer{
		startupTimeout: 10 * time.Second,
		host:           "127.0.0.1",
		buckets:        map[string]nats.KeyValue{},
	}

	for _, opt := range opts {
		opt(s)
	}

	ns, err := server.NewServer(&server.Options{
		Host:      s.host,
		Port:      s.port,
		NoSigs:    true, // Let the application handle signals
		JetStream: true,
		StoreDir:  s.storeDir,
	})
	if err != nil {
		return nil, err
	}

	s.ns = ns

	return s, nil
}

func (n *NatsServer) Start(ctx context.Context) error {
	n.ns.Start()

	if !n.ns.ReadyForConnections(n.startupTimeout) {
		return fmt.Errorf("nats server not ready for connections")
	}

	// Create internal client connection
	conn, err := nats.Connect(n.clientURL())
	if err != nil {
		return fmt.Errorf("creating nats client connection: %w", err)
	}
	n.conn = conn

	js, err := conn.JetStream()
	if err != nil {
		return fmt.Errorf("creating jetstream context: %w", err)
	}
	n.js = js

	slog.InfoContext(ctx, "nats server listening", "addr", n.ns.Addr())

	<-ctx.Done()
	n.conn.Close()
	n.ns.Shutdown()
	n.ns.WaitForShutdown()

	return nil
}

// Subscribe creates a subscription on the given subject.
// The handler is called for each message received.
// Returns an unsubscribe function to remove the subscription.
func (n *NatsServer) Subscribe(subject string, handler func(data []byte)) (func(), error) {
	if n.conn == nil {
		return nil, fmt.Errorf("nats server not started")
	}
	sub, err := n.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Data)
	})
	if err != nil {
		return nil, err
	}
	return func() { sub.Unsubscribe() }, nil
}

// Publish sends a message to the given subject
func (n *NatsServer) Publish(subject string, data []byte) error {
	if n.conn == nil {
		return fmt.Errorf("nats server not started")
	}
	return n.conn.Publish(subject, data)
}

// KeyValue returns the named JetStream bucket, creating it on first
// use.
func (n *NatsServer) KeyValue(bucket string) (nats.KeyValue, error) {
	if n.js == nil {
		return nil, fmt.Errorf("nats server not started")
	}

	n.mu.RLock()
	kv, ok := n.buckets[bucket]
	n.mu.RUnlock()
	if ok {
		return kv, nil
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if kv, ok := n.buckets[bucket]; ok {
		return kv, nil
	}

	kv, err := n.js.KeyValue(bucket)
	if err == nats.ErrBucketNotFound {
		kv, err = n.js.CreateKeyValue(&nats.KeyValueConfig{Bucket: bucket})
	}
	if err != nil {
		return nil, fmt.Errorf("opening bucket %q: %w", bucket, err)
	}

	n.buckets[bucket] = kv
	return kv, nil
}

func (n *NatsServer) clientURL() string {
	return fmt.Sprintf("nats://%s:%d", n.host, n.port)
}
