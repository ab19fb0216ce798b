package bus

import (
	"context"
	"fmt"
	log "log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/eclipse/paho.golang/autopaho"
	"github.com/eclipse/paho.golang/paho"
)

// Config carries the broker address and the three fixed topics.
type Config struct {
	Addr         string // e.g. "tcp://localhost:1883"; bare host:port accepted
	ClientID     string
	ControlTopic string // inbound trigger commands
	SearchTopic  string // outbound search queries
	StatusTopic  string // outbound status strings
}

const (
	connectRetryDelay = 3 * time.Second

	// Publishes fail fast instead of queueing while the broker is away.
	publishTimeout = 2 * time.Second
)

// Gateway is the MQTT side of the daemon: one autopaho connection that
// feeds control payloads to a handler and carries outbound search and
// status publishes. Reconnection and resubscription are handled by
// autopaho; the control handler runs on the receive path and must only
// enqueue.
type Gateway struct {
	cfg Config
	cm  *autopaho.ConnectionManager
}

// Dial connects to the broker and, when onControl is non-nil, subscribes
// to the control topic. The subscription is re-established on every
// reconnect. Dial blocks until the first connection is up or ctx expires.
func Dial(ctx context.Context, cfg Config, onControl func(payload string)) (*Gateway, error) {
	u, err := url.Parse(normalizeAddr(cfg.Addr))
	if err != nil {
		return nil, fmt.Errorf("broker address: %w", err)
	}

	g := &Gateway{cfg: cfg}

	clientCfg := autopaho.ClientConfig{
		ServerUrls:                    []*url.URL{u},
		KeepAlive:                     20,
		CleanStartOnInitialConnection: true,
		ConnectRetryDelay:             connectRetryDelay,
		OnConnectionUp: func(cm *autopaho.ConnectionManager, _ *paho.Connack) {
			log.Info("Connected to broker", "addr", u.String())
			if onControl == nil {
				return
			}
			if _, err := cm.Subscribe(context.Background(), &paho.Subscribe{
				Subscriptions: []paho.SubscribeOptions{{Topic: cfg.ControlTopic}},
			}); err != nil {
				log.Error("Failed to subscribe", "topic", cfg.ControlTopic, "err", err)
				return
			}
			log.Info("Listening for control commands", "topic", cfg.ControlTopic)
		},
		OnConnectError: func(err error) {
			log.Warn("Broker connection error", "err", err)
		},
		ClientConfig: paho.ClientConfig{
			ClientID: cfg.ClientID,
		},
	}

	if onControl != nil {
		clientCfg.ClientConfig.OnPublishReceived = []func(paho.PublishReceived) (bool, error){
			func(pr paho.PublishReceived) (bool, error) {
				onControl(string(pr.Packet.Payload))
				return true, nil
			},
		}
	}

	// The connection manager outlives the dial context; ctx only bounds
	// the wait for the first connection.
	cm, err := autopaho.NewConnection(context.Background(), clientCfg)
	if err != nil {
		return nil, err
	}
	if err := cm.AwaitConnection(ctx); err != nil {
		// Stop the manager's retry loop before abandoning it.
		_ = cm.Disconnect(context.Background())
		return nil, fmt.Errorf("await broker connection: %w", err)
	}

	g.cm = cm
	return g, nil
}

// Publish sends one payload to a topic, failing fast when the broker is
// unreachable.
func (g *Gateway) Publish(ctx context.Context, topic, payload string) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if _, err := g.cm.Publish(ctx, &paho.Publish{
		Topic:   topic,
		Payload: []byte(payload),
	}); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}

	return nil
}

// PublishStatus sends a status string to the status topic. Failures are
// logged, not escalated; local state advances regardless.
func (g *Gateway) PublishStatus(ctx context.Context, status string) {
	if err := g.Publish(ctx, g.cfg.StatusTopic, status); err != nil {
		log.Warn("Failed to publish status", "status", status, "err", err)
	}
}

// PublishSearch sends a search query to the search topic.
func (g *Gateway) PublishSearch(ctx context.Context, query string) error {
	return g.Publish(ctx, g.cfg.SearchTopic, query)
}

// ClearSearch blanks the search topic so a stale result does not linger
// on the dashboard while a new request is being recorded.
func (g *Gateway) ClearSearch(ctx context.Context) {
	if err := g.Publish(ctx, g.cfg.SearchTopic, ""); err != nil {
		log.Warn("Failed to clear search topic", "err", err)
	}
}

// ClearDashboard blanks both outbound topics. Shutdown path.
func (g *Gateway) ClearDashboard(ctx context.Context) {
	g.PublishStatus(ctx, "")
	g.ClearSearch(ctx)
}

func (g *Gateway) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	return g.cm.Disconnect(ctx)
}

func normalizeAddr(addr string) string {
	if !strings.Contains(addr, "://") {
		return "tcp://" + addr
	}
	return addr
}
