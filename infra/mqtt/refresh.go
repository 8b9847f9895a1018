// Package mqtt subscribes to upstream load-data change notifications and
// fans them out on the internal event bus. The engine never sees MQTT; the
// service rebuilds the schedule when a notice arrives.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/mgubran1/dispatchgrid/infra/logger"
	"github.com/mgubran1/dispatchgrid/internal/eventbus"
)

// Config defines the connection parameters for the refresh listener.
type Config struct {
	Enabled  bool   `json:"enabled"`
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	// Topic carries load-data change notices, e.g. "dispatch/loads/changed".
	Topic string `json:"topic"`
	QoS   byte   `json:"qos"`
}

// Validate checks mandatory fields when the listener is enabled.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Broker == "" {
		return fmt.Errorf("broker is required")
	}
	if c.Topic == "" {
		return fmt.Errorf("topic is required")
	}
	return nil
}

// RefreshNotice is the decoded change notification. Date is optional; an
// empty date means the whole data set may have changed.
type RefreshNotice struct {
	Source string `json:"source"`
	Date   string `json:"date,omitempty"`
}

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Subscribe(topic string, qos byte, callback paho.MessageHandler) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// RefreshListener bridges broker notifications onto the event bus.
type RefreshListener struct {
	cli pahoClient
	bus *eventbus.Bus[RefreshNotice]
	log logger.Logger
}

// NewRefreshListener connects to the broker and subscribes to the notice
// topic. Malformed payloads are logged and dropped, never fatal.
func NewRefreshListener(cfg Config, bus *eventbus.Bus[RefreshNotice]) (*RefreshListener, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logger.New("refresh-listener")
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetAutoReconnect(true).
		SetConnectTimeout(10 * time.Second)

	l := &RefreshListener{bus: bus, log: log}
	opts.OnConnect = func(c paho.Client) {
		token := c.Subscribe(cfg.Topic, cfg.QoS, l.handle)
		token.Wait()
		if err := token.Error(); err != nil {
			log.Errorf("subscribe %s: %v", cfg.Topic, err)
			return
		}
		log.Infof("subscribed to %s", cfg.Topic)
	}

	cli := newMQTTClient(opts)
	token := cli.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.Broker, err)
	}
	l.cli = cli
	return l, nil
}

func (l *RefreshListener) handle(_ paho.Client, msg paho.Message) {
	notice, err := decodeNotice(msg.Payload())
	if err != nil {
		l.log.Warnf("drop malformed notice on %s: %v", msg.Topic(), err)
		return
	}
	l.log.Debugw("refresh notice", map[string]any{"source": notice.Source, "date": notice.Date})
	l.bus.Publish(notice)
}

// decodeNotice parses a notification payload. An empty payload is a valid
// "everything changed" notice.
func decodeNotice(payload []byte) (RefreshNotice, error) {
	if len(payload) == 0 {
		return RefreshNotice{}, nil
	}
	var n RefreshNotice
	if err := json.Unmarshal(payload, &n); err != nil {
		return RefreshNotice{}, err
	}
	if n.Date != "" {
		if _, err := time.Parse("2006-01-02", n.Date); err != nil {
			return RefreshNotice{}, fmt.Errorf("bad date %q: %w", n.Date, err)
		}
	}
	return n, nil
}

// Close disconnects from the broker.
func (l *RefreshListener) Close() {
	if l.cli != nil && l.cli.IsConnected() {
		l.cli.Disconnect(250)
	}
}
