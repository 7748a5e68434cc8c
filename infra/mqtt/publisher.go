// Package mqtt announces applied schedule updates on an MQTT topic so
// other classroom tools can follow along.
package mqtt

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"os"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/kilianp07/timetable/core/model"
	"github.com/kilianp07/timetable/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT publisher.
type Config struct {
	Enabled    bool        `json:"enabled"`
	Broker     string      `json:"broker"`
	ClientID   string      `json:"client_id"`
	Username   string      `json:"username"`
	Password   string      `json:"password"`
	Topic      string      `json:"topic"`
	QoS        byte        `json:"qos"`
	UseTLS     bool        `json:"use_tls"`
	ClientCert string      `json:"client_cert"`
	ClientKey  string      `json:"client_key"`
	CABundle   string      `json:"ca_bundle"`
	MaxRetries int         `json:"max_retries"`
	BackoffMS  int         `json:"backoff_ms"`
	TLSConfig  *tls.Config `json:"-"`
}

// SetDefaults fills in unset fields.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "timetable-" + uuid.NewString()[:8]
	}
	if c.Topic == "" {
		c.Topic = "timetable/schedule/updated"
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.BackoffMS <= 0 {
		c.BackoffMS = 100
	}
}

// Publisher announces schedule updates.
type Publisher interface {
	PublishScheduleUpdate(schedule model.Schedule, fallback bool) error
	Close()
}

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// PahoPublisher implements Publisher using Eclipse Paho.
type PahoPublisher struct {
	cli     pahoClient
	topic   string
	qos     byte
	retries int
	backoff time.Duration
	log     logger.Logger
}

// NewPahoPublisher connects to the MQTT broker.
func NewPahoPublisher(cfg Config) (*PahoPublisher, error) {
	cfg.SetDefaults()
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}

	log := logger.New("mqtt-publisher")
	opts.OnConnect = func(paho.Client) {
		log.Infof("MQTT connected")
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	opts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		log.Warnf("reconnecting to MQTT broker")
	}
	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return &PahoPublisher{
		cli:     c,
		topic:   cfg.Topic,
		qos:     cfg.QoS,
		retries: cfg.MaxRetries,
		backoff: time.Duration(cfg.BackoffMS) * time.Millisecond,
		log:     log,
	}, nil
}

// NewClientOptions builds mqtt client options from Config.
func NewClientOptions(cfg Config) (*paho.ClientOptions, error) {
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	if cfg.UseTLS {
		tlsCfg, err := cfg.LoadTLSConfig()
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsCfg)
	}
	return opts, nil
}

// LoadTLSConfig loads the TLS configuration from the file paths in the config.
func (c Config) LoadTLSConfig() (*tls.Config, error) {
	if c.TLSConfig != nil {
		return c.TLSConfig, nil
	}
	if c.ClientCert == "" || c.ClientKey == "" || c.CABundle == "" {
		return nil, fmt.Errorf("tls config requires client_cert, client_key and ca_bundle")
	}
	cert, err := tls.LoadX509KeyPair(c.ClientCert, c.ClientKey)
	if err != nil {
		return nil, fmt.Errorf("load cert: %w", err)
	}
	caBytes, err := os.ReadFile(c.CABundle)
	if err != nil {
		return nil, fmt.Errorf("read ca: %w", err)
	}
	pool := x509.NewCertPool()
	pool.AppendCertsFromPEM(caBytes)
	cfg := &tls.Config{Certificates: []tls.Certificate{cert}, RootCAs: pool, MinVersion: tls.VersionTLS12}
	return cfg, nil
}

type updateMessage struct {
	UpdateID  string               `json:"update_id"`
	Items     []model.ScheduleItem `json:"items"`
	ItemCount int                  `json:"item_count"`
	Fallback  bool                 `json:"fallback"`
	Timestamp int64                `json:"timestamp"`
}

// PublishScheduleUpdate announces the new schedule on the configured
// topic, retrying with exponential backoff.
func (p *PahoPublisher) PublishScheduleUpdate(schedule model.Schedule, fallback bool) error {
	msg := updateMessage{
		UpdateID:  uuid.NewString(),
		Items:     schedule,
		ItemCount: len(schedule),
		Fallback:  fallback,
		Timestamp: time.Now().UnixMilli(),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	var publishErr error
	for attempt := 0; attempt <= p.retries; attempt++ {
		token := p.cli.Publish(p.topic, p.qos, false, payload)
		token.Wait()
		publishErr = token.Error()
		if publishErr == nil {
			p.log.Infof("published update %s to %s", msg.UpdateID, p.topic)
			return nil
		}
		p.log.Errorf("publish attempt %d failed: %v", attempt+1, publishErr)
		time.Sleep(p.backoff * time.Duration(1<<attempt))
	}
	return publishErr
}

// Close gracefully closes the MQTT connection.
func (p *PahoPublisher) Close() {
	if p.cli != nil && p.cli.IsConnected() {
		p.cli.Disconnect(250)
	}
}
