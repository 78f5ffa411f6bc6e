package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"trade_desk/internal/models"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Feed channels carried on the websocket.
const (
	ChannelIndex   = "index"
	ChannelOptions = "options"
)

// StatusSink receives connection and tick events, e.g. the health state.
type StatusSink interface {
	SetWSConnected(v bool)
	TouchTick(t time.Time)
}

type StreamConfig struct {
	URL            string
	PingInterval   time.Duration
	ReconnectDelay time.Duration
}

// Streamer keeps a websocket to the market-data service open and writes every frame into Stores.
type Streamer struct {
	cfg      StreamConfig
	stores   *Stores
	status   StatusSink
	log      *zap.Logger
	wsDialer *websocket.Dialer
}

func NewStreamer(cfg StreamConfig, stores *Stores, status StatusSink, log *zap.Logger) *Streamer {
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = 20 * time.Second
	}
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Streamer{
		cfg:      cfg,
		stores:   stores,
		status:   status,
		log:      log,
		wsDialer: &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
	}
}

type frame struct {
	Channel string          `json:"channel"`
	Data    json.RawMessage `json:"data"`
}

// Run connects and reconnects until ctx is done.
func (s *Streamer) Run(ctx context.Context) {
	for {
		err := s.session(ctx)
		s.setConnected(false)
		if ctx.Err() != nil {
			s.log.Info("feed stream stopped")
			return
		}
		s.log.Warn("feed stream dropped", zap.String("url", s.cfg.URL), zap.Error(err))

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.cfg.ReconnectDelay):
		}
	}
}

func (s *Streamer) session(ctx context.Context) error {
	conn, _, err := s.wsDialer.DialContext(ctx, s.cfg.URL, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	sub := map[string]any{
		"op":   "subscribe",
		"args": []string{ChannelIndex, ChannelOptions},
	}
	if err := conn.WriteJSON(sub); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	s.setConnected(true)
	s.log.Info("feed stream connected", zap.String("url", s.cfg.URL))

	done := make(chan struct{})
	defer close(done)
	go s.keepalive(ctx, conn, done)

	for {
		_ = conn.SetReadDeadline(time.Now().Add(3 * s.cfg.PingInterval))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		s.apply(msg)
	}
}

// keepalive is the only writer once the subscription is sent.
// Cancelling ctx closes the socket, which unblocks the read loop.
func (s *Streamer) keepalive(ctx context.Context, conn *websocket.Conn, done <-chan struct{}) {
	t := time.NewTicker(s.cfg.PingInterval)
	defer t.Stop()
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			_ = conn.Close()
			return
		case <-t.C:
			if err := conn.WriteJSON(map[string]string{"op": "ping"}); err != nil {
				s.log.Debug("feed ping failed", zap.Error(err))
			}
		}
	}
}

// apply decodes one frame. Frames for unknown channels and malformed payloads are skipped.
func (s *Streamer) apply(msg []byte) {
	var f frame
	if err := sonic.Unmarshal(msg, &f); err != nil || len(f.Data) == 0 {
		return
	}

	switch f.Channel {
	case ChannelIndex:
		var ticks []models.IndexPriceTick
		if err := sonic.Unmarshal(f.Data, &ticks); err != nil {
			s.log.Debug("bad index frame", zap.Error(err))
			return
		}
		s.stores.ReplaceIndex(ticks)
	case ChannelOptions:
		var records []models.OptionValueRecord
		if err := sonic.Unmarshal(f.Data, &records); err != nil {
			s.log.Debug("bad options frame", zap.Error(err))
			return
		}
		s.stores.ReplaceOptions(records)
	default:
		return
	}

	if s.status != nil {
		s.status.TouchTick(time.Now())
	}
}

func (s *Streamer) setConnected(v bool) {
	if s.status != nil {
		s.status.SetWSConnected(v)
	}
}
