package database

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/sangkips/yardops-api/internal/config"
	"go.uber.org/zap"
	"golang.org/x/crypto/ssh"
)

// Tunnel forwards database connections through an SSH server. The SSH
// client is established lazily and re-established when it stops answering.
type Tunnel struct {
	cfg    *config.SSHConfig
	log    *zap.Logger
	mu     sync.Mutex
	client *ssh.Client
}

// NewTunnel creates a tunnel; no connection is made until the first dial
func NewTunnel(cfg *config.SSHConfig, log *zap.Logger) *Tunnel {
	return &Tunnel{cfg: cfg, log: log}
}

// DialContext opens a forwarded connection to the remote database.
// The address requested by the driver is ignored.
func (t *Tunnel) DialContext(ctx context.Context, _, _ string) (net.Conn, error) {
	client, err := t.ensure(ctx)
	if err != nil {
		return nil, err
	}

	remote := net.JoinHostPort(t.cfg.RemoteHost, t.cfg.RemotePort)
	conn, err := client.DialContext(ctx, "tcp", remote)
	if err != nil {
		return nil, fmt.Errorf("ssh tunnel: dial %s: %w", remote, err)
	}
	return conn, nil
}

// Close shuts the SSH client down
func (t *Tunnel) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.client == nil {
		return nil
	}
	err := t.client.Close()
	t.client = nil
	return err
}

func (t *Tunnel) ensure(ctx context.Context) (*ssh.Client, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.client != nil {
		if _, _, err := t.client.SendRequest("keepalive@openssh.com", true, nil); err == nil {
			return t.client, nil
		}
		t.log.Warn("ssh tunnel lost, reconnecting", zap.String("host", t.cfg.Host))
		_ = t.client.Close()
		t.client = nil
	}

	client, err := t.connect(ctx)
	if err != nil {
		return nil, err
	}
	t.client = client
	t.log.Info("ssh tunnel established",
		zap.String("host", t.cfg.Host),
		zap.String("remote", net.JoinHostPort(t.cfg.RemoteHost, t.cfg.RemotePort)),
	)
	return client, nil
}

func (t *Tunnel) connect(ctx context.Context) (*ssh.Client, error) {
	hostKeyCallback, err := t.hostKeyCallback()
	if err != nil {
		return nil, err
	}

	clientCfg := &ssh.ClientConfig{
		User:            t.cfg.User,
		Auth:            []ssh.AuthMethod{ssh.Password(t.cfg.Password)},
		HostKeyCallback: hostKeyCallback,
		Timeout:         t.cfg.Timeout,
	}

	addr := net.JoinHostPort(t.cfg.Host, t.cfg.Port)
	dialer := net.Dialer{Timeout: t.cfg.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("ssh tunnel: dial %s: %w", addr, err)
	}

	c, chans, reqs, err := ssh.NewClientConn(conn, addr, clientCfg)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("ssh tunnel: handshake with %s: %w", addr, err)
	}
	return ssh.NewClient(c, chans, reqs), nil
}

func (t *Tunnel) hostKeyCallback() (ssh.HostKeyCallback, error) {
	if t.cfg.HostKey == "" {
		t.log.Warn("SSH_HOST_KEY not set, host key is not verified")
		return ssh.InsecureIgnoreHostKey(), nil
	}

	key, _, _, _, err := ssh.ParseAuthorizedKey([]byte(t.cfg.HostKey))
	if err != nil {
		return nil, fmt.Errorf("ssh tunnel: parse host key: %w", err)
	}
	return ssh.FixedHostKey(key), nil
}
