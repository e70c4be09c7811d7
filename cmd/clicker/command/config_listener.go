package command

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"fmt"
	"log/slog"
	"os"

	"github.com/pixil98/go-clicker/internal/listener"
	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-service"
	"golang.org/x/crypto/ssh"
)

type Protocol int

const (
	ProtocolTelnet Protocol = iota
	ProtocolSsh
)

func (p *Protocol) UnmarshalText(text []byte) error {
	switch string(text) {
	case "telnet":
		*p = ProtocolTelnet
	case "ssh":
		*p = ProtocolSsh
	default:
		return fmt.Errorf("unknown protocol: %s", text)
	}
	return nil
}

type ListenerConfig struct {
	Protocol    Protocol `json:"protocol"`
	Port        uint16   `json:"port"`
	HostKeyPath string   `json:"host_key_path,omitempty"`
}

func (cl *ListenerConfig) validate() error {
	el := errors.NewErrorList()

	if cl.Port == 0 {
		el.Add(fmt.Errorf("port must be set to a positive integer"))
	}

	return el.Err()
}

func (cl *ListenerConfig) BuildListener(cm *listener.ConnectionManager) (service.Worker, error) {
	switch cl.Protocol {
	case ProtocolTelnet:
		return listener.NewTelnetListener(cl.Port, cm), nil
	case ProtocolSsh:
		hostKey, err := cl.hostKeySigner()
		if err != nil {
			return nil, fmt.Errorf("setting up ssh host key: %w", err)
		}
		return listener.NewSshListener(cl.Port, cm, hostKey), nil
	default:
		return nil, fmt.Errorf("unknown protocol: %v", cl.Protocol)
	}
}

// hostKeySigner loads the configured host key. When host_key_path is
// set but the file doesn't exist yet, a new ed25519 key is generated
// and written there so the server keeps a stable identity across
// restarts. With no path at all the key is ephemeral and clients will
// see a changed host key every run.
func (cl *ListenerConfig) hostKeySigner() (ssh.Signer, error) {
	if cl.HostKeyPath != "" {
		keyBytes, err := os.ReadFile(cl.HostKeyPath)
		if err == nil {
			signer, err := ssh.ParsePrivateKey(keyBytes)
			if err != nil {
				return nil, fmt.Errorf("parsing host key %q: %w", cl.HostKeyPath, err)
			}
			return signer, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading host key %q: %w", cl.HostKeyPath, err)
		}
	}

	_, privKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generating host key: %w", err)
	}

	if cl.HostKeyPath != "" {
		block, err := ssh.MarshalPrivateKey(privKey, "")
		if err != nil {
			return nil, fmt.Errorf("encoding host key: %w", err)
		}
		if err := os.WriteFile(cl.HostKeyPath, pem.EncodeToMemory(block), 0600); err != nil {
			return nil, fmt.Errorf("writing host key %q: %w", cl.HostKeyPath, err)
		}
		slog.Info("generated new ssh host key", "path", cl.HostKeyPath)
	} else {
		slog.Warn("no host_key_path configured for ssh listener, key is ephemeral")
	}

	return ssh.NewSignerFromKey(privKey)
}
