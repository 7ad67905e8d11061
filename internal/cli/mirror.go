package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/mdns"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"

	"github.com/sentinelflow/sentinelflow/internal/config"
	"github.com/sentinelflow/sentinelflow/internal/debug"
	"github.com/sentinelflow/sentinelflow/internal/webserver"
)

const mirrorMDNSServiceType = "_sentinelflow._tcp"

// mirror bundles the optional browser mirror runtime. The zero value is an
// inert mirror with a nil hub; stop is always safe to call.
type mirror struct {
	hub    *webserver.Hub
	server *webserver.Server
	mdns   *mdns.Server
}

// maybeStartMirror starts the browser mirror when --web is set. The returned
// mirror's hub is nil when the mirror is disabled.
func maybeStartMirror(cmd *cobra.Command, cfg config.Config) (*mirror, error) {
	enabled, _ := cmd.Flags().GetBool("web")
	if !enabled {
		return &mirror{}, nil
	}

	hub := webserver.NewHub()
	srv := webserver.New(hub, webserver.Options{Host: cfg.WebHost, Port: cfg.WebPort})
	if err := srv.Start(); err != nil {
		return nil, fmt.Errorf("starting browser mirror: %w", err)
	}
	m := &mirror{hub: hub, server: srv}
	fmt.Fprintf(os.Stderr, "Browser mirror: %s\n", srv.URL())

	if advertise, _ := cmd.Flags().GetBool("mdns"); advertise {
		mdnsSrv, err := startMirrorMDNS(srv.Port(), srv.URL())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: mDNS advertisement failed: %v\n", err)
		} else {
			m.mdns = mdnsSrv
		}
	}
	if printQR, _ := cmd.Flags().GetBool("qr"); printQR {
		if err := printMirrorQRCode(srv.URL()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to render QR code: %v\n", err)
		}
	}
	return m, nil
}

func (m *mirror) stop() {
	if m.mdns != nil {
		if err := m.mdns.Shutdown(); err != nil {
			debug.LogKV("cli", "mdns shutdown failed", "err", err.Error())
		}
	}
	if m.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := m.server.Shutdown(ctx); err != nil {
			debug.LogKV("cli", "mirror shutdown failed", "err", err.Error())
		}
	}
}

func startMirrorMDNS(port int, url string) (*mdns.Server, error) {
	if port <= 0 {
		return nil, fmt.Errorf("invalid port for mDNS advertisement: %d", port)
	}
	txtRecords := []string{
		"service=sentinelflow",
		fmt.Sprintf("url=%s", url),
	}
	service, err := mdns.NewMDNSService("sentinelflow", mirrorMDNSServiceType, "local", "", port, nil, txtRecords)
	if err != nil {
		return nil, err
	}
	return mdns.NewServer(&mdns.Config{
		Zone: service,
	})
}

func printMirrorQRCode(url string) error {
	code, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return err
	}
	fmt.Println(code.ToString(false))
	return nil
}
