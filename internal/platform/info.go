package platform

import (
	"context"
	"fmt"
)

// Info describes the host operating system and the reveal strategy in use.
type Info struct {
	OS              string `json:"os"`               // e.g., "linux", "darwin", "windows"
	Platform        string `json:"platform"`         // e.g., "ubuntu", "darwin", "Microsoft Windows 11 Pro"
	PlatformFamily  string `json:"platform_family"`  // e.g., "debian", "Standalone Workstation"
	PlatformVersion string `json:"platform_version"` // e.g., "22.04", "14.2.1", "10.0.22631"
	KernelVersion   string `json:"kernel_version"`
	KernelArch      string `json:"kernel_arch"`
	RevealStrategy  string `json:"reveal_strategy"`
}

// Info returns host details. Results are cached after the first success since
// they do not change while the host runs.
func (p *Platform) Info(ctx context.Context) (Info, error) {
	p.infoMu.Lock()
	defer p.infoMu.Unlock()

	if p.info != nil {
		return *p.info, nil
	}

	stat, err := hostInfoFunc(ctx)
	if err != nil {
		return Info{}, fmt.Errorf("read host info: %w", err)
	}

	p.info = &Info{
		OS:              stat.OS,
		Platform:        stat.Platform,
		PlatformFamily:  stat.PlatformFamily,
		PlatformVersion: stat.PlatformVersion,
		KernelVersion:   stat.KernelVersion,
		KernelArch:      stat.KernelArch,
		RevealStrategy:  p.revealer.Name(),
	}
	return *p.info, nil
}
