package platform

import (
	"context"
	"errors"
	"testing"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func infoStub(calls *int) func(context.Context) (*host.InfoStat, error) {
	return func(context.Context) (*host.InfoStat, error) {
		*calls++
		return &host.InfoStat{
			OS:              "linux",
			Platform:        "testos",
			PlatformFamily:  "test",
			PlatformVersion: "1.0",
			KernelVersion:   "6.0.0",
			KernelArch:      "x86_64",
		}, nil
	}
}

func TestInfo_CachedAfterSuccess(t *testing.T) {
	calls := 0
	stub(t, &hostInfoFunc, infoStub(&calls))

	p, _ := newTestPlatform(t, "darwin")
	first, err := p.Info(context.Background())
	require.NoError(t, err)
	second, err := p.Info(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "finder", first.RevealStrategy)
	assert.Equal(t, "testos", first.Platform)
	assert.Equal(t, "x86_64", first.KernelArch)
}

func TestInfo_ErrorNotCached(t *testing.T) {
	failing := true
	calls := 0
	ok := infoStub(&calls)
	stub(t, &hostInfoFunc, func(ctx context.Context) (*host.InfoStat, error) {
		if failing {
			return nil, errors.New("no host info")
		}
		return ok(ctx)
	})

	p, _ := newTestPlatform(t, "linux")
	_, err := p.Info(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no host info")

	failing = false
	info, err := p.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "xdg", info.RevealStrategy)
}
