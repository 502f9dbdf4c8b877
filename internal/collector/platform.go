package collector

import (
	"context"

	"github.com/rs/zerolog"
)

// PlatformCollector builds the PlatformInfo singleton from an Environment.
// It issues no WMI query of its own.
type PlatformCollector struct {
	env Environment
	log zerolog.Logger
}

// NewPlatformCollector returns a collector reading env.
func NewPlatformCollector(env Environment, log zerolog.Logger) *PlatformCollector {
	return &PlatformCollector{
		env: env,
		log: log.With().Str("category", string(CategoryPlatform)).Logger(),
	}
}

// Collect reads every platform fact. Firmware is optional; any other
// failure fails the category.
func (c *PlatformCollector) Collect(ctx context.Context) (*PlatformInfo, error) {
	fail := func(err error) (*PlatformInfo, error) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &CategoryQueryError{Category: CategoryPlatform, Err: err}
	}

	name, err := c.env.MachineName()
	if err != nil {
		return fail(err)
	}
	osInfo, err := c.env.OS(ctx)
	if err != nil {
		return fail(err)
	}
	procs, err := c.env.ProcessorCount(ctx)
	if err != nil {
		return fail(err)
	}
	drives, err := c.env.LogicalDrives(ctx)
	if err != nil {
		return fail(err)
	}

	info := &PlatformInfo{
		MachineName:          name,
		Platform:             osInfo.Platform,
		Version:              osInfo.Version,
		ServicePack:          osInfo.ServicePack,
		RuntimeVersion:       c.env.RuntimeVersion(),
		Is64BitOS:            osInfo.Is64Bit,
		ProcessorCount:       procs,
		LogicalDrives:        drives,
		EnvironmentVariables: c.env.EnvironmentVariables(),
	}

	fw, err := c.env.Firmware()
	if err != nil {
		c.log.Debug().Err(err).Msg("Firmware information unavailable")
	} else {
		info.Firmware = fw
	}

	c.log.Debug().Str("machine", name).Msg("Collected information about Platform")
	return info, nil
}
