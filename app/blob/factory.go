package blob

import (
	"context"
	"fmt"

	"github.com/shojha24/u-c-lotta-adipose/app/cfg"
)

// Open selects a Store implementation from the application configuration.
func Open(ctx context.Context) (Store, error) {
	appCfg := cfg.Get()

	switch Driver(appCfg.BlobDriver) {
	case DriverFilesystem, "":
		return NewFS(appCfg.DataDir)
	case DriverS3:
		return NewS3(ctx, S3Config{
			Region:    appCfg.S3Region,
			Bucket:    appCfg.S3Bucket,
			Endpoint:  appCfg.S3Endpoint,
			PathStyle: appCfg.S3PathStyle,
		})
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", appCfg.BlobDriver)
	}
}
