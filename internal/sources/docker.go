package sources

import (
	"context"
	"fmt"
	"io"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/hashicorp/go-hclog"

	"lognorm/internal/event"
	"lognorm/internal/logging"
)

// DockerSource reads the combined stdout/stderr log of a container.
type DockerSource struct {
	ContainerID string
	Follow      bool
	Client      *client.Client // defaults to a client configured from the environment
	Logger      hclog.Logger
}

func (ds *DockerSource) Run(ctx context.Context, out chan<- event.Line) error {
	log := logging.OrNull(ds.Logger).Named("docker").With("container", ds.ContainerID)

	cli := ds.Client
	if cli == nil {
		c, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
		if err != nil {
			return fmt.Errorf("docker: %w", err)
		}
		defer c.Close()
		cli = c
	}

	reader, err := cli.ContainerLogs(ctx, ds.ContainerID, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Follow:     ds.Follow,
		Timestamps: false,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("docker logs %s: %w", ds.ContainerID, err)
	}
	defer reader.Close()

	log.Debug("docker source started", "follow", ds.Follow)

	pr, pw := io.Pipe()
	go func() {
		_, err := stdcopy.StdCopy(pw, pw, reader)
		pw.CloseWithError(err)
	}()
	defer pr.Close()

	if err := scanLines(ctx, pr, DefaultMaxLineSize, "docker", out); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("docker logs %s: %w", ds.ContainerID, err)
	}
	log.Debug("docker source finished")
	return nil
}
