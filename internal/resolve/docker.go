package resolve

import (
	"context"
	"regexp"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
)

// DockerResolver resolves hosts that are container names, IDs or container IPs.
// The program is the compose service label, else the container name without
// its replica suffix.
type DockerResolver struct {
	client *client.Client
}

func NewDockerResolver() (*DockerResolver, error) {
	c, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, err
	}
	return &DockerResolver{client: c}, nil
}

var replicaSuffix = regexp.MustCompile(`[-_]\d+$`)

func (r *DockerResolver) Resolve(ctx context.Context, host string) (string, bool) {
	if info, err := r.client.ContainerInspect(ctx, host); err == nil && info.Config != nil {
		return programName(info.Config.Labels, info.Name)
	}

	containers, err := r.client.ContainerList(ctx, container.ListOptions{})
	if err != nil {
		return "", false
	}
	for _, c := range containers {
		if c.NetworkSettings == nil {
			continue
		}
		for _, nw := range c.NetworkSettings.Networks {
			if nw != nil && nw.IPAddress == host {
				name := ""
				if len(c.Names) > 0 {
					name = c.Names[0]
				}
				return programName(c.Labels, name)
			}
		}
	}
	return "", false
}

func programName(labels map[string]string, name string) (string, bool) {
	if svc := labels["com.docker.compose.service"]; svc != "" {
		return svc, true
	}
	name = replicaSuffix.ReplaceAllString(strings.TrimPrefix(name, "/"), "")
	return name, name != ""
}
