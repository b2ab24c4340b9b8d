package sources

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"lognorm/internal/event"
)

func TestDockerSource_WithTestcontainers(t *testing.T) {
	if testing.Short() {
		t.Skip("needs a docker daemon")
	}
	ctx := context.Background()

	line := `<11>1 - web api 7 - - test-docker-log`
	req := testcontainers.ContainerRequest{
		Image:      "alpine",
		Cmd:        []string{"sh", "-c", "echo '" + line + "'; sleep 30"},
		WaitingFor: wait.ForLog("test-docker-log"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("failed to start container: %v", err)
	}
	defer container.Terminate(ctx)

	src := &DockerSource{ContainerID: container.GetContainerID()}

	out := make(chan event.Line, 1)
	runCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	go src.Run(runCtx, out)

	select {
	case evt := <-out:
		if evt.Text != line {
			t.Errorf("expected %q, got %q", line, evt.Text)
		}
		if evt.Source != "docker" {
			t.Errorf("expected source 'docker', got '%s'", evt.Source)
		}
	case <-runCtx.Done():
		t.Fatal("timed out waiting for docker logs")
	}
}
