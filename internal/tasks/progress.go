package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"jobscout/internal/logging"
	"jobscout/internal/logging/types"
	"jobscout/pkg/utils"
)

const progressChannelPrefix = "jobscout:progress:"

// RedisProgressPublisher publishes task progress snapshots as JSON on a
// per-task redis channel so external consumers can follow a run without
// polling the task endpoint.
type RedisProgressPublisher struct {
	client *utils.RedisClient
	logger types.Logger
}

// NewRedisProgressPublisher creates a publisher on the given redis client
func NewRedisProgressPublisher(client *utils.RedisClient) *RedisProgressPublisher {
	return &RedisProgressPublisher{
		client: client,
		logger: logging.GetGlobalLogger(),
	}
}

// Progress implements ProgressSink. Publish failures are logged, never
// propagated; progress delivery is best effort.
func (p *RedisProgressPublisher) Progress(progress TaskProgress) {
	payload, err := json.Marshal(progress)
	if err != nil {
		p.logger.Warn("Failed to marshal progress snapshot", map[string]interface{}{
			"process_id": progress.TaskID,
			"error":      err.Error(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	channel := fmt.Sprintf("%s%s", progressChannelPrefix, progress.TaskID)
	if err := p.client.Client().Publish(ctx, channel, payload).Err(); err != nil {
		p.logger.Warn("Failed to publish progress snapshot", map[string]interface{}{
			"process_id": progress.TaskID,
			"channel":    channel,
			"error":      err.Error(),
		})
	}
}

// fanoutSink forwards each snapshot to every attached sink
type fanoutSink struct {
	sinks []ProgressSink
}

func (f *fanoutSink) Progress(progress TaskProgress) {
	for _, s := range f.sinks {
		s.Progress(progress)
	}
}
