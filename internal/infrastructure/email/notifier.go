package email

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"commanders-backend/internal/shared"
	"commanders-backend/pkg/logger"
)

// Notifier enqueue email tasks lên asynq.
// Fire-and-forget: enqueue failure chỉ log warn, không bao giờ
// propagate lên request path.
type Notifier struct {
	client *asynq.Client
}

func NewNotifier(client *asynq.Client) *Notifier {
	return &Notifier{client: client}
}

func (n *Notifier) enqueue(taskType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal email payload", err)
		return
	}

	task := asynq.NewTask(taskType, data)
	info, err := n.client.Enqueue(task,
		asynq.Queue(shared.QueueEmail),
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		logger.Warn("Failed to enqueue email task", map[string]interface{}{
			"type":  taskType,
			"error": err.Error(),
		})
		return
	}

	logger.Debug("Email task enqueued", map[string]interface{}{
		"type":    taskType,
		"task_id": info.ID,
	})
}

func (n *Notifier) ProposalReceived(_ context.Context, data ProposalReceivedData) {
	n.enqueue(shared.TypeProposalReceivedEmail, data)
}

func (n *Notifier) ProposalApproved(_ context.Context, data ProposalResolvedData) {
	n.enqueue(shared.TypeProposalApprovedEmail, data)
}

func (n *Notifier) ProposalRejected(_ context.Context, data ProposalResolvedData) {
	n.enqueue(shared.TypeProposalRejectedEmail, data)
}
